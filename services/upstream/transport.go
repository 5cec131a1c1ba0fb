package upstream

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/artaltay/miniapp/lib/myvault"
)

const (
	slowNetworkDelay = 1500 * time.Millisecond
	captureRingSize  = 50
)

// authTransport adds the bearer token from the vault to every request
// and drops the token again when the upstream answers 401.
type authTransport struct {
	vault myvault.VaultReadWriter
	next  http.RoundTripper
}

func newAuthTransport(vault myvault.VaultReadWriter, next http.RoundTripper) *authTransport {
	return &authTransport{
		vault: vault,
		next:  next,
	}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c := req.Context()

	token, exists, err := t.vault.Get(c, myvault.CurrentToken)
	if err == nil && exists && token.AccessToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token.AccessToken))
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// token no longer valid
		t.clearToken(c)
	}

	return resp, nil
}

func (t *authTransport) clearToken(c context.Context) {
	_ = t.vault.Delete(c, myvault.CurrentToken)
}

// RequestRecord is one captured upstream call, served by the debug
// endpoints.
type RequestRecord struct {
	Method     string
	URL        string
	Status     int
	Duration   time.Duration
	Error      string
	OccurredAt time.Time
}

// Capturer keeps the most recent upstream calls in a fixed-size ring.
type Capturer struct {
	mutex   sync.Mutex
	records []RequestRecord
}

func NewCapturer() *Capturer {
	return &Capturer{}
}

func (cp *Capturer) add(record RequestRecord) {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	cp.records = append(cp.records, record)
	if len(cp.records) > captureRingSize {
		cp.records = cp.records[len(cp.records)-captureRingSize:]
	}
}

// Records returns the captured calls, most recent first.
func (cp *Capturer) Records() []RequestRecord {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	records := make([]RequestRecord, 0, len(cp.records))
	for i := len(cp.records) - 1; i >= 0; i-- {
		records = append(records, cp.records[i])
	}

	return records
}

type captureTransport struct {
	capturer *Capturer
	next     http.RoundTripper
}

func newCaptureTransport(capturer *Capturer, next http.RoundTripper) *captureTransport {
	return &captureTransport{
		capturer: capturer,
		next:     next,
	}
}

func (t *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	started := time.Now()
	resp, err := t.next.RoundTrip(req)

	record := RequestRecord{
		Method:     req.Method,
		URL:        req.URL.String(),
		Duration:   time.Since(started),
		OccurredAt: started,
	}
	if err != nil {
		record.Error = err.Error()
	} else {
		record.Status = resp.StatusCode
	}
	t.capturer.add(record)

	return resp, err
}

// slowTransport adds fixed latency when slow-network simulation is on.
type slowTransport struct {
	settings *Settings
	next     http.RoundTripper
}

func newSlowTransport(settings *Settings, next http.RoundTripper) *slowTransport {
	return &slowTransport{
		settings: settings,
		next:     next,
	}
}

func (t *slowTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.settings.SlowNetwork() {
		select {
		case <-time.After(slowNetworkDelay):
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}

	return t.next.RoundTrip(req)
}

// NewTransport stacks the interceptors the way the client needs them:
// capture sees the request last so it records the effective call.
func NewTransport(vault myvault.VaultReadWriter, settings *Settings, capturer *Capturer) http.RoundTripper {
	var transport http.RoundTripper = http.DefaultTransport
	transport = newCaptureTransport(capturer, transport)
	transport = newAuthTransport(vault, transport)
	transport = newSlowTransport(settings, transport)

	return transport
}
