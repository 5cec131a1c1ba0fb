package debug

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/artaltay/miniapp/lib/mycontext"
	"github.com/artaltay/miniapp/lib/myerrors"
	"github.com/artaltay/miniapp/lib/myhttp"
	"github.com/artaltay/miniapp/lib/mylog"
	"github.com/artaltay/miniapp/services/upstream"
)

// webService backs the in-app debug panel: recent upstream calls,
// recent log lines and the runtime toggles.
type webService struct {
	capturer *upstream.Capturer
	logs     *LogBuffer
	settings *upstream.Settings
	logger   mylog.Logger
}

func NewWebService(capturer *upstream.Capturer, logs *LogBuffer, settings *upstream.Settings) *webService {
	return &webService{
		capturer: capturer,
		logs:     logs,
		settings: settings,
		logger:   mylog.New("debug"),
	}
}

func (s *webService) RegisterEndpoints(router *mux.Router) {
	router.HandleFunc("/api/debug/requests", s.requestsPage()).Methods("GET")
	router.HandleFunc("/api/debug/logs", s.logsPage()).Methods("GET")
	router.HandleFunc("/api/debug/settings", s.getSettingsPage()).Methods("GET")
	router.HandleFunc("/api/debug/settings", s.updateSettingsPage()).Methods("PUT")
}

func (s *webService) requestsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		errorWriter.Write(c, w, http.StatusOK, s.capturer.Records())
	}
}

func (s *webService) logsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		errorWriter.Write(c, w, http.StatusOK, s.logs.Entries())
	}
}

type settingsResponse struct {
	Environment upstream.Environment `json:"environment"`
	UseMocks    bool                 `json:"useMocks"`
	SlowNetwork bool                 `json:"slowNetwork"`
	BaseURL     string               `json:"baseUrl"`
}

type settingsRequest struct {
	Environment *upstream.Environment `json:"environment"`
	UseMocks    *bool                 `json:"useMocks"`
	SlowNetwork *bool                 `json:"slowNetwork"`
}

func (s *webService) getSettingsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		errorWriter.Write(c, w, http.StatusOK, s.currentSettings())
	}
}

// updateSettingsPage applies a partial update: absent fields keep
// their value.
func (s *webService) updateSettingsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := settingsRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing settings: %s", err)))
			return
		}

		if req.Environment != nil {
			environment := *req.Environment
			if environment != upstream.EnvironmentProduction &&
				environment != upstream.EnvironmentStaging &&
				environment != upstream.EnvironmentDevelopment {
				errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(fmt.Errorf("unknown environment %q", environment)))
				return
			}
			s.settings.SetEnvironment(environment)
		}
		if req.UseMocks != nil {
			s.settings.SetUseMocks(*req.UseMocks)
		}
		if req.SlowNetwork != nil {
			s.settings.SetSlowNetwork(*req.SlowNetwork)
		}

		s.logger.Log(c, "debug", mylog.SeverityInfo, "Settings changed: %+v", s.currentSettings())

		errorWriter.Write(c, w, http.StatusOK, s.currentSettings())
	}
}

func (s *webService) currentSettings() settingsResponse {
	return settingsResponse{
		Environment: s.settings.Environment(),
		UseMocks:    s.settings.UseMocks(),
		SlowNetwork: s.settings.SlowNetwork(),
		BaseURL:     s.settings.BaseURL(),
	}
}
