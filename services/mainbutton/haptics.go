package mainbutton

import (
	"context"

	"github.com/artaltay/miniapp/lib/mylog"
)

// loggingHaptics stands in for the device vibration motor on the
// server side: feedback moments are only logged.
type loggingHaptics struct {
	logger mylog.Logger
}

func NewLoggingHaptics() Haptics {
	return &loggingHaptics{
		logger: mylog.New("haptics"),
	}
}

func (h loggingHaptics) Selection() {
	h.logger.Log(context.Background(), "", mylog.SeverityDebug, "Haptic feedback: selection")
}

func (h loggingHaptics) Success() {
	h.logger.Log(context.Background(), "", mylog.SeverityDebug, "Haptic feedback: success")
}

func (h loggingHaptics) Error() {
	h.logger.Log(context.Background(), "", mylog.SeverityDebug, "Haptic feedback: error")
}
