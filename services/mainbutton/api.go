package mainbutton

import (
	"context"
)

// ClickHandler is invoked when the shopper taps the host-owned main
// button. At most one handler is registered at a time.
type ClickHandler func(c context.Context)

//go:generate mockgen -source=api.go -package mainbutton -destination mainbutton_mock.go Controller,Haptics
type Controller interface {
	SetLabel(label string)
	SetEnabled(enabled bool)
	SetVisible(visible bool)
	SetColors(background string, text string)
	SetClickHandler(handler ClickHandler)
}

type Haptics interface {
	Selection()
	Success()
	Error()
}
