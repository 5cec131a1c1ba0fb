package mainbutton

import (
	"context"
	"fmt"
	"sync"

	"github.com/artaltay/miniapp/lib/myerrors"
)

// State is what the frontend needs to render the button. Revision only
// moves when something actually changed, so pollers can cheaply detect
// updates.
type State struct {
	Label      string
	Background string
	TextColor  string
	Enabled    bool
	Visible    bool
	Revision   int
}

// Button mirrors the host-owned main button of one session. Setters
// are idempotent: repeating the current value is a no-op.
type Button struct {
	mutex           sync.Mutex
	state           State
	handler         ClickHandler
	registrations   int
	deregistrations int
}

func NewButton() *Button {
	return &Button{}
}

func (b *Button) SetLabel(label string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.state.Label == label {
		return
	}
	b.state.Label = label
	b.state.Revision++
}

func (b *Button) SetEnabled(enabled bool) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.state.Enabled == enabled {
		return
	}
	b.state.Enabled = enabled
	b.state.Revision++
}

func (b *Button) SetVisible(visible bool) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.state.Visible == visible {
		return
	}
	b.state.Visible = visible
	b.state.Revision++
}

func (b *Button) SetColors(background string, text string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.state.Background == background && b.state.TextColor == text {
		return
	}
	b.state.Background = background
	b.state.TextColor = text
	b.state.Revision++
}

func (b *Button) SetClickHandler(handler ClickHandler) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.handler != nil {
		b.deregistrations++
	}
	if handler != nil {
		b.registrations++
	}
	b.handler = handler
}

// Click relays a tap to the registered handler. The handler runs
// without the lock held so it can reconfigure the button.
func (b *Button) Click(c context.Context) error {
	b.mutex.Lock()
	handler := b.handler
	enabled := b.state.Enabled && b.state.Visible
	b.mutex.Unlock()

	if handler == nil || !enabled {
		return myerrors.NewConflictError(fmt.Errorf("no active click handler"))
	}

	handler(c)

	return nil
}

func (b *Button) State() State {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.state
}

// HandlerCounts reports how often a handler got registered and
// deregistered over the button's lifetime.
func (b *Button) HandlerCounts() (int, int) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.registrations, b.deregistrations
}
