package checkout

import (
	"context"
	"fmt"
	"sync"

	"github.com/artaltay/miniapp/lib/myerrors"
	"github.com/artaltay/miniapp/lib/mylog"
	"github.com/artaltay/miniapp/services/eventapi"
	"github.com/artaltay/miniapp/services/mainbutton"
)

type Step string

const (
	StepDetails      Step = "details"
	StepFormEntry    Step = "booking"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

const (
	activeColor   = "#0B9A8D"
	disabledColor = "#4B5563"
	textColor     = "#FFFFFF"
)

//go:generate mockgen -source=machine.go -package checkout -destination submitter_mock.go Submitter
type Submitter interface {
	Submit(c context.Context, session eventapi.CheckoutSession) (eventapi.ConfirmationRecord, error)
}

// Machine drives one checkout wizard. It owns the session data and
// mirrors each step onto the host-owned main button: exactly one click
// handler is registered per step, the label and colors follow the step,
// and enabled tracks whether the step's exit condition holds.
type Machine struct {
	mutex        sync.Mutex
	session      eventapi.CheckoutSession
	step         Step
	submitting   bool
	detached     bool
	confirmation *eventapi.ConfirmationRecord

	button    mainbutton.Controller
	haptics   mainbutton.Haptics
	submitter Submitter
	logger    mylog.Logger
}

func NewMachine(session eventapi.CheckoutSession, button mainbutton.Controller, haptics mainbutton.Haptics, submitter Submitter, logger mylog.Logger) *Machine {
	m := &Machine{
		session:   session,
		button:    button,
		haptics:   haptics,
		submitter: submitter,
		logger:    logger,
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.enterStep(StepDetails)

	return m
}

func (m *Machine) Current() (Step, eventapi.CheckoutSession) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.step, m.session
}

func (m *Machine) Confirmation() (eventapi.ConfirmationRecord, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.confirmation == nil {
		return eventapi.ConfirmationRecord{}, false
	}

	return *m.confirmation, true
}

// Detach disconnects the machine from its session: a submission result
// that arrives later is silently dropped.
func (m *Machine) Detach() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.detached = true
	m.button.SetClickHandler(nil)
	m.button.SetVisible(false)
}

// SelectDate picks a date for a line. Changing the date invalidates the
// time already chosen for that line.
func (m *Machine) SelectDate(c context.Context, eventUID string, date string) error {
	return m.mutateLine(c, eventUID, func(line *eventapi.LineItem) bool {
		if line.Date == date {
			return false
		}
		line.Date = date
		line.Time = ""

		return true
	})
}

func (m *Machine) SelectTime(c context.Context, eventUID string, slot string) error {
	return m.mutateLine(c, eventUID, func(line *eventapi.LineItem) bool {
		if line.Time == slot {
			return false
		}
		line.Time = slot

		return true
	})
}

// AdjustParticipants moves the group size by delta, clamped to
// [1, maxParticipants]. At a bound the call is a no-op.
func (m *Machine) AdjustParticipants(c context.Context, eventUID string, delta int) error {
	return m.mutateLine(c, eventUID, func(line *eventapi.LineItem) bool {
		quantity := line.Quantity + delta
		if quantity < 1 {
			quantity = 1
		}
		if line.MaxParticipants > 0 && quantity > line.MaxParticipants {
			quantity = line.MaxParticipants
		}
		if quantity == line.Quantity {
			return false
		}
		line.Quantity = quantity

		return true
	})
}

func (m *Machine) mutateLine(c context.Context, eventUID string, modify func(line *eventapi.LineItem) bool) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.step == StepConfirmation {
		return myerrors.NewConflictError(fmt.Errorf("checkout already completed"))
	}

	for i := range m.session.Lines {
		if m.session.Lines[i].EventUID != eventUID {
			continue
		}
		if modify(&m.session.Lines[i]) {
			m.refreshButton()
			m.haptics.Selection()
		}

		return nil
	}

	return myerrors.NewNotFoundError(fmt.Errorf("event %s not part of this checkout", eventUID))
}

func (m *Machine) SetContact(c context.Context, contact eventapi.Contact) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.step == StepConfirmation {
		return myerrors.NewConflictError(fmt.Errorf("checkout already completed"))
	}

	m.session.Contact = contact
	m.refreshButton()

	return nil
}

func (m *Machine) SetPaymentMethod(c context.Context, method eventapi.PaymentMethod) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.step == StepConfirmation {
		return myerrors.NewConflictError(fmt.Errorf("checkout already completed"))
	}
	if !method.IsValid() {
		m.haptics.Error()
		return myerrors.NewInvalidInputError(fmt.Errorf("unknown payment method %s", method))
	}

	m.session.PaymentMethod = method
	m.refreshButton()
	m.haptics.Selection()

	return nil
}

func (m *Machine) SetUsePoints(c context.Context, usePoints bool) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.step == StepConfirmation {
		return myerrors.NewConflictError(fmt.Errorf("checkout already completed"))
	}

	m.session.UsePoints = usePoints
	m.refreshButton()

	return nil
}

// Back returns to the previous step. It never clears what the shopper
// already entered. Leaving the confirmation is not possible.
func (m *Machine) Back(c context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.submitting {
		return myerrors.NewConflictError(fmt.Errorf("submission in progress"))
	}

	switch m.step {
	case StepFormEntry:
		m.enterStep(StepDetails)
	case StepPayment:
		m.enterStep(StepFormEntry)
	default:
		return myerrors.NewConflictError(fmt.Errorf("cannot go back from step %s", m.step))
	}

	return nil
}

// tap is the single click handler. On the payment step it runs the
// submission synchronously: at most one is in flight and taps during
// that window are ignored.
func (m *Machine) tap(c context.Context) {
	m.mutex.Lock()

	if m.submitting || m.detached {
		m.mutex.Unlock()
		return
	}

	switch m.step {
	case StepDetails:
		// always allowed, the schedule is picked on the next step
		m.advance(c, StepFormEntry, true)
	case StepFormEntry:
		m.advance(c, StepPayment, m.session.ScheduleComplete())
	case StepPayment:
		m.submit(c)
	default:
		m.mutex.Unlock()
	}
}

// advance is called with the lock held and releases it.
func (m *Machine) advance(c context.Context, next Step, allowed bool) {
	if !allowed {
		m.mutex.Unlock()
		m.haptics.Error()
		return
	}

	m.logger.Log(c, m.session.UID, mylog.SeverityInfo, "Checkout %s: step %s -> %s", m.session.UID, m.step, next)
	m.enterStep(next)
	m.mutex.Unlock()
	m.haptics.Selection()
}

// submit is called with the lock held and releases it.
func (m *Machine) submit(c context.Context) {
	if !m.session.Contact.IsComplete() {
		m.mutex.Unlock()
		m.haptics.Error()
		return
	}

	m.submitting = true
	m.button.SetEnabled(false)
	m.button.SetColors(disabledColor, textColor)
	session := m.session
	m.mutex.Unlock()

	m.logger.Log(c, session.UID, mylog.SeverityInfo, "Checkout %s: submitting %d line(s)", session.UID, len(session.Lines))

	confirmation, err := m.submitter.Submit(c, session)

	m.mutex.Lock()
	m.submitting = false

	if m.detached {
		m.mutex.Unlock()
		return
	}

	if err != nil {
		m.logger.Log(c, session.UID, mylog.SeverityWarn, "Checkout %s: submission failed: %s", session.UID, err)
		m.refreshButton()
		m.mutex.Unlock()
		m.haptics.Error()
		return
	}

	m.confirmation = &confirmation
	m.enterStep(StepConfirmation)
	m.mutex.Unlock()
	m.haptics.Success()
}

// enterStep reconfigures the button for the new step. Must be called
// with the lock held.
func (m *Machine) enterStep(step Step) {
	m.step = step

	m.button.SetClickHandler(nil)

	if step == StepConfirmation {
		m.button.SetVisible(false)
		return
	}

	m.button.SetLabel(m.label(step))
	m.refreshButton()
	m.button.SetVisible(true)
	m.button.SetClickHandler(m.tap)
}

// refreshButton syncs enabled state and colors with the current exit
// condition. Must be called with the lock held.
func (m *Machine) refreshButton() {
	if m.step == StepConfirmation {
		return
	}

	enabled := m.exitConditionHolds() && !m.submitting
	m.button.SetEnabled(enabled)
	if enabled {
		m.button.SetColors(activeColor, textColor)
	} else {
		m.button.SetColors(disabledColor, textColor)
	}
}

func (m *Machine) exitConditionHolds() bool {
	switch m.step {
	case StepDetails:
		return true
	case StepFormEntry:
		return m.session.ScheduleComplete()
	case StepPayment:
		return m.session.Contact.IsComplete()
	default:
		return false
	}
}

func (m *Machine) label(step Step) string {
	if m.session.FromCart {
		switch step {
		case StepDetails:
			return "Перейти к оформлению"
		case StepFormEntry:
			return "Перейти к оплате"
		default:
			return "Оформить заказ"
		}
	}

	switch step {
	case StepDetails:
		return "Забронировать"
	case StepFormEntry:
		return "Перейти к оплате"
	default:
		return "Оплатить"
	}
}
