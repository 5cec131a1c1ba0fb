package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/artaltay/miniapp/lib/mylog"
	"github.com/artaltay/miniapp/services/eventapi"
	"github.com/artaltay/miniapp/services/mainbutton"
)

func TestMachineInitialState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	machine, button, _ := newMachine(t, ctrl, singleSession())

	step, _ := machine.Current()
	assert.Equal(t, StepDetails, step)

	// nothing to validate yet on the details screen, the button is live
	state := button.State()
	assert.Equal(t, "Забронировать", state.Label)
	assert.True(t, state.Visible)
	assert.True(t, state.Enabled)
	assert.Equal(t, "#0B9A8D", state.Background)
	assert.Equal(t, "#FFFFFF", state.TextColor)
}

func TestMachineDetailsAdvanceUnconditional(t *testing.T) {
	ctx := context.TODO()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	machine, button, haptics := newMachine(t, ctrl, singleSession())
	haptics.EXPECT().Selection()

	// no date, no time, no contact: the first step never blocks
	assert.NoError(t, button.Click(ctx))

	step, _ := machine.Current()
	assert.Equal(t, StepFormEntry, step)
}

func TestMachineScheduleSelection(t *testing.T) {
	ctx := context.TODO()

	t.Run("Button enables once date and time are chosen", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		machine, button, haptics := newMachine(t, ctrl, singleSession())
		haptics.EXPECT().Selection().AnyTimes()

		// on the schedule step the button waits for a full schedule
		assert.NoError(t, button.Click(ctx))
		assert.False(t, button.State().Enabled)
		assert.Equal(t, "#4B5563", button.State().Background)

		assert.NoError(t, machine.SelectDate(ctx, "2", "2025-09-12"))
		assert.False(t, button.State().Enabled)

		assert.NoError(t, machine.SelectTime(ctx, "2", "11:00"))
		assert.True(t, button.State().Enabled)
		assert.Equal(t, "#0B9A8D", button.State().Background)
	})

	t.Run("Changing the date invalidates the chosen time", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		machine, button, haptics := newMachine(t, ctrl, singleSession())
		haptics.EXPECT().Selection().AnyTimes()

		assert.NoError(t, button.Click(ctx))
		assert.NoError(t, machine.SelectDate(ctx, "2", "2025-09-12"))
		assert.NoError(t, machine.SelectTime(ctx, "2", "11:00"))
		assert.NoError(t, machine.SelectDate(ctx, "2", "2025-09-13"))

		_, session := machine.Current()
		assert.Equal(t, "2025-09-13", session.Lines[0].Date)
		assert.Empty(t, session.Lines[0].Time)
		assert.False(t, button.State().Enabled)
	})

	t.Run("Unknown line is refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		machine, _, _ := newMachine(t, ctrl, singleSession())

		assert.Error(t, machine.SelectDate(ctx, "99", "2025-09-12"))
	})
}

func TestMachineParticipants(t *testing.T) {
	ctx := context.TODO()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	machine, _, haptics := newMachine(t, ctrl, singleSession())

	// two in-bound increments plus the two clamp arrivals below
	haptics.EXPECT().Selection().Times(4)
	assert.NoError(t, machine.AdjustParticipants(ctx, "2", 1))
	assert.NoError(t, machine.AdjustParticipants(ctx, "2", 1))
	_, session := machine.Current()
	assert.Equal(t, 3, session.Lines[0].Quantity)

	// clamped at the group size, silently
	assert.NoError(t, machine.AdjustParticipants(ctx, "2", 100))
	_, session = machine.Current()
	assert.Equal(t, 10, session.Lines[0].Quantity)

	// at the bound a further increment is a no-op
	assert.NoError(t, machine.AdjustParticipants(ctx, "2", 1))
	_, session = machine.Current()
	assert.Equal(t, 10, session.Lines[0].Quantity)

	// and the same at the lower bound
	assert.NoError(t, machine.AdjustParticipants(ctx, "2", -100))
	assert.NoError(t, machine.AdjustParticipants(ctx, "2", -1))
	_, session = machine.Current()
	assert.Equal(t, 1, session.Lines[0].Quantity)
}

func TestMachineRefusesEarlyAdvance(t *testing.T) {
	ctx := context.TODO()

	t.Run("Schedule step without date and time", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		machine, button, haptics := newMachine(t, ctrl, singleSession())
		haptics.EXPECT().Selection()

		assert.NoError(t, button.Click(ctx))

		// no schedule chosen yet: the tap bounces
		haptics.EXPECT().Error()
		machine.tap(ctx)

		step, _ := machine.Current()
		assert.Equal(t, StepFormEntry, step)
		assert.False(t, button.State().Enabled)
	})

	t.Run("Payment step without contact", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		session := readyForPayment()
		session.Contact = eventapi.Contact{}

		machine, button, haptics := newMachine(t, ctrl, session)
		haptics.EXPECT().Selection().Times(2)

		assert.NoError(t, button.Click(ctx))
		assert.NoError(t, button.Click(ctx))
		assert.False(t, button.State().Enabled)

		// the submitter must never be reached
		haptics.EXPECT().Error()
		machine.tap(ctx)

		step, _ := machine.Current()
		assert.Equal(t, StepPayment, step)
	})
}

func TestMachineHappyPath(t *testing.T) {
	ctx := context.TODO()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	machine, button, haptics := newMachine(t, ctrl, singleSession())
	haptics.EXPECT().Selection().AnyTimes()
	haptics.EXPECT().Success()

	// details: nothing to fill in, straight through
	assert.NoError(t, button.Click(ctx))

	step, _ := machine.Current()
	assert.Equal(t, StepFormEntry, step)
	assert.Equal(t, "Перейти к оплате", button.State().Label)
	assert.False(t, button.State().Enabled)

	// form entry: date, time and party size unlock the button
	assert.NoError(t, machine.SelectDate(ctx, "2", "2025-09-12"))
	assert.NoError(t, machine.SelectTime(ctx, "2", "11:00"))
	assert.NoError(t, machine.AdjustParticipants(ctx, "2", 1))
	assert.True(t, button.State().Enabled)
	assert.NoError(t, button.Click(ctx))

	step, _ = machine.Current()
	assert.Equal(t, StepPayment, step)
	assert.Equal(t, "Оплатить", button.State().Label)
	assert.False(t, button.State().Enabled)

	// payment: contact details unlock the final tap
	assert.NoError(t, machine.SetContact(ctx, contact()))
	assert.True(t, button.State().Enabled)
	assert.NoError(t, machine.SetPaymentMethod(ctx, eventapi.PaymentMethodTelegramPay))
	assert.NoError(t, machine.SetUsePoints(ctx, true))

	machine.submitter.(*MockSubmitter).EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(c context.Context, session eventapi.CheckoutSession) (eventapi.ConfirmationRecord, error) {
			// price carried into the submission: 2 x 3500 minus capped discount
			assert.Equal(t, 7000, session.SubTotal())
			assert.Equal(t, 250, session.Discount())
			assert.Equal(t, 6750, session.GrandTotal())

			return eventapi.ConfirmationRecord{UID: "conf-1", BookingIDs: []string{"bk-1"}, TotalCharged: 6750}, nil
		})
	assert.NoError(t, button.Click(ctx))

	// confirmation: button gone, record available
	step, _ = machine.Current()
	assert.Equal(t, StepConfirmation, step)
	assert.False(t, button.State().Visible)

	confirmation, exists := machine.Confirmation()
	assert.True(t, exists)
	assert.Equal(t, "conf-1", confirmation.UID)

	// one handler registration per interactive step, all released
	registrations, deregistrations := button.HandlerCounts()
	assert.Equal(t, 3, registrations)
	assert.Equal(t, 3, deregistrations)
}

func TestMachineAcceptsEmailOnlyContact(t *testing.T) {
	ctx := context.TODO()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	session := readyForPayment()
	session.Contact = eventapi.Contact{}

	machine, button, haptics := newMachine(t, ctrl, session)
	haptics.EXPECT().Selection().AnyTimes()
	haptics.EXPECT().Success()

	advanceToPayment(t, ctx, machine, button)
	assert.False(t, button.State().Enabled)

	// a name plus one channel is enough, the phone may stay empty
	assert.NoError(t, machine.SetContact(ctx, eventapi.Contact{Name: "Иван", Email: "ivan@example.com"}))
	assert.True(t, button.State().Enabled)

	machine.submitter.(*MockSubmitter).EXPECT().Submit(gomock.Any(), gomock.Any()).
		Return(eventapi.ConfirmationRecord{UID: "conf-1"}, nil)
	assert.NoError(t, button.Click(ctx))

	step, _ := machine.Current()
	assert.Equal(t, StepConfirmation, step)
}

func TestMachineSingleParticipantTotal(t *testing.T) {
	ctx := context.TODO()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	session := eventapi.CheckoutSession{
		UID:     "session-2",
		UserUID: "u1",
		Lines: []eventapi.LineItem{
			{EventUID: "5", Title: "Мастер-класс по гончарному делу", UnitPrice: 3000, Quantity: 1, MaxParticipants: 8},
		},
	}

	machine, button, haptics := newMachine(t, ctrl, session)
	haptics.EXPECT().Selection().AnyTimes()
	haptics.EXPECT().Success()

	assert.NoError(t, button.Click(ctx))
	assert.NoError(t, machine.SelectDate(ctx, "5", "2025-09-20"))
	assert.NoError(t, machine.SelectTime(ctx, "5", "14:00"))
	assert.NoError(t, button.Click(ctx))
	assert.NoError(t, machine.SetContact(ctx, contact()))

	machine.submitter.(*MockSubmitter).EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(c context.Context, session eventapi.CheckoutSession) (eventapi.ConfirmationRecord, error) {
			// one participant, no points: the total is the bare unit price
			assert.Equal(t, 3000, session.SubTotal())
			assert.Equal(t, 0, session.Discount())
			assert.Equal(t, 3000, session.GrandTotal())

			return eventapi.ConfirmationRecord{UID: "conf-2", BookingIDs: []string{"bk-2"}, TotalCharged: 3000}, nil
		})
	assert.NoError(t, button.Click(ctx))

	confirmation, exists := machine.Confirmation()
	assert.True(t, exists)
	assert.Equal(t, 3000, confirmation.TotalCharged)
}

func TestMachineBackKeepsFields(t *testing.T) {
	ctx := context.TODO()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	machine, button, haptics := newMachine(t, ctrl, singleSession())
	haptics.EXPECT().Selection().AnyTimes()

	assert.NoError(t, machine.SelectDate(ctx, "2", "2025-09-12"))
	assert.NoError(t, machine.SelectTime(ctx, "2", "11:00"))
	assert.NoError(t, button.Click(ctx))
	assert.NoError(t, machine.SetContact(ctx, contact()))

	assert.NoError(t, machine.Back(ctx))

	step, session := machine.Current()
	assert.Equal(t, StepDetails, step)
	assert.Equal(t, "2025-09-12", session.Lines[0].Date)
	assert.Equal(t, "11:00", session.Lines[0].Time)
	assert.Equal(t, "Александр Иванов", session.Contact.Name)

	// back from the first step is refused
	assert.Error(t, machine.Back(ctx))
}

func TestMachineSubmissionFailure(t *testing.T) {
	ctx := context.TODO()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	machine, button, haptics := newMachine(t, ctrl, readyForPayment())
	haptics.EXPECT().Selection().AnyTimes()
	haptics.EXPECT().Error()

	machine.submitter.(*MockSubmitter).EXPECT().Submit(gomock.Any(), gomock.Any()).
		Return(eventapi.ConfirmationRecord{}, assert.AnError)

	advanceToPayment(t, ctx, machine, button)
	assert.NoError(t, button.Click(ctx))

	// still on payment, button active again for a retry
	step, _ := machine.Current()
	assert.Equal(t, StepPayment, step)
	assert.True(t, button.State().Visible)
	assert.True(t, button.State().Enabled)
	_, exists := machine.Confirmation()
	assert.False(t, exists)
}

func TestMachineIgnoresTapsWhileSubmitting(t *testing.T) {
	ctx := context.TODO()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	machine, button, haptics := newMachine(t, ctrl, readyForPayment())
	haptics.EXPECT().Selection().AnyTimes()
	haptics.EXPECT().Success()

	started := make(chan struct{})
	release := make(chan struct{})
	machine.submitter.(*MockSubmitter).EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(c context.Context, session eventapi.CheckoutSession) (eventapi.ConfirmationRecord, error) {
			close(started)
			<-release

			return eventapi.ConfirmationRecord{UID: "conf-1"}, nil
		})

	advanceToPayment(t, ctx, machine, button)

	done := make(chan struct{})
	go func() {
		assert.NoError(t, button.Click(ctx))
		close(done)
	}()
	<-started

	// while in flight the button is disabled, so a second tap bounces
	// and never reaches the submitter
	assert.Error(t, button.Click(ctx))

	close(release)
	<-done

	step, _ := machine.Current()
	assert.Equal(t, StepConfirmation, step)
}

func TestMachineDetachDropsLateResult(t *testing.T) {
	ctx := context.TODO()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	machine, button, haptics := newMachine(t, ctrl, readyForPayment())
	haptics.EXPECT().Selection().AnyTimes()

	started := make(chan struct{})
	release := make(chan struct{})
	machine.submitter.(*MockSubmitter).EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(c context.Context, session eventapi.CheckoutSession) (eventapi.ConfirmationRecord, error) {
			close(started)
			<-release

			return eventapi.ConfirmationRecord{UID: "conf-1"}, nil
		})

	advanceToPayment(t, ctx, machine, button)

	done := make(chan struct{})
	go func() {
		assert.NoError(t, button.Click(ctx))
		close(done)
	}()
	<-started

	machine.Detach()
	close(release)
	<-done

	// the late result is dropped: no confirmation, no success haptic
	_, exists := machine.Confirmation()
	assert.False(t, exists)
	assert.False(t, button.State().Visible)
}

func TestMachineCartModeLabels(t *testing.T) {
	ctx := context.TODO()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	session := singleSession()
	session.FromCart = true
	session.Lines[0].Date = "2025-09-12"
	session.Lines[0].Time = "11:00"

	machine, button, haptics := newMachine(t, ctrl, session)
	haptics.EXPECT().Selection().AnyTimes()

	assert.Equal(t, "Перейти к оформлению", button.State().Label)

	assert.NoError(t, button.Click(ctx))
	assert.Equal(t, "Перейти к оплате", button.State().Label)

	assert.NoError(t, machine.SetContact(ctx, contact()))
	assert.NoError(t, button.Click(ctx))
	assert.Equal(t, "Оформить заказ", button.State().Label)
}

func newMachine(t *testing.T, ctrl *gomock.Controller, session eventapi.CheckoutSession) (*Machine, *mainbutton.Button, *mainbutton.MockHaptics) {
	button := mainbutton.NewButton()
	haptics := mainbutton.NewMockHaptics(ctrl)
	submitter := NewMockSubmitter(ctrl)

	machine := NewMachine(session, button, haptics, submitter, mylog.New("checkout"))

	return machine, button, haptics
}

func singleSession() eventapi.CheckoutSession {
	return eventapi.CheckoutSession{
		UID:           "session-1",
		UserUID:       "u1",
		LoyaltyPoints: 250,
		Lines: []eventapi.LineItem{
			{EventUID: "2", Title: "Рафтинг по реке Катунь", UnitPrice: 3500, Quantity: 1, MaxParticipants: 10},
		},
	}
}

func readyForPayment() eventapi.CheckoutSession {
	session := singleSession()
	session.Lines[0].Date = "2025-09-12"
	session.Lines[0].Time = "11:00"
	session.Contact = contact()
	session.PaymentMethod = eventapi.PaymentMethodTelegramPay

	return session
}

func advanceToPayment(t *testing.T, ctx context.Context, machine *Machine, button *mainbutton.Button) {
	assert.NoError(t, button.Click(ctx))
	assert.NoError(t, button.Click(ctx))

	step, _ := machine.Current()
	assert.Equal(t, StepPayment, step)
}

func contact() eventapi.Contact {
	return eventapi.Contact{
		Name:  "Александр Иванов",
		Phone: "+7 (999) 123-45-67",
		Email: "alex@example.com",
	}
}
