package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/artaltay/miniapp/lib/myerrors"
	"github.com/artaltay/miniapp/lib/mylog"
	"github.com/artaltay/miniapp/lib/mypublisher"
	"github.com/artaltay/miniapp/lib/myqueue"
	"github.com/artaltay/miniapp/lib/mystore"
	"github.com/artaltay/miniapp/lib/mytime"
	"github.com/artaltay/miniapp/lib/myuuid"
	"github.com/artaltay/miniapp/services/bookingevents"
	"github.com/artaltay/miniapp/services/eventapi"
	"github.com/artaltay/miniapp/services/upstream"
)

const settlementDelay = 2 * time.Second

// CartClearer empties the cart after a successful cart checkout.
//
//go:generate mockgen -source=service.go -package submission -destination cartclearer_mock.go CartClearer
type CartClearer interface {
	ClearCart(c context.Context, userUID string) error
}

type service struct {
	client            upstream.Client
	carts             CartClearer
	confirmationStore mystore.Store[eventapi.ConfirmationRecord]
	publisher         mypublisher.Publisher
	queue             myqueue.TaskQueuer
	nower             mytime.Nower
	sleeper           mytime.Sleeper
	uuider            myuuid.UUIDer
	logger            mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(client upstream.Client, carts CartClearer, confirmationStore mystore.Store[eventapi.ConfirmationRecord], publisher mypublisher.Publisher, queue myqueue.TaskQueuer, nower mytime.Nower, sleeper mytime.Sleeper, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		client:            client,
		carts:             carts,
		confirmationStore: confirmationStore,
		publisher:         publisher,
		queue:             queue,
		nower:             nower,
		sleeper:           sleeper,
		uuider:            uuider,
		logger:            logger,
	}
}

// Submit books every line of the session in order. The first failure
// stops the run: bookings already issued stay issued, the cart stays
// untouched and the error names the item that failed.
func (s *service) Submit(c context.Context, session eventapi.CheckoutSession) (eventapi.ConfirmationRecord, error) {
	if len(session.Lines) == 0 {
		return eventapi.ConfirmationRecord{}, myerrors.NewInvalidInputError(fmt.Errorf("checkout session %s has no lines", session.UID))
	}

	err := s.publisher.Publish(c, bookingevents.TopicName, bookingevents.BookingStarted{
		SessionUID:    session.UID,
		UserUID:       session.UserUID,
		LineCount:     len(session.Lines),
		AmountInCents: int64(session.GrandTotal()),
		FromCart:      session.FromCart,
	})
	if err != nil {
		return eventapi.ConfirmationRecord{}, myerrors.NewInternalError(err)
	}

	bookingIDs := []string{}
	for _, line := range session.Lines {
		s.logger.Log(c, session.UID, mylog.SeverityInfo, "Checkout %s: booking %q (%d participant(s))", session.UID, line.Title, line.Quantity)

		created, err := s.client.CreateBooking(c, bookingRequest(session, line))
		if err != nil {
			s.reportFailure(c, session, line, bookingIDs, err)

			return eventapi.ConfirmationRecord{}, myerrors.NewInternalError(fmt.Errorf("не удалось забронировать «%s»: %s", line.Title, err))
		}
		bookingIDs = append(bookingIDs, created.BookingID)
	}

	// simulated settlement window
	s.sleeper.Sleep(c, settlementDelay)

	if session.FromCart {
		err := s.carts.ClearCart(c, session.UserUID)
		if err != nil {
			// all bookings are issued, a stale cart is the lesser evil
			s.logger.Log(c, session.UID, mylog.SeverityWarn, "Checkout %s: could not clear cart: %s", session.UID, err)
		}
	}

	confirmation := eventapi.ConfirmationRecord{
		UID:           s.uuider.Create(),
		UserUID:       session.UserUID,
		SessionUID:    session.UID,
		BookingIDs:    bookingIDs,
		TotalCharged:  session.GrandTotal(),
		PaymentMethod: session.PaymentMethod,
		CreatedAt:     s.nower.Now(),
	}

	err = s.confirmationStore.RunInTransaction(c, func(c context.Context) error {
		err := s.confirmationStore.Put(c, confirmation.UID, confirmation)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, bookingevents.TopicName, bookingevents.BookingCompleted{
			SessionUID:      session.UID,
			ConfirmationUID: confirmation.UID,
			UserUID:         session.UserUID,
			BookingIDs:      bookingIDs,
			AmountInCents:   int64(confirmation.TotalCharged),
			PaymentMethod:   string(session.PaymentMethod),
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		if session.FromCart {
			err = s.publisher.Publish(c, bookingevents.TopicName, bookingevents.CartCheckedOut{
				SessionUID: session.UID,
				UserUID:    session.UserUID,
				EventUIDs:  eventUIDs(session),
			})
			if err != nil {
				return myerrors.NewInternalError(err)
			}
		}

		return nil
	})
	if err != nil {
		return eventapi.ConfirmationRecord{}, err
	}

	err = s.queue.Enqueue(c, myqueue.Task{
		UID:            confirmation.UID,
		WebhookURLPath: fmt.Sprintf("/api/notifications/bookings/%s", confirmation.UID),
		Payload:        []byte(fmt.Sprintf(`{"confirmationUid":%q}`, confirmation.UID)),
	})
	if err != nil {
		return eventapi.ConfirmationRecord{}, myerrors.NewInternalError(err)
	}

	s.trackCompletion(c, session, confirmation)

	return confirmation, nil
}

func (s *service) reportFailure(c context.Context, session eventapi.CheckoutSession, line eventapi.LineItem, issued []string, cause error) {
	s.logger.Log(c, session.UID, mylog.SeverityWarn, "Checkout %s: booking of %q failed after %d issued booking(s): %s", session.UID, line.Title, len(issued), cause)

	err := s.publisher.Publish(c, bookingevents.TopicName, bookingevents.BookingFailed{
		SessionUID:     session.UID,
		UserUID:        session.UserUID,
		FailedEventUID: line.EventUID,
		FailedTitle:    line.Title,
		IssuedBookings: issued,
		Reason:         cause.Error(),
	})
	if err != nil {
		s.logger.Log(c, session.UID, mylog.SeverityError, "Checkout %s: could not publish failure event: %s", session.UID, err)
	}
}

// trackCompletion is fire and forget: analytics must never fail a
// booking.
func (s *service) trackCompletion(c context.Context, session eventapi.CheckoutSession, confirmation eventapi.ConfirmationRecord) {
	err := s.client.TrackEvent(c, eventapi.AnalyticsEvent{
		Event:     "booking_completed",
		Timestamp: s.nower.Now(),
		Params: map[string]string{
			"sessionUid":   session.UID,
			"bookingCount": fmt.Sprintf("%d", len(confirmation.BookingIDs)),
			"totalCharged": fmt.Sprintf("%d", confirmation.TotalCharged),
		},
	})
	if err != nil {
		s.logger.Log(c, session.UID, mylog.SeverityWarn, "Checkout %s: analytics tracking failed: %s", session.UID, err)
	}
}

func (s *service) getConfirmation(c context.Context, uid string) (eventapi.ConfirmationRecord, error) {
	confirmation, exists, err := s.confirmationStore.Get(c, uid)
	if err != nil {
		return eventapi.ConfirmationRecord{}, myerrors.NewInternalError(err)
	}
	if !exists {
		return eventapi.ConfirmationRecord{}, myerrors.NewNotFoundError(fmt.Errorf("confirmation %s not found", uid))
	}

	return confirmation, nil
}

func bookingRequest(session eventapi.CheckoutSession, line eventapi.LineItem) eventapi.BookingRequest {
	return eventapi.BookingRequest{
		EventID:         line.EventUID,
		Date:            line.Date,
		Time:            line.Time,
		Participants:    line.Quantity,
		ContactName:     session.Contact.Name,
		ContactPhone:    session.Contact.Phone,
		ContactEmail:    session.Contact.Email,
		SpecialRequests: session.Contact.SpecialRequests,
		PaymentMethod:   session.PaymentMethod,
		UsePoints:       session.UsePoints,
		UserID:          session.UserUID,
	}
}

func eventUIDs(session eventapi.CheckoutSession) []string {
	uids := []string{}
	for _, line := range session.Lines {
		uids = append(uids, line.EventUID)
	}

	return uids
}
