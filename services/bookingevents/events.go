package bookingevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/artaltay/miniapp/lib/myerrors"
	"github.com/artaltay/miniapp/lib/myevents"
)

const (
	TopicName            = "booking"
	bookingStartedName   = TopicName + ".started"
	bookingCompletedName = TopicName + ".completed"
	bookingFailedName    = TopicName + ".failed"
	cartCheckedOutName   = TopicName + ".cartCheckedOut"
)

type BookingEventService interface {
	Subscribe(c context.Context) error
	OnBookingStarted(c context.Context, topic string, event BookingStarted) error
	OnBookingCompleted(c context.Context, topic string, event BookingCompleted) error
	OnBookingFailed(c context.Context, topic string, event BookingFailed) error
}

func DispatchEvent(c context.Context, reader io.Reader, service BookingEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case bookingStartedName:
		{
			event := BookingStarted{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnBookingStarted(c, envelope.Topic, event)
		}
	case bookingCompletedName:
		{
			event := BookingCompleted{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnBookingCompleted(c, envelope.Topic, event)
		}
	case bookingFailedName:
		{
			event := BookingFailed{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnBookingFailed(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf(envelope.EventTypeName))
	}
}

type BookingStarted struct {
	SessionUID    string
	UserUID       string
	LineCount     int
	AmountInCents int64
	FromCart      bool
}

func (e BookingStarted) GetEventTypeName() string {
	return bookingStartedName
}

func (e BookingStarted) GetAggregateName() string {
	return e.SessionUID
}

type BookingCompleted struct {
	SessionUID      string
	ConfirmationUID string
	UserUID         string
	BookingIDs      []string
	AmountInCents   int64
	PaymentMethod   string
}

func (e BookingCompleted) GetEventTypeName() string {
	return bookingCompletedName
}

func (e BookingCompleted) GetAggregateName() string {
	return e.SessionUID
}

type BookingFailed struct {
	SessionUID     string
	UserUID        string
	FailedEventUID string
	FailedTitle    string
	IssuedBookings []string
	Reason         string
}

func (e BookingFailed) GetEventTypeName() string {
	return bookingFailedName
}

func (e BookingFailed) GetAggregateName() string {
	return e.SessionUID
}

type CartCheckedOut struct {
	SessionUID string
	UserUID    string
	EventUIDs  []string
}

func (e CartCheckedOut) GetEventTypeName() string {
	return cartCheckedOutName
}

func (e CartCheckedOut) GetAggregateName() string {
	return e.SessionUID
}
