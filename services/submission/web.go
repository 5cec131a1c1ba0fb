package submission

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/artaltay/miniapp/lib/mycontext"
	"github.com/artaltay/miniapp/lib/myhttp"
	"github.com/artaltay/miniapp/lib/mylog"
	"github.com/artaltay/miniapp/lib/mypublisher"
	"github.com/artaltay/miniapp/lib/myqueue"
	"github.com/artaltay/miniapp/lib/mystore"
	"github.com/artaltay/miniapp/lib/mytime"
	"github.com/artaltay/miniapp/lib/myuuid"
	"github.com/artaltay/miniapp/services/eventapi"
	"github.com/artaltay/miniapp/services/upstream"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

func NewWebService(client upstream.Client, carts CartClearer, confirmationStore mystore.Store[eventapi.ConfirmationRecord], publisher mypublisher.Publisher, queue myqueue.TaskQueuer, nower mytime.Nower, sleeper mytime.Sleeper, uuider myuuid.UUIDer) *webService {
	logger := mylog.New("submission")
	return &webService{
		service: newService(client, carts, confirmationStore, publisher, queue, nower, sleeper, uuider, logger),
		logger:  logger,
	}
}

// Submit lets the web service double as the checkout submitter.
func (s *webService) Submit(c context.Context, session eventapi.CheckoutSession) (eventapi.ConfirmationRecord, error) {
	return s.service.Submit(c, session)
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	err := s.service.publisher.CreateTopic(c, "booking")
	if err != nil {
		return err
	}

	router.HandleFunc("/api/confirmations/{confirmationUID}", s.getConfirmationPage()).Methods("GET")
	router.HandleFunc("/api/notifications/bookings/{confirmationUID}", s.notificationWebhookPage()).Methods("POST")

	return nil
}

func (s *webService) getConfirmationPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		confirmationUID := mux.Vars(r)["confirmationUID"]

		confirmation, err := s.service.getConfirmation(c, confirmationUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, confirmation)
	}
}

// notificationWebhookPage is invoked by the task queue after a
// confirmation has been stored. It fans the booking result out to the
// user-facing notification channel.
func (s *webService) notificationWebhookPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		confirmationUID := mux.Vars(r)["confirmationUID"]

		confirmation, err := s.service.getConfirmation(c, confirmationUID)
		if err != nil {
			// a non-2xx would make the queue retry forever on a
			// missing record
			s.logger.Log(c, confirmationUID, mylog.SeverityWarn, "Notification for unknown confirmation %s", confirmationUID)
			errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{})
			return
		}

		s.logger.Log(c, confirmationUID, mylog.SeverityInfo, "Notifying user %s: %d booking(s) confirmed for a total of %d",
			confirmation.UserUID, len(confirmation.BookingIDs), confirmation.TotalCharged)

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{})
	}
}
