package checkout

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/artaltay/miniapp/lib/mycontext"
	"github.com/artaltay/miniapp/lib/myerrors"
	"github.com/artaltay/miniapp/lib/myhttp"
	"github.com/artaltay/miniapp/lib/mylog"
	"github.com/artaltay/miniapp/lib/mystore"
	"github.com/artaltay/miniapp/lib/mytime"
	"github.com/artaltay/miniapp/lib/myuuid"
	"github.com/artaltay/miniapp/services/cart"
	"github.com/artaltay/miniapp/services/eventapi"
	"github.com/artaltay/miniapp/services/mainbutton"
	"github.com/artaltay/miniapp/services/upstream"
)

const defaultCartTime = "12:00"

// ButtonRegistry hands out the per-session main button.
type ButtonRegistry interface {
	ButtonForSession(sessionUID string) *mainbutton.Button
	DropSession(sessionUID string)
}

// CartReader gives access to the stored cart when a checkout starts
// from it.
type CartReader interface {
	Cart(c context.Context, userUID string) (cart.Cart, error)
}

type webService struct {
	logger       mylog.Logger
	sessionStore mystore.Store[eventapi.CheckoutSession]
	client       upstream.Client
	carts        CartReader
	buttons      ButtonRegistry
	haptics      mainbutton.Haptics
	submitter    Submitter
	nower        mytime.Nower
	uuider       myuuid.UUIDer

	mutex    sync.Mutex
	machines map[string]*Machine
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(sessionStore mystore.Store[eventapi.CheckoutSession], client upstream.Client, carts CartReader, buttons ButtonRegistry, haptics mainbutton.Haptics, submitter Submitter, nower mytime.Nower, uuider myuuid.UUIDer) *webService {
	return &webService{
		logger:       mylog.New("checkout"),
		sessionStore: sessionStore,
		client:       client,
		carts:        carts,
		buttons:      buttons,
		haptics:      haptics,
		submitter:    submitter,
		nower:        nower,
		uuider:       uuider,
		machines:     map[string]*Machine{},
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/checkout/{userUID}/event/{eventUID}", s.startSinglePage()).Methods("POST")
	router.HandleFunc("/api/checkout/{userUID}/cart", s.startFromCartPage()).Methods("POST")

	router.HandleFunc("/api/checkout/{sessionUID}", s.statusPage()).Methods("GET")
	router.HandleFunc("/api/checkout/{sessionUID}", s.teardownPage()).Methods("DELETE")
	router.HandleFunc("/api/checkout/{sessionUID}/back", s.backPage()).Methods("POST")

	router.HandleFunc("/api/checkout/{sessionUID}/date", s.fieldPage(s.applyDate)).Methods("PUT")
	router.HandleFunc("/api/checkout/{sessionUID}/time", s.fieldPage(s.applyTime)).Methods("PUT")
	router.HandleFunc("/api/checkout/{sessionUID}/participants", s.fieldPage(s.applyParticipants)).Methods("PUT")
	router.HandleFunc("/api/checkout/{sessionUID}/contact", s.fieldPage(s.applyContact)).Methods("PUT")
	router.HandleFunc("/api/checkout/{sessionUID}/payment-method", s.fieldPage(s.applyPaymentMethod)).Methods("PUT")
	router.HandleFunc("/api/checkout/{sessionUID}/use-points", s.fieldPage(s.applyUsePoints)).Methods("PUT")
}

type statusResponse struct {
	SessionUID   string
	Step         Step
	Session      eventapi.CheckoutSession
	SubTotal     int
	Discount     int
	GrandTotal   int
	Confirmation *eventapi.ConfirmationRecord `json:",omitempty"`
}

func (s *webService) startSinglePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)
		userUID := mux.Vars(r)["userUID"]
		eventUID := mux.Vars(r)["eventUID"]

		form, err := eventapi.NewBookingFormFromRequest(r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		event, err := s.client.GetEventByID(c, eventUID)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		quantity := form.Participants
		if quantity < 1 {
			quantity = 1
		}
		if event.MaxParticipants > 0 && quantity > event.MaxParticipants {
			quantity = event.MaxParticipants
		}

		session := s.newSession(c, userUID, false)
		session.Lines = []eventapi.LineItem{{
			EventUID:        event.ID,
			Title:           event.Title,
			UnitPrice:       event.Price,
			Quantity:        quantity,
			MaxParticipants: event.MaxParticipants,
			Date:            form.Date,
			Time:            form.Time,
		}}

		s.startMachine(c, w, responseWriter, session)
	}
}

func (s *webService) startFromCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)
		userUID := mux.Vars(r)["userUID"]

		crt, err := s.carts.Cart(c, userUID)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}
		if crt.IsEmpty() {
			responseWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(fmt.Errorf("cart of user %s is empty", userUID)))
			return
		}

		session := s.newSession(c, userUID, true)
		for _, line := range crt.Lines {
			event, err := s.client.GetEventByID(c, line.EventUID)
			if err != nil {
				responseWriter.WriteError(c, w, 3, err)
				return
			}

			// lines added without a schedule get a default one
			date := line.Date
			if date == "" {
				date = s.nower.Now().AddDate(0, 0, 1).Format("2006-01-02")
			}
			slot := line.Time
			if slot == "" {
				slot = defaultCartTime
			}

			session.Lines = append(session.Lines, eventapi.LineItem{
				EventUID:        event.ID,
				Title:           event.Title,
				UnitPrice:       event.Price,
				Quantity:        line.Quantity,
				MaxParticipants: event.MaxParticipants,
				Date:            date,
				Time:            slot,
			})
		}

		s.startMachine(c, w, responseWriter, session)
	}
}

func (s *webService) newSession(c context.Context, userUID string, fromCart bool) eventapi.CheckoutSession {
	session := eventapi.CheckoutSession{
		UID:           s.uuider.Create(),
		UserUID:       userUID,
		FromCart:      fromCart,
		PaymentMethod: eventapi.PaymentMethodTelegramPay,
		CreatedAt:     s.nower.Now(),
	}

	// best effort prefill from the profile
	profile, err := s.client.GetUserProfile(c, userUID)
	if err == nil {
		session.LoyaltyPoints = profile.LoyaltyPoints
		session.Contact = eventapi.Contact{
			Name:  fmt.Sprintf("%s %s", profile.FirstName, profile.LastName),
			Phone: profile.Phone,
			Email: profile.Email,
		}
	} else {
		s.logger.Log(c, userUID, mylog.SeverityWarn, "No profile prefill for user %s: %s", userUID, err)
	}

	return session
}

func (s *webService) startMachine(c context.Context, w http.ResponseWriter, responseWriter myhttp.ResponseWriter, session eventapi.CheckoutSession) {
	machine := NewMachine(session, s.buttons.ButtonForSession(session.UID), s.haptics, s.submitter, s.logger)

	s.mutex.Lock()
	s.machines[session.UID] = machine
	s.mutex.Unlock()

	s.logger.Log(c, session.UID, mylog.SeverityInfo, "Started checkout %s for user %s (fromCart:%t)", session.UID, session.UserUID, session.FromCart)

	err := s.persist(c, machine)
	if err != nil {
		responseWriter.WriteError(c, w, 10, err)
		return
	}

	responseWriter.Write(c, w, http.StatusOK, s.status(machine))
}

func (s *webService) machine(sessionUID string) (*Machine, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	machine, exists := s.machines[sessionUID]
	if !exists {
		return nil, myerrors.NewNotFoundError(fmt.Errorf("checkout session %s not found", sessionUID))
	}

	return machine, nil
}

func (s *webService) statusPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		machine, err := s.machine(mux.Vars(r)["sessionUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, s.status(machine))
	}
}

func (s *webService) backPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		machine, err := s.machine(mux.Vars(r)["sessionUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		err = machine.Back(c)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, s.status(machine))
	}
}

func (s *webService) teardownPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)
		sessionUID := mux.Vars(r)["sessionUID"]

		machine, err := s.machine(sessionUID)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		machine.Detach()

		s.mutex.Lock()
		delete(s.machines, sessionUID)
		s.mutex.Unlock()
		s.buttons.DropSession(sessionUID)

		err = s.sessionStore.Delete(c, sessionUID)
		if err != nil {
			responseWriter.WriteError(c, w, 2, myerrors.NewInternalError(err))
			return
		}

		s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Checkout %s torn down", sessionUID)

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "session removed"})
	}
}

type fieldOp func(c context.Context, machine *Machine, form eventapi.BookingForm) error

func (s *webService) fieldPage(apply fieldOp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		form, err := eventapi.NewBookingFormFromRequest(r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing form: %s", err)))
			return
		}

		machine, err := s.machine(mux.Vars(r)["sessionUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		err = apply(c, machine, form)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}

		err = s.persist(c, machine)
		if err != nil {
			responseWriter.WriteError(c, w, 4, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, s.status(machine))
	}
}

func (s *webService) applyDate(c context.Context, machine *Machine, form eventapi.BookingForm) error {
	return machine.SelectDate(c, s.lineUID(machine, form), form.Date)
}

func (s *webService) applyTime(c context.Context, machine *Machine, form eventapi.BookingForm) error {
	return machine.SelectTime(c, s.lineUID(machine, form), form.Time)
}

func (s *webService) applyParticipants(c context.Context, machine *Machine, form eventapi.BookingForm) error {
	return machine.AdjustParticipants(c, s.lineUID(machine, form), form.Delta)
}

func (s *webService) applyContact(c context.Context, machine *Machine, form eventapi.BookingForm) error {
	return machine.SetContact(c, eventapi.Contact{
		Name:            form.ContactName,
		Phone:           form.ContactPhone,
		Email:           form.ContactEmail,
		SpecialRequests: form.SpecialRequests,
	})
}

func (s *webService) applyPaymentMethod(c context.Context, machine *Machine, form eventapi.BookingForm) error {
	return machine.SetPaymentMethod(c, eventapi.PaymentMethod(form.PaymentMethod))
}

func (s *webService) applyUsePoints(c context.Context, machine *Machine, form eventapi.BookingForm) error {
	return machine.SetUsePoints(c, form.UsePoints)
}

// lineUID resolves the targeted line: single-event checkouts may omit
// the event uid.
func (s *webService) lineUID(machine *Machine, form eventapi.BookingForm) string {
	if form.EventUID != "" {
		return form.EventUID
	}

	_, session := machine.Current()
	if len(session.Lines) == 1 {
		return session.Lines[0].EventUID
	}

	return ""
}

func (s *webService) persist(c context.Context, machine *Machine) error {
	_, session := machine.Current()
	now := s.nower.Now()
	session.LastModified = &now

	err := s.sessionStore.Put(c, session.UID, session)
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	return nil
}

func (s *webService) status(machine *Machine) statusResponse {
	step, session := machine.Current()

	resp := statusResponse{
		SessionUID: session.UID,
		Step:       step,
		Session:    session,
		SubTotal:   session.SubTotal(),
		Discount:   session.Discount(),
		GrandTotal: session.GrandTotal(),
	}
	if confirmation, exists := machine.Confirmation(); exists {
		resp.Confirmation = &confirmation
	}

	return resp
}
