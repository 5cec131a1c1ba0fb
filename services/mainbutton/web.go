package mainbutton

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/artaltay/miniapp/lib/mycontext"
	"github.com/artaltay/miniapp/lib/myhttp"
	"github.com/artaltay/miniapp/lib/mylog"
)

// webService exposes the per-session button state to the frontend and
// relays taps back to the registered handler.
type webService struct {
	logger  mylog.Logger
	mutex   sync.Mutex
	buttons map[string]*Button
}

func NewWebService() *webService {
	return &webService{
		logger:  mylog.New("mainbutton"),
		buttons: map[string]*Button{},
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/mainbutton/{sessionUID}", s.statePage()).Methods("GET")
	router.HandleFunc("/api/mainbutton/{sessionUID}/click", s.clickPage()).Methods("POST")
}

// ButtonForSession returns the button of the session, creating it on
// first use.
func (s *webService) ButtonForSession(sessionUID string) *Button {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	button, exists := s.buttons[sessionUID]
	if !exists {
		button = NewButton()
		s.buttons[sessionUID] = button
	}

	return button
}

// DropSession forgets the button when the checkout session is torn
// down.
func (s *webService) DropSession(sessionUID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.buttons, sessionUID)
}

func (s *webService) statePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		button := s.ButtonForSession(mux.Vars(r)["sessionUID"])

		responseWriter.Write(c, w, http.StatusOK, button.State())
	}
}

func (s *webService) clickPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		button := s.ButtonForSession(mux.Vars(r)["sessionUID"])
		err := button.Click(c)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, button.State())
	}
}
