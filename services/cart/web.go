package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/artaltay/miniapp/lib/mycontext"
	"github.com/artaltay/miniapp/lib/myerrors"
	"github.com/artaltay/miniapp/lib/myhttp"
	"github.com/artaltay/miniapp/lib/mylog"
	"github.com/artaltay/miniapp/lib/mystore"
	"github.com/artaltay/miniapp/lib/mytime"
	"github.com/artaltay/miniapp/services/eventapi"
	"github.com/artaltay/miniapp/services/upstream"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(cartStore mystore.Store[Cart], client upstream.Client, nower mytime.Nower) *webService {
	logger := mylog.New("cart")

	return &webService{
		logger:  logger,
		service: newService(cartStore, client, nower, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/cart/{userUID}", s.getCartPage()).Methods("GET")
	router.HandleFunc("/api/cart/{userUID}", s.addLinePage()).Methods("POST")
	router.HandleFunc("/api/cart/{userUID}", s.clearCartPage()).Methods("DELETE")
	router.HandleFunc("/api/cart/{userUID}/{eventUID}", s.updateLinePage()).Methods("PUT")
	router.HandleFunc("/api/cart/{userUID}/{eventUID}", s.removeLinePage()).Methods("DELETE")

	router.HandleFunc("/api/favorites/{userUID}", s.listFavoritesPage()).Methods("GET")
	router.HandleFunc("/api/favorites/{userUID}/{eventUID}", s.toggleFavoritePage()).Methods("POST")
}

// ClearCart empties the cart after a successful cart checkout.
func (s *webService) ClearCart(c context.Context, userUID string) error {
	return s.service.ClearCart(c, userUID)
}

// Cart returns the stored cart so checkout sessions can be built from
// it.
func (s *webService) Cart(c context.Context, userUID string) (Cart, error) {
	return s.service.getCart(c, userUID)
}

type lineRequest struct {
	EventID  string `json:"eventId"`
	Quantity int    `json:"quantity"`
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
}

func (s *webService) getCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		crt, err := s.service.getCart(c, mux.Vars(r)["userUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, crt)
	}
}

func (s *webService) addLinePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		line, err := parseLineRequest(r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		crt, err := s.service.addLine(c, mux.Vars(r)["userUID"], line)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, crt)
	}
}

func (s *webService) updateLinePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		line, err := parseLineRequest(r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}
		line.EventUID = mux.Vars(r)["eventUID"]

		crt, err := s.service.updateLine(c, mux.Vars(r)["userUID"], line)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, crt)
	}
}

func (s *webService) removeLinePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		crt, err := s.service.removeLine(c, mux.Vars(r)["userUID"], mux.Vars(r)["eventUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, crt)
	}
}

func (s *webService) clearCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		crt, err := s.service.clear(c, mux.Vars(r)["userUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, crt)
	}
}

func (s *webService) listFavoritesPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		crt, err := s.service.getCart(c, mux.Vars(r)["userUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		favorites := crt.Favorites
		if favorites == nil {
			favorites = []string{}
		}
		responseWriter.Write(c, w, http.StatusOK, favorites)
	}
}

func (s *webService) toggleFavoritePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		crt, err := s.service.toggleFavorite(c, mux.Vars(r)["userUID"], mux.Vars(r)["eventUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, crt.Favorites)
	}
}

func parseLineRequest(r *http.Request) (eventapi.CartLine, error) {
	req := lineRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		return eventapi.CartLine{}, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err))
	}
	if req.EventID == "" {
		return eventapi.CartLine{}, myerrors.NewInvalidInputError(fmt.Errorf("missing eventId"))
	}

	return eventapi.CartLine{
		EventUID: req.EventID,
		Quantity: req.Quantity,
		Date:     req.Date,
		Time:     req.Time,
	}, nil
}
