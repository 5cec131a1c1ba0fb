package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/artaltay/miniapp/lib/mystore"
	"github.com/artaltay/miniapp/lib/mytime"
	"github.com/artaltay/miniapp/lib/myuuid"
	"github.com/artaltay/miniapp/services/cart"
	"github.com/artaltay/miniapp/services/eventapi"
	"github.com/artaltay/miniapp/services/mainbutton"
	"github.com/artaltay/miniapp/services/upstream"
)

func TestCheckoutService(t *testing.T) {

	t.Run("Start single event checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setupWeb(t, ctrl)

		// given
		f.client.EXPECT().GetEventByID(gomock.Any(), "2").Return(raftingEvent(), nil)
		f.client.EXPECT().GetUserProfile(gomock.Any(), "user-123").Return(profile(), nil)
		f.uuider.EXPECT().Create().Return("sess-1")

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout/user-123/event/2", "participants=2")

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"Step": "details"`)
		assert.Contains(t, response.Body.String(), `"SubTotal": 7000`)

		stored, exists, err := f.sessionStore.Get(context.TODO(), "sess-1")
		assert.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, "Мария Петрова", stored.Contact.Name)
		assert.Equal(t, 250, stored.LoyaltyPoints)
		assert.Equal(t, eventapi.PaymentMethodTelegramPay, stored.PaymentMethod)

		// and the main button is configured for the details step
		state := f.buttons.ButtonForSession("sess-1").State()
		assert.Equal(t, "Забронировать", state.Label)
		assert.True(t, state.Enabled)
	})

	t.Run("Wizard end to end", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setupWeb(t, ctrl)

		// given
		f.client.EXPECT().GetEventByID(gomock.Any(), "2").Return(raftingEvent(), nil)
		f.client.EXPECT().GetUserProfile(gomock.Any(), "user-123").Return(profile(), nil)
		f.uuider.EXPECT().Create().Return("sess-2")
		f.submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(c context.Context, session eventapi.CheckoutSession) (eventapi.ConfirmationRecord, error) {
				return eventapi.ConfirmationRecord{
					UID:          "conf-9",
					SessionUID:   session.UID,
					BookingIDs:   []string{"booking-1"},
					TotalCharged: session.GrandTotal(),
				}, nil
			})

		// when: schedule, advance, pay
		assert.Equal(t, http.StatusOK, f.doRequest(http.MethodPost, "/api/checkout/user-123/event/2", "participants=2").Code)
		assert.Equal(t, http.StatusOK, f.doRequest(http.MethodPut, "/api/checkout/sess-2/date", "date=2025-09-05").Code)
		assert.Equal(t, http.StatusOK, f.doRequest(http.MethodPut, "/api/checkout/sess-2/time", "time=09:00").Code)

		assert.NoError(t, f.buttons.ButtonForSession("sess-2").Click(context.TODO()))

		// the schedule is already complete, one click reaches payment
		assert.NoError(t, f.buttons.ButtonForSession("sess-2").Click(context.TODO()))

		// contact was prefilled from the profile, the final tap submits
		assert.Equal(t, http.StatusOK, f.doRequest(http.MethodPut, "/api/checkout/sess-2/payment-method", "paymentMethod=telegram_pay").Code)
		assert.NoError(t, f.buttons.ButtonForSession("sess-2").Click(context.TODO()))

		// then
		response := f.doRequest(http.MethodGet, "/api/checkout/sess-2", "")
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"Step": "confirmation"`)
		assert.Contains(t, response.Body.String(), "conf-9")

		state := f.buttons.ButtonForSession("sess-2").State()
		assert.False(t, state.Visible)
	})

	t.Run("Cart checkout fills in missing schedule", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setupWeb(t, ctrl)

		// given: a cart line without date or time
		err := f.cartStore.Put(context.TODO(), "user-123", cart.Cart{
			UserUID: "user-123",
			Lines: []eventapi.CartLine{
				{EventUID: "2", Quantity: 2},
			},
		})
		assert.NoError(t, err)
		f.client.EXPECT().GetEventByID(gomock.Any(), "2").Return(raftingEvent(), nil)
		f.client.EXPECT().GetUserProfile(gomock.Any(), "user-123").Return(profile(), nil)
		f.uuider.EXPECT().Create().Return("sess-3")

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout/user-123/cart", "")

		// then: tomorrow at noon
		assert.Equal(t, http.StatusOK, response.Code)

		stored, _, err := f.sessionStore.Get(context.TODO(), "sess-3")
		assert.NoError(t, err)
		assert.True(t, stored.FromCart)
		assert.Equal(t, "2025-08-28", stored.Lines[0].Date)
		assert.Equal(t, "12:00", stored.Lines[0].Time)

		state := f.buttons.ButtonForSession("sess-3").State()
		assert.Equal(t, "Перейти к оформлению", state.Label)
	})

	t.Run("Cart checkout with empty cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setupWeb(t, ctrl)

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout/user-456/cart", "")

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("Unknown session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setupWeb(t, ctrl)

		// when
		response := f.doRequest(http.MethodGet, "/api/checkout/nope", "")

		// then
		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("Back from form entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setupWeb(t, ctrl)

		// given
		f.client.EXPECT().GetEventByID(gomock.Any(), "2").Return(raftingEvent(), nil)
		f.client.EXPECT().GetUserProfile(gomock.Any(), "user-123").Return(profile(), nil)
		f.uuider.EXPECT().Create().Return("sess-4")

		assert.Equal(t, http.StatusOK, f.doRequest(http.MethodPost, "/api/checkout/user-123/event/2", "date=2025-09-05&time=09:00").Code)
		assert.NoError(t, f.buttons.ButtonForSession("sess-4").Click(context.TODO()))

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout/sess-4/back", "")

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"Step": "details"`)
	})

	t.Run("Teardown removes the session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setupWeb(t, ctrl)

		// given
		f.client.EXPECT().GetEventByID(gomock.Any(), "2").Return(raftingEvent(), nil)
		f.client.EXPECT().GetUserProfile(gomock.Any(), "user-123").Return(profile(), nil)
		f.uuider.EXPECT().Create().Return("sess-5")

		assert.Equal(t, http.StatusOK, f.doRequest(http.MethodPost, "/api/checkout/user-123/event/2", "").Code)

		// when
		assert.Equal(t, http.StatusOK, f.doRequest(http.MethodDelete, "/api/checkout/sess-5", "").Code)

		// then
		assert.Equal(t, http.StatusNotFound, f.doRequest(http.MethodGet, "/api/checkout/sess-5", "").Code)

		_, exists, err := f.sessionStore.Get(context.TODO(), "sess-5")
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

type webFixture struct {
	t            *testing.T
	router       *mux.Router
	client       *upstream.MockClient
	sessionStore mystore.Store[eventapi.CheckoutSession]
	cartStore    mystore.Store[cart.Cart]
	buttons      ButtonRegistry
	submitter    *MockSubmitter
	uuider       *myuuid.MockUUIDer
}

func setupWeb(t *testing.T, ctrl *gomock.Controller) *webFixture {
	t.Helper()
	ctx := context.TODO()

	sessionStore, _, err := mystore.NewInMemoryStore[eventapi.CheckoutSession](ctx)
	assert.NoError(t, err)
	cartStore, _, err := mystore.NewInMemoryStore[cart.Cart](ctx)
	assert.NoError(t, err)

	client := upstream.NewMockClient(ctrl)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	uuider := myuuid.NewMockUUIDer(ctrl)

	haptics := mainbutton.NewMockHaptics(ctrl)
	haptics.EXPECT().Selection().AnyTimes()
	haptics.EXPECT().Success().AnyTimes()
	haptics.EXPECT().Error().AnyTimes()

	buttons := mainbutton.NewWebService()
	carts := cart.NewWebService(cartStore, client, nower)
	submitter := NewMockSubmitter(ctrl)

	router := mux.NewRouter()
	NewWebService(sessionStore, client, carts, buttons, haptics, submitter, nower, uuider).RegisterEndpoints(ctx, router)

	return &webFixture{
		t:            t,
		router:       router,
		client:       client,
		sessionStore: sessionStore,
		cartStore:    cartStore,
		buttons:      buttons,
		submitter:    submitter,
		uuider:       uuider,
	}
}

func (f *webFixture) doRequest(method string, url string, body string) *httptest.ResponseRecorder {
	f.t.Helper()

	request, err := http.NewRequest(method, url, strings.NewReader(body))
	assert.NoError(f.t, err)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response := httptest.NewRecorder()
	f.router.ServeHTTP(response, request)

	return response
}

func raftingEvent() eventapi.Experience {
	return eventapi.Experience{
		ID:              "2",
		Title:           "Рафтинг по реке Катунь",
		Price:           3500,
		MaxParticipants: 10,
	}
}

func profile() eventapi.UserProfile {
	return eventapi.UserProfile{
		ID:            "user-123",
		FirstName:     "Мария",
		LastName:      "Петрова",
		Phone:         "+79131234567",
		Email:         "maria@example.com",
		LoyaltyPoints: 250,
	}
}
