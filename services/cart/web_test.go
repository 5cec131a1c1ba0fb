package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/artaltay/miniapp/lib/mystore"
	"github.com/artaltay/miniapp/lib/mytime"
	"github.com/artaltay/miniapp/services/eventapi"
	"github.com/artaltay/miniapp/services/upstream"
)

var rafting = eventapi.Experience{ID: "2", Title: "Рафтинг по реке Катунь", Price: 3500, MaxParticipants: 10}

func TestCartService(t *testing.T) {

	t.Run("Cart of unknown user is empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodGet, "/api/cart/u1", "")

		// then
		assert.Equal(t, 200, response.Code)
		crt := decodeCart(t, response)
		assert.Equal(t, "u1", crt.UserUID)
		assert.Empty(t, crt.Lines)
	})

	t.Run("Add line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, client := setup(t, ctrl)

		// given
		client.EXPECT().GetEventByID(gomock.Any(), "2").Return(rafting, nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/cart/u1", `{"eventId":"2","quantity":3}`)

		// then
		assert.Equal(t, 200, response.Code)
		crt := decodeCart(t, response)
		assert.Len(t, crt.Lines, 1)
		assert.Equal(t, 3, crt.Lines[0].Quantity)
		assert.NotNil(t, crt.LastModified)
	})

	t.Run("Quantity is clamped to the group size", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, client := setup(t, ctrl)

		// given
		client.EXPECT().GetEventByID(gomock.Any(), "2").Return(rafting, nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/cart/u1", `{"eventId":"2","quantity":25}`)

		// then
		assert.Equal(t, 200, response.Code)
		crt := decodeCart(t, response)
		assert.Equal(t, 10, crt.Lines[0].Quantity)
	})

	t.Run("Adding same event twice overwrites the line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, client := setup(t, ctrl)

		// given
		client.EXPECT().GetEventByID(gomock.Any(), "2").Return(rafting, nil).Times(2)

		// when
		doRequest(t, router, http.MethodPost, "/api/cart/u1", `{"eventId":"2","quantity":1}`)
		response := doRequest(t, router, http.MethodPost, "/api/cart/u1", `{"eventId":"2","quantity":4,"date":"2025-09-12"}`)

		// then
		crt := decodeCart(t, response)
		assert.Len(t, crt.Lines, 1)
		assert.Equal(t, 4, crt.Lines[0].Quantity)
		assert.Equal(t, "2025-09-12", crt.Lines[0].Date)
	})

	t.Run("Update line that is not in the cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, client := setup(t, ctrl)

		// given
		client.EXPECT().GetEventByID(gomock.Any(), "2").Return(rafting, nil)

		// when
		response := doRequest(t, router, http.MethodPut, "/api/cart/u1/2", `{"eventId":"2","quantity":2}`)

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Remove line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _ := setup(t, ctrl)

		// given
		storer.Put(ctx, "u1", Cart{UserUID: "u1", Lines: []eventapi.CartLine{{EventUID: "2", Quantity: 2}}})

		// when
		response := doRequest(t, router, http.MethodDelete, "/api/cart/u1/2", "")

		// then
		assert.Equal(t, 200, response.Code)
		crt := decodeCart(t, response)
		assert.Empty(t, crt.Lines)
	})

	t.Run("Clearing the cart leaves favorites untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _ := setup(t, ctrl)

		// given
		storer.Put(ctx, "u1", Cart{
			UserUID:   "u1",
			Lines:     []eventapi.CartLine{{EventUID: "2", Quantity: 2}},
			Favorites: []string{"2", "5"},
		})

		// when
		response := doRequest(t, router, http.MethodDelete, "/api/cart/u1", "")

		// then
		assert.Equal(t, 200, response.Code)
		crt := decodeCart(t, response)
		assert.Empty(t, crt.Lines)
		assert.Equal(t, []string{"2", "5"}, crt.Favorites)
	})

	t.Run("Toggle favorite on and off", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/favorites/u1/5", "")

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "5")

		// when toggled again
		response = doRequest(t, router, http.MethodPost, "/api/favorites/u1/5", "")

		// then it is gone
		assert.Equal(t, 200, response.Code)
		assert.NotContains(t, response.Body.String(), "5")
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[Cart], *upstream.MockClient) {
	c := context.TODO()
	storer, _, _ := mystore.NewInMemoryStore[Cart](c)
	client := upstream.NewMockClient(ctrl)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	sut := NewWebService(storer, client, nower)
	router := mux.NewRouter()
	sut.RegisterEndpoints(c, router)

	return c, router, storer, client
}

func doRequest(t *testing.T, router *mux.Router, method string, url string, body string) *httptest.ResponseRecorder {
	request, err := http.NewRequest(method, url, strings.NewReader(body))
	assert.NoError(t, err)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	return response
}

func decodeCart(t *testing.T, response *httptest.ResponseRecorder) Cart {
	crt := Cart{}
	err := json.NewDecoder(response.Body).Decode(&crt)
	assert.NoError(t, err)

	return crt
}
