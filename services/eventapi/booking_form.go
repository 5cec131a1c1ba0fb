package eventapi

import (
	"fmt"
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"

	"github.com/artaltay/miniapp/lib/myerrors"
)

// BookingForm carries the checkout wizard fields the way the mini-app
// frontend posts them.
type BookingForm struct {
	EventUID        string `form:"eventUid"`
	Date            string `form:"date"`
	Time            string `form:"time"`
	Participants    int    `form:"participants"`
	Delta           int    `form:"delta"`
	ContactName     string `form:"contactName"`
	ContactPhone    string `form:"contactPhone"`
	ContactEmail    string `form:"contactEmail"`
	SpecialRequests string `form:"specialRequests"`
	PaymentMethod   string `form:"paymentMethod"`
	UsePoints       bool   `form:"usePoints"`
}

func NewBookingFormFromRequest(r *http.Request) (BookingForm, error) {
	err := r.ParseForm()
	if err != nil {
		return BookingForm{}, myerrors.NewInvalidInputError(err)
	}
	return NewBookingFormFromValues(r.Form)
}

func NewBookingFormFromValues(values url.Values) (BookingForm, error) {
	form := BookingForm{}
	err := formcodec.NewDecoder().Decode(&form, values)
	if err != nil {
		return form, fmt.Errorf("error decoding form: %s", err)
	}

	return form, nil
}

func (f BookingForm) ToForm() (url.Values, error) {
	values, err := formcodec.NewEncoder().Encode(f)
	if err != nil {
		return nil, fmt.Errorf("error encoding form: %s", err)
	}

	return values, nil
}
