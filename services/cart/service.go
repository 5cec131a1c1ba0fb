package cart

import (
	"context"
	"fmt"

	"github.com/artaltay/miniapp/lib/myerrors"
	"github.com/artaltay/miniapp/lib/mylog"
	"github.com/artaltay/miniapp/lib/mystore"
	"github.com/artaltay/miniapp/lib/mytime"
	"github.com/artaltay/miniapp/services/eventapi"
	"github.com/artaltay/miniapp/services/upstream"
)

type service struct {
	cartStore mystore.Store[Cart]
	client    upstream.Client
	nower     mytime.Nower
	logger    mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(cartStore mystore.Store[Cart], client upstream.Client, nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		cartStore: cartStore,
		client:    client,
		nower:     nower,
		logger:    logger,
	}
}

// getCart returns the stored cart. A shopper without one gets an empty
// cart, not an error.
func (s *service) getCart(c context.Context, userUID string) (Cart, error) {
	crt, exists, err := s.cartStore.Get(c, userUID)
	if err != nil {
		return Cart{}, myerrors.NewInternalError(err)
	}
	if !exists {
		return Cart{UserUID: userUID}, nil
	}

	return crt, nil
}

// addLine puts an experience in the cart. Adding an experience that is
// already there overwrites its quantity, date and time.
func (s *service) addLine(c context.Context, userUID string, line eventapi.CartLine) (Cart, error) {
	s.logger.Log(c, userUID, mylog.SeverityInfo, "Add event %s to cart of user %s", line.EventUID, userUID)

	event, err := s.client.GetEventByID(c, line.EventUID)
	if err != nil {
		return Cart{}, err
	}
	line.Quantity = clampQuantity(line.Quantity, event.MaxParticipants)

	return s.updateCart(c, userUID, func(crt *Cart) error {
		if idx, exists := crt.findLine(line.EventUID); exists {
			crt.Lines[idx] = line
		} else {
			crt.Lines = append(crt.Lines, line)
		}

		return nil
	})
}

func (s *service) updateLine(c context.Context, userUID string, line eventapi.CartLine) (Cart, error) {
	s.logger.Log(c, userUID, mylog.SeverityInfo, "Update event %s in cart of user %s", line.EventUID, userUID)

	event, err := s.client.GetEventByID(c, line.EventUID)
	if err != nil {
		return Cart{}, err
	}
	line.Quantity = clampQuantity(line.Quantity, event.MaxParticipants)

	return s.updateCart(c, userUID, func(crt *Cart) error {
		idx, exists := crt.findLine(line.EventUID)
		if !exists {
			return myerrors.NewNotFoundError(fmt.Errorf("event %s not in cart", line.EventUID))
		}
		crt.Lines[idx] = line

		return nil
	})
}

func (s *service) removeLine(c context.Context, userUID string, eventUID string) (Cart, error) {
	s.logger.Log(c, userUID, mylog.SeverityInfo, "Remove event %s from cart of user %s", eventUID, userUID)

	return s.updateCart(c, userUID, func(crt *Cart) error {
		idx, exists := crt.findLine(eventUID)
		if !exists {
			return myerrors.NewNotFoundError(fmt.Errorf("event %s not in cart", eventUID))
		}
		crt.Lines = append(crt.Lines[:idx], crt.Lines[idx+1:]...)

		return nil
	})
}

// clear empties the cart. Favorites survive.
func (s *service) clear(c context.Context, userUID string) (Cart, error) {
	s.logger.Log(c, userUID, mylog.SeverityInfo, "Clear cart of user %s", userUID)

	return s.updateCart(c, userUID, func(crt *Cart) error {
		crt.Lines = nil

		return nil
	})
}

// toggleFavorite flips membership of the favorites set.
func (s *service) toggleFavorite(c context.Context, userUID string, eventUID string) (Cart, error) {
	s.logger.Log(c, userUID, mylog.SeverityInfo, "Toggle favorite %s of user %s", eventUID, userUID)

	return s.updateCart(c, userUID, func(crt *Cart) error {
		if crt.isFavorite(eventUID) {
			favorites := []string{}
			for _, uid := range crt.Favorites {
				if uid != eventUID {
					favorites = append(favorites, uid)
				}
			}
			crt.Favorites = favorites
		} else {
			crt.Favorites = append(crt.Favorites, eventUID)
		}

		return nil
	})
}

// updateCart applies the mutation inside a transaction and persists
// the result, so every change survives a restart.
func (s *service) updateCart(c context.Context, userUID string, modify func(crt *Cart) error) (Cart, error) {
	var crt Cart
	err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
		var exists bool
		var err error
		crt, exists, err = s.cartStore.Get(c, userUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !exists {
			crt = Cart{UserUID: userUID}
		}

		err = modify(&crt)
		if err != nil {
			return err
		}

		now := s.nower.Now()
		crt.LastModified = &now

		err = s.cartStore.Put(c, userUID, crt)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Cart{}, err
	}

	return crt, nil
}

func clampQuantity(quantity int, maxParticipants int) int {
	if quantity < 1 {
		return 1
	}
	if maxParticipants > 0 && quantity > maxParticipants {
		return maxParticipants
	}

	return quantity
}

// ClearCart is the hook the submission flow uses after a successful
// cart checkout.
func (s *service) ClearCart(c context.Context, userUID string) error {
	_, err := s.clear(c, userUID)

	return err
}
