package basket

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/services/basket/basketevents"
	"github.com/MarcGrol/storefront/services/catalog"
)

// ErrNothingSaved is wrapped into the error returned when a mutation ended up not changing storage.
var ErrNothingSaved = errors.New("no changes were saved")

type service struct {
	logger     mylog.Logger
	nower      mytime.Nower
	uuider     myuuid.UUIDer
	repository Repository
	catalog    catalog.Reader
	publisher  mypublisher.Publisher
}

// Use dependency injection to isolate the infrastructure and ease testing
func newService(logger mylog.Logger, nower mytime.Nower, uuider myuuid.UUIDer, repository Repository, reader catalog.Reader, publisher mypublisher.Publisher) *service {
	return &service{
		logger:     logger,
		nower:      nower,
		uuider:     uuider,
		repository: repository,
		catalog:    reader,
		publisher:  publisher,
	}
}

func (s *service) getBasket(c context.Context, ownerToken string) (BasketView, error) {
	if ownerToken == "" {
		return BasketView{}, myerrors.NewNotFoundErrorf("basket not found")
	}

	view := BasketView{}
	err := s.repository.RunInTransaction(c, func(c context.Context) error {
		basket, err := s.findBasket(c, ownerToken)
		if err != nil {
			return err
		}
		view = toBasketView(basket)
		return nil
	})
	if err != nil {
		return BasketView{}, err
	}

	return view, nil
}

// addItemToBasket returns the owner token it minted when it had to create a basket, empty otherwise.
func (s *service) addItemToBasket(c context.Context, ownerToken string, productID int, quantity int) (BasketView, string, error) {
	if quantity < 1 {
		return BasketView{}, "", myerrors.NewInvalidInputErrorf("quantity must be at least 1, got %d", quantity)
	}

	view := BasketView{}
	mintedToken := ""
	err := s.repository.RunInTransaction(c, func(c context.Context) error {
		// retried transactions start from scratch
		mintedToken = ""

		var basket *Basket
		found := false
		if ownerToken != "" {
			var err error
			basket, found, err = s.repository.FindByOwner(c, ownerToken)
			if err != nil {
				return myerrors.NewInternalError(fmt.Errorf("error fetching basket: %w", err))
			}
		}

		product, productFound, err := s.catalog.Get(c, productID)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching product: %w", err))
		}
		if !productFound {
			return myerrors.NewNotFoundErrorf("product %d not found", productID)
		}

		if !found {
			mintedToken = s.uuider.Create()
			basket = NewBasket(mintedToken, s.nower.Now())
		}

		err = basket.AddItem(product, quantity)
		if err != nil {
			return err
		}

		changes, err := s.repository.Save(c, basket)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error saving basket: %w", err))
		}
		if changes == 0 {
			return myerrors.NewInvalidInputError(fmt.Errorf("problem saving item to basket: %w", ErrNothingSaved))
		}

		if mintedToken != "" {
			err = s.publisher.Publish(c, basketevents.TopicName, basketevents.BasketCreated{
				BasketUID: basket.OwnerToken,
			})
			if err != nil {
				return myerrors.NewInternalError(fmt.Errorf("error publishing event: %w", err))
			}
		}

		err = s.publisher.Publish(c, basketevents.TopicName, basketevents.ItemAdded{
			BasketUID: basket.OwnerToken,
			ProductID: productID,
			Quantity:  quantity,
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing event: %w", err))
		}

		s.logger.Log(c, basket.OwnerToken, mylog.SeverityInfo, "Added %d of product %d to basket %d", quantity, productID, basket.ID)

		view = toBasketView(basket)
		return nil
	})
	if err != nil {
		return BasketView{}, "", err
	}

	return view, mintedToken, nil
}

func (s *service) removeBasketItem(c context.Context, ownerToken string, productID int, quantity int) (BasketView, error) {
	if quantity < 1 {
		return BasketView{}, myerrors.NewInvalidInputErrorf("quantity must be at least 1, got %d", quantity)
	}
	if ownerToken == "" {
		return BasketView{}, myerrors.NewNotFoundErrorf("basket not found")
	}

	view := BasketView{}
	err := s.repository.RunInTransaction(c, func(c context.Context) error {
		basket, err := s.findBasket(c, ownerToken)
		if err != nil {
			return err
		}

		changed, err := basket.RemoveItem(productID, quantity)
		if err != nil {
			return err
		}
		if !changed {
			s.logger.Log(c, ownerToken, mylog.SeverityInfo, "Product %d not in basket %d, nothing to remove", productID, basket.ID)
			view = toBasketView(basket)
			return nil
		}

		changes, err := s.repository.Save(c, basket)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error saving basket: %w", err))
		}
		if changes == 0 {
			return myerrors.NewInvalidInputError(fmt.Errorf("problem removing item from the basket: %w", ErrNothingSaved))
		}

		err = s.publisher.Publish(c, basketevents.TopicName, basketevents.ItemRemoved{
			BasketUID: ownerToken,
			ProductID: productID,
			Quantity:  quantity,
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing event: %w", err))
		}

		s.logger.Log(c, ownerToken, mylog.SeverityInfo, "Removed %d of product %d from basket %d", quantity, productID, basket.ID)

		view = toBasketView(basket)
		return nil
	})
	if err != nil {
		return BasketView{}, err
	}

	return view, nil
}

func (s *service) findBasket(c context.Context, ownerToken string) (*Basket, error) {
	basket, found, err := s.repository.FindByOwner(c, ownerToken)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error fetching basket: %w", err))
	}
	if !found {
		return nil, myerrors.NewNotFoundErrorf("basket not found")
	}
	return basket, nil
}
