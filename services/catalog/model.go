package catalog

import (
	"context"
)

// Product is read-only from the basket's point of view. Price is in minor currency units.
type Product struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description" datastore:",noindex"`
	Price           int64  `json:"price"`
	PictureURL      string `json:"pictureUrl"`
	Type            string `json:"type"`
	Brand           string `json:"brand"`
	QuantityInStock int    `json:"quantityInStock"`
}

//go:generate mockgen -source=model.go -package catalog -destination reader_mock.go Reader
type Reader interface {
	Get(c context.Context, productID int) (Product, bool, error)
	List(c context.Context) ([]Product, error)
}
