package basket

import (
	"time"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/services/catalog"
)

// Basket is owned by an anonymous shopper identified by OwnerToken. Lines keep insertion
// order and never hold a quantity below one.
type Basket struct {
	ID         int64
	OwnerToken string
	CreatedAt  time.Time
	Lines      []Line
}

// Line holds the product data joined in when the basket was loaded.
type Line struct {
	Product  catalog.Product
	Quantity int
}

func NewBasket(ownerToken string, createdAt time.Time) *Basket {
	return &Basket{
		OwnerToken: ownerToken,
		CreatedAt:  createdAt,
		Lines:      []Line{},
	}
}

// AddItem merges into an existing line by product id. The product of an existing line is
// kept as loaded, only a new line takes the given product.
func (b *Basket) AddItem(product catalog.Product, quantity int) error {
	if quantity < 1 {
		return myerrors.NewInvalidInputErrorf("quantity must be at least 1, got %d", quantity)
	}
	if product.ID < 1 {
		return myerrors.NewInvalidInputErrorf("invalid product id %d", product.ID)
	}

	idx := b.lineIndex(product.ID)
	if idx < 0 {
		b.Lines = append(b.Lines, Line{Product: product, Quantity: quantity})
		return nil
	}
	b.Lines[idx].Quantity += quantity

	return nil
}

// RemoveItem reports whether the basket changed. Removing an absent product is a no-op.
func (b *Basket) RemoveItem(productID int, quantity int) (bool, error) {
	if quantity < 1 {
		return false, myerrors.NewInvalidInputErrorf("quantity must be at least 1, got %d", quantity)
	}

	idx := b.lineIndex(productID)
	if idx < 0 {
		return false, nil
	}

	b.Lines[idx].Quantity -= quantity
	if b.Lines[idx].Quantity <= 0 {
		b.Lines = append(b.Lines[:idx], b.Lines[idx+1:]...)
	}

	return true, nil
}

func (b *Basket) lineIndex(productID int) int {
	for i, l := range b.Lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}
