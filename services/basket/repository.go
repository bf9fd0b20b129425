package basket

import (
	"context"
)

//go:generate mockgen -source=repository.go -package basket -destination repository_mock.go Repository
type Repository interface {
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	// FindByOwner returns the basket with current product data joined into its lines.
	FindByOwner(c context.Context, ownerToken string) (*Basket, bool, error)
	// Save persists the basket and returns the number of effective changes. A new basket
	// (ID zero) gets its ID assigned.
	Save(c context.Context, basket *Basket) (int64, error)
}
