package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/MarcGrol/storefront/lib/mystore"
)

type storeCatalog struct {
	store mystore.Store[Product]
}

func NewStoreCatalog(store mystore.Store[Product]) *storeCatalog {
	return &storeCatalog{store: store}
}

func (sc *storeCatalog) Get(c context.Context, productID int) (Product, bool, error) {
	p, found, err := sc.store.Get(c, strconv.Itoa(productID))
	if err != nil {
		return Product{}, false, fmt.Errorf("error fetching product %d: %w", productID, err)
	}
	return p, found, nil
}

func (sc *storeCatalog) List(c context.Context) ([]Product, error) {
	products, err := sc.store.List(c)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})
	return products, nil
}

func (sc *storeCatalog) Seed(c context.Context, products []Product) error {
	return sc.store.RunInTransaction(c, func(c context.Context) error {
		existing, err := sc.store.List(c)
		if err != nil {
			return fmt.Errorf("error listing products: %w", err)
		}
		if len(existing) > 0 {
			return nil
		}
		for _, p := range products {
			err = sc.store.Put(c, strconv.Itoa(p.ID), p)
			if err != nil {
				return fmt.Errorf("error storing product %d: %w", p.ID, err)
			}
		}
		return nil
	})
}
