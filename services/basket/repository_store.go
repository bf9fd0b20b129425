package basket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/services/catalog"
)

const basketSequenceName = "basket"

// basketRecord is the stored form of a Basket, keyed by owner token. Lines only refer
// to products; product data is joined in on load.
type basketRecord struct {
	ID         int64
	OwnerToken string
	CreatedAt  time.Time
	Lines      []lineRecord
}

type lineRecord struct {
	ProductID int
	Quantity  int
}

type idSequence struct {
	Name  string
	Value int64
}

type storeRepository struct {
	baskets   mystore.Store[basketRecord]
	sequences mystore.Store[idSequence]
	catalog   catalog.Reader
}

func NewStoreRepository(c context.Context, reader catalog.Reader) (*storeRepository, func(), error) {
	baskets, basketsCleanup, err := mystore.New[basketRecord](c)
	if err != nil {
		return nil, nil, err
	}
	sequences, sequencesCleanup, err := mystore.New[idSequence](c)
	if err != nil {
		basketsCleanup()
		return nil, nil, err
	}

	return newStoreRepository(baskets, sequences, reader), func() {
		sequencesCleanup()
		basketsCleanup()
	}, nil
}

func newStoreRepository(baskets mystore.Store[basketRecord], sequences mystore.Store[idSequence], reader catalog.Reader) *storeRepository {
	return &storeRepository{
		baskets:   baskets,
		sequences: sequences,
		catalog:   reader,
	}
}

func (r *storeRepository) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	return r.baskets.RunInTransaction(c, f)
}

func (r *storeRepository) FindByOwner(c context.Context, ownerToken string) (*Basket, bool, error) {
	record, found, err := r.baskets.Get(c, ownerToken)
	if err != nil {
		return nil, false, fmt.Errorf("error fetching basket %s: %w", ownerToken, err)
	}
	if !found {
		return nil, false, nil
	}

	basket := &Basket{
		ID:         record.ID,
		OwnerToken: record.OwnerToken,
		CreatedAt:  record.CreatedAt,
		Lines:      make([]Line, 0, len(record.Lines)),
	}
	for _, l := range record.Lines {
		product, found, err := r.catalog.Get(c, l.ProductID)
		if err != nil {
			return nil, false, fmt.Errorf("error fetching product %d of basket %s: %w", l.ProductID, ownerToken, err)
		}
		if !found {
			product = catalog.Product{ID: l.ProductID}
		}
		basket.Lines = append(basket.Lines, Line{Product: product, Quantity: l.Quantity})
	}

	return basket, true, nil
}

func (r *storeRepository) Save(c context.Context, basket *Basket) (int64, error) {
	var changes int64
	err := r.baskets.RunInTransaction(c, func(c context.Context) error {
		existing, found, err := r.baskets.Get(c, basket.OwnerToken)
		if err != nil {
			return fmt.Errorf("error fetching basket %s: %w", basket.OwnerToken, err)
		}

		record := toRecord(basket)
		if found {
			record.ID = existing.ID
			// Datastore loads an emptied basket with nil lines
			if cmp.Equal(existing, record, cmpopts.EquateEmpty()) {
				return nil
			}
			changes = max(countLineChanges(existing.Lines, record.Lines), 1)
		} else {
			record.ID, err = r.nextID(c)
			if err != nil {
				return err
			}
			changes = 1 + int64(len(record.Lines))
		}

		err = r.baskets.Put(c, record.OwnerToken, record)
		if err != nil {
			return fmt.Errorf("error storing basket %s: %w", record.OwnerToken, err)
		}
		basket.ID = record.ID

		return nil
	})
	if err != nil {
		return 0, err
	}
	return changes, nil
}

func (r *storeRepository) nextID(c context.Context) (int64, error) {
	var id int64
	err := r.sequences.RunInTransaction(c, func(c context.Context) error {
		seq, _, err := r.sequences.Get(c, basketSequenceName)
		if err != nil {
			return fmt.Errorf("error fetching sequence: %w", err)
		}
		seq.Name = basketSequenceName
		seq.Value++
		err = r.sequences.Put(c, basketSequenceName, seq)
		if err != nil {
			return fmt.Errorf("error storing sequence: %w", err)
		}
		id = seq.Value
		return nil
	})
	return id, err
}

func toRecord(basket *Basket) basketRecord {
	record := basketRecord{
		ID:         basket.ID,
		OwnerToken: basket.OwnerToken,
		CreatedAt:  basket.CreatedAt,
		Lines:      make([]lineRecord, 0, len(basket.Lines)),
	}
	for _, l := range basket.Lines {
		record.Lines = append(record.Lines, lineRecord{ProductID: l.Product.ID, Quantity: l.Quantity})
	}
	return record
}

// countLineChanges counts inserted, updated and deleted lines, the way a row-based store would.
func countLineChanges(before []lineRecord, after []lineRecord) int64 {
	quantities := map[int]int{}
	for _, l := range before {
		quantities[l.ProductID] = l.Quantity
	}

	var changes int64
	for _, l := range after {
		q, found := quantities[l.ProductID]
		if !found || q != l.Quantity {
			changes++
		}
		delete(quantities, l.ProductID)
	}
	changes += int64(len(quantities))

	return changes
}
