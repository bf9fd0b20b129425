package basket

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/MarcGrol/storefront/lib/mydb"
	"github.com/MarcGrol/storefront/services/catalog"
)

const (
	selectBasketSQL = `SELECT b.id, b.owner_token, b.created_at,
       i.product_id, i.quantity,
       p.name, p.description, p.price, p.picture_url, p.type, p.brand, p.quantity_in_stock
FROM baskets b
LEFT JOIN basket_items i ON i.basket_id = b.id
LEFT JOIN products p ON p.id = i.product_id
WHERE b.owner_token = $1
ORDER BY i.position, i.id`

	insertBasketSQL = `INSERT INTO baskets (owner_token, created_at) VALUES ($1, $2) RETURNING id`

	// Unchanged quantities are skipped so RowsAffected only counts effective changes.
	upsertItemSQL = `INSERT INTO basket_items (basket_id, product_id, quantity, position)
VALUES ($1, $2, $3, (SELECT COALESCE(MAX(position), -1) + 1 FROM basket_items WHERE basket_id = $1))
ON CONFLICT (basket_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity
WHERE basket_items.quantity <> EXCLUDED.quantity`

	deleteItemsSQL = `DELETE FROM basket_items WHERE basket_id = $1 AND NOT (product_id = ANY($2))`
)

type sqlRepository struct {
	db *sql.DB
}

func NewSQLRepository(db *sql.DB) *sqlRepository {
	return &sqlRepository{db: db}
}

func (r *sqlRepository) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	return mydb.RunInTransaction(c, r.db, f)
}

func (r *sqlRepository) FindByOwner(c context.Context, ownerToken string) (*Basket, bool, error) {
	rows, err := mydb.Executor(c, r.db).QueryContext(c, selectBasketSQL, ownerToken)
	if err != nil {
		return nil, false, fmt.Errorf("error fetching basket %s: %w", ownerToken, err)
	}
	defer rows.Close()

	var basket *Basket
	for rows.Next() {
		var (
			b           Basket
			productID   sql.NullInt64
			quantity    sql.NullInt64
			name        sql.NullString
			description sql.NullString
			price       sql.NullInt64
			pictureURL  sql.NullString
			productType sql.NullString
			brand       sql.NullString
			inStock     sql.NullInt64
		)
		err = rows.Scan(&b.ID, &b.OwnerToken, &b.CreatedAt,
			&productID, &quantity,
			&name, &description, &price, &pictureURL, &productType, &brand, &inStock)
		if err != nil {
			return nil, false, fmt.Errorf("error scanning basket %s: %w", ownerToken, err)
		}

		if basket == nil {
			basket = NewBasket(b.OwnerToken, b.CreatedAt)
			basket.ID = b.ID
		}
		if !productID.Valid {
			// basket without items
			continue
		}
		basket.Lines = append(basket.Lines, Line{
			Product: catalog.Product{
				ID:              int(productID.Int64),
				Name:            name.String,
				Description:     description.String,
				Price:           price.Int64,
				PictureURL:      pictureURL.String,
				Type:            productType.String,
				Brand:           brand.String,
				QuantityInStock: int(inStock.Int64),
			},
			Quantity: int(quantity.Int64),
		})
	}
	err = rows.Err()
	if err != nil {
		return nil, false, fmt.Errorf("error iterating basket %s: %w", ownerToken, err)
	}

	if basket == nil {
		return nil, false, nil
	}
	return basket, true, nil
}

func (r *sqlRepository) Save(c context.Context, basket *Basket) (int64, error) {
	var changes int64
	err := r.RunInTransaction(c, func(c context.Context) error {
		q := mydb.Executor(c, r.db)

		if basket.ID == 0 {
			err := q.QueryRowContext(c, insertBasketSQL, basket.OwnerToken, basket.CreatedAt).Scan(&basket.ID)
			if err != nil {
				return fmt.Errorf("error inserting basket %s: %w", basket.OwnerToken, err)
			}
			changes++
		}

		productIDs := make([]int64, 0, len(basket.Lines))
		for _, l := range basket.Lines {
			productIDs = append(productIDs, int64(l.Product.ID))

			result, err := q.ExecContext(c, upsertItemSQL, basket.ID, l.Product.ID, l.Quantity)
			if err != nil {
				return fmt.Errorf("error storing item %d of basket %s: %w", l.Product.ID, basket.OwnerToken, err)
			}
			affected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("error counting stored items: %w", err)
			}
			changes += affected
		}

		result, err := q.ExecContext(c, deleteItemsSQL, basket.ID, pq.Array(productIDs))
		if err != nil {
			return fmt.Errorf("error removing items of basket %s: %w", basket.OwnerToken, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("error counting removed items: %w", err)
		}
		changes += affected

		return nil
	})
	if err != nil {
		return 0, err
	}
	return changes, nil
}
