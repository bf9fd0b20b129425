package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MarcGrol/storefront/lib/mydb"
)

const productColumns = "id, name, description, price, picture_url, type, brand, quantity_in_stock"

type sqlCatalog struct {
	db *sql.DB
}

func NewSQLCatalog(db *sql.DB) *sqlCatalog {
	return &sqlCatalog{db: db}
}

func (sc *sqlCatalog) Get(c context.Context, productID int) (Product, bool, error) {
	row := mydb.Executor(c, sc.db).QueryRowContext(c,
		"SELECT "+productColumns+" FROM products WHERE id = $1", productID)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, false, nil
		}
		return Product{}, false, fmt.Errorf("error fetching product %d: %w", productID, err)
	}
	return p, true, nil
}

func (sc *sqlCatalog) List(c context.Context) ([]Product, error) {
	rows, err := mydb.Executor(c, sc.db).QueryContext(c,
		"SELECT "+productColumns+" FROM products ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning product: %w", err)
		}
		products = append(products, p)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

// Seed inserts products when the table is still empty.
func (sc *sqlCatalog) Seed(c context.Context, products []Product) error {
	return mydb.RunInTransaction(c, sc.db, func(c context.Context) error {
		q := mydb.Executor(c, sc.db)

		var count int
		err := q.QueryRowContext(c, "SELECT COUNT(*) FROM products").Scan(&count)
		if err != nil {
			return fmt.Errorf("error counting products: %w", err)
		}
		if count > 0 {
			return nil
		}

		for _, p := range products {
			_, err = q.ExecContext(c,
				"INSERT INTO products ("+productColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
				p.ID, p.Name, p.Description, p.Price, p.PictureURL, p.Type, p.Brand, p.QuantityInStock)
			if err != nil {
				return fmt.Errorf("error inserting product %d: %w", p.ID, err)
			}
		}

		// explicit ids bypass the sequence
		_, err = q.ExecContext(c, "SELECT setval(pg_get_serial_sequence('products', 'id'), (SELECT MAX(id) FROM products))")
		if err != nil {
			return fmt.Errorf("error resetting product sequence: %w", err)
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (Product, error) {
	p := Product{}
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.PictureURL, &p.Type, &p.Brand, &p.QuantityInStock)
	return p, err
}
