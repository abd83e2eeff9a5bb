package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/thenoetrevino/coffeehub/internal/models"
)

// ProductRepo handles product operations on the relational backend.
// Every write runs in autocommit mode.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo creates a ProductRepo over the given handle.
func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// ListProducts retrieves all products ordered by ID with their type code.
func (r *ProductRepo) ListProducts(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.ID, p.PName, p.OnSale, p.OnSaleFrom, p.Price, t.BriefName
		FROM Product AS p
		JOIN ProductType AS t ON p.PType = t.ID
		ORDER BY p.ID ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	products := make([]*models.Product, 0)
	for rows.Next() {
		p := &models.Product{}
		var onSaleFrom any
		if err := rows.Scan(&p.ID, &p.Name, &p.OnSale, &onSaleFrom, &p.Price, &p.Type); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if p.OnSaleFrom, err = scanDate(onSaleFrom); err != nil {
			return nil, fmt.Errorf("failed to read sale date of product %d: %w", p.ID, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

// ListProductTypes returns the product type codes.
func (r *ProductRepo) ListProductTypes(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT BriefName FROM ProductType ORDER BY ID`)
	if err != nil {
		return nil, fmt.Errorf("failed to query product types: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	types := make([]string, 0)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan product type: %w", err)
		}
		types = append(types, code)
	}
	return types, rows.Err()
}

// NextProductID returns the highest product ID plus one, or 1 for an empty
// table. Nothing is reserved, so concurrent callers may get the same ID.
func (r *ProductRepo) NextProductID(ctx context.Context) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(ID), 0) + 1 FROM Product`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next product id: %w", err)
	}
	return next, nil
}

// UpsertProduct inserts the product when its ID is absent, else updates
// every field. The type code must name an existing product type.
func (r *ProductRepo) UpsertProduct(ctx context.Context, p *models.Product) error {
	var typeID int
	err := r.db.QueryRowContext(ctx, `SELECT ID FROM ProductType WHERE BriefName = ?`, p.Type).Scan(&typeID)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.NotFoundError{Entity: "product type", Key: p.Type}
	}
	if err != nil {
		return fmt.Errorf("failed to resolve product type %q: %w", p.Type, err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Product WHERE ID = ?`, p.ID).Scan(&count); err != nil {
		return fmt.Errorf("failed to check product %d: %w", p.ID, err)
	}

	saleFrom := p.OnSaleFrom.Format(models.DateLayout)
	if count == 0 {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO Product (ID, PName, OnSale, OnSaleFrom, Price, PType) VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.OnSale, saleFrom, p.Price, typeID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert product %d: %w", p.ID, err)
		}
		return nil
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE Product SET PName = ?, OnSale = ?, OnSaleFrom = ?, Price = ?, PType = ? WHERE ID = ?`,
		p.Name, p.OnSale, saleFrom, p.Price, typeID, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", p.ID, err)
	}
	return nil
}

// DeleteProduct deletes a product by ID. Missing IDs are not an error.
func (r *ProductRepo) DeleteProduct(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM Product WHERE ID = ?`, id); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}
