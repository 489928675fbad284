package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tuanvumaihuynh/product-api/internal/model"
	"github.com/tuanvumaihuynh/product-api/internal/storage/db"
)

// ErrProductNotFound is returned when no product row matches the requested id.
var ErrProductNotFound = errors.New("product not found")

type SortOrder uint8

const (
	SortDesc SortOrder = iota
	SortAsc
)

func (o SortOrder) String() string {
	if o == SortAsc {
		return "ASC"
	}
	return "DESC"
}

type ListProductsParams struct {
	// Order applies to the product id.
	Order SortOrder
}

type CreateProductParams struct {
	Name  string
	Price float64
	// Availability falls back to the storage default (true) when nil.
	Availability *bool
}

type UpdateProductParams struct {
	ID           int64
	Name         string
	Price        float64
	Availability bool
}

type ProductRepository interface {
	// WithinTx runs fn with a repository bound to a single transaction.
	// Nested calls join the outer transaction.
	WithinTx(ctx context.Context, fn func(repo ProductRepository) error) error
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	// LockProduct reads a product and holds its row until the enclosing transaction ends.
	LockProduct(ctx context.Context, id int64) (model.Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

const productColumns = `id, name, price, availability, created_at, updated_at`

type productRow struct {
	ID           int64          `db:"id"`
	Name         string         `db:"name"`
	Price        pgtype.Numeric `db:"price"`
	Availability bool           `db:"availability"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type productRepository struct {
	db db.DB
}

// NewProductRepository returns a Postgres backed repository.
func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{
		db: db,
	}
}

func (r productRepository) withDB(db db.DB) ProductRepository {
	return &productRepository{
		db: db,
	}
}

func (r productRepository) WithinTx(ctx context.Context, fn func(repo ProductRepository) error) error {
	return r.db.WithTx(ctx, func(tx db.DB) error {
		return fn(r.withDB(tx))
	})
}

func (r productRepository) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id `+params.Order.String())
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		return nil, fmt.Errorf("collect products: %w", err)
	}

	products := make([]model.Product, 0, len(records))
	for _, record := range records {
		product, err := rowToModelProduct(record)
		if err != nil {
			return nil, fmt.Errorf("convert product to model product: %w", err)
		}
		products = append(products, product)
	}

	return products, nil
}

func (r productRepository) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	return r.queryOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r productRepository) LockProduct(ctx context.Context, id int64) (model.Product, error) {
	return r.queryOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r productRepository) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	price, err := float64ToNumeric(params.Price)
	if err != nil {
		return model.Product{}, err
	}

	args := pgx.NamedArgs{
		"name":  params.Name,
		"price": price,
	}
	query := `INSERT INTO products (name, price) VALUES (@name, @price) RETURNING ` + productColumns
	if params.Availability != nil {
		args["availability"] = *params.Availability
		query = `INSERT INTO products (name, price, availability) VALUES (@name, @price, @availability) RETURNING ` + productColumns
	}

	product, err := r.queryOne(ctx, query, args)
	if err != nil {
		return model.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return product, nil
}

func (r productRepository) UpdateProduct(ctx context.Context, params UpdateProductParams) (model.Product, error) {
	price, err := float64ToNumeric(params.Price)
	if err != nil {
		return model.Product{}, err
	}

	return r.queryOne(ctx, `
		UPDATE products
		SET name = @name, price = @price, availability = @availability, updated_at = NOW()
		WHERE id = @id
		RETURNING `+productColumns,
		pgx.NamedArgs{
			"id":           params.ID,
			"name":         params.Name,
			"price":        price,
			"availability": params.Availability,
		},
	)
}

func (r productRepository) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r productRepository) queryOne(ctx context.Context, query string, args ...any) (model.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Product{}, fmt.Errorf("query product: %w", err)
	}

	record, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, ErrProductNotFound
		}
		return model.Product{}, fmt.Errorf("collect product: %w", err)
	}

	return rowToModelProduct(record)
}

func float64ToNumeric(v float64) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(strconv.FormatFloat(v, 'f', -1, 64)); err != nil {
		return n, fmt.Errorf("scan price: %w", err)
	}
	return n, nil
}

func rowToModelProduct(row productRow) (model.Product, error) {
	price, err := row.Price.Float64Value()
	if err != nil {
		return model.Product{}, fmt.Errorf("convert price to float64: %w", err)
	}

	return model.Product{
		ID:           row.ID,
		Name:         row.Name,
		Price:        price.Float64,
		Availability: row.Availability,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}
