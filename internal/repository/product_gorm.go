package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tuanvumaihuynh/product-api/internal/model"
)

type productRecord struct {
	ID           int64   `gorm:"primaryKey"`
	Name         string  `gorm:"size:100;not null"`
	Price        float64 `gorm:"not null"`
	Availability *bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (productRecord) TableName() string { return "products" }

func (r productRecord) toModel() model.Product {
	p := model.Product{
		ID:        r.ID,
		Name:      r.Name,
		Price:     r.Price,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Availability != nil {
		p.Availability = *r.Availability
	}
	return p
}

// AutoMigrateGorm creates or alters the products table to match the record layout.
func AutoMigrateGorm(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&productRecord{}); err != nil {
		return fmt.Errorf("auto migrate products: %w", err)
	}
	return nil
}

type gormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository returns a GORM backed repository, used with the embedded SQLite store.
func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &gormProductRepository{
		db: db,
	}
}

func (r gormProductRepository) WithinTx(ctx context.Context, fn func(repo ProductRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormProductRepository{db: tx})
	})
}

func (r gormProductRepository) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("id " + params.Order.String()).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	products := make([]model.Product, 0, len(records))
	for _, record := range records {
		products = append(products, record.toModel())
	}

	return products, nil
}

func (r gormProductRepository) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Product{}, ErrProductNotFound
		}
		return model.Product{}, fmt.Errorf("find product: %w", err)
	}

	return record.toModel(), nil
}

// LockProduct relies on the transaction holding the SQLite write lock (BEGIN IMMEDIATE).
func (r gormProductRepository) LockProduct(ctx context.Context, id int64) (model.Product, error) {
	return r.GetProduct(ctx, id)
}

func (r gormProductRepository) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	record := productRecord{
		Name:         params.Name,
		Price:        params.Price,
		Availability: params.Availability,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return model.Product{}, fmt.Errorf("insert product: %w", err)
	}

	// reload to pick up column defaults
	return r.GetProduct(ctx, record.ID)
}

func (r gormProductRepository) UpdateProduct(ctx context.Context, params UpdateProductParams) (model.Product, error) {
	res := r.db.WithContext(ctx).
		Model(&productRecord{}).
		Where("id = ?", params.ID).
		Updates(map[string]any{
			"name":         params.Name,
			"price":        params.Price,
			"availability": params.Availability,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return model.Product{}, fmt.Errorf("update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.Product{}, ErrProductNotFound
	}

	return r.GetProduct(ctx, params.ID)
}

func (r gormProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&productRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
