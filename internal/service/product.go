package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tuanvumaihuynh/product-api/internal/apperr"
	"github.com/tuanvumaihuynh/product-api/internal/model"
	"github.com/tuanvumaihuynh/product-api/internal/repository"
)

type CreateProductParams struct {
	Name  string
	Price float64
	// Availability is optional; storage defaults it to true.
	Availability *bool
}

type UpdateProductParams struct {
	ID           int64
	Name         string
	Price        float64
	Availability bool
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (model.Product, error)
	ToggleAvailability(ctx context.Context, id int64) (model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{
		productRepo: productRepo,
	}
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, repository.ListProductsParams{
		Order: repository.SortDesc,
	})
	if err != nil {
		return nil, fmt.Errorf("product repository list products: %w", err)
	}

	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		return model.Product{}, mapRepoErr("product repository get product", err)
	}

	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	product, err := s.productRepo.CreateProduct(ctx, repository.CreateProductParams{
		Name:         params.Name,
		Price:        params.Price,
		Availability: params.Availability,
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository create product: %w", err)
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, params UpdateProductParams) (model.Product, error) {
	var product model.Product
	if err := s.productRepo.WithinTx(ctx, func(repo repository.ProductRepository) error {
		if _, err := repo.LockProduct(ctx, params.ID); err != nil {
			return mapRepoErr("product repository lock product", err)
		}

		updated, err := repo.UpdateProduct(ctx, repository.UpdateProductParams{
			ID:           params.ID,
			Name:         params.Name,
			Price:        params.Price,
			Availability: params.Availability,
		})
		if err != nil {
			return mapRepoErr("product repository update product", err)
		}

		product = updated
		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

// ToggleAvailability negates the availability read under the row lock.
func (s *productService) ToggleAvailability(ctx context.Context, id int64) (model.Product, error) {
	var product model.Product
	if err := s.productRepo.WithinTx(ctx, func(repo repository.ProductRepository) error {
		current, err := repo.LockProduct(ctx, id)
		if err != nil {
			return mapRepoErr("product repository lock product", err)
		}

		updated, err := repo.UpdateProduct(ctx, repository.UpdateProductParams{
			ID:           current.ID,
			Name:         current.Name,
			Price:        current.Price,
			Availability: !current.Availability,
		})
		if err != nil {
			return mapRepoErr("product repository update product", err)
		}

		product = updated
		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("toggle availability: %w", err)
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.productRepo.WithinTx(ctx, func(repo repository.ProductRepository) error {
		if _, err := repo.LockProduct(ctx, id); err != nil {
			return mapRepoErr("product repository lock product", err)
		}

		if err := repo.DeleteProduct(ctx, id); err != nil {
			return mapRepoErr("product repository delete product", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	return nil
}

func mapRepoErr(op string, err error) error {
	if errors.Is(err, repository.ErrProductNotFound) {
		return apperr.ProductNotFoundErr.WrapParent(err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
