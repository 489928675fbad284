package repository_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-api/internal/model"
	"github.com/tuanvumaihuynh/product-api/internal/repository"
	"github.com/tuanvumaihuynh/product-api/internal/storage/db"
	"github.com/tuanvumaihuynh/product-api/pkg/ptr"
)

func newSQLiteRepository(t *testing.T) repository.ProductRepository {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	client, err := db.NewSQLiteClient(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, repository.AutoMigrateGorm(context.Background(), client.DB))

	healthy, err := client.IsHealthy(context.Background())
	require.NoError(t, err)
	require.True(t, healthy)

	return repository.NewGormProductRepository(client.DB)
}

func TestProductRepository(t *testing.T) {
	backends := map[string]func(t *testing.T) repository.ProductRepository{
		"memory": func(*testing.T) repository.ProductRepository { return repository.NewMemoryProductRepository() },
		"sqlite": newSQLiteRepository,
	}

	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			runProductRepositorySuite(t, newRepo)
		})
	}
}

func runProductRepositorySuite(t *testing.T, newRepo func(t *testing.T) repository.ProductRepository) {
	ctx := context.Background()

	t.Run("Should default availability to true", func(t *testing.T) {
		repo := newRepo(t)

		p, err := repo.CreateProduct(ctx, repository.CreateProductParams{Name: "Monitor", Price: 300})
		require.NoError(t, err)

		assert.Positive(t, p.ID)
		assert.Equal(t, "Monitor", p.Name)
		assert.Equal(t, 300.0, p.Price)
		assert.True(t, p.Availability)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("Should keep explicit availability", func(t *testing.T) {
		repo := newRepo(t)

		p, err := repo.CreateProduct(ctx, repository.CreateProductParams{
			Name:         "Keyboard",
			Price:        49.9,
			Availability: ptr.New(false),
		})
		require.NoError(t, err)
		assert.False(t, p.Availability)

		got, err := repo.GetProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, got.Availability)
	})

	t.Run("Should list products by id", func(t *testing.T) {
		repo := newRepo(t)

		for _, name := range []string{"a", "b", "c"} {
			_, err := repo.CreateProduct(ctx, repository.CreateProductParams{Name: name, Price: 1})
			require.NoError(t, err)
		}

		desc, err := repo.ListProducts(ctx, repository.ListProductsParams{Order: repository.SortDesc})
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b", "a"}, names(desc))

		asc, err := repo.ListProducts(ctx, repository.ListProductsParams{Order: repository.SortAsc})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, names(asc))
	})

	t.Run("Should return an empty list", func(t *testing.T) {
		repo := newRepo(t)

		products, err := repo.ListProducts(ctx, repository.ListProductsParams{})
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("Should update every field", func(t *testing.T) {
		repo := newRepo(t)

		p, err := repo.CreateProduct(ctx, repository.CreateProductParams{Name: "Monitor", Price: 300})
		require.NoError(t, err)

		updated, err := repo.UpdateProduct(ctx, repository.UpdateProductParams{
			ID:           p.ID,
			Name:         "Monitor 4K",
			Price:        450.5,
			Availability: false,
		})
		require.NoError(t, err)

		assert.Equal(t, p.ID, updated.ID)
		assert.Equal(t, "Monitor 4K", updated.Name)
		assert.Equal(t, 450.5, updated.Price)
		assert.False(t, updated.Availability)
		assert.False(t, updated.UpdatedAt.Before(p.UpdatedAt))
	})

	t.Run("Should report missing products", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetProduct(ctx, 999)
		assert.ErrorIs(t, err, repository.ErrProductNotFound)

		_, err = repo.LockProduct(ctx, 999)
		assert.ErrorIs(t, err, repository.ErrProductNotFound)

		_, err = repo.UpdateProduct(ctx, repository.UpdateProductParams{ID: 999, Name: "x", Price: 1})
		assert.ErrorIs(t, err, repository.ErrProductNotFound)

		assert.ErrorIs(t, repo.DeleteProduct(ctx, 999), repository.ErrProductNotFound)
	})

	t.Run("Should delete a product", func(t *testing.T) {
		repo := newRepo(t)

		p, err := repo.CreateProduct(ctx, repository.CreateProductParams{Name: "Monitor", Price: 300})
		require.NoError(t, err)

		require.NoError(t, repo.DeleteProduct(ctx, p.ID))

		_, err = repo.GetProduct(ctx, p.ID)
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
	})

	t.Run("Should run reads and writes within a transaction", func(t *testing.T) {
		repo := newRepo(t)

		p, err := repo.CreateProduct(ctx, repository.CreateProductParams{Name: "Monitor", Price: 300})
		require.NoError(t, err)

		var toggled model.Product
		err = repo.WithinTx(ctx, func(tx repository.ProductRepository) error {
			locked, err := tx.LockProduct(ctx, p.ID)
			if err != nil {
				return err
			}

			toggled, err = tx.UpdateProduct(ctx, repository.UpdateProductParams{
				ID:           locked.ID,
				Name:         locked.Name,
				Price:        locked.Price,
				Availability: !locked.Availability,
			})
			return err
		})
		require.NoError(t, err)
		assert.False(t, toggled.Availability)

		got, err := repo.GetProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, got.Availability)
	})

	t.Run("Should return the error of a failed transaction", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.WithinTx(ctx, func(tx repository.ProductRepository) error {
			_, err := tx.LockProduct(ctx, 42)
			return err
		})
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
	})
}

func names(products []model.Product) []string {
	res := make([]string, 0, len(products))
	for _, p := range products {
		res = append(res, p.Name)
	}
	return res
}
