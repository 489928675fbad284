package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/product-api/internal/model"
)

type memoryStore struct {
	// txMu serializes WithinTx callers.
	txMu sync.Mutex

	mu       sync.RWMutex
	products map[int64]model.Product
	lastID   int64
}

type memoryProductRepository struct {
	store *memoryStore
	inTx  bool
}

// NewMemoryProductRepository returns a repository keeping products in process memory.
// Transactions are serialized but writes made before fn fails are not rolled back.
func NewMemoryProductRepository() ProductRepository {
	return &memoryProductRepository{
		store: &memoryStore{
			products: make(map[int64]model.Product),
		},
	}
}

func (r memoryProductRepository) WithinTx(ctx context.Context, fn func(repo ProductRepository) error) error {
	if r.inTx {
		return fn(&r)
	}

	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	return fn(&memoryProductRepository{store: r.store, inTx: true})
}

func (r memoryProductRepository) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	products := make([]model.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		products = append(products, p)
	}

	slices.SortFunc(products, func(a, b model.Product) int {
		if params.Order == SortAsc {
			return cmp.Compare(a.ID, b.ID)
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return products, nil
}

func (r memoryProductRepository) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	if err := ctx.Err(); err != nil {
		return model.Product{}, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.products[id]
	if !ok {
		return model.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r memoryProductRepository) LockProduct(ctx context.Context, id int64) (model.Product, error) {
	return r.GetProduct(ctx, id)
}

func (r memoryProductRepository) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	if err := ctx.Err(); err != nil {
		return model.Product{}, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	availability := true
	if params.Availability != nil {
		availability = *params.Availability
	}

	r.store.lastID++
	now := time.Now().UTC()
	p := model.Product{
		ID:           r.store.lastID,
		Name:         params.Name,
		Price:        params.Price,
		Availability: availability,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.store.products[p.ID] = p

	return p, nil
}

func (r memoryProductRepository) UpdateProduct(ctx context.Context, params UpdateProductParams) (model.Product, error) {
	if err := ctx.Err(); err != nil {
		return model.Product{}, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.products[params.ID]
	if !ok {
		return model.Product{}, ErrProductNotFound
	}

	p.Name = params.Name
	p.Price = params.Price
	p.Availability = params.Availability
	p.UpdatedAt = time.Now().UTC()
	r.store.products[p.ID] = p

	return p, nil
}

func (r memoryProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.store.products, id)

	return nil
}
