package cart

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/rifat2413010/e-commerce-bloom/catalog"
)

var (
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrProductNotFound = errors.New("product not found")
)

// ProductLookup resolves the current catalog entry for a product id.
type ProductLookup interface {
	GetProduct(ctx context.Context, id string) (catalog.Product, error)
}

const lockStripes = 64

// Service runs cart operations for a session. Mutations on one session are serialised.
type Service struct {
	store    Store
	products ProductLookup
	locks    [lockStripes]sync.Mutex
}

func NewService(store Store, products ProductLookup) *Service {
	return &Service{store: store, products: products}
}

func (s *Service) lock(sessionID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	mu := &s.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

func (s *Service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	return s.store.Load(ctx, sessionID)
}

// Add puts quantity units of a product into the session cart.
// A non-positive quantity leaves the cart untouched.
func (s *Service) Add(ctx context.Context, sessionID, productID string, quantity int, size string) (*Cart, error) {
	if quantity <= 0 {
		return s.store.Load(ctx, sessionID)
	}
	product, err := s.lookup(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock() {
		return nil, ErrOutOfStock
	}

	defer s.lock(sessionID)()
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !c.Add(SnapshotOf(product), quantity, size) {
		return c, nil
	}
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateQuantity sets a line's quantity. Stock is refreshed from the catalog
// when the product still exists; otherwise the stored snapshot is used.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int, size string) (*Cart, error) {
	var fresh *catalog.Product
	if quantity > 0 {
		p, err := s.products.GetProduct(ctx, productID)
		switch {
		case err == nil:
			fresh = &p
		case !errors.Is(err, catalog.ErrProductNotFound):
			return nil, fmt.Errorf("lookup product %s: %w", productID, err)
		}
	}

	defer s.lock(sessionID)()
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if fresh != nil {
		if i := c.find(productID, size); i >= 0 {
			c.Items[i].Product = SnapshotOf(*fresh)
		}
	}
	if !c.UpdateQuantity(productID, quantity, size) {
		return c, nil
	}
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Remove(ctx context.Context, sessionID, productID, size string) (*Cart, error) {
	defer s.lock(sessionID)()
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !c.Remove(productID, size) {
		return c, nil
	}
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Deduct removes the ordered quantities from the session cart and returns what is left.
func (s *Service) Deduct(ctx context.Context, sessionID string, ordered []Item) (*Cart, error) {
	defer s.lock(sessionID)()
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !c.Deduct(ordered) {
		return c, nil
	}
	if c.IsEmpty() {
		return c, s.store.Delete(ctx, sessionID)
	}
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	defer s.lock(sessionID)()
	return s.store.Delete(ctx, sessionID)
}

func (s *Service) ItemCount(ctx context.Context, sessionID string) (int, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return c.ItemCount(), nil
}

func (s *Service) Contains(ctx context.Context, sessionID, productID string) (bool, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return c.Contains(productID), nil
}

func (s *Service) lookup(ctx context.Context, productID string) (catalog.Product, error) {
	p, err := s.products.GetProduct(ctx, productID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return catalog.Product{}, ErrProductNotFound
	}
	if err != nil {
		return catalog.Product{}, fmt.Errorf("lookup product %s: %w", productID, err)
	}
	return p, nil
}
