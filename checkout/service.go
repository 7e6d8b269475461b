// Package checkout turns a session cart or a quick-order form into an order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rifat2413010/e-commerce-bloom/cart"
	"github.com/rifat2413010/e-commerce-bloom/catalog"
	"github.com/rifat2413010/e-commerce-bloom/confirmation"
	"github.com/rifat2413010/e-commerce-bloom/models"
	"github.com/rifat2413010/e-commerce-bloom/orders"
	"github.com/rifat2413010/e-commerce-bloom/settings"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrSubmissionInProgress = errors.New("order submission already in progress")
	ErrProductNotFound      = errors.New("product not found")
	ErrOutOfStock           = errors.New("product is out of stock")
)

// SubmissionError is a failed order submission. Message comes from the order
// gateway and is empty when there is nothing specific to show.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return "submit order: " + e.Message
	}
	return fmt.Sprintf("submit order: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

type Carts interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
	Deduct(ctx context.Context, sessionID string, ordered []cart.Item) (*cart.Cart, error)
}

type SiteSettings interface {
	Site(ctx context.Context) (settings.Site, error)
}

type Service struct {
	carts    Carts
	products cart.ProductLookup
	gateway  orders.Gateway
	settings SiteSettings
	logger   *slog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewService(carts Carts, products cart.ProductLookup, gateway orders.Gateway, site SiteSettings, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		carts:    carts,
		products: products,
		gateway:  gateway,
		settings: site,
		logger:   logger,
		inFlight: make(map[string]struct{}),
	}
}

// begin marks key as submitting. The returned func releases it.
func (s *Service) begin(key string) (func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[key]; busy {
		return nil, false
	}
	s.inFlight[key] = struct{}{}
	return func() {
		s.mu.Lock()
		delete(s.inFlight, key)
		s.mu.Unlock()
	}, true
}

// Quote prices the session cart with the configured delivery policy.
// An empty cart has nothing to price and yields ErrEmptyCart.
func (s *Service) Quote(ctx context.Context, sessionID string) (Quote, error) {
	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return Quote{}, err
	}
	if c.IsEmpty() {
		return Quote{}, ErrEmptyCart
	}
	site, err := s.settings.Site(ctx)
	if err != nil {
		return Quote{}, err
	}
	return PolicyFromSite(site).Quote(c.Total(), c.ItemCount()), nil
}

// Submit places an order for the session cart. The ordered lines are taken out
// of the cart only after the order number has been read back; on any failure
// the cart is left as it was. Lines added meanwhile stay in the cart.
func (s *Service) Submit(ctx context.Context, sessionID string, info CustomerInfo, idempotencyKey string) (*confirmation.State, error) {
	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}

	release, ok := s.begin("cart:" + sessionID)
	if !ok {
		return nil, ErrSubmissionInProgress
	}
	defer release()

	site, err := s.settings.Site(ctx)
	if err != nil {
		return nil, fmt.Errorf("load delivery settings: %w", err)
	}
	subtotal := c.Total()
	params := orders.CreateOrderParams{
		CustomerName:     info.Name,
		CustomerPhone:    info.Phone,
		CustomerEmail:    info.Email,
		CustomerAddress:  info.Address,
		CustomerCity:     info.City,
		CustomerDistrict: info.District,
		PaymentMethod:    models.PaymentMethodCOD,
		DeliveryCharge:   PolicyFromSite(site).Charge(subtotal),
		Notes:            info.Notes,
		Items:            lineItems(c),
		IdempotencyKey:   idempotencyKey,
	}

	number, err := s.place(ctx, params)
	if err != nil {
		return nil, err
	}

	if _, err := s.carts.Deduct(ctx, sessionID, c.Items); err != nil {
		s.logger.Error("remove ordered lines from cart", "session_id", sessionID, "order_number", number, "error", err)
	}
	return &confirmation.State{OrderNumber: number, Customer: info.confirmation()}, nil
}

// QuickOrder places a single-product order with a flat area-based delivery fee.
// The session cart is not involved.
func (s *Service) QuickOrder(ctx context.Context, form QuickOrderForm, idempotencyKey string) (*confirmation.State, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	product, err := s.products.GetProduct(ctx, form.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup product %s: %w", form.ProductID, err)
	}
	if !product.InStock() {
		return nil, ErrOutOfStock
	}
	quantity := max(1, min(form.Quantity, product.Stock))

	site, err := s.settings.Site(ctx)
	if err != nil {
		return nil, fmt.Errorf("load delivery settings: %w", err)
	}
	fee, _ := form.DeliveryArea.Fee(site)

	release, ok := s.begin("quick:" + strings.TrimSpace(form.Phone))
	if !ok {
		return nil, ErrSubmissionInProgress
	}
	defer release()

	productID := product.ID
	params := orders.CreateOrderParams{
		CustomerName:    form.Name,
		CustomerPhone:   form.Phone,
		CustomerAddress: form.Address,
		PaymentMethod:   models.PaymentMethodCOD,
		DeliveryCharge:  fee,
		Notes:           form.Notes,
		Items: []orders.LineItem{{
			ProductID:    &productID,
			ProductName:  product.Name,
			ProductImage: product.Image,
			UnitPrice:    product.Price,
			Quantity:     quantity,
			SelectedSize: form.SelectedSize,
		}},
		IdempotencyKey: idempotencyKey,
	}

	number, err := s.place(ctx, params)
	if err != nil {
		return nil, err
	}
	return &confirmation.State{
		OrderNumber: number,
		Customer: &confirmation.Customer{
			Name:    strings.TrimSpace(form.Name),
			Phone:   strings.TrimSpace(form.Phone),
			Address: strings.TrimSpace(form.Address),
		},
	}, nil
}

// place creates the order and reads back its number.
func (s *Service) place(ctx context.Context, params orders.CreateOrderParams) (string, error) {
	orderID, err := s.gateway.CreateOrder(ctx, params)
	if err != nil {
		var gwErr *orders.GatewayError
		if errors.As(err, &gwErr) {
			return "", &SubmissionError{Message: gwErr.Message, Err: err}
		}
		return "", &SubmissionError{Err: err}
	}

	number, err := s.gateway.OrderNumber(ctx, orderID)
	if err != nil {
		s.logger.Error("order number read-back failed", "order_id", orderID, "error", err)
		return "", &SubmissionError{Err: err}
	}
	s.logger.Info("order placed", "order_id", orderID, "order_number", number, "total_items", len(params.Items))
	return number, nil
}

func lineItems(c *cart.Cart) []orders.LineItem {
	items := make([]orders.LineItem, 0, len(c.Items))
	for _, line := range c.Items {
		id := line.Product.ID
		items = append(items, orders.LineItem{
			ProductID:    &id,
			ProductName:  line.Product.Name,
			ProductImage: line.Product.Image,
			UnitPrice:    line.Product.Price,
			Quantity:     line.Quantity,
			SelectedSize: line.SelectedSize,
		})
	}
	return items
}
