package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rifat2413010/e-commerce-bloom/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderFilter struct {
	Status models.OrderStatus
	Search string
	Limit  int
	Offset int
}

// CustomerSummary is a customer with aggregates over the orders placed from their phone.
type CustomerSummary struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Email      *string         `json:"email"`
	Address    *string         `json:"address"`
	City       *string         `json:"city"`
	OrderCount int64           `json:"order_count"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Repository is the back-office read side over orders and customers.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListOrders returns orders newest first. Search matches order number or
// customer name case-insensitively, or a fragment of the phone number.
func (r *Repository) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(order_number) LIKE ? OR LOWER(customer_name) LIKE ? OR customer_phone LIKE ?", like, like, "%"+s+"%")
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var list []models.Order
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return list, nil
}

// GetOrder returns the header with its items.
func (r *Repository) GetOrder(ctx context.Context, id string) (models.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Order{}, ErrOrderNotFound
	}
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ?", id).
		Take(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}
	return order, nil
}

type phoneTotals struct {
	CustomerPhone string
	OrderCount    int64
	TotalSpent    decimal.Decimal
}

// ListCustomers returns customers newest first with their order count and spend.
func (r *Repository) ListCustomers(ctx context.Context, search string) ([]CustomerSummary, error) {
	q := r.db.WithContext(ctx).Model(&models.Customer{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(COALESCE(email, '')) LIKE ?", like, "%"+s+"%", like)
	}
	var customers []models.Customer
	if err := q.Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	if len(customers) == 0 {
		return []CustomerSummary{}, nil
	}

	phones := make([]string, 0, len(customers))
	for _, c := range customers {
		phones = append(phones, c.Phone)
	}
	var totals []phoneTotals
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("customer_phone, COUNT(*) AS order_count, COALESCE(SUM(total_amount), 0) AS total_spent").
		Where("customer_phone IN ?", phones).
		Group("customer_phone").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate customer orders: %w", err)
	}
	byPhone := make(map[string]phoneTotals, len(totals))
	for _, t := range totals {
		byPhone[t.CustomerPhone] = t
	}

	out := make([]CustomerSummary, 0, len(customers))
	for _, c := range customers {
		t := byPhone[c.Phone]
		out = append(out, CustomerSummary{
			ID:         c.ID,
			Name:       c.Name,
			Phone:      c.Phone,
			Email:      c.Email,
			Address:    c.Address,
			City:       c.City,
			OrderCount: t.OrderCount,
			TotalSpent: t.TotalSpent,
			CreatedAt:  c.CreatedAt,
		})
	}
	return out, nil
}

// OrdersByPhone lists the orders placed with phone, newest first.
func (r *Repository) OrdersByPhone(ctx context.Context, phone string) ([]models.Order, error) {
	var list []models.Order
	err := r.db.WithContext(ctx).
		Where("customer_phone = ?", phone).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("orders for %s: %w", phone, err)
	}
	return list, nil
}
