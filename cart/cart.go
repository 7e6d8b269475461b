// Package cart holds the per-session shopping cart and its stores.
package cart

import (
	"time"

	"github.com/rifat2413010/e-commerce-bloom/catalog"
	"github.com/shopspring/decimal"
)

// Snapshot is the part of a product the cart keeps alongside a line.
type Snapshot struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	NameEn string          `json:"name_en,omitempty"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock"`
	Image  string          `json:"image,omitempty"`
	Unit   string          `json:"unit"`
}

func SnapshotOf(p catalog.Product) Snapshot {
	return Snapshot{
		ID:     p.ID,
		Name:   p.Name,
		NameEn: p.NameEn,
		Price:  p.Price,
		Stock:  p.Stock,
		Image:  p.Image,
		Unit:   p.Unit,
	}
}

// Item is one cart line. (Product.ID, SelectedSize) identifies it.
type Item struct {
	Product      Snapshot `json:"product"`
	Quantity     int      `json:"quantity"`
	SelectedSize string   `json:"selected_size,omitempty"`
}

// LineTotal is unit price times quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Cart struct {
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

func New() *Cart {
	return &Cart{Items: []Item{}}
}

func (c *Cart) find(productID, size string) int {
	for i, item := range c.Items {
		if item.Product.ID == productID && item.SelectedSize == size {
			return i
		}
	}
	return -1
}

// Add adds quantity units of product. An existing line for the same size is
// incremented; the result never exceeds stock. Reports whether the cart changed.
func (c *Cart) Add(product Snapshot, quantity int, size string) bool {
	if quantity <= 0 || product.Stock <= 0 {
		return false
	}
	if i := c.find(product.ID, size); i >= 0 {
		line := &c.Items[i]
		line.Product = product
		next := min(line.Quantity+quantity, product.Stock)
		if next == line.Quantity {
			return false
		}
		line.Quantity = next
		return true
	}
	c.Items = append(c.Items, Item{
		Product:      product,
		Quantity:     min(quantity, product.Stock),
		SelectedSize: size,
	})
	return true
}

// UpdateQuantity sets the quantity of a line, clamped to [1, stock].
// A quantity of zero or less removes the line.
func (c *Cart) UpdateQuantity(productID string, quantity int, size string) bool {
	i := c.find(productID, size)
	if i < 0 {
		return false
	}
	if quantity <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return true
	}
	line := &c.Items[i]
	line.Quantity = max(1, min(quantity, line.Product.Stock))
	return true
}

func (c *Cart) Remove(productID, size string) bool {
	i := c.find(productID, size)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

// Deduct takes the ordered quantities out of the matching lines (same product
// and size). Lines that reach zero are dropped; lines not in ordered are kept.
func (c *Cart) Deduct(ordered []Item) bool {
	changed := false
	for _, o := range ordered {
		i := c.find(o.Product.ID, o.SelectedSize)
		if i < 0 || o.Quantity <= 0 {
			continue
		}
		changed = true
		if c.Items[i].Quantity <= o.Quantity {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			continue
		}
		c.Items[i].Quantity -= o.Quantity
	}
	return changed
}

func (c *Cart) Clear() {
	c.Items = []Item{}
}

// ItemCount is the sum of quantities over all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Total is the sum of price x quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Contains reports whether any line, whatever its size, is for productID.
func (c *Cart) Contains(productID string) bool {
	for _, item := range c.Items {
		if item.Product.ID == productID {
			return true
		}
	}
	return false
}

func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

// Clone returns a deep copy.
func (c *Cart) Clone() *Cart {
	out := &Cart{Items: make([]Item, len(c.Items)), UpdatedAt: c.UpdatedAt}
	copy(out.Items, c.Items)
	return out
}
