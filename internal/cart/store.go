// Package cart holds the in-memory shopping cart of one browsing session.
package cart

import (
	"math"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/aura_shop/internal/models"
)

// Item is a product with a quantity of at least one.
type Item struct {
	models.Product
	Quantity int `json:"quantity"`
}

// LineTotal is price times quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Store is a cart plus the visibility flag of the cart panel.
// Items keep first-added order and there is at most one Item per product id.
// Every operation is total.
type Store struct {
	mu    sync.Mutex
	items []Item
	open  bool
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) index(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// AddToCart increments the quantity of an existing entry or appends a new one,
// then opens the panel.
func (s *Store) AddToCart(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(p.ID); i >= 0 {
		s.items[i].Quantity = addQuantity(s.items[i].Quantity, 1)
	} else {
		s.items = append(s.items, Item{Product: p, Quantity: 1})
	}
	s.open = true
}

func (s *Store) RemoveFromCart(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeAt(s.index(id))
}

func (s *Store) removeAt(i int) {
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
}

// UpdateQuantity adds delta. An entry that drops to zero or below is removed.
// Quantities saturate at math.MaxInt.
func (s *Store) UpdateQuantity(id string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return
	}
	q := addQuantity(s.items[i].Quantity, delta)
	if q <= 0 {
		s.removeAt(i)
		return
	}
	s.items[i].Quantity = q
}

// Settle takes the quantities of items off the cart, removing entries that
// reach zero. Units added after items was captured stay in the cart.
func (s *Store) Settle(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range items {
		i := s.index(it.ID)
		if i < 0 {
			continue
		}
		if q := s.items[i].Quantity - it.Quantity; q > 0 {
			s.items[i].Quantity = q
		} else {
			s.removeAt(i)
		}
	}
}

// addQuantity is q+delta clamped to math.MaxInt. q is always positive.
func addQuantity(q, delta int) int {
	if delta > 0 && q > math.MaxInt-delta {
		return math.MaxInt
	}
	return q + delta
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, it := range s.items {
		n = addQuantity(it.Quantity, n)
	}
	return n
}

func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return total(s.items)
}

func total(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// Items returns a copy of the entries in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = open
}

// Snapshot is a consistent view of the cart taken under one lock.
type Snapshot struct {
	Items []Item
	Count int
	Total decimal.Decimal
	Open  bool
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	n := 0
	for _, it := range items {
		n = addQuantity(it.Quantity, n)
	}
	return Snapshot{Items: items, Count: n, Total: total(items), Open: s.open}
}
