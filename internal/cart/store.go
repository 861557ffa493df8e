package cart

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"fakestore/shop/internal/domain"
	"fakestore/shop/internal/state"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Store owns the cart lines. Every mutation is followed by a purge of empty
// lines and a write-through to the persistence port.
type Store struct {
	persist state.Store

	mutex sync.Mutex
	lines []domain.CartLine
}

// NewStore restores the cart saved in persist. Absent or unreadable data gives
// an empty cart.
func NewStore(ctx context.Context, persist state.Store) *Store {
	s := &Store{
		persist: persist,
		lines:   make([]domain.CartLine, 0),
	}

	saved, ok, err := persist.Get(ctx, state.KeyCart)
	switch {
	case err != nil:
		log.Warnf("Failed to restore cart: %v", err)
	case !ok:
	default:
		var lines []domain.CartLine
		if err := json.Unmarshal([]byte(saved), &lines); err != nil {
			log.Warnf("Saved cart is corrupt, starting empty: %v", err)
			break
		}
		s.lines = merge(lines)
	}

	return s
}

// merge collapses duplicate product lines and drops empty ones
func merge(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(lines))
	for _, l := range lines {
		if i := indexOf(out, l.Product.ID); i >= 0 {
			out[i].Quantity += l.Quantity
			continue
		}
		out = append(out, l)
	}
	return purge(out)
}

func indexOf(lines []domain.CartLine, productID int64) int {
	return slices.IndexFunc(lines, func(l domain.CartLine) bool {
		return l.Product.ID == productID
	})
}

func purge(lines []domain.CartLine) []domain.CartLine {
	return slices.DeleteFunc(lines, func(l domain.CartLine) bool {
		return l.Quantity <= 0
	})
}

// Add puts one unit of p in the cart
func (s *Store) Add(ctx context.Context, p domain.Product) {
	s.mutate(ctx, func() bool {
		if i := indexOf(s.lines, p.ID); i >= 0 {
			s.lines[i].Quantity++
		} else {
			s.lines = append(s.lines, domain.CartLine{Product: p, Quantity: 1})
		}
		return true
	})
}

// Increase adds one unit to an existing line; false if the product is not in the cart
func (s *Store) Increase(ctx context.Context, productID int64) bool {
	return s.mutate(ctx, func() bool {
		i := indexOf(s.lines, productID)
		if i < 0 {
			return false
		}
		s.lines[i].Quantity++
		return true
	})
}

// Decrease removes one unit; a line reaching zero leaves the cart
func (s *Store) Decrease(ctx context.Context, productID int64) bool {
	return s.mutate(ctx, func() bool {
		i := indexOf(s.lines, productID)
		if i < 0 {
			return false
		}
		s.lines[i].Quantity = max(s.lines[i].Quantity-1, 0)
		return true
	})
}

func (s *Store) Remove(ctx context.Context, productID int64) bool {
	return s.mutate(ctx, func() bool {
		i := indexOf(s.lines, productID)
		if i < 0 {
			return false
		}
		s.lines = slices.Delete(s.lines, i, i+1)
		return true
	})
}

func (s *Store) mutate(ctx context.Context, fn func() bool) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	changed := fn()
	s.lines = purge(s.lines)
	s.save(ctx)

	return changed
}

// save is best-effort: a failed write is logged and the in-memory cart stays authoritative
func (s *Store) save(ctx context.Context) {
	data, err := json.Marshal(s.lines)
	if err != nil {
		log.Warnf("Failed to encode cart: %v", err)
		return
	}
	if err := s.persist.Set(ctx, state.KeyCart, string(data)); err != nil {
		log.Warnf("Failed to persist cart: %v", err)
	}
}

// Lines returns a copy of the cart lines in insertion order
func (s *Store) Lines() []domain.CartLine {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return slices.Clone(s.lines)
}

// Count is the number of distinct products in the cart
func (s *Store) Count() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.lines)
}

func (s *Store) Quantity(productID int64) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if i := indexOf(s.lines, productID); i >= 0 {
		return s.lines[i].Quantity
	}
	return 0
}

// Total is the exact sum of price times quantity
func (s *Store) Total() decimal.Decimal {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// TotalDisplay is the total rounded to cents
func (s *Store) TotalDisplay() string {
	return s.Total().StringFixed(2)
}
