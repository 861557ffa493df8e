package catalog

import (
	"context"
	"errors"
	"slices"
	"sync"

	"fakestore/shop/internal/client"
	"fakestore/shop/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Loader owns the session catalog. It fetches the product list exactly once
// and keeps it sorted by descending rating.
type Loader struct {
	client client.CatalogClient

	once     sync.Once
	mutex    sync.RWMutex
	products []domain.Product
	loaded   bool
}

func NewLoader(client client.CatalogClient) *Loader {
	return &Loader{client: client}
}

// Load fetches the catalog on the first call and is a no-op afterwards. A
// failed fetch is logged and leaves the catalog empty.
func (l *Loader) Load(ctx context.Context) {
	l.once.Do(func() {
		products, err := l.client.GetProducts(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Debugf("Catalog fetch cancelled: %v", err)
			} else {
				log.Errorf("❌ Error fetching products: %v", err)
			}
			l.mutex.Lock()
			l.loaded = true
			l.mutex.Unlock()
			return
		}

		SortByRating(products)

		l.mutex.Lock()
		l.products = products
		l.loaded = true
		l.mutex.Unlock()

		log.Infof("✅ Catalog loaded: %d products", len(products))
	})
}

// Products returns the sorted catalog. The slice is shared and must not be modified.
func (l *Loader) Products() []domain.Product {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.products
}

// Loaded reports whether the fetch has resolved, successfully or not
func (l *Loader) Loaded() bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.loaded
}

func (l *Loader) Lookup(id int64) (domain.Product, bool) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	for _, p := range l.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Categories lists distinct categories in catalog order
func (l *Loader) Categories() []string {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range l.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}

// SortByRating orders products by descending rating rate, keeping the source
// order of equally rated products.
func SortByRating(products []domain.Product) {
	slices.SortStableFunc(products, func(a, b domain.Product) int {
		switch {
		case a.Rating.Rate > b.Rating.Rate:
			return -1
		case a.Rating.Rate < b.Rating.Rate:
			return 1
		default:
			return 0
		}
	})
}
