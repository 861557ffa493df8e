package service

import (
	"context"
	"errors"
	"fmt"

	"fakestore/shop/internal/browse"
	"fakestore/shop/internal/cart"
	"fakestore/shop/internal/domain"
	"fakestore/shop/internal/notify"

	log "github.com/sirupsen/logrus"
)

// ErrUnknownProduct is returned when adding a product the catalog does not hold
var ErrUnknownProduct = errors.New("unknown product")

// Catalog is the read side of the catalog loader the service needs
type Catalog interface {
	Products() []domain.Product
	Lookup(id int64) (domain.Product, bool)
	Categories() []string
	Loaded() bool
}

// Snapshot is everything the presentation layer renders
type Snapshot struct {
	State         browse.State
	Products      []domain.Product
	HasNext       bool
	HasPrev       bool
	CatalogLoaded bool
	Lines         []domain.CartLine
	CartCount     int
	Total         string
	Notification  bool
}

// Service forwards user actions to the browse controller and the cart store
type Service struct {
	catalog  Catalog
	browse   *browse.Controller
	cart     *cart.Store
	notifier *notify.Notifier
}

func NewService(catalog Catalog, controller *browse.Controller, store *cart.Store, notifier *notify.Notifier) *Service {
	return &Service{
		catalog:  catalog,
		browse:   controller,
		cart:     store,
		notifier: notifier,
	}
}

func (s *Service) Home(ctx context.Context) {
	s.browse.Home(ctx)
}

func (s *Service) SelectCategory(category string) {
	s.browse.SelectCategory(category)
}

func (s *Service) EditSearch(term string) {
	s.browse.EditSearch(term)
}

func (s *Service) ApplySearch() {
	s.browse.ApplySearch()
}

func (s *Service) NextPage() bool {
	return s.browse.NextPage()
}

func (s *Service) PrevPage() bool {
	return s.browse.PrevPage()
}

func (s *Service) ShowCart(ctx context.Context) {
	s.browse.ShowCart(ctx)
}

func (s *Service) ShowCatalog(ctx context.Context) {
	s.browse.ShowCatalog(ctx)
}

func (s *Service) Categories() []string {
	return s.catalog.Categories()
}

func (s *Service) Lookup(productID int64) (domain.Product, bool) {
	return s.catalog.Lookup(productID)
}

// AddToCart adds one unit of a catalog product and raises the success notification
func (s *Service) AddToCart(ctx context.Context, productID int64) error {
	p, ok := s.catalog.Lookup(productID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownProduct, productID)
	}

	s.cart.Add(ctx, p)
	s.notifier.Show()

	log.Debugf("Added product %d to cart (quantity %d)", productID, s.cart.Quantity(productID))
	return nil
}

func (s *Service) IncreaseQuantity(ctx context.Context, productID int64) bool {
	return s.cart.Increase(ctx, productID)
}

func (s *Service) DecreaseQuantity(ctx context.Context, productID int64) bool {
	return s.cart.Decrease(ctx, productID)
}

func (s *Service) RemoveFromCart(ctx context.Context, productID int64) bool {
	return s.cart.Remove(ctx, productID)
}

func (s *Service) Snapshot() Snapshot {
	view := s.browse.View()
	return Snapshot{
		State:         view.State,
		Products:      view.Products,
		HasNext:       view.HasNext,
		HasPrev:       view.HasPrev,
		CatalogLoaded: s.catalog.Loaded(),
		Lines:         s.cart.Lines(),
		CartCount:     s.cart.Count(),
		Total:         s.cart.TotalDisplay(),
		Notification:  s.notifier.Visible(),
	}
}
