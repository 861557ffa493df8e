package browse

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"fakestore/shop/internal/domain"
	"fakestore/shop/internal/state"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
)

// ProductSource supplies the sorted catalog the controller filters
type ProductSource interface {
	Products() []domain.Product
}

// State is the browse view state. Only CartView is persisted.
type State struct {
	Page          int
	Category      string
	SearchTerm    string
	SearchApplied bool
	CartView      bool
}

// Controller holds the browse state machine. The visible product set is never
// stored: every accessor derives it from the current catalog and state.
type Controller struct {
	source ProductSource
	store  state.Store

	mutex sync.Mutex
	state State
}

// NewController restores the cart-view flag from store; any stored value other
// than "true" means the catalog view.
func NewController(ctx context.Context, source ProductSource, store state.Store) *Controller {
	c := &Controller{
		source: source,
		store:  store,
		state:  initialState(),
	}

	saved, ok, err := store.Get(ctx, state.KeyCartView)
	if err != nil {
		log.Warnf("Failed to restore cart view flag: %v", err)
	} else if ok {
		c.state.CartView = saved == "true"
	}

	return c
}

func initialState() State {
	return State{Page: 1, Category: domain.CategoryAll}
}

func (c *Controller) State() State {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.state
}

// SelectCategory keeps the current page and search, even when the narrower set
// leaves the page out of range.
func (c *Controller) SelectCategory(category string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.state.Category = category
}

// EditSearch changes the term; filtering by it starts once a search is applied
func (c *Controller) EditSearch(term string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.state.SearchTerm = term
}

func (c *Controller) ApplySearch() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.state.SearchApplied = true
	c.state.Page = 1
}

// Home resets every browse field and returns to the catalog view
func (c *Controller) Home(ctx context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.state = initialState()
	c.persistCartView(ctx)
}

func (c *Controller) NextPage() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !hasNext(c.state.Page, len(c.activeSet())) {
		return false
	}
	c.state.Page++
	return true
}

func (c *Controller) PrevPage() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.state.Page <= 1 {
		return false
	}
	c.state.Page--
	return true
}

func (c *Controller) ShowCart(ctx context.Context) {
	c.setCartView(ctx, true)
}

func (c *Controller) ShowCatalog(ctx context.Context) {
	c.setCartView(ctx, false)
}

func (c *Controller) setCartView(ctx context.Context, v bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.state.CartView = v
	c.persistCartView(ctx)
}

func (c *Controller) persistCartView(ctx context.Context) {
	if err := c.store.Set(ctx, state.KeyCartView, strconv.FormatBool(c.state.CartView)); err != nil {
		log.Warnf("Failed to persist cart view flag: %v", err)
	}
}

// ActiveSet returns the catalog narrowed by category and, once applied, by search term
func (c *Controller) ActiveSet() []domain.Product {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.activeSet()
}

// View is a consistent read of the browse state and everything derived from it
type View struct {
	State    State
	Products []domain.Product
	HasNext  bool
	HasPrev  bool
}

// View derives the displayed page and pagination bounds from a single read of
// the catalog, so they agree even while the catalog is being loaded.
func (c *Controller) View() View {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	set := c.activeSet()
	return View{
		State:    c.state,
		Products: pageOf(set, c.state.Page),
		HasNext:  hasNext(c.state.Page, len(set)),
		HasPrev:  c.state.Page > 1,
	}
}

// DisplayedPage returns the current page of the active set, empty when out of range
func (c *Controller) DisplayedPage() []domain.Product {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return pageOf(c.activeSet(), c.state.Page)
}

func (c *Controller) HasNext() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return hasNext(c.state.Page, len(c.activeSet()))
}

func (c *Controller) HasPrev() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.state.Page > 1
}

func pageOf(set []domain.Product, page int) []domain.Product {
	start := (page - 1) * domain.PageSize
	if start >= len(set) {
		return nil
	}
	end := min(start+domain.PageSize, len(set))
	return set[start:end]
}

func hasNext(page, size int) bool {
	return page*domain.PageSize < size
}

func (c *Controller) activeSet() []domain.Product {
	return Filter(c.source.Products(), c.state)
}

// Filter narrows products by exact category, then by case-insensitive
// substring of the search term within the category.
func Filter(products []domain.Product, s State) []domain.Product {
	result := products

	if s.Category != domain.CategoryAll {
		byCategory := make([]domain.Product, 0, len(result))
		for _, p := range result {
			if p.Category == s.Category {
				byCategory = append(byCategory, p)
			}
		}
		result = byCategory
	}

	if s.SearchApplied && s.SearchTerm != "" {
		fold := cases.Fold()
		term := fold.String(s.SearchTerm)

		bySearch := make([]domain.Product, 0, len(result))
		for _, p := range result {
			if strings.Contains(fold.String(p.Category), term) {
				bySearch = append(bySearch, p)
			}
		}
		result = bySearch
	}

	return result
}
