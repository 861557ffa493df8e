package browse

import (
	"context"
	"fmt"
	"testing"

	"fakestore/shop/internal/domain"
	"fakestore/shop/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource []domain.Product

func (s staticSource) Products() []domain.Product { return s }

func catalogOf(n int, category string) staticSource {
	products := make(staticSource, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, domain.Product{
			ID:       int64(i),
			Title:    fmt.Sprintf("product %d", i),
			Category: category,
		})
	}
	return products
}

// lateSource models a catalog fetch that resolves after the first read
type lateSource struct {
	products []domain.Product
	reads    int
}

func (s *lateSource) Products() []domain.Product {
	s.reads++
	if s.reads == 1 {
		return nil
	}
	return s.products
}

func newController(t *testing.T, source ProductSource) (*Controller, state.Store) {
	t.Helper()
	store := state.NewMemoryStore()
	return NewController(context.Background(), source, store), store
}

func TestInitialState(t *testing.T) {
	c, _ := newController(t, staticSource{})

	assert.Equal(t, State{Page: 1, Category: domain.CategoryAll}, c.State())
	assert.Empty(t, c.DisplayedPage())
	assert.False(t, c.HasNext())
	assert.False(t, c.HasPrev())
}

func TestPaginationBounds(t *testing.T) {
	c, _ := newController(t, catalogOf(23, "electronics"))

	assert.True(t, c.HasNext())
	assert.False(t, c.HasPrev())
	assert.Len(t, c.DisplayedPage(), 10)
	assert.False(t, c.PrevPage())

	require.True(t, c.NextPage())
	assert.Equal(t, 2, c.State().Page)
	assert.True(t, c.HasNext())
	assert.True(t, c.HasPrev())
	assert.Equal(t, int64(11), c.DisplayedPage()[0].ID)

	require.True(t, c.NextPage())
	assert.Equal(t, 3, c.State().Page)
	assert.False(t, c.HasNext())
	assert.True(t, c.HasPrev())
	assert.Len(t, c.DisplayedPage(), 3)

	assert.False(t, c.NextPage())
	assert.Equal(t, 3, c.State().Page)

	require.True(t, c.PrevPage())
	assert.Equal(t, 2, c.State().Page)
}

func TestViewReadsCatalogOnce(t *testing.T) {
	source := &lateSource{products: catalogOf(23, "electronics")}
	c, _ := newController(t, source)

	view := c.View()
	assert.Equal(t, 1, source.reads)
	assert.Empty(t, view.Products)
	assert.False(t, view.HasNext)
	assert.False(t, view.HasPrev)

	view = c.View()
	assert.Equal(t, 2, source.reads)
	assert.Len(t, view.Products, 10)
	assert.True(t, view.HasNext)
	assert.Equal(t, State{Page: 1, Category: domain.CategoryAll}, view.State)
}

func TestViewMatchesAccessors(t *testing.T) {
	c, _ := newController(t, catalogOf(23, "electronics"))
	require.True(t, c.NextPage())
	require.True(t, c.NextPage())

	view := c.View()
	assert.Equal(t, c.State(), view.State)
	assert.Equal(t, c.DisplayedPage(), view.Products)
	assert.Equal(t, c.HasNext(), view.HasNext)
	assert.Equal(t, c.HasPrev(), view.HasPrev)
	assert.Len(t, view.Products, 3)
}

func TestNextDisabledOnExactPageBoundary(t *testing.T) {
	c, _ := newController(t, catalogOf(20, "a"))

	require.True(t, c.NextPage())
	assert.False(t, c.HasNext())
	assert.False(t, c.NextPage())
}

func TestEmptyCatalogYieldsEmptyResults(t *testing.T) {
	c, _ := newController(t, staticSource(nil))

	c.SelectCategory("jewelery")
	c.EditSearch("gold")
	c.ApplySearch()

	assert.Empty(t, c.ActiveSet())
	assert.Empty(t, c.DisplayedPage())
	assert.False(t, c.NextPage())
}

func mixedCatalog() staticSource {
	return staticSource{
		{ID: 1, Category: "electronics"},
		{ID: 2, Category: "jewelery"},
		{ID: 3, Category: "men's clothing"},
		{ID: 4, Category: "women's clothing"},
		{ID: 5, Category: "Electronics"},
		{ID: 6, Category: "jewelery"},
	}
}

func activeIDs(c *Controller) []int64 {
	out := make([]int64, 0)
	for _, p := range c.ActiveSet() {
		out = append(out, p.ID)
	}
	return out
}

func TestSelectCategoryFiltersExactly(t *testing.T) {
	c, _ := newController(t, mixedCatalog())

	c.SelectCategory("electronics")
	assert.Equal(t, []int64{1}, activeIDs(c))

	c.SelectCategory(domain.CategoryAll)
	assert.Len(t, c.ActiveSet(), 6)
}

func TestSearchTermAppliesOnlyAfterApply(t *testing.T) {
	c, _ := newController(t, mixedCatalog())

	c.EditSearch("CLOTHING")
	assert.Len(t, c.ActiveSet(), 6)

	c.ApplySearch()
	assert.True(t, c.State().SearchApplied)
	assert.Equal(t, []int64{3, 4}, activeIDs(c))

	c.EditSearch("electr")
	assert.Equal(t, []int64{1, 5}, activeIDs(c))

	c.EditSearch("")
	assert.Len(t, c.ActiveSet(), 6)
}

func TestApplySearchResetsPage(t *testing.T) {
	c, _ := newController(t, catalogOf(30, "jewelery"))

	require.True(t, c.NextPage())
	require.True(t, c.NextPage())

	c.EditSearch("jewel")
	c.ApplySearch()
	assert.Equal(t, 1, c.State().Page)
}

func TestCategoryAndSearchComposeSequentially(t *testing.T) {
	c, _ := newController(t, mixedCatalog())

	c.SelectCategory("jewelery")
	c.EditSearch("electronics")
	c.ApplySearch()

	assert.Empty(t, c.ActiveSet())

	c.EditSearch("JEW")
	assert.Equal(t, []int64{2, 6}, activeIDs(c))
}

func TestCategoryChangeKeepsPage(t *testing.T) {
	source := append(catalogOf(25, "electronics"), domain.Product{ID: 100, Category: "jewelery"})
	c, _ := newController(t, source)

	require.True(t, c.NextPage())
	require.True(t, c.NextPage())

	c.SelectCategory("jewelery")
	assert.Equal(t, 3, c.State().Page)
	assert.Empty(t, c.DisplayedPage())
	assert.False(t, c.HasNext())
	assert.True(t, c.HasPrev())
}

func TestHomeResetsEverything(t *testing.T) {
	c, store := newController(t, catalogOf(30, "electronics"))
	ctx := context.Background()

	require.True(t, c.NextPage())
	c.SelectCategory("electronics")
	c.EditSearch("elec")
	c.ApplySearch()
	require.True(t, c.NextPage())
	c.ShowCart(ctx)

	c.Home(ctx)

	assert.Equal(t, State{Page: 1, Category: domain.CategoryAll}, c.State())
	v, ok, err := store.Get(ctx, state.KeyCartView)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", v)
}

func TestCartViewPersistence(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemoryStore()

	c := NewController(ctx, staticSource{}, store)
	assert.False(t, c.State().CartView)

	c.ShowCart(ctx)
	v, _, _ := store.Get(ctx, state.KeyCartView)
	assert.Equal(t, "true", v)

	restored := NewController(ctx, staticSource{}, store)
	assert.True(t, restored.State().CartView)

	restored.ShowCatalog(ctx)
	assert.False(t, NewController(ctx, staticSource{}, store).State().CartView)
}

func TestCartViewCorruptValueFallsBackToCatalog(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemoryStore()
	require.NoError(t, store.Set(ctx, state.KeyCartView, "yes please"))

	c := NewController(ctx, staticSource{}, store)
	assert.False(t, c.State().CartView)
}
