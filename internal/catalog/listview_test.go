package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveen1798kumar/acb-dashboard/internal/models"
)

// makeProducts builds n products cycling through the given categories.
func makeProducts(n int, categories ...string) []models.Product {
	products := make([]models.Product, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, models.Product{
			ID:       fmt.Sprintf("p%02d", i),
			Name:     fmt.Sprintf("Product %02d", i),
			Category: categories[i%len(categories)],
		})
	}
	return products
}

func TestApplyFilters_SearchCaseInsensitive(t *testing.T) {
	products := []models.Product{
		{ID: "1", Name: "Sourdough Loaf"},
		{ID: "2", Name: "Chocolate Cake"},
		{ID: "3", Name: "Rye SOURDOUGH"},
	}

	got := ApplyFilters(products, ProductFields(), FilterState{Search: "sourdough"})
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestApplyFilters_SearchIncludesDescription(t *testing.T) {
	products := []models.Product{
		{ID: "1", Name: "Baguette", Description: "classic french bread"},
		{ID: "2", Name: "Croissant"},
	}

	got := ApplyFilters(products, ProductFields(), FilterState{Search: "french"})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestApplyFilters_FieldFiltersAreANDed(t *testing.T) {
	products := []models.Product{
		{ID: "1", Name: "A", Category: "cakes", Subcategory: "birthday"},
		{ID: "2", Name: "B", Category: "cakes", Subcategory: "wedding"},
		{ID: "3", Name: "C", Category: "breads", Subcategory: "birthday"},
	}

	got := ApplyFilters(products, ProductFields(), FilterState{
		Fields: map[string]string{"category": "cakes", "subcategory": "birthday"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestApplyFilters_EmptyFilterValueMeansAny(t *testing.T) {
	products := makeProducts(4, "cakes", "breads")

	got := ApplyFilters(products, ProductFields(), FilterState{
		Fields: map[string]string{"category": ""},
	})
	assert.Len(t, got, 4)
}

func TestApplyFilters_Idempotent(t *testing.T) {
	products := makeProducts(10, "cakes", "breads", "snacks")
	filter := FilterState{Search: "product", Fields: map[string]string{"category": "breads"}}

	once := ApplyFilters(products, ProductFields(), filter)
	twice := ApplyFilters(once, ProductFields(), filter)
	assert.Equal(t, once, twice)
}

func TestApplySort_StableAndDirectional(t *testing.T) {
	products := []models.Product{
		{ID: "1", Name: "banana bread", Price: 3},
		{ID: "2", Name: "Apple pie", Price: 5},
		{ID: "3", Name: "apple tart", Price: 3},
	}

	byName := ApplySort(products, ProductFields(), SortState{Field: "name"})
	assert.Equal(t, []string{"2", "3", "1"}, ids(byName))

	// Equal prices keep their original relative order.
	byPrice := ApplySort(products, ProductFields(), SortState{Field: "price"})
	assert.Equal(t, []string{"1", "3", "2"}, ids(byPrice))

	desc := ApplySort(products, ProductFields(), SortState{Field: "price", Descending: true})
	assert.Equal(t, "2", desc[0].ID)
}

func TestApplySort_ZeroStateKeepsInsertionOrder(t *testing.T) {
	products := makeProducts(5, "cakes")
	got := ApplySort(products, ProductFields(), SortState{})
	assert.Equal(t, ids(products), ids(got))
}

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestPaginate_PartitionsWithoutDuplicates(t *testing.T) {
	products := makeProducts(23, "cakes")
	size := 10

	var union []string
	total := TotalPages(len(products), size)
	require.Equal(t, 3, total)

	for page := 1; page <= total; page++ {
		p := Paginate(products, PageState{Size: size, Current: page})
		assert.LessOrEqual(t, len(p.Items), size)
		union = append(union, ids(p.Items)...)
	}

	// Union of all pages equals the input with order preserved, no duplicates.
	assert.Equal(t, ids(products), union)
}

func TestPaginate_EmptyCollection(t *testing.T) {
	p := Paginate([]models.Product{}, PageState{Size: 10, Current: 1})
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 1, p.Current)
	assert.Empty(t, p.Items)
}

func TestPaginate_ClampsOutOfRangePage(t *testing.T) {
	products := makeProducts(15, "cakes")

	p := Paginate(products, PageState{Size: 10, Current: 9})
	assert.Equal(t, 2, p.Current)
	assert.Len(t, p.Items, 5)

	p = Paginate(products, PageState{Size: 10, Current: -2})
	assert.Equal(t, 1, p.Current)
}

func TestPaginate_PanicsOnBadPageSize(t *testing.T) {
	assert.Panics(t, func() {
		Paginate([]models.Product{}, PageState{Size: 0, Current: 1})
	})
}

func TestNewView_PanicsOnBadPageSize(t *testing.T) {
	assert.Panics(t, func() {
		NewView(ProductFields(), 0)
	})
	assert.Panics(t, func() {
		NewView(ProductFields(), -1)
	})
}

func TestView_SearchResetsPage(t *testing.T) {
	view := NewView(ProductFields(), 10)
	view.SetItems(makeProducts(25, "cakes"))
	view.SetPage(3)
	require.Equal(t, 3, view.CurrentPage())

	view.SetSearch("product")
	assert.Equal(t, 1, view.CurrentPage())
}

func TestView_FieldFilterResetsPage(t *testing.T) {
	view := NewView(ProductFields(), 10)
	view.SetItems(makeProducts(25, "cakes", "breads"))
	view.SetPage(2)

	view.SetField("category", "breads")
	assert.Equal(t, 1, view.CurrentPage())
}

func TestView_CategoryFilterScenario(t *testing.T) {
	// 12 products: 7 in category A, 5 in category B.
	var products []models.Product
	for i := 0; i < 7; i++ {
		products = append(products, models.Product{ID: fmt.Sprintf("a%d", i), Name: "A", Category: "A"})
	}
	for i := 0; i < 5; i++ {
		products = append(products, models.Product{ID: fmt.Sprintf("b%d", i), Name: "B", Category: "B"})
	}

	view := NewView(ProductFields(), 10)
	view.SetItems(products)
	view.SetField("category", "B")

	assert.Len(t, view.Filtered(), 5)
	page := view.Page()
	assert.Equal(t, 1, page.TotalPages)
	assert.Len(t, page.Items, 5)
}

func TestView_RemoveReclampsPage(t *testing.T) {
	view := NewView(ProductFields(), 10)
	view.SetItems(makeProducts(21, "cakes"))
	view.SetPage(3)
	require.Len(t, view.Page().Items, 1)

	// Removing the sole item on page 3 leaves 20 items and page 2.
	removed := view.Remove("p20")
	require.True(t, removed)
	assert.Equal(t, 2, view.CurrentPage())
	assert.Len(t, view.Items(), 20)
}

func TestView_RemoveUnknownKey(t *testing.T) {
	view := NewView(ProductFields(), 10)
	view.SetItems(makeProducts(3, "cakes"))

	assert.False(t, view.Remove("nope"))
	assert.Len(t, view.Items(), 3)
}

func TestView_PatchReplacesByKeyNeverInserts(t *testing.T) {
	view := NewView(ProductFields(), 10)
	view.SetItems(makeProducts(3, "cakes"))

	ok := view.Patch(models.Product{ID: "p01", Name: "Renamed", Category: "cakes"})
	require.True(t, ok)
	assert.Equal(t, "Renamed", view.Items()[1].Name)

	ok = view.Patch(models.Product{ID: "ghost", Name: "Ghost"})
	assert.False(t, ok)
	assert.Len(t, view.Items(), 3)
}

func TestView_ResetRestoresDefaults(t *testing.T) {
	view := NewView(ProductFields(), 10)
	view.SetItems(makeProducts(25, "cakes", "breads"))
	view.SetSearch("product")
	view.SetField("category", "cakes")
	view.SetSort(SortState{Field: "name"})
	view.SetPage(2)

	view.Reset()
	assert.Equal(t, 1, view.CurrentPage())
	assert.Empty(t, view.Filter().Search)
	assert.Empty(t, view.Filter().Fields)
	assert.Len(t, view.Filtered(), 25)
}
