package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveen1798kumar/acb-dashboard/internal/api"
	"github.com/naveen1798kumar/acb-dashboard/internal/models"
)

// fakeOps is an in-memory product backend with call counters.
type fakeOps struct {
	mu       sync.Mutex
	products []models.Product

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int
	toggleCalls atomic.Int32

	failCreate error
	failUpdate error
	failDelete error

	// When set, Toggle blocks until the channel closes.
	toggleGate chan struct{}
	// Called inside Update before it returns, while no coordinator lock is held.
	beforeUpdateReturn func()
}

func (f *fakeOps) ops() Ops[models.Product, models.ProductDraft] {
	return Ops[models.Product, models.ProductDraft]{
		List:   f.list,
		Create: f.create,
		Update: f.update,
		Delete: f.delete,
		Toggle: f.toggle,
	}
}

func (f *fakeOps) list(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := make([]models.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeOps) create(ctx context.Context, draft models.ProductDraft) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.failCreate != nil {
		return models.Product{}, f.failCreate
	}
	p := models.Product{ID: "n1", Name: draft.Name, Category: draft.Category}
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeOps) update(ctx context.Context, id string, draft models.ProductDraft) (models.Product, error) {
	f.mu.Lock()
	f.updateCalls++
	fail := f.failUpdate
	hook := f.beforeUpdateReturn
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if fail != nil {
		return models.Product{}, fail
	}
	return models.Product{ID: id, Name: draft.Name, Category: draft.Category}, nil
}

func (f *fakeOps) delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.failDelete != nil {
		return f.failDelete
	}
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeOps) toggle(ctx context.Context, id, field string, value bool) (models.Product, error) {
	f.toggleCalls.Add(1)
	if f.toggleGate != nil {
		<-f.toggleGate
	}
	return models.Product{ID: id, Name: "Toggled", IsTopSelling: value}, nil
}

func confirmAll(string) bool { return true }

func setupCoordinator(t *testing.T, products []models.Product) (*Coordinator[models.Product, models.ProductDraft], *fakeOps) {
	t.Helper()
	ops := &fakeOps{products: products}
	view := NewView(ProductFields(), 10)
	view.SetItems(products)
	return NewCoordinator(view, ops.ops(), confirmAll), ops
}

func TestSubmitCreate_RefetchesCollection(t *testing.T) {
	coord, ops := setupCoordinator(t, makeProducts(3, "cakes"))

	created, err := coord.SubmitCreate(context.Background(), models.ProductDraft{Name: "New Thing", Category: "cakes"})
	require.NoError(t, err)
	assert.Equal(t, "n1", created.ID)

	// The collection is refetched after the write, not patched locally.
	assert.Equal(t, 1, ops.createCalls)
	assert.Equal(t, 1, ops.listCalls)
	assert.Contains(t, ids(coord.View().Items()), "n1")
}

func TestSubmitCreate_FailureLeavesViewUntouched(t *testing.T) {
	products := makeProducts(3, "cakes")
	coord, ops := setupCoordinator(t, products)
	ops.failCreate = errors.New("boom")

	_, err := coord.SubmitCreate(context.Background(), models.ProductDraft{Name: "New Thing"})
	require.Error(t, err)
	assert.Equal(t, 0, ops.listCalls)
	assert.Equal(t, ids(products), ids(coord.View().Items()))
}

func TestSubmitUpdate_PatchesCollection(t *testing.T) {
	coord, ops := setupCoordinator(t, makeProducts(3, "cakes"))

	updated, err := coord.SubmitUpdate(context.Background(), "p01", models.ProductDraft{Name: "Renamed", Category: "cakes"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	// Patch, not refetch.
	assert.Equal(t, 0, ops.listCalls)
	assert.Equal(t, "Renamed", coord.View().Items()[1].Name)
}

func TestSubmitUpdate_ReportsVanishedRecord(t *testing.T) {
	coord, ops := setupCoordinator(t, makeProducts(3, "cakes"))
	ops.failUpdate = &api.Error{Kind: api.KindNotFound, Status: 404, Message: "gone"}

	_, err := coord.SubmitUpdate(context.Background(), "p01", models.ProductDraft{Name: "Renamed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no longer exists")
	assert.True(t, api.IsNotFound(err))

	// The stale record is never silently re-inserted or altered.
	assert.Equal(t, "Product 01", coord.View().Items()[1].Name)
}

func TestSubmitDelete_DeclinedMakesNoNetworkCall(t *testing.T) {
	ops := &fakeOps{products: makeProducts(3, "cakes")}
	view := NewView(ProductFields(), 10)
	view.SetItems(ops.products)
	coord := NewCoordinator(view, ops.ops(), func(string) bool { return false })

	err := coord.SubmitDelete(context.Background(), "p01")
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, 0, ops.deleteCalls)
	assert.Len(t, view.Items(), 3)
}

func TestSubmitDelete_NilConfirmDeclines(t *testing.T) {
	ops := &fakeOps{products: makeProducts(1, "cakes")}
	view := NewView(ProductFields(), 10)
	view.SetItems(ops.products)
	coord := NewCoordinator(view, ops.ops(), nil)

	err := coord.SubmitDelete(context.Background(), "p00")
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, 0, ops.deleteCalls)
}

func TestSubmitDelete_SplicesAndReclamps(t *testing.T) {
	coord, ops := setupCoordinator(t, makeProducts(21, "cakes"))
	coord.View().SetPage(3)
	require.Len(t, coord.View().Page().Items, 1)

	err := coord.SubmitDelete(context.Background(), "p20")
	require.NoError(t, err)

	// Local splice plus page re-clamp; no refetch.
	assert.Equal(t, 1, ops.deleteCalls)
	assert.Equal(t, 0, ops.listCalls)
	assert.Len(t, coord.View().Items(), 20)
	assert.Equal(t, 2, coord.View().CurrentPage())
}

func TestToggleField_PatchesByID(t *testing.T) {
	coord, _ := setupCoordinator(t, makeProducts(3, "cakes"))

	item, err := coord.ToggleField(context.Background(), "p02", "isTopSelling", false)
	require.NoError(t, err)
	assert.True(t, item.IsTopSelling)
	assert.True(t, coord.View().Items()[2].IsTopSelling)
}

func TestToggleField_CoalescesRapidCalls(t *testing.T) {
	coord, ops := setupCoordinator(t, makeProducts(3, "cakes"))
	ops.toggleGate = make(chan struct{})

	var wg sync.WaitGroup
	results := make([]models.Product, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = coord.ToggleField(context.Background(), "p00", "isTopSelling", false)
		}(i)
	}

	// Let both callers reach the in-flight request before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(ops.toggleGate)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int32(1), ops.toggleCalls.Load())
	assert.Equal(t, results[0], results[1])
}

func TestToggleField_DistinctFieldsNotCoalesced(t *testing.T) {
	coord, ops := setupCoordinator(t, makeProducts(3, "cakes"))

	_, err := coord.ToggleField(context.Background(), "p00", "isTopSelling", false)
	require.NoError(t, err)
	_, err = coord.ToggleField(context.Background(), "p00", "isActive", false)
	require.NoError(t, err)

	assert.Equal(t, int32(2), ops.toggleCalls.Load())
}

func TestSubmitUpdate_StaleResponseDiscarded(t *testing.T) {
	products := makeProducts(3, "cakes")
	coord, ops := setupCoordinator(t, products)
	ops.beforeUpdateReturn = coord.Invalidate

	_, err := coord.SubmitUpdate(context.Background(), "p01", models.ProductDraft{Name: "Renamed"})
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Equal(t, "Product 01", coord.View().Items()[1].Name)
}

func TestRefresh_StaleResponseDiscarded(t *testing.T) {
	products := makeProducts(3, "cakes")
	view := NewView(ProductFields(), 10)
	view.SetItems(products)

	// The backend invalidates the session while its own request is in flight.
	backend := &fakeOps{products: makeProducts(5, "breads")}
	var coord *Coordinator[models.Product, models.ProductDraft]
	o := backend.ops()
	o.List = func(ctx context.Context) ([]models.Product, error) {
		coord.Invalidate()
		return backend.list(ctx)
	}
	coord = NewCoordinator(view, o, confirmAll)

	err := coord.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Equal(t, ids(products), ids(view.Items()))
}
