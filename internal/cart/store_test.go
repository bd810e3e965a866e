package cart

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/rnitealiii/EliteMart/internal/catalog"
	"github.com/rnitealiii/EliteMart/pkg/enums"
	"github.com/rnitealiii/EliteMart/pkg/logger"
	"github.com/rnitealiii/EliteMart/pkg/storage"
	"github.com/shopspring/decimal"
)

type memoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string]string{}}
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

func (m *memoryKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memoryKV) Close() error { return nil }

func (m *memoryKV) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingNotifier) Notify(ctx context.Context, message string, severity enums.Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *recordingNotifier) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}

func teaLookup(id int) (catalog.Product, bool) {
	switch id {
	case 1:
		return catalog.Product{ID: 1, Name: "Green Tea", Category: "drinks", Price: decimal.NewFromFloat(3.50)}, true
	case 2:
		return catalog.Product{ID: 2, Name: "Espresso Beans", Category: "drinks", Price: decimal.NewFromFloat(12.00)}, true
	default:
		return catalog.Product{}, false
	}
}

func newTestStore(t *testing.T, kv storage.KV) (*Store, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	store, err := NewStore(context.Background(), kv, teaLookup, n, logger.New(logger.Options{Output: io.Discard}), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return store, n
}

func TestStore_AddMergesSameProduct(t *testing.T) {
	ctx := context.Background()
	store, n := newTestStore(t, newMemoryKV())

	store.Add(ctx, 1)
	store.Add(ctx, 1)

	snapshot := store.Snapshot()
	if len(snapshot.Lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(snapshot.Lines))
	}
	if snapshot.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", snapshot.Lines[0].Quantity)
	}
	if snapshot.FormattedTotal() != "7.00" {
		t.Fatalf("expected total 7.00, got %s", snapshot.FormattedTotal())
	}
	if n.last() != "Green Tea added to cart" {
		t.Fatalf("unexpected toast: %q", n.last())
	}
}

func TestStore_AddUnknownProductIsIgnored(t *testing.T) {
	ctx := context.Background()
	store, n := newTestStore(t, newMemoryKV())

	store.Add(ctx, 999)

	if !store.Snapshot().IsEmpty() {
		t.Fatal("expected cart to stay empty")
	}
	if n.last() != "" {
		t.Fatalf("expected no toast, got %q", n.last())
	}
}

func TestStore_ItemCountSumsQuantities(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, newMemoryKV())

	store.Add(ctx, 1)
	store.Add(ctx, 1)
	store.Add(ctx, 2)

	if store.ItemCount() != 3 {
		t.Fatalf("expected item count 3, got %d", store.ItemCount())
	}
	if len(store.Snapshot().Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(store.Snapshot().Lines))
	}
}

func TestStore_ChangeQuantityClampsAtOne(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, newMemoryKV())

	store.Add(ctx, 1)
	store.ChangeQuantity(ctx, 0, -5)

	if got := store.Snapshot().Lines[0].Quantity; got != 1 {
		t.Fatalf("expected quantity clamped to 1, got %d", got)
	}

	store.ChangeQuantity(ctx, 0, 3)
	if got := store.Snapshot().Lines[0].Quantity; got != 4 {
		t.Fatalf("expected quantity 4, got %d", got)
	}
}

func TestStore_OutOfRangeIndicesAreNoOps(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, newMemoryKV())
	store.Add(ctx, 1)

	store.Remove(ctx, -1)
	store.Remove(ctx, 5)
	store.ChangeQuantity(ctx, 3, 1)

	snapshot := store.Snapshot()
	if len(snapshot.Lines) != 1 || snapshot.Lines[0].Quantity != 1 {
		t.Fatalf("expected cart untouched, got %+v", snapshot.Lines)
	}
}

func TestStore_RemoveDeletesLine(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, newMemoryKV())
	store.Add(ctx, 1)
	store.Add(ctx, 2)

	store.Remove(ctx, 0)

	snapshot := store.Snapshot()
	if len(snapshot.Lines) != 1 || snapshot.Lines[0].ProductID != 2 {
		t.Fatalf("expected only espresso beans left, got %+v", snapshot.Lines)
	}
}

func TestStore_PersistsAndRehydrates(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()

	store, _ := newTestStore(t, kv)
	store.Add(ctx, 1)
	store.Add(ctx, 1)
	store.Add(ctx, 2)

	reloaded, _ := newTestStore(t, kv)
	snapshot := reloaded.Snapshot()
	if len(snapshot.Lines) != 2 {
		t.Fatalf("expected 2 rehydrated lines, got %d", len(snapshot.Lines))
	}
	if snapshot.ItemCount != 3 {
		t.Fatalf("expected item count 3, got %d", snapshot.ItemCount)
	}
	if snapshot.FormattedTotal() != "19.00" {
		t.Fatalf("expected total 19.00, got %s", snapshot.FormattedTotal())
	}
}

func TestStore_RehydrateClampsQuantities(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	kv.Set(ctx, storage.KeyCart, `[{"id":1,"name":"Green Tea","price":"3.5","quantity":0}]`)

	store, _ := newTestStore(t, kv)

	if got := store.Snapshot().Lines[0].Quantity; got != 1 {
		t.Fatalf("expected quantity clamped to 1, got %d", got)
	}
}

func TestStore_MalformedPersistedCartStartsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	kv.Set(ctx, storage.KeyCart, "{{{not json")

	store, _ := newTestStore(t, kv)

	if !store.Snapshot().IsEmpty() {
		t.Fatal("expected empty cart for malformed persisted data")
	}
}

func TestStore_ClearDeletesPersistedEntry(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	store, _ := newTestStore(t, kv)
	store.Add(ctx, 1)

	if !kv.has(storage.KeyCart) {
		t.Fatal("expected cart persisted after add")
	}

	store.Clear(ctx)

	if !store.Snapshot().IsEmpty() {
		t.Fatal("expected empty cart after clear")
	}
	if kv.has(storage.KeyCart) {
		t.Fatal("expected persisted cart entry deleted, not overwritten")
	}
}

func TestStore_ObserversSeeEveryMutation(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, newMemoryKV())

	var mu sync.Mutex
	var counts []int
	store.Subscribe(func(snapshot Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		counts = append(counts, snapshot.ItemCount)
	})

	store.Add(ctx, 1)
	store.Add(ctx, 1)
	store.Clear(ctx)

	mu.Lock()
	defer mu.Unlock()
	if len(counts) != 3 || counts[0] != 1 || counts[1] != 2 || counts[2] != 0 {
		t.Fatalf("unexpected observed item counts: %v", counts)
	}
}

func TestLine_Subtotal(t *testing.T) {
	line := Line{Price: decimal.NewFromFloat(3.50), Quantity: 3}
	if got := line.Subtotal().StringFixed(2); got != "10.50" {
		t.Fatalf("expected 10.50, got %s", got)
	}
}
