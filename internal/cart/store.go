package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rnitealiii/EliteMart/internal/catalog"
	"github.com/rnitealiii/EliteMart/pkg/enums"
	"github.com/rnitealiii/EliteMart/pkg/logger"
	"github.com/rnitealiii/EliteMart/pkg/metrics"
	"github.com/rnitealiii/EliteMart/pkg/storage"
)

// ProductLookup resolves a product id against the loaded catalog.
type ProductLookup func(id int) (catalog.Product, bool)

type notifier interface {
	Notify(ctx context.Context, message string, severity enums.Severity)
}

// Observer receives the cart snapshot after every mutation.
type Observer func(Snapshot)

// Store owns the authoritative in-memory cart. Every mutation is mirrored to
// durable storage, aggregates are recomputed and observers are notified.
// Mutations funnel through a mutex because checkout timers fire on their own
// goroutines.
type Store struct {
	mu        sync.Mutex
	lines     []Line
	kv        storage.KV
	lookup    ProductLookup
	notifier  notifier
	observers []Observer

	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

// NewStore builds a cart store and rehydrates it from durable storage. An
// absent or malformed persisted cart yields an empty one.
func NewStore(ctx context.Context, kv storage.KV, lookup ProductLookup, n notifier, logg *logger.Logger, m *metrics.StorefrontMetrics) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("storage required")
	}
	if lookup == nil {
		return nil, fmt.Errorf("product lookup required")
	}
	if n == nil {
		return nil, fmt.Errorf("notifier required")
	}

	store := &Store{
		kv:       kv,
		lookup:   lookup,
		notifier: n,
		logg:     logg,
		metrics:  m,
	}
	store.rehydrate(ctx)
	return store, nil
}

// Subscribe registers an observer called with the snapshot after every
// mutation.
func (s *Store) Subscribe(observer Observer) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Add puts one unit of the product in the cart, merging into an existing line
// for the same product id. An unknown id is a silent no-op: it indicates a
// programming or data error, not a user error.
func (s *Store) Add(ctx context.Context, productID int) {
	product, ok := s.lookup(productID)
	if !ok {
		s.logg.Warn(s.logg.WithField(ctx, "product_id", productID), "add ignored: product not in catalog")
		return
	}

	s.mu.Lock()
	merged := false
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, lineFromProduct(product))
	}
	snapshot := s.afterMutation(ctx, "add")
	s.mu.Unlock()

	s.metrics.IncCartMutation("add")
	s.notifier.Notify(ctx, fmt.Sprintf("%s added to cart", product.Name), enums.SeveritySuccess)
	s.publish(snapshot)
}

// Remove deletes the line at the given display position. Out-of-range indices
// are a no-op guard.
// TODO: migrate callers to a stable line identifier so indices cannot go
// stale if display order ever diverges from storage order.
func (s *Store) Remove(ctx context.Context, index int) {
	s.mu.Lock()
	if index < 0 || index >= len(s.lines) {
		s.mu.Unlock()
		return
	}
	s.lines = append(s.lines[:index], s.lines[index+1:]...)
	snapshot := s.afterMutation(ctx, "remove")
	s.mu.Unlock()

	s.metrics.IncCartMutation("remove")
	s.publish(snapshot)
}

// ChangeQuantity adjusts the line's quantity by delta, clamped at 1.
func (s *Store) ChangeQuantity(ctx context.Context, index, delta int) {
	s.mu.Lock()
	if index < 0 || index >= len(s.lines) {
		s.mu.Unlock()
		return
	}
	next := s.lines[index].Quantity + delta
	if next < 1 {
		next = 1
	}
	s.lines[index].Quantity = next
	snapshot := s.afterMutation(ctx, "change_quantity")
	s.mu.Unlock()

	s.metrics.IncCartMutation("change_quantity")
	s.publish(snapshot)
}

// Clear empties the cart and removes the persisted entry entirely, so a
// cleared cart reads back exactly like a never-used one.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = nil
	if err := s.kv.Delete(ctx, storage.KeyCart); err != nil {
		s.logg.Error(ctx, "clearing persisted cart failed", err)
	}
	snapshot := snapshotOf(s.lines)
	s.mu.Unlock()

	s.metrics.IncCartMutation("clear")
	s.publish(snapshot)
}

// Snapshot returns the current cart state with recomputed aggregates.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.lines)
}

// ItemCount is the sum of line quantities, not the number of lines.
func (s *Store) ItemCount() int {
	return s.Snapshot().ItemCount
}

// FormattedTotal renders the cart total with two decimal places.
func (s *Store) FormattedTotal() string {
	return s.Snapshot().FormattedTotal()
}

// afterMutation persists the cart and returns the fresh snapshot. The caller
// must hold the mutex. Persistence is best-effort: a failed write is logged
// and surfaced but never rolls back the in-memory state.
func (s *Store) afterMutation(ctx context.Context, op string) Snapshot {
	raw, err := json.Marshal(s.lines)
	if err != nil {
		s.logg.Error(s.logg.WithField(ctx, "op", op), "encoding cart failed", err)
		return snapshotOf(s.lines)
	}
	if err := s.kv.Set(ctx, storage.KeyCart, string(raw)); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "op", op), "persisting cart failed", err)
	}
	return snapshotOf(s.lines)
}

func (s *Store) publish(snapshot Snapshot) {
	s.mu.Lock()
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	for _, observer := range observers {
		observer(snapshot)
	}
}

func (s *Store) rehydrate(ctx context.Context) {
	raw, err := s.kv.Get(ctx, storage.KeyCart)
	if err != nil {
		if !storage.IsNotFound(err) {
			s.logg.Error(ctx, "reading persisted cart failed", err)
		}
		return
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.logg.Warn(ctx, "persisted cart is malformed, starting empty")
		return
	}
	for i := range lines {
		if lines[i].Quantity < 1 {
			lines[i].Quantity = 1
		}
	}
	s.lines = lines
}
