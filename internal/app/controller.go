package app

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rnitealiii/EliteMart/internal/cart"
	"github.com/rnitealiii/EliteMart/internal/catalog"
	"github.com/rnitealiii/EliteMart/internal/checkout"
	"github.com/rnitealiii/EliteMart/internal/notify"
	"github.com/rnitealiii/EliteMart/pkg/enums"
	"github.com/rnitealiii/EliteMart/pkg/logger"
	"go.uber.org/multierr"
)

type catalogLoader interface {
	Load(ctx context.Context) ([]catalog.Product, error)
}

// Renderer is the rendering boundary. The core hands it data to display and
// never references presentation internals; user events flow back in through
// the controller's methods.
type Renderer interface {
	RenderProducts(products []catalog.Product)
	RenderCartLines(snapshot cart.Snapshot)
}

// Controller owns the application state the original kept in globals: the
// loaded catalog, the derived view and the current filter inputs. All
// collaborators are injected.
type Controller struct {
	mu       sync.Mutex
	catalog  []catalog.Product
	loaded   bool
	query    string
	category string
	sortKey  enums.SortKey

	loader   catalogLoader
	cart     *cart.Store
	flow     *checkout.Flow
	hub      *notify.Hub
	renderer Renderer
	closers  []io.Closer
	logg     *logger.Logger
}

// Params wires the controller's collaborators. Closers are shut down, in
// order, by Close.
type Params struct {
	Loader   catalogLoader
	Cart     *cart.Store
	Flow     *checkout.Flow
	Hub      *notify.Hub
	Renderer Renderer
	Closers  []io.Closer
	Logger   *logger.Logger
}

// NewController validates the wiring and subscribes the renderer to cart
// changes.
func NewController(params Params) (*Controller, error) {
	if params.Loader == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	if params.Cart == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Flow == nil {
		return nil, fmt.Errorf("checkout flow required")
	}
	if params.Hub == nil {
		return nil, fmt.Errorf("notification hub required")
	}
	if params.Renderer == nil {
		return nil, fmt.Errorf("renderer required")
	}

	controller := &Controller{
		category: catalog.CategoryAll,
		sortKey:  enums.SortNone,
		loader:   params.Loader,
		cart:     params.Cart,
		flow:     params.Flow,
		hub:      params.Hub,
		renderer: params.Renderer,
		closers:  params.Closers,
		logg:     params.Logger,
	}
	controller.cart.Subscribe(controller.renderer.RenderCartLines)
	return controller, nil
}

// Init loads the catalog once, raising the loading indicator for the
// duration. A failed load surfaces one error toast and leaves the catalog
// empty; the application stays interactive either way.
func (c *Controller) Init(ctx context.Context) error {
	c.hub.SetLoading(true)
	defer c.hub.SetLoading(false)

	products, err := c.loader.Load(ctx)
	if err != nil {
		c.hub.NotifyError(ctx, err)
		return err
	}

	c.mu.Lock()
	c.catalog = products
	c.loaded = true
	c.mu.Unlock()

	c.refresh()
	c.renderer.RenderCartLines(c.cart.Snapshot())
	return nil
}

// SetQuery updates the free-text filter and re-derives the view.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	c.query = query
	c.mu.Unlock()
	c.refresh()
}

// SetCategory updates the category filter and re-derives the view.
func (c *Controller) SetCategory(category string) {
	if category == "" {
		category = catalog.CategoryAll
	}
	c.mu.Lock()
	c.category = category
	c.mu.Unlock()
	c.refresh()
}

// SetSort updates the sort key and re-derives the view. Unknown keys are
// ignored.
func (c *Controller) SetSort(key enums.SortKey) {
	if !key.IsValid() {
		return
	}
	c.mu.Lock()
	c.sortKey = key
	c.mu.Unlock()
	c.refresh()
}

// Displayed returns the current derived view.
func (c *Controller) Displayed() []catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return catalog.Derive(c.catalog, c.query, c.category, c.sortKey)
}

// Loaded distinguishes an empty derived view from a catalog that never
// arrived.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// CatalogSize returns the size of the full, unfiltered catalog.
func (c *Controller) CatalogSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.catalog)
}

// Categories lists "all" plus the catalog's distinct categories.
func (c *Controller) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return catalog.Categories(c.catalog)
}

// Lookup resolves a product id against the loaded catalog, for the cart
// store.
func (c *Controller) Lookup(id int) (catalog.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, product := range c.catalog {
		if product.ID == id {
			return product, true
		}
	}
	return catalog.Product{}, false
}

// Cart exposes the cart store to the event source.
func (c *Controller) Cart() *cart.Store {
	return c.cart
}

// Flow exposes the checkout flow to the event source.
func (c *Controller) Flow() *checkout.Flow {
	return c.flow
}

// Close shuts the flow, the hub and every supplied closer, aggregating
// failures.
func (c *Controller) Close(ctx context.Context) error {
	c.flow.Close(ctx)
	c.hub.Close()

	var err error
	for _, closer := range c.closers {
		err = multierr.Append(err, closer.Close())
	}
	return err
}

func (c *Controller) refresh() {
	c.renderer.RenderProducts(c.Displayed())
}
