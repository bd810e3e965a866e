package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/rnitealiii/EliteMart/internal/cart"
	"github.com/rnitealiii/EliteMart/internal/catalog"
	"github.com/rnitealiii/EliteMart/internal/notify"
)

// terminalRenderer implements the rendering boundary and the notification
// sink against a plain text terminal.
type terminalRenderer struct {
	mu  sync.Mutex
	out io.Writer
}

func newTerminalRenderer(out io.Writer) *terminalRenderer {
	return &terminalRenderer{out: out}
}

func (t *terminalRenderer) RenderProducts(products []catalog.Product) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(products) == 0 {
		fmt.Fprintln(t.out, "No products found. Try a different search.")
		return
	}
	fmt.Fprintln(t.out, "Products:")
	for _, product := range products {
		fmt.Fprintf(t.out, "  [%d] %s (%s) $%s\n", product.ID, product.Name, product.Category, product.Price.StringFixed(2))
	}
}

func (t *terminalRenderer) RenderCartLines(snapshot cart.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if snapshot.IsEmpty() {
		fmt.Fprintln(t.out, "Your cart is empty")
		return
	}
	fmt.Fprintln(t.out, "Cart:")
	for i, line := range snapshot.Lines {
		fmt.Fprintf(t.out, "  %d. %s x%d $%s\n", i+1, line.Name, line.Quantity, line.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(t.out, "  items: %d  total: $%s\n", snapshot.ItemCount, snapshot.FormattedTotal())
}

func (t *terminalRenderer) ShowToast(toast notify.Toast) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "[%s] %s\n", toast.Severity, toast.Message)
}

func (t *terminalRenderer) DismissToast(id string) {
	// Printed lines cannot be retracted; dismissal is meaningful only for
	// sinks with a persistent display surface.
}

func (t *terminalRenderer) SetLoading(active bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if active {
		fmt.Fprintln(t.out, "Loading...")
	}
}
