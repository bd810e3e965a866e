package cart

import (
	"github.com/rnitealiii/EliteMart/internal/catalog"
	"github.com/shopspring/decimal"
)

// Line is one distinct product entry in the cart. The product fields are a
// snapshot taken at add-time, so later catalog changes never reprice an
// existing line. Quantity is always at least 1.
type Line struct {
	ProductID int             `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

func lineFromProduct(product catalog.Product) Line {
	return Line{
		ProductID: product.ID,
		Name:      product.Name,
		Category:  product.Category,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  1,
	}
}

// Subtotal returns price multiplied by quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Snapshot is an immutable view of the cart handed to observers and the
// rendering boundary. Aggregates are recomputed from the lines on every
// mutation, never cached incrementally.
type Snapshot struct {
	Lines     []Line
	ItemCount int
	Total     decimal.Decimal
}

// IsEmpty reports whether the cart has no lines.
func (s Snapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}

// FormattedTotal renders the total with two decimal places for display.
func (s Snapshot) FormattedTotal() string {
	return s.Total.StringFixed(2)
}

func snapshotOf(lines []Line) Snapshot {
	copied := make([]Line, len(lines))
	copy(copied, lines)

	count := 0
	total := decimal.Zero
	for _, line := range copied {
		count += line.Quantity
		total = total.Add(line.Subtotal())
	}
	return Snapshot{
		Lines:     copied,
		ItemCount: count,
		Total:     total,
	}
}
