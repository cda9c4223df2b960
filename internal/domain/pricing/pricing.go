// Package pricing computes order totals from the fruit catalog and the
// active multi-buy offers. All arithmetic is done in integer cents.
package pricing

import "github.com/skadi15/fruitstand/internal/domain/model"

// Default catalog prices in cents.
const (
	DefaultAppleCents  model.Money = 25
	DefaultOrangeCents model.Money = 60
)

// Offers toggles the multi-buy deals.
type Offers struct {
	// AppleBOGO charges for every second apple only (buy one, get one free).
	AppleBOGO bool
	// OrangeThreeForTwo makes every third orange free.
	OrangeThreeForTwo bool
}

// Catalog holds unit prices and the offers applied on top of them.
type Catalog struct {
	AppleCents  model.Money
	OrangeCents model.Money
	Offers      Offers
}

// DefaultCatalog returns the standard prices with both offers active.
func DefaultCatalog() Catalog {
	return Catalog{
		AppleCents:  DefaultAppleCents,
		OrangeCents: DefaultOrangeCents,
		Offers:      Offers{AppleBOGO: true, OrangeThreeForTwo: true},
	}
}

// Line is the priced result for one fruit.
type Line struct {
	Item     string      `json:"item"`
	Quantity int         `json:"quantity"`
	Charged  int         `json:"charged"`
	Unit     model.Money `json:"unitCents"`
	Subtotal model.Money `json:"subtotalCents"`
	Discount model.Money `json:"discountCents"`
	Offer    string      `json:"offer,omitempty"`
}

// Total is the amount due for the line.
func (l Line) Total() model.Money { return l.Subtotal - l.Discount }

// Quote is a complete price breakdown.
type Quote struct {
	Lines      []Line      `json:"lines"`
	TotalCents model.Money `json:"totalCents"`
	TotalCost  float64     `json:"totalCost"`
}

// Line returns the line for item, if present.
func (q Quote) Line(item string) (Line, bool) {
	for _, l := range q.Lines {
		if l.Item == item {
			return l, true
		}
	}
	return Line{}, false
}

// Calculator prices orders against a fixed catalog. It is immutable and safe
// for concurrent use.
type Calculator struct {
	catalog Catalog
}

// NewCalculator returns a Calculator for the given catalog. Negative prices
// are clamped to zero.
func NewCalculator(c Catalog) *Calculator {
	c.AppleCents = max(c.AppleCents, 0)
	c.OrangeCents = max(c.OrangeCents, 0)
	return &Calculator{catalog: c}
}

// Catalog returns the catalog in use.
func (c *Calculator) Catalog() Catalog { return c.catalog }

// Quote prices the given quantities. Negative quantities are treated as zero;
// callers are expected to validate input first.
func (c *Calculator) Quote(apples, oranges int) Quote {
	appleLine := priceLine(model.ParamApples, max(apples, 0), c.catalog.AppleCents)
	if c.catalog.Offers.AppleBOGO {
		applyFree(&appleLine, appleLine.Quantity/2, "buy-one-get-one-free")
	}

	orangeLine := priceLine(model.ParamOranges, max(oranges, 0), c.catalog.OrangeCents)
	if c.catalog.Offers.OrangeThreeForTwo {
		applyFree(&orangeLine, orangeLine.Quantity/3, "three-for-two")
	}

	total := appleLine.Total() + orangeLine.Total()
	return Quote{
		Lines:      []Line{appleLine, orangeLine},
		TotalCents: total,
		TotalCost:  total.Dollars(),
	}
}

// Total is shorthand for Quote(apples, oranges).TotalCents.
func (c *Calculator) Total(apples, oranges int) model.Money {
	return c.Quote(apples, oranges).TotalCents
}

func priceLine(item string, qty int, unit model.Money) Line {
	return Line{
		Item:     item,
		Quantity: qty,
		Charged:  qty,
		Unit:     unit,
		Subtotal: unit * model.Money(qty),
	}
}

func applyFree(l *Line, free int, offer string) {
	if free <= 0 {
		return
	}
	l.Charged = l.Quantity - free
	l.Discount = l.Unit * model.Money(free)
	l.Offer = offer
}
