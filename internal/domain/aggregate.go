package domain

import "github.com/shopspring/decimal"

// MaxAggregates is how many distinct ATC codes one physical certificate
// holds; the form has exactly ten detail rows.
const MaxAggregates = 10

// Aggregate accumulates every line item sharing one ATC code within one
// certificate instance. Description and quarter position are fixed by the
// first line item; later ones only add into the running sums.
type Aggregate struct {
	ATCCode        string
	ATCDescription string
	QuarterMonth   int // 1-3 position of the month within its fiscal quarter
	Base           decimal.Decimal
	Tax            decimal.Decimal
}

func newAggregate(li *LineItem) *Aggregate {
	return &Aggregate{
		ATCCode:        li.ATCCode,
		ATCDescription: li.ATCDescription,
		QuarterMonth:   QuarterMonth(li.Month),
		Base:           li.Base,
		Tax:            li.Tax,
	}
}

func (a *Aggregate) add(li *LineItem) {
	a.Base = a.Base.Add(li.Base)
	a.Tax = a.Tax.Add(li.Tax)
}

// QuarterMonth maps a calendar month to its 1-3 slot within the quarter:
// month - (ceil(month/3)*3 - 3).
func QuarterMonth(month int) int {
	quarter := (month + 2) / 3
	return month - (quarter*3 - 3)
}

// Collection is the ordered set of aggregates on one certificate instance,
// keyed by ATC code, bounded at MaxAggregates distinct codes. Output row
// order is insertion order.
type Collection struct {
	order  []string
	byCode map[string]*Aggregate
}

func NewCollection() *Collection {
	return &Collection{byCode: make(map[string]*Aggregate)}
}

// Add routes a line item into its code's aggregate, creating the aggregate
// on first sight. Lookup-or-insert is a single operation so a code can
// never seed two aggregates.
func (c *Collection) Add(li *LineItem) {
	if agg, ok := c.byCode[li.ATCCode]; ok {
		agg.add(li)
		return
	}
	c.byCode[li.ATCCode] = newAggregate(li)
	c.order = append(c.order, li.ATCCode)
}

func (c *Collection) Len() int { return len(c.order) }

// IsFull reports whether the instance has no room for another distinct
// code. Callers check this before routing, so an 11th code always lands on
// a fresh instance.
func (c *Collection) IsFull() bool { return len(c.order) >= MaxAggregates }

// Aggregates returns the aggregates in insertion order.
func (c *Collection) Aggregates() []*Aggregate {
	out := make([]*Aggregate, len(c.order))
	for i, code := range c.order {
		out[i] = c.byCode[code]
	}
	return out
}

// TotalBase sums the current aggregates on demand; it is never cached.
func (c *Collection) TotalBase() decimal.Decimal {
	total := decimal.Zero
	for _, code := range c.order {
		total = total.Add(c.byCode[code].Base)
	}
	return total
}

// TotalTax sums the current aggregates on demand.
func (c *Collection) TotalTax() decimal.Decimal {
	total := decimal.Zero
	for _, code := range c.order {
		total = total.Add(c.byCode[code].Tax)
	}
	return total
}
