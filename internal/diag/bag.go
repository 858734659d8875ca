package diag

import (
	"sort"
)

// Bag collects the final diagnostics of one file.
type Bag struct {
	items []Diagnostic
}

func NewBag(items ...Diagnostic) *Bag {
	return &Bag{items: items}
}

func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

func (b *Bag) Items() []Diagnostic {
	return b.items
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Sort orders diagnostics by start line and column. Ties keep report order.
func (b *Bag) Sort() {
	SortByLocation(b.items)
}

// SortByLocation orders diags in place by start line, then start column.
func SortByLocation(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		li, lj := diags[i].Location, diags[j].Location
		if li.Line != lj.Line {
			return li.Line < lj.Line
		}
		return li.Column < lj.Column
	})
}

// Counts summarises a set of diagnostics.
type Counts struct {
	Errors          int
	Warnings        int
	FixableErrors   int
	FixableWarnings int
	Fatal           int
}

// Add accumulates other into c.
func (c *Counts) Add(other Counts) {
	c.Errors += other.Errors
	c.Warnings += other.Warnings
	c.FixableErrors += other.FixableErrors
	c.FixableWarnings += other.FixableWarnings
	c.Fatal += other.Fatal
}

// Count tallies diags.
func Count(diags []Diagnostic) Counts {
	var c Counts
	for i := range diags {
		d := &diags[i]
		if d.Fatal {
			c.Fatal++
		}
		switch d.Severity {
		case SevError:
			c.Errors++
			if d.Fixable() {
				c.FixableErrors++
			}
		case SevWarning:
			c.Warnings++
			if d.Fixable() {
				c.FixableWarnings++
			}
		}
	}
	return c
}
