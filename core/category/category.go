// core/category/category.go
package category

import (
	"fmt"

	"peflow-core/report"
)

// Category is one normalized editing-outcome tag. Every raw label coming out
// of the quantifier must map onto exactly one of these.
type Category string

const (
	IntendedEdit   Category = "intended_edit"
	UnintendedEdit Category = "unintended_edit"
	Indel          Category = "indel"
	Unmodified     Category = "unmodified"
	Unclassified   Category = "unclassified"
)

// Order is the canonical column order for every tabular output.
var Order = []Category{IntendedEdit, UnintendedEdit, Indel, Unmodified, Unclassified}

func Valid(c Category) bool {
	for _, o := range Order {
		if c == o {
			return true
		}
	}
	return false
}

// Table maps the quantifier's raw outcome labels onto normalized categories.
// Labels are "<amplicon>:<column>" as produced by the quant reader.
type Table map[string]Category

// Normalize maps one raw label. A label missing from the table is a hard
// per-record error, never a silent "unclassified".
func (t Table) Normalize(label string) (Category, error) {
	c, ok := t[label]
	if !ok {
		return "", fmt.Errorf("%w: %q", report.ErrUnknownCategory, label)
	}
	return c, nil
}

// Default is the built-in table for the quantifier's prime-editing batch
// vocabulary. Reads assigned to the prime-edited amplicon without further
// modification are the intended edit; modified reads on that amplicon and any
// scaffold-incorporated read are unintended edits; modified reads on the
// reference amplicon are indels; discarded reads are unclassified.
func Default() Table {
	return Table{
		"Reference:Unmodified":             Unmodified,
		"Reference:Modified":               Indel,
		"Reference:Discarded":              Unclassified,
		"Prime-edited:Unmodified":          IntendedEdit,
		"Prime-edited:Modified":            UnintendedEdit,
		"Prime-edited:Discarded":           Unclassified,
		"Scaffold-incorporated:Unmodified": UnintendedEdit,
		"Scaffold-incorporated:Modified":   UnintendedEdit,
		"Scaffold-incorporated:Discarded":  Unclassified,
	}
}
