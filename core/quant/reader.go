// core/quant/reader.go
package quant

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Columns the quantifier's batch quantification file must carry. Extra
// columns (percentages, alignment stats) are ignored.
var required = []string{"Batch", "Amplicon", "Unmodified", "Modified", "Discarded"}

var countColumns = []string{"Unmodified", "Modified", "Discarded"}

// Read parses the quantifier's tab-separated batch quantification table into
// one Record per batch (= per sample/well). Rows belonging to the same batch
// are flattened into "<amplicon>:<column>" labeled counts, in file order, and
// the record total is the sum over every labeled count of the batch.
func Read(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("quantification input: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("quantification input: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	for _, name := range required {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("quantification input: missing column %q", name)
		}
	}

	var (
		order []string
		byID  = map[string]*Record{}
		ln    = 1
	)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("quantification input: %w", err)
		}
		ln++
		if len(row) < len(header) {
			return nil, fmt.Errorf("quantification input: line %d: %d fields, want %d", ln, len(row), len(header))
		}

		sample := row[col["Batch"]]
		amplicon := row[col["Amplicon"]]
		rec, ok := byID[sample]
		if !ok {
			rec = &Record{Sample: sample}
			byID[sample] = rec
			order = append(order, sample)
		}
		for _, name := range countColumns {
			n, err := strconv.Atoi(row[col[name]])
			if err != nil {
				return nil, fmt.Errorf("quantification input: line %d: bad %s count: %w", ln, name, err)
			}
			if n < 0 {
				return nil, fmt.Errorf("quantification input: line %d: negative %s count", ln, name)
			}
			rec.Counts = append(rec.Counts, Count{Label: amplicon + ":" + name, Reads: n})
			rec.Total += n
		}
	}

	out := make([]Record, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out, nil
}

// Load reads the quantification table from a file path.
func Load(path string) ([]Record, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	return Read(fh)
}
