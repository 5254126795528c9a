// core/oligo/sheet.go
package oligo

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// SheetRow is one design row from the upstream design tool's CSV export.
type SheetRow struct {
	PBS                int
	RTT                int
	Score              string
	ExtensionSense     string
	ExtensionAntisense string
}

// Sheet is a parsed design CSV. The protospacer and edit-site fields repeat
// on every row; the first row's values are authoritative.
type Sheet struct {
	ProtospacerSense     string
	ProtospacerAntisense string
	EditPosition         string
	PAM                  string
	PAMStrand            string
	Rows                 []SheetRow
}

var sheetColumns = []string{
	"PBS", "RTT", "Score",
	"Extension.Sense.", "Extension.Antisense.",
	"Protospacer.Sense.", "Protospacer.Antisense.",
	"EditPos.", "PAM", "PAM.Strand",
}

// ReadSheet parses the design CSV.
func ReadSheet(r io.Reader) (Sheet, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return Sheet{}, fmt.Errorf("design sheet: empty file")
	}
	if err != nil {
		return Sheet{}, fmt.Errorf("design sheet: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	for _, name := range sheetColumns {
		if _, ok := col[name]; !ok {
			return Sheet{}, fmt.Errorf("design sheet: missing column %q", name)
		}
	}

	var sheet Sheet
	ln := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Sheet{}, fmt.Errorf("design sheet: %w", err)
		}
		ln++

		if len(sheet.Rows) == 0 {
			sheet.ProtospacerSense = row[col["Protospacer.Sense."]]
			sheet.ProtospacerAntisense = row[col["Protospacer.Antisense."]]
			sheet.EditPosition = row[col["EditPos."]]
			sheet.PAM = row[col["PAM"]]
			sheet.PAMStrand = row[col["PAM.Strand"]]
		}

		pbs, err := strconv.Atoi(row[col["PBS"]])
		if err != nil {
			return Sheet{}, fmt.Errorf("design sheet: line %d: bad PBS: %w", ln, err)
		}
		rtt, err := strconv.Atoi(row[col["RTT"]])
		if err != nil {
			return Sheet{}, fmt.Errorf("design sheet: line %d: bad RTT: %w", ln, err)
		}
		sense, err := Validate(row[col["Extension.Sense."]])
		if err != nil {
			return Sheet{}, fmt.Errorf("design sheet: line %d: extension sense: %w", ln, err)
		}
		anti, err := Validate(row[col["Extension.Antisense."]])
		if err != nil {
			return Sheet{}, fmt.Errorf("design sheet: line %d: extension antisense: %w", ln, err)
		}
		sheet.Rows = append(sheet.Rows, SheetRow{
			PBS:                pbs,
			RTT:                rtt,
			Score:              row[col["Score"]],
			ExtensionSense:     sense,
			ExtensionAntisense: anti,
		})
	}
	if len(sheet.Rows) == 0 {
		return Sheet{}, fmt.Errorf("design sheet: no data rows")
	}
	return sheet, nil
}

// LoadSheet reads the design CSV from a file path.
func LoadSheet(path string) (Sheet, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Sheet{}, err
	}
	defer func() { _ = fh.Close() }()
	return ReadSheet(fh)
}
