// core/runsheet/runsheet.go
package runsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"peflow-core/design"
	"peflow-core/oligo"
	"peflow-core/report"
	"peflow-core/resolve"
)

// Sample is one sequenced sample with its paired read files, as listed in an
// explicit sample sheet (name, fastq_r1, fastq_r2).
type Sample struct {
	Name string
	R1   string
	R2   string
}

// ReadSamples parses a tab-separated sample sheet with a header row.
func ReadSamples(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("sample sheet: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("sample sheet: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	for _, name := range []string{"name", "fastq_r1", "fastq_r2"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("sample sheet: missing column %q", name)
		}
	}

	var out []Sample
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sample sheet: %w", err)
		}
		out = append(out, Sample{
			Name: row[col["name"]],
			R1:   row[col["fastq_r1"]],
			R2:   row[col["fastq_r2"]],
		})
	}
	return out, nil
}

// LoadSamples reads the sample sheet from a file path.
func LoadSamples(path string) ([]Sample, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	return ReadSamples(fh)
}

// Row is one line of the batch settings file handed to the external analysis
// tool. Column names follow that tool's batch-mode schema.
type Row struct {
	Name      string
	R1        string
	R2        string
	Extension string
	Amplicon  string
	Scaffold  string
	Spacer    string
}

// Header is the canonical batch settings header.
var Header = []string{
	"name",
	"fastq_r1",
	"fastq_r2",
	"prime_editing_pegRNA_extension_seq",
	"amplicon_seq",
	"prime_editing_pegRNA_scaffold_seq",
	"prime_editing_pegRNA_spacer_seq",
}

func (r Row) Fields() []string {
	return []string{r.Name, r.R1, r.R2, r.Extension, r.Amplicon, r.Scaffold, r.Spacer}
}

// Lookup resolves a design key to its extension sequence.
type Lookup func(design.Key) (extension string, ok bool)

// Build joins samples against design entries. Sample names only need to carry
// loose P<n>/R<n> tokens; unparsable names and names with no matching design
// entry are reported, never silently dropped. The spacer's lowercase cloning
// flanks and each extension's leading flank are stripped before emission.
func Build(samples []Sample, find Lookup, amplicon, scaffold, spacer string, rep *report.Report) []Row {
	cleanSpacer := oligo.TrimFlanks(spacer)
	var out []Row
	for _, s := range samples {
		key, ok := resolve.LooseKey(s.Name)
		if !ok {
			rep.Add(s.Name, report.ErrInvalidIdentifier, "no P/R tokens in sample name")
			continue
		}
		ext, ok := find(key)
		if !ok {
			rep.Add(s.Name, report.ErrUnresolvedSample, "no design for "+key.String())
			continue
		}
		out = append(out, Row{
			Name:      s.Name,
			R1:        s.R1,
			R2:        s.R2,
			Extension: oligo.TrimLeadingFlank(ext),
			Amplicon:  amplicon,
			Scaffold:  scaffold,
			Spacer:    cleanSpacer,
		})
	}
	return out
}
