// core/oligo/oligo.go
package oligo

import (
	"fmt"
	"strings"
)

var complement [256]byte

func init() {
	pairs := map[byte]byte{
		'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A',
		'R': 'Y', 'Y': 'R', 'S': 'S', 'W': 'W',
		'K': 'M', 'M': 'K', 'B': 'V', 'V': 'B',
		'D': 'H', 'H': 'D', 'N': 'N',
	}
	for b, c := range pairs {
		complement[b] = c
		// Case is meaningful in ordered oligos (lowercase marks scaffold and
		// flanking bases), so complements preserve it.
		complement[b+'a'-'A'] = c + 'a' - 'A'
	}
}

// RevComp reverse-complements seq, preserving case.
func RevComp(seq string) string {
	n := len(seq)
	if n == 0 {
		return ""
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[seq[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}

// Validate strips whitespace and quote characters and verifies every
// remaining character is an IUPAC DNA code, in either case.
func Validate(raw string) (string, error) {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		switch ch {
		case ' ', '\t', '\'', '"':
			continue
		}
		up := ch
		if up >= 'a' && up <= 'z' {
			up -= 'a' - 'A'
		}
		if complement[up] == 0 {
			return "", fmt.Errorf("position %d: %q is not an IUPAC DNA code", i+1, string(ch))
		}
		b.WriteByte(ch)
	}
	return b.String(), nil
}

// Ordered extensions start with the scaffold-1 handle "gtgc"; scaffold-2
// orders swap it for "gtcc".
const (
	scaffold1Prefix = "gtgc"
	scaffold2Prefix = "gtcc"
)

// SwapScaffold rewrites a scaffold-1 extension sense sequence for scaffold 2.
// A sequence that does not carry the scaffold-1 handle cannot be swapped.
func SwapScaffold(sense string) (string, error) {
	if !strings.HasPrefix(sense, scaffold1Prefix) {
		return "", fmt.Errorf("sequence does not start with %q", scaffold1Prefix)
	}
	return scaffold2Prefix + sense[len(scaffold1Prefix):], nil
}

// Order is one named oligo pair ready for an order sheet.
type Order struct {
	Name      string
	Sense     string
	Antisense string
}

// Rows expands an order into its two sheet rows, suffixed _S and _AS.
func (o Order) Rows() [2][2]string {
	return [2][2]string{
		{o.Name + "_S", o.Sense},
		{o.Name + "_AS", o.Antisense},
	}
}

// TrimFlanks removes lowercase flanking bases from both ends of a sequence.
// Database spacer entries carry lowercase cloning overhangs that must not
// reach the analysis tool's settings file.
func TrimFlanks(seq string) string {
	start := 0
	for start < len(seq) && seq[start] >= 'a' && seq[start] <= 'z' {
		start++
	}
	end := len(seq)
	for end > start && seq[end-1] >= 'a' && seq[end-1] <= 'z' {
		end--
	}
	return seq[start:end]
}

// TrimLeadingFlank removes only the leading lowercase run (extension
// sequences keep their 3' tail).
func TrimLeadingFlank(seq string) string {
	start := 0
	for start < len(seq) && seq[start] >= 'a' && seq[start] <= 'z' {
		start++
	}
	return seq[start:]
}
