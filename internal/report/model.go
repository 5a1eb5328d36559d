package report

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrMissingOverview aborts an export when the mandatory property
// overview is absent. Field-level gaps never abort; they render as N/A.
var ErrMissingOverview = errors.New("property data has no overview")

// SectionKind tags the typed sections of the shared report model. The
// three format backends consume the same ordered section list, so
// content and ordering cannot drift between formats.
type SectionKind int

const (
	KindHeader SectionKind = iota
	KindGrade
	KindKeyMetrics
	KindRecommendation
	KindDetails
	KindInsights
	KindComparables
	KindFooter
)

// Field is a label/value pair rendered as one line.
type Field struct {
	Label string
	Value string
}

// TitledList is a named bullet list (strengths, risks).
type TitledList struct {
	Title string
	Items []string
}

// Table is a simple grid (comparables).
type Table struct {
	Columns []string
	Rows    [][]string
}

// Section is one block of the report. Backends only interpret layout
// primitives; which primitives a section carries is fixed here.
type Section struct {
	Kind       SectionKind
	Title      string
	Paragraphs []string
	Fields     []Field
	Lists      []TitledList
	Table      *Table
}

// IsFooter reports whether the section is the trailing footer block.
func (s Section) IsFooter() bool {
	return s.Kind == KindFooter
}

// Report is the format-independent document handed to the backends.
type Report struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	FileBase    string
	Sections    []Section
}

var fileBasePattern = regexp.MustCompile(`[^A-Za-z0-9]+`)

// FileBase derives the export file name from a street address,
// replacing every run of non-alphanumeric characters with underscores.
func FileBase(streetAddress string) string {
	base := fileBasePattern.ReplaceAllString(streetAddress, "_")
	if base == "" || base == "_" {
		return "property_report"
	}
	return base
}

const notAvailable = "N/A"

func money(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return "$" + groupThousands(fmt.Sprintf("%.0f", *v))
}

func groupThousands(digits string) string {
	neg := false
	if len(digits) > 0 && digits[0] == '-' {
		neg = true
		digits = digits[1:]
	}
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i, c := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

func number(v *float64) string {
	if v == nil {
		return notAvailable
	}
	if *v == float64(int64(*v)) {
		return fmt.Sprintf("%.0f", *v)
	}
	return fmt.Sprintf("%.1f", *v)
}

func intValue(v *int) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%d", *v)
}
