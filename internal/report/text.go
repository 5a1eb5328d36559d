package report

import (
	"fmt"
	"strings"

	"homesight/server/internal/models"
)

const textWidth = 72

// RenderText produces the plain-text artifact. Layout is fixed-width
// blocks: centered title, underlined section headers, aligned
// label/value columns.
func RenderText(data models.PropertyData) ([]byte, error) {
	r, err := Build(data)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(center(strings.ToUpper(r.Title)))
	b.WriteString("\n")
	if r.Subtitle != "" {
		b.WriteString(center(r.Subtitle))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("=", textWidth))
	b.WriteString("\n\n")

	for _, section := range r.Sections {
		writeTextSection(&b, section)
	}

	return []byte(b.String()), nil
}

func writeTextSection(b *strings.Builder, s Section) {
	if s.Kind == KindFooter {
		b.WriteString(strings.Repeat("-", textWidth))
		b.WriteString("\n")
		for _, p := range s.Paragraphs {
			b.WriteString(p)
			b.WriteString("\n")
		}
		return
	}

	if s.Title != "" {
		b.WriteString(s.Title)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("-", len(s.Title)))
		b.WriteString("\n")
	}

	for _, p := range s.Paragraphs {
		b.WriteString(wrap(p, textWidth))
		b.WriteString("\n")
	}

	labelWidth := 0
	for _, f := range s.Fields {
		if len(f.Label) > labelWidth {
			labelWidth = len(f.Label)
		}
	}
	for _, f := range s.Fields {
		fmt.Fprintf(b, "  %-*s  %s\n", labelWidth+1, f.Label+":", f.Value)
	}

	for _, list := range s.Lists {
		b.WriteString(list.Title)
		b.WriteString(":\n")
		for _, item := range list.Items {
			b.WriteString("  * ")
			b.WriteString(item)
			b.WriteString("\n")
		}
	}

	if s.Table != nil {
		writeTextTable(b, s.Table)
	}

	b.WriteString("\n")
}

func writeTextTable(b *strings.Builder, t *Table) {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = len(col)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			fmt.Fprintf(b, "%-*s  ", widths[i], cell)
		}
		b.WriteString("\n")
	}

	writeRow(t.Columns)
	for i, w := range widths {
		b.WriteString(strings.Repeat("-", w))
		if i < len(widths)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")
	for _, row := range t.Rows {
		writeRow(row)
	}
}

func center(s string) string {
	if len(s) >= textWidth {
		return s
	}
	pad := (textWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func wrap(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
