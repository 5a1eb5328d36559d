package report

import (
	"bytes"
	"html/template"

	"homesight/server/internal/models"
)

// RenderHTML produces a print-ready HTML view of the report. The
// embedded script auto-triggers the browser print dialog, which is how
// server-rendered reports reach paper without a PDF round trip.
func RenderHTML(data models.PropertyData) ([]byte, error) {
	r, err := Build(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Georgia, serif; max-width: 800px; margin: 2em auto; color: #222; }
h1 { text-align: center; margin-bottom: 0; }
.subtitle { text-align: center; color: #666; margin-top: 0.3em; }
h2 { border-bottom: 1px solid #bbb; padding-bottom: 0.2em; margin-top: 1.6em; }
dl { display: grid; grid-template-columns: 12em 1fr; gap: 0.2em 1em; }
dt { font-weight: bold; }
dd { margin: 0; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 0.3em 0.5em; text-align: left; }
th { background: #eee; }
.footer { color: #888; font-size: 0.85em; border-top: 1px solid #ccc; margin-top: 2em; padding-top: 0.5em; }
@media print { body { margin: 0; } }
</style>
</head>
<body onload="window.print()">
<h1>{{.Title}}</h1>
{{if .Subtitle}}<p class="subtitle">{{.Subtitle}}</p>{{end}}
{{range .Sections}}
{{if .IsFooter}}<div class="footer">{{range .Paragraphs}}<p>{{.}}</p>{{end}}</div>{{else}}
{{if .Title}}<h2>{{.Title}}</h2>{{end}}
{{range .Paragraphs}}<p>{{.}}</p>{{end}}
{{if .Fields}}<dl>{{range .Fields}}<dt>{{.Label}}</dt><dd>{{.Value}}</dd>{{end}}</dl>{{end}}
{{range .Lists}}<h3>{{.Title}}</h3><ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if .Table}}<table><tr>{{range .Table.Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Table.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</table>{{end}}
{{end}}
{{end}}
</body>
</html>
`))
