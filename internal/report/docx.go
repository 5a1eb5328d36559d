package report

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"homesight/server/internal/models"
)

// RenderDOCX produces the Word artifact as a minimal Office Open XML
// package: a zip holding the content-types manifest, the package rels
// and one word/document.xml built from the shared report model.
func RenderDOCX(data models.PropertyData) ([]byte, error) {
	r, err := Build(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", buildDocumentXML(r)},
	}
	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize docx package: %w", err)
	}
	return buf.Bytes(), nil
}

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

func buildDocumentXML(r *Report) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	writeDocxParagraph(&b, r.Title, docxStyleTitle)
	if r.Subtitle != "" {
		writeDocxParagraph(&b, r.Subtitle, docxStyleSubtle)
	}

	for _, section := range r.Sections {
		writeDocxSection(&b, section)
	}

	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

type docxStyle int

const (
	docxStyleNormal docxStyle = iota
	docxStyleTitle
	docxStyleHeading
	docxStyleSubtle
	docxStyleBullet
)

func writeDocxSection(b *strings.Builder, s Section) {
	if s.Title != "" {
		writeDocxParagraph(b, s.Title, docxStyleHeading)
	}
	style := docxStyleNormal
	if s.Kind == KindFooter {
		style = docxStyleSubtle
	}
	for _, p := range s.Paragraphs {
		writeDocxParagraph(b, p, style)
	}
	for _, f := range s.Fields {
		writeDocxField(b, f)
	}
	for _, list := range s.Lists {
		writeDocxParagraph(b, list.Title, docxStyleHeading)
		for _, item := range list.Items {
			writeDocxParagraph(b, item, docxStyleBullet)
		}
	}
	if s.Table != nil {
		writeDocxTable(b, s.Table)
	}
}

func writeDocxParagraph(b *strings.Builder, text string, style docxStyle) {
	b.WriteString(`<w:p>`)
	switch style {
	case docxStyleTitle:
		b.WriteString(`<w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:rPr><w:b/><w:sz w:val="36"/></w:rPr>`)
	case docxStyleHeading:
		b.WriteString(`<w:pPr><w:spacing w:before="240" w:after="60"/></w:pPr><w:r><w:rPr><w:b/><w:sz w:val="26"/></w:rPr>`)
	case docxStyleSubtle:
		b.WriteString(`<w:r><w:rPr><w:i/><w:color w:val="808080"/></w:rPr>`)
	case docxStyleBullet:
		b.WriteString(`<w:pPr><w:ind w:left="360"/></w:pPr><w:r>`)
		text = "• " + text
	default:
		b.WriteString(`<w:r>`)
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	_ = xml.EscapeText(b, []byte(text))
	b.WriteString(`</w:t></w:r></w:p>`)
}

func writeDocxField(b *strings.Builder, f Field) {
	b.WriteString(`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">`)
	_ = xml.EscapeText(b, []byte(f.Label+": "))
	b.WriteString(`</w:t></w:r><w:r><w:t xml:space="preserve">`)
	_ = xml.EscapeText(b, []byte(f.Value))
	b.WriteString(`</w:t></w:r></w:p>`)
}

func writeDocxTable(b *strings.Builder, t *Table) {
	b.WriteString(`<w:tbl><w:tblPr><w:tblBorders>` +
		`<w:top w:val="single" w:sz="4"/><w:bottom w:val="single" w:sz="4"/>` +
		`<w:left w:val="single" w:sz="4"/><w:right w:val="single" w:sz="4"/>` +
		`<w:insideH w:val="single" w:sz="4"/><w:insideV w:val="single" w:sz="4"/>` +
		`</w:tblBorders></w:tblPr>`)

	writeRow := func(cells []string, bold bool) {
		b.WriteString(`<w:tr>`)
		for _, cell := range cells {
			b.WriteString(`<w:tc><w:p><w:r>`)
			if bold {
				b.WriteString(`<w:rPr><w:b/></w:rPr>`)
			}
			b.WriteString(`<w:t xml:space="preserve">`)
			_ = xml.EscapeText(b, []byte(cell))
			b.WriteString(`</w:t></w:r></w:p></w:tc>`)
		}
		b.WriteString(`</w:tr>`)
	}

	writeRow(t.Columns, true)
	for _, row := range t.Rows {
		writeRow(row, false)
	}
	b.WriteString(`</w:tbl>`)
}
