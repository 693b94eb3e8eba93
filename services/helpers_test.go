package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

// sampleBudget returns a budget with every section filled in.
func sampleBudget() Budget {
	return Budget{
		Project: ProjectInfo{
			ProjectName:  "Cocina Nueva",
			Beneficiary:  "María López",
			ApproverName: "Ing. Pérez",
			ApprovalDate: "2024-03-15",
			Observations: "Entregar antes del viernes",
		},
		Workers: []WorkerInfo{
			{ID: "1", Name: "A", Role: RoleHelper},
			{ID: "2", Name: "B", Role: RolePrincipal},
			{ID: "3", Name: "C", Role: RoleHelper},
		},
		Materials: []MaterialItem{
			{ID: "m1", Description: "Cemento", Quantity: 3, Unit: "bolsa", UnitPrice: 10.50},
			{ID: "m2", Description: "Arena", Quantity: 1, Unit: "m3", UnitPrice: 5},
		},
		Labor: []LaborItem{
			{ID: "l1", Description: "Colado de losa", Cost: 100},
			{ID: "l2", Description: "Repello", Cost: 50.25},
		},
		Diet: DietInfo{WorkersCount: 4, Days: 5, CostPerDay: 25},
	}
}

// paragraphTexts returns the text of every paragraph in the document,
// including table cells.
func paragraphTexts(doc *Document) []string {
	var out []string
	for _, p := range doc.Paragraphs() {
		out = append(out, p.Text())
	}
	return out
}

// runTexts returns the text of every run in the document, trimmed.
func runTexts(doc *Document) []string {
	var out []string
	for _, p := range doc.Paragraphs() {
		for _, r := range p.Runs {
			out = append(out, strings.TrimSpace(r.Text))
		}
	}
	return out
}

func containsText(texts []string, want string) bool {
	for _, s := range texts {
		if s == want {
			return true
		}
	}
	return false
}

func hasHeading(doc *Document, text string) bool {
	for _, p := range doc.Paragraphs() {
		if p.Heading == Heading2 && p.Text() == text {
			return true
		}
	}
	return false
}

// readZipPart returns the contents of one part of a zip package.
func readZipPart(t *testing.T, data []byte, name string) []byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("not a zip package: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return b
	}
	t.Fatalf("part %s not found", name)
	return nil
}

// docxParagraphs extracts the text of every w:p element of a .docx body.
func docxParagraphs(t *testing.T, data []byte) []string {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(readZipPart(t, data, "word/document.xml")))

	var out []string
	var current strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("decode document.xml: %v", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				current.Reset()
			case "t":
				inText = true
			case "br":
				current.WriteString("\n")
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "p":
				out = append(out, current.String())
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(el)
			}
		}
	}
	return out
}
