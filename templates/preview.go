// Package templates renders budget documents as HTML for the in-browser
// preview.
package templates

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"budgetsummary/services"
)

func previewTitle(doc *services.Document) string {
	if doc.Subject == "" {
		return doc.Title
	}
	return doc.Title + " - " + doc.Subject
}

func paragraphStyle(p *services.Paragraph) templ.SafeCSS {
	var style []string
	if p.Align != "" && p.Align != services.AlignLeft {
		style = append(style, "text-align:"+string(p.Align))
	}
	// Spacing is in twips; 20 twips to the point.
	if p.Spacing.Before > 0 {
		style = append(style, fmt.Sprintf("margin-top:%dpt", p.Spacing.Before/20))
	}
	if p.Spacing.After > 0 {
		style = append(style, fmt.Sprintf("margin-bottom:%dpt", p.Spacing.After/20))
	}
	return templ.SafeCSS(strings.Join(style, ";"))
}

func runStyle(r services.Run) templ.SafeCSS {
	var style []string
	if r.Bold {
		style = append(style, "font-weight:bold")
	}
	if r.Size > 0 {
		// Run sizes are in half-points.
		style = append(style, fmt.Sprintf("font-size:%dpt", r.Size/2))
	}
	if isHexColor(r.Color) {
		style = append(style, "color:#"+r.Color)
	}
	return templ.SafeCSS(strings.Join(style, ";"))
}

func tableStyle(t *services.Table) templ.SafeCSS {
	if t.WidthPct <= 0 {
		return ""
	}
	return templ.SafeCSS(fmt.Sprintf("width:%d%%", t.WidthPct))
}

func cellStyle(t *services.Table, i int, cell services.TableCell) templ.SafeCSS {
	var style []string
	if widths := t.ColumnWidths(); i < len(widths) && widths[i] > 0 {
		style = append(style, fmt.Sprintf("width:%d%%", widths[i]))
	}
	if isHexColor(cell.Fill) {
		style = append(style, "background:#"+cell.Fill)
	}
	if b := cell.Border; b != nil && b.Style != services.BorderNone && !t.Borderless && isHexColor(b.Color) {
		style = append(style, fmt.Sprintf("border:%dpx solid #%s", max(b.Size, 1), b.Color))
	}
	return templ.SafeCSS(strings.Join(style, ";"))
}

// isHexColor reports whether s is a six-digit RGB hex value such as
// "2E74B5". Anything else is left out of the generated CSS.
func isHexColor(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
