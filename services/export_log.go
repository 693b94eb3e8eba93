package services

import (
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"budgetsummary/collections"
)

// ExportLogCollection is the collection that records generated documents.
const ExportLogCollection = collections.BudgetExports

// ExportLogEntry describes one generated document. The budget itself is
// never stored.
type ExportLogEntry struct {
	ID          string  `json:"id"`
	FileName    string  `json:"fileName"`
	ProjectName string  `json:"projectName"`
	Language    string  `json:"language"`
	Format      string  `json:"format"`
	GrandTotal  float64 `json:"grandTotal"`
	SizeBytes   int     `json:"sizeBytes"`
	Source      string  `json:"source"`
	Created     string  `json:"created"`
}

// RecordBudgetExport stores the metadata of a generated artifact. source
// names the surface that produced it ("http" or "cli").
func RecordBudgetExport(app core.App, artifact Artifact, projectName, source string) (*core.Record, error) {
	col, err := app.FindCollectionByNameOrId(ExportLogCollection)
	if err != nil {
		return nil, fmt.Errorf("export log collection not found: %w", err)
	}

	record := core.NewRecord(col)
	record.Set("file_name", artifact.FileName)
	record.Set("project_name", strings.TrimSpace(projectName))
	record.Set("language", string(artifact.Language))
	record.Set("format", string(artifact.Format))
	record.Set("grand_total", artifact.Totals.Grand)
	record.Set("size_bytes", len(artifact.Data))
	record.Set("source", source)

	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("save export log: %w", err)
	}
	return record, nil
}

// ListBudgetExports returns the most recent export log entries, newest
// first. A limit of zero or less returns every entry.
func ListBudgetExports(app core.App, limit int) ([]ExportLogEntry, error) {
	if limit < 0 {
		limit = 0
	}
	records, err := app.FindRecordsByFilter(ExportLogCollection, "id != ''", "-created", limit, 0)
	if err != nil {
		return nil, fmt.Errorf("list export log: %w", err)
	}

	entries := make([]ExportLogEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, ExportLogEntry{
			ID:          r.Id,
			FileName:    r.GetString("file_name"),
			ProjectName: r.GetString("project_name"),
			Language:    r.GetString("language"),
			Format:      r.GetString("format"),
			GrandTotal:  r.GetFloat("grand_total"),
			SizeBytes:   r.GetInt("size_bytes"),
			Source:      r.GetString("source"),
			Created:     r.GetDateTime("created").String(),
		})
	}
	return entries, nil
}
