package services

import (
	"context"
	"errors"
	"fmt"
)

// ErrGeneration matches every failure to build or serialize a budget
// document.
var ErrGeneration = errors.New("budget document generation failed")

// GenerationError wraps the cause of a failed generation together with the
// step that failed ("assemble" or "serialize").
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrGeneration, e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

// Artifact is a finished document ready to be saved.
type Artifact struct {
	FileName    string
	ContentType string
	Format      ExportFormat
	Language    Language
	Totals      BudgetTotals
	Data        []byte
}

// RenderBudget assembles and serializes a budget document without saving
// it.
func RenderBudget(b Budget, lang Language, format ExportFormat) (Artifact, error) {
	doc, err := BuildBudgetDocument(b, lang)
	if err != nil {
		return Artifact{}, &GenerationError{Stage: "assemble", Err: err}
	}

	data, err := serialize(doc, format)
	if err != nil {
		return Artifact{}, &GenerationError{Stage: "serialize", Err: err}
	}

	return Artifact{
		FileName:    BudgetFileName(b.Project.ProjectName, lang, format),
		ContentType: format.ContentType(),
		Format:      format,
		Language:    lang,
		Totals:      b.Totals(),
		Data:        data,
	}, nil
}

func serialize(doc *Document, format ExportFormat) ([]byte, error) {
	switch format {
	case FormatDocx:
		return GenerateDocx(doc)
	case FormatXLSX:
		return GenerateBudgetExcel(doc)
	case FormatPDF:
		return GenerateBudgetPDF(doc)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// GenerateBudgetDocument renders the budget and hands the bytes to saver
// under the derived file name. The saver is not called when rendering
// fails. Save errors are returned wrapped and are not retried.
func GenerateBudgetDocument(ctx context.Context, b Budget, lang Language, format ExportFormat, saver Saver) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}

	artifact, err := RenderBudget(b, lang, format)
	if err != nil {
		return Artifact{}, err
	}

	if err := saver.Save(ctx, artifact.FileName, artifact.Data); err != nil {
		return artifact, fmt.Errorf("save %s: %w", artifact.FileName, err)
	}
	return artifact, nil
}
