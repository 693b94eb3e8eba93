package services

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
)

type recordingSaver struct {
	calls    int
	fileName string
	data     []byte
	err      error
}

func (s *recordingSaver) Save(_ context.Context, fileName string, data []byte) error {
	s.calls++
	s.fileName = fileName
	s.data = data
	return s.err
}

func TestGenerateBudgetDocument_Success(t *testing.T) {
	saver := &recordingSaver{}
	artifact, err := GenerateBudgetDocument(context.Background(), sampleBudget(), LangES, FormatDocx, saver)
	if err != nil {
		t.Fatalf("GenerateBudgetDocument() error = %v", err)
	}

	if saver.calls != 1 {
		t.Fatalf("expected one save, got %d", saver.calls)
	}
	if saver.fileName != "Cocina_Nueva_es.docx" {
		t.Errorf("saved as %q, want Cocina_Nueva_es.docx", saver.fileName)
	}
	if !bytes.Equal(saver.data, artifact.Data) {
		t.Error("saver received different bytes than the artifact")
	}
	if artifact.Totals.Grand != 686.75 {
		t.Errorf("artifact grand total = %v, want 686.75", artifact.Totals.Grand)
	}
	if artifact.ContentType != FormatDocx.ContentType() || artifact.Language != LangES {
		t.Errorf("unexpected artifact metadata %+v", artifact)
	}
}

func TestGenerateBudgetDocument_FailureSkipsSave(t *testing.T) {
	tests := []struct {
		name   string
		budget Budget
		lang   Language
		format ExportFormat
		stage  string
	}{
		{
			name:   "non-finite amount",
			budget: Budget{Labor: []LaborItem{{Cost: math.NaN()}}},
			lang:   LangES,
			format: FormatDocx,
			stage:  "assemble",
		},
		{
			name:   "unsupported language",
			budget: sampleBudget(),
			lang:   "de",
			format: FormatDocx,
			stage:  "assemble",
		},
		{
			name:   "unsupported format",
			budget: sampleBudget(),
			lang:   LangEN,
			format: "odt",
			stage:  "serialize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saver := &recordingSaver{}
			_, err := GenerateBudgetDocument(context.Background(), tt.budget, tt.lang, tt.format, saver)
			if !errors.Is(err, ErrGeneration) {
				t.Fatalf("expected ErrGeneration, got %v", err)
			}
			var genErr *GenerationError
			if !errors.As(err, &genErr) || genErr.Stage != tt.stage {
				t.Errorf("expected stage %q, got %v", tt.stage, err)
			}
			if saver.calls != 0 {
				t.Errorf("saver called %d times after a failed generation", saver.calls)
			}
		})
	}
}

func TestGenerateBudgetDocument_SaveError(t *testing.T) {
	saveErr := errors.New("disk full")
	saver := &recordingSaver{err: saveErr}

	_, err := GenerateBudgetDocument(context.Background(), sampleBudget(), LangEN, FormatPDF, saver)
	if !errors.Is(err, saveErr) {
		t.Fatalf("expected save error to be wrapped, got %v", err)
	}
	if errors.Is(err, ErrGeneration) {
		t.Error("a save failure is not a generation failure")
	}
	if saver.calls != 1 {
		t.Errorf("save should not be retried, got %d calls", saver.calls)
	}
}

func TestGenerateBudgetDocument_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	saver := &recordingSaver{}
	_, err := GenerateBudgetDocument(ctx, sampleBudget(), LangES, FormatDocx, saver)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if saver.calls != 0 {
		t.Error("saver called with a canceled context")
	}
}

func TestRenderBudget_AllFormats(t *testing.T) {
	for _, f := range []ExportFormat{FormatDocx, FormatXLSX, FormatPDF} {
		t.Run(string(f), func(t *testing.T) {
			artifact, err := RenderBudget(sampleBudget(), LangEN, f)
			if err != nil {
				t.Fatalf("RenderBudget() error = %v", err)
			}
			if len(artifact.Data) == 0 {
				t.Error("empty artifact")
			}
			if artifact.FileName != "Cocina_Nueva_en"+f.Extension() {
				t.Errorf("file name = %q", artifact.FileName)
			}
		})
	}
}
