package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/doccheck/internal/compare"
	"github.com/dgallion1/doccheck/internal/document"
	"github.com/dgallion1/doccheck/internal/parser"
	"github.com/dgallion1/doccheck/internal/store"
)

// Worker processes a single comparison run.
type Worker struct {
	engine    *compare.Engine
	templates *store.Store
	log       *slog.Logger
}

func NewWorker(engine *compare.Engine, templates *store.Store, log *slog.Logger) *Worker {
	return &Worker{
		engine:    engine,
		templates: templates,
		log:       log,
	}
}

// Process runs the full comparison pipeline for a run: extract the filled
// document, load the template, compare section by section. Extraction errors
// fail the run; comparison errors degrade individual verdicts only.
func (w *Worker) Process(ctx context.Context, run *Run) {
	log := w.log.With("run_id", run.ID, "template", run.TemplateName)

	// Phase 1: Extract the filled document.
	run.SetStatus(StatusExtracting, "extracting")
	lines, err := parser.Extract(bytes.NewReader(run.FileData()), run.Filename)
	if err != nil {
		log.Error("extraction failed", "filename", run.Filename, "error", err)
		run.AddError(fmt.Sprintf("extract %s: %s", run.Filename, err))
		run.SetStatus(StatusFailed, "extracting")
		return
	}
	filledText := document.Join(lines)

	// Phase 2: Load the template.
	tmpl, err := w.templates.Load(run.TemplateName)
	if err != nil {
		log.Error("template load failed", "error", err)
		run.AddError(fmt.Sprintf("template %s: %s", run.TemplateName, err))
		run.SetStatus(StatusFailed, "loading")
		return
	}
	run.SetTotalSections(len(tmpl.Sections))

	// Phase 3: Compare. Always yields one verdict per section.
	run.SetStatus(StatusComparing, "comparing")
	verdicts := w.engine.Compare(ctx, tmpl, filledText, run.IncrSectionsCompared)

	degraded := 0
	for _, v := range verdicts {
		if v.Degraded {
			degraded++
		}
	}
	if degraded > 0 {
		run.AddError(fmt.Sprintf("%d of %d sections had degraded verdicts", degraded, len(verdicts)))
	}

	run.SetVerdicts(verdicts)
	run.SetStatus(StatusCompleted, "done")
	log.Info("comparison complete", "sections", len(verdicts), "degraded", degraded)
}
