package pipeline

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

// Stage is one unit of submission work. Required stages short-circuit the
// pipeline on failure; a failure in any stage skips the remaining stages, but
// only a required failure makes the submission itself fail.
type Stage struct {
	Name     string
	Label    string
	Required bool
	Run      func(ctx context.Context) error
}

// StageResult records one stage's outcome. Ran is false for stages skipped
// after an earlier failure.
type StageResult struct {
	Name     string
	Required bool
	Ran      bool
	Err      error
}

// Failed reports whether the stage ran and returned an error.
func (r StageResult) Failed() bool {
	return r.Ran && r.Err != nil
}

const tracerName = "github.com/harborlight/intake/internal/pipeline"

// runStages executes stages strictly in order. Each stage runs inside its own
// trace span and drives the tracker through loading and then complete or
// error; stages skipped after a failure keep their pending status.
func runStages(ctx context.Context, stages []Stage, tracker *Tracker) []StageResult {
	tracer := otel.Tracer(tracerName)
	results := make([]StageResult, 0, len(stages))

	halted := false
	for _, stage := range stages {
		if halted {
			results = append(results, StageResult{Name: stage.Name, Required: stage.Required})
			continue
		}

		tracker.Set(stage.Name, StatusLoading)
		stageCtx, span := tracer.Start(ctx, "pipeline."+stage.Name)
		err := stage.Run(stageCtx)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()

		results = append(results, StageResult{Name: stage.Name, Required: stage.Required, Ran: true, Err: err})
		if err != nil {
			tracker.Set(stage.Name, StatusError)
			halted = true
			continue
		}
		tracker.Set(stage.Name, StatusComplete)
	}
	return results
}
