package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/culater/internal/platform/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/louisbranch/culater/internal/services/dashboard/coordinator"

// Step is one named unit of a Pipeline.
type Step struct {
	Name string
	Run  func(context.Context) error
}

// StepResult records how a step finished. Skipped steps are not reported.
type StepResult struct {
	Name string
	Err  error
}

// Report summarises a pipeline run.
type Report struct {
	Steps  []StepResult
	Halted bool
}

// Failed returns the results whose step returned an error.
func (r Report) Failed() []StepResult {
	var failed []StepResult
	for _, step := range r.Steps {
		if step.Err != nil {
			failed = append(failed, step)
		}
	}
	return failed
}

// Pipeline runs steps strictly in order. A step starts only after the
// previous one returned and the optional delay elapsed.
type Pipeline struct {
	Steps []Step
	// Delay is waited between consecutive steps.
	Delay time.Duration
	// Halt decides whether a step failure stops the run. Nil never halts.
	Halt func(error) bool
}

// Run executes the pipeline. It returns an error only when a step failure
// halted the run or ctx ended while waiting; other step failures are in the
// report.
func (p Pipeline) Run(ctx context.Context) (Report, error) {
	tracer := otel.Tracer(tracerName)
	report := Report{Steps: make([]StepResult, 0, len(p.Steps))}
	for i, step := range p.Steps {
		if i > 0 && p.Delay > 0 {
			if err := wait(ctx, p.Delay); err != nil {
				report.Halted = true
				return report, err
			}
		}
		stepCtx, span := tracer.Start(ctx, "pipeline."+step.Name)
		span.SetAttributes(attribute.Int("pipeline.step", i))
		err := step.Run(stepCtx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		report.Steps = append(report.Steps, StepResult{Name: step.Name, Err: err})
		if err != nil && p.Halt != nil && p.Halt(err) {
			report.Halted = true
			return report, fmt.Errorf("%s: %w", step.Name, err)
		}
	}
	return report, nil
}

func wait(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
