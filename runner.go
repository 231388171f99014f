package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"prngstat/analysis"
)

// AnalysisRunner owns one generator and the Analyzer wrapped around it. The
// generator is never shared with another runner.
type AnalysisRunner struct {
	*zap.SugaredLogger
	name       string
	analyzer   *analysis.Analyzer
	maxSamples int
	reporter   *Reporter
	errchan    chan error
}

func NewAnalysisRunner(spec *GeneratorSpec, n int) (*AnalysisRunner, error) {
	gen, err := spec.Build()
	if err != nil {
		return nil, fmt.Errorf("generator '%s': %w", spec.Name, err)
	}

	logger := Logger().With(zap.Int("id", n), zap.String("generator", spec.Name))

	r := &AnalysisRunner{
		SugaredLogger: logger,
		name:          spec.Name,
		analyzer:      analysis.New(gen, analysis.WithLogger(logger)),
		maxSamples:    global.MaxSamples,
		reporter:      global.Reporter,
		errchan:       global.RunnerError,
	}

	r.Infof("creating runner for %s", spec.Kind)

	return r, nil
}

// Run performs a single analysis unless ctx is already cancelled. Errors go
// to the runner error channel.
func (r *AnalysisRunner) Run(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	default:
	}

	if err := r.Op(); err != nil {
		select {
		case r.errchan <- err:
			// error sent
		default:
			// error chan was full, discard
		}
	}
}

func (r *AnalysisRunner) Op() error {
	r.Debugf("analyzing up to %d samples", r.maxSamples)

	report, err := r.analyzer.Analyze(r.maxSamples)
	if err != nil {
		r.Errorf("analyze: %s", err)
		return fmt.Errorf("generator '%s': %w", r.name, err)
	}

	r.Infof("analyzed %d samples, period %d", report.Count, report.Period)
	r.reporter.Capture(r.name, report)

	return nil
}
