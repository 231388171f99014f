package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	"prngstat/analysis"
)

type ReporterConfig struct {
	Out     io.Writer // summary output
	CSVPath string    // bit frequency table; empty disables it
}

// Result is one finished analysis.
type Result struct {
	Name   string
	Report *analysis.Report
}

// Reporter prints results as runners hand them in and optionally appends
// them to a CSV file.
type Reporter struct {
	*zap.SugaredLogger
	config  *ReporterConfig
	stop    func()
	results chan *Result
	csv     *os.File
	written int
}

func NewReporter(config *ReporterConfig) (r *Reporter, err error) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	r = &Reporter{
		SugaredLogger: Logger(),
		config:        config,
		stop: func() {
			cancel()
			wg.Wait()
		},
		results: make(chan *Result, 16),
	}

	if r.config.Out == nil {
		r.config.Out = os.Stdout
	}

	if err = r.openFiles(); err != nil {
		cancel()
		return nil, err
	}

	wg.Add(1)
	go func() {
		r.Run(ctx)
		wg.Done()
	}()

	return
}

func (r *Reporter) openFiles() (err error) {
	if r.config.CSVPath == "" {
		return nil
	}

	r.csv, err = os.OpenFile(r.config.CSVPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)

	if err != nil {
		r.Errorf("failed creating bit frequency log: %s", err)
		return fmt.Errorf("failed creating bit frequency log: %w", err)
	}

	_, err = fmt.Fprintf(r.csv, "# name, %s, bit0..bitN\n", analysis.Headers(0))

	if err != nil {
		_ = r.csv.Close()
		r.csv = nil
		r.Errorf("failed writing to bit frequency log: %s", err)
		return fmt.Errorf("failed writing to bit frequency log: %w", err)
	}

	r.Infof("writing bit frequencies to %s", r.config.CSVPath)
	return nil
}

// Stop waits for every captured result to be written, then closes files.
func (r *Reporter) Stop() {
	r.stop()
	r.Infof("stopped after %d results", r.written)
}

// Capture queues a finished analysis for output.
func (r *Reporter) Capture(name string, report *analysis.Report) {
	r.results <- &Result{Name: name, Report: report}
}

func (r *Reporter) Run(ctx context.Context) {
	defer func() {
		if r.csv != nil {
			r.csv.Close()
			r.csv = nil
		}
	}()

	for {
		select {
		case <-ctx.Done():
			// Flush whatever was captured before the stop.
			for {
				select {
				case res := <-r.results:
					r.write(res)
				default:
					return
				}
			}

		case res := <-r.results:
			r.write(res)
		}
	}
}

func (r *Reporter) write(res *Result) {
	fmt.Fprintf(r.config.Out, "== %s (%s)\n%s\n", res.Name, res.Report.Kind, res.Report)

	if r.csv != nil {
		if _, err := fmt.Fprintf(r.csv, "%s, %s\n", res.Name, res.Report.Row()); err != nil {
			r.Errorf("failed writing to bit frequency log: %s", err)
		}
	}

	r.written++
}
