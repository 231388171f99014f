package main

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Runner is one unit of work started by a RunnerList.
type Runner interface {
	Run(ctx context.Context)
}

type RunnerList struct {
	*zap.SugaredLogger
	runners  []Runner
	parallel bool // one goroutine per runner, or all runners in order on one
	stop     func()
	wg       sync.WaitGroup
}

func NewRunnerList(parallel bool) *RunnerList {
	return &RunnerList{
		SugaredLogger: Logger(),
		runners:       make([]Runner, 0),
		parallel:      parallel,
	}
}

func (rl *RunnerList) AddRunner(r Runner) {
	rl.runners = append(rl.runners, r)
}

// Start launches the runners in the background.
func (rl *RunnerList) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	rl.stop = func() {
		cancel()
		rl.wg.Wait()
	}

	if rl.parallel {
		for _, runner := range rl.runners {
			rl.wg.Add(1)
			go func(r Runner) {
				r.Run(ctx)
				rl.wg.Done()
			}(runner)
		}
		rl.Infof("%d runners started in parallel", len(rl.runners))
		return
	}

	rl.wg.Add(1)
	go func() {
		for _, r := range rl.runners {
			if ctx.Err() != nil {
				break
			}
			r.Run(ctx)
		}
		rl.wg.Done()
	}()
	rl.Infof("%d runners started in sequence", len(rl.runners))
}

// Wait blocks until every runner has returned.
func (rl *RunnerList) Wait() {
	rl.wg.Wait()
}

// Stop cancels runners that have not started yet and waits for the rest.
func (rl *RunnerList) Stop() {
	if rl.stop != nil {
		rl.stop()
		rl.stop = nil
		rl.Infof("stopped")
	}
}
