package parallel

import (
	"context"
	"runtime"
	"sync"
)

// SerialOption configures Serial.
type SerialOption struct {
	Routines int // number of worker routines, GOMAXPROCS if 0
}

// Normalize keeps 0 < routines <= tasks.
func (opt *SerialOption) Normalize(tasks int) {
	if opt.Routines <= 0 {
		opt.Routines = runtime.GOMAXPROCS(0)
	}

	if opt.Routines > tasks {
		opt.Routines = tasks
	}
}

// Serial runs tasks on a pool of routines and collects their results in task order. It stops at the
// first error, either returned by a task or by the collector, and waits for all routines to exit.
func Serial(ctx context.Context, parallelizable Interface, tasks int, option ...SerialOption) error {
	if tasks <= 0 {
		return nil
	}

	var opt SerialOption
	if len(option) > 0 {
		opt = option[0]
	}
	opt.Normalize(tasks)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// one slot per task, so that routines never block on a result
	results := make([]chan *Result, tasks)
	for i := range results {
		results[i] = make(chan *Result, 1)
	}

	taskCh := make(chan int)
	go dispatch(ctx, taskCh, tasks)

	var wg sync.WaitGroup
	for i := 0; i < opt.Routines; i++ {
		wg.Add(1)
		go work(ctx, i, parallelizable, taskCh, results, &wg)
	}

	err := collect(ctx, parallelizable, results)

	// notify all routines to terminate
	cancel()
	wg.Wait()

	return err
}

func dispatch(ctx context.Context, taskCh chan<- int, tasks int) {
	defer close(taskCh)

	for i := 0; i < tasks; i++ {
		select {
		case <-ctx.Done():
			return
		case taskCh <- i:
		}
	}
}

func work(ctx context.Context, routine int, parallelizable Interface, taskCh <-chan int, results []chan *Result, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range taskCh {
		val, err := parallelizable.ParallelDo(ctx, routine, task)
		results[task] <- &Result{routine, task, val, err}
	}
}

func collect(ctx context.Context, parallelizable Interface, results []chan *Result) error {
	for _, ch := range results {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case result := <-ch:
			if result.err != nil {
				return result.err
			}

			if err := parallelizable.ParallelCollect(result); err != nil {
				return err
			}
		}
	}

	return nil
}
