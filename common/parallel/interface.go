package parallel

import "context"

// Result is the outcome of a single task.
type Result struct {
	Routine int
	Task    int
	Value   interface{}
	err     error
}

// Interface is implemented by work that can be split into independent tasks whose results are
// collected in task order.
type Interface interface {
	ParallelDo(ctx context.Context, routine, task int) (interface{}, error)
	ParallelCollect(result *Result) error
}
