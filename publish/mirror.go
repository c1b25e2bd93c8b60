package publish

import (
	"context"

	"github.com/ckhero/content-tree/common/parallel"
	"github.com/pkg/errors"
)

// MirrorPublisher publishes the same content to several targets concurrently, e.g. a gateway per
// viewer host. The publish succeeds only if every target accepted the content, and the result of
// the first target is returned.
type MirrorPublisher struct {
	publishers []Publisher
	option     parallel.SerialOption
}

// NewMirrorPublisher creates a publisher mirroring to all publishers.
func NewMirrorPublisher(publishers []Publisher, option ...parallel.SerialOption) *MirrorPublisher {
	var opt parallel.SerialOption
	if len(option) > 0 {
		opt = option[0]
	}

	return &MirrorPublisher{publishers, opt}
}

// Publish implements the Publisher interface.
func (p *MirrorPublisher) Publish(ctx context.Context, content string) (*Result, error) {
	if len(p.publishers) == 0 {
		return nil, errors.New("no publish target")
	}

	executor := mirrorExecutor{
		publishers: p.publishers,
		content:    content,
	}

	if err := parallel.Serial(ctx, &executor, len(p.publishers), p.option); err != nil {
		return nil, err
	}

	return executor.results[0], nil
}

type mirrorExecutor struct {
	publishers []Publisher
	content    string
	results    []*Result
}

func (executor *mirrorExecutor) ParallelDo(ctx context.Context, routine, task int) (interface{}, error) {
	return executor.publishers[task].Publish(ctx, executor.content)
}

func (executor *mirrorExecutor) ParallelCollect(result *parallel.Result) error {
	executor.results = append(executor.results, result.Value.(*Result))
	return nil
}
