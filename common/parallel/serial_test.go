package parallel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type square struct {
	t      *testing.T
	result []int
	failAt int
}

func (s *square) ParallelDo(ctx context.Context, routine, task int) (interface{}, error) {
	if task == s.failAt {
		return nil, errors.New("task failed")
	}

	// finish out of order
	time.Sleep(time.Duration(task%3) * time.Millisecond)

	return task * task, nil
}

func (s *square) ParallelCollect(result *Result) error {
	assert.Nil(s.t, result.err)
	assert.Equal(s.t, len(s.result), result.Task)
	assert.Equal(s.t, result.Task*result.Task, result.Value.(int))

	s.result = append(s.result, result.Value.(int))

	return nil
}

func TestSerial(t *testing.T) {
	s := square{t: t, failAt: -1}

	tasks := 100

	err := Serial(context.Background(), &s, tasks, SerialOption{Routines: 4})
	assert.Nil(t, err)
	assert.Equal(t, tasks, len(s.result))

	for i := 0; i < tasks; i++ {
		assert.Equal(t, i*i, s.result[i])
	}
}

func TestSerialError(t *testing.T) {
	s := square{t: t, failAt: 10}

	err := Serial(context.Background(), &s, 100, SerialOption{Routines: 4})
	assert.EqualError(t, err, "task failed")
	assert.Equal(t, 10, len(s.result))
}

func TestSerialNoTasks(t *testing.T) {
	s := square{t: t, failAt: -1}

	assert.Nil(t, Serial(context.Background(), &s, 0))
	assert.Empty(t, s.result)
}

func TestNormalize(t *testing.T) {
	opt := SerialOption{Routines: 8}
	opt.Normalize(3)
	assert.Equal(t, 3, opt.Routines)

	opt = SerialOption{}
	opt.Normalize(1000)
	assert.Greater(t, opt.Routines, 0)
}
