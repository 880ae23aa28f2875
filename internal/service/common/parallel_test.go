package common

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelExecutor_LimitsConcurrency(t *testing.T) {
	executor := NewParallelExecutor(2)

	var running, peak int32
	var mu sync.Mutex
	done := make([]bool, 10)

	for i := range done {
		executor.Execute(func() {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			mu.Lock()
			done[i] = true
			mu.Unlock()
			atomic.AddInt32(&running, -1)
		})
	}
	executor.Wait()

	assert.LessOrEqual(t, peak, int32(2))
	for i, d := range done {
		assert.True(t, d, "task %d was not executed", i)
	}
}

func TestNewParallelExecutor_ZeroWorkersRunsSequentially(t *testing.T) {
	executor := NewParallelExecutor(0)
	assert.Equal(t, 1, executor.maxWorkers)

	count := 0
	for i := 0; i < 3; i++ {
		executor.Execute(func() { count++ })
	}
	executor.Wait()
	assert.Equal(t, 3, count)
}

func TestMapOrdered_KeepsInputOrder(t *testing.T) {
	items := []int{5, 1, 4, 2, 3}

	results, err := MapOrdered(3, items, func(n int) (int, error) {
		return n * 10, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []int{50, 10, 40, 20, 30}, results)
}

func TestMapOrdered_ReturnsFirstErrorByIndex(t *testing.T) {
	errSecond := errors.New("second")
	errFourth := errors.New("fourth")

	results, err := MapOrdered(4, []int{1, 2, 3, 4}, func(n int) (string, error) {
		switch n {
		case 2:
			return "", errSecond
		case 4:
			return "", errFourth
		}
		return "ok", nil
	})

	assert.ErrorIs(t, err, errSecond)
	assert.Nil(t, results)
}
