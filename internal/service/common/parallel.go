package common

import (
	"sync"
)

// ParallelExecutor は同時実行数を制限してタスクを実行する
type ParallelExecutor struct {
	maxWorkers int
	wg         sync.WaitGroup
	semaphore  chan struct{}
}

// NewParallelExecutor は新しいParallelExecutorを作成
// maxWorkersが1未満の場合は1として扱う（逐次実行）
func NewParallelExecutor(maxWorkers int) *ParallelExecutor {
	maxWorkers = max(maxWorkers, 1)
	return &ParallelExecutor{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
	}
}

// Execute はタスクを非同期に実行する。同時に動くのは最大maxWorkers個
func (p *ParallelExecutor) Execute(task func()) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.semaphore <- struct{}{}
		defer func() { <-p.semaphore }()
		task()
	}()
}

// Wait はすべてのタスクの完了を待つ
func (p *ParallelExecutor) Wait() {
	p.wg.Wait()
}

// MapOrdered は items の各要素に fn を並列に適用し、入力と同じ順序で結果を返す
// エラーがあった場合は入力順で最初のエラーのみを返し、結果は返さない
func MapOrdered[T, R any](maxWorkers int, items []T, fn func(T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	errs := make([]error, len(items))

	executor := NewParallelExecutor(maxWorkers)
	for i, item := range items {
		executor.Execute(func() {
			results[i], errs[i] = fn(item)
		})
	}
	executor.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
