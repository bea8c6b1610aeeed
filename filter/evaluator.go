package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the chunk size below which evaluation stays sequential
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator implements Evaluator, splitting large inputs into
// chunks evaluated in parallel
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate returns the scores matching filter, preserving input order
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, scores []Score) ([]Score, error) {
	if len(scores) == 0 {
		return []Score{}, nil
	}

	// For small lists, don't bother with concurrency
	if len(scores) < e.batchSize {
		return evaluateSequential(filter, scores), nil
	}

	chunkSize := max(len(scores)/e.workerCount, e.batchSize)
	chunks := make([][]Score, (len(scores)+chunkSize-1)/chunkSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(scores))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunks[i] = evaluateSequential(filter, scores[start:end])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	matches := make([]Score, 0, total)
	for _, c := range chunks {
		matches = append(matches, c...)
	}
	return matches, nil
}

func evaluateSequential(filter CompiledFilter, scores []Score) []Score {
	matches := make([]Score, 0, len(scores)/4)
	for _, s := range scores {
		if filter.Evaluate(s) {
			matches = append(matches, s)
		}
	}
	return matches
}

// Select returns the records whose score view matches filter, in order.
// view converts a record, e.g. FromV2Score.
func Select[T any](ctx context.Context, e Evaluator, filter CompiledFilter, records []T, view func(T) Score) ([]T, error) {
	scores := make([]Score, len(records))
	for i, r := range records {
		scores[i] = view(r)
		scores[i].pos = i
	}

	matches, err := e.Evaluate(ctx, filter, scores)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(matches))
	for _, s := range matches {
		out = append(out, records[s.pos])
	}
	return out, nil
}
