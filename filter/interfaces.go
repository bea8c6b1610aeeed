package filter

import (
	"context"
)

// Filter defines the basic interface for score filters
type Filter interface {
	// Evaluate checks if a score matches the filter criteria
	Evaluate(score Score) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// Evaluator evaluates filters against scores
type Evaluator interface {
	// Evaluate returns the scores that match filter, in input order
	Evaluate(ctx context.Context, filter CompiledFilter, scores []Score) ([]Score, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}
