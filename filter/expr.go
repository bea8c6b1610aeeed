package filter

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/rcoplo/osu-api-go/osu"
)

// rankOrder lists grades from worst to best. SH and XH are the silver
// variants awarded with Hidden or Flashlight.
var rankOrder = []string{"F", "D", "C", "B", "A", "S", "SH", "X", "XH"}

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[CompiledFilter]
}

// Compile compiles an expression into an executable filter. The expression
// is type-checked against the score variables, so `pp > "a"` or an unknown
// variable fail here rather than at evaluation.
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(createRuntimeEnvironment(Score{}, c.helperFuncs)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Evaluate evaluates the filter against a score. A runtime error, such as
// a custom helper failing, counts as no match.
func (f *exprFilter) Evaluate(score Score) bool {
	result, err := expr.Run(f.program, createRuntimeEnvironment(score, f.helpers))
	if err != nil {
		return false
	}
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the helpers that do not depend on a score
func createHelperFunctions() map[string]any {
	return map[string]any{
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
		"parseDate": func(dateStr string) time.Time {
			t, _ := time.Parse("2006-01-02", dateStr)
			return t
		},
	}
}

// createRuntimeEnvironment exposes a score's fields and score-bound helpers
// to an expression
func createRuntimeEnvironment(score Score, helpers map[string]any) map[string]any {
	env := make(map[string]any, 32)
	maps.Copy(env, helpers)

	env["scoreID"] = score.ScoreID
	env["beatmap"] = score.BeatmapID
	env["user"] = score.UserID
	env["score"] = score.Score
	env["combo"] = score.MaxCombo
	env["n300"] = score.Count300
	env["n100"] = score.Count100
	env["n50"] = score.Count50
	env["misses"] = score.CountMiss
	env["katu"] = score.CountKatu
	env["geki"] = score.CountGeki
	env["perfect"] = score.Perfect
	env["passed"] = score.Passed
	env["rank"] = score.Rank
	env["pp"] = score.PP
	env["accuracy"] = score.Accuracy * 100
	env["mods"] = score.Mods.Strings()
	env["mode"] = score.Mode.String()
	env["playedAt"] = score.Date

	env["hasMod"] = createHasModFunc(score.Mods)
	env["modsExactly"] = createModsExactlyFunc(score.Mods)
	env["rankAtLeast"] = createRankAtLeastFunc(score.Rank)

	return env
}

func createHasModFunc(mods osu.Mods) func(string) bool {
	return func(acronym string) bool {
		m, err := osu.ParseMod(acronym)
		if err != nil {
			return false
		}
		return mods.Has(m)
	}
}

// createModsExactlyFunc compares the set of mods, ignoring order. "NM" or
// an empty string match a play without mods.
func createModsExactlyFunc(mods osu.Mods) func(string) bool {
	have := setOf(mods)
	return func(list string) bool {
		want, err := osu.ParseMods(list)
		if err != nil {
			return false
		}
		return maps.Equal(have, setOf(want))
	}
}

func setOf(mods osu.Mods) map[osu.Mod]struct{} {
	set := make(map[osu.Mod]struct{}, len(mods))
	for _, m := range mods {
		if m == osu.NoMod || m.Symbolic() {
			continue
		}
		set[m] = struct{}{}
	}
	return set
}

func createRankAtLeastFunc(rank string) func(string) bool {
	have := slices.Index(rankOrder, strings.ToUpper(rank))
	return func(floor string) bool {
		want := slices.Index(rankOrder, strings.ToUpper(floor))
		return have >= 0 && want >= 0 && have >= want
	}
}
