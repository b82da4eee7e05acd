package matching

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
)

const (
	DefaultMinScore = 50
	DefaultWorkers  = 8
)

// CandidateFailure - маршрут, который не удалось оценить из-за некорректных данных.
type CandidateFailure struct {
	RouteID string
	Err     error
}

// Evaluation - итог оценки пула кандидатов для одной заявки.
type Evaluation struct {
	Results    []entities.MatchResult
	Rejected   map[entities.IncompatibleReason]int
	BelowScore int
	Failures   []CandidateFailure
}

type candidate struct {
	result   *entities.MatchResult
	rejected entities.IncompatibleReason
	err      error
}

// Engine - чистый оркестратор: совместимость, оценка, отсев и сортировка.
// Кандидаты независимы, поэтому оцениваются параллельно.
type Engine struct {
	evaluator CompatibilityEvaluator
	scorer    MatchScorer
	minScore  int
	workers   int
}

func NewEngine(evaluator CompatibilityEvaluator, scorer MatchScorer, minScore, workers int) *Engine {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Engine{
		evaluator: evaluator,
		scorer:    scorer,
		minScore:  minScore,
		workers:   workers,
	}
}

func (e *Engine) EvaluateAndScoreMatches(
	ctx context.Context,
	a entities.Announcement,
	routes []entities.CourierRoute,
) (*Evaluation, error) {
	candidates := make([]candidate, len(routes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := range routes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			candidates[i] = e.evaluate(a, routes[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluate candidates: %w", err)
	}

	evaluation := &Evaluation{
		Results:  make([]entities.MatchResult, 0, len(routes)),
		Rejected: make(map[entities.IncompatibleReason]int),
	}

	for i, c := range candidates {
		switch {
		case c.err != nil:
			evaluation.Failures = append(evaluation.Failures, CandidateFailure{RouteID: routes[i].ID, Err: c.err})
		case c.result == nil:
			evaluation.Rejected[c.rejected]++
		case c.result.Score < e.minScore:
			evaluation.BelowScore++
		default:
			evaluation.Results = append(evaluation.Results, *c.result)
		}
	}

	slices.SortStableFunc(evaluation.Results, compareResults)

	return evaluation, nil
}

func (e *Engine) evaluate(a entities.Announcement, r entities.CourierRoute) candidate {
	verdict, err := e.evaluator.Evaluate(a, r)
	if err != nil {
		return candidate{err: err}
	}

	switch v := verdict.(type) {
	case entities.Compatible:
		result := e.scorer.Score(a, r, v)
		return candidate{result: &result}
	case entities.Incompatible:
		return candidate{rejected: v.Reason}
	default:
		return candidate{err: fmt.Errorf("unexpected verdict %T", verdict)}
	}
}

// compareResults: по убыванию оценки, затем меньший объезд,
// меньшая цена и ID маршрута для стабильного порядка.
func compareResults(a, b entities.MatchResult) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(a.DetourPercent, b.DetourPercent); c != 0 {
		return c
	}
	if c := cmp.Compare(a.EstimatedPrice, b.EstimatedPrice); c != 0 {
		return c
	}
	return cmp.Compare(a.RouteID, b.RouteID)
}
