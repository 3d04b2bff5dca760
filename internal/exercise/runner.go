package exercise

import (
	"fmt"
	"time"

	"coop-budget/internal/analysis"
	"coop-budget/internal/model"

	"github.com/google/uuid"
)

// Outcome is the result of running one exercise. Only the fields for the
// exercise's kind are set.
type Outcome struct {
	ID         string
	ExerciseID string
	Name       string
	Kind       Kind
	CreatedAt  time.Time

	Portfolio    *analysis.Portfolio
	Ranking      []analysis.RankedVariance
	Optimization *model.OptimizationResult
	Comparison   []analysis.SegmentVariance
	Summary      *analysis.SegmentSummary
}

type Runner interface {
	Kind() Kind
	Run(ex Exercise) (Outcome, error)
}

type varianceRunner struct{}

func (varianceRunner) Kind() Kind { return KindVariance }

func (varianceRunner) Run(ex Exercise) (Outcome, error) {
	if ex.Variance == nil {
		return Outcome{}, fmt.Errorf("%w: variance exercise has no payload", ErrInvalidExercise)
	}
	p := analysis.AggregateVariances(ex.Variance.Records)
	return Outcome{
		Portfolio: &p,
		Ranking:   analysis.RankByImpact(p),
	}, nil
}

type optimizationRunner struct{}

func (optimizationRunner) Kind() Kind { return KindOptimization }

func (optimizationRunner) Run(ex Exercise) (Outcome, error) {
	if ex.Optimization == nil {
		return Outcome{}, fmt.Errorf("%w: optimization exercise has no payload", ErrInvalidExercise)
	}
	res, err := analysis.OptimizePrice(*ex.Optimization)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Optimization: &res}, nil
}

type budgetRunner struct{}

func (budgetRunner) Kind() Kind { return KindBudget }

func (budgetRunner) Run(ex Exercise) (Outcome, error) {
	if ex.Budget == nil {
		return Outcome{}, fmt.Errorf("%w: budget exercise has no payload", ErrInvalidExercise)
	}
	rows := analysis.CompareBudgetToActual(ex.Budget.Budgeted, ex.Budget.Actual)
	s := analysis.SummarizeBySegment(rows)
	return Outcome{
		Comparison: rows,
		Summary:    &s,
	}, nil
}

var runners = map[Kind]Runner{
	KindVariance:     varianceRunner{},
	KindOptimization: optimizationRunner{},
	KindBudget:       budgetRunner{},
}

// RunnerFor returns the runner registered for kind.
func RunnerFor(kind Kind) (Runner, bool) {
	r, ok := runners[kind]
	return r, ok
}

// Run dispatches ex to its runner and stamps the outcome with a fresh ID.
func Run(ex Exercise) (Outcome, error) {
	r, ok := RunnerFor(ex.Kind)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidExercise, ex.Kind)
	}
	out, err := r.Run(ex)
	if err != nil {
		return Outcome{}, err
	}
	out.ID = uuid.NewString()
	out.ExerciseID = ex.ID
	out.Name = ex.Name
	out.Kind = ex.Kind
	out.CreatedAt = time.Now().UTC()
	return out, nil
}
