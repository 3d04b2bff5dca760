// Package exercise resolves the loosely-typed exercise payloads stored by the
// dashboard into one of the known input shapes, once, at the boundary.
package exercise

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"coop-budget/internal/model"

	"github.com/go-playground/validator/v10"
)

type Kind string

const (
	KindVariance     Kind = "variance"
	KindOptimization Kind = "optimization"
	KindBudget       Kind = "budget"
)

func (k Kind) Valid() bool {
	switch k {
	case KindVariance, KindOptimization, KindBudget:
		return true
	default:
		return false
	}
}

// VarianceInput is a set of sales lines to compare against plan.
type VarianceInput struct {
	Records []model.ProductVarianceRecord `json:"records" validate:"dive"`
}

// BudgetInput pairs budgeted and realized quarterly sales.
type BudgetInput struct {
	Budgeted []model.SalesFigure `json:"budgeted" validate:"dive"`
	Actual   []model.SalesFigure `json:"actual" validate:"dive"`
}

// Exercise is a tagged union: exactly one payload matches Kind.
type Exercise struct {
	ID        string
	Name      string
	Kind      Kind
	CreatedAt time.Time

	Variance     *VarianceInput
	Optimization *model.PriceOptimizationInput
	Budget       *BudgetInput
}

var ErrInvalidExercise = errors.New("invalid exercise")

var validate = validator.New()

// Validate checks v against its validate tags.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExercise, err)
	}
	return nil
}

type envelope struct {
	Name    string          `json:"name" validate:"required"`
	Kind    Kind            `json:"kind" validate:"required,oneof=variance optimization budget"`
	Payload json.RawMessage `json:"payload"`
}

// Decode parses {"name", "kind", "payload"} into an Exercise. ID and
// CreatedAt are left for the caller.
func Decode(raw []byte) (Exercise, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Exercise{}, fmt.Errorf("%w: %v", ErrInvalidExercise, err)
	}
	if err := validate.Struct(env); err != nil {
		return Exercise{}, fmt.Errorf("%w: %v", ErrInvalidExercise, err)
	}
	return FromPayload(env.Name, env.Kind, env.Payload)
}

// FromPayload builds an Exercise from a kind and its JSON payload.
func FromPayload(name string, kind Kind, payload []byte) (Exercise, error) {
	if len(bytes.TrimSpace(payload)) == 0 || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return Exercise{}, fmt.Errorf("%w: payload is required", ErrInvalidExercise)
	}
	ex := Exercise{Name: name, Kind: kind}
	var target any
	switch kind {
	case KindVariance:
		ex.Variance = &VarianceInput{}
		target = ex.Variance
	case KindOptimization:
		ex.Optimization = &model.PriceOptimizationInput{}
		target = ex.Optimization
	case KindBudget:
		ex.Budget = &BudgetInput{}
		target = ex.Budget
	default:
		return Exercise{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidExercise, kind)
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return Exercise{}, fmt.Errorf("%w: %s payload: %v", ErrInvalidExercise, kind, err)
	}
	if err := Validate(target); err != nil {
		return Exercise{}, fmt.Errorf("%s payload: %w", kind, err)
	}
	return ex, nil
}

// Payload returns the JSON encoding of the active payload.
func (e Exercise) Payload() ([]byte, error) {
	switch e.Kind {
	case KindVariance:
		if e.Variance != nil {
			return json.Marshal(e.Variance)
		}
	case KindOptimization:
		if e.Optimization != nil {
			return json.Marshal(e.Optimization)
		}
	case KindBudget:
		if e.Budget != nil {
			return json.Marshal(e.Budget)
		}
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidExercise, e.Kind)
	}
	return nil, fmt.Errorf("%w: %s exercise has no payload", ErrInvalidExercise, e.Kind)
}
