// Package offers decides which special offers apply to a request. Each offer
// carries a CEL condition evaluated against the resolved region and locale.
package offers

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/aiclases-pricing/internal/model"
)

// Conditions are tiny predicates; anything above this is a catalog mistake.
const costLimit = 10000

type compiledOffer struct {
	offer   model.SpecialOffer
	program cel.Program
}

// Engine is immutable after NewEngine and safe for concurrent use.
type Engine struct {
	offers []compiledOffer
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("region", cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable("locale", cel.StringType),
	)
}

// NewEngine compiles every offer condition. A condition that does not compile
// or does not yield a bool rejects the whole set.
func NewEngine(offers []model.SpecialOffer) (*Engine, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	compiled := make([]compiledOffer, 0, len(offers))
	for _, o := range offers {
		ast, issues := env.Compile(o.Condition)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("compile condition of offer %s: %w", o.ID, issues.Err())
		}
		if !ast.OutputType().IsExactType(cel.BoolType) {
			return nil, fmt.Errorf("condition of offer %s must be a bool expression, got %s", o.ID, ast.OutputType())
		}

		prog, err := env.Program(ast, cel.CostLimit(costLimit))
		if err != nil {
			return nil, fmt.Errorf("build program for offer %s: %w", o.ID, err)
		}
		compiled = append(compiled, compiledOffer{offer: o, program: prog})
	}

	return &Engine{offers: compiled}, nil
}

// For returns the offers whose condition holds, in catalog order. Evaluation
// errors make an offer ineligible.
func (e *Engine) For(region model.Region, locale string) []model.SpecialOffer {
	facts := map[string]any{
		"region": map[string]string{
			"id":       region.ID,
			"name":     region.Name,
			"currency": region.Currency,
		},
		"locale": locale,
	}

	eligible := make([]model.SpecialOffer, 0)
	for _, c := range e.offers {
		out, _, err := c.program.Eval(facts)
		if err != nil {
			log.Warn().Err(err).Str("offer", c.offer.ID).Str("region", region.ID).Msg("offer condition failed")
			continue
		}
		if matched, ok := out.Value().(bool); ok && matched {
			eligible = append(eligible, c.offer)
		}
	}
	return eligible
}

func (e *Engine) Len() int {
	return len(e.offers)
}
