package output

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
	"gonum.org/v1/gonum/floats"
)

// Derived evaluates user-supplied govaluate expressions over a snapshot's
// base scalar fields, the same expression-over-named-variables model an
// Outputter (io.go's NewOutputter) applies to pollutant concentrations —
// here the base variables are U, V, W, P, and T instead of species
// names.
type Derived struct {
	exprs map[string]*govaluate.EvaluableExpression
	funcs map[string]govaluate.ExpressionFunction
}

// NewDerived compiles one expression per requested output name. Passing a
// nil or empty map is valid; Evaluate then returns no derived columns.
func NewDerived(expressions map[string]string) (*Derived, error) {
	funcs := map[string]govaluate.ExpressionFunction{
		"exp": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("output: exp takes 1 argument, got %d", len(args))
			}
			return math.Exp(args[0].(float64)), nil
		},
		"log": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("output: log takes 1 argument, got %d", len(args))
			}
			return math.Log(args[0].(float64)), nil
		},
		"sqrt": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("output: sqrt takes 1 argument, got %d", len(args))
			}
			return math.Sqrt(args[0].(float64)), nil
		},
		"mean": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("output: mean takes 1 argument, got %d", len(args))
			}
			vals, ok := args[0].([]float64)
			if !ok {
				return nil, fmt.Errorf("output: mean requires a field argument")
			}
			return floats.Sum(vals) / float64(len(vals)), nil
		},
	}

	d := &Derived{exprs: map[string]*govaluate.EvaluableExpression{}, funcs: funcs}
	for name, src := range expressions {
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(src, funcs)
		if err != nil {
			return nil, fmt.Errorf("output: compiling derived variable %q: %w", name, err)
		}
		d.exprs[name] = expr
	}
	return d, nil
}

// Evaluate runs every compiled expression against one cell's base
// variables and returns the resulting named scalars.
func (d *Derived) Evaluate(c *cellCentered, idx int) (map[string]float64, error) {
	if len(d.exprs) == 0 {
		return nil, nil
	}
	params := map[string]interface{}{
		"U": c.u[idx], "V": c.v[idx], "W": c.w[idx],
		"P": c.p[idx], "T": c.t[idx],
	}
	out := make(map[string]float64, len(d.exprs))
	for name, expr := range d.exprs {
		v, err := expr.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("output: evaluating %q: %w", name, err)
		}
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("output: %q did not evaluate to a number", name)
		}
		out[name] = f
	}
	return out, nil
}
