package filter

import (
	"context"
	"fmt"
	"strings"

	"mqbroker/internal/message"
	"mqbroker/pkg/cel"
)

var recordVars = map[string]string{
	KeyTo:    cel.VarTo,
	KeyFrom:  cel.VarFrom,
	KeyDate:  cel.VarDate,
	KeyTitle: cel.VarTitle,
}

// Engine evaluates filters as CEL conjunctions over record fields.
type Engine struct {
	evaluator *cel.Evaluator
}

func NewEngine() (*Engine, error) {
	evaluator, err := cel.NewEvaluator()
	if err != nil {
		return nil, err
	}
	return &Engine{evaluator: evaluator}, nil
}

// Expression renders f as a CEL expression. Filter values are bound at
// evaluation time, so the expression depends only on the key set.
func Expression(f Filter) string {
	keys := f.Present()
	if len(keys) == 0 {
		return "true"
	}

	terms := make([]string, len(keys))
	for i, k := range keys {
		terms[i] = fmt.Sprintf("%s == %s[%q]", recordVars[k], cel.VarFilter, k)
	}
	return strings.Join(terms, " && ")
}

// Apply returns the records matching every key of f, in their original order.
func (e *Engine) Apply(ctx context.Context, f Filter, records []message.Record) ([]message.Record, error) {
	program, err := e.evaluator.CompileFilter(Expression(f))
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(f))
	for k, v := range f {
		values[k] = v
	}

	var matched []message.Record
	for _, rec := range records {
		ok, err := e.evaluator.EvaluateFilter(ctx, program, map[string]interface{}{
			cel.VarTo:     rec.To,
			cel.VarFrom:   rec.From,
			cel.VarDate:   rec.Day(),
			cel.VarTitle:  rec.Title,
			cel.VarFilter: values,
		})
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, rec)
		}
	}

	return matched, nil
}
