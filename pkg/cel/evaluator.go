package cel

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// Variables bound for every evaluation. Record fields are plain strings and
// date holds the record's timestamp reduced to DD.MM.YYYY.
const (
	VarTo     = "to"
	VarFrom   = "from"
	VarDate   = "date"
	VarTitle  = "title"
	VarFilter = "filter"
)

type Evaluator struct {
	env      *cel.Env
	programs sync.Map // expression -> cel.Program
}

func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable(VarTo, cel.StringType),
		cel.Variable(VarFrom, cel.StringType),
		cel.Variable(VarDate, cel.StringType),
		cel.Variable(VarTitle, cel.StringType),
		cel.Variable(VarFilter, cel.MapType(cel.StringType, cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return &Evaluator{env: env}, nil
}

func (e *Evaluator) ValidateFilterExpression(expression string) error {
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("CEL expression validation failed: %w", issues.Err())
	}

	if ast.OutputType() != cel.BoolType {
		return fmt.Errorf("filter expression must return bool, got %v", ast.OutputType())
	}

	return nil
}

// CompileFilter returns the program for expression, compiling it on first
// use. Programs are safe for concurrent evaluation.
func (e *Evaluator) CompileFilter(expression string) (cel.Program, error) {
	if cached, ok := e.programs.Load(expression); ok {
		return cached.(cel.Program), nil
	}

	if err := e.ValidateFilterExpression(expression); err != nil {
		return nil, err
	}

	program, err := e.CompileExpression(expression)
	if err != nil {
		return nil, err
	}

	actual, _ := e.programs.LoadOrStore(expression, program)
	return actual.(cel.Program), nil
}

func (e *Evaluator) EvaluateFilter(ctx context.Context, program cel.Program, vars map[string]interface{}) (bool, error) {
	result, _, err := program.ContextEval(ctx, vars)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate CEL expression: %w", err)
	}

	boolVal, ok := result.Value().(bool)
	if !ok {
		return false, fmt.Errorf("CEL expression did not return bool, got %T", result.Value())
	}

	return boolVal, nil
}

func (e *Evaluator) CompileExpression(expression string) (cel.Program, error) {
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile CEL expression: %w", issues.Err())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}

	return program, nil
}
