package cel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvaluator(t *testing.T) {
	eval, err := NewEvaluator()
	require.NoError(t, err)
	assert.NotNil(t, eval)
}

func TestValidateFilterExpression(t *testing.T) {
	eval, err := NewEvaluator()
	require.NoError(t, err)

	tests := []struct {
		name      string
		expr      string
		wantError bool
	}{
		{
			name:      "field equality",
			expr:      `to == filter["to"]`,
			wantError: false,
		},
		{
			name:      "conjunction",
			expr:      `to == filter["to"] && date == filter["date"]`,
			wantError: false,
		},
		{
			name:      "non-bool expression",
			expr:      `title`,
			wantError: true,
		},
		{
			name:      "invalid syntax",
			expr:      `invalid syntax here!!!`,
			wantError: true,
		},
		{
			name:      "undefined variable",
			expr:      `body == "test"`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := eval.ValidateFilterExpression(tt.expr)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCompileFilter_Caches(t *testing.T) {
	eval, err := NewEvaluator()
	require.NoError(t, err)

	expr := `from == filter["from"]`
	first, err := eval.CompileFilter(expr)
	require.NoError(t, err)
	second, err := eval.CompileFilter(expr)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	_, err = eval.CompileFilter(`title`)
	assert.Error(t, err)
}

func TestEvaluateFilter(t *testing.T) {
	eval, err := NewEvaluator()
	require.NoError(t, err)

	program, err := eval.CompileFilter(`to == filter["to"] && title == filter["title"]`)
	require.NoError(t, err)

	tests := []struct {
		name  string
		to    string
		title string
		want  bool
	}{
		{"both match", "alice", "hi", true},
		{"one differs", "alice", "bye", false},
		{"none match", "bob", "bye", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := map[string]interface{}{
				VarTo:    tt.to,
				VarFrom:  "",
				VarDate:  "",
				VarTitle: tt.title,
				VarFilter: map[string]string{
					"to":    "alice",
					"title": "hi",
				},
			}

			got, err := eval.EvaluateFilter(context.Background(), program, vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
