package filter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mqbroker/internal/message"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Filter
	}{
		{
			name: "single key",
			raw:  `{"filter": {"to": "alice"}}`,
			want: Filter{"to": "alice"},
		},
		{
			name: "all keys",
			raw:  `{"filter": {"to": "a", "from": "b", "date": "01.05.2023", "title": "t"}}`,
			want: Filter{"to": "a", "from": "b", "date": "01.05.2023", "title": "t"},
		},
		{
			name: "empty string value",
			raw:  `{"filter": {"title": ""}}`,
			want: Filter{"title": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, raw := range []string{"", "{", "not json", `{"filter": {}} trailing`} {
		_, err := Parse([]byte(raw))
		assert.ErrorIs(t, err, ErrParse, raw)
	}
}

func TestParse_Violations(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason string
	}{
		{
			name:   "not an object",
			raw:    `[1, 2]`,
			reason: "data must be object",
		},
		{
			name:   "null document",
			raw:    `null`,
			reason: "data must be object",
		},
		{
			name:   "missing filter",
			raw:    `{}`,
			reason: "data must contain ['filter'] properties",
		},
		{
			name:   "filter not an object",
			raw:    `{"filter": "to"}`,
			reason: "data.filter must be object",
		},
		{
			name:   "no keys",
			raw:    `{"filter": {}}`,
			reason: "data.filter must contain at least 1 properties",
		},
		{
			name:   "too many keys",
			raw:    `{"filter": {"to": "a", "from": "b", "date": "c", "title": "d", "body": "e"}}`,
			reason: "data.filter must contain less than or equal to 4 properties",
		},
		{
			name:   "unknown key",
			raw:    `{"filter": {"foo": "x"}}`,
			reason: "data.filter must not contain {'foo'} properties",
		},
		{
			name:   "several unknown keys",
			raw:    `{"filter": {"zed": "x", "body": "y"}}`,
			reason: "data.filter must not contain {'body', 'zed'} properties",
		},
		{
			name:   "non-string value",
			raw:    `{"filter": {"to": 5}}`,
			reason: "data.filter.to must be string",
		},
		{
			name:   "null value",
			raw:    `{"filter": {"date": null}}`,
			reason: "data.filter.date must be string",
		},
		{
			name:   "extra top-level key",
			raw:    `{"filter": {"to": "a"}, "limit": 1}`,
			reason: "data must not contain {'limit'} properties",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.reason, verr.Reason)
		})
	}
}

func TestExpression(t *testing.T) {
	assert.Equal(t, "true", Expression(Filter{}))
	assert.Equal(t, `to == filter["to"]`, Expression(Filter{"to": "a"}))
	assert.Equal(t,
		`to == filter["to"] && date == filter["date"] && title == filter["title"]`,
		Expression(Filter{"title": "t", "date": "d", "to": "a"}))
}

func records() []message.Record {
	return []message.Record{
		{To: "alice", From: "bob", Timestamp: "2023-05-01T14:30:00Z", Title: "hi", Body: "1"},
		{To: "carol", From: "bob", Timestamp: "2023-05-01T08:00:00+02:00", Title: "hi", Body: "2"},
		{To: "alice", From: "dave", Timestamp: "2023-05-02T00:00:00Z", Title: "yo", Body: "3"},
		{To: "alice", From: "bob", Timestamp: "2023-05-01T23:59:59-07:00", Title: "re: hi", Body: "4"},
	}
}

func bodies(recs []message.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Body
	}
	return out
}

func TestEngine_Apply(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"by recipient keeps order", Filter{"to": "alice"}, []string{"1", "3", "4"}},
		{"by sender", Filter{"from": "bob"}, []string{"1", "2", "4"}},
		{"by title exact", Filter{"title": "hi"}, []string{"1", "2"}},
		{"by date ignores time and zone", Filter{"date": "01.05.2023"}, []string{"1", "2", "4"}},
		{"conjunction", Filter{"to": "alice", "date": "01.05.2023"}, []string{"1", "4"}},
		{"all keys", Filter{"to": "alice", "from": "bob", "date": "01.05.2023", "title": "re: hi"}, []string{"4"}},
		{"date in another format", Filter{"date": "2023-05-01"}, []string{}},
		{"value is case sensitive", Filter{"to": "Alice"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Apply(context.Background(), tt.filter, records())
			require.NoError(t, err)
			assert.Equal(t, tt.want, bodies(got))
		})
	}
}

func TestEngine_ApplyReusesProgramAcrossValues(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	first, err := engine.Apply(context.Background(), Filter{"to": "alice"}, records())
	require.NoError(t, err)
	second, err := engine.Apply(context.Background(), Filter{"to": "carol"}, records())
	require.NoError(t, err)

	assert.Len(t, first, 3)
	assert.Equal(t, []string{"2"}, bodies(second))
}

func TestEngine_ApplyEmpty(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	got, err := engine.Apply(context.Background(), Filter{"to": "alice"}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
