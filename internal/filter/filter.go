package filter

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrParse reports a query body that is not a JSON document.
var ErrParse = errors.New("malformed filter document")

const (
	KeyTo    = "to"
	KeyFrom  = "from"
	KeyDate  = "date"
	KeyTitle = "title"
)

// Keys lists the recognized filter keys in evaluation order.
var Keys = []string{KeyTo, KeyFrom, KeyDate, KeyTitle}

// Filter maps field keys to the exact value a record must carry. The date
// value is compared against the record timestamp as DD.MM.YYYY.
type Filter map[string]string

// Present returns the keys set in f, in evaluation order.
func (f Filter) Present() []string {
	keys := make([]string, 0, len(f))
	for _, k := range Keys {
		if _, ok := f[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Parse decodes and validates a query document of the form
// {"filter": {"to": "...", "date": "DD.MM.YYYY"}}.
func Parse(raw []byte) (Filter, error) {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if verr := validateValue("data", doc, QuerySchema); verr != nil {
		return nil, verr
	}

	fields := doc.(map[string]interface{})["filter"].(map[string]interface{})
	f := make(Filter, len(fields))
	for k, v := range fields {
		f[k] = v.(string)
	}
	return f, nil
}
