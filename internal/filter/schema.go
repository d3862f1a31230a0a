package filter

import (
	"fmt"
	"sort"
	"strings"
)

// PropertyDef is a JSON-schema style description of one value of the query
// document. Only the keywords the query format needs are supported.
type PropertyDef struct {
	Type                 string
	Properties           map[string]*PropertyDef
	Required             []string
	MinProperties        *int
	MaxProperties        *int
	AdditionalProperties bool
}

func intPtr(v int) *int { return &v }

// QuerySchema describes {"filter": {...}} with one to four string fields.
var QuerySchema = &PropertyDef{
	Type:     "object",
	Required: []string{"filter"},
	Properties: map[string]*PropertyDef{
		"filter": {
			Type:          "object",
			MinProperties: intPtr(1),
			MaxProperties: intPtr(len(Keys)),
			Properties: map[string]*PropertyDef{
				KeyTo:    {Type: "string"},
				KeyFrom:  {Type: "string"},
				KeyDate:  {Type: "string"},
				KeyTitle: {Type: "string"},
			},
		},
	},
}

// ValidationError describes the first violation found in a query document.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func violation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// validateValue checks value against def; path names the value in messages
// ("data", "data.filter", ...).
func validateValue(path string, value interface{}, def *PropertyDef) *ValidationError {
	switch def.Type {
	case "string":
		if _, ok := value.(string); !ok {
			return violation("%s must be string", path)
		}
		return nil
	case "object":
		obj, ok := value.(map[string]interface{})
		if !ok {
			return violation("%s must be object", path)
		}
		return validateObject(path, obj, def)
	default:
		return violation("%s has unsupported schema type %s", path, def.Type)
	}
}

func validateObject(path string, obj map[string]interface{}, def *PropertyDef) *ValidationError {
	if def.MinProperties != nil && len(obj) < *def.MinProperties {
		return violation("%s must contain at least %d properties", path, *def.MinProperties)
	}
	if def.MaxProperties != nil && len(obj) > *def.MaxProperties {
		return violation("%s must contain less than or equal to %d properties", path, *def.MaxProperties)
	}

	var missing []string
	for _, name := range def.Required {
		if _, ok := obj[name]; !ok {
			missing = append(missing, "'"+name+"'")
		}
	}
	if len(missing) > 0 {
		return violation("%s must contain [%s] properties", path, strings.Join(missing, ", "))
	}

	for _, name := range sortedKeys(def.Properties) {
		value, ok := obj[name]
		if !ok {
			continue
		}
		if err := validateValue(path+"."+name, value, def.Properties[name]); err != nil {
			return err
		}
	}

	if def.AdditionalProperties {
		return nil
	}

	var extra []string
	for name := range obj {
		if _, ok := def.Properties[name]; !ok {
			extra = append(extra, "'"+name+"'")
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return violation("%s must not contain {%s} properties", path, strings.Join(extra, ", "))
	}

	return nil
}

func sortedKeys(m map[string]*PropertyDef) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
