package steplib

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// matchJSON compares actual JSON against expected JSON. A value of "*" in
// expected matches any value at that position, so test features can pin down
// the fields they care about and wildcard the rest.
func matchJSON(actual, expected []byte) error {
	var got, want interface{}
	if err := json.Unmarshal(actual, &got); err != nil {
		return fmt.Errorf("unmarshaling received JSON: %w", err)
	}
	if err := json.Unmarshal(expected, &want); err != nil {
		return fmt.Errorf("unmarshaling expected JSON: %w", err)
	}

	mismatches := compareJSONValues("$", got, want)
	if len(mismatches) == 0 {
		return nil
	}
	return fmt.Errorf("JSON mismatch:\n%s", strings.Join(mismatches, "\n"))
}

func compareJSONValues(path string, got, want interface{}) []string {
	if s, ok := want.(string); ok && s == "*" {
		return nil
	}

	switch w := want.(type) {
	case map[string]interface{}:
		g, ok := got.(map[string]interface{})
		if !ok {
			return []string{fmt.Sprintf("%s: expected object, got %s", path, jsonTypeName(got))}
		}
		var mismatches []string
		keys := make([]string, 0, len(w))
		for k := range w {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sub := path + "." + k
			gv, present := g[k]
			if !present {
				mismatches = append(mismatches, fmt.Sprintf("%s: missing key", sub))
				continue
			}
			mismatches = append(mismatches, compareJSONValues(sub, gv, w[k])...)
		}
		return mismatches
	case []interface{}:
		g, ok := got.([]interface{})
		if !ok {
			return []string{fmt.Sprintf("%s: expected array, got %s", path, jsonTypeName(got))}
		}
		if len(g) != len(w) {
			return []string{fmt.Sprintf("%s: expected %d elements, got %d", path, len(w), len(g))}
		}
		var mismatches []string
		for i := range w {
			mismatches = append(mismatches, compareJSONValues(fmt.Sprintf("%s[%d]", path, i), g[i], w[i])...)
		}
		return mismatches
	default:
		if !reflect.DeepEqual(got, want) {
			return []string{fmt.Sprintf("%s: expected %v, got %v", path, renderJSONValue(want), renderJSONValue(got))}
		}
		return nil
	}
}

func jsonTypeName(v interface{}) string {
	switch v.(type) {
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func renderJSONValue(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
