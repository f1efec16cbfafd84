package steplib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchJSON(t *testing.T) {
	for _, tc := range []struct {
		name     string
		actual   string
		expected string
		ok       bool
	}{
		{"exact match", `{"id":1,"name":"basil"}`, `{"name":"basil","id":1}`, true},
		{"wildcard value", `{"id":42,"token":"abc123"}`, `{"id":42,"token":"*"}`, true},
		{"wildcard nested", `{"user":{"id":7,"tags":["a","b"]}}`, `{"user":"*"}`, true},
		{"value mismatch", `{"id":1}`, `{"id":2}`, false},
		{"missing key", `{"id":1}`, `{"id":1,"name":"x"}`, false},
		{"array length", `{"tags":["a"]}`, `{"tags":["a","b"]}`, false},
		{"array element wildcard", `{"tags":["a","xyz"]}`, `{"tags":["a","*"]}`, true},
		{"type mismatch", `{"id":"1"}`, `{"id":1}`, false},
		{"null matches null", `{"v":null}`, `{"v":null}`, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := matchJSON([]byte(tc.actual), []byte(tc.expected))
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestMatchJSONMismatchPath(t *testing.T) {
	err := matchJSON([]byte(`{"user":{"id":1}}`), []byte(`{"user":{"id":2}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$.user.id")
}

func TestMatchJSONInvalidInput(t *testing.T) {
	err := matchJSON([]byte(`not json`), []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "received JSON")
}
