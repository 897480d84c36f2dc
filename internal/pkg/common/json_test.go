package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONBytes(t *testing.T) {
	var payload struct {
		Name  string  `json:"name"`
		Count float64 `json:"count"`
	}

	require.NoError(t, ParseJSONBytes([]byte(`{"name": "flour", "count": 2.5}`), &payload))
	assert.Equal(t, "flour", payload.Name)
	assert.Equal(t, 2.5, payload.Count)
}

func TestParseJSONBytesRejectsTrailingData(t *testing.T) {
	var payload map[string]interface{}

	err := ParseJSONBytes([]byte(`{"a": 1}{"b": 2}`), &payload)
	assert.Error(t, err)
}

func TestParseJSONBytesInvalid(t *testing.T) {
	var payload map[string]interface{}

	assert.Error(t, ParseJSONBytes([]byte(`{not json`), &payload))
}
