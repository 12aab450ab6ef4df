package serve

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_EvalUnmarshal(t *testing.T) {
	input := `{"type":"eval","payload":{"expression":"inv(2-4)","kind":"range","max":10,"names":["a","b"]}}`

	var req Request
	err := json.Unmarshal([]byte(input), &req)
	require.NoError(t, err)

	assert.Equal(t, "eval", req.Type)

	var payload EvalPayload
	err = json.Unmarshal(req.Payload, &payload)
	require.NoError(t, err)

	assert.Equal(t, "inv(2-4)", payload.Expression)
	assert.Equal(t, "range", payload.Kind)
	assert.Equal(t, 10, payload.Max)
	assert.Equal(t, []string{"a", "b"}, payload.Names)
}

func TestRequest_CompactUnmarshal(t *testing.T) {
	input := `{"type":"compact","payload":{"positions":[4,0,1],"ordered":true}}`

	var req Request
	require.NoError(t, json.Unmarshal([]byte(input), &req))

	var payload CompactPayload
	require.NoError(t, json.Unmarshal(req.Payload, &payload))

	assert.Equal(t, []int{4, 0, 1}, payload.Positions)
	assert.True(t, payload.Ordered)
}

func TestResponse_Marshal(t *testing.T) {
	resp := Response{
		Success: true,
		Type:    "ready",
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"success":true`)
	assert.Contains(t, string(data), `"type":"ready"`)
	assert.NotContains(t, string(data), `"error"`)
}
