package serve

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/praetorian-inc/rangeexpr/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCore(t *testing.T) *engine.Core {
	t.Helper()
	core, err := engine.NewCore("names: [id, first_name, last_name, created_at]\n", nil)
	require.NoError(t, err)
	t.Cleanup(core.Close)
	return core
}

// runLines runs the server over input and returns the response lines.
func runLines(t *testing.T, core *engine.Core, input string) []Response {
	t.Helper()
	out := &bytes.Buffer{}
	srv := NewServer(core, strings.NewReader(input), out)
	require.NoError(t, srv.Run(context.Background()))

	var resps []Response
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var resp Response
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		resps = append(resps, resp)
	}
	return resps
}

func TestServer_SendsReadyOnStart(t *testing.T) {
	core := newTestCore(t)

	in := strings.NewReader("")
	out := &bytes.Buffer{}

	srv := NewServer(core, in, out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately to exit after ready

	_ = srv.Run(ctx)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)

	var resp Response
	err := json.Unmarshal([]byte(lines[0]), &resp)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "ready", resp.Type)

	var ready ReadyData
	require.NoError(t, json.Unmarshal(resp.Data, &ready))
	assert.Equal(t, Version, ready.Version)
	assert.Equal(t, 4, ready.Names)
}

func TestServer_Eval(t *testing.T) {
	core := newTestCore(t)

	resps := runLines(t, core, `{"type":"eval","payload":{"expression":"inv(first_name)","max":4}}`+"\n")
	require.Len(t, resps, 2) // ready + eval response

	assert.True(t, resps[1].Success)
	assert.Equal(t, "eval", resps[1].Type)

	var result engine.Result
	require.NoError(t, json.Unmarshal(resps[1].Data, &result))
	assert.Equal(t, []int{0, 2, 3}, result.Indices)
	assert.True(t, result.Inverted)
}

func TestServer_EvalUnknownKind(t *testing.T) {
	core := newTestCore(t)

	resps := runLines(t, core, `{"type":"eval","payload":{"expression":"1","kind":"grid"}}`+"\n")
	require.Len(t, resps, 2)
	assert.False(t, resps[1].Success)
	assert.Equal(t, "eval", resps[1].Type)
	assert.Contains(t, resps[1].Error, "unknown kind")
}

func TestServer_EvalBatch(t *testing.T) {
	core := newTestCore(t)

	request := `{"type":"eval_batch","payload":{"items":[{"expression":"1-2"},{"expression":"last","kind":"index"}]}}` + "\n"
	resps := runLines(t, core, request)
	require.Len(t, resps, 2)

	assert.True(t, resps[1].Success)
	assert.Equal(t, "eval_batch", resps[1].Type)

	var result engine.BatchResult
	require.NoError(t, json.Unmarshal(resps[1].Data, &result))
	require.Len(t, result.Results, 2)
	assert.Equal(t, 3, result.Total)
}

func TestServer_Compact(t *testing.T) {
	core := newTestCore(t)

	request := `{"type":"compact","payload":{"positions":[3,0,1]}}` + "\n" +
		`{"type":"compact","payload":{"positions":[3,0,1],"ordered":true}}` + "\n"
	resps := runLines(t, core, request)
	require.Len(t, resps, 3)

	var sorted, ordered engine.CompactResult
	require.NoError(t, json.Unmarshal(resps[1].Data, &sorted))
	require.NoError(t, json.Unmarshal(resps[2].Data, &ordered))
	assert.Equal(t, "1-2,4", sorted.Range)
	assert.Equal(t, "4,1,2", ordered.Range)
}

func TestServer_Validate(t *testing.T) {
	core := newTestCore(t)

	request := `{"type":"validate","payload":{"expression":"id-last_name"}}` + "\n" +
		`{"type":"validate","payload":{"expression":"3-1","max":5}}` + "\n"
	resps := runLines(t, core, request)
	require.Len(t, resps, 3)

	var ok, bad ValidateData
	require.NoError(t, json.Unmarshal(resps[1].Data, &ok))
	require.NoError(t, json.Unmarshal(resps[2].Data, &bad))
	assert.True(t, ok.Valid)
	assert.False(t, bad.Valid)
	assert.Equal(t, "3-1", bad.Expression)
}

func TestServer_Select(t *testing.T) {
	core := newTestCore(t)

	resps := runLines(t, core, `{"type":"select","payload":{"include":["name$"],"exclude":["^last"]}}`+"\n")
	require.Len(t, resps, 2)
	require.True(t, resps[1].Success)

	var result engine.CompactResult
	require.NoError(t, json.Unmarshal(resps[1].Data, &result))
	assert.Equal(t, "2", result.Range)
}

func TestServer_SelectInvalidPattern(t *testing.T) {
	core := newTestCore(t)

	resps := runLines(t, core, `{"type":"select","payload":{"include":["(unclosed"]}}`+"\n")
	require.Len(t, resps, 2)
	assert.False(t, resps[1].Success)
	assert.Equal(t, "select", resps[1].Type)
}

func TestServer_GracefulShutdownOnContext(t *testing.T) {
	core := newTestCore(t)

	// Slow reader that blocks
	pr, pw := io.Pipe()
	out := &bytes.Buffer{}

	srv := NewServer(core, pr, out)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error)
	go func() {
		done <- srv.Run(ctx)
	}()

	// Wait for ready signal
	time.Sleep(100 * time.Millisecond)

	cancel()
	pw.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

func TestServer_CloseCommand(t *testing.T) {
	core := newTestCore(t)

	request := `{"type":"close","payload":{}}` + "\n" + `{"type":"eval","payload":{"expression":"1"}}` + "\n"
	resps := runLines(t, core, request)
	require.Len(t, resps, 1) // Only ready signal
}

func TestServer_UnknownCommand(t *testing.T) {
	core := newTestCore(t)

	resps := runLines(t, core, `{"type":"invalid","payload":{}}`+"\n")
	require.Len(t, resps, 2)

	assert.False(t, resps[1].Success)
	assert.Contains(t, resps[1].Error, "unknown request type")
}

func TestServer_MalformedJSON(t *testing.T) {
	core := newTestCore(t)

	request := `{invalid json}` + "\n"
	in := strings.NewReader(request)
	out := &bytes.Buffer{}

	srv := NewServer(core, in, out)
	_ = srv.Run(context.Background())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 2)

	var resp Response
	_ = json.Unmarshal([]byte(lines[1]), &resp)

	assert.False(t, resp.Success)
	assert.Equal(t, "decode", resp.Type)
}
