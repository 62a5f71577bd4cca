package plugin

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFallback = ServerConnection{Scheme: "http", Port: 9999}

// ---------------------------------------------------------------------------
// ReadInput — stdin path
// ---------------------------------------------------------------------------

func TestReadInput_StdinEnvelope(t *testing.T) {
	stdin := strings.NewReader(`{
		"args": {"mode": "add"},
		"server_connection": {
			"Scheme": "https",
			"Port": 9998,
			"SessionCookie": {"Name": "session", "Value": "abc123"}
		}
	}`)

	in, err := ReadInput(stdin, nil, testFallback)
	require.NoError(t, err)

	assert.Equal(t, "add", in.Args.Mode())
	assert.Equal(t, "https", in.ServerConnection.Scheme)
	assert.Equal(t, 9998, in.ServerConnection.Port)
	require.NotNil(t, in.ServerConnection.SessionCookie)
	assert.Equal(t, "abc123", in.ServerConnection.SessionCookie.Value)
}

func TestReadInput_LowercaseKeys(t *testing.T) {
	// JSON field matching is case-insensitive; hosts that send lowercase
	// keys must decode identically.
	stdin := strings.NewReader(`{"args":{"mode":"add"},"server_connection":{"scheme":"http","port":9999}}`)

	in, err := ReadInput(stdin, nil, testFallback)
	require.NoError(t, err)

	assert.Equal(t, "add", in.Args.Mode())
	assert.Equal(t, "http", in.ServerConnection.Scheme)
	assert.Equal(t, 9999, in.ServerConnection.Port)
	assert.Nil(t, in.ServerConnection.SessionCookie)
}

func TestReadInput_EmptyModeIsDefault(t *testing.T) {
	stdin := strings.NewReader(`{"args":{},"server_connection":{"Scheme":"http","Port":9999}}`)

	in, err := ReadInput(stdin, nil, testFallback)
	require.NoError(t, err)
	assert.Equal(t, "", in.Args.Mode())
}

func TestReadInput_MissingArgsObject(t *testing.T) {
	stdin := strings.NewReader(`{"server_connection":{"Scheme":"http","Port":9999}}`)

	in, err := ReadInput(stdin, nil, testFallback)
	require.NoError(t, err)
	require.NotNil(t, in.Args)
	assert.Equal(t, "", in.Args.Mode())
}

// ---------------------------------------------------------------------------
// ReadInput — malformed input
// ---------------------------------------------------------------------------

func TestReadInput_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
	}{
		{
			name:  "not JSON",
			stdin: `this is not json`,
		},
		{
			name:  "empty stdin",
			stdin: ``,
		},
		{
			name:  "missing server_connection",
			stdin: `{"args":{"mode":"add"}}`,
		},
		{
			name:  "zero port",
			stdin: `{"args":{"mode":"add"},"server_connection":{"Scheme":"http","Port":0}}`,
		},
		{
			name:  "negative port",
			stdin: `{"args":{"mode":"add"},"server_connection":{"Scheme":"http","Port":-1}}`,
		},
		{
			name:  "missing scheme",
			stdin: `{"args":{"mode":"add"},"server_connection":{"Port":9999}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ReadInput(strings.NewReader(tt.stdin), nil, testFallback)
			require.Error(t, err)
			assert.Nil(t, in)

			var malformed *MalformedInputError
			assert.True(t, errors.As(err, &malformed), "error = %v (%T), want *MalformedInputError", err, err)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestReadInput_StdinReadFailure(t *testing.T) {
	_, err := ReadInput(failingReader{}, nil, testFallback)
	require.Error(t, err)

	var malformed *MalformedInputError
	require.True(t, errors.As(err, &malformed))
	assert.ErrorContains(t, err, "broken pipe")
}

// ---------------------------------------------------------------------------
// ReadInput — argv fallback path
// ---------------------------------------------------------------------------

func TestReadInput_ArgvFallback(t *testing.T) {
	// Stdin must not be touched when a mode argument is supplied.
	in, err := ReadInput(failingReader{}, []string{"remove"}, testFallback)
	require.NoError(t, err)

	assert.Equal(t, "remove", in.Args.Mode())
	assert.Equal(t, "http", in.ServerConnection.Scheme)
	assert.Equal(t, 9999, in.ServerConnection.Port)
	assert.Nil(t, in.ServerConnection.SessionCookie, "the fallback path bypasses authentication")
}

func TestReadInput_ArgvFallback_ExtraArgsIgnored(t *testing.T) {
	in, err := ReadInput(failingReader{}, []string{"long", "ignored"}, testFallback)
	require.NoError(t, err)
	assert.Equal(t, "long", in.Args.Mode())
}

// ---------------------------------------------------------------------------
// WriteOutput
// ---------------------------------------------------------------------------

func TestWriteOutput_Success(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteOutput(&buf, Output{Output: "ok"}))

	assert.Equal(t, "{\"output\":\"ok\"}\n\n", buf.String(),
		"terminal envelope must be a single JSON line followed by a blank line")
}

func TestWriteOutput_Error(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteOutput(&buf, Output{Error: "no scenes to add tag to"}))

	assert.Equal(t, "{\"error\":\"no scenes to add tag to\"}\n\n", buf.String())
}

func TestWriteOutput_ExactlyOneFieldSerialized(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteOutput(&buf, Output{Output: "ok"}))

	var decoded map[string]any
	line := strings.TrimSpace(buf.String())
	require.NoError(t, json.Unmarshal([]byte(line), &decoded))
	assert.Len(t, decoded, 1)
	assert.Contains(t, decoded, "output")
}
