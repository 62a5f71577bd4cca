package plugin

import (
	"encoding/json"
	"fmt"
	"io"
)

// ReadInput decodes the invocation envelope. With no command-line arguments
// it reads stdin in full and parses it as JSON. When argv is non-empty its
// first element is taken as the mode and a synthetic envelope is built from
// the supplied fallback connection — a convenience for running the plugin by
// hand, which bypasses session-cookie authentication entirely.
func ReadInput(stdin io.Reader, argv []string, fallback ServerConnection) (*Input, error) {
	if len(argv) > 0 {
		return &Input{
			Args:             Args{"mode": argv[0]},
			ServerConnection: fallback,
		}, nil
	}

	raw, err := io.ReadAll(stdin)
	if err != nil {
		return nil, &MalformedInputError{Reason: "read stdin", Err: err}
	}

	var in Input
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, &MalformedInputError{Reason: "decode JSON", Err: err}
	}

	if err := validate(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

// validate enforces the fields the rest of the process depends on. The mode
// itself may be absent (default operation), but the connection must identify
// a usable endpoint.
func validate(in *Input) error {
	if in.ServerConnection.Port <= 0 {
		return &MalformedInputError{Reason: "server_connection.Port must be a positive integer"}
	}
	if in.ServerConnection.Scheme == "" {
		return &MalformedInputError{Reason: "server_connection.Scheme is required"}
	}
	if in.Args == nil {
		in.Args = Args{}
	}
	return nil
}

// WriteOutput serializes the terminal envelope to w as a single JSON line
// followed by a trailing blank line. The host treats this as the plugin
// result, so it must be the final write to standard output.
func WriteOutput(w io.Writer, out Output) error {
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("plugin: marshal output: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", data); err != nil {
		return fmt.Errorf("plugin: write output: %w", err)
	}
	return nil
}
