// Package plugin implements the host plugin invocation protocol: decoding
// the input envelope the host supplies on standard input (or a mode string
// on the command line), and encoding the single terminal output envelope.
package plugin

// Args holds the operation arguments supplied by the host. The "mode" key
// selects the operation; an absent or empty mode selects the default.
type Args map[string]string

// Mode returns the requested operation mode, or "" when none was supplied.
func (a Args) Mode() string {
	return a["mode"]
}

// SessionCookie is the session credential object the host attaches to the
// input envelope when the remote API requires authentication.
type SessionCookie struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

// ServerConnection identifies the single GraphQL endpoint this process may
// talk to. JSON field matching is case-insensitive, so both the host's
// capitalized keys and lowercase keys decode into it.
type ServerConnection struct {
	Scheme        string         `json:"Scheme"`
	Port          int            `json:"Port"`
	SessionCookie *SessionCookie `json:"SessionCookie,omitempty"`
}

// Input is the invocation envelope. It is parsed exactly once per process
// lifetime and never mutated afterwards.
type Input struct {
	Args             Args             `json:"args"`
	ServerConnection ServerConnection `json:"server_connection"`
}

// Output is the terminal result envelope. Exactly one of Output or Error is
// populated; it is written to standard output exactly once, as the last act
// of the process.
type Output struct {
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}
