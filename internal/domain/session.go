package domain

import "strings"

type SessionState string

const (
	SessionDisconnected  SessionState = "disconnected"
	SessionConnecting    SessionState = "connecting"
	SessionConnected     SessionState = "connected"
	SessionDisconnecting SessionState = "disconnecting"
)

func (s SessionState) Label() string {
	switch s {
	case SessionDisconnected:
		return "Disconnected"
	case SessionConnecting:
		return "Connecting..."
	case SessionConnected:
		return "Connected"
	case SessionDisconnecting:
		return "Disconnecting..."
	default:
		return string(s)
	}
}

// Session is the in-memory record of a connected wallet identity.
type Session struct {
	Address   string `json:"address"`
	Handle    string `json:"handle,omitempty"`
	Connected bool   `json:"isConnected"`
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.Address) == "" {
		return &ValidationError{Field: "address", Reason: "is required"}
	}

	return nil
}

// Credential is what a wallet exchange hands back before it becomes a Session.
type Credential struct {
	Address string
	Handle  string
}
