package tokens

// Store is the single source of truth for the current session's
// credentials. Every outgoing request reads the access token through it;
// the transport's refresh path and the auth operations write through it.
// Implementations must be safe for concurrent use.
type Store interface {
	// Access returns the persisted access token, ok=false when absent.
	Access() (string, bool)

	// Refresh returns the persisted refresh token, ok=false when absent.
	Refresh() (string, bool)

	// SetAccess replaces only the access token, keeping the refresh token.
	SetAccess(token string) error

	// SetPair replaces both tokens atomically.
	SetPair(access, refresh string) error

	// Clear drops both tokens.
	Clear() error
}

const (
	accessKey  = "nexus:auth:access_token"
	refreshKey = "nexus:auth:refresh_token"
)
