package errorsx

// ReasonCode is a short machine-readable error reason.
type ReasonCode string

const (
	ReasonUnknown ReasonCode = "unknown"

	// Setup failures are fatal; they cannot be recovered mid-session.
	ReasonSetup  ReasonCode = "setup"
	ReasonConfig ReasonCode = "config"

	ReasonChatGenerate  ReasonCode = "chat_generate"
	ReasonChatRateLimit ReasonCode = "chat_rate_limit"

	ReasonRegistryConnect ReasonCode = "registry_connect"
	ReasonRegistryList    ReasonCode = "registry_list"
	ReasonRegistryCall    ReasonCode = "registry_call"
)
