package live

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientMessageBuffer is the buffer size for each client's outgoing channel
	ClientMessageBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// Connection settings
const (
	// KeepaliveInterval is how often SSE clients get a keepalive and websocket clients a ping
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout bounds a single write to a client connection
	WriteTimeout = 10 * time.Second

	// PongWait is how long a websocket client may stay silent before it is dropped.
	// Must be longer than KeepaliveInterval.
	PongWait = 60 * time.Second

	// MaxInboundMessageSize caps frames read from websocket clients, which never need to send data
	MaxInboundMessageSize = 512

	// WebSocketBufferSize is the read/write buffer size for upgraded connections
	WebSocketBufferSize = 1024
)

// Message types sent to live clients
const (
	MessageTypeConnected          = "connected"
	MessageTypeKeepalive          = "keepalive"
	MessageTypeSpin               = "spin"
	MessageTypeReset              = "reset"
	MessageTypeRigged             = "rigged"
	MessageTypeUnrigged           = "unrigged"
	MessageTypeParticipantRemoved = "participant_removed"
)

// Query parameters
const (
	QueryParamTypes = "types"
)

// Log messages
const (
	LogMsgClientConnected    = "Live client connected"
	LogMsgClientDisconnected = "Live client disconnected"
	LogMsgMessageBroadcast   = "Broadcasting live message"
	LogMsgMessageDropped     = "Live broadcast buffer full, dropping message"
	LogMsgWriteError         = "Failed to write live message"
	LogMsgUpgradeFailed      = "Websocket upgrade failed"
	LogMsgInvalidPayload     = "Unexpected event payload type"
	LogMsgSubscribed         = "Live feed subscribed to wheel events"
)

// Error messages
const (
	ErrMsgStreamingUnsupported = "streaming not supported"
	ErrMsgInvalidWheelID       = "invalid wheel id"
)
