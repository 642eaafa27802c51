package discord

import "time"

// API client tuning
const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = 500 * time.Millisecond
	MaxRetryJitter        = 100 * time.Millisecond
)

// API paths, relative to the server root
const (
	PathWheels        = "/api/v1/wheels"
	PathSpin          = "/api/v1/wheels/%s/spin"
	PathProbabilities = "/api/v1/wheels/%s/probabilities"
	PathReset         = "/api/v1/wheels/%s/reset"
	PathHealthz       = "/healthz"
)

// Slash command and option names
const (
	CommandWheelSpin  = "wheel-spin"
	CommandWheelOdds  = "wheel-odds"
	CommandWheelReset = "wheel-reset"

	OptionWheel   = "wheel"
	OptionPreview = "preview"
)

// Embed colors
const (
	ColorSpin  = 0xf1c40f
	ColorOdds  = 0x3498db
	ColorReset = 0x95a5a6
)

// MaxAutocompleteChoices is Discord's cap on autocomplete results
const MaxAutocompleteChoices = 25

// Footer constants for standardized embed footers.
const (
	FooterWheel      = "Spin Wheel"
	FooterWheelAdmin = "Spin Wheel Admin"
)

// Log messages
const (
	LogMsgBotRunning        = "Discord bot is now running. Press CTRL-C to exit."
	LogMsgRetryingRequest   = "Retrying API request"
	LogMsgRequestFailed     = "API request failed"
	LogMsgServerErrorRetry  = "Server error, will retry"
	LogMsgCheckingCommands  = "Checking Discord commands..."
	LogMsgCommandsUnchanged = "Commands unchanged, skipping registration"
	LogMsgCommandsUpdated   = "Commands updated successfully"
)
