package discord

// Friendly message constants for Discord responses
const (
	MsgWheelNotFound    = "🎡 **Wheel Not Found**\nCheck the wheel name or ID."
	MsgEmptyWheel       = "🕳️ **Empty Wheel**\nAdd some participants before spinning."
	MsgWheelBusy        = "⏳ **Wheel Busy**\nSomeone else is spinning. Try again in a moment."
	MsgMissingWheel     = "❓ Please choose a wheel."
	MsgGenericError     = "❌ Something went wrong."
	MsgAPIUnreachable   = "📡 Error connecting to the wheel server."
	MsgRiggedSuffix     = "🎯 This spin was rigged by the organizer."
	MsgPreviewSuffix    = "👀 Preview only, weights unchanged."
	MsgResetDescription = "All participants are back to their baseline weights."
)
