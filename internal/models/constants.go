package models

const (
	// shown when a failed submission carries no usable detail
	GenericFailureMessage = "Failed to generate document. Please try again."

	// used when the result's file path has no usable last segment
	DefaultFileName = "document.docx"

	MaxPromptLength = 20000
)

// Upstream status values reported by the status monitor
const (
	UpstreamUnknown = "unknown"
	UpstreamOnline  = "online"
	UpstreamOffline = "offline"
)
