package constants

// Capture Source Defaults
const (
	// DefaultCaptureWidth and DefaultCaptureHeight are the fixed frame
	// size requested from the capture pipeline
	DefaultCaptureWidth  = 640
	DefaultCaptureHeight = 480

	// CaptureBytesPerPixel is the size of one RGB24 pixel on the wire
	CaptureBytesPerPixel = 3
)

// Hand Tracking
const (
	// TrackerLineLimit caps the size of one tracker output line in bytes
	TrackerLineLimit = 1 << 20
)
