package client

// DebugState holds global debug flags that persist across game resets
type DebugState struct {
	ShowGrid bool // Grid lines on every skin plus a frame-rate readout
}

// Global debug state instance (persists across game resets)
var globalDebugState = &DebugState{}

// GetDebugState returns the global debug state
func GetDebugState() *DebugState {
	return globalDebugState
}
