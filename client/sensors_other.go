//go:build !js

package client

import "os"

// noSensors is used on desktop builds: keyboard only
type noSensors struct{}

// PlatformSensors returns the sensor source for this build
func PlatformSensors() SensorSource { return noSensors{} }

func (noSensors) Latest() (Reading, bool) { return Reading{}, false }
func (noSensors) Mobile() bool            { return false }
func (noSensors) Permitted() bool         { return false }

// DefaultServerURL returns the overlay endpoint from TILTSNAKE_SERVER
func DefaultServerURL() string {
	return os.Getenv("TILTSNAKE_SERVER")
}
