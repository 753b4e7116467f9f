// Package util holds small helpers with no better home
package util

import "os"

// IsRunningInDocker checks for the marker file docker puts in every container
func IsRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}

	return false
}
