package acquire

import "os"

// System abstracts the environment access the acquirer needs.
type System interface {
	Getenv(key string) string
}

// RealSystem reads the process environment.
type RealSystem struct{}

// Getenv returns the value of the environment variable named by key.
func (RealSystem) Getenv(key string) string {
	return os.Getenv(key)
}
