//go:build !darwin

package platform

// DefaultLauncher opens paths with their associated application
const DefaultLauncher = "xdg-open"
