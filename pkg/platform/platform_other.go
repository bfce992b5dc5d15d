//go:build !darwin

package platform

// SetActivationPolicy is a no-op outside macOS
func SetActivationPolicy(Policy) {}

// IsAppActive always reports true outside macOS, so the ringing window is
// never forced to the front
func IsAppActive() bool {
	return true
}

// ActivateApp is a no-op outside macOS
func ActivateApp() {}
