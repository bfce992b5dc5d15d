// Package platform wraps the few OS calls the ringing window needs to stay
// in front of the user.
package platform

// Policy controls whether the app shows up in the dock
type Policy int

const (
	// PolicyAccessory hides the dock icon; the tray stays available
	PolicyAccessory Policy = iota
	// PolicyRegular shows the dock icon while a window is open
	PolicyRegular
)

func (p Policy) String() string {
	if p == PolicyRegular {
		return "regular"
	}
	return "accessory"
}
