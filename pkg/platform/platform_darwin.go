//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework AppKit
#import <Cocoa/Cocoa.h>
#import <AppKit/AppKit.h>

void setActivationPolicy(int regular) {
    if (regular) {
        [NSApp setActivationPolicy:NSApplicationActivationPolicyRegular];
    } else {
        [NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
    }
}

int isAppActive() {
    return [NSApp isActive] ? 1 : 0;
}

void activateApp() {
    [NSApp activateIgnoringOtherApps:YES];
}
*/
import "C"

import (
	"github.com/borgmon/alarm-clock/pkg/logger"
	"github.com/sirupsen/logrus"
)

// SetActivationPolicy switches between a dock app and a tray-only app
func SetActivationPolicy(p Policy) {
	logger.Log.WithFields(logrus.Fields{"policy": p.String()}).Debug("Setting activation policy")
	regular := C.int(0)
	if p == PolicyRegular {
		regular = 1
	}
	C.setActivationPolicy(regular)
}

// IsAppActive reports whether the app owns keyboard focus
func IsAppActive() bool {
	return C.isAppActive() == 1
}

// ActivateApp brings the app in front of every other app
func ActivateApp() {
	C.activateApp()
}
