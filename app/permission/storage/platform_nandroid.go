// SPDX-License-Identifier: Unlicense OR MIT

//go:build !android
// +build !android

package storage

import (
	"errors"
	"log"
)

// ErrUnsupported is returned when an intent is launched on a platform
// without activities.
var ErrUnsupported = errors.New("storage: intents are not supported on this platform")

// desktopPlatform is the Platform of systems without runtime storage
// permissions. Files are always accessible.
type desktopPlatform struct{}

// NewPlatform returns the Platform of the running system.
func NewPlatform() Platform {
	return desktopPlatform{}
}

func (desktopPlatform) SDKVersion() int {
	return 0
}

func (desktopPlatform) IsExternalStorageManager() bool {
	return false
}

func (desktopPlatform) CheckSelfPermission(permission string) bool {
	return true
}

func (desktopPlatform) PackageName() string {
	return ""
}

func (desktopPlatform) StartActivityForResult(in Intent, requestCode int) error {
	return ErrUnsupported
}

func (desktopPlatform) ShowToast(msg string) {
	log.Print(msg)
}
