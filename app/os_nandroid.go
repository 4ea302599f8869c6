// SPDX-License-Identifier: Unlicense OR MIT

//go:build !android
// +build !android

package app

// JavaVM returns 0 on platforms other than android.
func JavaVM() uintptr {
	return 0
}

// Activity returns 0 on platforms other than android.
func Activity() uintptr {
	return 0
}

// Main delivers the start event for programs that are not hosted by an
// activity, and returns when every handler has seen it.
func Main() {
	NotifyStart(0)
}
