// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"sync"
)

// ID is the app id exposed to the platform.
//
// On Android ID is the package property of AndroidManifest.xml. It is
// used when the package name cannot be queried from the running
// activity.
//
// ID is set manually with the -X linker flag. For example,
//
//	go build -ldflags="-X 'github.com/krkr2/gatekeeper/app.ID=org.github.krkr2'" .
//
// Note that ID is treated as a constant, and that changing it at runtime
// is not supported.
var ID = ""

// SavedState is the restorable state passed to the activity when it
// is created. On Android it is a JNI local reference to the Bundle,
// valid only for the duration of the call, or 0 on a fresh start.
// Handlers must treat it as opaque.
type SavedState uintptr

// ResultData is the data returned with an activity result. On Android
// it is a JNI local reference to the result Intent, valid only for the
// duration of the call, or 0.
type ResultData uintptr

// Handler receives activity lifecycle events. Events are delivered on
// the main thread, one at a time.
type Handler interface {
	// OnStart is called once, when the application starts.
	OnStart(saved SavedState)
	// OnExternalResult is called when an activity launched for a result
	// returns. Every handler sees every result and must ignore tokens it
	// didn't issue.
	OnExternalResult(token, code int, data ResultData)
}

var lifecycle struct {
	mu       sync.Mutex
	handlers []Handler
	started  bool
}

// Register adds h to the handlers of lifecycle events. Handlers
// registered after the application has started miss the start event.
func Register(h Handler) {
	lifecycle.mu.Lock()
	defer lifecycle.mu.Unlock()
	lifecycle.handlers = append(lifecycle.handlers, h)
}

// NotifyStart delivers the start event to the registered handlers, in
// the order they were registered. Only the first call has an effect.
func NotifyStart(saved SavedState) {
	lifecycle.mu.Lock()
	if lifecycle.started {
		lifecycle.mu.Unlock()
		return
	}
	lifecycle.started = true
	hs := handlers()
	lifecycle.mu.Unlock()
	for _, h := range hs {
		h.OnStart(saved)
	}
}

// NotifyResult delivers an activity result to the registered handlers.
func NotifyResult(token, code int, data ResultData) {
	lifecycle.mu.Lock()
	hs := handlers()
	lifecycle.mu.Unlock()
	for _, h := range hs {
		h.OnExternalResult(token, code, data)
	}
}

// handlers returns a copy of the registered handlers. The caller must
// hold lifecycle.mu.
func handlers() []Handler {
	return append([]Handler(nil), lifecycle.handlers...)
}
