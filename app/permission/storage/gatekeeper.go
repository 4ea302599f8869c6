// SPDX-License-Identifier: Unlicense OR MIT

package storage

import (
	"errors"
	"fmt"
	"log"

	"github.com/krkr2/gatekeeper/app"
)

// Platform is the operating system seen by a Gatekeeper.
type Platform interface {
	// SDKVersion returns the API level of the OS.
	SDKVersion() int
	// IsExternalStorageManager reports whether the broad grant is held.
	IsExternalStorageManager() bool
	// CheckSelfPermission reports whether the named permission is held.
	CheckSelfPermission(permission string) bool
	// PackageName returns the package name of the application, or ""
	// if it is not known.
	PackageName() string
	// StartActivityForResult launches in. The result is delivered later
	// as an activity result carrying requestCode.
	StartActivityForResult(in Intent, requestCode int) error
	// ShowToast shows a transient text notification.
	ShowToast(msg string)
}

// State is the progress of a Gatekeeper.
type State uint8

const (
	// Unchecked is the state before the application has started.
	Unchecked State = iota
	// Granted means the permission was present when last checked.
	Granted
	// Ungranted means the permission was missing at start and no
	// request has been made.
	Ungranted
	// Pending means the settings screen was launched and its result
	// has not arrived. A request that is abandoned stays pending.
	Pending
	// Denied means the permission was still missing when the settings
	// screen returned. The user has been notified.
	Denied
)

// DefaultDeniedMessage is shown when the permission is still missing
// after the settings screen returns.
const DefaultDeniedMessage = "Permission Denied. Please grant permission to proceed."

var (
	// ErrLegacyModel is returned by RequestAccess on platforms without
	// the broad grant.
	ErrLegacyModel = errors.New("storage: platform has no all files access grant")
	// ErrAlreadyGranted is returned by RequestAccess when the most
	// recent check found the permission.
	ErrAlreadyGranted = errors.New("storage: permission already granted")
	// ErrRequestPending is returned by RequestAccess when a request is
	// already waiting for its result.
	ErrRequestPending = errors.New("storage: request already pending")
	// ErrUnchecked is returned by RequestAccess before the first check.
	ErrUnchecked = errors.New("storage: grant state not checked")
)

// Option configures a Gatekeeper.
type Option func(g *Gatekeeper)

// Gatekeeper obtains the all files storage permission when the
// application starts. It implements app.Handler and is meant to be
// driven from the main thread only.
type Gatekeeper struct {
	platform Platform
	capab    Capability
	state    State

	deniedMsg string
	pkg       string
	logger    *log.Logger
}

var _ app.Handler = (*Gatekeeper)(nil)

// NewGatekeeper returns a Gatekeeper for p. The permission model is
// resolved from p.SDKVersion once, here.
func NewGatekeeper(p Platform, opts ...Option) *Gatekeeper {
	g := &Gatekeeper{
		platform:  p,
		capab:     CapabilityFor(p.SDKVersion()),
		deniedMsg: DefaultDeniedMessage,
		logger:    log.Default(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// DeniedMessage sets the toast text shown when the permission is still
// missing after the settings screen returns.
func DeniedMessage(msg string) Option {
	return func(g *Gatekeeper) {
		g.deniedMsg = msg
	}
}

// Logger sets the logger for warnings. Logging is discarded if l is nil.
func Logger(l *log.Logger) Option {
	return func(g *Gatekeeper) {
		g.logger = l
	}
}

// PackageName sets the package name used when the platform doesn't
// report one.
func PackageName(pkg string) Option {
	return func(g *Gatekeeper) {
		g.pkg = pkg
	}
}

// Capability returns the permission model of the platform.
func (g *Gatekeeper) Capability() Capability {
	return g.capab
}

// State returns the current state.
func (g *Gatekeeper) State() State {
	return g.state
}

// CheckGrantState queries the OS for the permission. Only the
// indicator of the platform's model is consulted.
func (g *Gatekeeper) CheckGrantState() bool {
	switch g.capab {
	case Broad:
		return g.platform.IsExternalStorageManager()
	default:
		return g.platform.CheckSelfPermission(PermissionWriteExternalStorage)
	}
}

// OnStart implements app.Handler. The saved state is not used.
func (g *Gatekeeper) OnStart(saved app.SavedState) {
	if g.state != Unchecked {
		return
	}
	if g.CheckGrantState() {
		g.state = Granted
		return
	}
	g.state = Ungranted
	if g.capab != Broad {
		return
	}
	if err := g.RequestAccess(); err != nil {
		g.logf("%v", err)
	}
}

// OnExternalResult implements app.Handler.
func (g *Gatekeeper) OnExternalResult(token, code int, data app.ResultData) {
	g.OnAccessResult(token, code)
}

// RequestAccess opens the settings screen for the application's all
// files access. If that screen is unavailable, the general all files
// access list is opened instead, once. The result arrives through
// OnAccessResult.
func (g *Gatekeeper) RequestAccess() error {
	if g.capab != Broad {
		return ErrLegacyModel
	}
	switch g.state {
	case Unchecked:
		return ErrUnchecked
	case Granted:
		return ErrAlreadyGranted
	case Pending:
		return ErrRequestPending
	}
	err := g.platform.StartActivityForResult(appAllFilesAccess(g.packageName()), RequestCode)
	if err != nil {
		g.logf("storage: app all files access screen unavailable: %v", err)
		if ferr := g.platform.StartActivityForResult(allFilesAccess(), RequestCode); ferr != nil {
			return fmt.Errorf("storage: launch all files access: %w", errors.Join(err, ferr))
		}
	}
	g.state = Pending
	return nil
}

// OnAccessResult handles an activity result. Results of other requests
// are ignored. The outcome is not trusted; the grant is checked again.
func (g *Gatekeeper) OnAccessResult(token, outcome int) {
	if token != RequestCode {
		return
	}
	if g.CheckGrantState() {
		g.state = Granted
		return
	}
	g.state = Denied
	g.platform.ShowToast(g.deniedMsg)
}

func (g *Gatekeeper) packageName() string {
	if pkg := g.platform.PackageName(); pkg != "" {
		return pkg
	}
	if g.pkg != "" {
		return g.pkg
	}
	return app.ID
}

func (g *Gatekeeper) logf(format string, args ...interface{}) {
	if g.logger == nil {
		return
	}
	g.logger.Printf(format, args...)
}

func (s State) String() string {
	switch s {
	case Unchecked:
		return "Unchecked"
	case Granted:
		return "Granted"
	case Ungranted:
		return "Ungranted"
	case Pending:
		return "Pending"
	case Denied:
		return "Denied"
	default:
		panic("invalid State")
	}
}
