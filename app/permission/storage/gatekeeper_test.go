// SPDX-License-Identifier: Unlicense OR MIT

package storage

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type launch struct {
	intent Intent
	code   int
}

// fakePlatform records every query and launch made by a Gatekeeper.
type fakePlatform struct {
	sdk         int
	broadGrant  bool
	legacyGrant bool
	pkg         string
	// launchErrs are returned by successive launches.
	launchErrs []error

	broadChecks  int
	legacyChecks []string
	launches     []launch
	toasts       []string
}

func (p *fakePlatform) SDKVersion() int { return p.sdk }

func (p *fakePlatform) IsExternalStorageManager() bool {
	p.broadChecks++
	return p.broadGrant
}

func (p *fakePlatform) CheckSelfPermission(permission string) bool {
	p.legacyChecks = append(p.legacyChecks, permission)
	return p.legacyGrant
}

func (p *fakePlatform) PackageName() string { return p.pkg }

func (p *fakePlatform) StartActivityForResult(in Intent, requestCode int) error {
	p.launches = append(p.launches, launch{in, requestCode})
	if len(p.launchErrs) == 0 {
		return nil
	}
	err := p.launchErrs[0]
	p.launchErrs = p.launchErrs[1:]
	return err
}

func (p *fakePlatform) ShowToast(msg string) {
	p.toasts = append(p.toasts, msg)
}

func (p *fakePlatform) checks() int {
	return p.broadChecks + len(p.legacyChecks)
}

func newTestGatekeeper(p *fakePlatform, opts ...Option) *Gatekeeper {
	opts = append([]Option{Logger(nil)}, opts...)
	return NewGatekeeper(p, opts...)
}

var errNotFound = errors.New("android.content.ActivityNotFoundException")

func TestCheckGrantStateLegacy(t *testing.T) {
	for sdk := 16; sdk < SDKVersionR; sdk++ {
		for _, granted := range []bool{false, true} {
			p := &fakePlatform{sdk: sdk, legacyGrant: granted, broadGrant: !granted}
			g := newTestGatekeeper(p)
			assert.Equal(t, granted, g.CheckGrantState(), "sdk %d", sdk)
			assert.Zero(t, p.broadChecks, "sdk %d consulted the broad grant", sdk)
			assert.Equal(t, []string{PermissionWriteExternalStorage}, p.legacyChecks)
		}
	}
}

func TestCheckGrantStateBroad(t *testing.T) {
	for sdk := SDKVersionR; sdk <= 35; sdk++ {
		for _, granted := range []bool{false, true} {
			p := &fakePlatform{sdk: sdk, broadGrant: granted, legacyGrant: !granted}
			g := newTestGatekeeper(p)
			assert.Equal(t, granted, g.CheckGrantState(), "sdk %d", sdk)
			assert.Equal(t, 1, p.broadChecks)
			assert.Empty(t, p.legacyChecks, "sdk %d consulted the legacy permission", sdk)
		}
	}
}

func TestStartGranted(t *testing.T) {
	p := &fakePlatform{sdk: 33, broadGrant: true}
	g := newTestGatekeeper(p)
	g.OnStart(0)

	assert.Equal(t, Granted, g.State())
	assert.Empty(t, p.launches)
	assert.Empty(t, p.toasts)
}

func TestStartUngrantedLaunchesAppSettings(t *testing.T) {
	p := &fakePlatform{sdk: 30, pkg: "org.github.krkr2"}
	g := newTestGatekeeper(p)
	g.OnStart(0)

	assert.Equal(t, Pending, g.State())
	require.Len(t, p.launches, 1)
	assert.Equal(t, launch{
		intent: Intent{
			Action: ActionManageAppAllFilesAccess,
			Data:   "package:org.github.krkr2",
		},
		code: 1,
	}, p.launches[0])
	assert.Empty(t, p.toasts)
}

func TestStartFallsBackToAllFilesSettings(t *testing.T) {
	var buf bytes.Buffer
	p := &fakePlatform{sdk: 31, pkg: "org.github.krkr2", launchErrs: []error{errNotFound}}
	g := NewGatekeeper(p, Logger(log.New(&buf, "", 0)))
	g.OnStart(0)

	assert.Equal(t, Pending, g.State())
	require.Len(t, p.launches, 2)
	assert.Equal(t, ActionManageAppAllFilesAccess, p.launches[0].intent.Action)
	assert.Equal(t, launch{intent: Intent{Action: ActionManageAllFilesAccess}, code: 1}, p.launches[1])
	assert.Contains(t, buf.String(), "app all files access screen unavailable")
	assert.Empty(t, p.toasts)
}

func TestStartBothLaunchesFail(t *testing.T) {
	errFallback := errors.New("android.content.ActivityNotFoundException: fallback")
	p := &fakePlatform{sdk: 30, launchErrs: []error{errNotFound, errFallback}}
	g := newTestGatekeeper(p)
	g.OnStart(0)

	assert.Len(t, p.launches, 2, "fallback must be tried exactly once")
	assert.Equal(t, Ungranted, g.State())
	assert.Empty(t, p.toasts)

	// The gatekeeper may be asked again; the same two attempts are made.
	p.launchErrs = []error{errNotFound, errFallback}
	err := g.RequestAccess()
	require.Error(t, err)
	assert.ErrorIs(t, err, errNotFound)
	assert.ErrorIs(t, err, errFallback)
	assert.Len(t, p.launches, 4)
}

func TestResultGranted(t *testing.T) {
	p := &fakePlatform{sdk: 30}
	g := newTestGatekeeper(p)
	g.OnStart(0)
	require.Equal(t, Pending, g.State())

	p.broadGrant = true
	g.OnExternalResult(RequestCode, 0, 0)

	assert.Equal(t, Granted, g.State())
	assert.Empty(t, p.toasts)
}

func TestResultDenied(t *testing.T) {
	p := &fakePlatform{sdk: 30}
	g := newTestGatekeeper(p)
	g.OnStart(0)

	g.OnExternalResult(RequestCode, 0, 0)

	assert.Equal(t, Denied, g.State())
	assert.Equal(t, []string{"Permission Denied. Please grant permission to proceed."}, p.toasts)
	assert.Len(t, p.launches, 1, "denied result must not request again")
}

func TestResultForeignToken(t *testing.T) {
	p := &fakePlatform{sdk: 30}
	g := newTestGatekeeper(p)
	g.OnStart(0)
	checks := p.checks()

	g.OnExternalResult(2, -1, 0)

	assert.Equal(t, checks, p.checks(), "foreign result must not check the grant")
	assert.Equal(t, Pending, g.State())
	assert.Empty(t, p.toasts)
	assert.Len(t, p.launches, 1)
}

func TestResultIgnoresOutcome(t *testing.T) {
	const (
		resultCanceled = 0
		resultOK       = -1
	)
	tests := []struct {
		name    string
		granted bool
		outcome int
		toasts  int
	}{
		{"ok but denied", false, resultOK, 1},
		{"canceled but denied", false, resultCanceled, 1},
		{"ok and granted", true, resultOK, 0},
		{"canceled but granted", true, resultCanceled, 0},
		{"unknown code", true, 42, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePlatform{sdk: 34}
			g := newTestGatekeeper(p)
			g.OnStart(0)
			checks := p.checks()

			p.broadGrant = tt.granted
			g.OnAccessResult(RequestCode, tt.outcome)

			assert.Equal(t, checks+1, p.checks())
			assert.Len(t, p.toasts, tt.toasts)
		})
	}
}

func TestAbandonedRequestStaysPending(t *testing.T) {
	p := &fakePlatform{sdk: 30}
	g := newTestGatekeeper(p)
	g.OnStart(0)

	assert.Equal(t, Pending, g.State())
	assert.ErrorIs(t, g.RequestAccess(), ErrRequestPending)
	assert.Len(t, p.launches, 1)
}

func TestStartLegacyUngranted(t *testing.T) {
	p := &fakePlatform{sdk: 29}
	g := newTestGatekeeper(p)
	g.OnStart(0)

	assert.Equal(t, Legacy, g.Capability())
	assert.Equal(t, Ungranted, g.State())
	assert.Empty(t, p.launches)
	assert.Empty(t, p.toasts)
	assert.ErrorIs(t, g.RequestAccess(), ErrLegacyModel)
	assert.Empty(t, p.launches)
}

func TestStartOnce(t *testing.T) {
	p := &fakePlatform{sdk: 30}
	g := newTestGatekeeper(p)
	g.OnStart(0)
	g.OnStart(0)

	assert.Equal(t, 1, p.checks())
	assert.Len(t, p.launches, 1)
}

func TestRequestAccessPreconditions(t *testing.T) {
	p := &fakePlatform{sdk: 30}
	g := newTestGatekeeper(p)
	assert.ErrorIs(t, g.RequestAccess(), ErrUnchecked)

	p.broadGrant = true
	g.OnStart(0)
	assert.ErrorIs(t, g.RequestAccess(), ErrAlreadyGranted)
	assert.Empty(t, p.launches)
}

func TestRequestAccessAfterDenied(t *testing.T) {
	p := &fakePlatform{sdk: 30}
	g := newTestGatekeeper(p)
	g.OnStart(0)
	g.OnAccessResult(RequestCode, 0)
	require.Equal(t, Denied, g.State())

	require.NoError(t, g.RequestAccess())
	assert.Equal(t, Pending, g.State())
	assert.Len(t, p.launches, 2)
}

func TestPackageName(t *testing.T) {
	tests := []struct {
		name     string
		platform string
		option   string
		want     string
	}{
		{"platform", "org.github.krkr2", "org.example.other", "package:org.github.krkr2"},
		{"option", "", "org.example.other", "package:org.example.other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePlatform{sdk: 30, pkg: tt.platform}
			g := newTestGatekeeper(p, PackageName(tt.option))
			g.OnStart(0)

			require.Len(t, p.launches, 1)
			assert.Equal(t, tt.want, p.launches[0].intent.Data)
		})
	}
}

func TestDeniedMessage(t *testing.T) {
	p := &fakePlatform{sdk: 30}
	g := newTestGatekeeper(p, DeniedMessage("storage access is required"))
	g.OnStart(0)
	g.OnAccessResult(RequestCode, 0)

	assert.Equal(t, []string{"storage access is required"}, p.toasts)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Unchecked", Unchecked.String())
	assert.Equal(t, "Pending", Pending.String())
	assert.Equal(t, "Denied", Denied.String())
	assert.Panics(t, func() { _ = State(42).String() })
}
