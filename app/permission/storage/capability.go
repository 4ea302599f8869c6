// SPDX-License-Identifier: Unlicense OR MIT

package storage

// Capability is the storage permission model of the running OS.
type Capability uint8

const (
	// Legacy is the per-permission model, where storage access is
	// WRITE_EXTERNAL_STORAGE.
	Legacy Capability = iota
	// Broad is the "manage all files" model introduced in Android 11.
	Broad
)

// SDKVersionR is the first Android API level with the broad grant.
const SDKVersionR = 30

// CapabilityFor returns the permission model of the given SDK version.
func CapabilityFor(sdk int) Capability {
	if sdk >= SDKVersionR {
		return Broad
	}
	return Legacy
}

func (c Capability) String() string {
	switch c {
	case Legacy:
		return "Legacy"
	case Broad:
		return "Broad"
	default:
		panic("invalid Capability")
	}
}
