// SPDX-License-Identifier: Unlicense OR MIT

/*
Package storage implements the "all files" storage permission on mobile
devices and the gatekeeper that obtains it before the engine starts.

A Gatekeeper runs once, when the host activity starts. It checks whether
the permission is granted and, if it is not and the platform supports the
broad grant, opens the system settings screen where the user can grant
it. When the settings screen returns, the grant is checked again and a
toast is shown if it is still missing.

	gk := storage.NewGatekeeper(storage.NewPlatform())
	app.Register(gk)

# Android

The following entries must be present in AndroidManifest.xml:

	<uses-permission android:name="android.permission.MANAGE_EXTERNAL_STORAGE"/>
	<uses-permission android:name="android.permission.WRITE_EXTERNAL_STORAGE"/>

From Android 11 (API level 30) the broad grant, MANAGE_EXTERNAL_STORAGE,
is given on a settings screen rather than by a runtime dialog. Before
that, WRITE_EXTERNAL_STORAGE is a "dangerous" permission requested
elsewhere; the gatekeeper only reports its state. See documentation for
package github.com/krkr2/gatekeeper/app/permission for more information.
*/
package storage

// ManifestPermissions lists the AndroidManifest.xml permissions the
// gatekeeper relies on.
var ManifestPermissions = []string{
	PermissionManageExternalStorage,
	PermissionWriteExternalStorage,
}
