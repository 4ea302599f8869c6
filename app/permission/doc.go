// SPDX-License-Identifier: Unlicense OR MIT

/*
Package permission includes sub-packages that obtain specific
operating-system permissions when the application starts. For example,
a program that needs access to every file in shared storage registers
the gatekeeper of the storage package:

	package main

	import (
		"github.com/krkr2/gatekeeper/app"
		"github.com/krkr2/gatekeeper/app/permission/storage"
	)

	func init() {
		app.Register(storage.NewGatekeeper(storage.NewPlatform()))
	}

	func main() {
		app.Main()
	}

Registration happens in init because on Android the program is loaded
as a library and main is not run before the activity starts.

Android -- Special Permissions

Some permissions on Android are not granted through the runtime
permission dialog but on a system settings screen. The gatekeepers send
the user to that screen and check the grant when they come back. The
permissions must still be declared in AndroidManifest.xml; each
sub-package documents its entries.
*/
package permission
