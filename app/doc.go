// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app connects Go code to the lifecycle of the host activity.

The host activity is the Java entry point of the application. It
forwards its creation and the results of activities it launched to Go,
where they are delivered to every registered Handler:

	func init() {
		app.Register(handler)
	}

Handlers replace subclassing the activity. They run on the main thread
and must not block it.

# Android

The activity must extend org.github.krkr2.GatekeeperActivity, whose
onCreate and onActivityResult call into this package. The native
library containing the Go program must be loaded before onCreate.

Other packages that call Java through JNI can use JavaVM and Activity to
obtain the handles of the running application.

# Permissions

The packages under github.com/krkr2/gatekeeper/app/permission request
operating-system permissions at start. Please see documentation for
package github.com/krkr2/gatekeeper/app/permission for more information.
*/
package app
