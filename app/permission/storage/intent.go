// SPDX-License-Identifier: Unlicense OR MIT

package storage

// Android permission names.
const (
	PermissionManageExternalStorage = "android.permission.MANAGE_EXTERNAL_STORAGE"
	PermissionWriteExternalStorage  = "android.permission.WRITE_EXTERNAL_STORAGE"
)

// Settings actions that open the all files access screens.
const (
	// ActionManageAppAllFilesAccess opens the grant page of a single
	// package, named by the intent data.
	ActionManageAppAllFilesAccess = "android.settings.MANAGE_APP_ALL_FILES_ACCESS_PERMISSION"
	// ActionManageAllFilesAccess opens the list of every package that
	// requested the grant.
	ActionManageAllFilesAccess = "android.settings.MANAGE_ALL_FILES_ACCESS_PERMISSION"
)

// RequestCode is the correlation token of the settings request. It is
// echoed back as the request code of the activity result.
const RequestCode = 1

// An Intent describes a settings screen to launch.
type Intent struct {
	// Action is the intent action, such as ActionManageAllFilesAccess.
	Action string
	// Data is an optional URI, in the form Uri.parse accepts.
	Data string
}

// appAllFilesAccess returns the intent for the grant page of pkg.
func appAllFilesAccess(pkg string) Intent {
	return Intent{
		Action: ActionManageAppAllFilesAccess,
		Data:   "package:" + pkg,
	}
}

func allFilesAccess() Intent {
	return Intent{Action: ActionManageAllFilesAccess}
}
