// SPDX-License-Identifier: Unlicense OR MIT

// Package log redirects standard output and standard error to the
// Android log, where the standard log package otherwise goes unseen.
// It has no effect on other platforms.
package log
