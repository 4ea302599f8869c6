// SPDX-License-Identifier: Unlicense OR MIT

// Command krkr2 makes sure the engine can read game files anywhere in
// shared storage before it starts.
//
// On Android the command is built as a shared library and loaded by an
// activity extending org.github.krkr2.GatekeeperActivity:
//
//	go build -buildmode=c-shared -ldflags="-X 'github.com/krkr2/gatekeeper/app.ID=org.github.krkr2'" -o libkrkr2.so .
//
// On other systems it runs the start sequence once and exits.
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
