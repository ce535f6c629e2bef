//go:build statsview
// +build statsview

// Package statsview optionally serves live runtime statistics for an
// emulation session over HTTP. It is compiled in only under the statsview
// build tag; the default build stubs it out so the core carries no web
// server.
//
// With the tag present, launching the emulator with -stats exposes
// graphical runtime statistics at
//
//	http://localhost:6502/debug/statsview
//
// and the standard Go pprof endpoints under /debug/pprof/.
package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Address the statistics server binds to when launched.
const Address = "localhost:6502"

// Launch starts the statistics server on a background goroutine and tells
// the user where to point a browser. The server runs for the life of the
// process; a step loop that halts does not stop it.
func Launch(output io.Writer) {
	viewer.SetConfiguration(viewer.WithAddr(Address))

	go statsview.New().Start()

	fmt.Fprintf(output, "runtime statistics at http://%s/debug/statsview\n", Address)
}

// Available reports whether this build can serve statistics.
func Available() bool {
	return true
}
