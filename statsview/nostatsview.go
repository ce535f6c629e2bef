//go:build !statsview
// +build !statsview

package statsview

import (
	"io"
)

// Address the statistics server would bind to; empty in builds without
// the statsview tag.
const Address = ""

// Launch is a no-op unless the binary was built with the statsview tag.
func Launch(output io.Writer) {
	io.WriteString(output, "runtime statistics not available in this build (requires the statsview build tag)\n")
}

// Available reports whether this build can serve statistics.
func Available() bool {
	return false
}
