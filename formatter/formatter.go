// Package formatter provides the reference consumers of the lifecycle
// event stream: a colorized terminal renderer and a structured JSON
// event emitter. The core only emits events; everything here is
// presentation.
package formatter

import (
	"fmt"
	"io"

	"github.com/tomatool/basil"
)

// New returns the named observer writing to out. Known formats are
// "pretty" and "events".
func New(format string, out io.Writer) (basil.Observer, error) {
	switch format {
	case "pretty":
		return NewPretty(out), nil
	case "events":
		return NewEvents(out), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Multi fans the event stream out to several observers in order.
func Multi(observers ...basil.Observer) basil.Observer {
	return multi(observers)
}
