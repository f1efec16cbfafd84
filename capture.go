package basil

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
)

// ErrPending is returned (or panicked) by a step handler that is
// registered but not yet implemented. The step is reported as
// unimplemented rather than failed.
var ErrPending = errors.New("not yet implemented")

// pendingMarker is the canonical panic payload a stub handler uses to
// declare itself unimplemented.
const pendingMarker = "not yet implemented"

const unknownOrigin = "unknown"

// capture is the shared diagnostic sink for the in-flight invocation.
// Sharing it is what forces strictly sequential step execution: two
// concurrent invocations would race on it and corrupt outcome
// attribution, so invoke refuses to run them.
var capture struct {
	mu   sync.Mutex
	sink *bytes.Buffer
}

// invocationMu serializes handler invocations.
var invocationMu sync.Mutex

// Logf writes diagnostic output on behalf of the running step handler.
// The output is collected by the invocation boundary and becomes the
// failure message if the step fails. Outside an invocation it is
// discarded.
func Logf(format string, args ...any) {
	capture.mu.Lock()
	defer capture.mu.Unlock()
	if capture.sink != nil {
		fmt.Fprintf(capture.sink, format, args...)
	}
}

// invoke runs exactly one handler invocation under the failure-capturing
// protocol and classifies the result. The capture sink is installed and
// torn down symmetrically around the call so it never leaks into the
// next step's execution.
func invoke(fn func() error) Outcome {
	if !invocationMu.TryLock() {
		return Outcome{Kind: Corrupted, Origin: unknownOrigin}
	}
	defer invocationMu.Unlock()

	capture.mu.Lock()
	if capture.sink != nil {
		// A previous invocation aborted without tearing its sink down;
		// captured output can no longer be attributed.
		capture.mu.Unlock()
		return Outcome{Kind: Corrupted, Origin: unknownOrigin}
	}
	sink := &bytes.Buffer{}
	capture.sink = sink
	capture.mu.Unlock()

	defer func() {
		capture.mu.Lock()
		capture.sink = nil
		capture.mu.Unlock()
	}()

	var out Outcome
	func() {
		defer func() {
			if v := recover(); v != nil {
				out = classifyAbort(v, sink.String(), panicOrigin())
			}
		}()
		out = classifyReturn(fn(), sink.String())
	}()
	return out
}

// classifyReturn maps a handler's error return to an outcome.
func classifyReturn(err error, output string) Outcome {
	switch {
	case err == nil:
		return Outcome{Kind: Passed}
	case errors.Is(err, ErrPending):
		return Outcome{Kind: Unimplemented}
	default:
		msg := output
		if msg == "" {
			msg = err.Error()
		}
		return Outcome{Kind: Failed, Message: msg, Origin: unknownOrigin}
	}
}

// classifyAbort maps an abnormal termination payload to an outcome.
func classifyAbort(v any, output, origin string) Outcome {
	rendered := renderPayload(v)
	if rendered == pendingMarker {
		return Outcome{Kind: Unimplemented}
	}

	msg := output
	if msg == "" {
		msg = "panicked with: " + rendered
	}
	return Outcome{Kind: Failed, Message: msg, Origin: origin}
}

func renderPayload(v any) string {
	switch p := v.(type) {
	case string:
		return p
	case error:
		return p.Error()
	default:
		return fmt.Sprintf("%v", p)
	}
}

// panicOrigin walks the stack of the recovering goroutine and returns
// the most specific source location of the panic site: the first
// non-runtime frame above runtime.gopanic.
func panicOrigin() string {
	pc := make([]uintptr, 64)
	n := runtime.Callers(0, pc)
	frames := runtime.CallersFrames(pc[:n])

	seenPanic := false
	for {
		frame, more := frames.Next()
		if frame.Function == "runtime.gopanic" {
			seenPanic = true
		} else if seenPanic && !strings.HasPrefix(frame.Function, "runtime.") {
			return fmt.Sprintf("%s:%d", frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return unknownOrigin
}
