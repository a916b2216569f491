// Package capture records console output produced while rendering or
// handling widget callbacks, without letting a failure in that code
// crash the surrounding display cycle.
//
// The process-wide print function is the package-level Print variable.
// A Context with CapturePrint set swaps it for its own recorder on
// entry and restores the exact saved function on exit. Only one
// Context may be active at a time; the design is single-owner and
// single-threaded, so no locking is done.
package capture

import (
	"fmt"
	"runtime/debug"
)

// PrintFunc formats its arguments like fmt.Println: operands separated
// by spaces, terminated by a newline.
type PrintFunc func(args ...any)

// Print is the process-wide print function. Code that wants its output
// to land in an active capture scope calls this instead of fmt.Println
// directly.
var Print PrintFunc = stdPrint

func stdPrint(args ...any) {
	fmt.Println(args...)
}

// Stream identifies the channel of a captured entry.
type Stream string

const (
	// Stdout marks regular print output.
	Stdout Stream = "stdout"
	// Stderr marks captured failure diagnostics.
	Stderr Stream = "stderr"
)

// Entry is one captured text fragment.
type Entry struct {
	Stream Stream
	Text   string
}

// Result is the outcome of a captured scope. A failure inside the
// scope is recorded here and in the context's buffer; it is never
// propagated. The caller decides whether a non-OK result is fatal.
type Result struct {
	// Err is the error or recovered panic from the scope, nil on success.
	Err error
	// Diagnostic is the text appended to the stderr channel, empty on
	// success. For panics it includes the stack trace.
	Diagnostic string
}

// OK reports whether the scope completed without a failure.
func (r Result) OK() bool { return r.Err == nil }

// Context captures print output and failure diagnostics for one widget.
//
// The zero value is ready to use with capture disabled. Set
// CapturePrint before entering the scope to also redirect Print.
type Context struct {
	// CapturePrint controls whether entering the scope redirects the
	// process-wide Print function into this context.
	CapturePrint bool

	prev    PrintFunc
	entries []Entry
}

// Print records its arguments as stdout content, formatted exactly as
// the process-wide Print would have written them.
func (c *Context) Print(args ...any) {
	c.AppendStdout(fmt.Sprintln(args...))
}

// AppendStdout appends text to the stdout channel.
func (c *Context) AppendStdout(text string) {
	c.entries = append(c.entries, Entry{Stream: Stdout, Text: text})
}

// AppendStderr appends text to the stderr channel.
func (c *Context) AppendStderr(text string) {
	c.entries = append(c.entries, Entry{Stream: Stderr, Text: text})
}

// Entries returns the captured fragments in append order.
func (c *Context) Entries() []Entry {
	return c.entries
}

// Text returns the concatenated captured text for one stream.
func (c *Context) Text(s Stream) string {
	var out string
	for _, e := range c.entries {
		if e.Stream == s {
			out += e.Text
		}
	}
	return out
}

// Enter activates the scope. With CapturePrint set it saves the
// current process-wide Print and installs this context's recorder.
func (c *Context) Enter() {
	if c.CapturePrint {
		c.prev = Print
		Print = c.Print
	}
}

// Exit deactivates the scope, restoring the Print function saved by
// Enter. Safe to call when the scope never activated.
func (c *Context) Exit() {
	if c.CapturePrint && c.prev != nil {
		Print = c.prev
		c.prev = nil
	}
}

// Run executes fn inside the scope. Prints land in the stdout channel;
// a returned error or a panic is converted into a stderr diagnostic
// and reported via the Result instead of propagating. The saved Print
// function is restored on every exit path.
func (c *Context) Run(fn func() error) Result {
	c.Enter()
	var res Result
	func() {
		defer func() {
			if r := recover(); r != nil {
				res.Err = fmt.Errorf("panic: %v", r)
				res.Diagnostic = fmt.Sprintf("panic: %v\n\n%s", r, debug.Stack())
			}
		}()
		if err := fn(); err != nil {
			res.Err = err
			res.Diagnostic = err.Error() + "\n"
		}
	}()
	c.Exit()
	if res.Err != nil {
		c.AppendStderr(res.Diagnostic)
	}
	return res
}
