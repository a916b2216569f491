package capture

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func printerID(f PrintFunc) uintptr {
	return reflect.ValueOf(f).Pointer()
}

func TestPrintFormatting(t *testing.T) {
	c := &Context{CapturePrint: true}

	res := c.Run(func() error {
		Print("a", "b")
		return nil
	})

	if !res.OK() {
		t.Fatalf("Run failed: %v", res.Err)
	}
	if got := c.Text(Stdout); got != "a b\n" {
		t.Errorf("stdout capture = %q, want %q", got, "a b\n")
	}
	if got := c.Text(Stderr); got != "" {
		t.Errorf("stderr capture = %q, want empty", got)
	}
}

func TestPrintRestored(t *testing.T) {
	before := printerID(Print)

	c := &Context{CapturePrint: true}
	c.Run(func() error {
		if printerID(Print) == before {
			t.Errorf("Print was not redirected inside the scope")
		}
		return nil
	})

	if printerID(Print) != before {
		t.Errorf("Print was not restored after the scope")
	}
}

func TestPrintRestoredAfterFailure(t *testing.T) {
	before := printerID(Print)

	c := &Context{CapturePrint: true}
	c.Run(func() error { panic("boom") })

	if printerID(Print) != before {
		t.Errorf("Print was not restored after a panicking scope")
	}
}

func TestCaptureDisabled(t *testing.T) {
	before := printerID(Print)

	c := &Context{}
	c.Run(func() error {
		if printerID(Print) != before {
			t.Errorf("Print was redirected with CapturePrint unset")
		}
		return nil
	})

	if printerID(Print) != before {
		t.Errorf("Print changed after a non-capturing scope")
	}
}

func TestErrorBecomesDiagnostic(t *testing.T) {
	c := &Context{CapturePrint: true}

	res := c.Run(func() error {
		return errors.New("x")
	})

	if res.OK() {
		t.Fatal("Run reported success for a failing scope")
	}
	if !strings.Contains(c.Text(Stderr), "x") {
		t.Errorf("stderr capture %q does not contain the error text", c.Text(Stderr))
	}
	if !strings.Contains(res.Diagnostic, "x") {
		t.Errorf("Diagnostic %q does not contain the error text", res.Diagnostic)
	}
}

func TestPanicBecomesDiagnostic(t *testing.T) {
	c := &Context{CapturePrint: true}

	res := c.Run(func() error {
		panic("boom")
	})

	if res.OK() {
		t.Fatal("Run reported success for a panicking scope")
	}
	diag := c.Text(Stderr)
	if !strings.Contains(diag, "boom") {
		t.Errorf("diagnostic %q does not contain the panic value", diag)
	}
	if !strings.Contains(diag, "goroutine") {
		t.Errorf("diagnostic %q does not contain a stack trace", diag)
	}
}

func TestEntriesKeepOrder(t *testing.T) {
	c := &Context{CapturePrint: true}
	c.Run(func() error {
		Print("first")
		Print("second")
		return errors.New("third")
	})

	entries := c.Entries()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Stream != Stdout || entries[0].Text != "first\n" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Stream != Stdout || entries[1].Text != "second\n" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
	if entries[2].Stream != Stderr {
		t.Errorf("entries[2].Stream = %q, want stderr", entries[2].Stream)
	}
}

func TestExitWithoutEnter(t *testing.T) {
	before := printerID(Print)
	c := &Context{CapturePrint: true}
	c.Exit() // must not install or clear anything
	if printerID(Print) != before {
		t.Errorf("Exit without Enter changed the Print function")
	}
}
