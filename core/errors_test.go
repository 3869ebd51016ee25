package core

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/fatih/color"
)

func Test_ErrorChain(t *testing.T) {
	err := CreateErr(nil, "this is the main error")

	got := err.ErrorWithCauses()
	want := "this is the main error"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func Test_ErrorChainWithCause(t *testing.T) {
	err1 := CreateErr(nil, "this is the main error")
	err2 := CreateErr(err1, "this is the 2nd error")

	got := err2.ErrorWithCauses()
	want := "this is the 2nd error\n ↳ this is the main error"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func Test_ErrorChainWithForeignCause(t *testing.T) {
	_, statErr := os.Stat("doesnt-exist")
	err := CreateErr(statErr, "unable to read connectivity file")

	got := err.ErrorWithCauses()
	want := "unable to read connectivity file\n ↳ " + statErr.Error()
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func Test_ErrorFormat(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	err := CreateErr(nil, "broken wiring").SetHint("check the port names")
	out := fmt.Sprintf("%v", err)

	want := "error:\n  broken wiring\n\nhint:\n  check the port names"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func Test_ErrorUnwrap(t *testing.T) {
	cause := &PortResolutionError{Node: "sim", Port: "spikes"}
	err := CreateErr(cause, "failed to wire 'sim'")

	if !errors.Is(err, &PortResolutionError{}) {
		t.Error("the typed cause must survive wrapping")
	}

	var pre *PortResolutionError
	if !errors.As(err, &pre) {
		t.Fatal("errors.As must find the typed cause")
	}
	if pre.Port != "spikes" {
		t.Errorf("expected port 'spikes', got %q", pre.Port)
	}
}

func Test_ErrorTaxonomyIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"schema violation", &SchemaViolationError{Node: "n", Parameter: "p", Reason: "r"}},
		{"port resolution", &PortResolutionError{Node: "n", Port: "p"}},
		{"type incompatibility", &TypeIncompatibilityError{FromNode: "a", ToNode: "b"}},
		{"cycle", &CycleError{Node: "n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := CreateErr(tt.err, "wrapped")
			if !errors.Is(wrapped, tt.err) {
				t.Error("wrapped error must match its own type")
			}
		})
	}
}
