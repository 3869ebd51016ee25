package core

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/neuroflow/neurorun-cli/utils"

	"github.com/fatih/color"
)

var (
	errEmoji  = "❌"
	hintEmoji = "💡"

	errorColor = color.New(color.FgRed).SprintFunc()
	hintColor  = color.New(color.FgYellow).SprintFunc()
	bold       = color.New(color.Bold).SprintFunc()
)

// SchemaViolationError reports an unknown parameter or a value that
// breaks the parameter's declared constraints.
type SchemaViolationError struct {
	Node      string
	Parameter string
	Reason    string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation at '%s.%s': %s", e.Node, e.Parameter, e.Reason)
}

func (e *SchemaViolationError) Is(target error) bool {
	_, ok := target.(*SchemaViolationError)
	return ok
}

// PortResolutionError reports a port name that does not exist on the
// requested side of a node.
type PortResolutionError struct {
	Node string
	Port string
}

func (e *PortResolutionError) Error() string {
	return fmt.Sprintf("node '%s' has no such port '%s'", e.Node, e.Port)
}

func (e *PortResolutionError) Is(target error) bool {
	_, ok := target.(*PortResolutionError)
	return ok
}

// TypeIncompatibilityError reports an output->input pair whose declared
// port types cannot be connected.
type TypeIncompatibilityError struct {
	FromNode string
	FromPort string
	ToNode   string
	ToPort   string
	FromType PortType
	ToType   PortType
}

func (e *TypeIncompatibilityError) Error() string {
	return fmt.Sprintf("the ports between '%s'.'%s' and '%s'.'%s' are not compatible (%v != %v)",
		e.FromNode, e.FromPort, e.ToNode, e.ToPort, e.FromType, e.ToType)
}

func (e *TypeIncompatibilityError) Is(target error) bool {
	_, ok := target.(*TypeIncompatibilityError)
	return ok
}

// CycleError reports that the connection graph contains a cycle. Node
// names one node that sits on the detected cycle.
type CycleError struct {
	Node string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("workflow contains a cycle through node '%s'", e.Node)
}

func (e *CycleError) Is(target error) bool {
	_, ok := target.(*CycleError)
	return ok
}

type CauseError struct {
	Message string
}

func (e *CauseError) Error() string {
	return e.Message
}

func (e *CauseError) Is(target error) bool {
	_, ok := target.(*CauseError)
	return ok
}

// LeafError carries a message chain from the failure site up to the
// caller, plus the Go stack captured at creation.
type LeafError struct {
	Message    string
	GoStack    []uintptr
	ErrorStack []error
	Cause      error
	Hint       string
}

func (e *LeafError) Error() string {
	return e.Message
}

func (e *LeafError) ErrorWithCauses() string {
	var lines []string

	// high-level messages first
	for i := len(e.ErrorStack) - 1; i >= 0; i-- {
		prefix := ""
		if len(lines) > 0 {
			prefix = strings.Repeat(" ", len(lines)) + "↳ "
		}
		lines = append(lines, prefix+e.ErrorStack[i].Error())
	}

	if e.Message != "" {
		prefix := ""
		if len(lines) > 0 {
			prefix = strings.Repeat(" ", len(lines)) + "↳ "
		}
		lines = append(lines, prefix+e.Message)
	}

	if e.Cause != nil {
		causeMsg := e.Cause.Error()
		if causeMsg != "" {
			p := strings.Repeat(" ", len(lines)) + "↳ "
			lines = append(lines, p+causeMsg)
		}
	}

	return strings.Join(lines, "\n")
}

func (e *LeafError) Unwrap() error {
	return e.Cause
}

func (e *LeafError) Is(target error) bool {
	_, ok := target.(*LeafError)
	return ok
}

func (e *LeafError) SetHint(hint string, formatArgs ...any) *LeafError {
	e.Hint = fmt.Sprintf(hint, formatArgs...)
	return e
}

// CreateErr wraps 'cause' with a formatted message. If the cause already
// contains a LeafError, the message is pushed onto its stack so the
// original Go stack and root cause survive.
func CreateErr(cause error, formatAndArgs ...any) *LeafError {
	var (
		message   string
		leafError *LeafError
	)

	if len(formatAndArgs) > 0 {
		format, args := formatAndArgs[0].(string), formatAndArgs[1:]
		message = fmt.Sprintf(format, args...)
	}

	if cause != nil && errors.As(cause, &leafError) {
		leafError.ErrorStack = append(leafError.ErrorStack, &CauseError{
			Message: message,
		})
	} else {
		stack := make([]uintptr, 64)

		leafError = &LeafError{
			GoStack:    stack[:runtime.Callers(2, stack)],
			Message:    message,
			Cause:      cause,
			ErrorStack: make([]error, 0),
		}
	}

	return leafError
}

func (e *LeafError) Format(f fmt.State, c rune) {
	switch c {
	case 'v':
		var tmpErrEmoji, tmpHintEmoji string
		if !color.NoColor {
			tmpErrEmoji = errEmoji + " "
			tmpHintEmoji = hintEmoji + " "
		}

		errorBlock := indentString(e.ErrorWithCauses(), 2)
		output := fmt.Sprintf("%s%s\n%s", tmpErrEmoji, bold("error:"), errorColor(errorBlock))

		if e.Hint != "" {
			hint := indentString(e.Hint, 2)
			output += fmt.Sprintf("\n\n%s%s\n%s", tmpHintEmoji, bold("hint:"), hintColor(hint))
		}

		if f.Flag('+') {
			output += fmt.Sprintf("\n\n%s\n%s", bold("stack trace:"), e.StackTrace())
		}

		fmt.Fprint(f, output)
	case 's':
		fmt.Fprint(f, e.Error())
	}
}

func (e *LeafError) StackTrace() string {
	return GetStacktrace(e.GoStack)
}

func indentString(input string, indentSpaces int) string {
	if input == "" {
		return ""
	}
	lines := strings.Split(input, "\n")
	indent := strings.Repeat(" ", indentSpaces)
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

func PrintError(err error) {
	var output string
	switch utils.GetLogLevel() {
	case utils.LogLevelNormal:
		output = fmt.Sprintf("%v\n", err)
	default: // debug or verbose is fully detailed
		output = fmt.Sprintf("%+v\n", err)
	}
	utils.LogErr.Error(output)
}

func GetStacktrace(stack []uintptr) string {
	var buffer bytes.Buffer
	frames := runtime.CallersFrames(stack)

	for {
		frame, more := frames.Next()
		buffer.WriteString(fmt.Sprintf("%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}

	return buffer.String()
}
