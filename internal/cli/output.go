package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Makepad-fr/todolist/internal/todo"
	"github.com/Makepad-fr/todolist/internal/ui"
)

// Exit codes (0 ok, 1 error, 2 usage).
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}

// wrap attaches an exit code to err based on its kind: a missing storage
// key is a configuration mistake (usage), anything else a runtime failure.
func wrap(message string, err error) *ExitError {
	code := ExitFailure
	if errors.Is(err, todo.ErrPrecondition) {
		code = ExitUsage
	}
	return &ExitError{Code: code, Message: message, Err: err}
}

// ExitCode extracts the exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// errorCode names an error kind in JSON output.
func errorCode(err error) string {
	switch {
	case errors.Is(err, todo.ErrDataFormat):
		return "DATA_FORMAT"
	case errors.Is(err, todo.ErrPrecondition):
		return "PRECONDITION"
	case ExitCode(err) == ExitUsage:
		return "USAGE"
	}
	return "FAILURE"
}

// response is the JSON envelope for --format json.
type response struct {
	Status string     `json:"status"`
	Data   any        `json:"data,omitempty"`
	Error  *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// printer writes command results as text or JSON.
type printer struct {
	json bool
	out  io.Writer
	err  io.Writer
}

// result prints data as JSON, or calls text for the human form.
func (p printer) result(data any, text func(w io.Writer)) error {
	if p.json {
		return json.NewEncoder(p.out).Encode(response{Status: "ok", Data: data})
	}
	text(p.out)
	return nil
}

func (p printer) failure(err error) {
	if p.json {
		_ = json.NewEncoder(p.out).Encode(response{
			Status: "error",
			Error:  &errorBody{Code: errorCode(err), Message: err.Error()},
		})
		return
	}
	ui.Fail(p.err, err.Error())
}
