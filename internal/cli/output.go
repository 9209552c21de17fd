package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/tarefas/internal/model"
	"github.com/idilsaglam/tarefas/internal/store/jsonstore"
)

// Exit codes returned by Main.
const (
	ExitOK       = 0 // success
	ExitFailure  = 1 // storage or internal error
	ExitUsage    = 2 // bad arguments, flags or config
	ExitNotFound = 3 // task id not in the store
)

// ExitError carries the exit code a command wants the process to end with.
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

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Errors that are not an *ExitError map to ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// storeError classifies an error from the task store.
func storeError(op string, err error) error {
	if errors.Is(err, jsonstore.ErrEmptyTitle) {
		return WrapExitError(ExitUsage, op, err)
	}
	return WrapExitError(ExitFailure, op, err)
}

// usageArgs turns cobra's argument validation failures into usage errors.
func usageArgs(check cobra.PositionalArgs, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return NewExitError(ExitUsage, usage)
		}
		return nil
	}
}

var validFormats = []string{"text", "json", "yaml"}

// writeTasks prints tasks as JSON or YAML.
func writeTasks(w io.Writer, format string, tasks []model.Task) error {
	switch format {
	case "json":
		b, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(tasks)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(b)
		return err
	}
	return fmt.Errorf("unsupported format %q", format)
}
