// Package cli holds the machine-readable output envelope shared by the
// fieldview subcommands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

const SchemaVersion = "1.0"

// Response wraps every --json result.
type Response struct {
	SchemaVersion string   `json:"schema_version"`
	Command       string   `json:"command"`
	Status        string   `json:"status"`
	Timestamp     string   `json:"timestamp"`
	Data          any      `json:"data,omitempty"`
	Error         *Problem `json:"error,omitempty"`
}

// Problem describes a failed command.
type Problem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
	Hint   string `json:"hint,omitempty"`
}

// Error codes.
const (
	CodeConfig  = "config"
	CodeCatalog = "catalog"
	CodeUsage   = "usage"
	CodeRuntime = "runtime"
)

// CodedError tags an error with a Problem code and an optional hint.
type CodedError struct {
	Code string
	Hint string
	Err  error
}

func (e *CodedError) Error() string { return e.Err.Error() }
func (e *CodedError) Unwrap() error { return e.Err }

// WithCode wraps err. A nil err stays nil.
func WithCode(code, hint string, err error) error {
	if err == nil {
		return nil
	}
	return &CodedError{Code: code, Hint: hint, Err: err}
}

func NewResponseOK(command string, data any, now time.Time) Response {
	return Response{
		SchemaVersion: SchemaVersion,
		Command:       command,
		Status:        "ok",
		Timestamp:     now.UTC().Format(time.RFC3339),
		Data:          data,
	}
}

// NewResponseError builds the envelope for err, picking up the code and
// hint of a wrapped CodedError.
func NewResponseError(command string, err error, now time.Time) Response {
	p := &Problem{Title: "command failed", Detail: err.Error(), Code: CodeRuntime}
	var coded *CodedError
	if errors.As(err, &coded) {
		p.Code = coded.Code
		p.Hint = coded.Hint
		p.Title = coded.Code + " error"
	}
	return Response{
		SchemaVersion: SchemaVersion,
		Command:       command,
		Status:        "error",
		Timestamp:     now.UTC().Format(time.RFC3339),
		Error:         p,
	}
}

// PrintJSON writes resp as a single line.
func PrintJSON(w io.Writer, resp Response) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode %s response: %w", resp.Command, err)
	}
	_, err = fmt.Fprintln(w, string(payload))
	return err
}
