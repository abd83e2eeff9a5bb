package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Humanizer is implemented by results with a human-readable rendering.
type Humanizer interface {
	Human() string
}

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool

	Out    io.Writer // defaults to os.Stdout
	ErrOut io.Writer // defaults to os.Stderr
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out != nil {
		return f.Out
	}
	return os.Stdout
}

func (f *OutputFormatter) errOut() io.Writer {
	if f.ErrOut != nil {
		return f.ErrOut
	}
	return os.Stderr
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		switch v := data.(type) {
		case interface{ GetID() int }:
			_, err := fmt.Fprintf(f.out(), "%d\n", v.GetID())
			return err
		case interface{ GetKey() string }:
			_, err := fmt.Fprintln(f.out(), v.GetKey())
			return err
		case interface{ Keys() []string }:
			for _, k := range v.Keys() {
				if _, err := fmt.Fprintln(f.out(), k); err != nil {
					return err
				}
			}
			return nil
		}
	}

	if f.JSON {
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	return f.prettyPrint(data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(f.errOut(), "Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(f.errOut(), "Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err using its mapped code and suggestion.
func (f *OutputFormatter) Fail(err error) error {
	return f.ErrorWithSuggestion(ErrorCode(err), err.Error(), Suggestion(err))
}

func (f *OutputFormatter) prettyPrint(data any) error {
	switch v := data.(type) {
	case Humanizer:
		_, err := fmt.Fprintln(f.out(), v.Human())
		return err
	case string:
		_, err := fmt.Fprintln(f.out(), v)
		return err
	default:
		_, err := fmt.Fprintf(f.out(), "%+v\n", data)
		return err
	}
}
