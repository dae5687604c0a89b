package cli

import (
	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/formats"
)

// Exit codes follow sysexits(3).
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 64
	ExitData     = 65
	ExitInternal = 70
	ExitIO       = 74
	ExitConfig   = 78
)

// ErrorMessage renders err for the terminal. Parse failures are shown as
// "file:line:column: Format error: message" so editors can jump to them.
func ErrorMessage(err error) string {
	if errors.IsErrorCode(err, errors.ErrParseFailure) {
		details := errors.GetErrorDetails(err)
		if ext, ok := details[errors.DetailFormat].(string); ok {
			if d, ferr := formats.ByName(ext); ferr == nil {
				path, _ := details[errors.DetailPath].(string)
				return d.FormatFailure(path, err)
			}
		}
	}
	return "Error: " + err.Error()
}

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch errors.GetErrorCode(err) {
	case errors.ErrInvalidInput, errors.ErrUnsupportedFormat, errors.ErrIdenticalFormats,
		errors.ErrFormatUndetermined, errors.ErrTargetUndetermined:
		return ExitUsage
	case errors.ErrParseFailure, errors.ErrDumpFailure:
		return ExitData
	case errors.ErrIOFailure:
		return ExitIO
	case errors.ErrConfigLoad, errors.ErrConfigParse:
		return ExitConfig
	case errors.ErrInternal:
		return ExitInternal
	default:
		return ExitFailure
	}
}

// IsUsageError reports whether err came from the command line parser rather
// than from a conversion.
func IsUsageError(err error) bool {
	return errors.GetErrorCode(err) == errors.ErrUnknown
}
