package ioexport

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/vmikk/adegenet/pkg/errcode"
)

// FormatError is returned for an unknown output format.
func FormatError(format string) error {
	msg := `Unknown output format <em>%s</em>

<em>Valid values are:</em>
  * csv
  * tsv
  * compact
  * pretty`
	vars := []any{format}
	return &gn.Error{
		Code: errcode.ExportFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown output format %q", format),
	}
}

// OpenError is returned when an export target cannot be opened.
func OpenError(target string, err error) error {
	msg := "Cannot open <em>%s</em> for results"
	vars := []any{target}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn.Name(), target, err),
	}
}

// WriteError is returned when results cannot be written.
func WriteError(target string, err error) error {
	msg := "Cannot write results to <em>%s</em>"
	vars := []any{target}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write to %s: %w", fn.Name(), target, err),
	}
}
