package iometrics

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/vmikk/adegenet/pkg/errcode"
)

// RegisterError is returned when a metric cannot be registered.
func RegisterError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MetricsRegisterError,
		Msg:  "Cannot register metrics",
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}

// WriteError is returned when metrics cannot be saved.
func WriteError(path string, err error) error {
	msg := "Cannot write metrics to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MetricsWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn.Name(), path, err),
	}
}
