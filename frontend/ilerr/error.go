package ilerr

import (
	"errors"
	"fmt"
	"log/slog"
)

// Errors accumulates failures of independent runs, for example one per
// file checked by the CLI. A single pipeline run never produces more than one.
type Errors struct {
	errs []IleError
}

func (r *Errors) With(err ...IleError) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	r.errs = append(r.errs, err...)
	return r
}

// WithErr adds err if it is an IleError, or wraps it as Unclassified otherwise.
// A nil err leaves r unchanged.
func (r *Errors) WithErr(err error) *Errors {
	if err == nil {
		return r
	}
	var ileErr IleError
	if errors.As(err, &ileErr) {
		return r.With(ileErr)
	}
	return r.With(New(Unclassified{From: err}))
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil {
		return r
	}
	if len(err.errs) == 0 {
		return r
	}
	return r.With(err.errs...)
}

func (r *Errors) Errors() []IleError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	return len(r.errs) > 0
}

// Err joins all errors into one, or returns nil when there are none
func (r *Errors) Err() error {
	if !r.HasError() {
		return nil
	}
	joined := make([]error, len(r.errs))
	for i, e := range r.errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, v := range r.Errors() {
		vals = append(vals, slog.Attr{
			Key: fmt.Sprint("e", i),
			Value: slog.GroupValue(
				slog.Attr{
					Key:   "msg",
					Value: slog.StringValue(FormatWithCode(v)),
				},
			),
		})
	}
	return slog.GroupValue(vals...)
}
