package log

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
)

const (
	// MaxListElems is the number of list elements shown before the
	// value is elided.
	MaxListElems = 16

	// MaxStringLen is the number of string characters shown before
	// the value is elided.
	MaxStringLen = 256
)

// TruncatingHandler wraps an slog.Handler and shortens oversized
// attribute values. It integrates with standard slog APIs and works
// with any underlying handler (text, JSON).
type TruncatingHandler struct {
	// handler is the underlying slog handler receiving the
	// shortened records.
	handler slog.Handler
}

// NewTruncatingHandler creates a TruncatingHandler wrapping the given
// handler. If handler is nil, slog.Default()'s handler is used.
func NewTruncatingHandler(handler slog.Handler) *TruncatingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &TruncatingHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given
// level. It delegates to the underlying handler.
func (h *TruncatingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle shortens the record's attributes and passes it on.
func (h *TruncatingHandler) Handle(ctx context.Context, r slog.Record) error {
	shortened := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		shortened.AddAttrs(truncateAttr(a))
		return true
	})

	return h.handler.Handle(ctx, shortened)
}

// WithAttrs returns a new TruncatingHandler whose underlying handler
// carries the (shortened) attributes.
func (h *TruncatingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	shortened := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		shortened[i] = truncateAttr(a)
	}
	return &TruncatingHandler{handler: h.handler.WithAttrs(shortened)}
}

// WithGroup returns a new TruncatingHandler with the given group name.
func (h *TruncatingHandler) WithGroup(name string) slog.Handler {
	return &TruncatingHandler{handler: h.handler.WithGroup(name)}
}

// truncateAttr shortens a single attribute when its value is an
// oversized string or list.
func truncateAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()

	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if len(s) > MaxStringLen {
			return slog.String(a.Key, fmt.Sprintf("%s... (%d chars)", s[:MaxStringLen], len(s)))
		}
	case slog.KindGroup:
		attrs := v.Group()
		shortened := make([]any, 0, len(attrs))
		for _, ga := range attrs {
			shortened = append(shortened, truncateAttr(ga))
		}
		return slog.Group(a.Key, shortened...)
	case slog.KindAny:
		if summary, ok := truncateList(v.Any()); ok {
			return slog.String(a.Key, summary)
		}
	}
	return a
}

// truncateList summarizes slices and arrays longer than MaxListElems.
// The bool result is false when the value is not a list or is short
// enough to log as-is.
func truncateList(value any) (string, bool) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return "", false
	}
	n := rv.Len()
	if n <= MaxListElems {
		return "", false
	}

	head := make([]any, MaxListElems)
	for i := 0; i < MaxListElems; i++ {
		head[i] = rv.Index(i).Interface()
	}
	return fmt.Sprintf("%v... (%d total)", head, n), true
}
