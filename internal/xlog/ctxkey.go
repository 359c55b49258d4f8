// Package xlog threads logging attributes through a [context.Context] so
// the tail-decode phases can annotate their log records (file size, stripe
// index, codec) without plumbing a logger through every call.
package xlog

import (
	"context"
	"log/slog"
	"slices"
)

// attrsKey is the context key for attributes attached via [With] and
// [WithAttr]; unexported so no other package can collide with it. The
// stored value is a [slog.Value] of kind Group.
type attrsKey struct{}

// With returns a context with args stored as [slog.Attr]s, to be merged
// into records by the [WrapHandler] wrapper.
func With(ctx context.Context, args ...any) context.Context {
	return WithAttr(ctx, argsToAttrSlice(args)...)
}

// WithAttr returns a context with attrs stored on it, merged with and
// overriding any attrs already present on ctx.
func WithAttr(ctx context.Context, attrs ...slog.Attr) context.Context {
	if v, ok := ctx.Value(attrsKey{}).(slog.Value); ok {
		attrs = append(v.Group(), attrs...)
	}
	// Keep only the last occurrence of each key, dropping empty groups.
	seen := make(map[string]struct{}, len(attrs))
	del := func(a slog.Attr) bool {
		_, rm := seen[a.Key]
		seen[a.Key] = struct{}{}
		return rm || (a.Value.Kind() == slog.KindGroup && len(a.Value.Group()) == 0)
	}
	slices.Reverse(attrs)
	attrs = slices.DeleteFunc(attrs, del)
	slices.Reverse(attrs)

	return context.WithValue(ctx, attrsKey{}, slog.GroupValue(attrs...))
}

// attrs reports the attributes attached to ctx, if any.
func attrs(ctx context.Context) ([]slog.Attr, bool) {
	v, ok := ctx.Value(attrsKey{}).(slog.Value)
	if !ok {
		return nil, false
	}
	return v.Group(), true
}

// The following is adapted out of the [log/slog] package, which does not
// export its args-to-attr conversion.

func argsToAttrSlice(args []any) []slog.Attr {
	var (
		attr  slog.Attr
		attrs []slog.Attr
	)
	for len(args) > 0 {
		attr, args = argsToAttr(args)
		attrs = append(attrs, attr)
	}
	return attrs
}

func argsToAttr(args []any) (slog.Attr, []any) {
	const badKey = `!BADKEY`
	switch x := args[0].(type) {
	case string:
		if len(args) == 1 {
			return slog.String(badKey, x), nil
		}
		return slog.Any(x, args[1]), args[2:]
	case slog.Attr:
		return x, args[1:]
	default:
		return slog.Any(badKey, x), args[1:]
	}
}
