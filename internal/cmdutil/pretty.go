package cmdutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

type PrettyHandlerOptions struct {
	SlogOpts slog.HandlerOptions
	Color    bool
}

// PrettyHandler renders records as one human-readable line:
//
//	[15:04:05.000] INFO: message key=value ...
type PrettyHandler struct {
	opts  PrettyHandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
	group string

	level map[slog.Level]*color.Color
	msg   *color.Color
	faint *color.Color
}

func NewPrettyHandler(out io.Writer, opts PrettyHandlerOptions) *PrettyHandler {
	h := &PrettyHandler{
		opts: opts,
		mu:   &sync.Mutex{},
		w:    out,
		level: map[slog.Level]*color.Color{
			slog.LevelDebug: color.New(color.FgMagenta),
			slog.LevelInfo:  color.New(color.FgBlue),
			slog.LevelWarn:  color.New(color.FgYellow),
			slog.LevelError: color.New(color.FgRed),
		},
		msg:   color.New(color.FgCyan),
		faint: color.New(color.FgWhite),
	}
	if !opts.Color {
		for _, c := range h.level {
			c.DisableColor()
		}
		h.msg.DisableColor()
		h.faint.DisableColor()
	} else {
		for _, c := range h.level {
			c.EnableColor()
		}
		h.msg.EnableColor()
		h.faint.EnableColor()
	}
	return h
}

func (h *PrettyHandler) Enabled(_ context.Context, l slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.SlogOpts.Level != nil {
		floor = h.opts.SlogOpts.Level.Level()
	}
	return l >= floor
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	lc := h.level[slog.LevelInfo]
	switch {
	case r.Level >= slog.LevelError:
		lc = h.level[slog.LevelError]
	case r.Level >= slog.LevelWarn:
		lc = h.level[slog.LevelWarn]
	case r.Level < slog.LevelInfo:
		lc = h.level[slog.LevelDebug]
	}

	var b strings.Builder
	b.WriteString(r.Time.Format("[15:04:05.000] "))
	b.WriteString(lc.Sprint(r.Level.String() + ":"))
	b.WriteByte(' ')
	b.WriteString(h.msg.Sprint(r.Message))

	var fields []string
	for _, a := range h.attrs {
		fields = appendAttr(fields, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, h.group, a)
		return true
	})
	if len(fields) > 0 {
		b.WriteByte(' ')
		b.WriteString(h.faint.Sprint(strings.Join(fields, " ")))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func appendAttr(dst []string, prefix string, a slog.Attr) []string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			dst = appendAttr(dst, key, ga)
		}
		return dst
	}
	v := a.Value.String()
	if strings.ContainsAny(v, " \t\"=") {
		v = fmt.Sprintf("%q", v)
	}
	return append(dst, key+"="+v)
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append(append([]slog.Attr(nil), h.attrs...), qualify(h.group, attrs)...)
	return &nh
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	nh.group = name
	return &nh
}

func qualify(group string, attrs []slog.Attr) []slog.Attr {
	if group == "" {
		return attrs
	}
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: group + "." + a.Key, Value: a.Value}
	}
	return out
}
