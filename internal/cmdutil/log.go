// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LogOptions selects the stderr logger.
type LogOptions struct {
	Level  string // debug | info | warn | error
	Format string // text | json
	Quiet  bool   // only errors
	Color  bool
}

// NewLogger builds the run logger on w.
func NewLogger(w io.Writer, o LogOptions) (*slog.Logger, error) {
	var level slog.Level
	if s := strings.TrimSpace(o.Level); s != "" {
		if err := level.UnmarshalText([]byte(s)); err != nil {
			return nil, fmt.Errorf("invalid log level %q", o.Level)
		}
	}
	if o.Quiet && level < slog.LevelError {
		level = slog.LevelError
	}
	hopts := slog.HandlerOptions{Level: level}
	switch o.Format {
	case "", "text":
		return slog.New(NewPrettyHandler(w, PrettyHandlerOptions{SlogOpts: hopts, Color: o.Color})), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, &hopts)), nil
	}
	return nil, fmt.Errorf("invalid log format %q (want text|json)", o.Format)
}
