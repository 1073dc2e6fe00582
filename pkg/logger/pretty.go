// Package logger holds the human-readable slog handler used for local runs.
package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

const (
	reset   = "\033[0m"
	red     = "\033[31m"
	yellow  = "\033[33m"
	blue    = "\033[34m"
	magenta = "\033[35m"
	gray    = "\033[90m"
)

func SetupPrettySlog() *slog.Logger {
	return slog.New(NewPrettyHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// PrettyHandler prints "time LEVEL msg {attrs}" with the level coloured.
type PrettyHandler struct {
	opts  slog.HandlerOptions
	w     io.Writer
	mu    *sync.Mutex
	attrs []slog.Attr
	group string
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.opts.Level != nil {
		min = h.opts.Level.Level()
	}
	return level >= min
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		h.put(fields, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.put(fields, a)
		return true
	})

	var extra []byte
	if len(fields) > 0 {
		b, err := json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return err
		}
		extra = b
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.w, "%s[%s]%s %s %s %s\n",
		gray, r.Time.Format("15:04:05.000"), reset,
		colorLevel(r.Level), r.Message, string(extra))
	return err
}

func (h *PrettyHandler) put(fields map[string]any, a slog.Attr) {
	key := a.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	v := a.Value.Resolve()
	if err, ok := v.Any().(error); ok {
		fields[key] = err.Error()
		return
	}
	fields[key] = v.Any()
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &c
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	c := *h
	if c.group != "" {
		name = c.group + "." + name
	}
	c.group = name
	return &c
}

func colorLevel(l slog.Level) string {
	s := l.String() + ":"
	switch {
	case l >= slog.LevelError:
		return red + s + reset
	case l >= slog.LevelWarn:
		return yellow + s + reset
	case l >= slog.LevelInfo:
		return blue + s + reset
	default:
		return magenta + s + reset
	}
}
