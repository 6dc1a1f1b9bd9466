// Package logging provides the slog handler the binaries install on stderr.
// Stdout belongs to the engine, so diagnostics must never reach it.
package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Options struct {
	Level     slog.Leveler
	AddSource bool
	// Indent spreads each record over several lines.
	Indent bool
}

// JSONHandler writes one JSON object per record.
type JSONHandler struct {
	w      io.Writer
	mu     *sync.Mutex
	opts   Options
	attrs  []boundAttr
	groups []string
}

// boundAttr remembers the groups that were open when WithAttrs was called.
type boundAttr struct {
	groups []string
	attr   slog.Attr
}

func NewJSONHandler(w io.Writer, opts *Options) *JSONHandler {
	h := &JSONHandler{w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	return h
}

// New returns a logger writing to w at the given level.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(NewJSONHandler(w, &Options{Level: level}))
}

// ParseLevel accepts debug, info, warn or error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return l, nil
}

func (h *JSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *JSONHandler) Handle(_ context.Context, r slog.Record) error {
	payload := make(map[string]any, 6)

	when := r.Time
	if when.IsZero() {
		when = time.Now()
	}
	payload["time"] = when.Format(time.RFC3339Nano)
	payload["level"] = r.Level.String()
	payload["msg"] = r.Message

	if h.opts.AddSource {
		payload["source"] = sourceFromPC(r.PC)
	}

	for _, a := range h.attrs {
		addAttr(payload, a.groups, a.attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(payload, h.groups, a)
		return true
	})

	var b []byte
	var err error
	if h.opts.Indent {
		b, err = json.MarshalIndent(payload, "", "  ")
	} else {
		b, err = json.Marshal(payload)
	}
	if err != nil {
		// Never drop the message itself.
		b = []byte(`{"time":` + strconv.Quote(payload["time"].(string)) +
			`,"level":` + strconv.Quote(r.Level.String()) +
			`,"msg":` + strconv.Quote(r.Message) +
			`,"log_error":` + strconv.Quote(err.Error()) + `}`)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(append(b, '\n'))
	return err
}

func (h *JSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]boundAttr(nil), h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, boundAttr{groups: h.groups, attr: a})
	}
	return &clone
}

func (h *JSONHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func addAttr(root map[string]any, groups []string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	dst := root
	for _, g := range groups {
		m, ok := dst[g].(map[string]any)
		if !ok {
			m = map[string]any{}
			dst[g] = m
		}
		dst = m
	}
	addAttrToMap(dst, attr)
}

func addAttrToMap(dst map[string]any, attr slog.Attr) {
	v := attr.Value.Resolve()
	if v.Kind() != slog.KindGroup {
		dst[attr.Key] = valueToAny(v)
		return
	}

	group := v.Group()
	if len(group) == 0 {
		return
	}
	// An unnamed group inlines its members.
	child := dst
	if attr.Key != "" {
		child = map[string]any{}
		dst[attr.Key] = child
	}
	for _, ga := range group {
		if ga.Key != "" || ga.Value.Kind() == slog.KindGroup {
			addAttrToMap(child, ga)
		}
	}
}

func valueToAny(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindAny:
		switch a := v.Any().(type) {
		case error:
			return a.Error()
		case json.Marshaler:
			return a
		case fmt.Stringer:
			return a.String()
		default:
			return a
		}
	default:
		return v.String()
	}
}

func sourceFromPC(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	f, _ := frames.Next()
	if f.File == "" {
		return ""
	}
	file := f.File
	if idx := strings.LastIndexByte(file, '/'); idx >= 0 {
		file = file[idx+1:]
	}
	return file + ":" + strconv.Itoa(f.Line)
}
