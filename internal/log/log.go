package log

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/cottand/tyl/frontend/ast"
)

// Sections a logger can be tagged with via With("section", ...)
const (
	SectionLexer    = "lexer"
	SectionParser   = "parser"
	SectionFrontend = "frontend"
	SectionTypes    = "types"
	SectionBackend  = "backend"
	SectionRepl     = "repl"
	SectionCli      = "cli"
)

var enabledSections = []string{
	SectionLexer,
	SectionParser,
	SectionFrontend,
	SectionTypes,
	SectionBackend,
	SectionRepl,
	SectionCli,
}

var level = func() *slog.LevelVar {
	l := &slog.LevelVar{}
	l.Set(slog.LevelError)
	return l
}()

var LoggerOpts = &slog.HandlerOptions{
	AddSource: true,
	Level:     level,
	ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == "time" {
			return slog.Attr{}
		}
		return a
	},
}

var DefaultLogger = slog.New(ast.ExprHandler(&filteringHandler{underlying: slog.NewTextHandler(os.Stderr, LoggerOpts)}))

// SetLevel changes the level of DefaultLogger and every logger derived from it
func SetLevel(l slog.Level) {
	level.Set(l)
}

// ParseLevel maps "debug", "info", "warn" or "error" to a slog.Level
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(s))
	return l, err
}

// EnableSections restricts debug and info logs to the given sections.
// Warnings and errors are always logged.
func EnableSections(sections ...string) {
	enabledSections = sections
}

var _ slog.Handler = &filteringHandler{}

type filteringHandler struct {
	underlying slog.Handler
	sections   []string
}

func (f filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return f.underlying.Enabled(ctx, level)
}

func (f filteringHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelWarn {
		return f.underlying.Handle(ctx, record)
	}
	// sections attached through WithAttrs
	if slices.ContainsFunc(f.sections, isEnabled) {
		return f.underlying.Handle(ctx, record)
	}
	wantSection := false
	record.Attrs(func(attr slog.Attr) bool {
		wantSection = wantSection || attr.Key == "section" && isEnabled(attr.Value.String())
		// iterate as long as we have not found our section
		return !wantSection
	})
	if !wantSection {
		return nil
	}
	return f.underlying.Handle(ctx, record)
}

func isEnabled(section string) bool {
	return slices.ContainsFunc(enabledSections, func(enabled string) bool {
		return strings.HasPrefix(section, enabled)
	})
}

func (f filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, 0, len(attrs))
	sections := slices.Clone(f.sections)

	// keep the section attribute in filteringHandler, but still print it
	for _, attr := range attrs {
		if attr.Key == "section" {
			sections = append(sections, attr.Value.String())
		}
		newAttrs = append(newAttrs, attr)
	}
	return &filteringHandler{
		underlying: f.underlying.WithAttrs(newAttrs),
		sections:   sections,
	}
}

func (f filteringHandler) WithGroup(name string) slog.Handler {
	return &filteringHandler{
		underlying: f.underlying.WithGroup(name),
		sections:   f.sections,
	}
}
