package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(buf *bytes.Buffer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	return slog.New(&filteringHandler{underlying: slog.NewTextHandler(buf, opts)})
}

func TestSectionsFilterDebugLogs(t *testing.T) {
	t.Cleanup(func() { EnableSections(SectionLexer, SectionParser, SectionFrontend, SectionTypes, SectionBackend, SectionRepl, SectionCli) })
	EnableSections(SectionTypes)

	buf := &bytes.Buffer{}
	logger := testLogger(buf)

	logger.With("section", SectionBackend).Debug("hidden")
	assert.Empty(t, buf.String())

	logger.With("section", SectionTypes).Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "section=types")

	buf.Reset()
	logger.Debug("shown too", "section", SectionTypes)
	assert.Contains(t, buf.String(), "msg=\"shown too\"")
}

func TestSectionsMatchByPrefix(t *testing.T) {
	t.Cleanup(func() { EnableSections(SectionLexer, SectionParser, SectionFrontend, SectionTypes, SectionBackend, SectionRepl, SectionCli) })
	EnableSections(SectionFrontend)

	buf := &bytes.Buffer{}
	testLogger(buf).With("section", SectionFrontend+".program").Info("compiled")
	assert.Contains(t, buf.String(), "msg=compiled")
}

func TestWarningsIgnoreSections(t *testing.T) {
	t.Cleanup(func() { EnableSections(SectionLexer, SectionParser, SectionFrontend, SectionTypes, SectionBackend, SectionRepl, SectionCli) })
	EnableSections()

	buf := &bytes.Buffer{}
	testLogger(buf).With("section", SectionBackend).Warn("careful")
	assert.Contains(t, buf.String(), "msg=careful")
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel(slog.LevelError) })

	SetLevel(slog.LevelDebug)
	assert.Equal(t, slog.LevelDebug, level.Level())
}
