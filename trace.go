package microjson

import (
	"io"
	"log/slog"
)

// traceLogger is the process-wide debug sink: a severity threshold and a
// write destination, installed once and shared by every parse call. When
// nil (the default), the core performs no observable side effects beyond
// reading input and writing destinations.
//
// Modeled on MacroPower-x/log's level-and-writer-to-handler helpers; a
// plain log/slog handler is the ecosystem-idiomatic shape for this in the
// retrieval pack, without pulling in a terminal-UI logging stack that
// nothing here would exercise.
var traceLogger *slog.Logger

// EnableDebug installs (or, with a nil writer, removes) the process-wide
// trace sink. It is not safe to call concurrently with an in-flight parse.
func EnableDebug(level slog.Level, w io.Writer) {
	if w == nil {
		traceLogger = nil
		return
	}
	traceLogger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// trace emits a best-effort debug record. A nil traceLogger (the default)
// makes this a no-op, so callers can sprinkle it freely without a branch
// at every call site.
func trace(msg string, args ...any) {
	if traceLogger == nil {
		return
	}
	traceLogger.Debug(msg, args...)
}

// fail traces the first fault a parse call encounters and returns it
// unchanged, so every non-OK status leaving readObject or readArray is
// observable at the point it was first detected, not just success paths.
func fail(pos int, st Status) (int, Status) {
	trace("microjson: parse fault", "status", st.String(), "pos", pos)
	return pos, st
}
