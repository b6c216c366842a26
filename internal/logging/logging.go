// Package logging builds the slog handler shared by both binaries.
package logging

import (
	"fmt"
	"io"
	"log/slog"
)

// New returns a logger writing text or JSON records at the given level.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}

	return nil, fmt.Errorf("unknown log format %q", format)
}
