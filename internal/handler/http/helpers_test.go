package http

import (
	"io"

	"github.com/rs/zerolog"
)

// newBufferLogger creates a logger that writes JSON lines to w.
func newBufferLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
