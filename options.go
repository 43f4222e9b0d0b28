package xrefix

import (
	"compress/zlib"
	"log/slog"
)

// Options holds configuration for a rebuild.
type Options struct {
	// zlib level for the rebuilt stream
	compressionLevel int

	// nil means the package logger
	logger *slog.Logger

	// missing %PDF- header is an error instead of a warning
	strictHeader bool
}

// defaultOptions returns the default rebuild options.
func defaultOptions() Options {
	return Options{
		compressionLevel: zlib.BestCompression,
		logger:           nil,
		strictHeader:     false,
	}
}

// clone creates a copy of Options.
func (o Options) clone() Options {
	return Options{
		compressionLevel: o.compressionLevel,
		logger:           o.logger,
		strictHeader:     o.strictHeader,
	}
}

// validLevel reports whether level is accepted by compress/zlib
func validLevel(level int) bool {
	return level >= zlib.HuffmanOnly && level <= zlib.BestCompression
}
