package note

import (
	"log/slog"

	"github.com/aretw0/notemeta/pkg/adapters/fs"
)

// options holds the configuration shared by notes and collections.
type options struct {
	store     fs.Store
	logger    *slog.Logger
	recursive bool
	include   string
}

// Option defines a functional option for loading notes.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		recursive: true,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.store == nil {
		o.store = fs.NewOS(fs.Config{Logger: o.logger})
	}
	return o
}

// WithStore replaces the filesystem collaborator (e.g. with a fake in tests).
func WithStore(store fs.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRecursive controls whether directories are walked into their
// subdirectories. Defaults to true.
func WithRecursive(recursive bool) Option {
	return func(o *options) {
		o.recursive = recursive
	}
}

// WithInclude restricts the files picked up from directories to those whose
// path relative to the directory matches a doublestar glob such as
// "**/*.md". Files passed explicitly are always loaded.
func WithInclude(pattern string) Option {
	return func(o *options) {
		o.include = pattern
	}
}
