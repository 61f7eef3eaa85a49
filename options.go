package foiafix

import (
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/foiafix/pkg/constants"
	"github.com/agentstation/foiafix/pkg/errors"
	"github.com/agentstation/foiafix/pkg/registry"
)

// options holds the client configuration.
type options struct {
	registryFS    fs.FS
	registry      *registry.Registry
	inputFS       fs.FS
	outputDir     string
	formattedDir  string
	logger        *zerolog.Logger
	cacheTTL      time.Duration
	maxTextLength int
	indent        string
}

// Option is a function that configures a Client.
type Option func(*options) error

func defaults() *options {
	return &options{
		outputDir:     constants.DefaultOutputDir,
		formattedDir:  constants.DefaultFormattedDir,
		cacheTTL:      constants.CacheTTL,
		maxTextLength: constants.MaxTextLength,
		indent:        "    ",
	}
}

// apply applies the given options, then fills the file systems that were not
// configured from the default directories.
func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.registry == nil && o.registryFS == nil {
		o.registryFS = os.DirFS(constants.DefaultRegistryDir)
	}
	if o.inputFS == nil {
		o.inputFS = os.DirFS(constants.DefaultInputDir)
	}
	return o, nil
}

// WithRegistryFS loads the registry tables from fsys.
func WithRegistryFS(fsys fs.FS) Option {
	return func(o *options) error {
		if fsys == nil {
			return errors.NewValidationError("registry", nil, "file system cannot be nil")
		}
		o.registryFS = fsys
		return nil
	}
}

// WithRegistryDir loads the registry tables from a directory.
func WithRegistryDir(dir string) Option {
	return func(o *options) error {
		if dir == "" {
			return errors.NewValidationError("registry_dir", dir, "cannot be empty")
		}
		o.registryFS = os.DirFS(dir)
		return nil
	}
}

// WithRegistry uses an already built registry. It takes precedence over
// WithRegistryFS.
func WithRegistry(reg *registry.Registry) Option {
	return func(o *options) error {
		if reg == nil {
			return errors.NewValidationError("registry", nil, "cannot be nil")
		}
		o.registry = reg
		return nil
	}
}

// WithInputFS reads report documents from fsys, laid out as <year>/<file>.xml.
func WithInputFS(fsys fs.FS) Option {
	return func(o *options) error {
		if fsys == nil {
			return errors.NewValidationError("input", nil, "file system cannot be nil")
		}
		o.inputFS = fsys
		return nil
	}
}

// WithInputDir reads report documents from a directory.
func WithInputDir(dir string) Option {
	return func(o *options) error {
		if dir == "" {
			return errors.NewValidationError("input_dir", dir, "cannot be empty")
		}
		o.inputFS = os.DirFS(dir)
		return nil
	}
}

// WithOutputDir sets where canonical repaired documents are written.
func WithOutputDir(dir string) Option {
	return func(o *options) error {
		if dir == "" {
			return errors.NewValidationError("output_dir", dir, "cannot be empty")
		}
		o.outputDir = dir
		return nil
	}
}

// WithFormattedDir sets where indented repaired documents are written.
func WithFormattedDir(dir string) Option {
	return func(o *options) error {
		if dir == "" {
			return errors.NewValidationError("formatted_dir", dir, "cannot be empty")
		}
		o.formattedDir = dir
		return nil
	}
}

// WithLogger sets the logger. The package default is used otherwise.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithCache sets how long abbreviation resolutions are memoized. A zero ttl
// turns memoization off.
func WithCache(ttl time.Duration) Option {
	return func(o *options) error {
		if ttl < 0 {
			return errors.NewValidationError("cache_ttl", ttl, "cannot be negative")
		}
		o.cacheTTL = ttl
		return nil
	}
}

// WithMaxTextLength overrides the free-text length bound.
func WithMaxTextLength(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return errors.NewValidationError("max_text_length", n, "must be positive")
		}
		o.maxTextLength = n
		return nil
	}
}
