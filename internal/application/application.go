package application

import (
	"errors"
	"fmt"
	"io"

	"github.com/eugenenazirov/config-bootstrap/internal/config"
)

// ErrNilConfig is returned when a loader reports success without a configuration.
var ErrNilConfig = errors.New("loader returned no configuration")

// Config is the debug capability required from a loaded configuration.
type Config interface {
	fmt.GoStringer
}

// Loader produces a configuration through a single fallible call.
type Loader interface {
	Load() (Config, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func() (Config, error)

// Load calls f.
func (f LoaderFunc) Load() (Config, error) {
	return f()
}

// ConfigLoader adapts a config.Loader to the Loader interface.
func ConfigLoader(l *config.Loader) Loader {
	return LoaderFunc(func() (Config, error) {
		cfg, err := l.Load()
		if err != nil {
			return nil, err
		}
		return cfg, nil
	})
}

// LoadError reports a failure surfaced by the configuration loader.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return "load configuration: " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Run loads the configuration and writes its debug form to out as one line.
// Nothing is written when loading fails.
func Run(loader Loader, out io.Writer) error {
	cfg, err := loader.Load()
	if err != nil {
		return &LoadError{Err: err}
	}
	if cfg == nil {
		return &LoadError{Err: ErrNilConfig}
	}

	if _, err := io.WriteString(out, FormatLine(cfg)); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}

// FormatLine returns the newline-terminated report line for cfg.
func FormatLine(cfg Config) string {
	return fmt.Sprintf("Loaded config: %#v\n", cfg)
}
