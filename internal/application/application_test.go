package application

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eugenenazirov/config-bootstrap/internal/config"
)

type fakeConfig struct {
	debug string
}

func (f fakeConfig) GoString() string { return f.debug }

type countingLoader struct {
	calls int
	cfg   Config
	err   error
}

func (l *countingLoader) Load() (Config, error) {
	l.calls++
	return l.cfg, l.err
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRunWritesSingleLine(t *testing.T) {
	loader := &countingLoader{cfg: fakeConfig{debug: `AppConfig { name: "demo", port: 8080 }`}}
	var out bytes.Buffer

	if err := Run(loader, &out); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	want := "Loaded config: AppConfig { name: \"demo\", port: 8080 }\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
	if loader.calls != 1 {
		t.Fatalf("expected exactly one load, got %d", loader.calls)
	}
}

func TestRunPropagatesLoadError(t *testing.T) {
	cause := errors.New("malformed contents")
	loader := &countingLoader{err: cause}
	var out bytes.Buffer

	err := Run(loader, &out)
	if !errors.Is(err, cause) {
		t.Fatalf("expected error wrapping %v, got %v", cause, err)
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output on failure, got %q", out.String())
	}
	if loader.calls != 1 {
		t.Fatalf("expected no retry, got %d calls", loader.calls)
	}
}

func TestRunRejectsNilConfig(t *testing.T) {
	var out bytes.Buffer
	err := Run(LoaderFunc(func() (Config, error) { return nil, nil }), &out)
	if !errors.Is(err, ErrNilConfig) {
		t.Fatalf("expected ErrNilConfig, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestRunReportsWriteFailure(t *testing.T) {
	loader := &countingLoader{cfg: fakeConfig{debug: "cfg"}}
	err := Run(loader, failingWriter{})
	if err == nil {
		t.Fatalf("expected write error")
	}
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		t.Fatalf("write failure must not be reported as a load error")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	loader := &countingLoader{cfg: fakeConfig{debug: "AppConfig{}"}}
	var first, second bytes.Buffer

	if err := Run(loader, &first); err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}
	if err := Run(loader, &second); err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("expected identical output, got %q and %q", first.String(), second.String())
	}
}

func TestConfigLoaderAdaptsConfigPackage(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "empty.env")
	if err := os.WriteFile(envFile, nil, 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	name := "demo"
	lookup := func(string) (string, bool) { return "", false }

	loader := ConfigLoader(config.NewLoader(&config.Overrides{EnvFile: envFile, Name: &name},
		config.WithLookupEnv(lookup), config.WithWorkingDir(dir)))

	var out bytes.Buffer
	if err := Run(loader, &out); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.HasPrefix(out.String(), `Loaded config: AppConfig{Name: "demo"`) {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestConfigLoaderReturnsNilOnFailure(t *testing.T) {
	dir := t.TempDir()
	loader := ConfigLoader(config.NewLoader(&config.Overrides{ConfigFile: filepath.Join(dir, "missing.yaml"), EnvFile: filepath.Join(dir, "missing.env")},
		config.WithWorkingDir(dir)))

	cfg, err := loader.Load()
	if err == nil {
		t.Fatalf("expected error")
	}
	if cfg != nil {
		t.Fatalf("expected nil config on failure, got %#v", cfg)
	}
}
