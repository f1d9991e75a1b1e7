package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/config-bootstrap/internal/application"
	"github.com/eugenenazirov/config-bootstrap/internal/config"
	"github.com/eugenenazirov/config-bootstrap/internal/logging"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var newLogger = logging.New

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	kingpinApp := kingpin.New("config-bootstrap", "Loads the application configuration and prints it")
	kingpinApp.UsageWriter(stderr)
	kingpinApp.ErrorWriter(stderr)

	terminated := false
	exitCode := exitOK
	kingpinApp.Terminate(func(code int) {
		terminated = true
		exitCode = code
	})

	configFile := kingpinApp.Flag("config", "Path to YAML or JSON configuration file").String()
	envFile := kingpinApp.Flag("env-file", "Path to dotenv file used as environment fallback (default .env)").String()
	name := kingpinApp.Flag("name", "Application name").String()
	host := kingpinApp.Flag("host", "Application host").String()
	port := kingpinApp.Flag("port", "Application port").Default("-1").Int()
	environment := kingpinApp.Flag("environment", "Deployment environment").String()
	logLevel := kingpinApp.Flag("log-level", "Diagnostic log level").Default("info").Enum("debug", "info", "warn", "error")

	_, err := kingpinApp.Parse(args)
	if terminated {
		return exitCode
	}
	if err != nil {
		kingpinApp.Errorf("%s, try --help", err)
		return exitUsage
	}

	overrides := &config.Overrides{
		ConfigFile: *configFile,
		EnvFile:    *envFile,
	}

	if *name != "" {
		overrides.Name = name
	}

	if *host != "" {
		overrides.Host = host
	}

	if *port >= 0 {
		overrides.Port = port
	}

	if *environment != "" {
		overrides.Env = environment
	}

	logger, err := newLogger(*logLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return exitError
	}
	defer func() {
		_ = logger.Sync()
	}()

	loader := application.ConfigLoader(config.NewLoader(overrides))
	if err := application.Run(loader, stdout); err != nil {
		var loadErr *application.LoadError
		if errors.As(err, &loadErr) {
			logger.Error("failed to load configuration", zap.Error(loadErr.Err))
		} else {
			logger.Error("failed to report configuration", zap.Error(err))
		}
		return exitError
	}

	logger.Debug("configuration loaded")
	return exitOK
}
