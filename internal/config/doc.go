// Package config loads the application configuration from multiple sources
// (config file, process environment, dotenv file, CLI flags) with precedence:
// CLI flags > config file > environment > dotenv > defaults. The resolved
// AppConfig is validated before it is handed to the caller.
package config
