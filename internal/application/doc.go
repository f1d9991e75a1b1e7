// Package application provides the bootstrap flow: it loads the application
// configuration once and reports it, keeping the main package focused on CLI
// parsing and process exit codes.
package application
