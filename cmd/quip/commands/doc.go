// Package commands defines the quip CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login <username>             Sign in and remember the identity
//   - signup <username> <email>    Create an account and sign in
//   - logout                       Forget the remembered identity
//   - whoami                       Print the remembered identity
//
// # Implementation
//
// The root command loads configuration from QUIP_* environment variables,
// applies flag overrides, builds the dependency graph and restores the stored
// session before any subcommand runs, so every handler sees the same
// initialized session manager.
package commands
