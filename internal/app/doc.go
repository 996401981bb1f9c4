// Package app wires application dependencies for the CLI.
//
// It loads Config from the environment, then builds the logger, the session
// store backend, the identity validator and the session manager, exposing them
// via the Wire struct for commands to use.
package app
