// Package app wires the application together: it configures logging, loads
// the deployfile, registers the stage and application modules, and drives
// the boot pipeline to its terminal state.
package app
