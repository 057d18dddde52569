// Package app contains the core application logic. It wires the loaded
// configuration, module registry, session and history store together and
// runs the calculator, decoupled from any specific entrypoint like a CLI.
package app
