// Package runtime provides the execution context for gitpilot commands.
//
// It wires shared dependencies once per invocation: the logger, the user
// configuration, the repository, the drafter that talks to copilot, the
// generation history and a lazily created GitHub client.
package runtime
