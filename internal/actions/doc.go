// Package actions provides the behavior behind each gitpilot command.
//
// Each action corresponds to a command (commit, pr, branch, models, config,
// history) and orchestrates the git, github and ai packages.
//
// Key patterns:
//   - Actions accept a runtime.Context which provides Splog, Repo, Drafter and other dependencies
//   - Drafting never fails; collaborator errors (git, GitHub, config) are returned to the caller
//   - Actions handle user interaction through the runtime's Prompter, and skip it when
//     the terminal is not interactive or the user passed --yes
package actions
