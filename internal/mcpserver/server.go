// Package mcpserver exposes the drafting operations as MCP tools so editors
// and agents can ask gitpilot for commit messages, PR descriptions and branch
// names over stdio.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"gitpilot.dev/gitpilot/internal/ai"
)

const serverName = "gitpilot"

// New creates the MCP server with every drafting tool registered
func New(drafter ai.Drafter, version string) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	commitTool := NewCommitMessagesTool(drafter)
	s.AddTool(commitTool.Definition(), commitTool.Handle)

	prTool := NewPRDescriptionTool(drafter)
	s.AddTool(prTool.Definition(), prTool.Handle)

	branchTool := NewBranchNameTool(drafter)
	s.AddTool(branchTool.Definition(), branchTool.Handle)

	return s
}

// Serve runs the server on stdin/stdout until the client disconnects
func Serve(drafter ai.Drafter, version string) error {
	return server.ServeStdio(New(drafter, version))
}

const instructions = `gitpilot drafts git artifacts with the GitHub Copilot CLI.
Every tool returns a usable result. When generation fails a deterministic
draft built from the input is returned instead.`
