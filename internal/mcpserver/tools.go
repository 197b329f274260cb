package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"gitpilot.dev/gitpilot/internal/ai"
)

// jsonResult renders v as an indented JSON text result
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// CommitMessagesTool handles the generate_commit_messages tool.
type CommitMessagesTool struct {
	drafter ai.Drafter
}

// NewCommitMessagesTool creates a CommitMessagesTool
func NewCommitMessagesTool(drafter ai.Drafter) *CommitMessagesTool {
	return &CommitMessagesTool{drafter: drafter}
}

// Definition returns the MCP tool definition for registration.
func (t *CommitMessagesTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_commit_messages",
		mcp.WithDescription("Suggest up to three conventional commit messages for a unified diff, best first."),
		mcp.WithString("diff",
			mcp.Required(),
			mcp.Description("Unified diff of the staged changes, e.g. the output of `git diff --cached`"),
		),
	)
}

type commitMessagesResult struct {
	Messages []string `json:"messages"`
}

// Handle processes the generate_commit_messages tool call.
func (t *CommitMessagesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	diff := req.GetString("diff", "")
	if strings.TrimSpace(diff) == "" {
		return mcp.NewToolResultError("'diff' is required"), nil
	}
	return jsonResult(commitMessagesResult{Messages: t.drafter.GenerateCommitMessages(ctx, diff)})
}

// PRDescriptionTool handles the generate_pr_description tool.
type PRDescriptionTool struct {
	drafter ai.Drafter
}

// NewPRDescriptionTool creates a PRDescriptionTool
func NewPRDescriptionTool(drafter ai.Drafter) *PRDescriptionTool {
	return &PRDescriptionTool{drafter: drafter}
}

// Definition returns the MCP tool definition for registration.
func (t *PRDescriptionTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_pr_description",
		mcp.WithDescription("Draft a pull request title and markdown body from the commits on a branch."),
		mcp.WithArray("commits",
			mcp.Required(),
			mcp.Description("Commit messages on the branch, oldest first"),
			mcp.WithStringItems(),
		),
		mcp.WithString("issue_context",
			mcp.Description("Optional linked issue, e.g. \"#42: Login fails\" followed by the issue body"),
		),
	)
}

type prDescriptionResult struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Handle processes the generate_pr_description tool call.
func (t *PRDescriptionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	messages := req.GetStringSlice("commits", nil)
	commits := make([]ai.Commit, 0, len(messages))
	for _, msg := range messages {
		if msg = strings.TrimSpace(msg); msg != "" {
			commits = append(commits, ai.Commit{Message: msg})
		}
	}
	if len(commits) == 0 {
		return mcp.NewToolResultError("'commits' must contain at least one commit message"), nil
	}

	draft := t.drafter.GeneratePRDescription(ctx, commits, req.GetString("issue_context", ""))
	return jsonResult(prDescriptionResult{Title: draft.Title, Body: draft.Body})
}

// BranchNameTool handles the generate_branch_name tool.
type BranchNameTool struct {
	drafter ai.Drafter
}

// NewBranchNameTool creates a BranchNameTool
func NewBranchNameTool(drafter ai.Drafter) *BranchNameTool {
	return &BranchNameTool{drafter: drafter}
}

// Definition returns the MCP tool definition for registration.
func (t *BranchNameTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_branch_name",
		mcp.WithDescription("Suggest a branch name of the form type/[issue-]slug for a description of the work."),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What the branch is for"),
		),
		mcp.WithString("type",
			mcp.Description("Branch type prefix"),
			mcp.DefaultString(ai.DefaultBranchType),
			mcp.Enum(ai.BranchTypes...),
		),
		mcp.WithString("issue_number",
			mcp.Description("Optional issue number to include in the name"),
		),
	)
}

type branchNameResult struct {
	Branch string `json:"branch"`
}

// Handle processes the generate_branch_name tool call.
func (t *BranchNameTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	description := strings.TrimSpace(req.GetString("description", ""))
	if description == "" {
		return mcp.NewToolResultError("'description' is required"), nil
	}

	issue := strings.TrimPrefix(strings.TrimSpace(req.GetString("issue_number", "")), "#")
	if issue != "" {
		if _, err := strconv.Atoi(issue); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("'issue_number' must be a number, got %q", issue)), nil
		}
	}

	name := t.drafter.GenerateBranchName(ctx, description, req.GetString("type", ai.DefaultBranchType), issue)
	return jsonResult(branchNameResult{Branch: name})
}
