package ai

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var branchShapeRegex = regexp.MustCompile(`^[a-z0-9-]+/(?:\d+-)?[a-z0-9-]+$`)

func TestSanitizeBranchName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		typ      string
		issue    string
		expected string
	}{
		{
			name:     "issue prefix",
			raw:      "Add User Auth!!",
			typ:      "feature",
			issue:    "123",
			expected: "feature/123-add-user-auth",
		},
		{
			name:     "no issue",
			raw:      "Fix   the   bug",
			typ:      "fix",
			expected: "fix/fix-the-bug",
		},
		{
			name:     "echoed type stripped case-insensitively",
			raw:      "Feature/new-thing",
			typ:      "feature",
			expected: "feature/new-thing",
		},
		{
			name:     "issue number is reduced to digits",
			raw:      "login",
			typ:      "feature",
			issue:    "#77",
			expected: "feature/77-login",
		},
		{
			name:     "empty type defaults",
			raw:      "login",
			typ:      "",
			expected: "feature/login",
		},
		{
			name:     "type is slugified",
			raw:      "login",
			typ:      "Hot Fix",
			expected: "hot-fix/login",
		},
		{
			name:     "empty slug becomes update",
			raw:      "!!!",
			typ:      "chore",
			expected: "chore/update",
		},
		{
			name:     "truncated without trailing hyphen",
			raw:      "implement the brand new dashboard with charts and filters for admins",
			typ:      "feature",
			issue:    "12",
			expected: "feature/12-implement-the-brand-new-dashboard-with",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SanitizeBranchName(tt.raw, tt.typ, tt.issue)
			require.Equal(t, tt.expected, got)
			require.LessOrEqual(t, len(got), MaxBranchNameLength)
		})
	}
}

func TestBranchNameInvariants(t *testing.T) {
	t.Parallel()

	descriptions := []string{
		"",
		"Add User Auth!!",
		"  leading and trailing spaces  ",
		"---dashes---everywhere---",
		"UPPER lower MiXeD 123",
		"emoji 🚀 launch",
		"café crème brûlée",
		"don't break the #42 build",
		"feature/echoed",
		"123-already-prefixed",
		"path/to/some_file.go: fix nil pointer dereference in the request handler loop",
		strings.Repeat("a", 200),
		strings.Repeat("ab-", 40),
		strings.Repeat("word ", 30),
		"`code` \"quoted\" 'single'",
	}
	types := []string{"feature", "fix", "chore", "docs", "refactor"}
	issues := []string{"", "1", "123", "9999999999", "#55"}

	for _, desc := range descriptions {
		for _, typ := range types {
			for _, issue := range issues {
				for _, name := range []string{
					SanitizeBranchName(desc, typ, issue),
					FallbackBranchName(desc, typ, issue),
				} {
					require.Regexp(t, branchShapeRegex, name, "desc=%q type=%q issue=%q", desc, typ, issue)
					require.LessOrEqual(t, len(name), MaxBranchNameLength, name)
					require.NotContains(t, name, "--", name)
					require.True(t, strings.HasPrefix(name, typ+"/"), name)

					slug := strings.TrimPrefix(name, typ+"/")
					if digits := strings.TrimPrefix(issue, "#"); digits != "" {
						require.True(t, strings.HasPrefix(slug, digits+"-"), name)
						slug = strings.TrimPrefix(slug, digits+"-")
					}
					require.NotEmpty(t, slug, name)
					require.False(t, strings.HasPrefix(slug, "-"), name)
					require.False(t, strings.HasSuffix(slug, "-"), name)
				}
			}
		}
	}
}

func TestFallbackBranchName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "feature/123-add-user-auth", FallbackBranchName("Add User Auth!!", "feature", "123"))
	require.Equal(t, "fix/dont-break-the-42-build", FallbackBranchName("don't break the #42 build", "fix", ""))
	require.Equal(t, "docs/update-readme", FallbackBranchName("Update \"README\"", "docs", ""))
}
