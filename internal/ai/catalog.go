package ai

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Tier is a coarse cost bucket for a model
type Tier string

const (
	TierFree      Tier = "Free"
	TierCheap     Tier = "Cheap"
	TierBalanced  Tier = "Balanced"
	TierExpensive Tier = "Expensive"
	TierNew       Tier = "New"
)

// DefaultModel is used when no model is configured
const DefaultModel = "claude-sonnet-4.5"

// discoverTimeout bounds the help call made by Discover
const discoverTimeout = 10 * time.Second

// ModelDescriptor holds cost metadata for a model id.
// CostMultiplier is nil when the cost is unknown.
type ModelDescriptor struct {
	ID             string
	Tier           Tier
	Description    string
	CostMultiplier *float64
}

// CostLabel renders the multiplier for display, e.g. "1x" or "free".
func (d ModelDescriptor) CostLabel() string {
	if d.CostMultiplier == nil {
		return "unknown cost"
	}
	if *d.CostMultiplier == 0 {
		return "free"
	}
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", *d.CostMultiplier), "0"), ".") + "x"
}

func multiplier(v float64) *float64 {
	return &v
}

// catalog is ordered; listing order is the display order.
var catalog = []ModelDescriptor{
	{ID: "claude-sonnet-4.5", Tier: TierBalanced, Description: "Anthropic Claude Sonnet 4.5", CostMultiplier: multiplier(1)},
	{ID: "claude-sonnet-4", Tier: TierBalanced, Description: "Anthropic Claude Sonnet 4", CostMultiplier: multiplier(1)},
	{ID: "claude-haiku-4.5", Tier: TierCheap, Description: "Anthropic Claude Haiku 4.5, fast and cheap", CostMultiplier: multiplier(0.33)},
	{ID: "claude-opus-4.1", Tier: TierExpensive, Description: "Anthropic Claude Opus 4.1, highest quality", CostMultiplier: multiplier(10)},
	{ID: "gpt-5", Tier: TierBalanced, Description: "OpenAI GPT-5", CostMultiplier: multiplier(1)},
	{ID: "gpt-5-codex", Tier: TierBalanced, Description: "OpenAI GPT-5 Codex", CostMultiplier: multiplier(1)},
	{ID: "gpt-4.1", Tier: TierFree, Description: "OpenAI GPT-4.1, included in every plan", CostMultiplier: multiplier(0)},
	{ID: "gpt-5-mini", Tier: TierFree, Description: "OpenAI GPT-5 mini, included in every plan", CostMultiplier: multiplier(0)},
	{ID: "gpt-4o", Tier: TierFree, Description: "OpenAI GPT-4o, included in every plan", CostMultiplier: multiplier(0)},
}

// freeTierIDs is ordered; the first entry is the retry target.
var freeTierIDs = []string{"gpt-4.1", "gpt-5-mini", "gpt-4o"}

// discoverFallback is returned by Discover when the tool cannot be queried
var discoverFallback = []string{"claude-sonnet-4.5", "gpt-5", "gpt-4.1"}

// Describe returns the descriptor for id. Unknown ids get tier New with an
// unknown multiplier; an empty id describes the tool's own default model.
func Describe(id string) ModelDescriptor {
	if id == "" {
		id = DefaultModel
	}
	for _, d := range catalog {
		if d.ID == id {
			return d
		}
	}
	return ModelDescriptor{
		ID:          id,
		Tier:        TierNew,
		Description: "Model not in the built-in catalog",
	}
}

// IsFreeTier reports whether id consumes no metered quota
func IsFreeTier(id string) bool {
	for _, free := range freeTierIDs {
		if free == id {
			return true
		}
	}
	return false
}

// FreeTierFallbackID returns the model used for the single quota retry
func FreeTierFallbackID() string {
	return freeTierIDs[0]
}

// Catalog returns a copy of the built-in model table
func Catalog() []ModelDescriptor {
	out := make([]ModelDescriptor, len(catalog))
	copy(out, catalog)
	return out
}

// Notice formats the one-line cost notice shown before a call
func Notice(d ModelDescriptor) string {
	switch d.Tier {
	case TierFree:
		return fmt.Sprintf("Using %s (free tier, no premium requests)", d.ID)
	case TierNew:
		return fmt.Sprintf("Using %s (cost unknown, may consume premium requests)", d.ID)
	default:
		return fmt.Sprintf("Using %s (%s tier, %s premium requests per call)", d.ID, strings.ToLower(string(d.Tier)), d.CostLabel())
	}
}

// HelpSource returns the help text of the generation tool
type HelpSource interface {
	Help(ctx context.Context) (string, error)
}

var (
	// modelChoicesRegex captures the choices list following the --model flag in help output
	modelChoicesRegex = regexp.MustCompile(`--model <model>[\s\S]*?\(choices:\s*([^)]*)\)`)

	// quotedRegex matches one quoted choice
	quotedRegex = regexp.MustCompile(`"([^"]+)"`)
)

// ParseModelChoices extracts model ids from the tool's help text.
// Returns nil when the help text has no recognizable choices list.
func ParseModelChoices(help string) []string {
	m := modelChoicesRegex.FindStringSubmatch(help)
	if m == nil {
		return nil
	}
	var ids []string
	seen := make(map[string]bool)
	for _, q := range quotedRegex.FindAllStringSubmatch(m[1], -1) {
		id := strings.TrimSpace(q[1])
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// Discover asks the tool for its supported models. It never fails: on any
// problem it returns a fixed list of well-known models.
func Discover(ctx context.Context, src HelpSource) (models []ModelDescriptor) {
	defer func() {
		if r := recover(); r != nil {
			models = describeAll(discoverFallback)
		}
	}()

	if src == nil {
		return describeAll(discoverFallback)
	}

	ctx, cancel := context.WithTimeout(ctx, discoverTimeout)
	defer cancel()

	help, err := src.Help(ctx)
	if err != nil {
		return describeAll(discoverFallback)
	}
	ids := ParseModelChoices(help)
	if len(ids) == 0 {
		return describeAll(discoverFallback)
	}
	return describeAll(ids)
}

func describeAll(ids []string) []ModelDescriptor {
	out := make([]ModelDescriptor, 0, len(ids))
	for _, id := range ids {
		out = append(out, Describe(id))
	}
	return out
}
