package actions

import (
	"context"

	"gitpilot.dev/gitpilot/internal/ai"
	"gitpilot.dev/gitpilot/internal/runtime"
	"gitpilot.dev/gitpilot/internal/tui"
)

// ModelsAction lists the models copilot accepts with their cost tier
func ModelsAction(ctx context.Context, rt *runtime.Context) error {
	models := ai.Catalog()
	if rt.Models != nil {
		models = ai.Discover(ctx, rt.Models)
	}

	current := rt.Config.EffectiveModel()
	if current == "" {
		current = ai.DefaultModel
	}

	rt.Splog.Page(tui.RenderModels(models, current))
	rt.Splog.Newline()
	rt.Splog.Tip("Change the model with: gitpilot config set model <id>")
	return nil
}
