package actions

import (
	"strings"

	"gitpilot.dev/gitpilot/internal/config"
	"gitpilot.dev/gitpilot/internal/runtime"
	"gitpilot.dev/gitpilot/internal/tui"
)

// ConfigGetAction prints one config value, or all of them when key is empty
func ConfigGetAction(rt *runtime.Context, key string) error {
	if key != "" {
		value, err := rt.Config.Get(key)
		if err != nil {
			return err
		}
		rt.Splog.Page(displayValue(key, value) + "\n")
		return nil
	}

	for _, k := range config.Keys() {
		value, err := rt.Config.Get(k)
		if err != nil {
			return err
		}
		if value == "" {
			value = tui.ColorDim("(not set)")
		} else {
			value = displayValue(k, value)
		}
		rt.Splog.Page(k + " = " + value + "\n")
	}
	return nil
}

// ConfigSetAction updates one config value and saves the file.
// An empty value resets the key to its default.
func ConfigSetAction(rt *runtime.Context, key, value string) error {
	if err := rt.Config.Set(key, value); err != nil {
		return err
	}
	if err := rt.Config.Save(rt.ConfigPath); err != nil {
		return err
	}

	if strings.TrimSpace(value) == "" {
		rt.Splog.Info("Cleared %s", key)
	} else {
		rt.Splog.Info("Set %s to %s", key, displayValue(key, value))
	}
	return nil
}

// displayValue masks secrets
func displayValue(key, value string) string {
	if key != config.KeyGitHubToken || value == "" {
		return value
	}
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
