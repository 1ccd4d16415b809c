package telemetry

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/shaharia-lab/themify/internal/config"
	"github.com/shaharia-lab/themify/internal/console"
)

// Configure asks whether anonymous usage events may be sent and records the answer in cfg.
func Configure(out *console.Console, cfg *config.Config, opts ...survey.AskOpt) error {
	out.Info().Println("\nEnable anonymous usage tracking")
	out.Subtle().Println("This helps us improve Themify and fix bugs. No theme content or API keys are ever sent.")

	enabled := cfg.UsageTracking.Enabled
	prompt := &survey.Confirm{
		Message: "Enable anonymous usage tracking?",
		Default: enabled,
		Help:    "Sends command names, version and OS information to the project maintainers.",
	}
	if err := survey.AskOne(prompt, &enabled, opts...); err != nil {
		return fmt.Errorf("failed to read usage tracking answer: %w", err)
	}

	cfg.UsageTracking.Enabled = enabled
	return nil
}
