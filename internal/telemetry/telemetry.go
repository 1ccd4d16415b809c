// Package telemetry sends anonymous usage events when the user opted in.
package telemetry

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/shaharia-lab/telemetry-collector"

	"github.com/shaharia-lab/themify/internal/config"
)

const (
	telemetryEndpoint = "https://telemetry-pub.shaharialab.com/telemetry/event"
)

// Tracker sends events only when usage tracking is enabled in the configuration.
type Tracker struct {
	appCfg  *config.AppConfig
	enabled bool
	send    func(ctx context.Context, appCfg *config.AppConfig, event *telemetry.Event)
}

// NewTracker creates a tracker for the given usage tracking configuration.
func NewTracker(appCfg *config.AppConfig, cfg config.UsageTrackingConfig) *Tracker {
	return &Tracker{appCfg: appCfg, enabled: cfg.Enabled, send: sendAsync}
}

// Enabled reports whether events are sent.
func (t *Tracker) Enabled() bool {
	return t != nil && t.enabled
}

// Track sends an info event named eventName. It is a no-op when tracking is disabled.
func (t *Tracker) Track(ctx context.Context, eventName, message string, attributes map[string]interface{}) {
	if !t.Enabled() {
		return
	}
	t.send(ctx, t.appCfg, NewEvent(t.appCfg, eventName, telemetry.SeverityInfo, message, attributes))
}

// SendTelemetryEvent sends a telemetry event to the collector endpoint regardless of configuration.
func SendTelemetryEvent(ctx context.Context, appCfg *config.AppConfig, eventName string, severityText telemetry.Severity, message string, attributes map[string]interface{}) {
	sendAsync(ctx, appCfg, NewEvent(appCfg, eventName, severityText, message, attributes))
}

func sendAsync(ctx context.Context, appCfg *config.AppConfig, event *telemetry.Event) {
	collector := telemetry.NewCollector(
		telemetryEndpoint,
		fmt.Sprintf("%s-cli", appCfg.Name),
	)
	defer collector.Close()

	collector.SendAsync(ctx, event)
}

// NewEvent builds an event carrying the build and runtime attributes.
// Caller attributes never override the built-in ones.
func NewEvent(appCfg *config.AppConfig, eventName string, severityText telemetry.Severity, message string, attributes map[string]interface{}) *telemetry.Event {
	event := telemetry.Event{
		Name:         eventName,
		TraceID:      uuid.New().String(),
		SpanID:       uuid.New().String(),
		SeverityText: severityText,
		Body:         message,
		Attributes: map[string]interface{}{
			"cli_version.code":   appCfg.Version.Version,
			"cli_version.commit": appCfg.Version.Commit,
			"cli_version.date":   appCfg.Version.Date,
			"os.name":            runtime.GOOS,
			"os.arch":            runtime.GOARCH,
			"go.runtime_version": runtime.Version(),
		},
		Resource: map[string]interface{}{
			"service.name":    appCfg.Name,
			"service.version": appCfg.Version.Version,
		},
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range buildInfo.Settings {
			event.Attributes[fmt.Sprintf("build_settings.%s", setting.Key)] = setting.Value
		}
	}

	for k, v := range attributes {
		if _, exists := event.Attributes[k]; exists {
			continue
		}
		event.Attributes[k] = fmt.Sprintf("%v", v)
	}

	return &event
}
