// Package permission decides which capabilities a request carries and gates
// handlers on them.
package permission

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/shaharia-lab/themify/internal/config"
)

// Capability names a right a caller may hold.
type Capability string

const (
	// SettingsRead allows listing and reading themes and settings.
	SettingsRead Capability = "settings_read"
	// Settings allows changing themes and settings. It implies SettingsRead.
	Settings Capability = "settings"
)

var displayNames = map[Capability]string{
	SettingsRead: "Settings Read",
	Settings:     "Settings",
}

var implied = map[Capability][]Capability{
	Settings: {SettingsRead},
}

// DisplayName returns the human readable name of c.
func (c Capability) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

// ParseCapability validates a configured capability name.
func ParseCapability(s string) (Capability, error) {
	c := Capability(strings.TrimSpace(strings.ToLower(s)))
	if _, ok := displayNames[c]; !ok {
		return "", fmt.Errorf("unknown capability: %q", s)
	}
	return c, nil
}

// Set is an immutable set of capabilities.
type Set map[Capability]struct{}

// NewSet builds a set from caps, adding every implied capability.
func NewSet(caps ...Capability) Set {
	s := Set{}
	var add func(c Capability)
	add = func(c Capability) {
		if _, ok := s[c]; ok {
			return
		}
		s[c] = struct{}{}
		for _, dep := range implied[c] {
			add(dep)
		}
	}
	for _, c := range caps {
		add(c)
	}
	return s
}

// ParseSet builds a set from configured capability names.
func ParseSet(names []string) (Set, error) {
	caps := make([]Capability, 0, len(names))
	for _, n := range names {
		c, err := ParseCapability(n)
		if err != nil {
			return nil, err
		}
		caps = append(caps, c)
	}
	return NewSet(caps...), nil
}

// Has reports whether c is in the set.
func (s Set) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// Missing returns the required capabilities absent from the set, in the order given.
func (s Set) Missing(required ...Capability) []Capability {
	var missing []Capability
	for _, c := range required {
		if !s.Has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Sorted returns the capabilities in lexical order.
func (s Set) Sorted() []Capability {
	out := make([]Capability, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Evaluator computes the capabilities of the caller behind a request.
type Evaluator interface {
	Evaluate(r *http.Request) Set
}

type apiKey struct {
	name string
	key  []byte
	caps Set
}

// KeyEvaluator grants capabilities based on the API key presented with the
// request. Requests without a known key get the anonymous set.
type KeyEvaluator struct {
	keys      []apiKey
	anonymous Set
}

var _ Evaluator = (*KeyEvaluator)(nil)

// NewKeyEvaluator builds an evaluator from the auth section of the configuration.
func NewKeyEvaluator(cfg config.AuthConfig) (*KeyEvaluator, error) {
	anonymous, err := ParseSet(cfg.AnonymousCapabilities)
	if err != nil {
		return nil, fmt.Errorf("anonymous capabilities: %w", err)
	}

	keys := make([]apiKey, 0, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		if k.Key == "" {
			return nil, fmt.Errorf("api key %q has an empty key", k.Name)
		}
		caps, err := ParseSet(k.Capabilities)
		if err != nil {
			return nil, fmt.Errorf("api key %q: %w", k.Name, err)
		}
		keys = append(keys, apiKey{name: k.Name, key: []byte(k.Key), caps: caps})
	}

	return &KeyEvaluator{keys: keys, anonymous: anonymous}, nil
}

// Evaluate implements Evaluator.
func (e *KeyEvaluator) Evaluate(r *http.Request) Set {
	presented := KeyFromRequest(r)
	if presented == "" {
		return e.anonymous
	}
	for _, k := range e.keys {
		if subtle.ConstantTimeCompare(k.key, []byte(presented)) == 1 {
			return k.caps
		}
	}
	return e.anonymous
}

// KeyFromRequest extracts the API key from the X-Api-Key header or a bearer
// Authorization header.
func KeyFromRequest(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get("X-Api-Key")); key != "" {
		return key
	}
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

type contextKeyType struct{}

// WithCapabilities stores s in ctx.
func WithCapabilities(ctx context.Context, s Set) context.Context {
	return context.WithValue(ctx, contextKeyType{}, s)
}

// FromContext returns the capabilities stored in ctx, or an empty set.
func FromContext(ctx context.Context) Set {
	if s, ok := ctx.Value(contextKeyType{}).(Set); ok {
		return s
	}
	return Set{}
}

// StaticEvaluator grants the same capabilities to every request.
type StaticEvaluator struct {
	Capabilities Set
}

// Evaluate implements Evaluator.
func (e StaticEvaluator) Evaluate(*http.Request) Set {
	if e.Capabilities == nil {
		return Set{}
	}
	return e.Capabilities
}
