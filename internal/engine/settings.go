package engine

import (
	"encoding/json"
	"fmt"
)

// SettingsVersion is the schema version written to config.json.
const SettingsVersion = "1.0"

// DefaultHookEvent is the event the built-in format hook is bound to.
const DefaultHookEvent = "PostToolUse"

// Features toggles workflow features in the settings document.
type Features struct {
	SDDWorkflow    bool `json:"sdd_workflow"`
	ModernCLITools bool `json:"modern_cli_tools"`
}

// Settings is the .claude/config.json document. Top-level keys it does not
// model are kept as read and written back by Render.
type Settings struct {
	Version  string            `json:"version"`
	Language string            `json:"language"`
	Features Features          `json:"features"`
	Hooks    map[string]string `json:"hooks,omitempty"`

	other map[string]json.RawMessage
}

var settingsKeys = []string{"version", "language", "features", "hooks"}

// NewSettings returns the default settings for lang.
func NewSettings(lang Language) *Settings {
	return &Settings{
		Version:  SettingsVersion,
		Language: lang.String(),
		Features: Features{SDDWorkflow: true, ModernCLITools: true},
		Hooks:    map[string]string{},
	}
}

// ParseSettings decodes a settings document.
func ParseSettings(data []byte) (*Settings, error) {
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if s.Hooks == nil {
		s.Hooks = map[string]string{}
	}
	if err := json.Unmarshal(data, &s.other); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	for _, k := range settingsKeys {
		delete(s.other, k)
	}
	return &s, nil
}

// BindHook records that the hook script at path runs on event.
func (s *Settings) BindHook(event, path string) {
	if s.Hooks == nil {
		s.Hooks = map[string]string{}
	}
	s.Hooks[event] = path
}

// Render returns the indented JSON document with a trailing newline.
func (s *Settings) Render() (string, error) {
	var doc any = s
	if len(s.other) > 0 {
		b, err := json.Marshal(s)
		if err != nil {
			return "", fmt.Errorf("render settings: %w", err)
		}
		merged := make(map[string]json.RawMessage, len(s.other)+len(settingsKeys))
		if err := json.Unmarshal(b, &merged); err != nil {
			return "", fmt.Errorf("render settings: %w", err)
		}
		for k, v := range s.other {
			merged[k] = v
		}
		doc = merged
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render settings: %w", err)
	}
	return string(b) + "\n", nil
}
