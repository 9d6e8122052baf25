// Package fields models the admin-configured applicant form schema.
package fields

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Field types accepted on the visitor form.
const (
	TypeText   = "text"
	TypeNumber = "number"
	TypeTel    = "tel"
	TypeEmail  = "email"
	TypeSelect = "select"
)

const ConfigVersion = 1

// Field is one admin-defined input on the visitor form. Options is only
// meaningful for select fields.
type Field struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// Config is the versioned envelope stored in the custom_fields_config
// page setting.
type Config struct {
	Version int     `json:"version"`
	Fields  []Field `json:"fields"`
}

func validType(t string) bool {
	switch t {
	case TypeText, TypeNumber, TypeTel, TypeEmail, TypeSelect:
		return true
	}
	return false
}

// Parse decodes a stored config value. Both the versioned envelope and the
// legacy bare array are accepted; anything unparseable degrades to an empty
// field list rather than an error.
func Parse(raw string) Config {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Config{Version: ConfigVersion}
	}

	if strings.HasPrefix(raw, "[") {
		var fs []Field
		if err := json.Unmarshal([]byte(raw), &fs); err != nil {
			return Config{Version: ConfigVersion}
		}
		return normalize(Config{Version: ConfigVersion, Fields: fs})
	}

	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return Config{Version: ConfigVersion}
	}
	if cfg.Version == 0 {
		cfg.Version = ConfigVersion
	}
	return normalize(cfg)
}

// normalize drops fields with unknown types and clears options on
// non-select fields.
func normalize(cfg Config) Config {
	out := make([]Field, 0, len(cfg.Fields))
	for _, f := range cfg.Fields {
		if !validType(f.Type) {
			continue
		}
		if f.Type != TypeSelect {
			f.Options = nil
		}
		out = append(out, f)
	}
	cfg.Fields = out
	return cfg
}

// Serialize encodes a config for storage, always in the versioned form.
func Serialize(cfg Config) (string, error) {
	cfg = normalize(cfg)
	if cfg.Version == 0 {
		cfg.Version = ConfigVersion
	}
	if cfg.Fields == nil {
		cfg.Fields = []Field{}
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ValidateValues checks submitted values against the schema. Every required
// field must carry a non-blank value; the error names the offending field.
func ValidateValues(cfg Config, values map[string]string) error {
	for _, f := range cfg.Fields {
		if !f.Required {
			continue
		}
		if strings.TrimSpace(values[f.ID]) == "" {
			return fmt.Errorf("%s은(는) 필수 항목입니다", f.Label)
		}
	}
	return nil
}
