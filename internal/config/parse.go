package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// SchemaError reports every structural problem found in a persisted
// configuration. It is fatal: no generation happens against a configuration
// that failed to parse.
type SchemaError struct {
	Issues []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid project configuration:\n- %s", strings.Join(e.Issues, "\n- "))
}

// Parse decodes raw persisted configuration, validates its structure, and
// fills every optional field with its documented default. It returns either a
// fully defaulted ProjectConfiguration or a *SchemaError listing all problems.
//
// Defaulting policy for value lists: Values is never nil; a defaults-level
// block with no explicit useGenerated reads true; a target-level block with
// no explicit useDefault reads true. A target-level useGenerated is left
// unset when absent so the resolver can tell "explicitly false" from
// "inherit the project default".
func Parse(raw []byte) (*ProjectConfiguration, error) {
	cfg := &ProjectConfiguration{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, cfg); err != nil {
			return nil, &SchemaError{Issues: []string{errors.Wrap(err, "decode").Error()}}
		}
	}

	var issues []string
	seen := make(map[string]struct{})
	for i, t := range cfg.Targets {
		where := fmt.Sprintf("target[%d]", i)
		if t == nil {
			issues = append(issues, where+": null entry")
			continue
		}
		if t.ID == "" {
			issues = append(issues, where+": missing required field 'id'")
		} else {
			where = fmt.Sprintf("target %q", t.ID)
			if _, dup := seen[t.ID]; dup {
				issues = append(issues, where+": duplicate target id")
			}
			seen[t.ID] = struct{}{}
		}
		for field, val := range map[string]string{
			"vendor":  t.Vendor,
			"family":  t.Family,
			"device":  t.Device,
			"package": t.Package,
		} {
			if val == "" {
				issues = append(issues, fmt.Sprintf("%s: missing required field %q", where, field))
			}
		}
	}
	if len(issues) > 0 {
		return nil, &SchemaError{Issues: issues}
	}

	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults fills optional fields in place. It is idempotent and also
// runs after mutations that may have introduced fresh blocks.
func applyDefaults(cfg *ProjectConfiguration) {
	if cfg.Targets == nil {
		cfg.Targets = []*Target{}
	}
	for _, id := range ToolIDs {
		if tc := cfg.Defaults.Tool(id); tc != nil {
			defaultToolConfig(tc, false)
		}
	}
	for _, t := range cfg.Targets {
		if t.Name == "" {
			t.Name = t.ID
		}
		for _, id := range ToolIDs {
			if tc := t.Tool(id); tc != nil {
				defaultToolConfig(tc, true)
			}
		}
	}
}

func defaultToolConfig(tc *ToolConfig, targetLevel bool) {
	for _, key := range []ListKey{ListInputFiles, ListOutputFiles, ListArguments, ListCommands} {
		l := tc.List(key)
		if l == nil {
			continue
		}
		if l.Values == nil {
			l.Values = []string{}
		}
		if targetLevel {
			if l.UseDefault == nil {
				l.UseDefault = boolPtr(true)
			}
		} else if l.UseGenerated == nil {
			l.UseGenerated = boolPtr(true)
		}
	}
}

func boolPtr(b bool) *bool { return &b }
