// Package resolver computes effective per-tool options and value lists from
// the three configuration layers: built-in tool defaults, the project-wide
// defaults block, and the target's own overrides.
//
// Both operations are pure functions of their inputs and never fail; absent
// layers degrade to empty or default values. This lets a target append to the
// generated behavior without repeating it, or replace it entirely by turning
// off useGenerated / useDefault.
package resolver

import (
	"github.com/kballard/go-shellquote"

	"github.com/vk/fpgaflow/internal/config"
)

// ParseFunc tokenizes one free-form override entry into discrete values.
type ParseFunc func(string) ([]string, error)

// Identity keeps an entry as a single value. Used for lists whose entries are
// already discrete, such as file paths.
func Identity(s string) ([]string, error) {
	return []string{s}, nil
}

// ShellWords splits an entry with shell-like quoting rules, so a user can
// author "-O2 -top foo" as one override string. Generated entries are never
// passed through this: they are already discrete and re-tokenizing them would
// corrupt paths containing spaces.
func ShellWords(s string) ([]string, error) {
	return shellquote.Split(s)
}

// EffectiveOptions merges scalar options field by field: built-in tool
// defaults, then the project defaults block, then the target block, later
// layers strictly overriding earlier ones. The input maps are not modified.
func EffectiveOptions(cfg *config.ProjectConfiguration, targetID string, tool config.ToolID, builtin config.Options) config.Options {
	out := config.Options{}
	for k, v := range builtin {
		out[k] = v
	}
	if cfg != nil {
		if tc := cfg.Defaults.Tool(tool); tc != nil {
			for k, v := range tc.Options {
				out[k] = v
			}
		}
		if tc := cfg.Target(targetID).Tool(tool); tc != nil {
			for k, v := range tc.Options {
				out[k] = v
			}
		}
	}
	return out
}

// EffectiveValues resolves one ordered value list. The result is, in order:
// the generated layer (when useGenerated resolves true), the project-default
// values (when the target's useDefault resolves true and a defaults block
// exists), then the target values, with empty entries dropped. Override
// entries pass through parse; generated entries do not. A nil parse means
// Identity. Tokenizer failures keep the raw entry as a single value rather
// than failing resolution.
func EffectiveValues(cfg *config.ProjectConfiguration, targetID string, tool config.ToolID, key config.ListKey, generated []string, parse ParseFunc) []string {
	if parse == nil {
		parse = Identity
	}

	var defaultList, targetList *config.ValueList
	if cfg != nil {
		defaultList = cfg.Defaults.Tool(tool).List(key)
		targetList = cfg.Target(targetID).Tool(tool).List(key)
	}

	// Target value wins when explicitly set, else the project-default value,
	// else true.
	useGenerated := true
	if targetList != nil && targetList.UseGenerated != nil {
		useGenerated = *targetList.UseGenerated
	} else if defaultList != nil && defaultList.UseGenerated != nil {
		useGenerated = *defaultList.UseGenerated
	}

	useDefault := true
	if targetList != nil && targetList.UseDefault != nil {
		useDefault = *targetList.UseDefault
	}

	var out []string
	if useGenerated {
		out = appendNonEmpty(out, generated)
	}
	if useDefault && defaultList != nil {
		out = appendParsed(out, defaultList.Values, parse)
	}
	if targetList != nil {
		out = appendParsed(out, targetList.Values, parse)
	}
	return out
}

func appendNonEmpty(dst, src []string) []string {
	for _, s := range src {
		if s != "" {
			dst = append(dst, s)
		}
	}
	return dst
}

func appendParsed(dst, src []string, parse ParseFunc) []string {
	for _, s := range src {
		tokens, err := parse(s)
		if err != nil {
			tokens = []string{s}
		}
		dst = appendNonEmpty(dst, tokens)
	}
	return dst
}
