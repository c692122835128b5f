package config

import "github.com/cockroachdb/errors"

// ErrUnknownTarget is returned when a mutation or generation names a target
// id that does not exist in the configuration.
var ErrUnknownTarget = errors.New("unknown target")

// The setters below are the closed set of configuration mutations. Each one
// names the field it sets and auto-vivifies the intermediate structure it
// needs, so callers never traverse or build nested blocks themselves.

// SetToolOption sets one scalar option on a target's tool block.
func (c *ProjectConfiguration) SetToolOption(targetID string, tool ToolID, key string, value any) error {
	t := c.Target(targetID)
	if t == nil {
		return errors.Wrapf(ErrUnknownTarget, "%q", targetID)
	}
	tc := t.EnsureTool(tool)
	if tc.Options == nil {
		tc.Options = Options{}
	}
	tc.Options[key] = value
	return nil
}

// SetDefaultToolOption sets one scalar option on the project-wide defaults
// block for a tool.
func (c *ProjectConfiguration) SetDefaultToolOption(tool ToolID, key string, value any) {
	if c.Defaults == nil {
		c.Defaults = &Defaults{}
	}
	tc := c.Defaults.ensureTool(tool)
	if tc.Options == nil {
		tc.Options = Options{}
	}
	tc.Options[key] = value
}

// SetTopLevelModule sets the yosys top-level module for a target.
func (c *ProjectConfiguration) SetTopLevelModule(targetID, module string) error {
	return c.SetToolOption(targetID, ToolYosys, OptTopLevelModule, module)
}

// SetTestbench pins the simulation testbench file for a target.
func (c *ProjectConfiguration) SetTestbench(targetID, path string) error {
	return c.SetToolOption(targetID, ToolIverilog, OptTestbench, path)
}

// SetListValues replaces the target-level override values of one value list.
func (c *ProjectConfiguration) SetListValues(targetID string, tool ToolID, key ListKey, values []string) error {
	t := c.Target(targetID)
	if t == nil {
		return errors.Wrapf(ErrUnknownTarget, "%q", targetID)
	}
	l := t.EnsureTool(tool).ensureList(key)
	l.Values = append([]string{}, values...)
	if l.UseDefault == nil {
		l.UseDefault = boolPtr(true)
	}
	return nil
}

// SetUseGenerated sets the target-level useGenerated flag of one value list.
func (c *ProjectConfiguration) SetUseGenerated(targetID string, tool ToolID, key ListKey, use bool) error {
	t := c.Target(targetID)
	if t == nil {
		return errors.Wrapf(ErrUnknownTarget, "%q", targetID)
	}
	l := t.EnsureTool(tool).ensureList(key)
	l.UseGenerated = boolPtr(use)
	return nil
}

// SetUseDefault sets the target-level useDefault flag of one value list.
func (c *ProjectConfiguration) SetUseDefault(targetID string, tool ToolID, key ListKey, use bool) error {
	t := c.Target(targetID)
	if t == nil {
		return errors.Wrapf(ErrUnknownTarget, "%q", targetID)
	}
	l := t.EnsureTool(tool).ensureList(key)
	l.UseDefault = boolPtr(use)
	return nil
}
