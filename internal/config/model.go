package config

// ToolID identifies one of the external tools a pipeline can be generated for.
type ToolID string

// The closed set of tools the engine knows how to drive.
const (
	ToolYosys    ToolID = "yosys"
	ToolNextpnr  ToolID = "nextpnr"
	ToolIverilog ToolID = "iverilog"
	ToolFlasher  ToolID = "flasher"
)

// ToolIDs lists every tool in a stable order.
var ToolIDs = []ToolID{ToolYosys, ToolNextpnr, ToolIverilog, ToolFlasher}

// ListKey names one overridable value list within a tool's configuration.
type ListKey string

const (
	ListInputFiles  ListKey = "inputFiles"
	ListOutputFiles ListKey = "outputFiles"
	ListArguments   ListKey = "arguments"
	ListCommands    ListKey = "commands"
)

// Well-known scalar option keys consumed by the step generators.
const (
	OptTopLevelModule = "topLevelModule"
	OptTestbench      = "testbench"
	OptBoard          = "board"
	OptPlacedSVG      = "placedSvg"
	OptRoutedSVG      = "routedSvg"
	OptRoutedJSON     = "routedJson"
)

// Options is a per-tool scalar option map. Layers are merged shallowly, field
// by field; values are whatever JSON produced (string, bool, float64).
type Options map[string]any

// String returns the option as a string, or "" when absent or not a string.
func (o Options) String(key string) string {
	s, _ := o[key].(string)
	return s
}

// Bool returns the option as a bool; absent or non-bool values read false.
func (o Options) Bool(key string) bool {
	b, _ := o[key].(bool)
	return b
}

// ValueList is one overridable ordered value list. UseGenerated and
// UseDefault are tri-state: nil means "not explicitly set", which the
// resolver distinguishes from an explicit false. UseDefault only has meaning
// on target-level blocks.
type ValueList struct {
	UseGenerated *bool    `json:"useGenerated,omitempty"`
	UseDefault   *bool    `json:"useDefault,omitempty"`
	Values       []string `json:"values"`
}

// ToolConfig is the per-tool block carried by both the project defaults and
// each target: scalar options plus the overridable value lists.
type ToolConfig struct {
	Options     Options    `json:"options,omitempty"`
	InputFiles  *ValueList `json:"inputFiles,omitempty"`
	OutputFiles *ValueList `json:"outputFiles,omitempty"`
	Arguments   *ValueList `json:"arguments,omitempty"`
	Commands    *ValueList `json:"commands,omitempty"`
}

// List returns the value-list block for key, or nil when the block is absent.
func (t *ToolConfig) List(key ListKey) *ValueList {
	if t == nil {
		return nil
	}
	switch key {
	case ListInputFiles:
		return t.InputFiles
	case ListOutputFiles:
		return t.OutputFiles
	case ListArguments:
		return t.Arguments
	case ListCommands:
		return t.Commands
	}
	return nil
}

// ensureList returns the value-list block for key, creating it if absent.
func (t *ToolConfig) ensureList(key ListKey) *ValueList {
	if l := t.List(key); l != nil {
		return l
	}
	l := &ValueList{Values: []string{}}
	switch key {
	case ListInputFiles:
		t.InputFiles = l
	case ListOutputFiles:
		t.OutputFiles = l
	case ListArguments:
		t.Arguments = l
	case ListCommands:
		t.Commands = l
	}
	return l
}

// Defaults is the optional project-wide defaults block, one ToolConfig per
// tool. UseDefault flags inside these blocks are ignored.
type Defaults struct {
	Yosys    *ToolConfig `json:"yosys,omitempty"`
	Nextpnr  *ToolConfig `json:"nextpnr,omitempty"`
	Iverilog *ToolConfig `json:"iverilog,omitempty"`
	Flasher  *ToolConfig `json:"flasher,omitempty"`
}

// Tool returns the defaults block for the given tool, or nil.
func (d *Defaults) Tool(id ToolID) *ToolConfig {
	if d == nil {
		return nil
	}
	switch id {
	case ToolYosys:
		return d.Yosys
	case ToolNextpnr:
		return d.Nextpnr
	case ToolIverilog:
		return d.Iverilog
	case ToolFlasher:
		return d.Flasher
	}
	return nil
}

func (d *Defaults) ensureTool(id ToolID) *ToolConfig {
	if t := d.Tool(id); t != nil {
		return t
	}
	t := &ToolConfig{}
	switch id {
	case ToolYosys:
		d.Yosys = t
	case ToolNextpnr:
		d.Nextpnr = t
	case ToolIverilog:
		d.Iverilog = t
	case ToolFlasher:
		d.Flasher = t
	}
	return t
}

// Target is a named build configuration binding a device selection to
// per-tool overrides.
type Target struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Vendor    string `json:"vendor"`
	Family    string `json:"family"`
	Device    string `json:"device"`
	Package   string `json:"package"`
	OutputDir string `json:"outputDir,omitempty"`

	Yosys    *ToolConfig `json:"yosys,omitempty"`
	Nextpnr  *ToolConfig `json:"nextpnr,omitempty"`
	Iverilog *ToolConfig `json:"iverilog,omitempty"`
	Flasher  *ToolConfig `json:"flasher,omitempty"`
}

// Tool returns the target's block for the given tool, or nil.
func (t *Target) Tool(id ToolID) *ToolConfig {
	if t == nil {
		return nil
	}
	switch id {
	case ToolYosys:
		return t.Yosys
	case ToolNextpnr:
		return t.Nextpnr
	case ToolIverilog:
		return t.Iverilog
	case ToolFlasher:
		return t.Flasher
	}
	return nil
}

// EnsureTool returns the target's block for the given tool, creating an empty
// block first when absent.
func (t *Target) EnsureTool(id ToolID) *ToolConfig {
	if tc := t.Tool(id); tc != nil {
		return tc
	}
	tc := &ToolConfig{}
	switch id {
	case ToolYosys:
		t.Yosys = tc
	case ToolNextpnr:
		t.Nextpnr = tc
	case ToolIverilog:
		t.Iverilog = tc
	case ToolFlasher:
		t.Flasher = tc
	}
	return tc
}

// ProjectConfiguration is the validated project configuration: optional
// project-wide defaults plus the ordered target list.
type ProjectConfiguration struct {
	Defaults *Defaults `json:"defaults,omitempty"`
	Targets  []*Target `json:"targets"`
}

// Target returns the target with the given id, or nil.
func (c *ProjectConfiguration) Target(id string) *Target {
	for _, t := range c.Targets {
		if t.ID == id {
			return t
		}
	}
	return nil
}
