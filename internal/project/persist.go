package project

import (
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/vk/fpgaflow/internal/config"
)

// Codec encodes and decodes the persisted project envelope. The default is
// plain JSON; the seam exists so an embedding tool can substitute its own
// encoding without touching the model.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSONCodec is the default Codec: indented JSON, stable field order.
type JSONCodec struct{}

// Marshal implements Codec.
func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Unmarshal implements Codec.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// state is the wire shape of a persisted project. Configuration stays raw
// here; config.Parse is the single validation point for it.
type state struct {
	Name          string            `json:"name"`
	InputFiles    []inputFileState  `json:"inputFiles"`
	OutputFiles   []outputFileState `json:"outputFiles"`
	Configuration json.RawMessage   `json:"configuration"`
}

type inputFileState struct {
	Path string        `json:"path"`
	Type InputFileType `json:"type"`
}

// UnmarshalJSON accepts both the structured record and the legacy bare path
// string. Legacy entries upgrade to design-typed files; the legacy shape
// never survives past this boundary.
func (s *inputFileState) UnmarshalJSON(data []byte) error {
	type structured inputFileState
	var v structured
	if err := json.Unmarshal(data, &v); err == nil {
		if v.Type == "" {
			v.Type = Design
		}
		*s = inputFileState(v)
		return nil
	}
	var path string
	if err := json.Unmarshal(data, &path); err != nil {
		return errors.Wrap(err, "input file entry is neither a record nor a path string")
	}
	*s = inputFileState{Path: path, Type: Design}
	return nil
}

type outputFileState struct {
	Path     string `json:"path"`
	TargetID string `json:"targetId,omitempty"`
	Stale    bool   `json:"stale"`
}

// UnmarshalJSON accepts both the structured record and the legacy bare path
// string, which upgrades to an unowned, non-stale output.
func (s *outputFileState) UnmarshalJSON(data []byte) error {
	type structured outputFileState
	var v structured
	if err := json.Unmarshal(data, &v); err == nil {
		*s = outputFileState(v)
		return nil
	}
	var path string
	if err := json.Unmarshal(data, &path); err != nil {
		return errors.Wrap(err, "output file entry is neither a record nor a path string")
	}
	*s = outputFileState{Path: path}
	return nil
}

// Load decodes a persisted project. The configuration passes through
// config.Parse, so a Load that succeeds always yields a validated, fully
// defaulted model.
func Load(data []byte, codec Codec) (*Project, error) {
	var st state
	if err := codec.Unmarshal(data, &st); err != nil {
		return nil, errors.Wrap(err, "decode project file")
	}

	cfg, err := config.Parse(st.Configuration)
	if err != nil {
		return nil, err
	}

	p := &Project{Name: st.Name, Configuration: cfg}
	for _, f := range st.InputFiles {
		p.InputFiles = append(p.InputFiles, &InputFile{Path: f.Path, Type: f.Type})
	}
	for _, f := range st.OutputFiles {
		p.OutputFiles = append(p.OutputFiles, &OutputFile{Path: f.Path, TargetID: f.TargetID, Stale: f.Stale})
	}
	return p, nil
}

// Save encodes the project in the current structured shape. Legacy input
// forms are never written back.
func Save(p *Project, codec Codec) ([]byte, error) {
	rawCfg, err := json.Marshal(p.Configuration)
	if err != nil {
		return nil, errors.Wrap(err, "encode configuration")
	}

	st := state{
		Name:          p.Name,
		InputFiles:    []inputFileState{},
		OutputFiles:   []outputFileState{},
		Configuration: rawCfg,
	}
	for _, f := range p.InputFiles {
		st.InputFiles = append(st.InputFiles, inputFileState{Path: f.Path, Type: f.Type})
	}
	for _, f := range p.OutputFiles {
		st.OutputFiles = append(st.OutputFiles, outputFileState{Path: f.Path, TargetID: f.TargetID, Stale: f.Stale})
	}

	data, err := codec.Marshal(st)
	if err != nil {
		return nil, errors.Wrap(err, "encode project file")
	}
	return data, nil
}
