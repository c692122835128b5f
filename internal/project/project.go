package project

import (
	"github.com/cockroachdb/errors"

	"github.com/vk/fpgaflow/internal/config"
)

// EventKind names one category of project change.
type EventKind string

const (
	EventName          EventKind = "name"
	EventInputFiles    EventKind = "inputFiles"
	EventOutputFiles   EventKind = "outputFiles"
	EventConfiguration EventKind = "configuration"
)

// Listener receives one consolidated notification per flushed batch. The
// slice holds each changed kind once, in first-changed order.
type Listener func(changed []EventKind)

// ErrDuplicateInput is returned when an input file path is added twice.
var ErrDuplicateInput = errors.New("input file already present")

// ErrUnknownInput is returned when a mutation names an input file path that
// is not part of the project.
var ErrUnknownInput = errors.New("unknown input file")

// Project is the mutable project model.
type Project struct {
	Name          string
	InputFiles    []*InputFile
	OutputFiles   []*OutputFile
	Configuration *config.ProjectConfiguration

	listeners  []Listener
	batchDepth int
	pending    []EventKind
	pendingSet map[EventKind]struct{}
}

// New creates an empty project with an empty, valid configuration.
func New(name string) *Project {
	return &Project{
		Name:          name,
		Configuration: &config.ProjectConfiguration{Targets: []*config.Target{}},
	}
}

// Subscribe registers a listener for consolidated change notifications.
func (p *Project) Subscribe(l Listener) {
	p.listeners = append(p.listeners, l)
}

// Batch runs fn as one transaction: events emitted by the mutations inside,
// including nested Batch calls, are coalesced and flushed once when the
// outermost batch completes.
func (p *Project) Batch(fn func()) {
	p.batchDepth++
	defer func() {
		p.batchDepth--
		if p.batchDepth == 0 {
			p.flush()
		}
	}()
	fn()
}

// emit records the event kinds a mutator produced, flushing immediately when
// no batch is open.
func (p *Project) emit(kinds ...EventKind) {
	if p.pendingSet == nil {
		p.pendingSet = make(map[EventKind]struct{})
	}
	for _, k := range kinds {
		if _, ok := p.pendingSet[k]; ok {
			continue
		}
		p.pendingSet[k] = struct{}{}
		p.pending = append(p.pending, k)
	}
	if p.batchDepth == 0 {
		p.flush()
	}
}

func (p *Project) flush() {
	if len(p.pending) == 0 {
		return
	}
	changed := p.pending
	p.pending = nil
	p.pendingSet = nil
	for _, l := range p.listeners {
		l(changed)
	}
}

// SetName renames the project.
func (p *Project) SetName(name string) {
	if p.Name == name {
		return
	}
	p.Name = name
	p.emit(EventName)
}

// InputFile returns the input file with the given path, or nil.
func (p *Project) InputFile(path string) *InputFile {
	for _, f := range p.InputFiles {
		if f.Path == path {
			return f
		}
	}
	return nil
}

// AddInputFile adds a source file to the project and marks existing outputs
// stale.
func (p *Project) AddInputFile(path string, typ InputFileType) error {
	if p.InputFile(path) != nil {
		return errors.Wrapf(ErrDuplicateInput, "%q", path)
	}
	p.InputFiles = append(p.InputFiles, &InputFile{Path: path, Type: typ})
	p.Batch(func() {
		p.emit(EventInputFiles)
		p.invalidateOutputs()
	})
	return nil
}

// RemoveInputFile removes a source file and marks existing outputs stale.
func (p *Project) RemoveInputFile(path string) error {
	for i, f := range p.InputFiles {
		if f.Path == path {
			p.InputFiles = append(p.InputFiles[:i], p.InputFiles[i+1:]...)
			p.Batch(func() {
				p.emit(EventInputFiles)
				p.invalidateOutputs()
			})
			return nil
		}
	}
	return errors.Wrapf(ErrUnknownInput, "%q", path)
}

// SetInputFileType re-classifies a source file. This is a first-class
// mutation: it changes which generator pipelines select the file, so outputs
// go stale.
func (p *Project) SetInputFileType(path string, typ InputFileType) error {
	f := p.InputFile(path)
	if f == nil {
		return errors.Wrapf(ErrUnknownInput, "%q", path)
	}
	if f.Type == typ {
		return nil
	}
	f.Type = typ
	p.Batch(func() {
		p.emit(EventInputFiles)
		p.invalidateOutputs()
	})
	return nil
}

// OutputFile returns the output file with the given path, or nil.
func (p *Project) OutputFile(path string) *OutputFile {
	for _, f := range p.OutputFiles {
		if f.Path == path {
			return f
		}
	}
	return nil
}

// RegisterOutputs records the artifacts a pipeline run produced for a target.
// Existing entries are refreshed in place; new paths are appended.
func (p *Project) RegisterOutputs(targetID string, paths []string) {
	if len(paths) == 0 {
		return
	}
	for _, path := range paths {
		if f := p.OutputFile(path); f != nil {
			f.TargetID = targetID
			f.Stale = false
			continue
		}
		p.OutputFiles = append(p.OutputFiles, &OutputFile{Path: path, TargetID: targetID})
	}
	p.emit(EventOutputFiles)
}

// invalidateOutputs marks every output stale. Called by mutators whose change
// can make prior artifacts inconsistent with the project.
func (p *Project) invalidateOutputs() {
	dirty := false
	for _, f := range p.OutputFiles {
		if !f.Stale {
			f.Stale = true
			dirty = true
		}
	}
	if dirty {
		p.emit(EventOutputFiles)
	}
}

// AddTarget appends a target to the configuration.
func (p *Project) AddTarget(t *config.Target) error {
	if p.Configuration.Target(t.ID) != nil {
		return errors.Newf("target %q already exists", t.ID)
	}
	p.Configuration.Targets = append(p.Configuration.Targets, t)
	p.emit(EventConfiguration)
	return nil
}

// RemoveTarget removes a target from the configuration. Output files owned by
// the target survive with their TargetID cleared.
func (p *Project) RemoveTarget(id string) error {
	targets := p.Configuration.Targets
	for i, t := range targets {
		if t.ID != id {
			continue
		}
		p.Configuration.Targets = append(targets[:i], targets[i+1:]...)
		p.Batch(func() {
			p.emit(EventConfiguration)
			orphaned := false
			for _, f := range p.OutputFiles {
				if f.TargetID == id {
					f.TargetID = ""
					orphaned = true
				}
			}
			if orphaned {
				p.emit(EventOutputFiles)
			}
		})
		return nil
	}
	return errors.Wrapf(config.ErrUnknownTarget, "%q", id)
}

// UpdateConfiguration applies fn to the configuration as one mutation,
// emitting a configuration event and invalidating outputs when fn succeeds.
func (p *Project) UpdateConfiguration(fn func(*config.ProjectConfiguration) error) error {
	if err := fn(p.Configuration); err != nil {
		return err
	}
	p.Batch(func() {
		p.emit(EventConfiguration)
		p.invalidateOutputs()
	})
	return nil
}
