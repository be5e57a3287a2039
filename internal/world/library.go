package world

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/anthropics/blocksworld-engine/internal/domain"
)

//go:embed worlds.yaml
var worldsYAML []byte

type libraryFile struct {
	Worlds []namedWorld `yaml:"worlds"`
}

type namedWorld struct {
	Name    string                      `yaml:"name"`
	Arm     int                         `yaml:"arm"`
	Holding string                      `yaml:"holding"`
	Stacks  [][]string                  `yaml:"stacks"`
	Objects map[string]domain.ObjectDef `yaml:"objects"`
}

// Library is the named collection of example worlds shipped with the
// engine.
type Library struct {
	worlds map[string]*State
	names  []string
}

// NewLibrary parses the embedded world definitions and validates each
// scene.
func NewLibrary() (*Library, error) {
	var file libraryFile
	if err := yaml.Unmarshal(worldsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse world library: %w", err)
	}

	lib := &Library{worlds: make(map[string]*State, len(file.Worlds))}
	for _, w := range file.Worlds {
		state := &State{
			Objects: w.Objects,
			Stacks:  w.Stacks,
			Holding: w.Holding,
			Arm:     w.Arm,
		}
		if err := state.Validate(); err != nil {
			return nil, fmt.Errorf("world %q: %w", w.Name, err)
		}
		lib.worlds[w.Name] = state
		lib.names = append(lib.names, w.Name)
	}
	sort.Strings(lib.names)
	return lib, nil
}

// Names lists the available worlds in sorted order.
func (l *Library) Names() []string { return l.names }

// Get returns a deep copy of the named world, so callers may mutate it
// freely.
func (l *Library) Get(name string) (*State, error) {
	w, ok := l.worlds[name]
	if !ok {
		return nil, domain.NewEngineError(domain.ErrWorldNotFound.Code,
			fmt.Sprintf("no world with that name: %q", name))
	}
	return w.DeepCopy(), nil
}
