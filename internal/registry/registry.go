// Package registry loads the club alias table and academy pipeline map
// used to canonicalize club names and sanity-check academy narratives.
// The registry is loaded once at process start and read-only thereafter.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Pipeline is one known feeder relationship from a youth academy to the
// senior club its players habitually move to.
type Pipeline struct {
	Academy     string
	Destination string
}

// Registry resolves club aliases to canonical names and exposes the known
// academy pipelines. Immutable after construction.
type Registry struct {
	canonical map[string]string // lowercased canonical or alias -> canonical as written
	pipelines []Pipeline        // sorted by academy for stable iteration
	source    string
}

type registryFile struct {
	Aliases          map[string][]string `json:"aliases"`
	AcademyPipelines map[string]string   `json:"academyPipelines"`
}

// Empty returns a registry with no aliases and no pipelines. Lookups miss,
// pipeline checks are skipped; validation still runs.
func Empty() *Registry {
	return &Registry{canonical: map[string]string{}}
}

// Load reads the registry file. It always returns a usable registry: on a
// missing or malformed file the returned registry is empty and the error
// explains the degradation so the caller can log it and continue.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Empty(), fmt.Errorf("club registry %s not found, running without aliases", path)
		}
		return Empty(), fmt.Errorf("reading club registry %s: %w", path, err)
	}

	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Empty(), fmt.Errorf("parsing club registry %s: %w", path, err)
	}

	reg := &Registry{
		canonical: make(map[string]string, len(file.Aliases)*2),
		source:    path,
	}
	for canonical, aliases := range file.Aliases {
		reg.canonical[strings.ToLower(canonical)] = canonical
		for _, alias := range aliases {
			reg.canonical[strings.ToLower(alias)] = canonical
		}
	}
	for academy, destination := range file.AcademyPipelines {
		reg.pipelines = append(reg.pipelines, Pipeline{Academy: academy, Destination: destination})
	}
	sort.Slice(reg.pipelines, func(i, j int) bool {
		return reg.pipelines[i].Academy < reg.pipelines[j].Academy
	})
	return reg, nil
}

// Canonical resolves a club name case-insensitively against canonical
// names and aliases. The returned name keeps the registry file's casing.
func (r *Registry) Canonical(club string) (string, bool) {
	name, ok := r.canonical[strings.ToLower(strings.TrimSpace(club))]
	return name, ok
}

// Pipelines returns the academy pipelines sorted by academy name.
func (r *Registry) Pipelines() []Pipeline {
	return r.pipelines
}

// Source returns the path the registry was loaded from, or "" for an
// empty registry.
func (r *Registry) Source() string { return r.source }

// IsEmpty reports whether the registry carries no data at all.
func (r *Registry) IsEmpty() bool {
	return len(r.canonical) == 0 && len(r.pipelines) == 0
}
