package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ErrUnknownNeighborhood marks a neighborhood name that cannot be resolved
// against the loaded graph, including via aliases.
var ErrUnknownNeighborhood = errors.New("unknown neighborhood")

// Neighborhood is one node of the adjacency graph. Geometry is kept opaque for
// the transport layer; this engine never interprets or mutates it.
type Neighborhood struct {
	Name                  string          `json:"name"`
	Geometry              json.RawMessage `json:"geometry,omitempty"`
	Adjacent              []string        `json:"adjacent_neighborhoods"`
	SESIndex              float64         `json:"ses_index"`
	InfrastructureQuality float64         `json:"infrastructure_quality"`
}

// Graph is the immutable neighborhood adjacency model, loaded once at process
// start. All lookups are case- and whitespace-insensitive; aliases from the
// dataset resolve to their canonical neighborhood.
type Graph struct {
	nodes   map[string]*Neighborhood // canonical name → node
	aliases map[string]string        // canonical alias → canonical name
	names   []string                 // display names, sorted
}

// featureCollection mirrors the preprocessed Open Data Edmonton dataset.
type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties struct {
		NeighborhoodName      string   `json:"neighborhood_name"`
		SESIndex              float64  `json:"ses_index"`
		InfrastructureQuality float64  `json:"infrastructure_quality"`
		Adjacent              []string `json:"adjacent_neighborhoods"`
		Aliases               []string `json:"aliases"`
	} `json:"properties"`
}

// canonicalName lowercases and collapses interior whitespace, so "  Bonnie
// doon " and "Bonnie Doon" resolve to the same node.
func canonicalName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// ParseGraph builds a Graph from a GeoJSON-style FeatureCollection. Features
// without a neighborhood name are skipped; SES and infrastructure scores are
// clamped to [0, 1]. Adjacency is made symmetric and entries that do not
// resolve to a loaded neighborhood are dropped.
func ParseGraph(data []byte) (*Graph, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse neighborhood dataset: %w", err)
	}

	g := &Graph{
		nodes:   make(map[string]*Neighborhood),
		aliases: make(map[string]string),
	}

	rawAdjacency := make(map[string][]string)
	for _, f := range fc.Features {
		name := strings.TrimSpace(f.Properties.NeighborhoodName)
		if name == "" {
			continue
		}
		key := canonicalName(name)
		if _, exists := g.nodes[key]; exists {
			return nil, fmt.Errorf("duplicate neighborhood %q in dataset", name)
		}

		g.nodes[key] = &Neighborhood{
			Name:                  name,
			Geometry:              f.Geometry,
			SESIndex:              clamp01(f.Properties.SESIndex),
			InfrastructureQuality: clamp01(f.Properties.InfrastructureQuality),
		}
		rawAdjacency[key] = f.Properties.Adjacent

		for _, alias := range f.Properties.Aliases {
			if a := canonicalName(alias); a != "" && a != key {
				g.aliases[a] = key
			}
		}
	}

	if len(g.nodes) == 0 {
		return nil, errors.New("neighborhood dataset contains no usable features")
	}

	// Resolve adjacency to canonical keys, forcing symmetry: polygon adjacency
	// is undirected even if the preprocessing step only listed one direction.
	edges := make(map[string]map[string]bool)
	for key := range g.nodes {
		edges[key] = make(map[string]bool)
	}
	for key, neighbors := range rawAdjacency {
		for _, n := range neighbors {
			nk := canonicalName(n)
			if _, ok := g.nodes[nk]; !ok || nk == key {
				continue
			}
			edges[key][nk] = true
			edges[nk][key] = true
		}
	}

	for key, node := range g.nodes {
		adjacent := make([]string, 0, len(edges[key]))
		for nk := range edges[key] {
			adjacent = append(adjacent, g.nodes[nk].Name)
		}
		sort.Strings(adjacent)
		node.Adjacent = adjacent
		g.names = append(g.names, node.Name)
	}
	sort.Strings(g.names)

	return g, nil
}

// LoadGraph reads and parses the neighborhood dataset file at path.
func LoadGraph(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read neighborhood dataset: %w", err)
	}
	return ParseGraph(data)
}

// Resolve returns the neighborhood for a name, following aliases.
func (g *Graph) Resolve(name string) (*Neighborhood, error) {
	key := canonicalName(name)
	if target, ok := g.aliases[key]; ok {
		key = target
	}
	node, ok := g.nodes[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNeighborhood, name)
	}
	return node, nil
}

// Len returns the number of neighborhoods.
func (g *Graph) Len() int { return len(g.nodes) }

// Names returns all neighborhood display names in sorted order.
func (g *Graph) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}
