// Command validate performs integrity checks on a neighborhood dataset before
// it is deployed: field presence and ranges, adjacency symmetry, graph
// connectivity, and alias resolution.
//
// Usage:
//
//	go run ./cmd/validate -dataset data/edmonton_neighborhoods.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/couchcryptid/winter-risk-engine/internal/domain"
)

// rawFeature mirrors the dataset schema loosely so validation can report
// problems the strict loader would silently normalize away.
type rawFeature struct {
	Geometry   json.RawMessage `json:"geometry"`
	Properties struct {
		NeighborhoodName      string   `json:"neighborhood_name"`
		SESIndex              *float64 `json:"ses_index"`
		InfrastructureQuality *float64 `json:"infrastructure_quality"`
		Adjacent              []string `json:"adjacent_neighborhoods"`
		Aliases               []string `json:"aliases"`
	} `json:"properties"`
}

type rawCollection struct {
	Type     string       `json:"type"`
	Features []rawFeature `json:"features"`
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataset := flag.String("dataset", "", "path to the neighborhood dataset JSON")
	flag.Parse()

	if *dataset == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dataset); code != 0 {
		os.Exit(code)
	}
}

func run(path string) int {
	fmt.Println("=== Neighborhood Dataset Validation ===")
	fmt.Println()

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read dataset: %v\n", err)
		return 1
	}

	var raw rawCollection
	if err := json.Unmarshal(data, &raw); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse dataset: %v\n", err)
		return 1
	}

	graph, err := domain.ParseGraph(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load graph: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateFields(raw),
		validateAdjacency(raw, graph),
		validateConnectivity(graph),
		validateAliases(raw, graph),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = "FAIL"
			allPassed = false
		}
		fmt.Printf("[%s] %s\n", status, p.name)
		for _, e := range p.errors {
			fmt.Printf("       - %s\n", e)
		}
	}

	fmt.Println()
	if !allPassed {
		fmt.Println("validation FAILED")
		return 1
	}
	fmt.Printf("validation passed: %d neighborhoods\n", graph.Len())
	return 0
}

func validateFields(raw rawCollection) *phase {
	p := &phase{name: "field presence and ranges"}

	if raw.Type != "FeatureCollection" {
		p.errorf("dataset type is %q, want FeatureCollection", raw.Type)
	}

	seen := map[string]bool{}
	for i, f := range raw.Features {
		name := f.Properties.NeighborhoodName
		if name == "" {
			p.errorf("feature %d has no neighborhood_name", i)
			continue
		}
		if seen[name] {
			p.errorf("duplicate neighborhood %q", name)
		}
		seen[name] = true

		if len(f.Geometry) == 0 {
			p.errorf("%s: missing geometry", name)
		}
		if f.Properties.SESIndex == nil {
			p.errorf("%s: missing ses_index", name)
		} else if v := *f.Properties.SESIndex; v < 0 || v > 1 {
			p.errorf("%s: ses_index %g outside [0,1]", name, v)
		}
		if f.Properties.InfrastructureQuality == nil {
			p.errorf("%s: missing infrastructure_quality", name)
		} else if v := *f.Properties.InfrastructureQuality; v < 0 || v > 1 {
			p.errorf("%s: infrastructure_quality %g outside [0,1]", name, v)
		}
	}

	fmt.Printf("checked %d features\n", len(raw.Features))
	return p
}

func validateAdjacency(raw rawCollection, graph *domain.Graph) *phase {
	p := &phase{name: "adjacency references and symmetry"}

	listed := map[string]map[string]bool{}
	for _, f := range raw.Features {
		name := f.Properties.NeighborhoodName
		if name == "" {
			continue
		}
		listed[name] = map[string]bool{}
		for _, n := range f.Properties.Adjacent {
			if _, err := graph.Resolve(n); err != nil {
				p.errorf("%s lists unknown neighbor %q", name, n)
				continue
			}
			if n == name {
				p.errorf("%s lists itself as a neighbor", name)
				continue
			}
			listed[name][n] = true
		}
		if len(f.Properties.Adjacent) == 0 {
			p.errorf("%s has no adjacent neighborhoods (isolate in source data)", name)
		}
	}

	// The loader forces symmetry; asymmetric source data still deserves a
	// report because it usually means the preprocessing step is broken.
	for name, neighbors := range listed {
		for n := range neighbors {
			if back, ok := listed[n]; ok && !back[name] {
				p.errorf("asymmetric edge: %s lists %s but not vice versa", name, n)
			}
		}
	}

	return p
}

func validateConnectivity(graph *domain.Graph) *phase {
	p := &phase{name: "graph connectivity"}

	names := graph.Names()
	if len(names) == 0 {
		p.errorf("graph is empty")
		return p
	}

	components := 0
	visited := map[string]bool{}
	for _, start := range names {
		if visited[start] {
			continue
		}
		components++
		// BFS flood fill from the first unvisited neighborhood.
		queue := []string{start}
		visited[start] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			node, err := graph.Resolve(current)
			if err != nil {
				continue
			}
			for _, neighbor := range node.Adjacent {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}
	}

	fmt.Printf("connected components: %d\n", components)
	if components > 1 {
		p.errorf("graph has %d disconnected components; corridor queries across them will fail", components)
	}
	return p
}

func validateAliases(raw rawCollection, graph *domain.Graph) *phase {
	p := &phase{name: "alias resolution"}

	for _, f := range raw.Features {
		for _, alias := range f.Properties.Aliases {
			node, err := graph.Resolve(alias)
			if err != nil {
				p.errorf("alias %q does not resolve", alias)
				continue
			}
			if node.Name != f.Properties.NeighborhoodName {
				p.errorf("alias %q resolves to %q, expected %q",
					alias, node.Name, f.Properties.NeighborhoodName)
			}
		}
	}

	return p
}
