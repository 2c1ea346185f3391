package domain

import (
	"errors"
	"fmt"
)

// ErrNoPathFound marks endpoints that sit in disconnected graph components.
var ErrNoPathFound = errors.New("no path found")

// ShortestPath returns the shortest hop-count path between two neighborhoods
// as ordered display names, source first. Ties between equally short paths are
// broken by visiting neighbors in lexicographic order, so repeated calls with
// the same graph and endpoints always return the same route. from == to yields
// a single-node path.
func (g *Graph) ShortestPath(from, to string) ([]string, error) {
	src, err := g.Resolve(from)
	if err != nil {
		return nil, err
	}
	dst, err := g.Resolve(to)
	if err != nil {
		return nil, err
	}

	if src == dst {
		return []string{src.Name}, nil
	}

	// Unweighted BFS. Adjacency lists are sorted at load time, so FIFO order
	// gives the deterministic lexicographic tie-break.
	parent := map[string]string{src.Name: ""}
	queue := []string{src.Name}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node, _ := g.Resolve(current)
		for _, neighbor := range node.Adjacent {
			if _, visited := parent[neighbor]; visited {
				continue
			}
			parent[neighbor] = current
			if neighbor == dst.Name {
				return reconstructPath(parent, src.Name, dst.Name), nil
			}
			queue = append(queue, neighbor)
		}
	}

	return nil, fmt.Errorf("%w: between %q and %q", ErrNoPathFound, src.Name, dst.Name)
}

func reconstructPath(parent map[string]string, from, to string) []string {
	var reversed []string
	for at := to; at != ""; at = parent[at] {
		reversed = append(reversed, at)
		if at == from {
			break
		}
	}

	path := make([]string, len(reversed))
	for i, name := range reversed {
		path[len(reversed)-1-i] = name
	}
	return path
}
