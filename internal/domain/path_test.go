package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortestPath(t *testing.T) {
	g := testGraph(t)

	t.Run("two-hop corridor", func(t *testing.T) {
		path, err := g.ShortestPath("Downtown", "Terwillegar")

		require.NoError(t, err)
		assert.Equal(t, []string{"Downtown", "Oliver", "Terwillegar"}, path)
	})

	t.Run("same endpoint yields single-node path", func(t *testing.T) {
		path, err := g.ShortestPath("Downtown", "Downtown")

		require.NoError(t, err)
		assert.Equal(t, []string{"Downtown"}, path)
	})

	t.Run("aliases resolve at both endpoints", func(t *testing.T) {
		path, err := g.ShortestPath("downtown", "MacTaggart")

		require.NoError(t, err)
		assert.Equal(t, []string{"Downtown", "Oliver", "Terwillegar"}, path)
	})

	t.Run("unknown source", func(t *testing.T) {
		_, err := g.ShortestPath("Atlantis", "Downtown")
		assert.ErrorIs(t, err, ErrUnknownNeighborhood)
	})

	t.Run("unknown destination", func(t *testing.T) {
		_, err := g.ShortestPath("Downtown", "Atlantis")
		assert.ErrorIs(t, err, ErrUnknownNeighborhood)
	})

	t.Run("disconnected component", func(t *testing.T) {
		_, err := g.ShortestPath("Downtown", "Far Island")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoPathFound)
		assert.Contains(t, err.Error(), "Far Island")
	})

	t.Run("repeated calls are identical", func(t *testing.T) {
		first, err := g.ShortestPath("Strathcona", "Terwillegar")
		require.NoError(t, err)

		for range 10 {
			again, err := g.ShortestPath("Strathcona", "Terwillegar")
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})
}

// Two equally short routes exist from A to D: A-B-D and A-C-D. The
// lexicographic tie-break must always pick B.
func TestShortestPathLexicographicTieBreak(t *testing.T) {
	data := `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{},"properties":{"neighborhood_name":"A","ses_index":0.5,"infrastructure_quality":0.5,"adjacent_neighborhoods":["C","B"]}},
		{"type":"Feature","geometry":{},"properties":{"neighborhood_name":"B","ses_index":0.5,"infrastructure_quality":0.5,"adjacent_neighborhoods":["A","D"]}},
		{"type":"Feature","geometry":{},"properties":{"neighborhood_name":"C","ses_index":0.5,"infrastructure_quality":0.5,"adjacent_neighborhoods":["A","D"]}},
		{"type":"Feature","geometry":{},"properties":{"neighborhood_name":"D","ses_index":0.5,"infrastructure_quality":0.5,"adjacent_neighborhoods":["B","C"]}}
	]}`
	g, err := ParseGraph([]byte(data))
	require.NoError(t, err)

	for range 20 {
		path, err := g.ShortestPath("A", "D")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "D"}, path)
	}
}

func TestShortestPathPrefersFewerHops(t *testing.T) {
	// A-B-E is shorter than A-C-D-E even though C sorts before B from A.
	data := `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{},"properties":{"neighborhood_name":"A","ses_index":0.5,"infrastructure_quality":0.5,"adjacent_neighborhoods":["C","B"]}},
		{"type":"Feature","geometry":{},"properties":{"neighborhood_name":"B","ses_index":0.5,"infrastructure_quality":0.5,"adjacent_neighborhoods":["A","E"]}},
		{"type":"Feature","geometry":{},"properties":{"neighborhood_name":"C","ses_index":0.5,"infrastructure_quality":0.5,"adjacent_neighborhoods":["A","D"]}},
		{"type":"Feature","geometry":{},"properties":{"neighborhood_name":"D","ses_index":0.5,"infrastructure_quality":0.5,"adjacent_neighborhoods":["C","E"]}},
		{"type":"Feature","geometry":{},"properties":{"neighborhood_name":"E","ses_index":0.5,"infrastructure_quality":0.5,"adjacent_neighborhoods":["B","D"]}}
	]}`
	g, err := ParseGraph([]byte(data))
	require.NoError(t, err)

	path, err := g.ShortestPath("A", "E")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "E"}, path)
}
