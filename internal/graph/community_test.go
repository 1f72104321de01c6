package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestGraph(edges [][2]int, nodeCount int) *Graph {
	g := NewGraph()
	alloc := NewIDAllocator()
	ids := make([]NodeId, nodeCount)
	for i := 0; i < nodeCount; i++ {
		id := alloc.Next()
		ids[i] = id
		g.AddNode(Node{ID: id, Label: string(rune('a' + i))})
	}
	for _, e := range edges {
		g.AddEdge(Edge{From: ids[e[0]], To: ids[e[1]]})
	}
	return g
}

func TestClusterize_NoEdgesAllSingletons(t *testing.T) {
	g := buildTestGraph(nil, 4)
	clusters := g.Clusterize([]float64{1.0}, 10)
	require.Len(t, clusters, 4)
	for _, c := range clusters {
		assert.Len(t, c.Members, 1)
	}
}

func TestClusterize_TwoDisconnectedPairs(t *testing.T) {
	g := buildTestGraph([][2]int{{0, 1}, {1, 0}, {2, 3}, {3, 2}}, 4)
	clusters := g.Clusterize([]float64{1.0}, 10)
	require.Len(t, clusters, 2)
	for _, c := range clusters {
		assert.Len(t, c.Members, 2)
	}
}

func TestClusterize_ChainOfThreeOneCommunity(t *testing.T) {
	g := buildTestGraph([][2]int{{0, 1}, {1, 2}}, 3)
	clusters := g.Clusterize([]float64{1.0}, 10)
	require.Len(t, clusters, 1)
	assert.Len(t, clusters[0].Members, 3)
}

func TestClusterize_EmptyGraph(t *testing.T) {
	g := NewGraph()
	clusters := g.Clusterize([]float64{1.0}, 10)
	assert.Empty(t, clusters)
}

func TestClusterize_DefaultsWhenResolutionsEmpty(t *testing.T) {
	g := buildTestGraph([][2]int{{0, 1}}, 2)
	clusters := g.Clusterize(nil, 0)
	require.Len(t, clusters, 1)
	assert.Len(t, clusters[0].Members, 2)
}

func TestGiniCoefficient_EqualSizesIsZero(t *testing.T) {
	g := giniCoefficient(map[int]int{0: 2, 1: 2, 2: 2}, 6)
	assert.InDelta(t, 0, g, 1e-9)
}

func TestGiniCoefficient_SingleCommunityIsZero(t *testing.T) {
	g := giniCoefficient(map[int]int{0: 4}, 4)
	assert.InDelta(t, 0, g, 1e-9)
}

func TestMaxCommunityShare(t *testing.T) {
	share := maxCommunityShare(map[int]int{0: 3, 1: 1}, 4)
	assert.InDelta(t, 0.75, share, 1e-9)
}
