package graph

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// communityScore is the composite score spec.md §4.3 uses to pick the best
// resolution from a γ-sweep: modularity rewarded, but penalized for
// inequality (Gini coefficient of community sizes) and for any single
// community dominating the project (max-community-share).
type communityScore struct {
	resolution   float64
	modularity   float64
	gini         float64
	maxShare     float64
	composite    float64
	partition    map[NodeId]int
}

const (
	giniPenaltyWeight     = 0.35
	maxSharePenaltyWeight = 0.40
)

// defaultResolutionSweep is the γ-sweep spec.md §4.3 fixes when a project
// doesn't override it via depviz.yml.
var defaultResolutionSweep = []float64{0.6, 0.8, 1.0, 1.2, 1.5, 2.0, 2.5}

// Clusterize runs Louvain-style weighted modularity optimization at every
// resolution in resolutions, scores each result, and returns the clusters
// from the best-scoring resolution. maxLevels bounds the number of
// aggregation passes; resolutions and maxLevels both come from the
// project's depviz.yml (see internal/config), defaulting per spec.md §4.3
// when unset.
func (g *Graph) Clusterize(resolutions []float64, maxLevels int) []Cluster {
	if len(resolutions) == 0 {
		resolutions = defaultResolutionSweep
	}
	if maxLevels <= 0 {
		maxLevels = 10
	}
	maxLevels = clampInt(maxLevels, 1, 20)

	wg, indexOf, idOf := g.toWeightedUndirected()
	if len(idOf) == 0 {
		return nil
	}

	var best *communityScore
	for _, gamma := range resolutions {
		partition := louvain(wg, indexOf, idOf, gamma, maxLevels)
		score := scorePartition(wg, indexOf, partition, gamma)
		if best == nil || score.composite > best.composite {
			score.partition = partition
			best = &score
		}
	}

	return partitionToClusters(best.partition)
}

// toWeightedUndirected collapses the directed, possibly-duplicated import
// edges into an undirected weighted graph (weight = number of directed
// edges observed between the pair, in either direction), which is the
// input Louvain's modularity formula expects.
func (g *Graph) toWeightedUndirected() (*simple.WeightedUndirectedGraph, map[NodeId]int64, map[int64]NodeId) {
	wg := simple.NewWeightedUndirectedGraph(0, 0)
	indexOf := make(map[NodeId]int64, len(g.nodes))
	idOf := make(map[int64]NodeId, len(g.nodes))

	var next int64
	for id := range g.nodes {
		indexOf[id] = next
		idOf[next] = id
		wg.AddNode(simple.Node(next))
		next++
	}

	weights := make(map[[2]int64]float64)
	for e := range g.edges {
		if e.From == e.To {
			continue
		}
		a, b := indexOf[e.From], indexOf[e.To]
		if a > b {
			a, b = b, a
		}
		weights[[2]int64{a, b}] += 1
	}
	for pair, w := range weights {
		wg.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(pair[0]), T: simple.Node(pair[1]), W: w})
	}
	return wg, indexOf, idOf
}

// louvain runs the classic two-phase Louvain algorithm (local moving then
// aggregation) at a fixed resolution gamma, for up to maxLevels
// aggregation passes, and returns the resulting partition over the
// original node ids.
func louvain(wg *simple.WeightedUndirectedGraph, indexOf map[NodeId]int64, idOf map[int64]NodeId, gamma float64, maxLevels int) map[NodeId]int {
	n := len(idOf)
	adjacency, degree, totalWeight := buildAdjacency(wg, n)

	// community[i] is the current community of original-index node i.
	community := make([]int, n)
	for i := range community {
		community[i] = i
	}

	if totalWeight == 0 {
		return indexPartitionToIDs(community, idOf)
	}

	// superAdjacency/superDegree track the aggregated graph across levels;
	// superMembers[i] lists which original indices a super-node represents.
	superAdjacency := adjacency
	superDegree := degree
	superMembers := make([][]int, n)
	for i := range superMembers {
		superMembers[i] = []int{i}
	}

	finalCommunityOfOriginal := make([]int, n)
	for i := range finalCommunityOfOriginal {
		finalCommunityOfOriginal[i] = i
	}

	for level := 0; level < maxLevels; level++ {
		localCommunity, moved := localMovingPhase(superAdjacency, superDegree, totalWeight, gamma)
		if !moved {
			break
		}

		// Remap final assignment: every original node adopts the community
		// its current super-node landed in.
		newFinal := make([]int, n)
		for superIdx, members := range superMembers {
			c := localCommunity[superIdx]
			for _, orig := range members {
				newFinal[orig] = c
			}
		}
		finalCommunityOfOriginal = newFinal

		superAdjacency, superDegree, superMembers = aggregate(superAdjacency, superDegree, superMembers, localCommunity)
		if len(superAdjacency) == len(adjacency) {
			// No compression occurred; further levels would repeat work.
			break
		}
		adjacency = superAdjacency
	}

	return indexPartitionToIDs(finalCommunityOfOriginal, idOf)
}

func buildAdjacency(wg *simple.WeightedUndirectedGraph, n int) (adjacency []map[int]float64, degree []float64, totalWeight float64) {
	adjacency = make([]map[int]float64, n)
	degree = make([]float64, n)
	for i := range adjacency {
		adjacency[i] = make(map[int]float64)
	}

	nodes := wg.Nodes()
	for nodes.Next() {
		u := nodes.Node().ID()
		to := wg.From(u)
		for to.Next() {
			v := to.Node().ID()
			w := wg.WeightedEdge(u, v).Weight()
			adjacency[u][int(v)] += w
			degree[u] += w
		}
	}
	for _, d := range degree {
		totalWeight += d
	}
	totalWeight /= 2
	return adjacency, degree, totalWeight
}

// localMovingPhase repeatedly sweeps every node, moving it into whichever
// neighboring community yields the largest strictly-positive resolution-
// adjusted gain Δ(c) = k_i_in(c) − γ·k_i·tot[c]/m2 against a fixed baseline
// of 0.0 (not the gain of staying put), breaking ties toward the smaller
// community id, until a full sweep produces no move.
func localMovingPhase(adjacency []map[int]float64, degree []float64, totalWeight, gamma float64) ([]int, bool) {
	n := len(adjacency)
	community := make([]int, n)
	communityWeight := make([]float64, n)
	for i := range community {
		community[i] = i
		communityWeight[i] = degree[i]
	}

	movedAny := false
	for {
		improved := false
		for node := 0; node < n; node++ {
			currentComm := community[node]
			communityWeight[currentComm] -= degree[node]

			neighborWeights := make(map[int]float64)
			for neighbor, w := range adjacency[node] {
				neighborWeights[community[neighbor]] += w
			}

			// Baseline is fixed at 0.0, not Δ(ci): a node only moves when some
			// neighbor community's gain is strictly positive (spec's Open
			// Question #2 pins this down deliberately).
			bestComm := currentComm
			bestGain := 0.0

			candidates := make([]int, 0, len(neighborWeights))
			for comm := range neighborWeights {
				if comm != currentComm {
					candidates = append(candidates, comm)
				}
			}
			sort.Ints(candidates)

			for _, comm := range candidates {
				gain := neighborWeights[comm] - gamma*degree[node]*communityWeight[comm]/(2*totalWeight)
				if gain > bestGain {
					bestGain = gain
					bestComm = comm
				}
			}

			community[node] = bestComm
			communityWeight[bestComm] += degree[node]
			if bestComm != currentComm {
				improved = true
				movedAny = true
			}
		}
		if !improved {
			break
		}
	}

	return renumberCommunities(community), movedAny
}

func renumberCommunities(community []int) []int {
	remap := make(map[int]int)
	out := make([]int, len(community))
	next := 0
	for i, c := range community {
		id, ok := remap[c]
		if !ok {
			id = next
			remap[c] = id
			next++
		}
		out[i] = id
	}
	return out
}

// aggregate builds the next level's super-graph: one super-node per
// community produced by localCommunity, with edge weights summed
// (including self-loops for intra-community weight).
func aggregate(adjacency []map[int]float64, degree []float64, members [][]int, localCommunity []int) ([]map[int]float64, []float64, [][]int) {
	numSuper := 0
	for _, c := range localCommunity {
		if c+1 > numSuper {
			numSuper = c + 1
		}
	}

	newAdjacency := make([]map[int]float64, numSuper)
	newDegree := make([]float64, numSuper)
	newMembers := make([][]int, numSuper)
	for i := range newAdjacency {
		newAdjacency[i] = make(map[int]float64)
	}

	for i, m := range members {
		c := localCommunity[i]
		newMembers[c] = append(newMembers[c], m...)
	}

	for u := range adjacency {
		cu := localCommunity[u]
		for v, w := range adjacency[u] {
			cv := localCommunity[v]
			newAdjacency[cu][cv] += w
			newDegree[cu] += w
		}
	}

	return newAdjacency, newDegree, newMembers
}

func indexPartitionToIDs(partition []int, idOf map[int64]NodeId) map[NodeId]int {
	out := make(map[NodeId]int, len(partition))
	for idx, comm := range partition {
		out[idOf[int64(idx)]] = comm
	}
	return out
}

// scorePartition computes modularity, the Gini coefficient of community
// sizes, and the largest single community's share of all nodes, combining
// them into the composite score spec.md §4.3 uses to rank candidate
// resolutions against each other.
func scorePartition(wg *simple.WeightedUndirectedGraph, indexOf map[NodeId]int64, partition map[NodeId]int, gamma float64) communityScore {
	n := len(indexOf)
	adjacency, degree, totalWeight := buildAdjacency(wg, n)

	community := make([]int, n)
	for id, idx := range indexOf {
		community[idx] = partition[id]
	}

	modularity := 0.0
	if totalWeight > 0 {
		m2 := 2 * totalWeight
		tot := make(map[int]float64)
		for u := 0; u < n; u++ {
			tot[community[u]] += degree[u]
			for v, w := range adjacency[u] {
				if community[u] == community[v] {
					modularity += w
				}
			}
		}
		for _, t := range tot {
			modularity -= gamma * t * t / m2
		}
		modularity /= m2
	}

	sizes := make(map[int]int)
	for _, c := range community {
		sizes[c]++
	}
	gini := giniCoefficient(sizes, n)
	maxShare := maxCommunityShare(sizes, n)

	composite := modularity - giniPenaltyWeight*gini - maxSharePenaltyWeight*maxShare

	return communityScore{
		resolution: gamma,
		modularity: modularity,
		gini:       gini,
		maxShare:   maxShare,
		composite:  composite,
	}
}

func giniCoefficient(sizes map[int]int, n int) float64 {
	if n == 0 || len(sizes) <= 1 {
		return 0
	}
	values := make([]float64, 0, len(sizes))
	for _, s := range sizes {
		values = append(values, float64(s))
	}
	sort.Float64s(values)

	var sumAbsDiff, sum float64
	for i, vi := range values {
		sum += vi
		for j := i + 1; j < len(values); j++ {
			sumAbsDiff += math.Abs(vi - values[j])
		}
	}
	if sum == 0 {
		return 0
	}
	return sumAbsDiff / (float64(len(values)) * sum)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxCommunityShare(sizes map[int]int, n int) float64 {
	if n == 0 {
		return 0
	}
	max := 0
	for _, s := range sizes {
		if s > max {
			max = s
		}
	}
	return float64(max) / float64(n)
}

// partitionToClusters converts a NodeId->community map into sorted Cluster
// slices: clusters ascending by id, members ascending by NodeId within
// each cluster.
func partitionToClusters(partition map[NodeId]int) []Cluster {
	byComm := make(map[int][]NodeId)
	for id, c := range partition {
		byComm[c] = append(byComm[c], id)
	}

	ids := make([]int, 0, len(byComm))
	for c := range byComm {
		ids = append(ids, c)
	}
	sort.Ints(ids)

	clusters := make([]Cluster, 0, len(ids))
	for _, c := range ids {
		members := byComm[c]
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
		clusters = append(clusters, Cluster{ID: c, Members: members})
	}
	return clusters
}
