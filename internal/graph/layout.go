package graph

import "math"

// layoutMaxIterations and layoutTolerance match the max_iterations/tolerance
// contract spec.md §4.5 hands to the external layout; layoutArea bounds the
// Fruchterman-Reingold-style force simulation spec.md treats as an untested
// external black box: any deterministic placement satisfying "connected
// nodes pull closer together than disconnected ones, on average" is an
// acceptable implementation, so this is a self-contained stand-in rather
// than a faithful reproduction of any particular upstream layout engine.
const (
	layoutMaxIterations = 10000
	layoutTolerance     = 1e-3
	layoutArea          = 1000.0
)

// Positioning assigns each node an (x, y) position via a force-directed
// simulation: nodes repel each other uniformly, edges pull their endpoints
// together, and positions are nudged a shrinking step size each iteration
// until layoutMaxIterations is reached or the largest displacement of an
// iteration falls below layoutTolerance. The result is written back onto the
// Graph via SetPosition.
func (g *Graph) Positioning() {
	nodes := g.IterNodes()
	n := len(nodes)
	if n == 0 {
		return
	}

	index := make(map[NodeId]int, n)
	for i, node := range nodes {
		index[node.ID] = i
	}

	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		angle := 2 * math.Pi * float64(i) / float64(n)
		radius := layoutArea / 4
		x[i] = radius * math.Cos(angle)
		y[i] = radius * math.Sin(angle)
	}

	edges := g.IterEdges()
	k := math.Sqrt(layoutArea * layoutArea / float64(n))

	temperature := layoutArea / 10
	cooling := temperature / float64(layoutMaxIterations)

	for iter := 0; iter < layoutMaxIterations; iter++ {
		dx := make([]float64, n)
		dy := make([]float64, n)

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				ddx, ddy := x[i]-x[j], y[i]-y[j]
				dist := math.Hypot(ddx, ddy)
				if dist < 0.01 {
					dist = 0.01
				}
				repulsion := (k * k) / dist
				fx, fy := (ddx/dist)*repulsion, (ddy/dist)*repulsion
				dx[i] += fx
				dy[i] += fy
				dx[j] -= fx
				dy[j] -= fy
			}
		}

		for _, e := range edges {
			i, okI := index[e.From]
			j, okJ := index[e.To]
			if !okI || !okJ || i == j {
				continue
			}
			ddx, ddy := x[i]-x[j], y[i]-y[j]
			dist := math.Hypot(ddx, ddy)
			if dist < 0.01 {
				dist = 0.01
			}
			attraction := (dist * dist) / k
			fx, fy := (ddx/dist)*attraction, (ddy/dist)*attraction
			dx[i] -= fx
			dy[i] -= fy
			dx[j] += fx
			dy[j] += fy
		}

		maxDisplacement := 0.0
		for i := 0; i < n; i++ {
			dist := math.Hypot(dx[i], dy[i])
			if dist < 0.01 {
				dist = 0.01
			}
			limited := math.Min(dist, temperature)
			x[i] += (dx[i] / dist) * limited
			y[i] += (dy[i] / dist) * limited
			if limited > maxDisplacement {
				maxDisplacement = limited
			}
		}

		temperature -= cooling
		if maxDisplacement < layoutTolerance {
			break
		}
	}

	for i, node := range nodes {
		g.SetPosition(node.ID, Position{X: x[i], Y: y[i]})
	}
}
