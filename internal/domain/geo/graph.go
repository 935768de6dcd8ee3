// Package geo models named locations joined by weighted roads and answers
// proximity and shortest-path queries over them.
package geo

import (
	"fmt"
	"math"

	"github.com/okian/jobmatch/internal/domain/model"
)

// Unreachable is the distance reported for nodes with no path from the start.
var Unreachable = math.Inf(1)

// Unknown is the straight-line distance reported when coordinates are missing.
var Unknown = math.Inf(1)

type edge struct {
	to       string
	distance float64
}

type node struct {
	loc   model.Location
	edges []edge // insertion order; one entry per neighbour
}

// Graph is an undirected weighted graph keyed by location name.
// It is not safe for concurrent use.
type Graph struct {
	nodes   map[string]*node
	order   []string
	roads   []model.Road
	roadIdx map[[2]string]int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]*node),
		roadIdx: make(map[[2]string]int),
	}
}

// AddLocation registers name. Re-adding an existing name is a no-op, so the
// first coordinates win.
func (g *Graph) AddLocation(name string, lat, lon float64) {
	if _, ok := g.nodes[name]; ok {
		return
	}
	g.nodes[name] = &node{loc: model.Location{Name: name, Latitude: lat, Longitude: lon}}
	g.order = append(g.order, name)
}

// HasLocation reports whether name is registered.
func (g *Graph) HasLocation(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// Location returns the stored location for name.
func (g *Graph) Location(name string) (model.Location, bool) {
	n, ok := g.nodes[name]
	if !ok {
		return model.Location{}, false
	}
	return n.loc, true
}

// Locations returns all locations in insertion order.
func (g *Graph) Locations() []model.Location {
	out := make([]model.Location, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.nodes[name].loc)
	}
	return out
}

// Roads returns all roads in insertion order.
func (g *Graph) Roads() []model.Road {
	return append([]model.Road(nil), g.roads...)
}

// Len returns the number of locations.
func (g *Graph) Len() int { return len(g.order) }

// AddRoad joins a and b in both directions. Both endpoints must already be
// registered; nothing is written otherwise. Negative distances become 0.
// Adding an existing road replaces its distance.
func (g *Graph) AddRoad(a, b string, distance float64) error {
	na, ok := g.nodes[a]
	if !ok {
		return fmt.Errorf("add road %q-%q: %w: %s", a, b, ErrUnknownLocation, a)
	}
	nb, ok := g.nodes[b]
	if !ok {
		return fmt.Errorf("add road %q-%q: %w: %s", a, b, ErrUnknownLocation, b)
	}
	if distance < 0 {
		distance = 0
	}

	na.setEdge(b, distance)
	nb.setEdge(a, distance)

	key := roadKey(a, b)
	if i, ok := g.roadIdx[key]; ok {
		g.roads[i].Distance = distance
		return nil
	}
	g.roadIdx[key] = len(g.roads)
	g.roads = append(g.roads, model.Road{From: a, To: b, Distance: distance})
	return nil
}

func (n *node) setEdge(to string, distance float64) {
	for i := range n.edges {
		if n.edges[i].to == to {
			n.edges[i].distance = distance
			return
		}
	}
	n.edges = append(n.edges, edge{to: to, distance: distance})
}

func roadKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

// NearbyWithin returns every location reachable from start with an
// accumulated road distance of at most maxDistance, start included.
//
// The walk is breadth-first with relaxation: a node whose tentative distance
// already exceeds maxDistance is never expanded, and a shorter path found
// later re-queues the node. Results are in order of first inclusion.
func (g *Graph) NearbyWithin(start string, maxDistance float64) []string {
	if _, ok := g.nodes[start]; !ok {
		return nil
	}
	if maxDistance < 0 {
		maxDistance = 0
	}

	dist := map[string]float64{start: 0}
	result := []string{start}
	queue := []string{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, e := range g.nodes[cur].edges {
			d := dist[cur] + e.distance
			if d > maxDistance {
				continue
			}
			prev, seen := dist[e.to]
			if seen && d >= prev {
				continue
			}
			dist[e.to] = d
			if !seen {
				result = append(result, e.to)
			}
			queue = append(queue, e.to)
		}
	}
	return result
}

// LocationsWithinRadius returns locations whose straight-line distance from
// (lat, lon) is at most radius km, in insertion order.
func (g *Graph) LocationsWithinRadius(lat, lon, radius float64) []string {
	var out []string
	for _, name := range g.order {
		loc := g.nodes[name].loc
		if Haversine(lat, lon, loc.Latitude, loc.Longitude) <= radius {
			out = append(out, name)
		}
	}
	return out
}

// DirectDistance returns the haversine distance between two registered
// locations, or Unknown when either is missing.
func (g *Graph) DirectDistance(a, b string) float64 {
	na, ok := g.nodes[a]
	if !ok {
		return Unknown
	}
	nb, ok := g.nodes[b]
	if !ok {
		return Unknown
	}
	return Haversine(na.loc.Latitude, na.loc.Longitude, nb.loc.Latitude, nb.loc.Longitude)
}
