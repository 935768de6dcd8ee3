package geo

import (
	"container/heap"
	"slices"
)

type pqItem struct {
	name     string
	distance float64
}

// minQueue orders pending nodes by tentative distance. Stale entries are
// skipped on pop instead of being decreased in place.
type minQueue []pqItem

func (q minQueue) Len() int { return len(q) }
func (q minQueue) Less(i, j int) bool { return q[i].distance < q[j].distance }
func (q minQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *minQueue) Push(x any) { *q = append(*q, x.(pqItem)) }
func (q *minQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// ShortestDistances runs Dijkstra from start and returns the distance to
// every location. Unreachable locations map to Unreachable; an unknown start
// leaves every location Unreachable.
func (g *Graph) ShortestDistances(start string) map[string]float64 {
	dist, _ := g.dijkstra(start, "")
	return dist
}

// ShortestPath returns the location names along the shortest road path from
// start to end, both included. It returns nil when either endpoint is unknown
// or no path exists.
func (g *Graph) ShortestPath(start, end string) []string {
	path, _ := g.PathDistance(start, end)
	return path
}

// PathDistance returns the shortest path from start to end together with its
// total distance. The distance is Unreachable when no path exists.
func (g *Graph) PathDistance(start, end string) ([]string, float64) {
	if !g.HasLocation(start) || !g.HasLocation(end) {
		return nil, Unreachable
	}
	dist, prev := g.dijkstra(start, end)
	total := dist[end]
	if total == Unreachable {
		return nil, Unreachable
	}

	path := []string{end}
	for cur := end; cur != start; {
		cur = prev[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path, total
}

// dijkstra settles nodes from start. When target is non-empty the search
// stops as soon as target is settled.
func (g *Graph) dijkstra(start, target string) (map[string]float64, map[string]string) {
	dist := make(map[string]float64, len(g.nodes))
	for name := range g.nodes {
		dist[name] = Unreachable
	}
	prev := make(map[string]string)
	if _, ok := g.nodes[start]; !ok {
		return dist, prev
	}

	dist[start] = 0
	settled := make(map[string]bool, len(g.nodes))
	q := &minQueue{{name: start}}

	for q.Len() > 0 {
		cur := heap.Pop(q).(pqItem)
		if settled[cur.name] {
			continue
		}
		settled[cur.name] = true
		if cur.name == target {
			break
		}

		for _, e := range g.nodes[cur.name].edges {
			if settled[e.to] {
				continue
			}
			d := cur.distance + e.distance
			if d < dist[e.to] {
				dist[e.to] = d
				prev[e.to] = cur.name
				heap.Push(q, pqItem{name: e.to, distance: d})
			}
		}
	}
	return dist, prev
}
