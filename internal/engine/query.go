package engine

import (
	"math"
	"slices"

	"github.com/okian/jobmatch/internal/domain/geo"
	"github.com/okian/jobmatch/internal/domain/model"
	"github.com/okian/jobmatch/internal/domain/ranking"
)

// distances memoizes Dijkstra runs for the duration of one query.
type distances struct {
	graph *geo.Graph
	from  map[string]map[string]float64
}

func (e *Engine) newDistances() *distances {
	return &distances{graph: e.graph, from: make(map[string]map[string]float64)}
}

// between picks the distance source for a user and a job: coordinates when
// the job has them, road distance when both locations are in the graph,
// otherwise 0 for the same location name and FallbackDistance for any other.
func (d *distances) between(user *model.User, job *model.Job) float64 {
	if job.HasCoordinates() {
		return geo.Haversine(user.Latitude, user.Longitude, job.Latitude, job.Longitude)
	}
	if d.graph.HasLocation(user.Location) && d.graph.HasLocation(job.Location) {
		dist, ok := d.from[user.Location]
		if !ok {
			dist = d.graph.ShortestDistances(user.Location)
			d.from[user.Location] = dist
		}
		if v, ok := dist[job.Location]; ok {
			return v
		}
		return geo.Unreachable
	}
	if user.Location == job.Location {
		return 0
	}
	return FallbackDistance
}

// DistanceOf returns the travel distance used when scoring job for user.
func (e *Engine) DistanceOf(user *model.User, job *model.Job) float64 {
	return e.newDistances().between(user, job)
}

// Recommend scores every job for the user and returns the best limit of them
// in descending score order. Unknown users get nothing.
func (e *Engine) Recommend(userID string, limit int) []Recommendation {
	user, ok := e.User(userID)
	if !ok || limit <= 0 {
		return nil
	}
	return e.rank(user, e.jobs, limit, e.newDistances())
}

func (e *Engine) rank(user *model.User, jobs []*model.Job, limit int, dist *distances) []Recommendation {
	r := ranking.New[Recommendation](len(jobs))
	for _, job := range jobs {
		d := dist.between(user, job)
		r.Add(Recommendation{Job: job, Distance: d}, e.scorer.Score(job, user, d))
	}

	top := r.TopK(limit)
	out := make([]Recommendation, 0, len(top))
	for _, s := range top {
		rec := s.Item
		rec.Score = s.Score
		out = append(out, rec)
	}
	return out
}

// SearchByTitle returns every job whose title starts with prefix, ignoring
// case, in registration order. The empty prefix matches nothing.
func (e *Engine) SearchByTitle(prefix string) []*model.Job {
	titles := e.titles.WordsWithPrefix(prefix)
	if len(titles) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		set[t] = struct{}{}
	}

	var out []*model.Job
	for _, job := range e.jobs {
		if _, ok := set[job.Title]; ok {
			out = append(out, job)
		}
	}
	return out
}

// SearchBySkill returns every job requiring a skill that starts with prefix.
// Each job appears at most once.
func (e *Engine) SearchBySkill(prefix string) []*model.Job {
	skills := e.skills.WordsWithPrefix(prefix)
	if len(skills) == 0 {
		return nil
	}

	var out []*model.Job
	for _, job := range e.jobs {
		if slices.ContainsFunc(skills, job.RequiresSkill) {
			out = append(out, job)
		}
	}
	return out
}

// FindNearLocation returns jobs located within maxDistance road km of
// location, in registration order.
func (e *Engine) FindNearLocation(location string, maxDistance float64) []*model.Job {
	nearby := e.graph.NearbyWithin(location, maxDistance)
	if len(nearby) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(nearby))
	for _, n := range nearby {
		set[n] = struct{}{}
	}

	var out []*model.Job
	for _, job := range e.jobs {
		if _, ok := set[job.Location]; ok {
			out = append(out, job)
		}
	}
	return out
}

// PersonalizedRecommend filters jobs by salary and distance, orders the
// survivors by how many preferred skills they require, then ranks them.
// The preferred-skill order only decides between equal scores.
func (e *Engine) PersonalizedRecommend(q PersonalizedQuery) []Recommendation {
	user, ok := e.User(q.UserID)
	if !ok || q.Limit <= 0 {
		return nil
	}
	maxDistance := math.Max(0, q.MaxDistance)
	dist := e.newDistances()

	var filtered []*model.Job
	for _, job := range e.jobs {
		if job.Salary < q.MinSalary {
			continue
		}
		if dist.between(user, job) > maxDistance {
			continue
		}
		filtered = append(filtered, job)
	}

	if len(q.PreferredSkills) > 0 {
		slices.SortStableFunc(filtered, func(a, b *model.Job) int {
			return preferredMatches(b, q.PreferredSkills) - preferredMatches(a, q.PreferredSkills)
		})
	}
	return e.rank(user, filtered, q.Limit, dist)
}

func preferredMatches(job *model.Job, preferred []string) int {
	n := 0
	for _, s := range preferred {
		if job.RequiresSkill(s) {
			n++
		}
	}
	return n
}

// ShortestPath returns the road path between two locations and its length.
func (e *Engine) ShortestPath(from, to string) ([]string, float64) {
	return e.graph.PathDistance(from, to)
}
