// Package engine ties the prefix indexes, the location graph, the scorer and
// the ranker together into job recommendation queries.
package engine

import (
	"fmt"

	"github.com/okian/jobmatch/internal/domain/geo"
	"github.com/okian/jobmatch/internal/domain/model"
	"github.com/okian/jobmatch/internal/domain/prefix"
	"github.com/okian/jobmatch/internal/domain/scoring"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithScorer replaces the default scorer.
func WithScorer(s *scoring.Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// Engine holds jobs and users in registration order along with the indexes
// built from them. It is single-threaded; callers needing concurrent access
// must synchronize externally.
//
// Registering an ID a second time replaces the stored entity in place, but
// the title and skill indexes keep whatever the earlier registration put
// there.
type Engine struct {
	scorer *scoring.Scorer

	jobs     []*model.Job
	jobByID  map[string]int
	users    []*model.User
	userByID map[string]int

	// order keeps registrations interleaved as they happened.
	order   []model.Registration
	orderOf map[string]int

	titles *prefix.Index
	skills *prefix.Index
	graph  *geo.Graph
}

// New creates an empty engine.
func New(opts ...Option) *Engine {
	e := &Engine{scorer: scoring.New()}
	for _, opt := range opts {
		opt(e)
	}
	e.Reset()
	return e
}

// Reset drops every job, user, index entry and location.
func (e *Engine) Reset() {
	e.jobs = nil
	e.jobByID = make(map[string]int)
	e.users = nil
	e.userByID = make(map[string]int)
	e.order = nil
	e.orderOf = make(map[string]int)
	e.titles = prefix.New()
	e.skills = prefix.New()
	e.graph = geo.NewGraph()
}

// Scorer returns the scorer used for ranking.
func (e *Engine) Scorer() *scoring.Scorer { return e.scorer }

// RegisterJob adds job, indexing its title and required skills and
// materializing its location. Nil jobs are ignored.
func (e *Engine) RegisterJob(job *model.Job) {
	if job == nil {
		return
	}
	if i, ok := e.jobByID[job.ID]; ok {
		e.jobs[i] = job
	} else {
		e.jobByID[job.ID] = len(e.jobs)
		e.jobs = append(e.jobs, job)
	}
	e.record("job:"+job.ID, model.Registration{Job: job})

	e.titles.Insert(job.Title)
	for _, s := range job.RequiredSkills() {
		e.skills.Insert(s)
	}
	if job.Location != "" {
		e.graph.AddLocation(job.Location, job.Latitude, job.Longitude)
	}
}

// RegisterUser adds user and materializes its home location.
// Nil users are ignored.
func (e *Engine) RegisterUser(user *model.User) {
	if user == nil {
		return
	}
	if i, ok := e.userByID[user.ID]; ok {
		e.users[i] = user
	} else {
		e.userByID[user.ID] = len(e.users)
		e.users = append(e.users, user)
	}
	e.record("user:"+user.ID, model.Registration{User: user})

	if user.Location != "" {
		e.graph.AddLocation(user.Location, user.Latitude, user.Longitude)
	}
}

func (e *Engine) record(key string, r model.Registration) {
	if i, ok := e.orderOf[key]; ok {
		e.order[i] = r
		return
	}
	e.orderOf[key] = len(e.order)
	e.order = append(e.order, r)
}

// AddLocation registers a location directly. The first coordinates win.
func (e *Engine) AddLocation(name string, lat, lon float64) {
	e.graph.AddLocation(name, lat, lon)
}

// AddRoad joins two registered locations. It returns geo.ErrUnknownLocation
// when either is missing.
func (e *Engine) AddRoad(a, b string, distance float64) error {
	return e.graph.AddRoad(a, b, distance)
}

// Job looks up a job by ID.
func (e *Engine) Job(id string) (*model.Job, bool) {
	i, ok := e.jobByID[id]
	if !ok {
		return nil, false
	}
	return e.jobs[i], true
}

// User looks up a user by ID.
func (e *Engine) User(id string) (*model.User, bool) {
	i, ok := e.userByID[id]
	if !ok {
		return nil, false
	}
	return e.users[i], true
}

// Jobs returns all jobs in registration order.
func (e *Engine) Jobs() []*model.Job {
	return append([]*model.Job(nil), e.jobs...)
}

// Users returns all users in registration order.
func (e *Engine) Users() []*model.User {
	return append([]*model.User(nil), e.users...)
}

// Stats returns collection and index sizes.
func (e *Engine) Stats() Stats {
	return Stats{
		Jobs:         len(e.jobs),
		Users:        len(e.users),
		UniqueTitles: e.titles.Size(),
		UniqueSkills: e.skills.Size(),
		Locations:    e.graph.Len(),
	}
}

// Snapshot captures the current entities, locations and roads, plus the
// index entries that only superseded registrations still account for.
func (e *Engine) Snapshot() model.Snapshot {
	titles := make(map[string]struct{}, len(e.jobs))
	skills := make(map[string]struct{})
	for _, j := range e.jobs {
		titles[j.Title] = struct{}{}
		for _, s := range j.RequiredSkills() {
			skills[s] = struct{}{}
		}
	}
	return model.Snapshot{
		Locations:     e.graph.Locations(),
		Registrations: append([]model.Registration(nil), e.order...),
		Roads:         e.graph.Roads(),
		StaleTitles:   stale(e.titles, titles),
		StaleSkills:   stale(e.skills, skills),
	}
}

func stale(x *prefix.Index, current map[string]struct{}) []string {
	var out []string
	for _, w := range x.Words() {
		if _, ok := current[w]; !ok {
			out = append(out, w)
		}
	}
	return out
}

// Restore resets the engine and replays snap: locations first, then
// registrations in order, then roads. Roads may only reference locations
// snap itself introduces; the current contents are discarded.
func (e *Engine) Restore(snap model.Snapshot) error {
	if err := e.checkRoads(snap, false); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	e.Reset()
	if err := e.apply(snap); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return nil
}

// Merge replays snap on top of the current contents. Roads are checked
// before anything is written, so a bad road leaves the engine untouched.
func (e *Engine) Merge(snap model.Snapshot) error {
	if err := e.checkRoads(snap, true); err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	if err := e.apply(snap); err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	return nil
}

// checkRoads reports the first road whose endpoint is not introduced by snap
// and, when withGraph is set, not already in the graph either.
func (e *Engine) checkRoads(snap model.Snapshot, withGraph bool) error {
	known := make(map[string]struct{}, len(snap.Locations))
	for _, loc := range snap.Locations {
		known[loc.Name] = struct{}{}
	}
	for _, r := range snap.Registrations {
		switch {
		case r.Job != nil && r.Job.Location != "":
			known[r.Job.Location] = struct{}{}
		case r.User != nil && r.User.Location != "":
			known[r.User.Location] = struct{}{}
		}
	}
	for _, road := range snap.Roads {
		for _, name := range []string{road.From, road.To} {
			if _, ok := known[name]; ok || (withGraph && e.graph.HasLocation(name)) {
				continue
			}
			return fmt.Errorf("road %q-%q: %w: %s", road.From, road.To, geo.ErrUnknownLocation, name)
		}
	}
	return nil
}

func (e *Engine) apply(snap model.Snapshot) error {
	for _, loc := range snap.Locations {
		e.graph.AddLocation(loc.Name, loc.Latitude, loc.Longitude)
	}
	for _, r := range snap.Registrations {
		switch {
		case r.Job != nil:
			e.RegisterJob(r.Job)
		case r.User != nil:
			e.RegisterUser(r.User)
		}
	}
	for _, t := range snap.StaleTitles {
		e.titles.Insert(t)
	}
	for _, s := range snap.StaleSkills {
		e.skills.Insert(s)
	}
	for _, road := range snap.Roads {
		if err := e.graph.AddRoad(road.From, road.To, road.Distance); err != nil {
			return err
		}
	}
	return nil
}
