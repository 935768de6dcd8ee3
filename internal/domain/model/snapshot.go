package model

// Location is a named point in the location graph.
type Location struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Road is an undirected weighted edge between two locations.
type Road struct {
	From     string
	To       string
	Distance float64 // km
}

// Registration is one entry of the engine's registration log.
// Exactly one of Job and User is set.
type Registration struct {
	Job  *Job
	User *User
}

// Snapshot captures everything needed to rebuild an engine by replay.
type Snapshot struct {
	Locations     []Location     // graph insertion order
	Registrations []Registration // registration order
	Roads         []Road         // insertion order

	// Index spellings kept only by superseded registrations.
	StaleTitles []string
	StaleSkills []string
}

// Jobs returns the jobs contained in the snapshot, in registration order.
func (s Snapshot) Jobs() []*Job {
	var out []*Job
	for _, r := range s.Registrations {
		if r.Job != nil {
			out = append(out, r.Job)
		}
	}
	return out
}

// Users returns the users contained in the snapshot, in registration order.
func (s Snapshot) Users() []*User {
	var out []*User
	for _, r := range s.Registrations {
		if r.User != nil {
			out = append(out, r.User)
		}
	}
	return out
}
