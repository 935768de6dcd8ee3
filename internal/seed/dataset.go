package seed

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/jobmatch/internal/domain/model"
)

// Dataset is the YAML layout accepted by LoadFile.
type Dataset struct {
	Locations []LocationRecord `koanf:"locations"`
	Roads     []RoadRecord     `koanf:"roads"`
	Users     []UserRecord     `koanf:"users"`
	Jobs      []JobRecord      `koanf:"jobs"`
}

// LocationRecord is a location entry.
type LocationRecord struct {
	Name      string  `koanf:"name"`
	Latitude  float64 `koanf:"latitude"`
	Longitude float64 `koanf:"longitude"`
}

// RoadRecord is a road entry.
type RoadRecord struct {
	From     string  `koanf:"from"`
	To       string  `koanf:"to"`
	Distance float64 `koanf:"distance"`
}

// UserRecord is a user entry. A zero max_distance keeps the default.
type UserRecord struct {
	ID          string         `koanf:"id"`
	Name        string         `koanf:"name"`
	Age         int            `koanf:"age"`
	Education   string         `koanf:"education"`
	Location    string         `koanf:"location"`
	Latitude    float64        `koanf:"latitude"`
	Longitude   float64        `koanf:"longitude"`
	MaxDistance float64        `koanf:"max_distance"`
	Skills      map[string]int `koanf:"skills"`
	Preferences []string       `koanf:"preferences"`
}

// JobRecord is a job entry. A zero experience_level keeps the default.
type JobRecord struct {
	ID              string   `koanf:"id"`
	Title           string   `koanf:"title"`
	Company         string   `koanf:"company"`
	Location        string   `koanf:"location"`
	Salary          float64  `koanf:"salary"`
	Description     string   `koanf:"description"`
	JobType         string   `koanf:"job_type"`
	Latitude        float64  `koanf:"latitude"`
	Longitude       float64  `koanf:"longitude"`
	ExperienceLevel int      `koanf:"experience_level"`
	Skills          []string `koanf:"skills"`
	Benefits        []string `koanf:"benefits"`
}

// LoadFile reads a YAML dataset from path and converts it to a snapshot.
// Records without an id get a random UUID.
func LoadFile(path string) (model.Snapshot, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %s: %w", ErrLoadDataset, path, err)
	}

	var ds Dataset
	if err := k.UnmarshalWithConf("", &ds, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %s: %w", ErrLoadDataset, path, err)
	}
	return ds.Snapshot()
}

// Snapshot validates the dataset and converts it to model values.
func (ds Dataset) Snapshot() (model.Snapshot, error) {
	var snap model.Snapshot

	for _, l := range ds.Locations {
		if l.Name == "" {
			return model.Snapshot{}, fmt.Errorf("%w: location without name", ErrInvalidDataset)
		}
		snap.Locations = append(snap.Locations, model.Location{Name: l.Name, Latitude: l.Latitude, Longitude: l.Longitude})
	}

	for _, r := range ds.Users {
		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}
		u := model.NewUser(id, r.Name, r.Age, r.Education, r.Location)
		u.SetCoordinates(r.Latitude, r.Longitude)
		if r.MaxDistance != 0 {
			u.SetMaxDistance(r.MaxDistance)
		}
		for skill, level := range r.Skills {
			u.AddSkill(skill, level)
		}
		for _, p := range r.Preferences {
			u.AddPreference(p)
		}
		snap.Registrations = append(snap.Registrations, model.Registration{User: u})
	}

	for _, r := range ds.Jobs {
		if r.Title == "" {
			return model.Snapshot{}, fmt.Errorf("%w: job %q without title", ErrInvalidDataset, r.ID)
		}
		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}
		j := model.NewJob(id, r.Title, r.Company, r.Location, r.Salary)
		j.Description = r.Description
		j.JobType = r.JobType
		j.SetCoordinates(r.Latitude, r.Longitude)
		if r.ExperienceLevel != 0 {
			j.SetExperienceLevel(r.ExperienceLevel)
		}
		j.SetRequiredSkills(r.Skills...)
		for _, b := range r.Benefits {
			j.AddBenefit(b)
		}
		snap.Registrations = append(snap.Registrations, model.Registration{Job: j})
	}

	for _, r := range ds.Roads {
		if r.From == "" || r.To == "" {
			return model.Snapshot{}, fmt.Errorf("%w: road with empty endpoint", ErrInvalidDataset)
		}
		snap.Roads = append(snap.Roads, model.Road{From: r.From, To: r.To, Distance: r.Distance})
	}
	return snap, nil
}
