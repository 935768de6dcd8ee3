package model

import (
	"slices"
	"sort"
)

// Proficiency bounds and user defaults.
const (
	MinProficiency     = 1
	MaxProficiency     = 10
	DefaultMaxDistance = 50.0 // km
)

// User is a job seeker.
type User struct {
	ID        string
	Name      string
	Age       int
	Education string
	Location  string  // home location name
	Latitude  float64 // 0,0 means unset
	Longitude float64

	// MaxDistance is the furthest the user is willing to travel, in km.
	MaxDistance float64

	skills      map[string]int
	preferences []string
}

// NewUser creates a user with the default travel distance and no skills.
func NewUser(id, name string, age int, education, location string) *User {
	return &User{
		ID:          id,
		Name:        name,
		Age:         age,
		Education:   education,
		Location:    location,
		MaxDistance: DefaultMaxDistance,
		skills:      make(map[string]int),
	}
}

// SetCoordinates stores the user's latitude and longitude.
func (u *User) SetCoordinates(lat, lon float64) {
	u.Latitude = lat
	u.Longitude = lon
}

// SetMaxDistance stores the travel limit, clamping negatives to zero.
func (u *User) SetMaxDistance(km float64) {
	if km < 0 {
		km = 0
	}
	u.MaxDistance = km
}

// AddSkill records a lower-cased skill with proficiency clamped into [1,10].
func (u *User) AddSkill(skill string, proficiency int) {
	s := NormalizeSkill(skill)
	if s == "" {
		return
	}
	if u.skills == nil {
		u.skills = make(map[string]int)
	}
	u.skills[s] = clampInt(proficiency, MinProficiency, MaxProficiency)
}

// Proficiency returns the user's level for skill, or 0 when absent.
func (u *User) Proficiency(skill string) int {
	return u.skills[NormalizeSkill(skill)]
}

// HasSkill reports whether the user lists skill.
func (u *User) HasSkill(skill string) bool {
	_, ok := u.skills[NormalizeSkill(skill)]
	return ok
}

// Skills returns a copy of the skill map.
func (u *User) Skills() map[string]int {
	out := make(map[string]int, len(u.skills))
	for k, v := range u.skills {
		out[k] = v
	}
	return out
}

// SkillNames returns the user's skills sorted by name.
func (u *User) SkillNames() []string {
	names := make([]string, 0, len(u.skills))
	for k := range u.skills {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// AddPreference appends a preference tag unless already present.
func (u *User) AddPreference(pref string) {
	if pref == "" || slices.Contains(u.preferences, pref) {
		return
	}
	u.preferences = append(u.preferences, pref)
}

// Preferences returns a copy of the preference tags.
func (u *User) Preferences() []string {
	return slices.Clone(u.preferences)
}
