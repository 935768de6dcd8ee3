// Package model contains domain models passed between layers.
package model

import (
	"slices"
	"strings"
)

// Experience level bounds for jobs (entry to senior).
const (
	MinExperienceLevel = 1
	MaxExperienceLevel = 5
)

// Job is a posting a user can be matched against.
//
// Required skills and benefits are only reachable through methods so that
// skill names stay lower-cased and both lists stay free of duplicates.
type Job struct {
	ID          string  // unique, immutable after creation
	Title       string  // free text, indexed case-insensitively
	Company     string  // employer name
	Location    string  // location name, materialized in the location graph
	Salary      float64 // non-negative
	Description string
	JobType     string  // e.g. "full-time", "part-time", "contract"
	Latitude    float64 // 0,0 means unset
	Longitude   float64

	experienceLevel int
	skills          []string
	benefits        []string
}

// NewJob creates a job at entry experience level with no skills or benefits.
func NewJob(id, title, company, location string, salary float64) *Job {
	j := &Job{
		ID:              id,
		Title:           title,
		Company:         company,
		Location:        location,
		experienceLevel: MinExperienceLevel,
	}
	j.SetSalary(salary)
	return j
}

// SetSalary stores salary, clamping negatives to zero.
func (j *Job) SetSalary(salary float64) {
	if salary < 0 {
		salary = 0
	}
	j.Salary = salary
}

// SetCoordinates stores the job's latitude and longitude.
func (j *Job) SetCoordinates(lat, lon float64) {
	j.Latitude = lat
	j.Longitude = lon
}

// HasCoordinates reports whether both coordinates are set.
func (j *Job) HasCoordinates() bool {
	return j.Latitude != 0 && j.Longitude != 0
}

// ExperienceLevel returns the seniority tag in [1,5].
func (j *Job) ExperienceLevel() int {
	if j.experienceLevel == 0 {
		return MinExperienceLevel
	}
	return j.experienceLevel
}

// SetExperienceLevel clamps level into [1,5].
func (j *Job) SetExperienceLevel(level int) {
	j.experienceLevel = clampInt(level, MinExperienceLevel, MaxExperienceLevel)
}

// AddRequiredSkill records a lower-cased skill; blanks and duplicates are ignored.
func (j *Job) AddRequiredSkill(skill string) {
	s := NormalizeSkill(skill)
	if s == "" || slices.Contains(j.skills, s) {
		return
	}
	j.skills = append(j.skills, s)
}

// SetRequiredSkills replaces the required skill set.
func (j *Job) SetRequiredSkills(skills ...string) {
	j.skills = nil
	for _, s := range skills {
		j.AddRequiredSkill(s)
	}
}

// RequiredSkills returns a copy of the required skills in insertion order.
func (j *Job) RequiredSkills() []string {
	return slices.Clone(j.skills)
}

// RequiresSkill reports whether skill (any case) is required.
func (j *Job) RequiresSkill(skill string) bool {
	return slices.Contains(j.skills, NormalizeSkill(skill))
}

// AddBenefit appends a benefit unless already present.
func (j *Job) AddBenefit(benefit string) {
	if benefit == "" || slices.Contains(j.benefits, benefit) {
		return
	}
	j.benefits = append(j.benefits, benefit)
}

// Benefits returns a copy of the benefit list.
func (j *Job) Benefits() []string {
	return slices.Clone(j.benefits)
}

// NormalizeSkill lower-cases and trims a skill name.
func NormalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
