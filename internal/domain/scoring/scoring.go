// Package scoring computes how well a job fits a user.
package scoring

import (
	"math"

	"github.com/okian/jobmatch/internal/domain/model"
)

// Default scoring configuration constants.
const (
	DefaultSkillWeight      = 0.4
	DefaultDistanceWeight   = 0.3
	DefaultSalaryWeight     = 0.2
	DefaultExperienceWeight = 0.1
	DefaultSalaryFloor      = 20000
	DefaultSalaryCeiling    = 200000

	maxScoreValue       = 100
	neutralSkillScore   = 50
	skillMatchPoints    = 70
	proficiencyPoints   = 3
	workingAge          = 18
	yearsPerLevel       = 5
	distanceDecayFactor = 3
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWeights sets the factor weights. Negative weights are ignored.
func WithWeights(skill, distance, salary, experience float64) Option {
	return func(s *Scorer) {
		if skill >= 0 && distance >= 0 && salary >= 0 && experience >= 0 {
			s.skillWeight = skill
			s.distanceWeight = distance
			s.salaryWeight = salary
			s.experienceWeight = experience
		}
	}
}

// WithSalaryBand sets the salaries mapped to 0 and 100.
func WithSalaryBand(floor, ceiling float64) Option {
	return func(s *Scorer) {
		if floor >= 0 && ceiling > floor {
			s.salaryFloor = floor
			s.salaryCeiling = ceiling
		}
	}
}

// Breakdown holds the per-factor sub-scores behind a total, each in [0,100].
type Breakdown struct {
	Skill      float64
	Distance   float64
	Salary     float64
	Experience float64
	Total      float64
}

// Scorer combines skill, distance, salary and experience fit into a single
// score in [0,100]. A Scorer is immutable and safe for concurrent use.
type Scorer struct {
	skillWeight      float64
	distanceWeight   float64
	salaryWeight     float64
	experienceWeight float64
	salaryFloor      float64
	salaryCeiling    float64
}

// New creates a scorer with the default weights and salary band.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		skillWeight:      DefaultSkillWeight,
		distanceWeight:   DefaultDistanceWeight,
		salaryWeight:     DefaultSalaryWeight,
		experienceWeight: DefaultExperienceWeight,
		salaryFloor:      DefaultSalaryFloor,
		salaryCeiling:    DefaultSalaryCeiling,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns the weighted fit of job for user at the given travel distance.
func (s *Scorer) Score(job *model.Job, user *model.User, distance float64) float64 {
	return s.Breakdown(job, user, distance).Total
}

// Breakdown returns every sub-score along with the weighted total.
func (s *Scorer) Breakdown(job *model.Job, user *model.User, distance float64) Breakdown {
	b := Breakdown{
		Skill:      SkillScore(job, user),
		Distance:   DistanceScore(distance, user.MaxDistance),
		Salary:     s.SalaryScore(job.Salary),
		Experience: ExperienceScore(job.ExperienceLevel(), user.Age),
	}
	total := b.Skill*s.skillWeight +
		b.Distance*s.distanceWeight +
		b.Salary*s.salaryWeight +
		b.Experience*s.experienceWeight
	b.Total = clamp(total)
	return b
}

// SkillScore rewards the share of required skills the user has and their
// average proficiency in them. Jobs with no requirements score 50.
func SkillScore(job *model.Job, user *model.User) float64 {
	required := job.RequiredSkills()
	if len(required) == 0 {
		return neutralSkillScore
	}

	matched, total := 0, 0
	for _, skill := range required {
		if p := user.Proficiency(skill); p > 0 {
			matched++
			total += p
		}
	}
	if matched == 0 {
		return 0
	}
	fraction := float64(matched) / float64(len(required))
	avg := float64(total) / float64(matched)
	return clamp(fraction*skillMatchPoints + avg*proficiencyPoints)
}

// DistanceScore decays exponentially with distance and drops to 0 beyond
// maxDistance. Zero or negative distance scores 100.
func DistanceScore(distance, maxDistance float64) float64 {
	if distance <= 0 {
		return maxScoreValue
	}
	if distance > maxDistance {
		return 0
	}
	return maxScoreValue * math.Exp(-distance/(maxDistance/distanceDecayFactor))
}

// SalaryScore maps salary linearly onto [0,100] across the salary band.
func (s *Scorer) SalaryScore(salary float64) float64 {
	if salary <= s.salaryFloor {
		return 0
	}
	if salary >= s.salaryCeiling {
		return maxScoreValue
	}
	return (salary - s.salaryFloor) / (s.salaryCeiling - s.salaryFloor) * maxScoreValue
}

// ExperienceScore compares the job level with experience estimated from age.
func ExperienceScore(level, age int) float64 {
	estimated := max(0, (age-workingAge)/yearsPerLevel)
	diff := level - estimated
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return 100
	case 1:
		return 80
	case 2:
		return 60
	default:
		return math.Max(0, float64(40-(diff-2)*10))
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(maxScoreValue, v))
}
