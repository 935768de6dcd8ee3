package engine

import "github.com/okian/jobmatch/internal/domain/model"

// Recommendation is one ranked job for a user.
type Recommendation struct {
	Job      *model.Job
	Score    float64 // [0,100]
	Distance float64 // km; +Inf when unreachable
}

// PersonalizedQuery narrows recommendations before ranking.
type PersonalizedQuery struct {
	UserID          string
	MinSalary       float64
	MaxDistance     float64
	PreferredSkills []string
	Limit           int
}

// CareerPathStep describes how a user can reach a target job.
type CareerPathStep struct {
	TargetJob      *model.Job
	TrainingSteps  int      // number of training jobs available
	Description    string   // human readable summary
	MissingSkill   string   // empty for direct application
	TrainingJobIDs []string // jobs that teach MissingSkill
}

// Stats summarizes engine contents.
type Stats struct {
	Jobs         int `json:"jobs"`
	Users        int `json:"users"`
	UniqueTitles int `json:"unique_titles"`
	UniqueSkills int `json:"unique_skills"`
	Locations    int `json:"locations"`
}

// Career path descriptions.
const (
	DirectApplication = "Direct application possible"
	trainingPrefix    = "Training needed for: "
	// MaxTrainingLevel is the highest experience level still treated as training.
	MaxTrainingLevel = 2
	// FallbackDistance is assumed between different locations with no coordinates
	// or graph connection.
	FallbackDistance = 50.0
)
