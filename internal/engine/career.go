package engine

import (
	"strings"

	"github.com/okian/jobmatch/internal/domain/model"
)

// SuggestCareerPaths compares the user's skills with the first job titled
// targetTitle (case-insensitive). With nothing missing it returns a single
// direct-application step; otherwise one step per missing skill that some
// entry-level job can teach.
func (e *Engine) SuggestCareerPaths(userID, targetTitle string) []CareerPathStep {
	user, ok := e.User(userID)
	if !ok {
		return nil
	}
	target := e.firstJobTitled(targetTitle)
	if target == nil {
		return nil
	}

	var missing []string
	for _, s := range target.RequiredSkills() {
		if !user.HasSkill(s) {
			missing = append(missing, s)
		}
	}
	if len(missing) == 0 {
		return []CareerPathStep{{TargetJob: target, Description: DirectApplication}}
	}

	var steps []CareerPathStep
	for _, skill := range missing {
		training := e.trainingJobs(skill)
		if len(training) == 0 {
			continue
		}
		ids := make([]string, 0, len(training))
		for _, j := range training {
			ids = append(ids, j.ID)
		}
		steps = append(steps, CareerPathStep{
			TargetJob:      target,
			TrainingSteps:  len(training),
			Description:    trainingPrefix + skill,
			MissingSkill:   skill,
			TrainingJobIDs: ids,
		})
	}
	return steps
}

func (e *Engine) firstJobTitled(title string) *model.Job {
	for _, job := range e.jobs {
		if strings.EqualFold(job.Title, title) {
			return job
		}
	}
	return nil
}

// trainingJobs lists jobs requiring skill at experience level 2 or below.
func (e *Engine) trainingJobs(skill string) []*model.Job {
	var out []*model.Job
	for _, job := range e.jobs {
		if job.RequiresSkill(skill) && job.ExperienceLevel() <= MaxTrainingLevel {
			out = append(out, job)
		}
	}
	return out
}
