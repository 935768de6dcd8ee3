package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/okian/jobmatch/internal/domain/model"
	"github.com/okian/jobmatch/internal/domain/scoring"
	"github.com/okian/jobmatch/internal/engine"
)

// Output records. Distances are pointers because JSON has no infinity;
// unreachable jobs encode as null.

type jobRecord struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	Salary   float64  `json:"salary"`
	Level    int      `json:"experience_level"`
	Skills   []string `json:"skills"`
}

type recommendationRecord struct {
	Rank     int      `json:"rank"`
	JobID    string   `json:"job_id"`
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	Salary   float64  `json:"salary"`
	Score    float64  `json:"score"`
	Distance *float64 `json:"distance_km"`
}

type careerRecord struct {
	TargetJobID    string   `json:"target_job_id"`
	TargetTitle    string   `json:"target_title"`
	Description    string   `json:"description"`
	MissingSkill   string   `json:"missing_skill,omitempty"`
	TrainingSteps  int      `json:"training_steps"`
	TrainingJobIDs []string `json:"training_job_ids,omitempty"`
}

type pathRecord struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Path     []string `json:"path"`
	Distance *float64 `json:"distance_km"`
}

type breakdownRecord struct {
	UserID     string  `json:"user_id"`
	JobID      string  `json:"job_id"`
	Skill      float64 `json:"skill"`
	Distance   float64 `json:"distance"`
	Salary     float64 `json:"salary"`
	Experience float64 `json:"experience"`
	Total      float64 `json:"total"`
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func toJobRecords(jobs []*model.Job) []jobRecord {
	out := make([]jobRecord, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, jobRecord{
			ID:       j.ID,
			Title:    j.Title,
			Company:  j.Company,
			Location: j.Location,
			Salary:   j.Salary,
			Level:    j.ExperienceLevel(),
			Skills:   j.RequiredSkills(),
		})
	}
	return out
}

func toRecommendationRecords(recs []engine.Recommendation) []recommendationRecord {
	out := make([]recommendationRecord, 0, len(recs))
	for i, r := range recs {
		out = append(out, recommendationRecord{
			Rank:     i + 1,
			JobID:    r.Job.ID,
			Title:    r.Job.Title,
			Company:  r.Job.Company,
			Location: r.Job.Location,
			Salary:   r.Job.Salary,
			Score:    r.Score,
			Distance: finite(r.Distance),
		})
	}
	return out
}

func toCareerRecords(steps []engine.CareerPathStep) []careerRecord {
	out := make([]careerRecord, 0, len(steps))
	for _, s := range steps {
		out = append(out, careerRecord{
			TargetJobID:    s.TargetJob.ID,
			TargetTitle:    s.TargetJob.Title,
			Description:    s.Description,
			MissingSkill:   s.MissingSkill,
			TrainingSteps:  s.TrainingSteps,
			TrainingJobIDs: s.TrainingJobIDs,
		})
	}
	return out
}

func toBreakdownRecord(userID, jobID string, b scoring.Breakdown) breakdownRecord {
	return breakdownRecord{
		UserID:     userID,
		JobID:      jobID,
		Skill:      b.Skill,
		Distance:   b.Distance,
		Salary:     b.Salary,
		Experience: b.Experience,
		Total:      b.Total,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes tab separated rows aligned into columns.
func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintln(tw, strings.Join(r, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func formatKm(v float64) string {
	if math.IsInf(v, 0) {
		return "unreachable"
	}
	return fmt.Sprintf("%.1f", v)
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
