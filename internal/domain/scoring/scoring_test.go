package scoring_test

import (
	"math"
	"testing"

	"github.com/okian/jobmatch/internal/domain/model"
	scoring "github.com/okian/jobmatch/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func javaJob() *model.Job {
	j := model.NewJob("J005", "Java Developer", "Tech Solutions", "City C", 45000)
	j.SetRequiredSkills("java", "database", "english")
	j.SetExperienceLevel(3)
	return j
}

func developer() *model.User {
	u := model.NewUser("U003", "Amit Patel", 28, "Graduate", "City C")
	u.AddSkill("java", 8)
	u.AddSkill("python", 7)
	u.AddSkill("database", 6)
	u.AddSkill("english", 8)
	return u
}

func TestScorer_Score(t *testing.T) {
	Convey("Given the default scorer", t, func() {
		scorer := scoring.New()

		Convey("When scoring a matching job at the user's location", func() {
			b := scorer.Breakdown(javaJob(), developer(), 0)

			Convey("Then every factor follows its formula", func() {
				So(b.Skill, ShouldAlmostEqual, 92, 1e-9)
				So(b.Distance, ShouldEqual, 100.0)
				So(b.Salary, ShouldAlmostEqual, 25000.0/180000.0*100, 1e-9)
				So(b.Experience, ShouldEqual, 80.0)
				So(b.Total, ShouldAlmostEqual, 92*0.4+100*0.3+(25000.0/180000.0*100)*0.2+80*0.1, 1e-9)
				So(scorer.Score(javaJob(), developer(), 0), ShouldEqual, b.Total)
			})
		})

		Convey("When the job is beyond the user's travel limit", func() {
			b := scorer.Breakdown(javaJob(), developer(), 51)

			Convey("Then the distance factor drops to zero", func() {
				So(b.Distance, ShouldEqual, 0.0)
			})
		})

		Convey("When the distance is unreachable", func() {
			b := scorer.Breakdown(javaJob(), developer(), math.Inf(1))

			Convey("Then the total stays within bounds", func() {
				So(b.Distance, ShouldEqual, 0.0)
				So(b.Total, ShouldBeBetweenOrEqual, 0, 100)
			})
		})

		Convey("When scoring many combinations", func() {
			Convey("Then totals are always within [0,100]", func() {
				for _, salary := range []float64{0, 20000, 90000, 500000} {
					for _, d := range []float64{-5, 0, 10, 49, 80} {
						j := javaJob()
						j.SetSalary(salary)
						s := scorer.Score(j, developer(), d)
						So(s, ShouldBeBetweenOrEqual, 0, 100)
					}
				}
			})
		})
	})

	Convey("Given a scorer with custom options", t, func() {
		scorer := scoring.New(
			scoring.WithWeights(1, 0, 0, 0),
			scoring.WithSalaryBand(10000, 20000),
		)

		Convey("Then only the skill factor contributes", func() {
			So(scorer.Score(javaJob(), developer(), 30), ShouldAlmostEqual, 92, 1e-9)
		})

		Convey("Then the salary band is applied", func() {
			So(scorer.SalaryScore(15000), ShouldEqual, 50.0)
			So(scorer.SalaryScore(25000), ShouldEqual, 100.0)
		})

		Convey("Then invalid options are ignored", func() {
			s := scoring.New(scoring.WithWeights(-1, 1, 1, 1), scoring.WithSalaryBand(5, 1))
			So(s.SalaryScore(110000), ShouldEqual, 50.0)
		})
	})
}

func TestFactorScores(t *testing.T) {
	Convey("Given the individual factor functions", t, func() {
		Convey("Then a job without requirements is neutral", func() {
			j := model.NewJob("J", "Helper", "Co", "X", 0)
			So(scoring.SkillScore(j, developer()), ShouldEqual, 50.0)
		})

		Convey("Then a user without any required skill scores zero", func() {
			j := model.NewJob("J", "Farm Worker", "Co", "X", 0)
			j.AddRequiredSkill("farming")
			So(scoring.SkillScore(j, developer()), ShouldEqual, 0.0)
		})

		Convey("Then distance decays exponentially", func() {
			So(scoring.DistanceScore(0, 30), ShouldEqual, 100.0)
			So(scoring.DistanceScore(10, 30), ShouldAlmostEqual, 100*math.Exp(-1), 1e-9)
			So(scoring.DistanceScore(31, 30), ShouldEqual, 0.0)
			So(scoring.DistanceScore(30, 30), ShouldAlmostEqual, 100*math.Exp(-3), 1e-9)
		})

		Convey("Then experience compares level with age", func() {
			So(scoring.ExperienceScore(1, 22), ShouldEqual, 80.0)
			So(scoring.ExperienceScore(0, 22), ShouldEqual, 100.0)
			So(scoring.ExperienceScore(2, 28), ShouldEqual, 100.0)
			So(scoring.ExperienceScore(4, 28), ShouldEqual, 60.0)
			So(scoring.ExperienceScore(5, 18), ShouldEqual, 10.0)
			So(scoring.ExperienceScore(5, 15), ShouldEqual, 10.0)
			So(scoring.ExperienceScore(1, 90), ShouldEqual, 0.0)
		})
	})
}
