package model_test

import (
	"testing"

	model "github.com/okian/jobmatch/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestJob(t *testing.T) {
	convey.Convey("Given a new job", t, func() {
		job := model.NewJob("J1", "Java Developer", "Tech Solutions", "City C", 45000)

		convey.Convey("Then it starts at entry level with no skills", func() {
			convey.So(job.ExperienceLevel(), convey.ShouldEqual, 1)
			convey.So(job.RequiredSkills(), convey.ShouldBeEmpty)
			convey.So(job.Benefits(), convey.ShouldBeEmpty)
			convey.So(job.HasCoordinates(), convey.ShouldBeFalse)
		})

		convey.Convey("When adding skills in mixed case with duplicates", func() {
			job.AddRequiredSkill("Java")
			job.AddRequiredSkill("java")
			job.AddRequiredSkill(" DATABASE ")
			job.AddRequiredSkill("")

			convey.Convey("Then skills are lower-cased and deduplicated", func() {
				convey.So(job.RequiredSkills(), convey.ShouldResemble, []string{"java", "database"})
				convey.So(job.RequiresSkill("JAVA"), convey.ShouldBeTrue)
				convey.So(job.RequiresSkill("python"), convey.ShouldBeFalse)
			})

			convey.Convey("Then the returned slice is a copy", func() {
				skills := job.RequiredSkills()
				skills[0] = "changed"
				convey.So(job.RequiresSkill("java"), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When out of range values are supplied", func() {
			job.SetExperienceLevel(9)
			job.SetSalary(-100)

			convey.Convey("Then they are clamped", func() {
				convey.So(job.ExperienceLevel(), convey.ShouldEqual, 5)
				convey.So(job.Salary, convey.ShouldEqual, 0.0)
			})

			job.SetExperienceLevel(-3)
			convey.So(job.ExperienceLevel(), convey.ShouldEqual, 1)
		})

		convey.Convey("When adding duplicate benefits", func() {
			job.AddBenefit("Health insurance")
			job.AddBenefit("Health insurance")
			job.AddBenefit("Work from home")

			convey.Convey("Then only distinct benefits are kept", func() {
				convey.So(job.Benefits(), convey.ShouldResemble, []string{"Health insurance", "Work from home"})
			})
		})

		convey.Convey("When only one coordinate is set", func() {
			job.SetCoordinates(28.45, 0)

			convey.Convey("Then the job has no usable coordinates", func() {
				convey.So(job.HasCoordinates(), convey.ShouldBeFalse)
			})
		})
	})
}

func TestUser(t *testing.T) {
	convey.Convey("Given a new user", t, func() {
		user := model.NewUser("U1", "Amit Patel", 28, "Graduate", "City C")

		convey.Convey("Then defaults are applied", func() {
			convey.So(user.MaxDistance, convey.ShouldEqual, model.DefaultMaxDistance)
			convey.So(user.Skills(), convey.ShouldBeEmpty)
		})

		convey.Convey("When adding skills", func() {
			user.AddSkill("Java", 8)
			user.AddSkill("python", 15)
			user.AddSkill("database", 0)

			convey.Convey("Then keys are lower-cased and proficiency is clamped", func() {
				convey.So(user.Proficiency("java"), convey.ShouldEqual, 8)
				convey.So(user.Proficiency("PYTHON"), convey.ShouldEqual, 10)
				convey.So(user.Proficiency("database"), convey.ShouldEqual, 1)
				convey.So(user.Proficiency("cobol"), convey.ShouldEqual, 0)
				convey.So(user.HasSkill("Java"), convey.ShouldBeTrue)
				convey.So(user.SkillNames(), convey.ShouldResemble, []string{"database", "java", "python"})
			})
		})

		convey.Convey("When adding preferences twice", func() {
			user.AddPreference("technology")
			user.AddPreference("technology")

			convey.So(user.Preferences(), convey.ShouldResemble, []string{"technology"})
		})

		convey.Convey("When setting a negative travel distance", func() {
			user.SetMaxDistance(-5)

			convey.So(user.MaxDistance, convey.ShouldEqual, 0.0)
		})
	})
}

func TestSnapshot(t *testing.T) {
	convey.Convey("Given a snapshot with mixed registrations", t, func() {
		j := model.NewJob("J1", "Cook", "Village Restaurant", "Village D", 18000)
		u := model.NewUser("U1", "Sunita Devi", 20, "High School", "Village D")
		snap := model.Snapshot{Registrations: []model.Registration{{Job: j}, {User: u}}}

		convey.Convey("Then jobs and users are split in order", func() {
			convey.So(snap.Jobs(), convey.ShouldResemble, []*model.Job{j})
			convey.So(snap.Users(), convey.ShouldResemble, []*model.User{u})
		})
	})
}
