package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/okian/jobmatch/internal/domain/model"
	"github.com/okian/jobmatch/internal/engine"
	"github.com/okian/jobmatch/internal/seed"
	"github.com/okian/jobmatch/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func openTemp(t *testing.T) *SQLStore {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "jobmatch.db")
	s, err := Open(context.Background(), DriverSQLite, dsn, WithMetrics(metrics.NewManager()))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func jobIDs(jobs []*model.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestSQLStore_Open(t *testing.T) {
	convey.Convey("Given an unsupported driver", t, func() {
		_, err := Open(context.Background(), "oracle", "whatever")

		convey.Convey("Then Open refuses it", func() {
			convey.So(errors.Is(err, ErrUnsupportedDriver), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given an empty database", t, func() {
		s := openTemp(t)

		convey.Convey("When loading", func() {
			_, err := s.Load(context.Background())

			convey.Convey("Then nothing is found", func() {
				convey.So(errors.Is(err, ErrNotFound), convey.ShouldBeTrue)
			})
		})
	})
}

func TestSQLStore_RoundTrip(t *testing.T) {
	convey.Convey("Given the sample snapshot saved to sqlite", t, func() {
		ctx := context.Background()
		s := openTemp(t)

		original := engine.New()
		convey.So(original.Restore(seed.Sample()), convey.ShouldBeNil)
		convey.So(s.Save(ctx, original.Snapshot()), convey.ShouldBeNil)

		convey.Convey("When it is loaded and replayed", func() {
			snap, err := s.Load(ctx)
			convey.So(err, convey.ShouldBeNil)

			restored := engine.New()
			convey.So(restored.Restore(snap), convey.ShouldBeNil)

			convey.Convey("Then stats match", func() {
				convey.So(restored.Stats(), convey.ShouldResemble, original.Stats())
			})

			convey.Convey("Then registration order is preserved", func() {
				convey.So(jobIDs(restored.Jobs()), convey.ShouldResemble, jobIDs(original.Jobs()))
				convey.So(len(snap.Registrations), convey.ShouldEqual, len(original.Snapshot().Registrations))
			})

			convey.Convey("Then searches return the same jobs", func() {
				convey.So(jobIDs(restored.SearchByTitle("d")), convey.ShouldResemble, jobIDs(original.SearchByTitle("d")))
				convey.So(jobIDs(restored.SearchBySkill("c")), convey.ShouldResemble, jobIDs(original.SearchBySkill("c")))
			})

			convey.Convey("Then graph distances are unchanged", func() {
				path, dist := restored.ShortestPath("Village A", "City C")
				wantPath, wantDist := original.ShortestPath("Village A", "City C")
				convey.So(path, convey.ShouldResemble, wantPath)
				convey.So(dist, convey.ShouldEqual, wantDist)
			})

			convey.Convey("Then entity details survive", func() {
				want, _ := original.Job("J005")
				got, ok := restored.Job("J005")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(got.RequiredSkills(), convey.ShouldResemble, want.RequiredSkills())
				convey.So(got.Benefits(), convey.ShouldResemble, want.Benefits())
				convey.So(got.ExperienceLevel(), convey.ShouldEqual, want.ExperienceLevel())
				convey.So(got.Description, convey.ShouldEqual, want.Description)

				wantUser, _ := original.User("U003")
				gotUser, ok := restored.User("U003")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(gotUser.Skills(), convey.ShouldResemble, wantUser.Skills())
				convey.So(gotUser.Preferences(), convey.ShouldResemble, wantUser.Preferences())
				convey.So(gotUser.MaxDistance, convey.ShouldEqual, wantUser.MaxDistance)
			})

			convey.Convey("Then recommendations are identical", func() {
				convey.So(restored.Recommend("U003", 5), convey.ShouldResemble, original.Recommend("U003", 5))
			})
		})

		convey.Convey("When a smaller snapshot is saved over it", func() {
			small := engine.New()
			small.AddLocation("Town", 0, 0)
			small.RegisterJob(model.NewJob("X1", "Baker", "Bakery", "Town", 1000))
			convey.So(s.Save(ctx, small.Snapshot()), convey.ShouldBeNil)

			convey.Convey("Then only the new snapshot is loaded", func() {
				snap, err := s.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(snap.Locations, convey.ShouldHaveLength, 1)
				convey.So(snap.Roads, convey.ShouldBeEmpty)
				convey.So(jobIDs(snap.Jobs()), convey.ShouldResemble, []string{"X1"})
				convey.So(snap.Users(), convey.ShouldBeEmpty)
			})
		})
	})
}

func TestSQLStore_StaleTerms(t *testing.T) {
	convey.Convey("Given an engine with a job registered twice", t, func() {
		ctx := context.Background()
		s := openTemp(t)

		original := engine.New()
		first := model.NewJob("J1", "Welder", "Metal Works", "Town E", 28000)
		first.AddRequiredSkill("welding")
		second := model.NewJob("J1", "Fabricator", "Metal Works", "Town E", 30000)
		second.AddRequiredSkill("fabrication")
		original.RegisterJob(first)
		original.RegisterJob(second)
		convey.So(s.Save(ctx, original.Snapshot()), convey.ShouldBeNil)

		convey.Convey("When it is loaded and replayed", func() {
			snap, err := s.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			restored := engine.New()
			convey.So(restored.Restore(snap), convey.ShouldBeNil)

			convey.Convey("Then the superseded index entries are kept", func() {
				convey.So(snap.StaleTitles, convey.ShouldResemble, []string{"Welder"})
				convey.So(snap.StaleSkills, convey.ShouldResemble, []string{"welding"})
				convey.So(restored.Stats(), convey.ShouldResemble, original.Stats())
				convey.So(restored.Stats().UniqueTitles, convey.ShouldEqual, 2)
			})
		})
	})
}

func TestSQLStore_Rebind(t *testing.T) {
	convey.Convey("Given stores for each driver", t, func() {
		query := `INSERT INTO roads (seq, from_location) VALUES (?, ?)`

		convey.Convey("Then PostgreSQL gets numbered placeholders", func() {
			s := &SQLStore{driver: DriverPostgres}
			convey.So(s.rebind(query), convey.ShouldEqual, `INSERT INTO roads (seq, from_location) VALUES ($1, $2)`)
		})

		convey.Convey("Then SQLite keeps question marks", func() {
			s := &SQLStore{driver: DriverSQLite}
			convey.So(s.rebind(query), convey.ShouldEqual, query)
		})
	})
}
