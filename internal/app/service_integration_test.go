package service_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/okian/jobmatch/internal/adapters/repository"
	service "github.com/okian/jobmatch/internal/app"
	"github.com/okian/jobmatch/internal/domain/model"
	"github.com/okian/jobmatch/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func openStore(dsn string) *repository.SQLStore {
	store, err := repository.Open(context.Background(), repository.DriverSQLite, dsn,
		repository.WithMetrics(metrics.NewManager()))
	So(err, ShouldBeNil)
	return store
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service backed by an empty sqlite store", t, func() {
		ctx := context.Background()
		dsn := filepath.Join(t.TempDir(), "jobmatch.db")

		svc := service.New(
			service.WithStore(openStore(dsn)),
			service.WithSeedSample(true),
			service.WithMetrics(metrics.NewManager()),
		)
		So(svc.Start(ctx), ShouldBeNil)

		Convey("Then the sample data is used", func() {
			So(svc.Stats().Jobs, ShouldEqual, 16)
			So(svc.GetStats()["persistent"], ShouldEqual, true)
			svc.Stop()
		})

		Convey("When data is added, persisted and the service restarted", func() {
			job := model.NewJob("J300", "Solar Technician", "Sun Power", "Town E", 36000)
			job.SetRequiredSkills("electrical", "solar")
			svc.RegisterJob(ctx, job)
			So(svc.Persist(ctx), ShouldBeNil)
			before := svc.Stats()
			wantRecs := svc.Recommend(ctx, "U002", 5)
			svc.Stop()

			restarted := service.New(
				service.WithStore(openStore(dsn)),
				service.WithSeedSample(true),
				service.WithMetrics(metrics.NewManager()),
			)
			So(restarted.Start(ctx), ShouldBeNil)
			defer restarted.Stop()

			Convey("Then the stored snapshot wins over the sample", func() {
				So(restarted.Stats(), ShouldResemble, before)
				j, ok := restarted.Job("J300")
				So(ok, ShouldBeTrue)
				So(j.RequiredSkills(), ShouldResemble, []string{"electrical", "solar"})
				So(len(restarted.SearchBySkill(ctx, "sol")), ShouldEqual, 1)
				So(restarted.Recommend(ctx, "U002", 5), ShouldResemble, wantRecs)
			})
		})
	})
}

func TestServiceConcurrency(t *testing.T) {
	Convey("Given a started sample service", t, func() {
		ctx := context.Background()
		svc := startedSample(service.WithBatchWorkers(4))
		defer svc.Stop()

		Convey("When readers and writers run at the same time", func() {
			const writers = 4
			const perWriter = 25
			var wg sync.WaitGroup

			for w := range writers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := range perWriter {
						id := fmt.Sprintf("W%d-%d", w, i)
						job := model.NewJob(id, "Warehouse Helper", "Depot", "Town B", 18000)
						job.AddRequiredSkill("lifting")
						svc.RegisterJob(ctx, job)
					}
				}()
			}
			for range 8 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for range 20 {
						_ = svc.Recommend(ctx, "U001", 5)
						_ = svc.SearchByTitle(ctx, "ware")
						_ = svc.FindNearLocation(ctx, "Town B", 30)
					}
				}()
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = svc.RecommendAll(ctx, 3)
			}()
			wg.Wait()

			Convey("Then every registration is visible", func() {
				So(svc.Stats().Jobs, ShouldEqual, 16+writers*perWriter)
				So(svc.SearchByTitle(ctx, "warehouse"), ShouldHaveLength, writers*perWriter)
			})
		})
	})
}
