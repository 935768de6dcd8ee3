package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/jobmatch/internal/cli"
	"github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	convey.Convey("Given the jobmatch command", t, func() {
		ctx := context.Background()
		var stdout, stderr bytes.Buffer

		convey.Convey("When stats are requested in memory", func() {
			err := run(ctx, []string{"-memory", "-json", "stats"}, &stdout, &stderr)

			convey.Convey("Then the sample data is reported", func() {
				convey.So(err, convey.ShouldBeNil)
				var st map[string]int
				convey.So(json.Unmarshal(stdout.Bytes(), &st), convey.ShouldBeNil)
				convey.So(st["jobs"], convey.ShouldEqual, 16)
				convey.So(st["users"], convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When the command is unknown", func() {
			err := run(ctx, []string{"-memory", "fly"}, &stdout, &stderr)

			convey.Convey("Then it fails with ErrUnknownCommand", func() {
				convey.So(errors.Is(err, cli.ErrUnknownCommand), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a global flag is malformed", func() {
			err := run(ctx, []string{"-bogus"}, &stdout, &stderr)

			convey.Convey("Then it is a usage error", func() {
				convey.So(errors.Is(err, cli.ErrUsage), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When data is seeded into sqlite and read back", func() {
			dsn := filepath.Join(t.TempDir(), "jobmatch.db")
			_ = os.Setenv("JOBMATCH_DB_DSN", dsn)
			defer func() {
				_ = os.Unsetenv("JOBMATCH_DB_DSN")
				_ = os.Unsetenv("JOBMATCH_SEED_SAMPLE")
			}()

			convey.So(run(ctx, []string{"seed"}, &stdout, &stderr), convey.ShouldBeNil)

			_ = os.Setenv("JOBMATCH_SEED_SAMPLE", "false")
			stdout.Reset()
			err := run(ctx, []string{"-json", "search-title", "-prefix", "java"}, &stdout, &stderr)

			convey.Convey("Then the second run loads the stored snapshot", func() {
				convey.So(err, convey.ShouldBeNil)
				var jobs []struct {
					ID string `json:"id"`
				}
				convey.So(json.Unmarshal(stdout.Bytes(), &jobs), convey.ShouldBeNil)
				convey.So(jobs, convey.ShouldHaveLength, 1)
				convey.So(jobs[0].ID, convey.ShouldEqual, "J005")
			})
		})
	})
}
