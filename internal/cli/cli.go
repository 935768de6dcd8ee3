// Package cli implements the jobmatch subcommands on top of the service.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	service "github.com/okian/jobmatch/internal/app"
	"github.com/okian/jobmatch/internal/config"
	"github.com/okian/jobmatch/internal/domain/model"
	"github.com/okian/jobmatch/internal/engine"
	"github.com/okian/jobmatch/internal/seed"
	"github.com/okian/jobmatch/pkg/logger"
	"github.com/okian/jobmatch/pkg/metrics"
)

// Metrics renders metrics for the metrics command.
type Metrics interface {
	WriteText(w io.Writer) error
}

// CLI dispatches subcommands.
type CLI struct {
	svc     *service.Service
	cfg     *config.Config
	metrics Metrics
	out     io.Writer
	errOut  io.Writer
	json    bool
	logger  logger.Logger
}

// Option applies a configuration option to the CLI.
type Option func(*CLI)

// WithOutput sets where results are printed. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *CLI) {
		if w != nil {
			c.out = w
		}
	}
}

// WithErrorOutput sets where usage text goes. Defaults to os.Stderr.
func WithErrorOutput(w io.Writer) Option {
	return func(c *CLI) {
		if w != nil {
			c.errOut = w
		}
	}
}

// WithJSON prints results as indented JSON instead of tables.
func WithJSON(enabled bool) Option {
	return func(c *CLI) {
		c.json = enabled
	}
}

// WithMetrics sets the metrics source for the metrics command.
func WithMetrics(m Metrics) Option {
	return func(c *CLI) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *CLI) {
		if l != nil {
			c.logger = l
		}
	}
}

// New builds a CLI for svc. A nil cfg means config.New().
func New(svc *service.Service, cfg *config.Config, opts ...Option) *CLI {
	if cfg == nil {
		cfg = config.New()
	}
	c := &CLI{
		svc:     svc,
		cfg:     cfg,
		metrics: metrics.Default(),
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("cli")
	}
	return c
}

type command struct {
	name    string
	summary string
	run     func(c *CLI, ctx context.Context, args []string) error
}

var commands = []command{ //nolint:gochecknoglobals // static command table
	{"recommend", "top jobs for a user (-user, -limit, -explain)", (*CLI).recommend},
	{"recommend-all", "top jobs for every user (-limit)", (*CLI).recommendAll},
	{"personalized", "filtered recommendations (-user, -min-salary, -max-distance, -skills, -limit)", (*CLI).personalized},
	{"search-title", "jobs whose title starts with a prefix", (*CLI).searchTitle},
	{"search-skill", "jobs requiring a skill that starts with a prefix", (*CLI).searchSkill},
	{"near", "jobs within a road distance of a location (-location, -distance)", (*CLI).near},
	{"career", "career paths towards a job title (-user, -target)", (*CLI).career},
	{"path", "shortest road route between two locations (-from, -to)", (*CLI).path},
	{"stats", "engine counters", (*CLI).stats},
	{"seed", "replace the stored data with the built-in sample", (*CLI).seed},
	{"import", "merge a YAML dataset and persist it (-file)", (*CLI).importFile},
	{"metrics", "print metrics in the Prometheus text format", (*CLI).printMetrics},
}

// Run executes the subcommand named by args[0].
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		c.Usage()
		if len(args) == 0 {
			return ErrUsage
		}
		return nil
	}

	idx := slices.IndexFunc(commands, func(cmd command) bool { return cmd.name == args[0] })
	if idx < 0 {
		c.Usage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	cmd := commands[idx]

	runID := uuid.NewString()
	c.logger.Debug(ctx, "running command", logger.String("command", cmd.name), logger.String("run_id", runID))
	err := cmd.run(c, ctx, args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		c.logger.Debug(ctx, "command failed", logger.String("command", cmd.name),
			logger.String("run_id", runID), logger.Error(err))
		return fmt.Errorf("%s: %w", cmd.name, err)
	}
	return nil
}

// Usage prints the command list.
func (c *CLI) Usage() {
	var b strings.Builder
	b.WriteString("Usage: jobmatch [-json] <command> [flags]\n\nCommands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "  %-14s %s\n", cmd.name, cmd.summary)
	}
	_, _ = io.WriteString(c.errOut, b.String())
}

func (c *CLI) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

// argOr returns value, or the first positional argument when value is empty.
func argOr(fs *flag.FlagSet, value string) string {
	if value == "" {
		return fs.Arg(0)
	}
	return value
}

func (c *CLI) recommend(ctx context.Context, args []string) error {
	fs := c.flags("recommend")
	userID := fs.String("user", "", "user id")
	limit := fs.Int("limit", 0, "number of jobs (default from config)")
	explain := fs.Bool("explain", false, "show the score of each factor")
	if err := parse(fs, args); err != nil {
		return err
	}
	id := argOr(fs, *userID)
	if id == "" {
		return fmt.Errorf("%w: -user is required", ErrUsage)
	}
	if _, ok := c.svc.User(id); !ok {
		return fmt.Errorf("%w: user %s", service.ErrNotFound, id)
	}

	recs := c.svc.Recommend(ctx, id, c.cfg.ClampLimit(*limit))
	if !*explain {
		return c.printRecommendations(recs)
	}

	out := make([]breakdownRecord, 0, len(recs))
	for _, r := range recs {
		b, err := c.svc.Explain(ctx, id, r.Job.ID)
		if err != nil {
			return err
		}
		out = append(out, toBreakdownRecord(id, r.Job.ID, b))
	}
	if c.json {
		return writeJSON(c.out, out)
	}
	rows := make([][]string, 0, len(out))
	for _, b := range out {
		rows = append(rows, []string{b.JobID, formatScore(b.Skill), formatScore(b.Distance),
			formatScore(b.Salary), formatScore(b.Experience), formatScore(b.Total)})
	}
	return table(c.out, []string{"JOB", "SKILL", "DISTANCE", "SALARY", "EXPERIENCE", "TOTAL"}, rows)
}

func (c *CLI) recommendAll(ctx context.Context, args []string) error {
	fs := c.flags("recommend-all")
	limit := fs.Int("limit", 0, "number of jobs per user (default from config)")
	if err := parse(fs, args); err != nil {
		return err
	}
	all, err := c.svc.RecommendAll(ctx, c.cfg.ClampLimit(*limit))
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	if c.json {
		out := make(map[string][]recommendationRecord, len(all))
		for id, recs := range all {
			out[id] = toRecommendationRecords(recs)
		}
		return writeJSON(c.out, out)
	}
	var rows [][]string
	for _, id := range ids {
		for _, r := range toRecommendationRecords(all[id]) {
			rows = append(rows, []string{id, strconv.Itoa(r.Rank), r.JobID, r.Title, formatScore(r.Score)})
		}
	}
	return table(c.out, []string{"USER", "RANK", "JOB", "TITLE", "SCORE"}, rows)
}

func (c *CLI) personalized(ctx context.Context, args []string) error {
	fs := c.flags("personalized")
	userID := fs.String("user", "", "user id")
	minSalary := fs.Float64("min-salary", 0, "minimum salary")
	maxDistance := fs.Float64("max-distance", -1, "maximum distance in km (default: the user's limit)")
	skills := fs.String("skills", "", "comma separated preferred skills")
	limit := fs.Int("limit", 0, "number of jobs (default from config)")
	if err := parse(fs, args); err != nil {
		return err
	}
	id := argOr(fs, *userID)
	user, ok := c.svc.User(id)
	if !ok {
		return fmt.Errorf("%w: user %q", service.ErrNotFound, id)
	}

	q := engine.PersonalizedQuery{
		UserID:      id,
		MinSalary:   *minSalary,
		MaxDistance: *maxDistance,
		Limit:       c.cfg.ClampLimit(*limit),
	}
	if q.MaxDistance < 0 {
		q.MaxDistance = user.MaxDistance
	}
	for _, s := range strings.Split(*skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			q.PreferredSkills = append(q.PreferredSkills, s)
		}
	}
	return c.printRecommendations(c.svc.PersonalizedRecommend(ctx, q))
}

func (c *CLI) printRecommendations(recs []engine.Recommendation) error {
	records := toRecommendationRecords(recs)
	if c.json {
		return writeJSON(c.out, records)
	}
	rows := make([][]string, 0, len(recs))
	for i, r := range recs {
		rows = append(rows, []string{
			strconv.Itoa(records[i].Rank), r.Job.ID, r.Job.Title, r.Job.Company, r.Job.Location,
			formatMoney(r.Job.Salary), formatScore(r.Score), formatKm(r.Distance),
		})
	}
	return table(c.out, []string{"RANK", "JOB", "TITLE", "COMPANY", "LOCATION", "SALARY", "SCORE", "KM"}, rows)
}

func (c *CLI) searchTitle(ctx context.Context, args []string) error {
	fs := c.flags("search-title")
	prefix := fs.String("prefix", "", "title prefix")
	if err := parse(fs, args); err != nil {
		return err
	}
	return c.printJobs(c.svc.SearchByTitle(ctx, argOr(fs, *prefix)))
}

func (c *CLI) searchSkill(ctx context.Context, args []string) error {
	fs := c.flags("search-skill")
	prefix := fs.String("prefix", "", "skill prefix")
	if err := parse(fs, args); err != nil {
		return err
	}
	return c.printJobs(c.svc.SearchBySkill(ctx, argOr(fs, *prefix)))
}

func (c *CLI) near(ctx context.Context, args []string) error {
	fs := c.flags("near")
	location := fs.String("location", "", "location name")
	distance := fs.Float64("distance", 0, "maximum road distance in km")
	if err := parse(fs, args); err != nil {
		return err
	}
	loc := argOr(fs, *location)
	if loc == "" {
		return fmt.Errorf("%w: -location is required", ErrUsage)
	}
	return c.printJobs(c.svc.FindNearLocation(ctx, loc, *distance))
}

func (c *CLI) printJobs(jobs []*model.Job) error {
	records := toJobRecords(jobs)
	if c.json {
		return writeJSON(c.out, records)
	}
	rows := make([][]string, 0, len(records))
	for _, j := range records {
		rows = append(rows, []string{j.ID, j.Title, j.Company, j.Location, formatMoney(j.Salary),
			strings.Join(j.Skills, ", ")})
	}
	return table(c.out, []string{"JOB", "TITLE", "COMPANY", "LOCATION", "SALARY", "SKILLS"}, rows)
}

func (c *CLI) career(ctx context.Context, args []string) error {
	fs := c.flags("career")
	userID := fs.String("user", "", "user id")
	target := fs.String("target", "", "target job title")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *userID == "" || *target == "" {
		return fmt.Errorf("%w: -user and -target are required", ErrUsage)
	}
	records := toCareerRecords(c.svc.SuggestCareerPaths(ctx, *userID, *target))
	if c.json {
		return writeJSON(c.out, records)
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.TargetJobID, r.TargetTitle, r.Description,
			strconv.Itoa(r.TrainingSteps), strings.Join(r.TrainingJobIDs, ", ")})
	}
	return table(c.out, []string{"JOB", "TITLE", "PATH", "TRAINING JOBS", "IDS"}, rows)
}

func (c *CLI) path(ctx context.Context, args []string) error {
	fs := c.flags("path")
	from := fs.String("from", "", "start location")
	to := fs.String("to", "", "destination location")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *from == "" || *to == "" {
		return fmt.Errorf("%w: -from and -to are required", ErrUsage)
	}
	route, dist := c.svc.ShortestPath(ctx, *from, *to)
	rec := pathRecord{From: *from, To: *to, Path: route, Distance: finite(dist)}
	if c.json {
		return writeJSON(c.out, rec)
	}
	if len(route) == 0 {
		_, err := fmt.Fprintf(c.out, "no route from %s to %s\n", *from, *to)
		return err
	}
	_, err := fmt.Fprintf(c.out, "%s (%s km)\n", strings.Join(route, " -> "), formatKm(dist))
	return err
}

func (c *CLI) stats(_ context.Context, args []string) error {
	if err := parse(c.flags("stats"), args); err != nil {
		return err
	}
	st := c.svc.Stats()
	if c.json {
		return writeJSON(c.out, st)
	}
	return table(c.out, []string{"JOBS", "USERS", "TITLES", "SKILLS", "LOCATIONS"}, [][]string{{
		strconv.Itoa(st.Jobs), strconv.Itoa(st.Users), strconv.Itoa(st.UniqueTitles),
		strconv.Itoa(st.UniqueSkills), strconv.Itoa(st.Locations),
	}})
}

func (c *CLI) seed(ctx context.Context, args []string) error {
	if err := parse(c.flags("seed"), args); err != nil {
		return err
	}
	c.svc.Reset(ctx)
	if err := c.svc.Import(ctx, seed.Sample()); err != nil {
		return err
	}
	if err := c.persist(ctx); err != nil {
		return err
	}
	return c.stats(ctx, nil)
}

func (c *CLI) importFile(ctx context.Context, args []string) error {
	fs := c.flags("import")
	path := fs.String("file", "", "YAML dataset path")
	if err := parse(fs, args); err != nil {
		return err
	}
	p := argOr(fs, *path)
	if p == "" {
		return fmt.Errorf("%w: -file is required", ErrUsage)
	}
	snap, err := seed.LoadFile(p)
	if err != nil {
		return err
	}
	if err := c.svc.Import(ctx, snap); err != nil {
		return err
	}
	if err := c.persist(ctx); err != nil {
		return err
	}
	return c.stats(ctx, nil)
}

// persist saves when a store is configured; in-memory runs skip it.
func (c *CLI) persist(ctx context.Context) error {
	err := c.svc.Persist(ctx)
	if errors.Is(err, service.ErrNoStore) {
		c.logger.Warn(ctx, "no store configured; changes are not saved")
		return nil
	}
	return err
}

func (c *CLI) printMetrics(_ context.Context, args []string) error {
	if err := parse(c.flags("metrics"), args); err != nil {
		return err
	}
	return c.metrics.WriteText(c.out)
}
