package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver

	"github.com/okian/jobmatch/internal/domain/model"
	"github.com/okian/jobmatch/pkg/metrics"
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

const defaultMaxOpenConns = 4

// SQLStore keeps a single snapshot in a SQL database.
// Save replaces the previous snapshot inside one transaction.
type SQLStore struct {
	db           *sql.DB
	driver       string
	maxOpenConns int
	metrics      *metrics.Manager
}

// Open connects to dsn with driver and creates the schema if needed.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*SQLStore, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	s := &SQLStore{
		driver:       driver,
		maxOpenConns: defaultMaxOpenConns,
		metrics:      metrics.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStore, driver, err)
	}
	if driver == DriverSQLite {
		// :memory: databases live per connection.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(s.maxOpenConns)
	}
	s.db = db

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", ErrStore, driver, err)
	}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: migrate: %w", ErrStore, err)
		}
	}
	return nil
}

// rebind turns ? placeholders into $N for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Close releases the database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot with snap.
func (s *SQLStore) Save(ctx context.Context, snap model.Snapshot) (err error) {
	start := time.Now()
	defer func() { s.metrics.RecordStoreOp("save", time.Since(start), err) }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrStore, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	exec := func(query string, args ...any) error {
		if _, err := tx.ExecContext(ctx, s.rebind(query), args...); err != nil {
			return fmt.Errorf("%w: save: %w", ErrStore, err)
		}
		return nil
	}

	for _, t := range tables {
		if err = exec("DELETE FROM " + t); err != nil {
			return err
		}
	}

	for i, loc := range snap.Locations {
		if err = exec(`INSERT INTO locations (seq, name, latitude, longitude) VALUES (?, ?, ?, ?)`,
			i, loc.Name, loc.Latitude, loc.Longitude); err != nil {
			return err
		}
	}

	for seq, r := range snap.Registrations {
		switch {
		case r.Job != nil:
			err = s.insertJob(exec, seq, r.Job)
		case r.User != nil:
			err = s.insertUser(exec, seq, r.User)
		}
		if err != nil {
			return err
		}
	}

	for kind, terms := range map[string][]string{termTitle: snap.StaleTitles, termSkill: snap.StaleSkills} {
		for pos, term := range terms {
			if err = exec(`INSERT INTO stale_terms (kind, pos, term) VALUES (?, ?, ?)`, kind, pos, term); err != nil {
				return err
			}
		}
	}

	for i, road := range snap.Roads {
		if err = exec(`INSERT INTO roads (seq, from_location, to_location, distance) VALUES (?, ?, ?, ?)`,
			i, road.From, road.To, road.Distance); err != nil {
			return err
		}
	}

	if err = exec(`INSERT INTO snapshot_meta (id, saved_at) VALUES (?, ?)`,
		1, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrStore, err)
	}
	return nil
}

// stale_terms kinds.
const (
	termTitle = "title"
	termSkill = "skill"
)

type execFunc func(query string, args ...any) error

func (s *SQLStore) insertJob(exec execFunc, seq int, j *model.Job) error {
	if err := exec(`INSERT INTO jobs (seq, id, title, company, location, salary, description, job_type,
		latitude, longitude, experience_level) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, j.ID, j.Title, j.Company, j.Location, j.Salary, j.Description, j.JobType,
		j.Latitude, j.Longitude, j.ExperienceLevel()); err != nil {
		return err
	}
	for pos, skill := range j.RequiredSkills() {
		if err := exec(`INSERT INTO job_skills (job_id, pos, skill) VALUES (?, ?, ?)`, j.ID, pos, skill); err != nil {
			return err
		}
	}
	for pos, benefit := range j.Benefits() {
		if err := exec(`INSERT INTO job_benefits (job_id, pos, benefit) VALUES (?, ?, ?)`, j.ID, pos, benefit); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) insertUser(exec execFunc, seq int, u *model.User) error {
	if err := exec(`INSERT INTO users (seq, id, name, age, education, location, latitude, longitude,
		max_distance) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, u.ID, u.Name, u.Age, u.Education, u.Location, u.Latitude, u.Longitude, u.MaxDistance); err != nil {
		return err
	}
	skills := u.Skills()
	for _, name := range u.SkillNames() {
		if err := exec(`INSERT INTO user_skills (user_id, skill, proficiency) VALUES (?, ?, ?)`,
			u.ID, name, skills[name]); err != nil {
			return err
		}
	}
	for pos, pref := range u.Preferences() {
		if err := exec(`INSERT INTO user_preferences (user_id, pos, preference) VALUES (?, ?, ?)`,
			u.ID, pos, pref); err != nil {
			return err
		}
	}
	return nil
}

type sequenced struct {
	seq int
	reg model.Registration
}

// Load reads the stored snapshot back in its original order.
func (s *SQLStore) Load(ctx context.Context) (snap model.Snapshot, err error) {
	start := time.Now()
	defer func() { s.metrics.RecordStoreOp("load", time.Since(start), err) }()

	var saved int
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM snapshot_meta`).Scan(&saved); err != nil {
		return snap, fmt.Errorf("%w: load meta: %w", ErrStore, err)
	}
	if saved == 0 {
		return snap, ErrNotFound
	}

	if snap.Locations, err = s.loadLocations(ctx); err != nil {
		return snap, err
	}

	var regs []sequenced
	jobs := make(map[string]*model.Job)
	users := make(map[string]*model.User)

	err = s.each(ctx, `SELECT seq, id, title, company, location, salary, description, job_type,
		latitude, longitude, experience_level FROM jobs`, func(rows *sql.Rows) error {
		var (
			seq, level int
			j          model.Job
		)
		if err := rows.Scan(&seq, &j.ID, &j.Title, &j.Company, &j.Location, &j.Salary, &j.Description,
			&j.JobType, &j.Latitude, &j.Longitude, &level); err != nil {
			return err
		}
		job := model.NewJob(j.ID, j.Title, j.Company, j.Location, j.Salary)
		job.Description = j.Description
		job.JobType = j.JobType
		job.SetCoordinates(j.Latitude, j.Longitude)
		job.SetExperienceLevel(level)
		jobs[job.ID] = job
		regs = append(regs, sequenced{seq: seq, reg: model.Registration{Job: job}})
		return nil
	})
	if err != nil {
		return snap, err
	}

	err = s.each(ctx, `SELECT job_id, skill FROM job_skills ORDER BY job_id, pos`, func(rows *sql.Rows) error {
		var id, skill string
		if err := rows.Scan(&id, &skill); err != nil {
			return err
		}
		if j, ok := jobs[id]; ok {
			j.AddRequiredSkill(skill)
		}
		return nil
	})
	if err != nil {
		return snap, err
	}

	err = s.each(ctx, `SELECT job_id, benefit FROM job_benefits ORDER BY job_id, pos`, func(rows *sql.Rows) error {
		var id, benefit string
		if err := rows.Scan(&id, &benefit); err != nil {
			return err
		}
		if j, ok := jobs[id]; ok {
			j.AddBenefit(benefit)
		}
		return nil
	})
	if err != nil {
		return snap, err
	}

	err = s.each(ctx, `SELECT seq, id, name, age, education, location, latitude, longitude, max_distance
		FROM users`, func(rows *sql.Rows) error {
		var (
			seq int
			u   model.User
		)
		if err := rows.Scan(&seq, &u.ID, &u.Name, &u.Age, &u.Education, &u.Location,
			&u.Latitude, &u.Longitude, &u.MaxDistance); err != nil {
			return err
		}
		user := model.NewUser(u.ID, u.Name, u.Age, u.Education, u.Location)
		user.SetCoordinates(u.Latitude, u.Longitude)
		user.SetMaxDistance(u.MaxDistance)
		users[user.ID] = user
		regs = append(regs, sequenced{seq: seq, reg: model.Registration{User: user}})
		return nil
	})
	if err != nil {
		return snap, err
	}

	err = s.each(ctx, `SELECT user_id, skill, proficiency FROM user_skills`, func(rows *sql.Rows) error {
		var (
			id, skill string
			level     int
		)
		if err := rows.Scan(&id, &skill, &level); err != nil {
			return err
		}
		if u, ok := users[id]; ok {
			u.AddSkill(skill, level)
		}
		return nil
	})
	if err != nil {
		return snap, err
	}

	err = s.each(ctx, `SELECT user_id, preference FROM user_preferences ORDER BY user_id, pos`, func(rows *sql.Rows) error {
		var id, pref string
		if err := rows.Scan(&id, &pref); err != nil {
			return err
		}
		if u, ok := users[id]; ok {
			u.AddPreference(pref)
		}
		return nil
	})
	if err != nil {
		return snap, err
	}

	slices.SortFunc(regs, func(a, b sequenced) int { return a.seq - b.seq })
	snap.Registrations = make([]model.Registration, 0, len(regs))
	for _, r := range regs {
		snap.Registrations = append(snap.Registrations, r.reg)
	}

	err = s.each(ctx, `SELECT kind, term FROM stale_terms ORDER BY kind, pos`, func(rows *sql.Rows) error {
		var kind, term string
		if err := rows.Scan(&kind, &term); err != nil {
			return err
		}
		switch kind {
		case termTitle:
			snap.StaleTitles = append(snap.StaleTitles, term)
		case termSkill:
			snap.StaleSkills = append(snap.StaleSkills, term)
		}
		return nil
	})
	if err != nil {
		return snap, err
	}

	err = s.each(ctx, `SELECT from_location, to_location, distance FROM roads ORDER BY seq`, func(rows *sql.Rows) error {
		var r model.Road
		if err := rows.Scan(&r.From, &r.To, &r.Distance); err != nil {
			return err
		}
		snap.Roads = append(snap.Roads, r)
		return nil
	})
	if err != nil {
		return snap, err
	}
	return snap, nil
}

func (s *SQLStore) loadLocations(ctx context.Context) ([]model.Location, error) {
	var out []model.Location
	err := s.each(ctx, `SELECT name, latitude, longitude FROM locations ORDER BY seq`, func(rows *sql.Rows) error {
		var loc model.Location
		if err := rows.Scan(&loc.Name, &loc.Latitude, &loc.Longitude); err != nil {
			return err
		}
		out = append(out, loc)
		return nil
	})
	return out, err
}

// each runs query and calls scan once per row.
func (s *SQLStore) each(ctx context.Context, query string, scan func(*sql.Rows) error, args ...any) error {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return fmt.Errorf("%w: query: %w", ErrStore, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("%w: scan: %w", ErrStore, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: rows: %w", ErrStore, err)
	}
	return nil
}
