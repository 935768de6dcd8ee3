package repository

// schema is portable between SQLite and PostgreSQL. seq columns keep
// insertion order so a loaded snapshot replays in the order it was taken.
var schema = []string{ //nolint:gochecknoglobals // static DDL
	`CREATE TABLE IF NOT EXISTS snapshot_meta (
		id       INTEGER PRIMARY KEY,
		saved_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		seq       INTEGER NOT NULL,
		name      TEXT PRIMARY KEY,
		latitude  DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		seq              INTEGER NOT NULL,
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		company          TEXT NOT NULL,
		location         TEXT NOT NULL,
		salary           DOUBLE PRECISION NOT NULL,
		description      TEXT NOT NULL,
		job_type         TEXT NOT NULL,
		latitude         DOUBLE PRECISION NOT NULL,
		longitude        DOUBLE PRECISION NOT NULL,
		experience_level INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS job_skills (
		job_id TEXT NOT NULL,
		pos    INTEGER NOT NULL,
		skill  TEXT NOT NULL,
		PRIMARY KEY (job_id, pos)
	)`,
	`CREATE TABLE IF NOT EXISTS job_benefits (
		job_id  TEXT NOT NULL,
		pos     INTEGER NOT NULL,
		benefit TEXT NOT NULL,
		PRIMARY KEY (job_id, pos)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		seq          INTEGER NOT NULL,
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		age          INTEGER NOT NULL,
		education    TEXT NOT NULL,
		location     TEXT NOT NULL,
		latitude     DOUBLE PRECISION NOT NULL,
		longitude    DOUBLE PRECISION NOT NULL,
		max_distance DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_skills (
		user_id     TEXT NOT NULL,
		skill       TEXT NOT NULL,
		proficiency INTEGER NOT NULL,
		PRIMARY KEY (user_id, skill)
	)`,
	`CREATE TABLE IF NOT EXISTS user_preferences (
		user_id    TEXT NOT NULL,
		pos        INTEGER NOT NULL,
		preference TEXT NOT NULL,
		PRIMARY KEY (user_id, pos)
	)`,
	`CREATE TABLE IF NOT EXISTS stale_terms (
		kind TEXT NOT NULL,
		pos  INTEGER NOT NULL,
		term TEXT NOT NULL,
		PRIMARY KEY (kind, pos)
	)`,
	`CREATE TABLE IF NOT EXISTS roads (
		seq           INTEGER PRIMARY KEY,
		from_location TEXT NOT NULL,
		to_location   TEXT NOT NULL,
		distance      DOUBLE PRECISION NOT NULL
	)`,
}

// tables lists every table in dependency-free deletion order.
var tables = []string{ //nolint:gochecknoglobals // static table list
	"roads",
	"stale_terms",
	"user_preferences",
	"user_skills",
	"users",
	"job_benefits",
	"job_skills",
	"jobs",
	"locations",
	"snapshot_meta",
}
