// Package service wraps the recommendation engine with locking, logging,
// metrics, persistence and batch processing.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/jobmatch/internal/adapters/repository"
	"github.com/okian/jobmatch/internal/domain/model"
	"github.com/okian/jobmatch/internal/domain/scoring"
	"github.com/okian/jobmatch/internal/engine"
	"github.com/okian/jobmatch/internal/seed"
	"github.com/okian/jobmatch/pkg/logger"
	"github.com/okian/jobmatch/pkg/metrics"
)

// Query operation labels.
const (
	OpRecommend    = "recommend"
	OpPersonalized = "personalized"
	OpSearchTitle  = "search_title"
	OpSearchSkill  = "search_skill"
	OpNear         = "near"
	OpCareer       = "career"
	OpPath         = "path"
	OpExplain      = "explain"
)

// Service guards an Engine with a RW lock. Registrations, road additions,
// reset and restore take the write lock; queries share the read lock.
type Service struct {
	mu sync.RWMutex

	engine  *engine.Engine
	store   repository.Store
	metrics *metrics.Manager

	// Configuration
	batchWorkers int
	seedSample   bool

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the snapshot store used by Start and Persist.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithMetrics routes service metrics to m instead of the global manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithBatchWorkers bounds the RecommendAll worker pool.
func WithBatchWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchWorkers = n
		}
	}
}

// WithScorer sets the scorer of the underlying engine.
func WithScorer(sc *scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.engine = engine.New(engine.WithScorer(sc))
		}
	}
}

// WithSeedSample loads the built-in sample data on Start when there is
// nothing stored yet.
func WithSeedSample(enabled bool) Option {
	return func(s *Service) {
		s.seedSample = enabled
	}
}

// New constructs a Service around an empty engine.
func New(opts ...Option) *Service {
	s := &Service{
		engine:       engine.New(),
		metrics:      metrics.Default(),
		batchWorkers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s
}

// Start loads the stored snapshot, or the sample data when enabled and
// nothing is stored.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	source, err := s.load(ctx)
	if err != nil {
		s.metrics.RecordError("service", "start")
		return err
	}

	s.started = true
	s.refreshGauges()
	st := s.engine.Stats()
	s.logger.Info(ctx, "jobmatch service started",
		logger.String("source", source),
		logger.Int("jobs", st.Jobs),
		logger.Int("users", st.Users),
		logger.Int("locations", st.Locations),
		logger.Int("batchWorkers", s.batchWorkers),
	)
	return nil
}

func (s *Service) load(ctx context.Context) (string, error) {
	if s.store != nil {
		snap, err := s.store.Load(ctx)
		switch {
		case err == nil:
			if err := s.engine.Restore(snap); err != nil {
				return "", fmt.Errorf("%w: %w", ErrRestore, err)
			}
			return "store", nil
		case !errors.Is(err, repository.ErrNotFound):
			return "", fmt.Errorf("%w: %w", ErrRestore, err)
		}
	}
	if s.seedSample {
		if err := s.engine.Restore(seed.Sample()); err != nil {
			return "", fmt.Errorf("%w: sample: %w", ErrRestore, err)
		}
		return "sample", nil
	}
	return "empty", nil
}

// Stop closes the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing store failed", logger.Error(err))
		}
	}
	s.started = false
	s.logger.Info(context.Background(), "jobmatch service stopped")
}

// Persist saves the current engine contents to the store.
func (s *Service) Persist(ctx context.Context) error {
	if s.store == nil {
		return ErrNoStore
	}
	s.mu.RLock()
	snap := s.engine.Snapshot()
	s.mu.RUnlock()

	if err := s.store.Save(ctx, snap); err != nil {
		s.metrics.RecordError("store", "save")
		return fmt.Errorf("persist: %w", err)
	}
	s.logger.Debug(ctx, "snapshot persisted",
		logger.Int("locations", len(snap.Locations)),
		logger.Int("registrations", len(snap.Registrations)),
		logger.Int("roads", len(snap.Roads)),
	)
	return nil
}

// refreshGauges must run with s.mu held.
func (s *Service) refreshGauges() {
	st := s.engine.Stats()
	s.metrics.UpdateIndexSizes(st.Jobs, st.Users, st.UniqueTitles, st.UniqueSkills, st.Locations)
}

// RegisterJob adds or replaces a job.
func (s *Service) RegisterJob(ctx context.Context, job *model.Job) {
	if job == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.RegisterJob(job)
	s.metrics.RecordRegistration("job")
	s.refreshGauges()
	s.logger.Debug(ctx, "job registered", logger.String("jobID", job.ID), logger.String("title", job.Title))
}

// RegisterUser adds or replaces a user.
func (s *Service) RegisterUser(ctx context.Context, user *model.User) {
	if user == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.RegisterUser(user)
	s.metrics.RecordRegistration("user")
	s.refreshGauges()
	s.logger.Debug(ctx, "user registered", logger.String("userID", user.ID))
}

// AddLocation registers a location; the first coordinates win.
func (s *Service) AddLocation(ctx context.Context, name string, lat, lon float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.AddLocation(name, lat, lon)
	s.metrics.RecordRegistration("location")
	s.refreshGauges()
	s.logger.Debug(ctx, "location added", logger.String("location", name))
}

// AddRoad joins two known locations.
func (s *Service) AddRoad(ctx context.Context, from, to string, distance float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.AddRoad(from, to, distance); err != nil {
		s.metrics.RecordError("engine", "add_road")
		s.logger.Warn(ctx, "road rejected", logger.String("from", from), logger.String("to", to), logger.Error(err))
		return err
	}
	s.metrics.RecordRegistration("road")
	return nil
}

// Import merges snap into the current contents.
func (s *Service) Import(ctx context.Context, snap model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.Merge(snap); err != nil {
		s.metrics.RecordError("engine", "import")
		return fmt.Errorf("import: %w", err)
	}
	for range snap.Jobs() {
		s.metrics.RecordRegistration("job")
	}
	for range snap.Users() {
		s.metrics.RecordRegistration("user")
	}
	s.refreshGauges()
	s.logger.Info(ctx, "dataset imported",
		logger.Int("jobs", len(snap.Jobs())),
		logger.Int("users", len(snap.Users())),
		logger.Int("roads", len(snap.Roads)),
	)
	return nil
}

// Reset drops all engine contents. The store is untouched until Persist.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.Reset()
	s.refreshGauges()
	s.logger.Info(ctx, "engine reset")
}

// Stats returns the engine counters.
func (s *Service) Stats() engine.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.Stats()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.engine.Stats()
	return map[string]any{
		"started":      s.started,
		"batchWorkers": s.batchWorkers,
		"persistent":   s.store != nil,
		"jobs":         st.Jobs,
		"users":        st.Users,
		"uniqueTitles": st.UniqueTitles,
		"uniqueSkills": st.UniqueSkills,
		"locations":    st.Locations,
	}
}

// User looks up a user by ID.
func (s *Service) User(id string) (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.User(id)
}

// Job looks up a job by ID.
func (s *Service) Job(id string) (*model.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.Job(id)
}

func (s *Service) observe(ctx context.Context, op string, start time.Time, results int) {
	elapsed := time.Since(start)
	s.metrics.RecordQuery(op, elapsed, results)
	s.logger.Debug(ctx, "query served",
		logger.String("operation", op),
		logger.Int("results", results),
		logger.Duration("elapsed", elapsed),
	)
}

// Recommend returns the top limit jobs for userID.
func (s *Service) Recommend(ctx context.Context, userID string, limit int) []engine.Recommendation {
	start := time.Now()
	s.mu.RLock()
	out := s.engine.Recommend(userID, limit)
	s.mu.RUnlock()
	s.observe(ctx, OpRecommend, start, len(out))
	return out
}

// PersonalizedRecommend applies q's filters before ranking.
func (s *Service) PersonalizedRecommend(ctx context.Context, q engine.PersonalizedQuery) []engine.Recommendation {
	start := time.Now()
	s.mu.RLock()
	out := s.engine.PersonalizedRecommend(q)
	s.mu.RUnlock()
	s.observe(ctx, OpPersonalized, start, len(out))
	return out
}

// SearchByTitle returns jobs whose title starts with prefix.
func (s *Service) SearchByTitle(ctx context.Context, prefix string) []*model.Job {
	start := time.Now()
	s.mu.RLock()
	out := s.engine.SearchByTitle(prefix)
	s.mu.RUnlock()
	s.observe(ctx, OpSearchTitle, start, len(out))
	return out
}

// SearchBySkill returns jobs requiring a skill that starts with prefix.
func (s *Service) SearchBySkill(ctx context.Context, prefix string) []*model.Job {
	start := time.Now()
	s.mu.RLock()
	out := s.engine.SearchBySkill(prefix)
	s.mu.RUnlock()
	s.observe(ctx, OpSearchSkill, start, len(out))
	return out
}

// FindNearLocation returns jobs within maxDistance km of location by road.
func (s *Service) FindNearLocation(ctx context.Context, location string, maxDistance float64) []*model.Job {
	start := time.Now()
	s.mu.RLock()
	out := s.engine.FindNearLocation(location, maxDistance)
	s.mu.RUnlock()
	s.observe(ctx, OpNear, start, len(out))
	return out
}

// SuggestCareerPaths explains how userID can reach jobs titled targetTitle.
func (s *Service) SuggestCareerPaths(ctx context.Context, userID, targetTitle string) []engine.CareerPathStep {
	start := time.Now()
	s.mu.RLock()
	out := s.engine.SuggestCareerPaths(userID, targetTitle)
	s.mu.RUnlock()
	s.observe(ctx, OpCareer, start, len(out))
	return out
}

// ShortestPath returns the road route and its length between two locations.
func (s *Service) ShortestPath(ctx context.Context, from, to string) ([]string, float64) {
	start := time.Now()
	s.mu.RLock()
	path, dist := s.engine.ShortestPath(from, to)
	s.mu.RUnlock()
	s.observe(ctx, OpPath, start, len(path))
	return path, dist
}

// Explain returns the per-factor score of jobID for userID.
func (s *Service) Explain(ctx context.Context, userID, jobID string) (scoring.Breakdown, error) {
	start := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.engine.User(userID)
	if !ok {
		return scoring.Breakdown{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	job, ok := s.engine.Job(jobID)
	if !ok {
		return scoring.Breakdown{}, fmt.Errorf("%w: job %s", ErrNotFound, jobID)
	}
	b := s.engine.Scorer().Breakdown(job, user, s.engine.DistanceOf(user, job))
	s.observe(ctx, OpExplain, start, 1)
	return b, nil
}
