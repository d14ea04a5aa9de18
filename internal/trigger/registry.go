package trigger

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/errx"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/log"
)

// Stats counts the outcomes of inbound calls for one trigger.
type Stats struct {
	Accepted     int64 `json:"accepted"`
	Ignored      int64 `json:"ignored"`
	Unauthorized int64 `json:"unauthorized"`
	RateLimited  int64 `json:"rateLimited"`
	Failed       int64 `json:"failed"`
}

type entry struct {
	config  Config
	limiter *rate.Limiter

	accepted     atomic.Int64
	ignored      atomic.Int64
	unauthorized atomic.Int64
	rateLimited  atomic.Int64
	failed       atomic.Int64
}

// Registry keeps trigger configurations in memory.
type Registry struct {
	mu       sync.RWMutex
	triggers map[string]*entry
	rps      rate.Limit
	burst    int
}

// NewRegistry creates an empty registry. rps <= 0 disables inbound limits.
func NewRegistry(rps float64, burst int) *Registry {
	if burst <= 0 {
		burst = 1
	}
	return &Registry{
		triggers: make(map[string]*entry),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (r *Registry) newEntry(cfg Config) *entry {
	e := &entry{config: cfg}
	if r.rps > 0 {
		e.limiter = rate.NewLimiter(r.rps, r.burst)
	}
	return e
}

// Add normalizes and stores cfg, generating an ID when none is given.
func (r *Registry) Add(cfg Config) (Config, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return Config{}, err
	}
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.triggers[cfg.ID]; exists {
		return Config{}, registry.New(CodeDuplicateID).WithDetail("triggerId", cfg.ID)
	}
	r.triggers[cfg.ID] = r.newEntry(cfg)
	log.TriggerOp(cfg.ID, "add").Info("Trigger registered")
	return cfg, nil
}

func (r *Registry) Get(id string) (Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.triggers[id]
	if !ok {
		return Config{}, registry.New(CodeNotFound).WithDetail("triggerId", id)
	}
	return e.config, nil
}

// List returns all triggers ordered by creation time.
func (r *Registry) List() []Config {
	r.mu.RLock()
	out := make([]Config, 0, len(r.triggers))
	for _, e := range r.triggers {
		out = append(out, e.config)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.triggers[id]; !ok {
		return registry.New(CodeNotFound).WithDetail("triggerId", id)
	}
	delete(r.triggers, id)
	log.TriggerOp(id, "delete").Info("Trigger removed")
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.triggers)
}

// Allow takes one token from the trigger's inbound limiter. Unknown
// triggers are reported as not found.
func (r *Registry) Allow(id string) error {
	r.mu.RLock()
	e, ok := r.triggers[id]
	r.mu.RUnlock()
	if !ok {
		return registry.New(CodeNotFound).WithDetail("triggerId", id)
	}
	if e.limiter != nil && !e.limiter.Allow() {
		e.rateLimited.Add(1)
		return registry.New(CodeRateLimited).WithDetail("triggerId", id)
	}
	return nil
}

// Record counts an evaluation outcome. forwardErr marks an accepted call
// whose firing could not be delivered.
func (r *Registry) Record(id string, outcome Outcome, forwardErr error) {
	r.mu.RLock()
	e, ok := r.triggers[id]
	r.mu.RUnlock()
	if !ok {
		return
	}
	switch {
	case forwardErr != nil:
		e.failed.Add(1)
	case outcome == OutcomeAccepted:
		e.accepted.Add(1)
	case outcome == OutcomeIgnored:
		e.ignored.Add(1)
	case outcome == OutcomeUnauthorized:
		e.unauthorized.Add(1)
	}
}

// Stats snapshots the counters of every trigger.
func (r *Registry) Stats() map[string]Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Stats, len(r.triggers))
	for id, e := range r.triggers {
		out[id] = Stats{
			Accepted:     e.accepted.Load(),
			Ignored:      e.ignored.Load(),
			Unauthorized: e.unauthorized.Load(),
			RateLimited:  e.rateLimited.Load(),
			Failed:       e.failed.Load(),
		}
	}
	return out
}

// LoadFile registers every configuration of a JSON array file.
func (r *Registry) LoadFile(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var configs []Config
	if err := json.Unmarshal(raw, &configs); err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}
	for i, cfg := range configs {
		if _, err := r.Add(cfg); err != nil {
			return i, fmt.Errorf("trigger %d in %s: %w", i, path, err)
		}
	}
	return len(configs), nil
}

// ForwardFailed reports an accepted call whose firing the sink rejected.
func ForwardFailed(id string, cause error) *errx.Error {
	return registry.NewWithCause(CodeForwardFailed, cause).WithDetail("triggerId", id)
}
