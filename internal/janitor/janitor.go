// Package janitor runs the background cache-sweep jobs referenced by
// SPEC_FULL.md §5's concurrency model (TTL caches with per-entry
// expiration still need periodic compaction so long-lived processes
// don't grow their maps unbounded), scheduled with robfig/cron/v3 the way
// the teacher's pkg/cron package parses and drives schedules.
package janitor

import (
	cronlib "github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper is anything with a bulk eviction pass, implemented by
// tenantstore.Store and knowledge.Retriever.
type Sweeper interface {
	Sweep() int
}

// Janitor drives periodic Sweep() calls against a fixed set of caches.
type Janitor struct {
	cron *cronlib.Cron
	log  zerolog.Logger
}

// New builds a janitor. spec is a standard 5-field cron expression (e.g.
// "*/5 * * * *" to sweep every 5 minutes); sweepers are swept in the
// order given on every tick.
func New(spec string, log zerolog.Logger, sweepers ...Sweeper) (*Janitor, error) {
	j := &Janitor{cron: cronlib.New(), log: log.With().Str("component", "janitor").Logger()}
	_, err := j.cron.AddFunc(spec, func() {
		for _, s := range sweepers {
			removed := s.Sweep()
			if removed > 0 {
				j.log.Debug().Int("removed", removed).Msg("swept expired cache entries")
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Janitor) Start() { j.cron.Start() }
func (j *Janitor) Stop()  { j.cron.Stop() }
