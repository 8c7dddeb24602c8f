package service

import (
	"fmt"

	"lessonforge/pkg/logger"

	"github.com/robfig/cron/v3"
)

// ─────────────────────────────────────────────────────────────
// Autosave — periodic flush of dirty documents
// ─────────────────────────────────────────────────────────────

// Autosave runs the document service's dirty flush on a cron schedule.
type Autosave struct {
	sched *cron.Cron
	docs  *DocumentService
}

// NewAutosave creates an autosave runner. spec is a cron expression,
// e.g. "@every 30s".
func NewAutosave(docs *DocumentService, spec string) (*Autosave, error) {
	a := &Autosave{sched: cron.New(), docs: docs}
	if _, err := a.sched.AddFunc(spec, a.flush); err != nil {
		return nil, fmt.Errorf("autosave schedule %q: %w", spec, err)
	}
	return a, nil
}

func (a *Autosave) flush() {
	if n := a.docs.SaveDirty(); n > 0 {
		logger.Sugar.Infow("autosave flushed", "documents", n)
	}
}

// Start begins the schedule in its own goroutine.
func (a *Autosave) Start() {
	a.sched.Start()
}

// Stop halts the schedule and flushes one last time.
func (a *Autosave) Stop() {
	a.sched.Stop()
	a.flush()
}
