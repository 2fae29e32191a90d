package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/doccheck/internal/compare"
	"github.com/dgallion1/doccheck/internal/config"
	"github.com/dgallion1/doccheck/internal/store"
)

// Orchestrator manages the comparison run queue and worker pool.
type Orchestrator struct {
	runs      *RunStore
	queue     chan *Run
	engine    *compare.Engine
	templates *store.Store
	log       *slog.Logger
	cfg       config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline; Start launches its workers.
func NewOrchestrator(cfg config.Config, engine *compare.Engine, templates *store.Store, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		runs:      NewRunStore(cfg.RunTTL),
		queue:     make(chan *Run, cfg.MaxQueueSize),
		engine:    engine,
		templates: templates,
		log:       log,
		cfg:       cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.engine, o.templates, o.log)
			for {
				select {
				case <-workerCtx.Done():
					return
				case run := <-o.queue:
					w.Process(workerCtx, run)
				}
			}
		}()
	}

	// Start run store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.runs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline. Workers exit via context
// cancellation; the queue channel stays open so a Submit racing shutdown
// cannot panic on a closed channel.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// Submit queues a new run for processing.
func (o *Orchestrator) Submit(run *Run) error {
	o.runs.Put(run)
	select {
	case o.queue <- run:
		return nil
	default:
		run.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("run queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetRun returns a run by ID.
func (o *Orchestrator) GetRun(id string) *Run {
	return o.runs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
