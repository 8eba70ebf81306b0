package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/realtyhub/listing-api/internal/api/metrics"
	"github.com/realtyhub/listing-api/internal/core/domain"
	"github.com/realtyhub/listing-api/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
	persistTimeout = 5 * time.Second
)

// AuditDispatcher implements ports.AuditSink. Denied decisions are sharded by
// subject (or route when anonymous) onto a fixed set of workers that persist
// them; allowed decisions are only counted by the guard.
type AuditDispatcher struct {
	workers []chan domain.AuthDecision
	repo    ports.AuditRepository
	log     zerolog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type AuditOption func(*auditOptions)

type auditOptions struct {
	buffer int
}

// WithBuffer sets the per-worker channel capacity.
func WithBuffer(n int) AuditOption {
	return func(o *auditOptions) {
		if n > 0 {
			o.buffer = n
		}
	}
}

// NewAuditDispatcher creates a dispatcher with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger, opts ...AuditOption) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	o := auditOptions{buffer: channelBuffer}
	for _, opt := range opts {
		opt(&o)
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuthDecision, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuthDecision, o.buffer)
	}
	return d
}

// Start launches the workers. They exit after draining their channel once ctx
// is cancelled or Stop is called.
func (d *AuditDispatcher) Start(ctx context.Context) {
	ctx, d.cancel = context.WithCancel(ctx)
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop cancels the workers and waits for them to finish.
func (d *AuditDispatcher) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
	d.wg.Wait()
}

// Record enqueues a denied decision without blocking. When the target worker
// is full the decision is dropped and counted.
func (d *AuditDispatcher) Record(dec domain.AuthDecision) {
	if dec.Allowed {
		return
	}
	idx := d.shardIndex(shardKey(dec))
	select {
	case d.workers[idx] <- dec:
		d.observeDepth(idx)
	default:
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().
			Str("route", dec.Route).
			Str("reason", dec.Reason).
			Int("worker_id", idx).
			Msg("audit queue full, decision dropped")
	}
}

func shardKey(dec domain.AuthDecision) string {
	if dec.SubjectID != "" {
		return dec.SubjectID
	}
	return dec.Method + " " + dec.Route
}

// shardIndex maps a key deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) observeDepth(id int) {
	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(d.workers[id])))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuthDecision) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain(ctx, id, ch)
			return
		case dec := <-ch:
			d.persist(ctx, id, dec)
		}
	}
}

func (d *AuditDispatcher) drain(ctx context.Context, id int, ch <-chan domain.AuthDecision) {
	for {
		select {
		case dec := <-ch:
			d.persist(ctx, id, dec)
		default:
			return
		}
	}
}

func (d *AuditDispatcher) persist(ctx context.Context, id int, dec domain.AuthDecision) {
	d.observeDepth(id)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := d.repo.InsertDecision(ctx, dec); err != nil {
		d.log.Error().Err(err).
			Str("route", dec.Route).
			Str("subject_id", dec.SubjectID).
			Int("worker_id", id).
			Msg("audit persist failed")
	}
}
