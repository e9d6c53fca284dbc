package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/EliasMeh/ExamenBDD/internal/infra"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueCommandes = "jobs:commandes"

	JobCommandeConfirmee = "commande_confirmee"

	// MaxAttempts is how many counted runs a job gets before it goes to the DLQ.
	MaxAttempts = 3

	// DelayedPrefix names the sorted set holding failed jobs until their next
	// run, scored by due time in unix milliseconds.
	DelayedPrefix = "delayed:"

	delayedBatchSize = 100
)

// ErrPermanent marks a failure that retrying cannot fix. Such jobs go to the
// DLQ on the first attempt.
var ErrPermanent = errors.New("permanent job failure")

// Job is the envelope stored in the Redis lists.
type Job struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler processes the payload of one job type.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// NotifyCommandeConfirmee queues the confirmation of a committed order.
func (d *Dispatcher) NotifyCommandeConfirmee(ctx context.Context, idCommande int64) error {
	return d.Enqueue(ctx, QueueCommandes, JobCommandeConfirmee, CommandeConfirmeePayload{IDCommande: idCommande})
}

func (d *Dispatcher) Enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return push(ctx, d.rdb, queue, Job{ID: uuid.NewString(), Type: jobType, Payload: data})
}

func push(ctx context.Context, rdb *redis.Client, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// RetryPolicy spaces out the runs of a failed job.
type RetryPolicy struct {
	Base time.Duration // wait after the first failed attempt, doubled each time
	Max  time.Duration
	// Paused is the wait after a run refused by an open circuit breaker.
	// Such runs do not count as attempts.
	Paused time.Duration
	// Tick is how often due jobs are moved back onto the queue.
	Tick time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Base:   10 * time.Second,
		Max:    5 * time.Minute,
		Paused: infra.DefaultCBConfig().OpenTimeout,
		Tick:   time.Second,
	}
}

// next returns the wait before the following run of a job that failed with
// err after attempts counted runs, and whether this run counts.
func (r RetryPolicy) next(attempts int, err error) (time.Duration, bool) {
	if errors.Is(err, infra.ErrCircuitOpen) {
		return r.Paused, false
	}
	return infra.Backoff(r.Base, r.Max, attempts, infra.DefaultJitter), true
}

// moveDue pushes up to ARGV[2] jobs due at ARGV[1] from the delayed set back
// onto the queue, atomically so that two pools never move the same job.
var moveDue = redis.NewScript(`
local jobs = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, ARGV[2])
for _, job in ipairs(jobs) do
	redis.call('ZREM', KEYS[1], job)
	redis.call('LPUSH', KEYS[2], job)
end
return #jobs
`)

// Pool runs size goroutines consuming one queue, plus one goroutine moving
// delayed retries back onto it.
type Pool struct {
	rdb      *redis.Client
	queue    string
	size     int
	handlers map[string]Handler
	retry    RetryPolicy

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewPool(rdb *redis.Client, queue string, size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{rdb: rdb, queue: queue, size: size, handlers: map[string]Handler{}, retry: DefaultRetryPolicy()}
}

// SetRetryPolicy replaces DefaultRetryPolicy. Must be called before Start.
func (p *Pool) SetRetryPolicy(r RetryPolicy) {
	def := DefaultRetryPolicy()
	if r.Base <= 0 {
		r.Base = def.Base
	}
	if r.Max < r.Base {
		r.Max = r.Base
	}
	if r.Paused <= 0 {
		r.Paused = def.Paused
	}
	if r.Tick <= 0 {
		r.Tick = def.Tick
	}
	p.retry = r
}

func (p *Pool) delayedKey() string { return DelayedPrefix + p.queue }

// Handle registers h for jobType. Must be called before Start.
func (p *Pool) Handle(jobType string, h Handler) {
	p.handlers[jobType] = h
}

// Start launches the workers. Each goroutine blocks on BRPOP, zero CPU when idle.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			p.run(ctx, id)
		}(i)
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.schedule(ctx)
	}()
	log.Info().Str("queue", p.queue).Msgf("worker pool started with %d workers", p.size)
}

// Stop cancels the workers and waits for in-flight jobs, or for ctx.
func (p *Pool) Stop(ctx context.Context) error {
	if p.cancel == nil {
		return nil
	}
	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
		}

		// Waits up to 5s then loops to check ctx
		result, err := p.rdb.BRPop(ctx, 5*time.Second, p.queue).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				log.Error().Err(err).Str("queue", p.queue).Msg("worker: brpop failed")
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		// Detached from ctx so that a shutdown does not abort a job half way.
		p.process(context.WithoutCancel(ctx), result[1])
	}
}

// schedule moves due retries back onto the queue every Tick.
func (p *Pool) schedule(ctx context.Context) {
	ticker := time.NewTicker(p.retry.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := moveDue.Run(ctx, p.rdb, []string{p.delayedKey(), p.queue}, now.UnixMilli(), delayedBatchSize).Int()
			if err != nil {
				if ctx.Err() == nil {
					log.Error().Err(err).Str("queue", p.queue).Msg("worker: moving delayed jobs failed")
				}
				continue
			}
			if n > 0 {
				log.Debug().Str("queue", p.queue).Int("count", n).Msg("worker: delayed jobs re-queued")
			}
		}
	}
}

func (p *Pool) process(ctx context.Context, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", p.queue).Err(err).Msg("worker: failed to unmarshal job")
		SendToDLQ(ctx, p.rdb, p.queue, Job{Payload: json.RawMessage(raw)}, "malformed job: "+err.Error())
		return
	}

	h, ok := p.handlers[job.Type]
	if !ok {
		SendToDLQ(ctx, p.rdb, p.queue, job, "no handler for job type")
		return
	}

	err := h(ctx, job.Payload)
	if err == nil {
		log.Info().Str("job_id", job.ID).Str("type", job.Type).Int("attempts", job.Attempts+1).Msg("worker: job done")
		return
	}

	wait, counted := p.retry.next(job.Attempts, err)
	if counted {
		job.Attempts++
	}
	if errors.Is(err, ErrPermanent) || job.Attempts >= MaxAttempts {
		SendToDLQ(ctx, p.rdb, p.queue, job, err.Error())
		return
	}

	log.Warn().Err(err).
		Str("job_id", job.ID).
		Str("type", job.Type).
		Int("attempts", job.Attempts).
		Dur("retry_in", wait).
		Msg("worker: job failed, retry scheduled")
	if err := p.delay(ctx, job, wait); err != nil {
		log.Error().Err(err).Str("job_id", job.ID).Msg("worker: scheduling retry failed")
		SendToDLQ(ctx, p.rdb, p.queue, job, "retry scheduling failed: "+err.Error())
	}
}

func (p *Pool) delay(ctx context.Context, job Job, wait time.Duration) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	// Rounded up to the next millisecond so the job never runs early.
	due := time.Now().Add(wait).UnixMilli() + 1
	return p.rdb.ZAdd(ctx, p.delayedKey(), redis.Z{Score: float64(due), Member: encoded}).Err()
}
