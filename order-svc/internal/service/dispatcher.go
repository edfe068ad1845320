package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is a best-effort unit of background work, such as a notification.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

type DispatcherConfig struct {
	QueueSize   int
	Workers     int
	MaxAttempts int
	RetryDelay  time.Duration
	TaskTimeout time.Duration
}

func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		QueueSize:   256,
		Workers:     2,
		MaxAttempts: 3,
		RetryDelay:  2 * time.Second,
		TaskTimeout: 10 * time.Second,
	}
}

// Dispatcher runs tasks on a bounded queue. Each task is retried up to
// MaxAttempts times; the final failure is logged and dropped. Callers never
// see task outcomes.
type Dispatcher struct {
	cfg    DispatcherConfig
	logger *zap.Logger
	queue  chan Task

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(cfg DispatcherConfig, logger *zap.Logger) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = 10 * time.Second
	}

	d := &Dispatcher{
		cfg:    cfg,
		logger: logger,
		queue:  make(chan Task, cfg.QueueSize),
	}
	for i := 0; i < cfg.Workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	return d
}

// Enqueue hands the task to the workers without blocking. It returns false
// when the queue is full or the dispatcher is closed.
func (d *Dispatcher) Enqueue(task Task) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("dispatcher closed, dropping task", zap.String("task", task.Name))
		return false
	}

	select {
	case d.queue <- task:
		return true
	default:
		d.logger.Warn("dispatcher queue full, dropping task", zap.String("task", task.Name))
		return false
	}
}

// Close stops accepting tasks and waits for queued ones to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for task := range d.queue {
		d.run(task)
	}
}

func (d *Dispatcher) run(task Task) {
	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.TaskTimeout)
		err := task.Run(ctx)
		cancel()

		if err == nil {
			d.logger.Debug("task completed", zap.String("task", task.Name), zap.Int("attempt", attempt))
			return
		}

		if attempt == d.cfg.MaxAttempts {
			d.logger.Error("task failed, giving up",
				zap.String("task", task.Name), zap.Int("attempts", attempt), zap.Error(err))
			return
		}

		d.logger.Warn("task failed, retrying",
			zap.String("task", task.Name), zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(d.cfg.RetryDelay)
	}
}

var _ Notifier = (*Dispatcher)(nil)
