package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultQueueSize   = 64
	DefaultSendTimeout = 10 * time.Second
)

// Dispatcher delivers messages on a background worker so callers never wait
// on a notification sink. Messages are dropped when the queue is full.
type Dispatcher struct {
	notifier Notifier
	queue    chan Message
	timeout  time.Duration
	logger   *slog.Logger

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewDispatcher starts a worker delivering to notifier
func NewDispatcher(notifier Notifier, queueSize int, logger *slog.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	d := &Dispatcher{
		notifier: notifier,
		queue:    make(chan Message, queueSize),
		timeout:  DefaultSendTimeout,
		logger:   logger.With(slog.String("component", "notify")),
		done:     make(chan struct{}),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Enqueue hands msg to the worker. It returns false if the message was dropped.
func (d *Dispatcher) Enqueue(msg Message) bool {
	select {
	case <-d.done:
		return false
	default:
	}

	select {
	case d.queue <- msg:
		return true
	default:
		d.logger.Warn("notification queue full, dropping message",
			slog.String("kind", msg.Kind),
		)
		return false
	}
}

// Close stops accepting messages and waits for queued ones to be delivered
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.done)
	})
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case msg := <-d.queue:
			d.deliver(msg)
		case <-d.done:
			// Drain whatever was accepted before Close
			for {
				select {
				case msg := <-d.queue:
					d.deliver(msg)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := d.notifier.Notify(ctx, msg); err != nil {
		d.logger.Error("notification failed",
			slog.String("kind", msg.Kind),
			slog.String("error", err.Error()),
		)
		return
	}
	d.logger.Debug("notification sent", slog.String("kind", msg.Kind))
}
