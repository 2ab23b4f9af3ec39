package notify

import (
	"context"       // Contexts for publishing
	"encoding/json" // Message serialization
	"sync"          // WaitGroup for shutdown
	"time"          // Publish timeout

	"github.com/sirupsen/logrus" // Logging library
)

const publishTimeout = 5 * time.Second

// Publisher is the delivery side the worker drains into
type Publisher interface {
	Publish(ctx context.Context, channel string, message []byte) error
}

type message struct {
	Channel string `json:"-"`       // Topic to publish to
	Event   string `json:"event"`   // Event name, e.g. spray.created
	Payload any    `json:"payload"` // Event payload
}

// Worker decouples broadcasting from the request path: Broadcast enqueues
// onto a buffered channel and returns immediately; a background goroutine
// publishes. A full buffer drops the message, and a failed publish is logged
// and forgotten; neither ever fails the transaction that triggered it.
type Worker struct {
	messages chan message       // Buffered queue of pending broadcasts
	pub      Publisher          // Delivery backend
	wg       sync.WaitGroup     // Tracks the drain goroutine
	ctx      context.Context    // Cancelled on shutdown
	cancel   context.CancelFunc // Stops the worker
}

// NewWorker builds a Worker with the given buffer size
func NewWorker(pub Publisher, bufferSize int) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		messages: make(chan message, bufferSize),
		pub:      pub,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the background publish loop
func (w *Worker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.ctx.Done():
				// Drain whatever is still queued before exiting
				for len(w.messages) > 0 {
					w.deliver(<-w.messages)
				}
				return
			case msg := <-w.messages:
				w.deliver(msg)
			}
		}
	}()
}

// Broadcast enqueues a message without blocking
func (w *Worker) Broadcast(channel, event string, payload any) {
	select {
	case w.messages <- message{Channel: channel, Event: event, Payload: payload}:
		// Queued
	default:
		logrus.WithFields(logrus.Fields{
			"channel": channel, // Topic that lost a message
			"event":   event,   // Event name
		}).Warn("Broadcast buffer full, dropping message")
	}
}

// Shutdown stops the worker and waits for the queue to drain
func (w *Worker) Shutdown() {
	w.cancel()
	w.wg.Wait()
}

// deliver serializes and publishes one message
func (w *Worker) deliver(msg message) {
	body, err := json.Marshal(msg)
	if err != nil {
		logrus.WithField("event", msg.Event).Error("Broadcast payload marshal failed")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := w.pub.Publish(ctx, msg.Channel, body); err != nil {
		logrus.WithFields(logrus.Fields{
			"channel": msg.Channel, // Topic that failed
			"event":   msg.Event,   // Event name
			"error":   err.Error(), // Publish error
		}).Error("Broadcast publish failed")
	}
}
