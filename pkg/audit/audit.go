// Package audit records account-sensitive actions (role transitions, account
// deletion) in a MongoDB collection, off the hot request path:
//
//   - Record enqueues into a buffered channel (non-blocking).
//   - A single background goroutine drains the channel and performs
//     InsertMany in configurable batch sizes (default 50).
//   - If the channel is full, the entry is silently dropped; auditing must
//     never block application code.
//   - Graceful shutdown: call Close() to flush and disconnect.
//
// When MONGO_URI is unset the package is inert and Record is a no-op.
package audit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	queueSize = 4096 // buffered channel capacity
	batchSize = 50   // maximum documents per InsertMany
	drainTick = 2 * time.Second
)

// Entry is the shape written to MongoDB.
type Entry struct {
	Time   time.Time `bson:"time"`
	Action string    `bson:"action"`
	UserID uint      `bson:"user_id"`
	Detail bson.M    `bson:"detail,omitempty"`
}

type trail struct {
	col    *mongo.Collection
	client *mongo.Client
	queue  chan Entry
	done   chan struct{}
}

// defaultTrail is nil until Connect succeeds; Record no-ops on nil.
var defaultTrail *trail

// Connect opens the audit trail. Call once at boot; a failure disables
// auditing but must not prevent the storefront from serving.
func Connect(uri string) error {
	if uri == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("audit: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("audit: ping: %w", err)
	}

	col := client.Database("crafthaven").Collection("audit_trail")

	// Time-based index for querying and TTL policies.
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "time", Value: -1}},
	})

	t := &trail{
		col:    col,
		client: client,
		queue:  make(chan Entry, queueSize),
		done:   make(chan struct{}),
	}

	go t.drainLoop()
	defaultTrail = t
	return nil
}

// Record enqueues an audit entry. Non-blocking; drops when the queue is full
// or auditing is not configured.
func Record(action string, userID uint, detail map[string]interface{}) {
	t := defaultTrail
	if t == nil {
		return
	}

	entry := Entry{
		Time:   time.Now(),
		Action: action,
		UserID: userID,
	}
	if len(detail) > 0 {
		entry.Detail = bson.M(detail)
	}

	select {
	case t.queue <- entry:
	default:
		// silently dropped — auditing must never block
	}
}

// drainLoop runs in the background, flushing queued entries into MongoDB.
func (t *trail) drainLoop() {
	ticker := time.NewTicker(drainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = t.col.InsertMany(ctx, batch) // errors are intentionally ignored
		batch = batch[:0]
	}

	for {
		select {
		case entry := <-t.queue:
			batch = append(batch, entry)
			if len(batch) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-t.done:
			for len(t.queue) > 0 {
				batch = append(batch, <-t.queue)
			}
			flush()
			return
		}
	}
}

// Close flushes pending entries and disconnects from MongoDB.
// Safe to call multiple times and when Connect never ran.
func Close() {
	t := defaultTrail
	if t == nil {
		return
	}
	select {
	case <-t.done:
	default:
		close(t.done)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = t.client.Disconnect(ctx)
	defaultTrail = nil
}
