package jobs_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/shashiranjanraj/crafthaven/app/events"
	"github.com/shashiranjanraj/crafthaven/app/jobs"
	"github.com/shashiranjanraj/crafthaven/pkg/event"
	"github.com/shashiranjanraj/crafthaven/pkg/queue"
	"github.com/shashiranjanraj/crafthaven/pkg/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureDriver records the job type of every pushed envelope instead of
// queueing it, so tests can see exactly what a domain event dispatched.
type captureDriver struct {
	mu    sync.Mutex
	types []string
}

func (d *captureDriver) Push(payload []byte) error {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload, &env); err != nil {
		return err
	}
	d.mu.Lock()
	d.types = append(d.types, env.Type)
	d.mu.Unlock()
	return nil
}

func (d *captureDriver) Pop(ctx context.Context) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestBootDispatchesAJobForEveryDomainEvent(t *testing.T) {
	driver := &captureDriver{}
	queue.SetDriver(driver)
	defer queue.SetDriver(queue.NewMemoryDriver())
	defer event.Flush()

	jobs.Boot(ws.NewHub())

	event.Fire(events.ReviewCreatedName, events.ReviewCreated{
		ReviewID: 1, ProductID: 2, ProductSlug: "mug-1", SellerID: 3, Rating: 5,
	})
	event.Fire(events.RoleChangedName, events.RoleChanged{
		UserID: 1, FromRole: "BUYER", ToRole: "SELLER",
	})
	event.Fire(events.ProductDeletedName, events.ProductDeleted{
		ProductID: 2, SellerID: 3, Slug: "mug-1",
	})
	event.Fire(events.AccountDeletedName, events.AccountDeleted{
		UserID: 1, Email: "maya@example.test",
	})

	require.Len(t, driver.types, 4, "every event should dispatch exactly one job")
	assert.Equal(t, []string{
		"jobs.ReviewCreatedJob",
		"jobs.RoleChangedJob",
		"jobs.ProductDeletedJob",
		"jobs.AccountDeletedJob",
	}, driver.types)
}

func TestAuditJobsHandleWithoutTrail(t *testing.T) {
	// With no MongoDB configured the audit sink is inert; the jobs still
	// complete so the queue never accumulates failures.
	assert.NoError(t, jobs.ProductDeletedJob{
		ProductDeleted: events.ProductDeleted{ProductID: 2, SellerID: 3, Slug: "mug-1"},
	}.Handle())
	assert.NoError(t, jobs.RoleChangedJob{
		RoleChanged: events.RoleChanged{UserID: 1, FromRole: "SELLER", ToRole: "BUYER"},
	}.Handle())
	assert.NoError(t, jobs.AccountDeletedJob{
		AccountDeleted: events.AccountDeleted{UserID: 1, Email: "maya@example.test"},
	}.Handle())
}
