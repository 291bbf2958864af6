// Package jobs defines the background work dispatched off the request
// path: seller notifications and the audit trail.
package jobs

import (
	"github.com/shashiranjanraj/crafthaven/app/events"
	"github.com/shashiranjanraj/crafthaven/pkg/audit"
	"github.com/shashiranjanraj/crafthaven/pkg/event"
	"github.com/shashiranjanraj/crafthaven/pkg/logger"
	"github.com/shashiranjanraj/crafthaven/pkg/queue"
	"github.com/shashiranjanraj/crafthaven/pkg/ws"
)

// sellerHub receives review notifications; set once in Boot.
var sellerHub *ws.Hub

// ReviewCreatedJob pushes a live notification to the shop that was
// reviewed.
type ReviewCreatedJob struct {
	events.ReviewCreated
}

func (j ReviewCreatedJob) Handle() error {
	if sellerHub != nil {
		sellerHub.Notify(j.SellerID, ws.M{
			"event":   events.ReviewCreatedName,
			"product": j.ProductSlug,
			"rating":  j.Rating,
		})
	}
	return nil
}

// RoleChangedJob writes the role transition to the audit trail.
type RoleChangedJob struct {
	events.RoleChanged
}

func (j RoleChangedJob) Handle() error {
	audit.Record("role.changed", j.UserID, map[string]interface{}{
		"from": j.FromRole,
		"to":   j.ToRole,
	})
	return nil
}

// ProductDeletedJob writes the listing removal to the audit trail,
// keyed by the owning seller's profile id.
type ProductDeletedJob struct {
	events.ProductDeleted
}

func (j ProductDeletedJob) Handle() error {
	audit.Record("product.deleted", j.SellerID, map[string]interface{}{
		"productId": j.ProductID,
		"slug":      j.Slug,
	})
	return nil
}

// AccountDeletedJob writes the account removal to the audit trail.
type AccountDeletedJob struct {
	events.AccountDeleted
}

func (j AccountDeletedJob) Handle() error {
	audit.Record("account.deleted", j.UserID, map[string]interface{}{
		"email": j.Email,
	})
	return nil
}

// Boot registers every job type with the queue and subscribes the
// dispatching listeners to the domain events. Call once at server start.
func Boot(hub *ws.Hub) {
	sellerHub = hub

	queue.Register("jobs.ReviewCreatedJob", func() queue.Job { return &ReviewCreatedJob{} })
	queue.Register("jobs.RoleChangedJob", func() queue.Job { return &RoleChangedJob{} })
	queue.Register("jobs.ProductDeletedJob", func() queue.Job { return &ProductDeletedJob{} })
	queue.Register("jobs.AccountDeletedJob", func() queue.Job { return &AccountDeletedJob{} })

	event.Listen(events.ReviewCreatedName, func(payload interface{}) {
		if p, ok := payload.(events.ReviewCreated); ok {
			dispatch(ReviewCreatedJob{ReviewCreated: p})
		}
	})
	event.Listen(events.RoleChangedName, func(payload interface{}) {
		if p, ok := payload.(events.RoleChanged); ok {
			dispatch(RoleChangedJob{RoleChanged: p})
		}
	})
	event.Listen(events.ProductDeletedName, func(payload interface{}) {
		if p, ok := payload.(events.ProductDeleted); ok {
			dispatch(ProductDeletedJob{ProductDeleted: p})
		}
	})
	event.Listen(events.AccountDeletedName, func(payload interface{}) {
		if p, ok := payload.(events.AccountDeleted); ok {
			dispatch(AccountDeletedJob{AccountDeleted: p})
		}
	})
}

func dispatch(job queue.Job) {
	if err := queue.Dispatch(job); err != nil {
		logger.Error("jobs: dispatch failed", "error", err)
	}
}
