// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package fixtures

import (
	"context"

	"github.com/google/uuid"

	"github.com/tomtom215/calllogd/internal/config"
	"github.com/tomtom215/calllogd/internal/database"
	"github.com/tomtom215/calllogd/internal/models"
)

// defaultStatID is the queue and agent id statistics fixtures use when none
// is given.
const defaultStatID = 1

// dimension is a stat dimension row and whether this fixture created it.
type dimension[T any] struct {
	row      T
	inserted bool
}

// WithStatQueue inserts a queue dimension, unless one with the same id
// exists, and runs fn with it. ID defaults to QueueID, and both default to 1.
// Teardown removes the queue only when setup created it.
func (h *Harness) WithStatQueue(ctx context.Context, queue models.StatQueue, fn func(models.StatQueue) error) error {
	setup := func(ctx context.Context) (dimension[models.StatQueue], error) {
		d := dimension[models.StatQueue]{row: defaultStatQueue(queue, h.defaults)}
		err := inScope(ctx, h.CEL, func(q *database.Queries) error {
			var err error
			d.inserted, err = q.InsertStatQueue(ctx, d.row)
			return err
		})
		return d, err
	}

	teardown := func(ctx context.Context, d dimension[models.StatQueue]) error {
		if !d.inserted {
			return nil
		}
		return inScope(ctx, h.CEL, func(q *database.Queries) error {
			_, err := q.DeleteStatQueue(ctx, d.row.ID)
			return err
		})
	}

	return scoped(ctx, "stat_queue", setup, teardown, func(d dimension[models.StatQueue]) error {
		return fn(d.row)
	})
}

// WithStatAgent inserts an agent dimension, unless one with the same id
// exists, and runs fn with it. ID defaults to AgentID, and both default to 1.
// Teardown removes the agent only when setup created it.
func (h *Harness) WithStatAgent(ctx context.Context, agent models.StatAgent, fn func(models.StatAgent) error) error {
	setup := func(ctx context.Context) (dimension[models.StatAgent], error) {
		d := dimension[models.StatAgent]{row: defaultStatAgent(agent, h.defaults)}
		err := inScope(ctx, h.CEL, func(q *database.Queries) error {
			var err error
			d.inserted, err = q.InsertStatAgent(ctx, d.row)
			return err
		})
		return d, err
	}

	teardown := func(ctx context.Context, d dimension[models.StatAgent]) error {
		if !d.inserted {
			return nil
		}
		return inScope(ctx, h.CEL, func(q *database.Queries) error {
			_, err := q.DeleteStatAgent(ctx, d.row.ID)
			return err
		})
	}

	return scoped(ctx, "stat_agent", setup, teardown, func(d dimension[models.StatAgent]) error {
		return fn(d.row)
	})
}

// WithStatAgentPeriodic inserts an agent periodic row at the stat baseline
// time for agent 1, unless set, and runs fn with it.
func (h *Harness) WithStatAgentPeriodic(ctx context.Context, stat models.StatAgentPeriodic, fn func(models.StatAgentPeriodic) error) error {
	setup := func(ctx context.Context) (models.StatAgentPeriodic, error) {
		s := stat
		if s.Time.IsZero() {
			s.Time = h.defaults.StatBaselineTime
		}
		if s.StatAgentID == 0 {
			s.StatAgentID = defaultStatID
		}
		err := inScope(ctx, h.CEL, func(q *database.Queries) error {
			var err error
			s.ID, err = q.InsertStatAgentPeriodic(ctx, s)
			return err
		})
		return s, err
	}

	teardown := func(ctx context.Context, s models.StatAgentPeriodic) error {
		if s.ID == 0 {
			return nil
		}
		return inScope(ctx, h.CEL, func(q *database.Queries) error {
			return q.DeleteStatAgentPeriodic(ctx, s.ID)
		})
	}

	return scoped(ctx, "stat_agent_periodic", setup, teardown, fn)
}

// WithStatQueuePeriodic inserts a queue periodic row, creating its queue
// when absent, and runs fn with it. Teardown removes the row and then the
// queue, which stays while other facts reference it.
func (h *Harness) WithStatQueuePeriodic(ctx context.Context, stat models.StatQueuePeriodic, fn func(models.StatQueuePeriodic) error) error {
	setup := func(ctx context.Context) (models.StatQueuePeriodic, error) {
		s := stat
		if s.Time.IsZero() {
			s.Time = h.defaults.StatBaselineTime
		}
		if s.StatQueueID == 0 {
			s.StatQueueID = defaultStatID
		}
		if s.TenantUUID == uuid.Nil {
			s.TenantUUID = h.defaults.MasterTenantUUID
		}
		err := inScope(ctx, h.CEL, func(q *database.Queries) error {
			var err error
			s.ID, err = q.InsertStatQueuePeriodic(ctx, s)
			return err
		})
		return s, err
	}

	teardown := func(ctx context.Context, s models.StatQueuePeriodic) error {
		return inScope(ctx, h.CEL, func(q *database.Queries) error {
			if s.ID != 0 {
				if err := q.DeleteStatQueuePeriodic(ctx, s.ID); err != nil {
					return err
				}
			}
			_, err := q.DeleteStatQueue(ctx, s.StatQueueID)
			return err
		})
	}

	return scoped(ctx, "stat_queue_periodic", setup, teardown, fn)
}

// WithStatCallOnQueue inserts a call-on-queue row, creating its queue when
// absent, and runs fn with it. The call id defaults to "123" and the status
// to answered. Teardown removes the row and then the queue.
func (h *Harness) WithStatCallOnQueue(ctx context.Context, call models.StatCallOnQueue, fn func(models.StatCallOnQueue) error) error {
	setup := func(ctx context.Context) (models.StatCallOnQueue, error) {
		c := call
		c.ApplyDefaults(h.now())
		if c.StatQueueID == 0 {
			c.StatQueueID = defaultStatID
		}
		if c.TenantUUID == uuid.Nil {
			c.TenantUUID = h.defaults.MasterTenantUUID
		}
		err := inScope(ctx, h.CEL, func(q *database.Queries) error {
			var err error
			c.ID, err = q.InsertStatCallOnQueue(ctx, c)
			return err
		})
		return c, err
	}

	teardown := func(ctx context.Context, c models.StatCallOnQueue) error {
		return inScope(ctx, h.CEL, func(q *database.Queries) error {
			if c.ID != 0 {
				if err := q.DeleteStatCallOnQueue(ctx, c.ID); err != nil {
					return err
				}
			}
			_, err := q.DeleteStatQueue(ctx, c.StatQueueID)
			return err
		})
	}

	return scoped(ctx, "stat_call_on_queue", setup, teardown, fn)
}

func defaultStatQueue(s models.StatQueue, defaults config.FixtureDefaults) models.StatQueue {
	if s.QueueID == 0 {
		s.QueueID = defaultStatID
	}
	if s.ID == 0 {
		s.ID = s.QueueID
	}
	s.ApplyDefaults(defaults.MasterTenantUUID)
	return s
}

func defaultStatAgent(a models.StatAgent, defaults config.FixtureDefaults) models.StatAgent {
	if a.AgentID == 0 {
		a.AgentID = defaultStatID
	}
	if a.ID == 0 {
		a.ID = a.AgentID
	}
	a.ApplyDefaults(defaults.MasterTenantUUID)
	return a
}
