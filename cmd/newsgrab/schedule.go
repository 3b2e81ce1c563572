package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/newsgrab"
	"github.com/fwojciec/newsgrab/cron"
)

// stopTimeout bounds how long a stopping scheduler waits for running passes.
const stopTimeout = 30 * time.Second

// Run executes the schedule command. It blocks until the context is done.
func (c *ScheduleCmd) Run(deps *Dependencies) error {
	sched := cron.NewScheduler(deps.Logger, deps.Location)

	if c.Catchup != "" {
		err := sched.Add("catchup", c.Catchup, func(ctx context.Context) error {
			_, err := deps.Ingester.CatchUp(ctx, newsgrab.ArticleFilter{MaxAttempts: c.MaxAttempts}, nil)
			return err
		})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
			return err
		}
	}

	if c.Revisit != "" {
		err := sched.Add("revisit", c.Revisit, func(ctx context.Context) error {
			filter := revisitFilter("", 0, c.MinAge, time.Now())
			_, err := deps.Ingester.Revisit(ctx, filter, nil)
			return err
		})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
			return err
		}
	}

	if sched.Len() == 0 {
		err := newsgrab.Errorf(newsgrab.EINVALID, "nothing to schedule")
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
		return err
	}

	sched.Start()
	fmt.Fprintf(deps.Stdout, "Scheduled %d jobs. Press Ctrl+C to stop.\n", sched.Len())

	<-deps.Ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return sched.Stop(ctx)
}
