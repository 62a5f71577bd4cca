package task

import (
	"context"
	"time"

	"github.com/scenekit/scenetag/internal/graphql"
	"github.com/scenekit/scenetag/internal/logging"
)

// SceneTagger is the slice of the GraphQL client the operations need.
type SceneTagger interface {
	FindTagIDByName(ctx context.Context, name string) (string, error)
	CreateTag(ctx context.Context, name string) (string, error)
	DestroyTag(ctx context.Context, id string) error
	FindRandomScene(ctx context.Context) (*graphql.Scene, error)
	UpdateScene(ctx context.Context, id string, tagIDs []string) error
}

// Options tune the runner. Zero values fall back to the defaults below.
type Options struct {
	// TagName is the fixed tag the add/remove operations act on.
	TagName string
	// LongTaskSteps is the number of steps the long task runs.
	LongTaskSteps int
	// StepInterval is the pause before each step of the long and indefinite
	// tasks.
	StepInterval time.Duration
}

const (
	defaultTagName       = "Hawwwwt"
	defaultLongTaskSteps = 100
	defaultStepInterval  = time.Second
)

// Runner executes exactly one operation per invocation. It holds the client
// and logger it was built with and no other state; a failure in any step
// propagates to the caller unmodified.
type Runner struct {
	client SceneTagger
	log    *logging.Logger
	opts   Options
}

// NewRunner returns a Runner using client for remote calls and log for
// progress and status reporting.
func NewRunner(client SceneTagger, log *logging.Logger, opts Options) *Runner {
	if opts.TagName == "" {
		opts.TagName = defaultTagName
	}
	if opts.LongTaskSteps <= 0 {
		opts.LongTaskSteps = defaultLongTaskSteps
	}
	if opts.StepInterval <= 0 {
		opts.StepInterval = defaultStepInterval
	}
	return &Runner{client: client, log: log, opts: opts}
}

// Run executes the selected operation in a single pass with no retries.
func (r *Runner) Run(ctx context.Context, mode Mode) error {
	switch mode {
	case ModeAddTag:
		return r.addTag(ctx)
	case ModeRemoveTag:
		return r.removeTag(ctx)
	case ModeLongTask:
		return r.longTask(ctx)
	case ModeIndefiniteTask:
		return r.indefiniteTask(ctx)
	default:
		return &UnknownModeError{Mode: mode.String()}
	}
}

// addTag attaches the configured tag to one random scene. The scene's tag
// list is replaced wholesale, with the target ID removed before being
// appended so it appears exactly once regardless of prior state.
func (r *Runner) addTag(ctx context.Context) error {
	tagID, err := r.client.FindTagIDByName(ctx, r.opts.TagName)
	if err != nil {
		return err
	}

	if tagID == "" {
		tagID, err = r.client.CreateTag(ctx, r.opts.TagName)
		if err != nil {
			return err
		}
	}

	scene, err := r.client.FindRandomScene(ctx)
	if err != nil {
		return err
	}
	if scene == nil {
		return &NoTargetError{Reason: "no scenes to add tag to"}
	}

	tagIDs := make([]string, 0, len(scene.Tags)+1)
	for _, t := range scene.Tags {
		if t.ID != tagID {
			tagIDs = append(tagIDs, t.ID)
		}
	}
	tagIDs = append(tagIDs, tagID)

	r.log.Infof("Adding tag to scene %s", scene.ID)
	return r.client.UpdateScene(ctx, scene.ID, tagIDs)
}

// removeTag destroys the configured tag. A missing tag is a successful no-op.
func (r *Runner) removeTag(ctx context.Context) error {
	tagID, err := r.client.FindTagIDByName(ctx, r.opts.TagName)
	if err != nil {
		return err
	}

	if tagID == "" {
		r.log.Info("Tag does not exist. Nothing to remove")
		return nil
	}

	r.log.Info("Destroying tag")
	return r.client.DestroyTag(ctx, tagID)
}

// longTask simulates a bounded long-running job: each step pauses for the
// configured interval then reports fractional progress step/total, ending
// at exactly 1.0.
func (r *Runner) longTask(ctx context.Context) error {
	total := r.opts.LongTaskSteps
	r.log.Info("Doing long task")

	for step := 1; step <= total; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.opts.StepInterval):
		}
		r.log.Progress(float64(step) / float64(total))
	}
	return nil
}

// indefiniteTask sleeps until the context is cancelled. Its only observable
// exit is external cancellation; the returned context error lets the caller
// still emit a terminal envelope when the process is signalled.
func (r *Runner) indefiniteTask(ctx context.Context) error {
	r.log.Warn("Sleeping indefinitely")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.opts.StepInterval):
		}
	}
}
