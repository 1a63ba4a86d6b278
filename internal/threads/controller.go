// Package threads keeps the local list of conversation threads in step with
// the agent server.
package threads

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"agentchat/internal/agentapi"
)

var (
	ErrCancelled = errors.New("cancelled by user")
	ErrClosed    = errors.New("thread list closed")
)

const (
	DeleteQuestion = "Delete this chat? All of its messages will be removed."
	DeleteFailed   = "Could not delete the chat"
)

// API is the part of the agent server the list needs
type API interface {
	ListThreads(ctx context.Context) ([]agentapi.Thread, error)
	DeleteThread(ctx context.Context, threadID string) error
}

// Prompter asks the user a yes/no question and shows errors. Confirm blocks
// until the user has answered.
type Prompter interface {
	Confirm(ctx context.Context, question string) bool
	Alert(ctx context.Context, message string)
}

// Selection is the id of the thread currently open, if any
type Selection interface {
	Current() string
	Set(threadID string)
	Clear()
}

// Controller owns the thread list shown in the sidebar.
type Controller struct {
	api       API
	prompter  Prompter
	selection Selection
	log       logrus.FieldLogger

	mu       sync.RWMutex
	threads  []agentapi.Thread
	loading  bool
	deleting string
	gen      uint64
	closed   bool
}

func NewController(api API, prompter Prompter, selection Selection, log logrus.FieldLogger) *Controller {
	return &Controller{
		api:       api,
		prompter:  prompter,
		selection: selection,
		log:       log,
		threads:   []agentapi.Thread{},
	}
}

// Load fetches the full list and replaces the local one. On failure the
// previous list is kept. A response is dropped if another Load started after
// this one or the controller was closed meanwhile.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.gen++
	gen := c.gen
	c.loading = true
	c.mu.Unlock()

	list, err := c.api.ListThreads(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.gen {
		c.log.WithField("generation", gen).Debug("discarding stale thread list")
		return nil
	}
	c.loading = false

	if err != nil {
		c.log.WithError(err).Error("loading threads")
		return err
	}
	c.threads = append([]agentapi.Thread(nil), list...)
	c.log.WithField("count", len(list)).Debug("threads loaded")
	return nil
}

// Delete asks for confirmation, deletes the thread on the server, and only
// then drops it locally. If the open thread was deleted the selection is
// cleared. On failure the user is alerted and nothing changes locally.
func (c *Controller) Delete(ctx context.Context, threadID string) error {
	if !c.prompter.Confirm(ctx, DeleteQuestion) {
		return ErrCancelled
	}

	c.mu.Lock()
	c.deleting = threadID
	c.mu.Unlock()

	err := c.api.DeleteThread(ctx, threadID)

	c.mu.Lock()
	c.deleting = ""
	if err == nil && !c.closed {
		c.threads = without(c.threads, threadID)
	}
	c.mu.Unlock()

	if err != nil {
		c.log.WithError(err).WithField("thread_id", threadID).Error("deleting thread")
		c.prompter.Alert(ctx, DeleteFailed)
		return err
	}

	if c.selection.Current() == threadID {
		c.selection.Clear()
	}
	c.log.WithField("thread_id", threadID).Info("thread deleted")
	return nil
}

// Upsert replaces the thread with the same id, or puts t first when it is
// new. Used after creating a thread or finishing a run.
func (c *Controller) Upsert(t agentapi.Thread) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	for i := range c.threads {
		if c.threads[i].ThreadID == t.ThreadID {
			c.threads[i] = t
			return
		}
	}
	c.threads = append([]agentapi.Thread{t}, c.threads...)
}

// Find returns the thread with the given id from the local list
func (c *Controller) Find(threadID string) (agentapi.Thread, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.threads {
		if t.ThreadID == threadID {
			return t, true
		}
	}
	return agentapi.Thread{}, false
}

// Threads returns a copy of the current list
func (c *Controller) Threads() []agentapi.Thread {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]agentapi.Thread(nil), c.threads...)
}

func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Deleting returns the id of the thread whose deletion is in flight
func (c *Controller) Deleting() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deleting
}

// Selection exposes the open-thread selection
func (c *Controller) Selection() Selection {
	return c.selection
}

// Close detaches the controller from its view. Results of calls still in
// flight are ignored afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.loading = false
}

func without(list []agentapi.Thread, threadID string) []agentapi.Thread {
	out := make([]agentapi.Thread, 0, len(list))
	for _, t := range list {
		if t.ThreadID != threadID {
			out = append(out, t)
		}
	}
	return out
}
