package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"agentchat/internal/agentapi"
	"agentchat/internal/selection"
)

var ErrEmptyMessage = errors.New("message is empty")

// Send posts text to the thread and waits for the agent to finish. An empty
// threadID creates a new thread first. The returned thread carries the
// values the run produced. If the run fails after a thread was created, that
// thread is returned with the error so a retry can reuse it.
func (a *App) Send(ctx context.Context, threadID, text string) (agentapi.Thread, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return agentapi.Thread{}, ErrEmptyMessage
	}

	thread := agentapi.Thread{ThreadID: threadID}
	if threadID == "" {
		created, err := a.API.CreateThread(ctx, a.threadMetadata())
		if err != nil {
			return agentapi.Thread{}, err
		}
		thread = created
		a.Log.WithField("thread_id", thread.ThreadID).Info("thread created")
	}

	req := agentapi.RunRequest{
		AssistantID: a.Config.API.AssistantID,
		Input: agentapi.RunInput{
			Messages: []agentapi.Message{{Type: "human", Content: text}},
		},
		Config: agentapi.RunConfig{
			Configurable: selection.Configurable(a.Models.Snapshot(), a.MCP.Snapshot()),
		},
	}

	values, err := a.API.RunWait(ctx, thread.ThreadID, req)
	if err != nil {
		if threadID == "" {
			return thread, err
		}
		return agentapi.Thread{}, err
	}

	thread.Values = values
	thread.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return thread, nil
}

func (a *App) threadMetadata() map[string]any {
	md := map[string]any{"graph_id": a.Config.API.AssistantID}
	if u, ok := a.Session.Current(); ok {
		md["user"] = u.Username
	}
	return md
}
