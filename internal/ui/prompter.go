package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmRequestMsg opens the confirm modal. The answer goes back on reply.
type confirmRequestMsg struct {
	question string
	reply    chan bool
}

// alertMsg shows an error in the status bar
type alertMsg struct {
	text string
}

// Prompter asks questions through the running program. Calls are made from
// command goroutines, never from Update.
type Prompter struct {
	send func(tea.Msg)
}

func NewPrompter() *Prompter {
	return &Prompter{}
}

// Attach connects the prompter to the program that renders the modal.
func (p *Prompter) Attach(send func(tea.Msg)) {
	p.send = send
}

// Confirm blocks until the user answers the modal. A cancelled context or a
// detached prompter counts as "no".
func (p *Prompter) Confirm(ctx context.Context, question string) bool {
	if p.send == nil {
		return false
	}
	reply := make(chan bool, 1)
	p.send(confirmRequestMsg{question: question, reply: reply})

	select {
	case ok := <-reply:
		return ok
	case <-ctx.Done():
		return false
	}
}

// Alert shows message in the status bar and returns immediately.
func (p *Prompter) Alert(ctx context.Context, message string) {
	if p.send == nil {
		return
	}
	p.send(alertMsg{text: message})
}
