// Package app wires configuration, storage and the remote agent API into the
// state containers the UI and CLI share.
package app

import (
	"errors"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"

	"agentchat/internal/agentapi"
	"agentchat/internal/auth"
	"agentchat/internal/config"
	"agentchat/internal/prefs"
	"agentchat/internal/selection"
	"agentchat/internal/threads"
)

type App struct {
	Config    *config.Config
	Log       logrus.FieldLogger
	Store     prefs.Store
	Session   *auth.Session
	Models    *selection.ModelState
	MCP       *selection.MCPState
	API       *agentapi.Client
	Selection *threads.StoredSelection
	Flags     *UIFlags

	closers []io.Closer
}

// New builds the application state. When the preference database cannot be
// opened the app falls back to an in-memory store and keeps going.
func New(cfg *config.Config, log logrus.FieldLogger) *App {
	a := &App{Config: cfg, Log: log}

	store, err := prefs.Open(cfg.Storage.Path)
	if err != nil {
		log.WithError(err).Warn("preference database unavailable, settings will not be saved")
		a.Store = prefs.NewMemoryStore()
	} else {
		a.Store = store
		a.closers = append(a.closers, store)
	}

	return a.wire()
}

// NewWithStore builds the application on an existing store.
func NewWithStore(cfg *config.Config, log logrus.FieldLogger, store prefs.Store) *App {
	a := &App{Config: cfg, Log: log, Store: store}
	return a.wire()
}

func (a *App) wire() *App {
	cfg := a.Config

	verifier := auth.NewStaticVerifier(cfg.Auth.Username, cfg.Auth.PasswordHash)
	a.Session = auth.NewSession(verifier, a.Store, a.Log.WithField("component", "auth"))
	a.Session.Restore()

	a.Models = selection.NewModelState(a.Store, a.Log.WithField("component", "model"))
	a.Models.Init()
	a.MCP = selection.NewMCPState(a.Store, a.Log.WithField("component", "mcp"))

	a.API = agentapi.NewClient(cfg.API.URL, cfg.RequestTimeout(),
		agentapi.WithAPIKey(cfg.API.APIKey),
		agentapi.WithPageSize(cfg.API.PageSize),
	)
	a.Selection = threads.NewStoredSelection(a.Store, a.Log.WithField("component", "threads"))
	a.Flags = &UIFlags{store: a.Store, log: a.Log}
	return a
}

// Threads returns a thread list controller bound to this app's API client
// and selection.
func (a *App) Threads(prompter threads.Prompter) *threads.Controller {
	return threads.NewController(a.API, prompter, a.Selection, a.Log.WithField("component", "threads"))
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// UIFlags are small persisted view toggles.
type UIFlags struct {
	store prefs.Store
	log   logrus.FieldLogger
}

// HistoryOpen reports whether the chat history sidebar was left open.
// Defaults to closed.
func (f *UIFlags) HistoryOpen() bool {
	raw, ok, err := f.store.Get(prefs.KeyChatHistoryOpen)
	if err != nil {
		f.log.WithError(err).Warn("reading history flag")
		return false
	}
	if !ok {
		return false
	}
	open, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return open
}

func (f *UIFlags) SetHistoryOpen(open bool) {
	if err := f.store.Set(prefs.KeyChatHistoryOpen, strconv.FormatBool(open)); err != nil {
		f.log.WithError(err).Warn("saving history flag")
	}
}
