package wander

import (
	"context"
	"fmt"

	"github.com/wanderapp/wander/logger"
)

// DefaultMaxPlaces is the fixed policy value for place recommendations per
// query.
const DefaultMaxPlaces = 5

// Orchestrator composes the identity context, session registry, and
// per-session timelines, and drives the send state machine
// (idle → sending → idle).
//
// A send has three phases. Begin runs on the cooperative loop and applies
// the optimistic user turn before any network work. Exchange performs the
// network phase and may run off the loop; it mutates no orchestrator state.
// Finish applies the outcome back on the loop, routed by the tag captured at
// Begin, so a reply always lands in the timeline of the session it was
// issued for — not whichever timeline is currently visible.
type Orchestrator struct {
	idctx    *Context
	backend  Backend
	registry *Registry

	timelines map[string]*Timeline
	pending   *Timeline // staging timeline while no session is selected

	maxPlaces   int
	sending     int
	sidebarOpen bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithMaxPlaces overrides the place-recommendation limit per query.
func WithMaxPlaces(n int) Option {
	return func(o *Orchestrator) { o.maxPlaces = n }
}

// NewOrchestrator creates an Orchestrator over the given collaborators.
func NewOrchestrator(idctx *Context, backend Backend, registry *Registry, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		idctx:     idctx,
		backend:   backend,
		registry:  registry,
		timelines: make(map[string]*Timeline),
		maxPlaces: DefaultMaxPlaces,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SendTag identifies an in-flight send. Completion handlers route by the
// tag's session id and identity epoch, never by the current selection.
type SendTag struct {
	SessionID string // empty when the send must create its session first
	Epoch     int
	Text      string

	token    string
	renameTo string // non-empty when the network phase must push a rename
}

// ExchangeResult is the outcome of the network phase of a send.
type ExchangeResult struct {
	Tag       SendTag
	Created   *Session // session created because none was selected
	RenamedTo string   // derived name applied during the exchange, if any
	RenameErr error    // rename push failure; a notice, never blocks the query
	Reply     Reply
	Err       error // terminal failure of the query itself
}

// Begin starts a send. It validates the identity precondition (a hard stop,
// no network call is attempted), appends the user turn optimistically, and
// claims the one-shot rename when this is the session's first message.
func (o *Orchestrator) Begin(text string) (SendTag, error) {
	id, ok := o.idctx.Current()
	if !ok || !id.Authenticated() {
		logger.Logger.Error("send blocked: no identity token")
		return SendTag{}, ErrPrecondition
	}
	tag := SendTag{
		SessionID: o.registry.Selected(),
		Epoch:     o.idctx.Epoch(),
		Text:      text,
		token:     id.Token,
	}
	o.Timeline().AppendUserTurn(text)
	if tag.SessionID != "" {
		if name, renamed := o.registry.RenameOnFirstMessage(tag.SessionID, text); renamed {
			tag.renameTo = name
		}
	}
	o.sending++
	return tag, nil
}

// Exchange performs the network phase of a send: create-if-absent,
// rename-if-first, then the query. A rename failure is recorded but does not
// block the query. Exchange mutates no orchestrator state and is safe to run
// off the cooperative loop.
func (o *Orchestrator) Exchange(ctx context.Context, tag SendTag) ExchangeResult {
	res := ExchangeResult{Tag: tag, RenamedTo: tag.renameTo}

	sessionID := tag.SessionID
	if sessionID == "" {
		s, err := o.backend.CreateSession(ctx, tag.token)
		if err != nil {
			res.Err = fmt.Errorf("%w: %v", ErrCreate, err)
			return res
		}
		if s.Name == "" {
			s.Name = DefaultSessionName
		}
		res.Created = &s
		res.Tag.SessionID = s.ID
		sessionID = s.ID
		res.RenamedTo = DeriveSessionName(tag.Text)
	}

	if res.RenamedTo != "" {
		if err := o.backend.RenameSession(ctx, tag.token, sessionID, res.RenamedTo); err != nil {
			res.RenameErr = fmt.Errorf("%w: %v", ErrRename, err)
			logger.Logger.Warn("rename push failed", "session", sessionID, "err", err)
		}
	}

	reply, err := o.backend.SendQuery(ctx, tag.token, sessionID, tag.Text, o.maxPlaces)
	if err != nil {
		res.Err = err
		return res
	}
	res.Reply = reply
	return res
}

// Finish applies a completed exchange. The sending flag is cleared on every
// path. Exactly one assistant-side resolution is appended for the user turn:
// the reply expansion on success, the generic fallback turn on any failure.
// Results from a previous identity epoch are dropped entirely; results for a
// session that no longer exists are dropped and logged.
func (o *Orchestrator) Finish(res ExchangeResult) {
	if o.sending > 0 {
		o.sending--
	}
	if res.Tag.Epoch != o.idctx.Epoch() {
		logger.Logger.Warn("dropping reply from previous identity", "session", res.Tag.SessionID)
		return
	}

	if res.Created != nil {
		o.registry.adopt(*res.Created)
		tl := o.pending
		o.pending = nil
		if tl == nil {
			tl = NewTimeline(res.Created.ID)
		} else {
			tl.rebind(res.Created.ID)
		}
		o.timelines[res.Created.ID] = tl
		if res.RenamedTo != "" {
			o.registry.markRenamed(res.Created.ID)
			if i := o.registry.index(res.Created.ID); i >= 0 {
				o.registry.sessions[i].Name = res.RenamedTo
			}
		}
	}

	tl, ok := o.timelines[res.Tag.SessionID]
	if !ok {
		if res.Tag.SessionID == "" && o.pending != nil {
			// The create failed before a session existed; resolve the
			// optimistic user turn on the staging timeline.
			tl = o.pending
		} else {
			logger.Logger.Warn("dropping reply for deleted session", "session", res.Tag.SessionID)
			return
		}
	}

	if res.Err != nil {
		logger.Logger.Error("send failed", "session", res.Tag.SessionID, "err", res.Err)
		tl.AppendFallback()
		return
	}
	tl.AppendAssistantReply(res.Reply)
}

// Sending reports whether any send is in flight.
func (o *Orchestrator) Sending() bool { return o.sending > 0 }

// Identity returns the active identity, if any.
func (o *Orchestrator) Identity() (Identity, bool) { return o.idctx.Current() }

// Timeline returns the timeline for the current selection. When no session
// is selected it returns the staging timeline, creating an empty one as
// needed.
func (o *Orchestrator) Timeline() *Timeline {
	if sel := o.registry.Selected(); sel != "" {
		tl, ok := o.timelines[sel]
		if !ok {
			tl = NewTimeline(sel)
			o.timelines[sel] = tl
		}
		return tl
	}
	if o.pending == nil {
		o.pending = NewTimeline("")
	}
	return o.pending
}

// Sessions returns the session list, newest first.
func (o *Orchestrator) Sessions() []Session { return o.registry.Sessions() }

// SelectedSession returns the selected session id, or "".
func (o *Orchestrator) SelectedSession() string { return o.registry.Selected() }

// Session returns the listed session with the given id.
func (o *Orchestrator) Session(id string) (Session, bool) { return o.registry.Session(id) }

// HistoryTag identifies an in-flight history fetch.
type HistoryTag struct {
	SessionID string
	Epoch     int

	token string
}

// SelectSession sets the selection immediately (optimistic), discards the
// previous timeline for the session, and closes the sidebar. It returns the
// tag for the asynchronous history fetch; ok is false when sessionID is
// empty, in which case the visible timeline is empty and no fetch is due.
func (o *Orchestrator) SelectSession(sessionID string) (HistoryTag, bool) {
	o.sidebarOpen = false
	if sessionID == "" {
		o.registry.ClearSelection()
		o.pending = NewTimeline("")
		return HistoryTag{}, false
	}
	o.registry.SelectSession(sessionID)
	o.timelines[sessionID] = NewTimeline(sessionID)
	id, ok := o.idctx.Current()
	if !ok || !id.Authenticated() {
		return HistoryTag{}, false
	}
	return HistoryTag{SessionID: sessionID, Epoch: o.idctx.Epoch(), token: id.Token}, true
}

// FetchHistory performs the network phase of a selection. It mutates no
// orchestrator state and is safe to run off the cooperative loop.
func (o *Orchestrator) FetchHistory(ctx context.Context, tag HistoryTag) ([]Turn, error) {
	turns, err := o.backend.GetHistory(ctx, tag.token, tag.SessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return turns, nil
}

// ApplyHistory installs fetched history into the tagged session's timeline.
// A fetch failure is logged, never fatal: selection stays and the timeline
// keeps its last-known-good (possibly empty) content.
func (o *Orchestrator) ApplyHistory(tag HistoryTag, turns []Turn, err error) {
	if tag.Epoch != o.idctx.Epoch() {
		return
	}
	tl, ok := o.timelines[tag.SessionID]
	if !ok {
		return
	}
	if err != nil {
		logger.Logger.Warn("history fetch failed", "session", tag.SessionID, "err", err)
		return
	}
	tl.LoadHistory(turns)
}

// NewSession creates and selects a fresh session with a seeded welcome turn.
func (o *Orchestrator) NewSession(ctx context.Context) (Session, error) {
	id, ok := o.idctx.Current()
	if !ok || !id.Authenticated() {
		return Session{}, ErrPrecondition
	}
	s, err := o.registry.CreateSession(ctx, id)
	if err != nil {
		return Session{}, err
	}
	tl := NewTimeline(s.ID)
	tl.SeedWelcome(id)
	o.timelines[s.ID] = tl
	o.sidebarOpen = false
	return s, nil
}

// DeleteSession removes a session. Deleting the selected session clears the
// selection and empties the visible timeline; deleting any other session
// leaves selection and timeline untouched. Returns the backend's
// confirmation message.
func (o *Orchestrator) DeleteSession(ctx context.Context, sessionID string) (string, error) {
	id, ok := o.idctx.Current()
	if !ok || !id.Authenticated() {
		return "", ErrPrecondition
	}
	wasSelected := o.registry.Selected() == sessionID
	detail, err := o.registry.DeleteSession(ctx, id, sessionID)
	if err != nil {
		return "", err
	}
	delete(o.timelines, sessionID)
	if wasSelected {
		o.pending = NewTimeline("")
	}
	return detail, nil
}

// RefreshSessions re-fetches the session list. The previously loaded list is
// untouched on failure.
func (o *Orchestrator) RefreshSessions(ctx context.Context) error {
	id, ok := o.idctx.Current()
	if !ok || !id.Authenticated() {
		return ErrPrecondition
	}
	return o.registry.ListSessions(ctx, id)
}

// SetIdentity installs a new identity and resets all per-identity state:
// session list, timelines, selection, sidebar. The new staging timeline is
// seeded with the welcome turn.
func (o *Orchestrator) SetIdentity(id Identity) {
	o.idctx.Set(id)
	o.resetState()
	o.pending.SeedWelcome(id)
}

// Logout clears the identity and all per-identity state.
func (o *Orchestrator) Logout() {
	o.idctx.Clear()
	o.resetState()
}

func (o *Orchestrator) resetState() {
	o.registry.Reset()
	o.timelines = make(map[string]*Timeline)
	o.pending = NewTimeline("")
	o.sidebarOpen = false
	o.sending = 0
}

// Bootstrap prepares state after an identity change: loads the session list
// (non-guests only) and eagerly creates the first session, mirroring first
// app entry. The welcome turn carries over to the new session's timeline.
func (o *Orchestrator) Bootstrap(ctx context.Context) error {
	id, ok := o.idctx.Current()
	if !ok || !id.Authenticated() {
		return ErrPrecondition
	}
	if !id.Guest {
		if err := o.registry.ListSessions(ctx, id); err != nil {
			logger.Logger.Warn("session list load failed", "err", err)
		}
	}
	s, err := o.registry.CreateSession(ctx, id)
	if err != nil {
		return err
	}
	tl := NewTimeline(s.ID)
	tl.SeedWelcome(id)
	o.timelines[s.ID] = tl
	return nil
}

// SidebarOpen reports whether the session sidebar is visible.
func (o *Orchestrator) SidebarOpen() bool { return o.sidebarOpen }

// ToggleSidebar flips sidebar visibility.
func (o *Orchestrator) ToggleSidebar() { o.sidebarOpen = !o.sidebarOpen }

// CloseSidebar closes the sidebar; used for interactions outside the sidebar
// region and the menu control.
func (o *Orchestrator) CloseSidebar() { o.sidebarOpen = false }
