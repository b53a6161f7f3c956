// Package session implements the draft editing session: immutable field
// updates with live validation, preview, and PDF download.
package session

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/jonathan/profile-pdf/internal/draft"
	"github.com/jonathan/profile-pdf/internal/metrics"
	"github.com/jonathan/profile-pdf/internal/phone"
	"github.com/jonathan/profile-pdf/internal/rendering"
	"github.com/jonathan/profile-pdf/internal/types"
	"github.com/jonathan/profile-pdf/internal/validation"
)

// States of a session.
const (
	StateEditing    = "editing"
	StatePreviewing = "previewing"
	StateGenerating = "generating"
)

// Events of a session.
const (
	EventPreview  = "preview"
	EventEdit     = "edit"
	EventGenerate = "generate"
)

// Session holds one user's draft. All methods are safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	store    draft.Store
	renderer rendering.PDFRenderer
	logger   *zap.Logger
	machine  *fsm.FSM
	now      func() time.Time

	draft  types.UserDetails
	errors map[types.Field]types.FieldError
	loaded bool
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the clock used to stamp generated documents.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New loads the stored draft (or the default one) into a new session.
func New(ctx context.Context, store draft.Store, renderer rendering.PDFRenderer, logger *zap.Logger, opts ...Option) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	result, err := draft.LoadOrDefault(ctx, store)
	if err != nil {
		return nil, err
	}

	s := &Session{
		store:    store,
		renderer: renderer,
		logger:   logger,
		machine:  newMachine(),
		now:      time.Now,
		draft:    result.Draft,
		errors:   make(map[types.Field]types.FieldError),
		loaded:   result.Loaded,
	}
	maps.Copy(s.errors, result.Errors)
	for _, opt := range opts {
		opt(s)
	}

	switch {
	case result.Discarded:
		logger.Warn("discarded unreadable draft")
	case len(result.Errors) > 0:
		logger.Info("loaded draft with validation errors", zap.Int("errors", len(result.Errors)))
	case result.Loaded:
		logger.Debug("loaded draft")
	}
	return s, nil
}

func newMachine() *fsm.FSM {
	return fsm.NewFSM(
		StateEditing,
		fsm.Events{
			{Name: EventPreview, Src: []string{StateEditing}, Dst: StatePreviewing},
			{Name: EventEdit, Src: []string{StatePreviewing}, Dst: StateEditing},
			{Name: EventGenerate, Src: []string{StateEditing, StatePreviewing}, Dst: StateGenerating},
		},
		fsm.Callbacks{},
	)
}

// SetField replaces one field of the draft, persists the draft and records
// the live validation result for that field. Phone input is reformatted for
// the selected country first; a country code change behaves like
// ChangeCountry.
func (s *Session) SetField(ctx context.Context, field types.Field, value string) error {
	if field == types.FieldCountryCode {
		return s.ChangeCountry(ctx, value)
	}
	if _, ok := types.ParseField(string(field)); !ok {
		return &types.FieldError{Field: field, Code: types.CodeGeneralFailure, Message: validation.InvalidInputMessage}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	countryCode := ""
	if field == types.FieldPhone {
		value = phone.Format(value, s.draft.CountryCode)
		countryCode = s.draft.CountryCode
	}

	updated := s.draft.With(field, value)
	if err := draft.SaveDraft(ctx, s.store, updated); err != nil {
		return err
	}
	s.draft = updated

	if fe := validation.ValidateField(field, value, countryCode); fe != nil {
		s.errors[field] = *fe
	} else {
		delete(s.errors, field)
	}
	return nil
}

// ChangeCountry selects a country, clears the phone number and drops any
// phone or country error.
func (s *Session) ChangeCountry(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.draft.With(types.FieldCountryCode, code).With(types.FieldPhone, "")
	if err := draft.SaveDraft(ctx, s.store, updated); err != nil {
		return err
	}
	s.draft = updated
	delete(s.errors, types.FieldPhone)
	delete(s.errors, types.FieldCountryCode)
	return nil
}

// Clear resets the draft to the default, drops all errors and removes the
// stored draft.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.draft = draft.Default()
	s.errors = make(map[types.Field]types.FieldError)
	s.loaded = false
	return nil
}

// Preview validates the whole draft. On success the normalized draft is
// persisted and the session moves to previewing; otherwise the errors are
// recorded and returned as *InvalidDraftError.
func (s *Session) Preview(ctx context.Context) (types.UserDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine.Current() == StateGenerating {
		return types.UserDetails{}, ErrGenerationInProgress
	}

	normalized, err := s.validateLocked()
	if err != nil {
		return types.UserDetails{}, err
	}
	if err := draft.SaveDraft(ctx, s.store, normalized); err != nil {
		return types.UserDetails{}, err
	}
	s.draft = normalized

	if s.machine.Current() != StatePreviewing {
		if err := s.fire(ctx, EventPreview); err != nil {
			return types.UserDetails{}, err
		}
	}
	return normalized, nil
}

// Edit persists the draft and returns to editing.
func (s *Session) Edit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.machine.Current() {
	case StateGenerating:
		return ErrGenerationInProgress
	case StateEditing:
		return draft.SaveDraft(ctx, s.store, s.draft)
	}

	if err := draft.SaveDraft(ctx, s.store, s.draft); err != nil {
		return err
	}
	return s.fire(ctx, EventEdit)
}

// Download validates the draft and renders it to PDF. Only one download runs
// at a time; a concurrent call fails with ErrGenerationInProgress. The draft
// is not changed, and a failed render can be retried.
func (s *Session) Download(ctx context.Context) (*rendering.Artifact, error) {
	s.mu.Lock()
	if s.machine.Current() == StateGenerating {
		s.mu.Unlock()
		metrics.PDFRenders.WithLabelValues(metrics.StatusRejected).Inc()
		return nil, ErrGenerationInProgress
	}

	normalized, err := s.validateLocked()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	origin := s.machine.Current()
	if err := s.fire(ctx, EventGenerate); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	start := time.Now()
	artifact, renderErr := s.render(ctx, origin, normalized)

	if renderErr != nil {
		metrics.PDFRenders.WithLabelValues(metrics.StatusFailure).Inc()
		s.logger.Error("pdf generation failed", zap.Error(renderErr))
		return nil, renderErr
	}
	metrics.PDFRenders.WithLabelValues(metrics.StatusSuccess).Inc()
	s.logger.Info("pdf generated",
		zap.String("filename", artifact.Filename),
		zap.Int("bytes", len(artifact.PDF)),
		zap.Duration("duration", time.Since(start)),
	)
	return artifact, nil
}

// render prints d outside the lock. The machine returns to origin however
// the render ends, including a panicking renderer.
func (s *Session) render(ctx context.Context, origin string, d types.UserDetails) (*rendering.Artifact, error) {
	start := time.Now()
	defer func() {
		metrics.PDFRenderDuration.Observe(time.Since(start).Seconds())
		s.mu.Lock()
		s.machine.SetState(origin)
		s.mu.Unlock()
	}()
	return rendering.Render(ctx, s.renderer, d, s.now())
}

// PreviewHTML renders the current draft as HTML without printing it. It
// leaves the recorded errors untouched.
func (s *Session) PreviewHTML() (string, error) {
	s.mu.Lock()
	d := s.draft
	now := s.now()
	s.mu.Unlock()

	result := validation.Validate(d)
	if !result.Valid {
		return "", &InvalidDraftError{Errors: result.Errors}
	}
	return rendering.RenderHTML(rendering.BuildDocument(*result.Data, now))
}

// CanDownload reports whether every required field is filled in, no field
// error is recorded and no PDF is being generated.
func (s *Session) CanDownload() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine.Current() == StateGenerating || len(s.errors) > 0 {
		return false
	}
	for _, f := range []types.Field{types.FieldName, types.FieldEmail, types.FieldCountryCode, types.FieldPhone, types.FieldPosition} {
		if s.draft.Get(f) == "" {
			return false
		}
	}
	return true
}

// Draft returns the current draft.
func (s *Session) Draft() types.UserDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Errors returns a copy of the recorded field errors.
func (s *Session) Errors() map[types.Field]types.FieldError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.errors)
}

// State returns the current session state.
func (s *Session) State() string {
	return s.machine.Current()
}

// Loaded reports whether the draft was restored from the store.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// validateLocked runs the full validation and replaces the recorded errors.
// Callers hold s.mu.
func (s *Session) validateLocked() (types.UserDetails, error) {
	result := validation.Validate(s.draft)
	metrics.ObserveValidation(result.Valid)

	s.errors = make(map[types.Field]types.FieldError, len(result.Errors))
	maps.Copy(s.errors, result.Errors)

	if !result.Valid {
		return types.UserDetails{}, &InvalidDraftError{Errors: maps.Clone(result.Errors)}
	}
	return *result.Data, nil
}

func (s *Session) fire(ctx context.Context, event string) error {
	if err := s.machine.Event(ctx, event); err != nil {
		var noTransition fsm.NoTransitionError
		if errors.As(err, &noTransition) {
			return nil
		}
		return &StateError{Event: event, State: s.machine.Current(), Cause: err}
	}
	return nil
}
