package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/entry"
	"github.com/bnema/editable-entry/internal/layout"
	"github.com/bnema/editable-entry/internal/ports"
	"github.com/bnema/editable-entry/internal/schema"
)

var (
	ErrNotEditing         = errors.New("entry is not in edit mode")
	ErrUnknownEntry       = errors.New("unknown editable entry")
	ErrRecordTypeMismatch = errors.New("record type does not match page layout")
	ErrEmptyRecordID      = errors.New("record id is empty")
)

// PageService runs one page turn per call: it rebuilds the page from its
// layout, record and stored session, applies the turn and stores the
// session again.
type PageService struct {
	layouts  ports.LayoutRepository
	records  ports.RecordRepository
	sessions ports.SessionRepository
	notifier ports.Notifier
	clock    ports.Clock
	logger   zerolog.Logger

	locksMu      sync.Mutex
	sessionLocks map[domain.SessionID]*sync.Mutex
}

func NewPageService(
	layouts ports.LayoutRepository,
	records ports.RecordRepository,
	sessions ports.SessionRepository,
	notifier ports.Notifier,
	clock ports.Clock,
	logger zerolog.Logger,
) *PageService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &PageService{
		layouts:      layouts,
		records:      records,
		sessions:     sessions,
		notifier:     notifier,
		clock:        clock,
		logger:       logger,
		sessionLocks: map[domain.SessionID]*sync.Mutex{},
	}
}

type openPage struct {
	ref     PageRef
	page    *entry.Page
	session *domain.EditSession
	layout  layout.Page
	record  *domain.Record
	notes   *recorder
}

// Open builds and mounts the page addressed by ref.
func (s *PageService) Open(ctx context.Context, ref PageRef) (*entry.Page, error) {
	defer s.lockSession(ref.SessionID)()

	op, err := s.open(ctx, ref)
	if err != nil {
		return nil, err
	}

	return op.page, nil
}

func (s *PageService) View(ctx context.Context, ref PageRef) (PageView, error) {
	defer s.lockSession(ref.SessionID)()

	op, err := s.open(ctx, ref)
	if err != nil {
		return PageView{}, err
	}

	return s.view(op), nil
}

// Invoke dispatches an action by name, e.g. "saveEditableEntry.c1". Failed
// saves still return the page view carrying field errors and notifications.
func (s *PageService) Invoke(ctx context.Context, ref PageRef, action string) (PageView, error) {
	defer s.lockSession(ref.SessionID)()

	op, err := s.open(ctx, ref)
	if err != nil {
		return PageView{}, err
	}

	dispatchErr := op.page.Dispatch(ctx, action)
	if errors.Is(dispatchErr, entry.ErrUnknownAction) {
		return PageView{}, dispatchErr
	}

	if err := s.saveSession(ctx, op.session); err != nil {
		return PageView{}, errors.Join(dispatchErr, err)
	}

	return s.view(op), dispatchErr
}

// SetField writes one value into the scratch of an entry in edit mode.
func (s *PageService) SetField(ctx context.Context, cmd SetFieldCommand) (PageView, error) {
	defer s.lockSession(cmd.Ref.SessionID)()

	op, err := s.open(ctx, cmd.Ref)
	if err != nil {
		return PageView{}, err
	}

	c, ok := op.page.EditableEntry(cmd.ComponentID)
	if !ok {
		return PageView{}, fmt.Errorf("%w: %s", ErrUnknownEntry, cmd.ComponentID)
	}
	if !op.session.IsEditing(cmd.ComponentID) {
		return PageView{}, fmt.Errorf("set %s on %s: %w", cmd.Field, cmd.ComponentID, ErrNotEditing)
	}

	edit, err := op.page.Resolver().EditSchema(c)
	if err != nil {
		return PageView{}, err
	}

	segments := schema.SplitPath(cmd.Field)
	if len(segments) == 0 {
		return PageView{}, fmt.Errorf("set field: %w", schema.ErrEmptyPath)
	}
	if _, ok := edit.Field(segments[0]); !ok {
		return PageView{}, fmt.Errorf("set %s on %s: %w", cmd.Field, cmd.ComponentID, schema.ErrUnknownField)
	}

	path := schema.JoinPath(append([]string{edit.Path()}, segments...)...)
	if err := op.page.Set(path, cmd.Value); err != nil {
		return PageView{}, fmt.Errorf("set %s: %w", path, err)
	}

	if err := s.saveSession(ctx, op.session); err != nil {
		return PageView{}, err
	}

	return s.view(op), nil
}

// Reset drops the stored session, leaving every entry in view mode.
func (s *PageService) Reset(ctx context.Context, id domain.SessionID) error {
	defer s.lockSession(id)()

	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func (s *PageService) Layouts(ctx context.Context) ([]string, error) {
	names, err := s.layouts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}

	return names, nil
}

func (s *PageService) Records(ctx context.Context) ([]domain.Record, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	return records, nil
}

func (s *PageService) PutRecord(ctx context.Context, cmd PutRecordCommand) (domain.Record, error) {
	if cmd.ID == "" {
		return domain.Record{}, ErrEmptyRecordID
	}

	record, err := s.records.GetByID(ctx, cmd.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Record{}, fmt.Errorf("get record by id: %w", err)
		}
		record = domain.Record{ID: cmd.ID, Attributes: domain.Attributes{}}
	}

	if cmd.Type != "" {
		record.Type = cmd.Type
	}
	record = record.Merge(cmd.Attributes)
	record.UpdatedAt = s.clock.Now()

	if err := s.records.Put(ctx, record); err != nil {
		return domain.Record{}, fmt.Errorf("put record: %w", err)
	}

	return record, nil
}

func (s *PageService) open(ctx context.Context, ref PageRef) (*openPage, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	session, err := s.loadSession(ctx, ref.SessionID)
	if err != nil {
		return nil, err
	}
	if session.Scope(ref.Page, ref.RecordID) {
		s.logger.Info().
			Str("session", string(ref.SessionID)).
			Str("page", ref.Page).
			Str("record", string(ref.RecordID)).
			Msg("discarded edit state captured on another page or record")
	}

	pageLayout, err := s.layouts.GetByName(ctx, ref.Page)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}

	record, err := s.records.GetByID(ctx, ref.RecordID)
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}
	if pageLayout.RecordType != "" && record.Type != "" && pageLayout.RecordType != record.Type {
		return nil, fmt.Errorf("%w: page %s shows %s, record %s is %s",
			ErrRecordTypeMismatch, pageLayout.Name, pageLayout.RecordType, record.ID, record.Type)
	}

	trees, err := layout.Build(pageLayout, &record)
	if err != nil {
		return nil, err
	}

	notes := &recorder{next: s.notifier}
	page := entry.NewPage(
		session,
		stampedRecords{RecordRepository: s.records, clock: s.clock},
		notes,
		entry.WithLogger(s.logger.With().Str("session", string(ref.SessionID)).Str("page", ref.Page).Logger()),
	)
	if err := page.Mount(trees...); err != nil {
		return nil, fmt.Errorf("mount page %s: %w", pageLayout.Name, err)
	}

	return &openPage{
		ref:     ref,
		page:    page,
		session: session,
		layout:  pageLayout,
		record:  &record,
		notes:   notes,
	}, nil
}

// lockSession serializes the turns of one session for the whole
// load, dispatch and save span. Call the returned func to release it.
func (s *PageService) lockSession(id domain.SessionID) func() {
	s.locksMu.Lock()
	mu, ok := s.sessionLocks[id]
	if !ok {
		mu = &sync.Mutex{}
		s.sessionLocks[id] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

func (s *PageService) loadSession(ctx context.Context, id domain.SessionID) (*domain.EditSession, error) {
	stored, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return nil, fmt.Errorf("load session: %w", err)
		}
		return domain.NewEditSession(id), nil
	}

	if stored.Scratch == nil {
		stored.Scratch = map[domain.ComponentID]map[string]any{}
	}

	return &stored, nil
}

func (s *PageService) saveSession(ctx context.Context, session *domain.EditSession) error {
	session.UpdatedAt = s.clock.Now()
	if err := s.sessions.Save(ctx, *session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (s *PageService) view(op *openPage) PageView {
	view := PageView{
		SessionID:     op.ref.SessionID,
		Page:          op.layout.Name,
		Title:         op.layout.Title,
		RecordID:      op.record.ID,
		RecordType:    op.record.Type,
		Entries:       []EntryView{},
		Notifications: op.notes.sent,
	}
	if active, ok := op.session.Active(); ok {
		view.Active = active
	}

	for _, e := range op.page.Editables() {
		view.Entries = append(view.Entries, s.entryView(op.page, e))
	}

	return view
}

func (s *PageService) entryView(page *entry.Page, e entry.Editable) EntryView {
	mode := ModeView
	if page.Session().IsEditing(e.ID()) {
		mode = ModeEdit
	}

	errs := page.FieldErrors(e.ID())
	view := EntryView{
		ID:      e.ID(),
		Kind:    "entry",
		Label:   e.GetLabel(),
		Mode:    mode,
		Fields:  []FieldView{},
		Actions: []ActionView{},
		Errors:  errs,
	}
	if section, ok := e.(*entry.Section); ok {
		view.Kind = "section"
		view.Description = section.GetDescription()
		view.Collapsible = section.IsCollapsible()
	}

	resolved, err := e.ResolvedSchema(page)
	if err != nil {
		s.logger.Warn().Err(err).Str("component", string(e.ID())).Msg("resolve entry schema")
		return view
	}

	values := resolved.Values()
	for _, field := range resolved.Fields() {
		view.Fields = append(view.Fields, FieldView{
			Name:   field.Name,
			Label:  field.DisplayLabel(),
			Kind:   string(field.Kind),
			Value:  values[field.Name],
			Errors: errs[field.Name],
		})
	}

	for _, action := range e.HintActions(page) {
		view.Actions = append(view.Actions, ActionView{
			Name:     action.Name,
			Dispatch: action.DispatchName(),
			Label:    action.Label,
			Icon:     action.Icon,
			Color:    action.Color,
		})
	}

	return view
}

// stampedRecords sets UpdatedAt on every record the page saves.
type stampedRecords struct {
	ports.RecordRepository
	clock ports.Clock
}

func (r stampedRecords) Update(ctx context.Context, record domain.Record) error {
	record.UpdatedAt = r.clock.Now()
	return r.RecordRepository.Update(ctx, record)
}

// recorder keeps the notifications of one turn for the page view and
// forwards them to the configured sink.
type recorder struct {
	next ports.Notifier
	sent []domain.Notification
}

func (r *recorder) Send(ctx context.Context, notification domain.Notification) error {
	r.sent = append(r.sent, notification)
	if r.next == nil {
		return nil
	}

	return r.next.Send(ctx, notification)
}
