package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/editable-entry/internal/application"
	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/entry"
	"github.com/bnema/editable-entry/internal/schema"
)

type fakePageService struct {
	view      application.PageView
	err       error
	refs      []application.PageRef
	actions   []string
	setFields []application.SetFieldCommand
	puts      []application.PutRecordCommand
	resets    []domain.SessionID
}

func (f *fakePageService) View(_ context.Context, ref application.PageRef) (application.PageView, error) {
	f.refs = append(f.refs, ref)
	return f.view, f.err
}

func (f *fakePageService) Invoke(_ context.Context, ref application.PageRef, action string) (application.PageView, error) {
	f.refs = append(f.refs, ref)
	f.actions = append(f.actions, action)
	return f.view, f.err
}

func (f *fakePageService) SetField(_ context.Context, cmd application.SetFieldCommand) (application.PageView, error) {
	f.setFields = append(f.setFields, cmd)
	return f.view, f.err
}

func (f *fakePageService) Reset(_ context.Context, id domain.SessionID) error {
	f.resets = append(f.resets, id)
	return f.err
}

func (f *fakePageService) Layouts(context.Context) ([]string, error) {
	return []string{"profile"}, f.err
}

func (f *fakePageService) Records(context.Context) ([]domain.Record, error) {
	return []domain.Record{{ID: "u1", Type: "user", Attributes: domain.Attributes{"name": "Alice"}}}, f.err
}

func (f *fakePageService) PutRecord(_ context.Context, cmd application.PutRecordCommand) (domain.Record, error) {
	f.puts = append(f.puts, cmd)
	return domain.Record{ID: cmd.ID, Type: cmd.Type, Attributes: cmd.Attributes}, f.err
}

func sampleView() application.PageView {
	return application.PageView{
		SessionID: "s1",
		Page:      "profile",
		RecordID:  "u1",
		Active:    "identity",
		Entries: []application.EntryView{{
			ID:      "identity",
			Kind:    "entry",
			Label:   "Identity",
			Mode:    application.ModeEdit,
			Fields:  []application.FieldView{{Name: "name", Label: "name", Kind: "text", Value: "Alice"}},
			Actions: []application.ActionView{},
		}},
	}
}

func serve(t *testing.T, service PageService, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewRouter(service, zerolog.Nop()).ServeHTTP(rec, req)

	return rec
}

func TestRouterViewReturnsPageJSON(t *testing.T) {
	service := &fakePageService{view: sampleView()}

	rec := serve(t, service, http.MethodGet, "/sessions/s1/pages/profile/records/u1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, []application.PageRef{{SessionID: "s1", Page: "profile", RecordID: "u1"}}, service.refs)

	var got application.PageView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, domain.ComponentID("identity"), got.Active)
	assert.Equal(t, application.ModeEdit, got.Entries[0].Mode)
}

func TestRouterInvokePassesActionName(t *testing.T) {
	service := &fakePageService{view: sampleView()}

	rec := serve(t, service, http.MethodPost, "/sessions/s1/pages/profile/records/u1/actions/startEditableEntry.identity", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"startEditableEntry.identity"}, service.actions)
}

func TestRouterInvokeValidationFailureCarriesFieldsAndView(t *testing.T) {
	verr := &schema.ValidationError{}
	verr.Add("name", "The name field is required.")
	service := &fakePageService{view: sampleView(), err: verr}

	rec := serve(t, service, http.MethodPost, "/sessions/s1/pages/profile/records/u1/actions/saveEditableEntry.identity", "")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var got errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, map[string][]string{"name": {"The name field is required."}}, got.Fields)
	require.NotNil(t, got.View)
	assert.Equal(t, "profile", got.View.Page)
}

func TestRouterSetFieldDecodesValue(t *testing.T) {
	service := &fakePageService{view: sampleView()}

	rec := serve(t, service, http.MethodPut, "/sessions/s1/pages/profile/records/u1/entries/identity/fields/age", `{"value": 41}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, service.setFields, 1)
	assert.Equal(t, domain.ComponentID("identity"), service.setFields[0].ComponentID)
	assert.Equal(t, "age", service.setFields[0].Field)
	assert.Equal(t, float64(41), service.setFields[0].Value)
}

func TestRouterSetFieldRejectsBadPayload(t *testing.T) {
	service := &fakePageService{}

	rec := serve(t, service, http.MethodPut, "/sessions/s1/pages/profile/records/u1/entries/identity/fields/age", `{`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, service.setFields)
}

func TestRouterErrorStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "not editing", err: fmt.Errorf("set name: %w", application.ErrNotEditing), want: http.StatusConflict},
		{name: "persistence", err: fmt.Errorf("%w identity: disk full", entry.ErrPersistence), want: http.StatusBadGateway},
		{name: "unknown action", err: entry.ErrUnknownAction, want: http.StatusNotFound},
		{name: "missing layout", err: fmt.Errorf("load layout: %w", domain.ErrLayoutNotFound), want: http.StatusNotFound},
		{name: "unknown field", err: schema.ErrUnknownField, want: http.StatusBadRequest},
		{name: "record type", err: application.ErrRecordTypeMismatch, want: http.StatusBadRequest},
		{name: "other", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := &fakePageService{err: tc.err}

			rec := serve(t, service, http.MethodGet, "/sessions/s1/pages/profile/records/u1", "")

			assert.Equal(t, tc.want, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.err.Error())
		})
	}
}

func TestRouterRecordsAndLayouts(t *testing.T) {
	service := &fakePageService{}

	rec := serve(t, service, http.MethodPut, "/records/u2", `{"type": "user", "attributes": {"name": "Dana"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, service.puts, 1)
	assert.Equal(t, application.PutRecordCommand{
		ID:         "u2",
		Type:       "user",
		Attributes: domain.Attributes{"name": "Dana"},
	}, service.puts[0])

	rec = serve(t, service, http.MethodGet, "/records", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id": "u1", "type": "user", "attributes": {"name": "Alice"}}]`, rec.Body.String())

	rec = serve(t, service, http.MethodGet, "/layouts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["profile"]`, rec.Body.String())
}

func TestRouterResetSession(t *testing.T) {
	service := &fakePageService{}

	rec := serve(t, service, http.MethodDelete, "/sessions/s1", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []domain.SessionID{"s1"}, service.resets)
}
