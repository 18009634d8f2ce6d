package remove

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"radiatool/internal/session"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ClearCells(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStore) Delete(id string) {
	m.Called(id)
}

func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestClearCells(t *testing.T) {
	store := new(MockStore)
	store.On("ClearCells", "s1").Return(nil)
	store.On("ClearCells", "gone").Return(session.ErrNotFound)
	store.On("ClearCells", "broken").Return(errors.New("boom"))

	handler := ClearCells(slog.New(slog.NewTextHandler(io.Discard, nil)), store)

	cases := map[string]int{
		"s1":     http.StatusNoContent,
		"gone":   http.StatusNotFound,
		"broken": http.StatusInternalServerError,
	}
	for id, want := range cases {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, withID(httptest.NewRequest(http.MethodDelete, "/api/sessions/"+id+"/cells", nil), id))
		assert.Equal(t, want, rr.Code, id)
	}

	store.AssertExpectations(t)
}

func TestDeleteSession(t *testing.T) {
	store := new(MockStore)
	store.On("Delete", "s1").Return()

	rr := httptest.NewRecorder()
	DeleteSession(slog.New(slog.NewTextHandler(io.Discard, nil)), store).
		ServeHTTP(rr, withID(httptest.NewRequest(http.MethodDelete, "/api/sessions/s1", nil), "s1"))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	store.AssertExpectations(t)
}
