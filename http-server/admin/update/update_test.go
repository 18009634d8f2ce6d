package update

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"radiatool/internal/catalog"
	"radiatool/internal/constants"
	"radiatool/internal/storage"
)

type MockCatalogReloader struct {
	mock.Mock
}

func (m *MockCatalogReloader) Reload(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCatalogReloader) Current() *catalog.Catalog {
	args := m.Called()
	return args.Get(0).(*catalog.Catalog)
}

func TestReloadCatalogAdmin(t *testing.T) {
	reloader := new(MockCatalogReloader)
	reloader.On("Reload", mock.Anything).Return(nil)
	reloader.On("Current").Return(catalog.New(
		[]storage.Sheet{{
			Connection:   constants.ConnectionRightValve,
			RadiatorType: "10",
			Rows: []storage.RadiatorRow{
				{Article: "A", DisplayName: "тип 10/300мм/400мм"},
				{Article: "B", DisplayName: "тип 10/300мм/500мм"},
			},
		}},
		[]storage.BracketVariant{{Article: "К9.2L"}},
	))

	rr := httptest.NewRecorder()
	ReloadCatalogAdmin(slog.New(slog.NewTextHandler(io.Discard, nil)), reloader).
		ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/admin/catalog/reload", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"sheets": 1, "variants": 2, "brackets": 1}`, rr.Body.String())
	reloader.AssertExpectations(t)
}

func TestReloadCatalogAdmin_Error(t *testing.T) {
	reloader := new(MockCatalogReloader)
	reloader.On("Reload", mock.Anything).Return(errors.New("file is locked"))

	rr := httptest.NewRecorder()
	ReloadCatalogAdmin(slog.New(slog.NewTextHandler(io.Discard, nil)), reloader).
		ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/admin/catalog/reload", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	reloader.AssertNotCalled(t, "Current")
}
