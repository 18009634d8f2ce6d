package save

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"radiatool/internal/catalog"
	"radiatool/internal/constants"
	"radiatool/internal/storage"
)

type MockMappingSaver struct {
	mock.Mock
}

func (m *MockMappingSaver) SaveMapping(ctx context.Context, res storage.Mapping) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

type staticCatalog struct{ c *catalog.Catalog }

func (s staticCatalog) Current() *catalog.Catalog { return s.c }

func testCatalog() staticCatalog {
	return staticCatalog{c: catalog.New([]storage.Sheet{{
		Connection:   constants.ConnectionSide,
		RadiatorType: "22",
		Rows: []storage.RadiatorRow{
			{Article: "R225001000", DisplayName: "Радиатор METEOR тип 22/500мм/1000мм"},
		},
	}}, nil)}
}

func TestSaveMappingAdmin_Success(t *testing.T) {
	saver := new(MockMappingSaver)
	saver.On("SaveMapping", mock.Anything, mock.MatchedBy(func(m storage.Mapping) bool {
		return m.CompetitorName == "Kermi FKO 22 500x1000" &&
			m.Connection == constants.ConnectionSide &&
			m.Article == "R225001000" &&
			m.Name == "Радиатор METEOR тип 22/500мм/1000мм" &&
			!m.ConfirmedAt.IsZero()
	})).Return(nil)

	handler := SaveMappingAdmin(slog.New(slog.NewTextHandler(io.Discard, nil)), saver, testCatalog())

	body := `{"competitor_name": " Kermi FKO 22 500x1000 ", "connection": "K-боковое", "rad_type": "22", "meteor_art": "R225001000"}`
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/admin/mappings", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp storage.Mapping
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, "R225001000", resp.Article)
	saver.AssertExpectations(t)
}

func TestSaveMappingAdmin_Validation(t *testing.T) {
	saver := new(MockMappingSaver)
	handler := SaveMappingAdmin(slog.New(slog.NewTextHandler(io.Discard, nil)), saver, testCatalog())

	cases := map[string]int{
		`{`: http.StatusBadRequest,
		`{"competitor_name": "", "connection": "side", "rad_type": "22", "meteor_art": "R225001000"}`:  http.StatusBadRequest,
		`{"competitor_name": "X", "connection": "top", "rad_type": "22", "meteor_art": "R225001000"}`:  http.StatusBadRequest,
		`{"competitor_name": "X", "connection": "side", "rad_type": "22", "meteor_art": "R000"}`:        http.StatusNotFound,
		`{"competitor_name": "X", "connection": "right-valve", "rad_type": "22", "meteor_art": "R225001000"}`: http.StatusNotFound,
	}

	for body, want := range cases {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/admin/mappings", strings.NewReader(body)))
		assert.Equal(t, want, rr.Code, body)
	}

	saver.AssertNotCalled(t, "SaveMapping", mock.Anything, mock.Anything)
}

func TestSaveMappingAdmin_StorageError(t *testing.T) {
	saver := new(MockMappingSaver)
	saver.On("SaveMapping", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	handler := SaveMappingAdmin(slog.New(slog.NewTextHandler(io.Discard, nil)), saver, testCatalog())

	body := `{"competitor_name": "X", "connection": "side", "rad_type": "22", "meteor_art": "R225001000"}`
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/admin/mappings", strings.NewReader(body)))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "ошибка сохранения соответствия")
}
