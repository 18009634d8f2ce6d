package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radiatool/internal/catalog"
	"radiatool/internal/config"
	"radiatool/internal/constants"
	"radiatool/internal/service/specification"
	"radiatool/internal/session"
	"radiatool/internal/storage"
	"radiatool/internal/storage/jsonfile"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	holder := catalog.NewHolder(nil)
	holder.Set(catalog.New(
		[]storage.Sheet{{
			Connection:   constants.ConnectionRightValve,
			RadiatorType: "10",
			Rows: []storage.RadiatorRow{
				{Article: "R105001000", DisplayName: "Радиатор METEOR тип 10/500мм/1000мм", PowerW: 650, WeightKg: 10, UnitPrice: 15000},
			},
		}},
		[]storage.BracketVariant{
			{Article: "К9.2L", DisplayName: "Кронштейн левый", UnitPrice: 500},
			{Article: "К9.2R", DisplayName: "Кронштейн правый", UnitPrice: 500},
		},
	))

	mappings, err := jsonfile.New(filepath.Join(t.TempDir(), "mappings.json"))
	require.NoError(t, err)

	sessions := session.NewStore(time.Hour)
	cfg := config.Config{AdminLogin: "admin", AdminPass: "secret", FrontendDir: filepath.Join(t.TempDir(), "нет")}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := httptest.NewServer(routes(cfg, log, holder, sessions, specification.NewService(holder, sessions, 2), mappings))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestSessionFlow(t *testing.T) {
	srv := testServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sess session.View
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sess))
	base := srv.URL + "/api/sessions/" + sess.ID

	resp = do(t, http.MethodPut, base+"/cells", `{"height": 500, "length": 1000, "value": "1+1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, base+"/specification", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var spec struct {
		Items  []map[string]interface{} `json:"items"`
		Totals map[string]interface{}   `json:"totals"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&spec))
	assert.Len(t, spec.Items, 3)
	assert.Equal(t, 34000.0, spec.Totals["sum"])

	resp = do(t, http.MethodGet, base+"/export/csv", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

	resp = do(t, http.MethodDelete, base+"/cells", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/sessions/unknown/specification", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminRequiresAuth(t *testing.T) {
	srv := testServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/admin/mappings", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/admin/mappings", nil)
	require.NoError(t, err)
	req.SetBasicAuth("admin", "secret")
	authed, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer authed.Body.Close()
	assert.Equal(t, http.StatusOK, authed.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "radiatool_catalog_variants")
}
