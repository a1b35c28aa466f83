package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/refgenome-id/refgenome-id/internal/refmatch"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	ref, err := refmatch.NewKnownReference("hg38_ucsc", "UCSC hg38", refmatch.AssemblyGRCh38, refmatch.SourceUCSC,
		[]refmatch.Contig{
			{Name: "chr1", Length: 248956422, MD5: "2648ae1bacce4ec4b6cf337dcae37816"},
			{Name: "chr2", Length: 242193529, MD5: "f98db672eb0993dcfdabafe2a882905c"},
		}, "", "")
	require.NoError(t, err)
	idx := refmatch.NewCatalogIndex([]*refmatch.KnownReference{ref})
	return NewServer(Config{Host: "127.0.0.1", Port: 0}, idx, refmatch.DefaultMatchingConfig(), zap.NewNop())
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleIdentify_ExactMatch(t *testing.T) {
	s := testServer(t)
	body := identifyRequest{
		Contigs: []contigPayload{
			{Name: "chr1", Length: 248956422, MD5: "2648ae1bacce4ec4b6cf337dcae37816"},
			{Name: "chr2", Length: 242193529, MD5: "f98db672eb0993dcfdabafe2a882905c"},
		},
	}
	buf, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/identify", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "hg38_ucsc", results[0]["reference_id"])
	assert.Equal(t, "Exact", results[0]["match_type"])
}

func TestHandleIdentify_InvalidBodyIsBadRequest(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/identify", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListCatalog(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	refs := decoded["references"].([]interface{})
	require.Len(t, refs, 1)
}

func TestHandleGetCatalogEntry_NotFound(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/nonexistent", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetCatalogEntry_Found(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/hg38_ucsc", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDMiddleware_SetsHeaderWhenAbsent(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
