package swagger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentDescribesRoutes(t *testing.T) {
	var doc struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(Document(), &doc))

	assert.Equal(t, "/api/v1", doc.BasePath)
	assert.Contains(t, doc.Paths["/books"], "get")
	assert.Contains(t, doc.Paths["/books"], "post")
	assert.Contains(t, doc.Paths["/books/{id}"], "patch")
	assert.Contains(t, doc.Paths["/books/{id}"], "delete")
	assert.Contains(t, doc.Paths, "/genres")
	assert.Contains(t, doc.Paths, "/watch")
}

func TestRegister(t *testing.T) {
	mux := runtime.NewServeMux()
	require.NoError(t, Register(mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, Path, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, string(Document()), rec.Body.String())
}
