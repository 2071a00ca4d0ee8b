// Package swagger отдает OpenAPI описание HTTP API.
package swagger

import (
	_ "embed"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
)

//go:embed booktrackr.swagger.json
var document []byte

// Path путь описания API
const Path = "/swagger.json"

// Document возвращает OpenAPI документ
func Document() []byte {
	return document
}

// Register добавляет GET /swagger.json в mux gateway
func Register(mux *runtime.ServeMux) error {
	return mux.HandlePath(http.MethodGet, Path, func(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(document)
	})
}
