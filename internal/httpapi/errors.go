package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Talia-12/hippocampus/internal/herrors"
	"github.com/Talia-12/hippocampus/internal/obslog"
)

// errorBody is the error response shape of spec §7: {"error": "<message>"}.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to its herrors.Kind and status, logging unrecognized
// (Database-kind) errors at error level with the request's correlation ID
// (spec §7 propagation policy).
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := herrors.KindOf(err)
	if kind == herrors.KindDatabase {
		obslog.Errorf(correlationID(r.Context()), "%v", err)
		writeJSON(w, kind.Status(), errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, kind.Status(), errorBody{Error: err.Error()})
}
