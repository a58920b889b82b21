package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/Talia-12/hippocampus/internal/herrors"
	"github.com/Talia-12/hippocampus/internal/types"
)

type createTagRequest struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindNotFound, "invalid request body", err))
		return
	}
	tag := &types.Tag{
		ID:        uuid.New(),
		Name:      req.Name,
		Visible:   req.Visible,
		CreatedAt: nowUTC(),
	}
	if err := s.store.CreateTag(r.Context(), tag); err != nil {
		writeError(w, r, herrors.Database("create tag", err))
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.store.ListTags(r.Context())
	if err != nil {
		writeError(w, r, herrors.Database("list tags", err))
		return
	}
	writeJSON(w, http.StatusOK, tags)
}
