package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/Talia-12/hippocampus/internal/herrors"
	"github.com/Talia-12/hippocampus/internal/types"
)

type createItemTypeRequest struct {
	Name           string  `json:"name"`
	ReviewFunction *string `json:"review_function,omitempty"`
}

func (s *Server) handleCreateItemType(w http.ResponseWriter, r *http.Request) {
	var req createItemTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindInvalidReviewFunction, "invalid request body", err))
		return
	}

	fn := types.ReviewFunctionFSRS
	if req.ReviewFunction != nil {
		fn = types.ReviewFunction(*req.ReviewFunction)
	}
	if !fn.Valid() {
		writeError(w, r, herrors.Newf(herrors.KindInvalidReviewFunction, "unknown review function %q", fn))
		return
	}

	it := &types.ItemType{
		ID:             uuid.New(),
		Name:           req.Name,
		ReviewFunction: fn,
		CreatedAt:      nowUTC(),
	}
	if err := s.store.CreateItemType(r.Context(), it); err != nil {
		writeError(w, r, herrors.Database("create item type", err))
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleListItemTypes(w http.ResponseWriter, r *http.Request) {
	its, err := s.store.ListItemTypes(r.Context())
	if err != nil {
		writeError(w, r, herrors.Database("list item types", err))
		return
	}
	writeJSON(w, http.StatusOK, its)
}

func (s *Server) handleGetItemType(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	it, err := s.store.GetItemType(r.Context(), id)
	if err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindNotFound, "item type", err))
		return
	}
	writeJSON(w, http.StatusOK, it)
}

type updateItemTypeRequest struct {
	ReviewFunction *string `json:"review_function,omitempty"`
}

func (s *Server) handleUpdateItemType(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req updateItemTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindInvalidReviewFunction, "invalid request body", err))
		return
	}
	if req.ReviewFunction == nil {
		it, err := s.store.GetItemType(r.Context(), id)
		if err != nil {
			writeError(w, r, herrors.Wrap(herrors.KindNotFound, "item type", err))
			return
		}
		writeJSON(w, http.StatusOK, it)
		return
	}
	fn := types.ReviewFunction(*req.ReviewFunction)
	if !fn.Valid() {
		writeError(w, r, herrors.Newf(herrors.KindInvalidReviewFunction, "unknown review function %q", fn))
		return
	}
	it, err := s.store.UpdateItemTypeReviewFunction(r.Context(), id, fn)
	if err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindNotFound, "item type", err))
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleListItemsOfType(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := s.store.ListItemsByType(r.Context(), id)
	if err != nil {
		writeError(w, r, herrors.Database("list items of type", err))
		return
	}
	writeJSON(w, http.StatusOK, items)
}
