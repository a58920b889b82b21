package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/Talia-12/hippocampus/internal/herrors"
)

type createReviewRequest struct {
	CardID string `json:"card_id"`
	Rating int    `json:"rating"`
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindInvalidRating, "invalid request body", err))
		return
	}
	cardID, err := uuid.Parse(req.CardID)
	if err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindNotFound, "card_id", err))
		return
	}
	review, err := s.reviews.RecordReview(r.Context(), cardID, req.Rating)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}
