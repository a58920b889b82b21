package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Talia-12/hippocampus/internal/herrors"
)

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	cards, err := s.queryEngine.FindCards(r.Context(), filter)
	if err != nil {
		writeError(w, r, herrors.Database("list cards", err))
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	card, err := s.store.GetCard(r.Context(), id)
	if err != nil {
		// spec §6: "get | 200 (body null if absent)"
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

type updateCardPriorityRequest struct {
	Priority float64 `json:"priority"`
}

func (s *Server) handleUpdateCardPriority(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req updateCardPriorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindInvalidPriority, "invalid request body", err))
		return
	}
	if req.Priority < 0 || req.Priority > 1 {
		writeError(w, r, herrors.Newf(herrors.KindInvalidPriority, "priority %v not in [0,1]", req.Priority))
		return
	}
	card, err := s.store.UpdateCardPriority(r.Context(), id, req.Priority)
	if err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindNotFound, "card", err))
		return
	}
	writeJSON(w, http.StatusOK, card)
}

type setCardSuspendedRequest struct {
	Suspend bool `json:"suspend"`
}

func (s *Server) handleSetCardSuspended(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req setCardSuspendedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindNotFound, "invalid request body", err))
		return
	}
	card, err := s.store.SetCardSuspended(r.Context(), id, req.Suspend, nowUTC())
	if err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindNotFound, "card", err))
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleListTagsForCard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := s.store.GetCard(r.Context(), id); err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindNotFound, "card", err))
		return
	}
	tags, err := s.store.ListTagsForCard(r.Context(), id)
	if err != nil {
		writeError(w, r, herrors.Database("list tags for card", err))
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleListReviewsForCard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := s.store.GetCard(r.Context(), id); err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindNotFound, "card", err))
		return
	}
	reviews, err := s.store.ListReviewsForCard(r.Context(), id)
	if err != nil {
		writeError(w, r, herrors.Database("list reviews for card", err))
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (s *Server) handlePreviewNextReviews(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	previews, err := s.reviews.PreviewNextReviews(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, previews)
}
