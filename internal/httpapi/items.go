package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/Talia-12/hippocampus/internal/herrors"
	"github.com/Talia-12/hippocampus/internal/jsonvalue"
	"github.com/Talia-12/hippocampus/internal/types"
)

type createItemRequest struct {
	ItemTypeID string           `json:"item_type_id"`
	Title      string           `json:"title"`
	ItemData   *json.RawMessage `json:"item_data,omitempty"`
	Priority   *float64         `json:"priority,omitempty"`
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindInvalidItemType, "invalid request body", err))
		return
	}
	itemTypeID, err := uuid.Parse(req.ItemTypeID)
	if err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindNotFound, "item_type_id", err))
		return
	}
	if req.Priority != nil && (*req.Priority < 0 || *req.Priority > 1) {
		writeError(w, r, herrors.Newf(herrors.KindInvalidPriority, "priority %v not in [0,1]", *req.Priority))
		return
	}

	var itemData jsonvalue.Value
	if req.ItemData != nil {
		if err := itemData.UnmarshalJSON(*req.ItemData); err != nil {
			writeError(w, r, herrors.Wrap(herrors.KindInvalidItemType, "invalid item_data", err))
			return
		}
	}

	item, cards, err := s.items.CreateItem(r.Context(), itemTypeID, req.Title, itemData)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if req.Priority != nil {
		for i := range cards {
			updated, err := s.store.UpdateCardPriority(r.Context(), cards[i].ID, *req.Priority)
			if err != nil {
				writeError(w, r, herrors.Database("set initial card priority", err))
				return
			}
			cards[i] = *updated
		}
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := s.queryEngine.FindItems(r.Context(), filter)
	if err != nil {
		writeError(w, r, herrors.Database("list items", err))
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	item, err := s.store.GetItem(r.Context(), id)
	if err != nil {
		// spec §6: "get | 200 (body null if absent)"
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type updateItemRequest struct {
	Title    *string          `json:"title,omitempty"`
	ItemData *json.RawMessage `json:"item_data,omitempty"`
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindInvalidItemType, "invalid request body", err))
		return
	}

	var itemDataPtr *jsonvalue.Value
	if req.ItemData != nil {
		var v jsonvalue.Value
		if err := v.UnmarshalJSON(*req.ItemData); err != nil {
			writeError(w, r, herrors.Wrap(herrors.KindInvalidItemType, "invalid item_data", err))
			return
		}
		itemDataPtr = &v
	}

	item, err := s.items.UpdateItem(r.Context(), id, req.Title, itemDataPtr)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.items.DeleteItem(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createCardRequest struct {
	CardIndex int     `json:"card_index"`
	Priority  float64 `json:"priority"`
}

func (s *Server) handleCreateCardForItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := s.store.GetItem(r.Context(), itemID); err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindNotFound, "item", err))
		return
	}

	var req createCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindInvalidPriority, "invalid request body", err))
		return
	}
	if req.Priority < 0 || req.Priority > 1 {
		writeError(w, r, herrors.Newf(herrors.KindInvalidPriority, "priority %v not in [0,1]", req.Priority))
		return
	}

	card := &types.Card{
		ID:         uuid.New(),
		ItemID:     itemID,
		CardIndex:  req.CardIndex,
		NextReview: nowUTC(),
		Priority:   req.Priority,
	}
	if err := s.store.CreateCard(r.Context(), card); err != nil {
		writeError(w, r, herrors.Database("create card", err))
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleListCardsForItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := s.store.GetItem(r.Context(), id); err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindNotFound, "item", err))
		return
	}
	cards, err := s.store.ListCardsByItem(r.Context(), id)
	if err != nil {
		writeError(w, r, herrors.Database("list cards for item", err))
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleListTagsForItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := s.store.GetItem(r.Context(), id); err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindNotFound, "item", err))
		return
	}
	tags, err := s.store.ListTagsForItem(r.Context(), id)
	if err != nil {
		writeError(w, r, herrors.Database("list tags for item", err))
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleAttachTag(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	tagID, err := parseID(r, "tag_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := s.store.GetItem(r.Context(), itemID); err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindNotFound, "item", err))
		return
	}
	if err := s.store.AttachTag(r.Context(), itemID, tagID); err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindNotFound, "tag", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDetachTag(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	tagID, err := parseID(r, "tag_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.store.DetachTag(r.Context(), itemID, tagID); err != nil {
		writeError(w, r, herrors.Wrap(herrors.KindNotFound, "tag association", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
