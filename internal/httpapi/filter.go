package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Talia-12/hippocampus/internal/herrors"
	"github.com/Talia-12/hippocampus/internal/types"
)

// parseFilter reads spec §4.2's filter options from the request's query
// string for GET /items and GET /cards.
func parseFilter(r *http.Request) (types.Filter, error) {
	q := r.URL.Query()
	var f types.Filter

	if raw := q.Get("item_type_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, herrors.Wrap(herrors.KindNotFound, "item_type_id", err)
		}
		f.ItemTypeID = &id
	}

	if raw := q.Get("tag_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				return f, herrors.Wrap(herrors.KindNotFound, "tag_ids", err)
			}
			f.TagIDs = append(f.TagIDs, id)
		}
	}

	if raw := q.Get("next_review_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, herrors.Wrap(herrors.KindInvalidPriority, "next_review_before", err)
		}
		f.NextReviewBefore = &t
	}
	if raw := q.Get("last_review_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, herrors.Wrap(herrors.KindInvalidPriority, "last_review_after", err)
		}
		f.LastReviewAfter = &t
	}
	if raw := q.Get("suspended_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, herrors.Wrap(herrors.KindInvalidPriority, "suspended_after", err)
		}
		f.SuspendedAfter = &t
	}
	if raw := q.Get("suspended_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, herrors.Wrap(herrors.KindInvalidPriority, "suspended_before", err)
		}
		f.SuspendedBefore = &t
	}

	switch strings.ToLower(q.Get("suspended_filter")) {
	case "include":
		f.SuspendedFilter = types.SuspendedInclude
	case "only":
		f.SuspendedFilter = types.SuspendedOnly
	case "exclude", "":
		f.SuspendedFilter = types.SuspendedExclude
	default:
		return f, herrors.Newf(herrors.KindInvalidPriority, "unknown suspended_filter %q", q.Get("suspended_filter"))
	}

	return f, nil
}
