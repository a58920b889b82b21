package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Talia-12/hippocampus/internal/herrors"
)

func parseID(r *http.Request, pathKey string) (uuid.UUID, error) {
	raw := r.PathValue(pathKey)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.UUID{}, herrors.Wrap(herrors.KindNotFound, "malformed id", err)
	}
	return id, nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
