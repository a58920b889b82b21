// Package priority supplies a deterministic "daily shuffle" generator for
// a card's priority_offset (spec §4.6). The core leaves this policy to
// "the surrounding system"; this is that system's concrete, swappable
// implementation — seeded by card ID and calendar day so the same card
// gets the same offset all day, and a different one the next.
package priority

import (
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// maxOffset bounds the shuffle so it can perturb but never dominate the
// stored priority; effective priority is still clamped to [0,1] at the
// point of use regardless (types.Card.EffectivePriority).
const maxOffset = 0.15

// DailyShuffle returns a deterministic value in [-maxOffset, maxOffset]
// for cardID on the calendar day of day (UTC), stable across process
// restarts and repeated calls within the same day.
func DailyShuffle(cardID uuid.UUID, day time.Time) float64 {
	h := fnv.New64a()
	_, _ = h.Write(cardID[:])
	dayStr := day.UTC().Format("2006-01-02")
	_, _ = h.Write([]byte(dayStr))
	seed := int64(h.Sum64())

	r := rand.New(rand.NewSource(seed))
	return (r.Float64()*2 - 1) * maxOffset
}
