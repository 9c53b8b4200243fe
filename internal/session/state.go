package session

import (
	"github.com/google/uuid"

	"github.com/neokart/neokart-backend/pkg/enums"
)

const (
	// RecentlyViewedCap bounds the browsing trail kept per visitor.
	RecentlyViewedCap = 8
	// CompareCap bounds the compare tray; the oldest entry is evicted
	// when a fifth product is added.
	CompareCap = 4
)

// State is the typed per-visitor session bag stored as JSON in Redis.
type State struct {
	Theme          enums.Theme `json:"theme,omitempty"`
	CouponCode     string      `json:"coupon_code,omitempty"`
	RecentlyViewed []uuid.UUID `json:"recently_viewed,omitempty"`
	Compare        []uuid.UUID `json:"compare,omitempty"`
}

// PushRecent records a product view: dedupe, prepend, truncate. Most
// recent first.
func PushRecent(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids)+1)
	out = append(out, id)
	for _, existing := range ids {
		if existing == id {
			continue
		}
		out = append(out, existing)
	}
	if len(out) > RecentlyViewedCap {
		out = out[:RecentlyViewedCap]
	}
	return out
}

// AddCompare appends a product to the compare tray. The second return
// is false when the product was already present and nothing changed.
// At capacity the oldest entry is evicted to make room.
func AddCompare(ids []uuid.UUID, id uuid.UUID) ([]uuid.UUID, bool) {
	for _, existing := range ids {
		if existing == id {
			return ids, false
		}
	}
	out := append([]uuid.UUID{}, ids...)
	if len(out) >= CompareCap {
		out = out[len(out)-CompareCap+1:]
	}
	return append(out, id), true
}

// RemoveCompare drops a product from the tray. The second return is
// false when the product was not present.
func RemoveCompare(ids []uuid.UUID, id uuid.UUID) ([]uuid.UUID, bool) {
	out := make([]uuid.UUID, 0, len(ids))
	removed := false
	for _, existing := range ids {
		if existing == id {
			removed = true
			continue
		}
		out = append(out, existing)
	}
	return out, removed
}
