package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aegisops/guardpost/backend/internal/domain"
	"github.com/aegisops/guardpost/backend/internal/timeline"
)

// GetPropertyTimeline returns the full day view for a property: the
// shifts positioned on the selected day, their lane layout, the
// conflict and gap reports, calendar annotations and the guard color
// map. Query parameters: day (YYYY-MM-DD, defaults to today) and
// service (optional service id to scope lanes and enable gap
// analysis).
//
// The snapshot is cached in redis for a short TTL and invalidated on
// every shift or service mutation, so repeated calendar navigation
// does not recompute the analysis.
func (h *Handler) GetPropertyTimeline(w http.ResponseWriter, r *http.Request) {
	property := r.Context().Value(PropertyCtx).(*domain.Property)

	day := timeline.DayKeyOf(time.Now())
	if v := r.URL.Query().Get("day"); v != "" {
		if _, err := timeline.ParseDayKey(timeline.DayKey(v), time.Local); err != nil {
			h.badRequest(w, r, errors.New("day must be formatted as YYYY-MM-DD"))
			return
		}
		day = timeline.DayKey(v)
	}

	var serviceID *int64
	if v := r.URL.Query().Get("service"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.badRequest(w, r, errors.New("service must be an id"))
			return
		}
		serviceID = &id
	}

	cacheKey := timelineCacheKey(property.ID, day, serviceID)
	if cached, err := h.redisClient.Get(r.Context(), cacheKey).Result(); err == nil {
		h.successResponse(w, r, "timeline fetched", json.RawMessage(cached))
		return
	} else if !errors.Is(err, redis.Nil) {
		h.logInternalServerError(r, err)
	}

	// Conflicts must see every shift of every property: a guard
	// double-booked across two properties is still double-booked.
	shifts, err := h.repository.GetAllShifts()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	services, err := h.repository.GetServicesByProperty(property.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	guards, err := h.repository.GetAllGuards()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	sel := timeline.Selection{
		PropertyID: property.ID,
		Day:        day,
		ServiceID:  serviceID,
	}

	minGap := time.Duration(h.config.Timeline.MinGapMinutes) * time.Minute
	snapshot, err := timeline.BuildSnapshot(shifts, services, guards, sel, time.Local, minGap)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if encoded, err := json.Marshal(snapshot); err == nil {
		ttl := time.Duration(h.config.Timeline.CacheTTL) * time.Second
		if err := h.redisClient.Set(r.Context(), cacheKey, encoded, ttl).Err(); err != nil {
			h.logInternalServerError(r, err)
		}
	}

	h.successResponse(w, r, "timeline fetched", snapshot)
}

func timelineCacheKey(propertyID int64, day timeline.DayKey, serviceID *int64) string {
	scope := "all"
	if serviceID != nil {
		scope = strconv.FormatInt(*serviceID, 10)
	}
	return fmt.Sprintf("timeline:%d:%s:%s", propertyID, day, scope)
}

// invalidateTimelineCache drops every cached snapshot of a property.
// Failures are logged, never surfaced: the cache self-heals when the
// TTL runs out.
func (h *Handler) invalidateTimelineCache(r *http.Request, propertyID int64) {
	pattern := fmt.Sprintf("timeline:%d:*", propertyID)

	iter := h.redisClient.Scan(r.Context(), 0, pattern, 0).Iterator()
	for iter.Next(r.Context()) {
		if err := h.redisClient.Del(r.Context(), iter.Val()).Err(); err != nil {
			h.logInternalServerError(r, err)
		}
	}
	if err := iter.Err(); err != nil {
		h.logInternalServerError(r, err)
	}
}
