package shared

import (
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// ProfileID
// ─────────────────────────────────────────────────────────────────────────────

// ProfileID is the opaque unique identifier of a roommate profile.
type ProfileID string

// IsValid checks that the ID is non-empty.
func (p ProfileID) IsValid() bool {
	return strings.TrimSpace(string(p)) != ""
}

// String returns the string representation of the ID.
func (p ProfileID) String() string {
	return string(p)
}

// IsEmpty checks if the ID is empty.
func (p ProfileID) IsEmpty() bool {
	return string(p) == ""
}

// NewProfileID validates and creates a ProfileID from a raw string.
func NewProfileID(id string) (ProfileID, error) {
	pid := ProfileID(strings.TrimSpace(id))
	if !pid.IsValid() {
		return "", ErrInvalidID
	}
	return pid, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Pagination
// ─────────────────────────────────────────────────────────────────────────────

// PageRequest holds normalized pagination input.
type PageRequest struct {
	// Page is 1-based.
	Page int

	// Limit is the page size.
	Limit int
}

// NewPageRequest normalizes page/limit against the given defaults and cap.
func NewPageRequest(page, limit, defaultLimit, maxLimit int) PageRequest {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// Offset returns the number of records to skip.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageInfo describes the position of a page within the full result set.
type PageInfo struct {
	CurrentPage  int  `json:"current_page"`
	TotalPages   int  `json:"total_pages"`
	TotalResults int  `json:"total_results"`
	HasNext      bool `json:"has_next"`
	HasPrev      bool `json:"has_prev"`
}

// NewPageInfo computes pagination metadata for a total result count.
// totalPages is ceil(total/limit); a zero total yields zero pages.
func NewPageInfo(req PageRequest, total int) PageInfo {
	totalPages := 0
	if total > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}
	return PageInfo{
		CurrentPage:  req.Page,
		TotalPages:   totalPages,
		TotalResults: total,
		HasNext:      req.Page*req.Limit < total,
		HasPrev:      req.Page > 1,
	}
}
