package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/roomie-hub/roomie-hub/internal/application/command"
	"github.com/roomie-hub/roomie-hub/internal/application/query"
	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
	"github.com/roomie-hub/roomie-hub/internal/metrics"
	"github.com/roomie-hub/roomie-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]string, len(s.deps.Health))
	healthy := true
	for name, pinger := range s.deps.Health {
		if err := pinger.Ping(r.Context()); err != nil {
			components[name] = "down"
			healthy = false
			continue
		}
		components[name] = "up"
	}

	status, label := http.StatusOK, "healthy"
	if !healthy {
		status, label = http.StatusServiceUnavailable, "degraded"
	}
	writeJSON(w, status, map[string]interface{}{
		"status":     label,
		"components": components,
		"time":       time.Now().UTC(),
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// ACCOUNTS
// ══════════════════════════════════════════════════════════════════════════════

type registerRequest struct {
	Email       string               `json:"email"`
	Password    string               `json:"password"`
	Name        string               `json:"name"`
	Age         int                  `json:"age"`
	Gender      profile.Gender       `json:"gender"`
	Bio         string               `json:"bio"`
	Avatar      string               `json:"avatar"`
	Location    profile.Location     `json:"location"`
	Preferences *profile.Preferences `json:"preferences"`
	RoomDetails *profile.RoomDetails `json:"room_details"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.deps.Register.Handle(r.Context(), command.RegisterProfileCommand{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		Age:         req.Age,
		Gender:      req.Gender,
		Bio:         req.Bio,
		Avatar:      req.Avatar,
		Location:    req.Location,
		Preferences: req.Preferences,
		RoomDetails: req.RoomDetails,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ProfileID string `json:"profile_id"`
	Name      string `json:"name"`
	Token     string `json:"token,omitempty"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.deps.Authenticate.Handle(r.Context(), command.AuthenticateCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := loginResponse{ProfileID: result.ProfileID, Name: result.Name}
	if s.deps.Tokens != nil {
		token, err := s.deps.Tokens.IssueToken(r.Context(), result.ProfileID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		resp.Token = token
	}
	writeJSON(w, http.StatusOK, resp)
}

// ══════════════════════════════════════════════════════════════════════════════
// MATCHING
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleFindMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, ok := queryInt(w, q.Get("page"), "page")
	if !ok {
		return
	}
	limit, ok := queryInt(w, q.Get("limit"), "limit")
	if !ok {
		return
	}
	minRent, ok := queryInt(w, q.Get("minRent"), "minRent")
	if !ok {
		return
	}
	maxRent, ok := queryInt(w, q.Get("maxRent"), "maxRent")
	if !ok {
		return
	}

	start := time.Now()
	result, err := s.deps.FindMatches.Handle(r.Context(), query.FindMatchesQuery{
		ViewerID: viewerIDFrom(r.Context()),
		City:     q.Get("city"),
		State:    q.Get("state"),
		MinRent:  minRent,
		MaxRent:  maxRent,
		Gender:   profile.GenderPreference(q.Get("gender")),
		Food:     profile.FoodPreference(q.Get("foodPreference")),
		Duration: profile.Duration(q.Get("duration")),
		SortBy:   profile.SortKey(q.Get("sortBy")),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	metrics.MatchQueryDuration.Observe(time.Since(start).Seconds())
	metrics.MatchResultsReturned.Observe(float64(len(result.Matches)))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.GetProfile.Handle(r.Context(), query.GetProfileQuery{
		ProfileID: r.PathValue("id"),
		ViewerID:  viewerIDFrom(r.Context()),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleToggleSave(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := s.requireViewer(w, r)
	if !ok {
		return
	}

	result, err := s.deps.ToggleSave.Handle(r.Context(), command.ToggleSaveCommand{
		OwnerID:  viewerID,
		TargetID: r.PathValue("id"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListSaved(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := s.requireViewer(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, ok := queryInt(w, q.Get("page"), "page")
	if !ok {
		return
	}
	limit, ok := queryInt(w, q.Get("limit"), "limit")
	if !ok {
		return
	}

	result, err := s.deps.ListSaved.Handle(r.Context(), query.ListSavedQuery{
		ViewerID: viewerID,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSuggestLocations(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.SuggestLocations.Handle(r.Context(), query.SuggestLocationsQuery{
		Q:    r.URL.Query().Get("q"),
		Kind: query.LocationKind(r.URL.Query().Get("type")),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// CURRENT USER
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r.URL.Query().Get("limit"), "limit")
	if !ok {
		return
	}

	result, err := s.deps.SearchProfiles.Handle(r.Context(), query.SearchProfilesQuery{
		Q:        r.URL.Query().Get("q"),
		ViewerID: viewerIDFrom(r.Context()),
		Limit:    limit,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.GetStats.Handle(r.Context(), query.GetStatsQuery{
		ViewerID: viewerIDFrom(r.Context()),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := s.requireViewer(w, r)
	if !ok {
		return
	}

	var req struct {
		Name     *string           `json:"name"`
		Age      *int              `json:"age"`
		Bio      *string           `json:"bio"`
		Avatar   *string           `json:"avatar"`
		Location *profile.Location `json:"location"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.deps.UpdateProfile.Handle(r.Context(), command.UpdateProfileCommand{
		ProfileID: viewerID,
		Name:      req.Name,
		Age:       req.Age,
		Bio:       req.Bio,
		Avatar:    req.Avatar,
		Location:  req.Location,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := s.requireViewer(w, r)
	if !ok {
		return
	}

	var prefs profile.Preferences
	if !decodeBody(w, r, &prefs) {
		return
	}

	result, err := s.deps.UpdatePreferences.Handle(r.Context(), command.UpdatePreferencesCommand{
		ProfileID:   viewerID,
		Preferences: prefs,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleUpdateRoomDetails(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := s.requireViewer(w, r)
	if !ok {
		return
	}

	var req struct {
		profile.RoomDetails
		Remove bool `json:"remove"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.deps.UpdateRoomDetails.Handle(r.Context(), command.UpdateRoomDetailsCommand{
		ProfileID:   viewerID,
		RoomDetails: req.RoomDetails,
		Remove:      req.Remove,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := s.requireViewer(w, r)
	if !ok {
		return
	}

	result, err := s.deps.Deactivate.Handle(r.Context(), command.DeactivateProfileCommand{
		ProfileID: viewerID,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// requireViewer writes 401 and returns false when the request is anonymous.
func (s *Server) requireViewer(w http.ResponseWriter, r *http.Request) (string, bool) {
	viewerID := viewerIDFrom(r.Context())
	if viewerID == "" {
		writeJSONError(w, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return viewerID, true
}

// decodeBody parses the JSON body, writing 400 on malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// queryInt parses an optional integer query parameter, writing 400 when the
// value is present but not a number.
func queryInt(w http.ResponseWriter, raw, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid "+name+" parameter")
		return 0, false
	}
	return n, true
}

// writeError maps domain errors to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case shared.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case shared.IsAlreadyExists(err):
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, shared.ErrUnauthorized):
		writeJSONError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, shared.ErrForbidden):
		writeJSONError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, shared.ErrInvalidState):
		writeJSONError(w, http.StatusConflict, err.Error())
	case shared.IsValidation(err) || errors.Is(err, shared.ErrInvalidEntity):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", logger.Err(err))
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}
