package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/services/auth"
	"github.com/mcoot/hvztracker/internal/storage"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidAPIKey      = "INVALID_API_KEY"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeNoActiveGame       = "NO_ACTIVE_GAME"
	CodeStatusNotFound     = "STATUS_NOT_FOUND"
	CodeTagTargetNotFound  = "TAG_TARGET_NOT_FOUND"
	CodeAntivirusNotFound  = "ANTIVIRUS_NOT_FOUND"
	CodeClanNotFound       = "CLAN_NOT_FOUND"
	CodeLinkCodeNotFound   = "LINK_CODE_NOT_FOUND"
	CodeMissionNotFound    = "MISSION_NOT_FOUND"
	CodeScoreboardNotFound = "SCOREBOARD_NOT_FOUND"
	CodeZombieIDNotFound   = "ZOMBIE_ID_NOT_FOUND"
	CodeDiscordIDNotFound  = "DISCORD_ID_NOT_FOUND"
	CodeAntivirusUsed      = "ANTIVIRUS_USED"
	CodeAntivirusExpired   = "ANTIVIRUS_EXPIRED"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeSelfTag            = "SELF_TAG"
	CodeDuplicateCode      = "DUPLICATE_CODE"
	CodeDuplicateClan      = "DUPLICATE_CLAN"
	CodeInvalidTeam        = "INVALID_TEAM"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeInvalidRole        = "INVALID_ROLE"
	CodeInvalidSortKey     = "INVALID_SORT_KEY"
	CodeEmptyName          = "EMPTY_NAME"
	CodeEmptyReport        = "EMPTY_REPORT"
	CodeEmptyDiscordID     = "EMPTY_DISCORD_ID"
	CodeMissingExpiry      = "MISSING_EXPIRY"
	CodeNotClanMember      = "NOT_CLAN_MEMBER"
	CodeAlreadyInClan      = "ALREADY_IN_CLAN"
	CodeConflict           = "CONFLICT"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status WriteError would use for err
func Status(err error) int {
	return toHTTPError(err).status
}

type mapping struct {
	err    error
	status int
	code   string
}

// Checked in order; the first match wins
var mappings = []mapping{
	// Lookup errors
	{model.ErrPlayerNotFound, http.StatusNotFound, CodePlayerNotFound},
	{model.ErrGameNotFound, http.StatusNotFound, CodeGameNotFound},
	{model.ErrNoActiveGame, http.StatusNotFound, CodeNoActiveGame},
	{model.ErrStatusNotFound, http.StatusNotFound, CodeStatusNotFound},
	{model.ErrTagTargetNotFound, http.StatusNotFound, CodeTagTargetNotFound},
	{model.ErrAntivirusNotFound, http.StatusNotFound, CodeAntivirusNotFound},
	{model.ErrClanNotFound, http.StatusNotFound, CodeClanNotFound},
	{model.ErrLinkCodeNotFound, http.StatusNotFound, CodeLinkCodeNotFound},
	{model.ErrMissionNotFound, http.StatusNotFound, CodeMissionNotFound},
	{model.ErrScoreboardNotFound, http.StatusNotFound, CodeScoreboardNotFound},
	{model.ErrZombieIDNotFound, http.StatusNotFound, CodeZombieIDNotFound},
	{model.ErrDiscordIDNotFound, http.StatusNotFound, CodeDiscordIDNotFound},

	// Antivirus state
	{model.ErrAntivirusUsed, http.StatusConflict, CodeAntivirusUsed},
	{model.ErrAntivirusExpired, http.StatusGone, CodeAntivirusExpired},

	// Transitions
	{model.ErrInvalidTransition, http.StatusConflict, CodeInvalidTransition},
	{model.ErrSelfTag, http.StatusBadRequest, CodeSelfTag},

	// Uniqueness
	{model.ErrDuplicateCode, http.StatusConflict, CodeDuplicateCode},
	{model.ErrDuplicateClan, http.StatusConflict, CodeDuplicateClan},
	{model.ErrAlreadyInClan, http.StatusConflict, CodeAlreadyInClan},
	{model.ErrNotClanMember, http.StatusConflict, CodeNotClanMember},

	// Validation
	{model.ErrInvalidTeam, http.StatusBadRequest, CodeInvalidTeam},
	{model.ErrInvalidStatus, http.StatusBadRequest, CodeInvalidStatus},
	{model.ErrInvalidRole, http.StatusBadRequest, CodeInvalidRole},
	{model.ErrInvalidSortKey, http.StatusBadRequest, CodeInvalidSortKey},
	{model.ErrEmptyName, http.StatusBadRequest, CodeEmptyName},
	{model.ErrEmptyReport, http.StatusBadRequest, CodeEmptyReport},
	{model.ErrEmptyDiscord, http.StatusBadRequest, CodeEmptyDiscordID},
	{model.ErrMissingExpiry, http.StatusBadRequest, CodeMissingExpiry},

	// Auth
	{auth.ErrInvalidAPIKey, http.StatusUnauthorized, CodeInvalidAPIKey},
	{auth.ErrMalformedAPIKey, http.StatusUnauthorized, CodeInvalidAPIKey},
	{model.ErrAPIKeyNotFound, http.StatusUnauthorized, CodeInvalidAPIKey},

	// Storage
	{storage.ErrConflict, http.StatusServiceUnavailable, CodeConflict},
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return &httpError{m.status, APIError{m.code, message(m.err)}}
		}
	}
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// message capitalises the sentinel text for display
func message(err error) string {
	s := err.Error()
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "API key required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
