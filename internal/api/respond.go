package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	apperrors "github.com/arborlab/phylograph/pkg/errors"
	"github.com/arborlab/phylograph/pkg/graph"
	"github.com/arborlab/phylograph/pkg/store"
)

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Error string         `json:"error"`
	Code  apperrors.Code `json:"code"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)

	var rle *apperrors.RateLimitedError
	if errors.As(err, &rle) && rle.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(rle.RetryAfter))
	}

	s.respondJSON(w, status, errorResponse{
		Error: apperrors.UserMessage(err),
		Code:  code,
	})
}

// statusFor maps application errors to HTTP status codes.
func statusFor(err error) (int, apperrors.Code) {
	var rle *apperrors.RateLimitedError
	if errors.As(err, &rle) {
		return http.StatusTooManyRequests, apperrors.ErrCodeRateLimited
	}
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound, apperrors.ErrCodeGraphNotFound
	}

	switch code := apperrors.GetCode(err); code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidStyle, apperrors.ErrCodeInvalidDirection,
		apperrors.ErrCodeInvalidNewick, apperrors.ErrCodeInvalidGraph,
		apperrors.ErrCodeInvalidName:
		return http.StatusBadRequest, code
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeGraphNotFound, apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound, code
	case apperrors.ErrCodeRateLimited:
		return http.StatusTooManyRequests, code
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, code
	case apperrors.ErrCodeNetwork:
		return http.StatusBadGateway, code
	default:
		return http.StatusInternalServerError, apperrors.ErrCodeInternal
	}
}

// contentTypeFor returns the response content type for a render format.
func contentTypeFor(format string) string {
	switch format {
	case graph.FormatSVG:
		return "image/svg+xml"
	case graph.FormatPNG:
		return "image/png"
	case graph.FormatJSON:
		return "application/json"
	case graph.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "text/plain; charset=utf-8"
	}
}
