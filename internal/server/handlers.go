package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/talent-matcher/internal/llm"
	"github.com/jonathan/talent-matcher/internal/matching"
	"github.com/jonathan/talent-matcher/internal/progress"
)

// matchRequest is the optional JSON body accepted by the match endpoints.
type matchRequest struct {
	Model string `json:"model,omitempty"` // lite, standard or advanced
}

// roleID parses the {id} path segment. Returns 0 and writes the error
// response when the segment is not a positive integer.
func (s *Server) roleID(w http.ResponseWriter, r *http.Request) int {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		s.errorResponse(w, http.StatusBadRequest, "invalid role id")
		return 0
	}
	return id
}

// matchOptions assembles the matching options shared by both match handlers.
func (s *Server) matchOptions(roleID int, req matchRequest) (matching.Options, error) {
	tier := s.tier
	if req.Model != "" {
		switch req.Model {
		case "lite":
			tier = llm.TierLite
		case "standard":
			tier = llm.TierStandard
		case "advanced":
			tier = llm.TierAdvanced
		default:
			return matching.Options{}, errors.New("model must be lite, standard or advanced")
		}
	}

	return matching.Options{
		RoleID: roleID,
		Roles:  s.store,
		Store:  s.store,
		Model:  s.model,
		Tier:   tier,
	}, nil
}

// decodeMatchRequest reads the optional request body. An empty body is valid.
func decodeMatchRequest(r *http.Request) (matchRequest, error) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		return req, errors.New("invalid JSON body")
	}
	return req, nil
}

// handleGetRole returns the role snapshot the matcher would hand the model.
func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	id := s.roleID(w, r)
	if id == 0 {
		return
	}

	role, err := s.store.RoleInformationByID(r.Context(), id)
	if err != nil {
		log.Printf("[server] failed to load role %d: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to load role")
		return
	}
	if role == nil {
		s.errorResponse(w, http.StatusNotFound, "role not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, role)
}

// handleMatch runs a candidate search synchronously and returns the terminal
// result as a single JSON document.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	id := s.roleID(w, r)
	if id == 0 {
		return
	}

	req, err := decodeMatchRequest(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	opts, err := s.matchOptions(id, req)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := matching.Run(r.Context(), opts)
	if err != nil {
		log.Printf("[server] match for role %d failed: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleMatchStream runs a candidate search while streaming progress events
// over SSE. The terminal result rides the stream as a result event, followed
// by a final complete status.
func (s *Server) handleMatchStream(w http.ResponseWriter, r *http.Request) {
	id := s.roleID(w, r)
	if id == 0 {
		return
	}

	req, err := decodeMatchRequest(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	opts, err := s.matchOptions(id, req)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts.OnProgress = func(e progress.Event) {
		if err := sse.WriteProgress(e); err != nil {
			// Client gone; the search keeps running so persistence completes.
			log.Printf("[server] dropping progress event: %v", err)
		}
	}

	if _, err := matching.Run(r.Context(), opts); err != nil {
		log.Printf("[server] match stream for role %d failed: %v", id, err)
		sse.WriteError(err.Error())
	}
}
