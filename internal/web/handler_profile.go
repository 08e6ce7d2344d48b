package web

import (
	"net/http"

	"github.com/vbonduro/drinklog/internal/domain"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Profile())
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p domain.Profile
	if err := decodeJSON(w, r, &p); err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.ledger.UpdateProfile(r.Context(), p); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.ledger.Profile())
}
