package web

import (
	"net/http"
	"time"

	"github.com/vbonduro/drinklog/internal/domain"
)

type catalogResponse struct {
	Source string                `json:"source"`
	Drinks []domain.CatalogDrink `json:"drinks"`
}

type refreshResponse struct {
	Source   string            `json:"source"`
	Drinks   int               `json:"drinks"`
	Failures map[string]string `json:"failures,omitempty"`
}

type logDrinkRequest struct {
	Name      string     `json:"name"`
	Timestamp *time.Time `json:"timestamp"`
}

func (s *Server) handleListCatalog(w http.ResponseWriter, r *http.Request) {
	category, ok := parseCategory(r)
	if !ok {
		badRequest(w, "unknown category")
		return
	}
	writeJSON(w, http.StatusOK, catalogResponse{
		Source: s.catalog.Source(),
		Drinks: s.catalog.Drinks(category),
	})
}

func (s *Server) handleRefreshCatalog(w http.ResponseWriter, r *http.Request) {
	res, err := s.catalog.Refresh(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := refreshResponse{Source: res.Source, Drinks: len(res.Drinks)}
	if len(res.Trail) > 0 {
		resp.Failures = make(map[string]string, len(res.Trail))
		for _, f := range res.Trail {
			resp.Failures[f.Provider] = f.Err.Error()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClearCatalogCache(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.ClearCache(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleLogCatalogDrink logs the catalog drink with the given name as a new
// entry.
func (s *Server) handleLogCatalogDrink(w http.ResponseWriter, r *http.Request) {
	var req logDrinkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	drink, err := s.catalog.Lookup(req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	e := drink.ToEntry()
	if req.Timestamp != nil {
		e.Timestamp = *req.Timestamp
	}
	e, err = s.ledger.Add(r.Context(), e)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}
