package web

import (
	"net/http"
	"time"

	"github.com/vbonduro/drinklog/internal/domain"
)

type entryRequest struct {
	ID                string          `json:"id"`
	Category          domain.Category `json:"category"`
	Name              string          `json:"name"`
	Amount            float64         `json:"amount"`
	Unit              string          `json:"unit"`
	Timestamp         *time.Time      `json:"timestamp"`
	AlcoholPercentage *float64        `json:"alcohol_percentage"`
	CaffeineMg        *float64        `json:"caffeine_mg"`
}

func (req entryRequest) entry() domain.Entry {
	e := domain.Entry{
		ID:                req.ID,
		Category:          req.Category,
		Name:              req.Name,
		Amount:            req.Amount,
		Unit:              req.Unit,
		AlcoholPercentage: req.AlcoholPercentage,
		CaffeineMg:        req.CaffeineMg,
	}
	if req.Timestamp != nil {
		e.Timestamp = *req.Timestamp
	}
	return e
}

type timestampRequest struct {
	Timestamp time.Time `json:"timestamp"`
}

type entriesResponse struct {
	Entries []domain.Entry `json:"entries"`
}

// parseCategory reads the optional category query parameter.
func parseCategory(r *http.Request) (domain.Category, bool) {
	c := domain.Category(r.URL.Query().Get("category"))
	if c == "" {
		return "", true
	}
	return c, c.Valid()
}

// parseRange reads the optional from/to query parameters (RFC 3339). A missing
// bound leaves that side open.
func parseRange(r *http.Request) (*domain.TimeRange, error) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" && to == "" {
		return nil, nil
	}

	rng := &domain.TimeRange{To: time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)}
	if from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return nil, err
		}
		rng.From = t
	}
	if to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return nil, err
		}
		rng.To = t
	}
	return rng, nil
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	category, ok := parseCategory(r)
	if !ok {
		badRequest(w, "unknown category")
		return
	}
	within, err := parseRange(r)
	if err != nil {
		badRequest(w, "from and to must be RFC 3339 timestamps")
		return
	}

	var entries []domain.Entry
	if r.URL.Query().Get("today") == "true" {
		entries = s.ledger.Today(category)
	} else {
		entries = s.ledger.Query(category, within)
	}
	writeJSON(w, http.StatusOK, entriesResponse{Entries: entries})
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	e, err := s.ledger.Add(r.Context(), req.entry())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	e, err := s.ledger.Entry(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.Remove(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveEntries(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(r.URL.Query().Get("category"))
	if category == "" {
		badRequest(w, "category required")
		return
	}

	n, err := s.ledger.RemoveAll(r.Context(), category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": n})
}

func (s *Server) handleUpdateTimestamp(w http.ResponseWriter, r *http.Request) {
	var req timestampRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	e, err := s.ledger.UpdateTimestamp(r.Context(), r.PathValue("id"), req.Timestamp)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}
