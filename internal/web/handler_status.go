package web

import (
	"net/http"

	"github.com/vbonduro/drinklog/internal/service"
)

type statusResponse struct {
	Alcohol  service.AlcoholStatus  `json:"alcohol"`
	Caffeine service.CaffeineStatus `json:"caffeine"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Alcohol:  s.ledger.AlcoholStatus(),
		Caffeine: s.ledger.CaffeineStatus(),
	})
}

func (s *Server) handleAlcoholStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.AlcoholStatus())
}

func (s *Server) handleCaffeineStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.CaffeineStatus())
}
