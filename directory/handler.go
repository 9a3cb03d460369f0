package directory

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

const maxRequestBody = 1 << 14

type heartbeatRequest struct {
	Players int `json:"players"`
}

type healthResponse struct {
	Status string `json:"status"`
	Relays int    `json:"relays"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewMux serves the directory API:
//
//	GET    /relays?region=r        list relays
//	POST   /relays                 register an Advert, returns the Relay
//	POST   /relays/{id}/heartbeat  refresh, body {"players": n}
//	DELETE /relays/{id}            deregister
//	GET    /health
func NewMux(reg *Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /relays", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, reg.List(r.URL.Query().Get("region")))
	})
	mux.HandleFunc("POST /relays", func(w http.ResponseWriter, r *http.Request) {
		var ad Advert
		if !readJSON(w, r, &ad) {
			return
		}
		rel, err := reg.Register(ad)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
			return
		}
		log.Printf("[directory] registered %q at %s (%s, %s)", rel.Name, rel.DialURL(), rel.Disconnect, rel.ID)
		writeJSON(w, http.StatusCreated, rel)
	})
	mux.HandleFunc("POST /relays/{id}/heartbeat", func(w http.ResponseWriter, r *http.Request) {
		var req heartbeatRequest
		if !readJSON(w, r, &req) {
			return
		}
		if !reg.Heartbeat(r.PathValue("id"), req.Players) {
			writeJSON(w, http.StatusNotFound, errorResponse{"unknown relay"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("DELETE /relays/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !reg.Remove(r.PathValue("id")) {
			writeJSON(w, http.StatusNotFound, errorResponse{"unknown relay"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Relays: reg.Len()})
	})
	return mux
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, errorResponse{"invalid json"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[directory] encode response: %v", err)
	}
}
