package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/matt-g-everett/motiontx/play"
)

// A Server exposes playback control over HTTP.
type Server struct {
	driver *play.Driver
	addr   string
}

// NewServer creates a Server controlling the given driver.
func NewServer(driver *play.Driver, addr string) *Server {
	s := new(Server)
	s.driver = driver
	s.addr = addr
	return s
}

// Serve listens until the process exits.
func (s *Server) Serve() error {
	log.Println("Listening...")
	return http.ListenAndServe(s.addr, s.routes())
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/play", s.handlePlay)
	mux.HandleFunc("/pause", s.handlePause)
	mux.HandleFunc("/seek", s.handleSeek)
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.driver.Play()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.driver.Pause()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	t, err := strconv.ParseFloat(r.URL.Query().Get("t"), 64)
	if err != nil || t < 0 {
		http.Error(w, "invalid time", http.StatusBadRequest)
		return
	}
	s.driver.Seek(t)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := struct {
		State   string  `json:"state"`
		Elapsed float64 `json:"elapsed"`
	}{
		State:   s.driver.State().String(),
		Elapsed: s.driver.Elapsed(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
