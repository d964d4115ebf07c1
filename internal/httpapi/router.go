// Package httpapi exposes the portfolio terminal as a JSON API for browser
// front ends. Each client creates a session and posts the lines its user
// types; responses carry the session transcript and any URLs to open.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/fakeyudi/termfolio/internal/projects"
	"github.com/fakeyudi/termfolio/internal/session"
	"github.com/fakeyudi/termfolio/internal/shell"
	"github.com/fakeyudi/termfolio/internal/transcript"
)

// maxCommandBytes bounds a command request body.
const maxCommandBytes = 4 << 10

// API holds the handlers' dependencies.
type API struct {
	Sessions *session.Store
	Projects shell.ProjectSource
	Log      *logrus.Entry
}

// NewRouter wires the API routes.
func NewRouter(a *API) *mux.Router {
	if a.Log == nil {
		a.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	r := mux.NewRouter()
	r.HandleFunc("/health", a.health).Methods("GET")
	r.HandleFunc("/api/projects", a.listProjects).Methods("GET")
	r.HandleFunc("/api/sessions", a.createSession).Methods("POST")
	r.HandleFunc("/api/sessions/{id}", a.getSession).Methods("GET")
	r.HandleFunc("/api/sessions/{id}", a.deleteSession).Methods("DELETE")
	r.HandleFunc("/api/sessions/{id}/commands", a.runCommand).Methods("POST")
	r.HandleFunc("/api/sessions/{id}/history", a.sessionHistory).Methods("GET")
	r.Use(a.logRequests)
	return r
}

// sessionResponse is a transcript tagged with its session.
type sessionResponse struct {
	ID     string `json:"id"`
	Closed bool   `json:"closed,omitempty"`
	*transcript.Transcript
}

type projectsResponse struct {
	Loaded   bool               `json:"loaded"`
	Projects []projects.Project `json:"projects"`
}

type historyResponse struct {
	ID      string   `json:"id"`
	History []string `json:"history"`
}

type commandRequest struct {
	Command string `json:"command"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"projects_loaded": a.Projects != nil && a.Projects.Loaded(),
		"sessions":        a.Sessions.Len(),
	})
}

func (a *API) listProjects(w http.ResponseWriter, r *http.Request) {
	resp := projectsResponse{Projects: []projects.Project{}}
	if a.Projects != nil && a.Projects.Loaded() {
		resp.Loaded = true
		resp.Projects = a.Projects.Projects()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) createSession(w http.ResponseWriter, r *http.Request) {
	s := a.Sessions.Create()
	a.Log.WithField("session", s.ID).Info("session created")
	writeJSON(w, http.StatusCreated, sessionResponse{ID: s.ID, Transcript: s.Snapshot()})
}

func (a *API) getSession(w http.ResponseWriter, r *http.Request) {
	s, ok := a.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: s.ID, Transcript: s.Snapshot()})
}

// sessionHistory lists the lines submitted in a session, oldest first, so a
// front end can restore up/down recall after a reload.
func (a *API) sessionHistory(w http.ResponseWriter, r *http.Request) {
	s, ok := a.lookup(w, r)
	if !ok {
		return
	}
	h := s.History()
	if h == nil {
		h = []string{}
	}
	writeJSON(w, http.StatusOK, historyResponse{ID: s.ID, History: h})
}

func (a *API) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := a.Sessions.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) runCommand(w http.ResponseWriter, r *http.Request) {
	s, ok := a.lookup(w, r)
	if !ok {
		return
	}
	var req commandRequest
	body := http.MaxBytesReader(w, r.Body, maxCommandBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, errors.New("body must be {\"command\": \"...\"}"))
		return
	}
	if strings.ContainsAny(req.Command, "\r\n") {
		writeError(w, http.StatusBadRequest, errors.New("command must be a single line"))
		return
	}

	tr := s.Run(req.Command, a.Sessions.Now())
	resp := sessionResponse{ID: s.ID, Transcript: tr}
	if s.Closed() {
		resp.Closed = true
		_ = a.Sessions.Delete(s.ID)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := a.Sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return s, true
}

func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.Log.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path}).Debug("request")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
