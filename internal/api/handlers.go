// Package api exposes HTTP handlers for the signup service.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"example.com/signup/internal/domain"
	"example.com/signup/internal/observability"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux. staticDir is served under
// /static/ and the root path redirects into it.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	mux.HandleFunc("/", root)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	mux.HandleFunc("/activities", h.listActivities)
	mux.HandleFunc("/activities/", h.rosterAction)
	mux.HandleFunc("/healthz", healthz)
}

// root redirects to the landing page. ServeMux routes every unmatched path
// here, so anything but "/" itself is a 404.
func root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")
		return
	}

	activities, err := h.service.ListActivities(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make(map[string]ActivityView, len(activities))
	for name, activity := range activities {
		resp[name] = toActivityView(activity)
	}
	writeJSON(w, http.StatusOK, resp)
}

// rosterAction dispatches /activities/{name}/signup and
// /activities/{name}/unregister. Activity names may contain spaces, so the
// action is split off the final path segment.
func (h *Handler) rosterAction(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/activities/")
	idx := strings.LastIndex(rest, "/")
	if idx <= 0 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	name, action := rest[:idx], rest[idx+1:]

	switch {
	case action == "signup" && r.Method == http.MethodPost:
		h.signup(w, r, name)
	case action == "unregister" && r.Method == http.MethodDelete:
		h.unregister(w, r, name)
	case action == "signup" || action == "unregister":
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

// participantEmail pulls the email query parameter. The format is not
// validated; an email is an opaque identifier here.
func participantEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	email := r.URL.Query().Get("email")
	if strings.TrimSpace(email) == "" {
		observability.RecordRejected("missing_email")
		writeError(w, http.StatusBadRequest, "missing email parameter")
		return "", false
	}
	return email, true
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request, name string) {
	email, ok := participantEmail(w, r)
	if !ok {
		return
	}
	if err := h.service.Signup(r.Context(), name, email); err != nil {
		writeRosterError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", email, name),
	})
}

func (h *Handler) unregister(w http.ResponseWriter, r *http.Request, name string) {
	email, ok := participantEmail(w, r)
	if !ok {
		return
	}
	if err := h.service.Unregister(r.Context(), name, email); err != nil {
		writeRosterError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Unregistered %s from %s", email, name),
	})
}

// writeRosterError maps domain errors onto the HTTP taxonomy.
func writeRosterError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		observability.RecordRejected("activity_not_found")
		writeError(w, http.StatusNotFound, "Activity not found")
	case errors.Is(err, domain.ErrAlreadySignedUp):
		observability.RecordRejected("already_signed_up")
		writeError(w, http.StatusBadRequest, "Student is already signed up")
	case errors.Is(err, domain.ErrNotSignedUp):
		observability.RecordRejected("not_signed_up")
		writeError(w, http.StatusBadRequest, "Student is not signed up for this activity")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// ActivityView exposes one activity in the listing payload.
type ActivityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// MessageResponse confirms a successful roster mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

func toActivityView(a domain.Activity) ActivityView {
	return ActivityView{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    a.Participants,
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
