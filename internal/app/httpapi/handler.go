// Package httpapi exposes the form wizard over REST.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/app/metrics"
	"github.com/caseflow/intake_service/internal/app/services/applications"
	"github.com/caseflow/intake_service/internal/app/storage"
	"github.com/caseflow/intake_service/internal/client"
	"github.com/caseflow/intake_service/internal/form"
	"github.com/caseflow/intake_service/internal/form/pages/offence"
	"github.com/caseflow/intake_service/internal/form/pages/rosh"
	"github.com/caseflow/intake_service/internal/middleware"
	"github.com/caseflow/intake_service/internal/session"
	"github.com/caseflow/intake_service/pkg/logger"
)

const maxRequestBytes = 1 << 20

// Handler serves the wizard API.
type Handler struct {
	service   *applications.Service
	sessions  *session.Store
	audit     storage.AuditStore
	collector *metrics.Collector
	log       *logger.Logger
}

// New creates the handler. sessions may be nil; a nil collector gets its
// own private registry.
func New(service *applications.Service, sessions *session.Store, audit storage.AuditStore, collector *metrics.Collector, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	if collector == nil {
		collector = metrics.NewCollector("")
	}
	return &Handler{
		service:   service,
		sessions:  sessions,
		audit:     audit,
		collector: collector,
		log:       log,
	}
}

// Routes registers the API routes on the router.
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	r.HandleFunc("/applications", h.listApplications).Methods(http.MethodGet)
	r.HandleFunc("/applications", h.createApplication).Methods(http.MethodPost)
	r.HandleFunc("/applications/{id}", h.getApplication).Methods(http.MethodGet)
	r.HandleFunc("/applications/{id}/tasks/{task}/pages/{page}", h.getPage).Methods(http.MethodGet)
	r.HandleFunc("/applications/{id}/tasks/{task}/pages/{page}", h.savePage).Methods(http.MethodPut)
	r.HandleFunc("/applications/{id}/tasks/{task}/pages/{page}/records", h.appendRecord).Methods(http.MethodPost)
	r.HandleFunc("/applications/{id}/tasks/{task}/pages/{page}/records/{index}", h.removeRecord).Methods(http.MethodDelete)
	r.HandleFunc("/applications/{id}/check-your-answers", h.checkYourAnswers).Methods(http.MethodGet)
	r.HandleFunc("/applications/{id}/submission", h.submit).Methods(http.MethodPost)
	r.HandleFunc("/people/{crn}/submissions", h.listSubmissions).Methods(http.MethodGet)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listApplications(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.service.GroupedForUser(r.Context(), middleware.UserToken(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grouped)
}

func (h *Handler) createApplication(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CRN string `json:"crn"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	app, err := h.service.Create(r.Context(), middleware.UserToken(r.Context()), payload.CRN)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (h *Handler) getApplication(w http.ResponseWriter, r *http.Request) {
	app, ok := h.findApplication(w, r)
	if !ok {
		return
	}
	sections, err := h.service.TaskList(&app)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"application": app,
		"taskList":    sections,
	})
}

func (h *Handler) getPage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	app, ok := h.findApplication(w, r)
	if !ok {
		return
	}

	previousPage := ""
	var flash map[string]string
	if h.sessions != nil {
		previousPage, _ = h.sessions.PreviousPage(r.Context(), app.ID)
		flash, _ = h.sessions.TakeFlashErrors(r.Context(), app.ID)
	}

	page, err := h.service.ResolvePage(r.Context(), middleware.UserToken(r.Context()), &app,
		vars["task"], vars["page"], nil, userInput(r), previousPage)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if h.sessions != nil {
		_ = h.sessions.SetPreviousPage(r.Context(), app.ID, page.Name())
	}

	resp := map[string]any{
		"task": vars["task"],
		"page": pageView(page),
	}
	if len(flash) > 0 {
		resp["errors"] = flash
	}
	if imp, ok := page.(*rosh.OasysImport); ok {
		h.collector.RecordOasysImport(imp.HasOasysRecord())
		resp["oasys"] = map[string]any{
			"hasOasysRecord": imp.HasOasysRecord(),
			"dateStarted":    imp.OasysStarted(),
			"dateCompleted":  imp.OasysCompleted(),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) savePage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	app, ok := h.findApplication(w, r)
	if !ok {
		return
	}

	var body application.AnswerBag
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	token := middleware.UserToken(r.Context())

	// Confirming an OASys import writes the whole pre-computed answer set
	// instead of the posted page body.
	if vars["page"] == "oasys-import" && application.String(body, "importFromOasys") == "yes" {
		page, err := h.service.ResolvePage(r.Context(), token, &app, vars["task"], vars["page"], body, nil, "")
		if err != nil {
			h.writeError(w, err)
			return
		}
		if imp, isImport := page.(*rosh.OasysImport); isImport && imp.HasOasysRecord() {
			updated, err := h.service.SaveData(r.Context(), token, &app, imp.TaskData())
			if err != nil {
				h.writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, updated)
			return
		}
	}

	page, err := h.service.ResolvePage(r.Context(), token, &app, vars["task"], vars["page"], body, nil, "")
	if err != nil {
		h.writeError(w, err)
		return
	}

	updated, err := h.service.Save(r.Context(), token, &app, vars["task"], page)
	h.collector.RecordPageSave(vars["task"], err)
	if err != nil {
		var verr *applications.ValidationError
		if errors.As(err, &verr) && h.sessions != nil {
			_ = h.sessions.PutFlashErrors(r.Context(), app.ID, verr.Errors)
		}
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) appendRecord(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	app, ok := h.findApplication(w, r)
	if !ok {
		return
	}

	var record application.AnswerBag
	if err := decodeJSON(r, &record); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if vars["task"] == "offending-history" && vars["page"] == "offence-history" {
		if errs := offence.ValidateRecord(record); len(errs) > 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
			return
		}
	}

	updated, err := h.service.AppendRecord(r.Context(), middleware.UserToken(r.Context()), &app,
		vars["task"], vars["page"], record)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, updated)
}

func (h *Handler) removeRecord(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	app, ok := h.findApplication(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid record index"})
		return
	}
	updated, err := h.service.RemoveRecord(r.Context(), middleware.UserToken(r.Context()), &app,
		vars["task"], vars["page"], index)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) checkYourAnswers(w http.ResponseWriter, r *http.Request) {
	app, ok := h.findApplication(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"application": app,
		"review":      h.service.CheckYourAnswers(&app),
	})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	app, ok := h.findApplication(w, r)
	if !ok {
		return
	}
	err := h.service.Submit(r.Context(), middleware.UserToken(r.Context()), &app)
	h.collector.RecordSubmission(err)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "submitted"})
}

func (h *Handler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		writeJSON(w, http.StatusOK, []storage.SubmissionRecord{})
		return
	}
	records, err := h.audit.ListSubmissions(r.Context(), mux.Vars(r)["crn"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) findApplication(w http.ResponseWriter, r *http.Request) (application.Application, bool) {
	app, err := h.service.Find(r.Context(), middleware.UserToken(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return application.Application{}, false
	}
	return app, true
}

// writeError maps service and upstream errors onto HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *applications.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": verr.Errors})
	case errors.Is(err, form.ErrTaskNotFound), errors.Is(err, form.ErrPageNotFound), client.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case client.IsDenied(err):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	default:
		h.log.WithError(err).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// pageView is the JSON projection of a resolved page.
func pageView(page form.Page) map[string]any {
	return map[string]any{
		"name":     page.Name(),
		"title":    page.Title(),
		"body":     page.Body(),
		"previous": page.Previous(),
		"next":     page.Next(),
		"response": page.Response(),
	}
}

// userInput converts query parameters into a pre-fill answer bag.
// Multi-valued parameters become string lists.
func userInput(r *http.Request) application.AnswerBag {
	query := r.URL.Query()
	if len(query) == 0 {
		return nil
	}
	bag := application.AnswerBag{}
	for key, values := range query {
		if len(values) == 1 {
			bag[key] = values[0]
			continue
		}
		bag[key] = values
	}
	return bag
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBytes))
	return dec.Decode(target)
}
