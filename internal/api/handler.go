package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/0xPuncker/taskboard/internal/board"
	"github.com/0xPuncker/taskboard/internal/cron"
)

var errNotGenerated = errors.New("board has not been generated yet")

// BoardProvider exposes the most recently generated board.
type BoardProvider interface {
	Last() *board.Document
}

// JobLister exposes the regeneration schedule.
type JobLister interface {
	ListJobs() []cron.JobInfo
}

type Handler struct {
	logger    *logrus.Logger
	boards    BoardProvider
	jobs      JobLister
	outputDir string
}

func NewHandler(logger *logrus.Logger, boards BoardProvider, jobs JobLister, outputDir string) *Handler {
	return &Handler{
		logger:    logger,
		boards:    boards,
		jobs:      jobs,
		outputDir: outputDir,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
	}
	if doc := h.boards.Last(); doc != nil {
		status["last_generated"] = doc.GeneratedAt.Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	doc := h.boards.Last()
	if doc == nil {
		h.handleError(w, errNotGenerated, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs := h.jobs.ListJobs()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// StaticFiles serves the generated page and its stylesheet.
func (h *Handler) StaticFiles() http.Handler {
	return http.FileServer(http.Dir(h.outputDir))
}

func (h *Handler) handleError(w http.ResponseWriter, err error, code int) {
	h.logger.Error(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	})
}
