package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/deckforge/internal/api/shared"
	"github.com/phrazzld/deckforge/internal/domain"
	"github.com/phrazzld/deckforge/internal/platform/logger"
	"github.com/phrazzld/deckforge/internal/service"
	"github.com/phrazzld/deckforge/internal/task"
)

// PPTXContentType is the media type of a PowerPoint deck.
const PPTXContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// TaskFactory creates deck tasks.
type TaskFactory interface {
	TopicTask(req service.TopicRequest) *task.DeckTask
	ContentTask(req service.ContentRequest) *task.DeckTask
}

// TaskSubmitter queues tasks for background execution.
type TaskSubmitter interface {
	Submit(ctx context.Context, t task.Task) error
}

// JobReader looks up task records.
type JobReader interface {
	GetTask(ctx context.Context, taskID uuid.UUID) (task.Record, error)
}

// DeckHandler handles deck-related HTTP requests
type DeckHandler struct {
	factory   TaskFactory
	submitter TaskSubmitter
	jobs      JobReader
	logger    *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(
	factory TaskFactory,
	submitter TaskSubmitter,
	jobs JobReader,
	logger *slog.Logger,
) (*DeckHandler, error) {
	if factory == nil || submitter == nil || jobs == nil {
		return nil, errors.New("deck handler dependencies cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &DeckHandler{
		factory:   factory,
		submitter: submitter,
		jobs:      jobs,
		logger:    logger.With("component", "deck_handler"),
	}, nil
}

// CreateTopicDeck handles POST /api/decks/topic requests
func (h *DeckHandler) CreateTopicDeck(w http.ResponseWriter, r *http.Request) {
	var req TopicDeckRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.submit(w, r, h.factory.TopicTask(req.ToService()))
}

// CreateContentDeck handles POST /api/decks/content requests
func (h *DeckHandler) CreateContentDeck(w http.ResponseWriter, r *http.Request) {
	var req ContentDeckRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.submit(w, r, h.factory.ContentTask(req.ToService()))
}

// GetDeck handles GET /api/decks/{id} requests
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.lookup(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, recordToResponse(rec))
}

// DownloadDeck handles GET /api/decks/{id}/file requests
func (h *DeckHandler) DownloadDeck(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if rec.Status != task.TaskStatusCompleted || rec.Output == nil {
		shared.RespondWithError(w, r, http.StatusConflict, "Deck is not ready")
		return
	}

	f, err := os.Open(rec.Output.Path)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Deck file could not be read", err)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Deck file could not be read", err)
		return
	}

	w.Header().Set("Content-Type", PPTXContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="presentation.pptx"`)
	http.ServeContent(w, r, "presentation.pptx", info.ModTime(), f)
}

func (h *DeckHandler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}

func (h *DeckHandler) submit(w http.ResponseWriter, r *http.Request, t *task.DeckTask) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := h.submitter.Submit(r.Context(), t); err != nil {
		HandleAPIError(w, r, err, "Failed to submit deck")
		return
	}
	log.Info("deck job submitted", "task_id", t.ID(), "task_type", t.Type())

	rec, err := h.jobs.GetTask(r.Context(), t.ID())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit deck")
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/decks/%s", t.ID()))
	shared.RespondWithJSON(w, r, http.StatusAccepted, recordToResponse(rec))
}

func (h *DeckHandler) lookup(w http.ResponseWriter, r *http.Request) (task.Record, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, fmt.Errorf("%w: id has invalid format", domain.ErrInvalidFormat), "")
		return task.Record{}, false
	}
	rec, err := h.jobs.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get deck")
		return task.Record{}, false
	}
	return rec, true
}
