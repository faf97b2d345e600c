package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/diogomix/bingopress/internal/bingo"
	"github.com/diogomix/bingopress/internal/config"
	"github.com/diogomix/bingopress/internal/engine"
	"github.com/diogomix/bingopress/internal/live"
	"github.com/diogomix/bingopress/internal/service"
	"github.com/diogomix/bingopress/internal/storage"
	"github.com/diogomix/bingopress/pkg/logger"
)

// Handler exposes generation, simulation and live game operations over HTTP.
type Handler struct {
	Config    *config.Config
	Generator *service.Generator
	Simulator *service.Simulator
	Registry  *live.Registry
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)

	mux.HandleFunc("POST /api/generate", h.handleGenerate)
	mux.HandleFunc("GET /api/generations", h.handleGenerations)

	mux.HandleFunc("POST /api/simulate", h.handleSimulate)
	mux.HandleFunc("GET /api/simulations", h.handleSimulations)

	mux.HandleFunc("GET /api/live", h.handleLiveList)
	mux.HandleFunc("POST /api/live", h.handleLiveStart)
	mux.HandleFunc("GET /api/live/{id}", h.handleLiveState)
	mux.HandleFunc("DELETE /api/live/{id}", h.handleLiveDelete)
	mux.HandleFunc("POST /api/live/{id}/call", h.handleLiveCall)
	mux.HandleFunc("POST /api/live/{id}/undo", h.handleLiveUndo)
	mux.HandleFunc("GET /api/live/{id}/ranking", h.handleLiveRanking)
	mux.HandleFunc("POST /api/live/{id}/reset", h.handleLiveReset)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

type generateRequest struct {
	Seed           int64  `json:"seed"`
	Sheets         int    `json:"sheets"`
	NumbersPerCard int    `json:"numbers_per_card"`
	MaxNumber      int    `json:"max_number"`
	BaseName       string `json:"base_name"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	cfg := bingo.DefaultConfig()
	cfg.Seed = req.Seed
	if req.Sheets > 0 {
		cfg.SheetCount = req.Sheets
	}
	if req.NumbersPerCard > 0 {
		cfg.NumbersPerCard = req.NumbersPerCard
	}
	if req.MaxNumber > 0 {
		cfg.MaxNumber = req.MaxNumber
	}
	if req.BaseName != "" {
		cfg.BaseName = req.BaseName
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	result, err := h.Generator.Generate(cfg, nil)
	if err != nil {
		var cfgErr *bingo.ConfigError
		if errors.As(err, &cfgErr) {
			writeErrorJSON(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("Generation failed", "err", err)
		writeErrorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) handleGenerations(w http.ResponseWriter, r *http.Request) {
	records, err := h.Generator.Generations()
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"generations": records})
}

type simulateRequest struct {
	File   string `json:"file"`
	Trials int    `json:"trials"`
	Seed   int64  `json:"seed"`
}

func (h *Handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Trials == 0 {
		req.Trials = 50
	}

	result, err := h.Simulator.Simulate(req.File, req.Trials, req.Seed, nil)
	if err != nil {
		writeErrorJSON(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) handleSimulations(w http.ResponseWriter, r *http.Request) {
	records, err := h.Simulator.Simulations()
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"simulations": records})
}

func (h *Handler) handleLiveList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"games": h.Registry.List()})
}

type liveStartRequest struct {
	GameID string `json:"game_id"`
	File   string `json:"file"`
}

func (h *Handler) handleLiveStart(w http.ResponseWriter, r *http.Request) {
	var req liveStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	source := req.File
	if source == "" {
		found, err := storage.LatestPaired(h.Config.Storage.OutputRoot)
		if err != nil {
			writeErrorJSON(w, statusForError(err), err.Error())
			return
		}
		source = found
	}

	layout, err := storage.ReadPaired(source)
	if err != nil {
		writeErrorJSON(w, statusForError(err), err.Error())
		return
	}

	session, err := h.Registry.Create(req.GameID, source, layout.Cards(), h.Config.Game.MaxNumber)
	if err != nil {
		writeErrorJSON(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"game_id": session.ID,
		"source":  session.Source,
		"state":   session.State(),
	})
}

func (h *Handler) handleLiveState(w http.ResponseWriter, r *http.Request) {
	session, err := h.Registry.Get(r.PathValue("id"))
	if err != nil {
		writeErrorJSON(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, session.State())
}

func (h *Handler) handleLiveDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Registry.Delete(r.PathValue("id")); err != nil {
		writeErrorJSON(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

type liveCallRequest struct {
	Ball int `json:"ball"`
}

func (h *Handler) handleLiveCall(w http.ResponseWriter, r *http.Request) {
	session, err := h.Registry.Get(r.PathValue("id"))
	if err != nil {
		writeErrorJSON(w, statusForError(err), err.Error())
		return
	}

	var req liveCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := session.Call(req.Ball)
	if err != nil {
		writeErrorJSON(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleLiveUndo(w http.ResponseWriter, r *http.Request) {
	session, err := h.Registry.Get(r.PathValue("id"))
	if err != nil {
		writeErrorJSON(w, statusForError(err), err.Error())
		return
	}

	result, err := session.Undo()
	if err != nil {
		writeErrorJSON(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleLiveRanking(w http.ResponseWriter, r *http.Request) {
	session, err := h.Registry.Get(r.PathValue("id"))
	if err != nil {
		writeErrorJSON(w, statusForError(err), err.Error())
		return
	}

	topN := h.Config.Game.RankingSize
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeErrorJSON(w, http.StatusBadRequest, "top must be a positive integer")
			return
		}
		topN = n
	}
	writeJSON(w, http.StatusOK, map[string]any{"ranking": session.Ranking(topN)})
}

func (h *Handler) handleLiveReset(w http.ResponseWriter, r *http.Request) {
	session, err := h.Registry.Get(r.PathValue("id"))
	if err != nil {
		writeErrorJSON(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, session.Reset())
}

// statusForError maps the domain's sentinel and typed errors onto HTTP
// statuses; anything unrecognized is a 500.
func statusForError(err error) int {
	var formatErr *storage.FormatError
	switch {
	case errors.Is(err, live.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, live.ErrGameExists),
		errors.Is(err, engine.ErrAlreadyCalled),
		errors.Is(err, engine.ErrAlreadyFinished),
		errors.Is(err, engine.ErrNothingToUndo):
		return http.StatusConflict
	case errors.Is(err, storage.ErrNoPairedFiles):
		return http.StatusNotFound
	case errors.As(err, &formatErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode JSON response", "err", err)
	}
}

func writeErrorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
