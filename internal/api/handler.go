// Package api exposes the colony over HTTP: a JSON REST surface for every
// player action and a websocket feed for server pushes.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/egodevrjm/resource-colony/internal/colony"
	"github.com/egodevrjm/resource-colony/internal/game"
	"github.com/egodevrjm/resource-colony/internal/save"
	"github.com/egodevrjm/resource-colony/internal/telemetry"
)

type Handler struct {
	engine *game.Engine
	store  *save.Store
	hub    *Hub
	rec    *telemetry.MemoryRecorder
	logger *log.Logger
}

func NewHandler(engine *game.Engine, store *save.Store, hub *Hub, logger *log.Logger) *Handler {
	return &Handler{engine: engine, store: store, hub: hub, logger: logger}
}

// SetTelemetry enables the stats endpoint. Call before Register.
func (h *Handler) SetTelemetry(rec *telemetry.MemoryRecorder) {
	h.rec = rec
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("GET /ws", h.hub.serveWS)

	mux.HandleFunc("GET /api/state", h.handleState)
	mux.HandleFunc("GET /api/rates", h.handleRates)
	mux.HandleFunc("GET /api/market", h.handleMarket)
	mux.HandleFunc("GET /api/telemetry/stats", h.handleTelemetryStats)

	mux.HandleFunc("POST /api/collect", h.handleCollect)
	mux.HandleFunc("POST /api/buildings/purchase", h.handlePurchaseBuilding)
	mux.HandleFunc("POST /api/upgrades/purchase", h.handlePurchaseUpgrade)
	mux.HandleFunc("POST /api/tech/research", h.handleResearch)
	mux.HandleFunc("POST /api/events/start", h.handleStartEvent)
	mux.HandleFunc("POST /api/events/resolve", h.handleResolveEvent)
	mux.HandleFunc("POST /api/prestige", h.handlePrestige)
	mux.HandleFunc("POST /api/prestige/spend", h.handleSpendPrestige)
	mux.HandleFunc("POST /api/trade", h.handleTrade)
	mux.HandleFunc("POST /api/settings", h.handleSettings)
	mux.HandleFunc("POST /api/tutorial/advance", h.handleTutorialAdvance)
	mux.HandleFunc("POST /api/tutorial/reset", h.handleTutorialReset)
	mux.HandleFunc("POST /api/save", h.handleSave)
	mux.HandleFunc("POST /api/reset", h.handleReset)

	mux.HandleFunc("GET /api/layout", h.handleGetLayout)
	mux.HandleFunc("PUT /api/layout", h.handlePutLayout)
	mux.HandleFunc("GET /api/theme", h.handleGetTheme)
	mux.HandleFunc("PUT /api/theme", h.handlePutTheme)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrUnknownBuilding),
		errors.Is(err, game.ErrUnknownUpgrade),
		errors.Is(err, game.ErrUnknownTech),
		errors.Is(err, game.ErrUnknownEvent),
		errors.Is(err, game.ErrUnknownResource),
		errors.Is(err, game.ErrUnknownTarget):
		return http.StatusNotFound
	case errors.Is(err, game.ErrEventActive),
		errors.Is(err, game.ErrEventCooldown),
		errors.Is(err, game.ErrNoActiveEvent),
		errors.Is(err, game.ErrLocked),
		errors.Is(err, game.ErrPrereqsUnmet):
		return http.StatusConflict
	case errors.Is(err, game.ErrInsufficient),
		errors.Is(err, game.ErrNoPrestigePoints),
		errors.Is(err, game.ErrNotTradable),
		errors.Is(err, game.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Snapshot())
}

func (h *Handler) handleRates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"rates":           h.engine.Rates(),
		"clickValue":      h.engine.ClickValue(),
		"prestigePreview": h.engine.PrestigePreview(),
	})
}

func (h *Handler) handleMarket(w http.ResponseWriter, r *http.Request) {
	mkt := h.engine.Market()
	writeJSON(w, http.StatusOK, map[string]any{
		"values":     mkt.Values(),
		"efficiency": mkt.Efficiency(h.engine.Snapshot()),
	})
}

func (h *Handler) handleTelemetryStats(w http.ResponseWriter, r *http.Request) {
	if h.rec == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "telemetry disabled"})
		return
	}
	var zero time.Time
	writeJSON(w, http.StatusOK, telemetry.CalculateStats(h.rec.Events(zero), zero))
}

func (h *Handler) handleCollect(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Resource colony.Kind `json:"resource"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	value, err := h.engine.Collect(body.Resource)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"resource": body.Resource, "collected": value})
}

func (h *Handler) handlePurchaseBuilding(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key string `json:"key"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	cost, err := h.engine.PurchaseBuilding(body.Key)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"key": body.Key, "paid": cost})
}

func (h *Handler) handlePurchaseUpgrade(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key string `json:"key"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	cost, err := h.engine.PurchaseUpgrade(body.Key)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"key": body.Key, "paid": cost})
}

func (h *Handler) handleResearch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key string `json:"key"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.engine.ResearchTech(body.Key); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"key": body.Key, "unlocked": true})
}

func (h *Handler) handleStartEvent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.engine.StartEvent(body.ID); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": body.ID, "started": true})
}

func (h *Handler) handleResolveEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.ResolveEvent(); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"resolved": true})
}

func (h *Handler) handlePrestige(w http.ResponseWriter, r *http.Request) {
	points, err := h.engine.Prestige()
	if err != nil {
		writeErr(w, err)
		return
	}
	h.persist(false)
	writeJSON(w, http.StatusOK, map[string]any{"pointsEarned": points})
}

func (h *Handler) handleSpendPrestige(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Target string `json:"target"`
		Amount int    `json:"amount"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.engine.SpendPrestigePoints(body.Target, body.Amount); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.engine.Snapshot().Prestige)
}

func (h *Handler) handleTrade(w http.ResponseWriter, r *http.Request) {
	var body struct {
		From   colony.Kind `json:"from"`
		To     colony.Kind `json:"to"`
		Amount float64     `json:"amount"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	res, err := h.engine.Trade(body.From, body.To, body.Amount)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	var body struct {
		GameSpeed           *float64 `json:"gameSpeed"`
		AutoSaveInterval    *float64 `json:"autoSaveInterval"`
		ToggleNotifications bool     `json:"toggleNotifications"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if body.GameSpeed != nil {
		if err := h.engine.SetGameSpeed(*body.GameSpeed); err != nil {
			writeErr(w, err)
			return
		}
	}
	if body.AutoSaveInterval != nil {
		if err := h.engine.SetAutoSaveInterval(*body.AutoSaveInterval); err != nil {
			writeErr(w, err)
			return
		}
	}
	if body.ToggleNotifications {
		h.engine.ToggleNotifications()
	}
	writeJSON(w, http.StatusOK, h.engine.Snapshot().Settings)
}

func (h *Handler) handleTutorialAdvance(w http.ResponseWriter, r *http.Request) {
	h.engine.AdvanceTutorial()
	writeJSON(w, http.StatusOK, h.engine.Snapshot().Tutorial)
}

func (h *Handler) handleTutorialReset(w http.ResponseWriter, r *http.Request) {
	h.engine.ResetTutorial()
	writeJSON(w, http.StatusOK, h.engine.Snapshot().Tutorial)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := h.store.SaveGame(h.engine.Snapshot()); err != nil {
		writeErr(w, err)
		return
	}
	h.engine.MarkSaved(true)
	writeJSON(w, http.StatusOK, map[string]any{"saved": true})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.engine.Reset()
	if err := h.store.DeleteGame(); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reset": true})
}

func (h *Handler) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	raw, err := h.store.LoadLayout()
	if err != nil {
		writeErr(w, err)
		return
	}
	if raw == nil {
		raw = json.RawMessage("null")
	}
	writeJSON(w, http.StatusOK, raw)
}

func (h *Handler) handlePutLayout(w http.ResponseWriter, r *http.Request) {
	raw, ok := h.readRaw(w, r)
	if !ok {
		return
	}
	if err := h.store.SaveLayout(raw); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": true})
}

func (h *Handler) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	raw, err := h.store.LoadTheme()
	if err != nil {
		writeErr(w, err)
		return
	}
	if raw == nil {
		raw = json.RawMessage("null")
	}
	writeJSON(w, http.StatusOK, raw)
}

func (h *Handler) handlePutTheme(w http.ResponseWriter, r *http.Request) {
	raw, ok := h.readRaw(w, r)
	if !ok {
		return
	}
	if err := h.store.SaveTheme(raw); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": true})
}

func (h *Handler) readRaw(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return nil, false
	}
	return raw, true
}

// persist writes the current state without failing the request; a miss is
// logged and the next auto-save catches up.
func (h *Handler) persist(manual bool) {
	if err := h.store.SaveGame(h.engine.Snapshot()); err != nil {
		if h.logger != nil {
			h.logger.Printf("save failed: %v", err)
		}
		return
	}
	h.engine.MarkSaved(manual)
}
