package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/haithamsoil/nasgh/internal/advisor"
	"github.com/haithamsoil/nasgh/internal/domain"
	"github.com/haithamsoil/nasgh/internal/plantdb"
	"github.com/haithamsoil/nasgh/internal/repository"
)

const maxBodyBytes = 1 << 20

const defaultHistoryLimit = 100

type readingMeta struct {
	ID        string `json:"id"`
	Stage     string `json:"stage"`
	Advice    string `json:"advice"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleIngestReading(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var reading domain.Reading
	if err := json.Unmarshal(body, &reading); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if len(reading) == 0 {
		jsonError(w, http.StatusBadRequest, "no recognized sensor values in payload")
		return
	}
	var meta readingMeta
	if err := json.Unmarshal(body, &meta); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	entry := &domain.ReadingLogEntry{
		DeviceID:   meta.ID,
		Reading:    reading,
		StageLabel: meta.Stage,
		Advice:     meta.Advice,
	}
	if meta.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, meta.Timestamp); err == nil {
			entry.RecordedAt = ts
		}
	}

	if err := s.readings.Append(r.Context(), entry); err != nil {
		s.logger.Error("append reading failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to store reading")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleLatestReading(w http.ResponseWriter, r *http.Request) {
	entry, err := s.readings.Latest(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "no readings yet")
			return
		}
		s.logger.Error("load latest reading failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to load reading")
		return
	}
	writeJSON(w, http.StatusOK, flattenEntry(entry))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, defaultHistoryLimit)
	entries, err := s.readings.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("load history failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, flattenEntry(e))
	}
	writeJSON(w, http.StatusOK, out)
}

type sessionPayload struct {
	Soil          domain.Reading       `json:"soil"`
	PlantName     string               `json:"plantName"`
	Stage         string               `json:"stage"`
	Targets       domain.RangeRecord   `json:"targets"`
	StatusSummary domain.StatusSummary `json:"statusSummary"`
	Advice        string               `json:"advice"`
}

func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	var payload sessionPayload
	if err := decodeJSON(r, &payload); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if len(payload.Soil) == 0 {
		jsonError(w, http.StatusBadRequest, "soil reading is required")
		return
	}

	session := &domain.SoilSession{
		Reading:       payload.Soil,
		PlantName:     payload.PlantName,
		StageLabel:    payload.Stage,
		Targets:       payload.Targets,
		StatusSummary: payload.StatusSummary,
		Advice:        payload.Advice,
	}
	if err := s.sessions.Save(r.Context(), session); err != nil {
		s.logger.Error("save session failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"id":        session.ID,
		"createdAt": session.CreatedAt.Format(time.RFC3339),
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, defaultHistoryLimit)
	sessions, err := s.sessions.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("load sessions failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to load sessions")
		return
	}
	if sessions == nil {
		sessions = []*domain.SoilSession{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

type targetsPayload struct {
	PlantName string         `json:"plantName"`
	Stage     string         `json:"stage"`
	Soil      domain.Reading `json:"soil"`
}

func (s *Server) handleTargets(w http.ResponseWriter, r *http.Request) {
	var payload targetsPayload
	if err := decodeJSON(r, &payload); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	stage, err := domain.ParseStage(payload.Stage)
	if err != nil {
		jsonError(w, http.StatusBadRequest, fmt.Sprintf("unknown growth stage %q", payload.Stage))
		return
	}

	resolution, err := s.resolver.Resolve(r.Context(), payload.PlantName, stage, payload.Soil)
	if err != nil {
		if errors.Is(err, plantdb.ErrEmptyPlantName) {
			jsonError(w, http.StatusBadRequest, "plant name is required")
			return
		}
		s.logger.Error("resolve targets failed", "plant", payload.PlantName, "stage", stage, "error", err)
		jsonError(w, http.StatusBadGateway, "could not determine target ranges")
		return
	}
	writeJSON(w, http.StatusOK, resolution)
}

type advicePayload struct {
	Soil                  domain.Reading `json:"soil"`
	RecommendationContext struct {
		PlantName     string               `json:"plantName"`
		Stage         string               `json:"stage"`
		Targets       domain.RangeRecord   `json:"targets"`
		StatusSummary domain.StatusSummary `json:"statusSummary"`
	} `json:"recommendationContext"`
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	var payload advicePayload
	if err := decodeJSON(r, &payload); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if len(payload.Soil) == 0 {
		jsonError(w, http.StatusBadRequest, "soil reading is required")
		return
	}

	rc := payload.RecommendationContext
	summary := rc.StatusSummary
	if len(summary) == 0 && len(rc.Targets) > 0 {
		summary = advisor.Summarize(payload.Soil, rc.Targets)
	}

	text, err := s.advisor.Advise(r.Context(), advisor.AdviceRequest{
		Reading:       payload.Soil,
		PlantName:     rc.PlantName,
		StageLabel:    rc.Stage,
		StatusSummary: summary,
	})
	if err != nil {
		s.logger.Error("advice generation failed", "error", err)
		writeText(w, http.StatusServiceUnavailable, advisor.UserMessage(err))
		return
	}
	writeText(w, http.StatusOK, text)
}

type chatPayload struct {
	Message    string             `json:"message"`
	History    []advisor.ChatTurn `json:"history"`
	Soil       domain.Reading     `json:"soil"`
	LastAdvice string             `json:"lastAdvice"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatPayload
	if err := decodeJSON(r, &payload); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if payload.Message == "" {
		jsonError(w, http.StatusBadRequest, "message is required")
		return
	}

	text, err := s.advisor.Chat(r.Context(), advisor.ChatRequest{
		Message:    payload.Message,
		History:    payload.History,
		Reading:    payload.Soil,
		LastAdvice: payload.LastAdvice,
	})
	if err != nil {
		s.logger.Error("chat generation failed", "error", err)
		writeText(w, http.StatusServiceUnavailable, advisor.UserMessage(err))
		return
	}
	writeText(w, http.StatusOK, text)
}

// flattenEntry renders a stored reading in the flat wire shape the
// device posts, with metadata fields alongside sensor values.
func flattenEntry(e *domain.ReadingLogEntry) map[string]any {
	out := make(map[string]any, len(e.Reading)+4)
	for param, value := range e.Reading {
		out[param.WireKey()] = value
	}
	if e.DeviceID != "" {
		out["id"] = e.DeviceID
	}
	if e.StageLabel != "" {
		out["stage"] = e.StageLabel
	}
	if e.Advice != "" {
		out["advice"] = e.Advice
	}
	if !e.RecordedAt.IsZero() {
		out["timestamp"] = e.RecordedAt.Format(time.RFC3339)
	}
	return out
}

func queryLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
