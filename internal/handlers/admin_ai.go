// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"quickstor/internal/ai"
	"quickstor/internal/models"
)

// AdminAI exposes the section-generation endpoints of the editor API.
type AdminAI struct {
	registry  *ai.Registry
	generator *ai.SectionGenerator
}

// NewAdminAI creates the AI handler group.
func NewAdminAI(registry *ai.Registry, generator *ai.SectionGenerator) *AdminAI {
	return &AdminAI{registry: registry, generator: generator}
}

// Generate produces a new custom section from a natural-language prompt.
func (h *AdminAI) Generate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validatePrompt(req.Prompt); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	gen, err := h.generator.Generate(r.Context(), req.Prompt)
	if err != nil {
		slog.Error("ai generate failed", "error", err)
		writeError(w, http.StatusBadGateway, "generation failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, gen)
}

// Edit revises existing section HTML; history carries the prior exchanges
// so iterative refinement keeps its context.
func (h *AdminAI) Edit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		History     []ai.Turn `json:"history,omitempty"`
		CurrentHTML string    `json:"currentHtml"`
		Prompt      string    `json:"prompt"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validatePrompt(req.Prompt); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	gen, err := h.generator.Edit(r.Context(), req.History, req.CurrentHTML, req.Prompt)
	if err != nil {
		slog.Error("ai edit failed", "error", err)
		writeError(w, http.StatusBadGateway, "edit failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, gen)
}

// Extract pulls structured section data from pasted file text.
func (h *AdminAI) Extract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text       string             `json:"text"`
		TargetType models.SectionType `json:"targetType"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusUnprocessableEntity, "Text is required.")
		return
	}

	result, err := h.generator.Extract(r.Context(), req.Text, req.TargetType)
	if err != nil {
		slog.Error("ai extract failed", "error", err, "target", req.TargetType)
		writeError(w, http.StatusBadGateway, "extraction failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":   result.Data,
		"method": result.Method,
	})
}

// Providers lists the configured providers and which one is active.
func (h *AdminAI) Providers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"available": h.registry.Available(),
		"active":    h.registry.ActiveName(),
	})
}

// SetProvider switches the active provider at runtime.
func (h *AdminAI) SetProvider(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.registry.SetActive(req.Name); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"active": h.registry.ActiveName()})
}
