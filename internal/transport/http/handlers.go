package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"media-summarizer/internal/acquire"
	"media-summarizer/internal/config"
	"media-summarizer/internal/domain"
	"media-summarizer/internal/jobs"
	"media-summarizer/internal/logger"
	"media-summarizer/internal/summarize"
)

const maxUploadBytes = 512 << 20

// Handler serves the job API over the registry. All endpoints respond
// with JSON and never block on pipeline work.
type Handler struct {
	registry jobs.Registry
	cfg      *config.Config
	logger   logger.Logger
}

func NewHandler(registry jobs.Registry, cfg *config.Config, log logger.Logger) *Handler {
	return &Handler{registry: registry, cfg: cfg, logger: log}
}

type submitRequest struct {
	URL            string `json:"url"`
	Provider       string `json:"provider,omitempty"`
	Model          string `json:"model,omitempty"`
	Prompt         string `json:"prompt,omitempty"`
	PromptTemplate string `json:"prompt_template,omitempty"`
	Language       string `json:"language,omitempty"`
	ExportDocx     bool   `json:"export_docx,omitempty"`
}

func (h *Handler) SubmitJob(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	job := h.registry.Submit(r.Context(), domain.URLInput(req.URL), h.jobConfig(req))
	writeJSON(w, http.StatusAccepted, job)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	path, err := h.saveUpload(file, header.Filename)
	if err != nil {
		h.logger.Error(r.Context(), "Upload save failed: %v", err)
		writeError(w, http.StatusInternalServerError, "could not store upload")
		return
	}

	job := h.registry.Submit(r.Context(), domain.LocalFileInput(path), h.jobConfig(submitRequest{}))
	writeJSON(w, http.StatusAccepted, job)
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	job, ok := h.registry.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"jobs": h.registry.Recent(50),
	})
}

// jobConfig merges request overrides over the server's configured
// defaults.
func (h *Handler) jobConfig(req submitRequest) domain.JobConfig {
	cfg := domain.JobConfig{
		WhisperModel: h.cfg.Whisper.Model,
		Language:     h.cfg.Whisper.Language,
		Provider:     h.cfg.Summarize.Provider,
		Model:        h.cfg.Summarize.Model,
		Prompt:       summarize.PromptByName(h.cfg.Summarize.PromptName),
		ExportDocx:   h.cfg.Summarize.ExportDocx,
	}

	if req.Provider != "" {
		cfg.Provider = req.Provider
	}
	if req.Model != "" {
		cfg.Model = req.Model
	}
	if req.Language != "" {
		cfg.Language = req.Language
	}
	if req.PromptTemplate != "" {
		cfg.Prompt = summarize.PromptByName(req.PromptTemplate)
	}
	if req.Prompt != "" {
		cfg.Prompt = req.Prompt
	}
	if req.ExportDocx {
		cfg.ExportDocx = true
	}
	return cfg
}

func (h *Handler) saveUpload(src io.Reader, originalName string) (string, error) {
	if err := os.MkdirAll(h.cfg.Paths.Uploads, 0o755); err != nil {
		return "", err
	}

	ext := filepath.Ext(originalName)
	stem := acquire.SanitizeFilename(strings.TrimSuffix(filepath.Base(originalName), ext))
	path := filepath.Join(h.cfg.Paths.Uploads, stem+ext)
	for i := 1; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = filepath.Join(h.cfg.Paths.Uploads, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
