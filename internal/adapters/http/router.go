package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/secureai/docshield/internal/config"
	"github.com/secureai/docshield/internal/core/domain"
	"github.com/secureai/docshield/internal/core/ports"
	"github.com/secureai/docshield/internal/core/usecase"
	"github.com/secureai/docshield/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	cfg          config.Config
	uploader     ports.DocumentUploader
	conversation ports.DocumentConversation
	reader       ports.DocumentReader
	reclassifier ports.DocumentReclassifier
	metrics      *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	uploader ports.DocumentUploader,
	conversation ports.DocumentConversation,
	reader ports.DocumentReader,
	reclassifier ports.DocumentReclassifier,
	m *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:          cfg,
		uploader:     uploader,
		conversation: conversation,
		reader:       reader,
		reclassifier: reclassifier,
		metrics:      m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.Handle("/metrics", rt.metrics.Handler())
	mux.HandleFunc("/api/upload", rt.uploadDocument)
	mux.HandleFunc("/api/ask", rt.ask)
	mux.HandleFunc("/api/report", rt.report)
	mux.HandleFunc("/api/result/", rt.getResult)
	mux.HandleFunc("/api/documents", rt.listDocuments)
	mux.HandleFunc("/api/example", rt.getExample)
	mux.HandleFunc("/api/reclassify/", rt.reclassify)

	var handler http.Handler = mux
	handler = rt.metrics.Middleware(serviceName, handler)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	result, err := rt.uploader.Upload(r.Context(), fileHeader.Filename, file)
	if err != nil {
		rt.metrics.RecordUpload(serviceName, "error")
		writeError(w, err)
		return
	}

	if result.Classified() {
		rt.metrics.RecordUpload(serviceName, "success")
	} else {
		rt.metrics.RecordUpload(serviceName, "fallback")
		rt.metrics.RecordClassificationFallback()
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": result.ID})
}

func (rt *Router) ask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req struct {
		DocumentID string `json:"document_id"`
		Question   string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.DocumentID) == "" || strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document_id and question are required"})
		return
	}

	answer, err := rt.conversation.Ask(r.Context(), req.DocumentID, req.Question)
	if err != nil {
		rt.metrics.RecordAsk(serviceName, "error")
		writeError(w, err)
		return
	}

	if strings.HasPrefix(answer, usecase.DegradedAnswerPrefix) {
		rt.metrics.RecordAsk(serviceName, "degraded")
	} else {
		rt.metrics.RecordAsk(serviceName, "success")
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (rt *Router) report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req struct {
		DocumentID string `json:"document_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.DocumentID) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document_id is required"})
		return
	}

	report, err := rt.conversation.Report(r.Context(), req.DocumentID)
	if err != nil {
		writeError(w, err)
		return
	}
	if report.Summary == usecase.ReportFallbackSummary {
		rt.metrics.RecordReportFallback()
	}

	writeJSON(w, http.StatusOK, report)
}

func (rt *Router) getResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/result/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	result, err := rt.reader.Result(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"document_type": result.Type,
		"markdown":      result.MaskedMarkdown,
	})
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	docType, ok := domain.ParseDocumentType(r.URL.Query().Get("type"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown document type"})
		return
	}

	summaries, err := rt.reader.ListByType(r.Context(), docType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (rt *Router) getExample(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	docType, ok := domain.ParseDocumentType(r.URL.Query().Get("type"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown document type"})
		return
	}

	content, err := rt.reader.Example(r.Context(), docType)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}

func (rt *Router) reclassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/reclassify/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	if err := rt.reclassifier.ReclassifyByID(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reclassified"})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
