package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cozyclinic/healthsuggest/matcher"
)

//go:embed templates/*.html
var templateFS embed.FS

const emptyTextWarning = "Escreva um texto (genérico) para eu sugerir uma especialidade."

// Server bundles the dependencies required by the HTTP handlers. It
// implements http.Handler so it can be passed to http.ListenAndServe.
type Server struct {
	svc     *matcher.Service
	logger  *zap.Logger
	tmpl    *template.Template
	metrics *metrics
}

// NewServer constructs a Server with the embedded templates.
func NewServer(svc *matcher.Service, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{
		svc:     svc,
		logger:  logger,
		tmpl:    tmpl,
		metrics: newMetrics(),
	}, nil
}

// ServeHTTP dispatches incoming requests based on the URL path. Routing
// stays hand-rolled to keep dependencies light.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()

	path := r.URL.Path
	switch {
	case path == "/" && r.Method == http.MethodGet:
		s.handleIndex(w, r)
	case path == "/suggest" && r.Method == http.MethodPost:
		s.handleSuggestForm(w, r)
	case path == "/api/suggest" && r.Method == http.MethodPost:
		s.handleSuggestAPI(w, r)
	case path == "/healthz" && r.Method == http.MethodGet:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	case path == "/metrics" && r.Method == http.MethodGet:
		s.metrics.handler().ServeHTTP(w, r)
	default:
		http.NotFound(w, r)
	}

	s.logger.Info("request",
		zap.String("id", requestID),
		zap.String("method", r.Method),
		zap.String("path", path),
		zap.Duration("duration", time.Since(start)))
}

// pageData feeds the index template.
type pageData struct {
	Text    string
	Warning string
	Result  *resultView
}

// resultView is the rendered form of a suggestion.
type resultView struct {
	Name          string
	Matched       bool
	Fallback      bool
	ConfidencePct int
	Terms         string
	Why           string
	NextStep      string
	Disclaimer    string
}

func buildResultView(sug matcher.Suggestion) *resultView {
	view := &resultView{
		Name:          sug.SpecialtyName,
		Matched:       sug.Matched(),
		Fallback:      sug.Fallback,
		ConfidencePct: int(sug.Confidence * 100),
		Terms:         sug.Terms(),
		Why:           sug.Why,
		NextStep:      matcher.DefaultNextStep,
		Disclaimer:    matcher.DefaultDisclaimer,
	}
	if !view.Matched {
		view.Name = "Sem sugestão"
	}
	if view.Terms == "" {
		view.Terms = "Nenhum termo específico detectado (porta de entrada)."
	}
	return view
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, pageData{})
}

// handleSuggestForm serves the web form: one free-text field in, one
// rendered suggestion out. Nothing about the query is persisted.
func (s *Server) handleSuggestForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	text := strings.TrimSpace(r.FormValue("text"))
	if text == "" {
		s.render(w, pageData{Warning: emptyTextWarning})
		return
	}
	sug := s.svc.Suggest(text)
	s.metrics.observe(sug)
	s.render(w, pageData{Text: text, Result: buildResultView(sug)})
}

// handleSuggestAPI is the JSON surface: {"text": ...} in, a suggestion
// out. Empty text is the only rejected input.
func (s *Server) handleSuggestAPI(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSONError(w, http.StatusBadRequest, emptyTextWarning)
		return
	}
	sug := s.svc.Suggest(req.Text)
	s.metrics.observe(sug)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sug)
}

func (s *Server) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error("render template", zap.Error(err))
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
