// Package web serves the confirmation session over HTTP.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/ukaji3/mesacheck-go/pkg/mesacheck"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/models"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/output"
	"go.uber.org/zap"
)

//go:embed index.html
var indexHTML []byte

// DefaultMaxUploadBytes bounds the size of an uploaded workbook.
const DefaultMaxUploadBytes = 20 << 20

// Options configures a Server.
type Options struct {
	// MaxUploadBytes limits uploads. Zero means DefaultMaxUploadBytes.
	MaxUploadBytes int64
	// OutputName is the download file name. Empty means
	// mesacheck.OutputFileName.
	OutputName string
	// Logger may be nil.
	Logger *zap.Logger
}

// Server exposes one Session as a small JSON API plus an upload page.
type Server struct {
	session    *mesacheck.Session
	logger     *zap.Logger
	maxUpload  int64
	outputName string
	mux        *http.ServeMux
}

// NewServer returns a server over session.
func NewServer(session *mesacheck.Session, opts Options) *Server {
	s := &Server{
		session:    session,
		logger:     opts.Logger,
		maxUpload:  opts.MaxUploadBytes,
		outputName: opts.OutputName,
		mux:        http.NewServeMux(),
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUploadBytes
	}
	if s.outputName == "" {
		s.outputName = mesacheck.OutputFileName
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /api/upload", s.handleUpload)
	s.mux.HandleFunc("GET /api/roster", s.handleRoster)
	s.mux.HandleFunc("POST /api/toggle", s.handleToggle)
	s.mux.HandleFunc("GET /api/download", s.handleDownload)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.logger.Debug("request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("elapsed", time.Since(start)))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("arquivo maior que %d bytes", s.maxUpload))
			return
		}
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("campo \"file\" ausente: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	snap, err := s.session.Load(header.Filename, data)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rosterView(snap))
}

func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	snap := s.session.Snapshot()
	if snap.Roster == nil {
		s.writeError(w, http.StatusNotFound, mesacheck.ErrNoWorkbook)
		return
	}
	s.writeJSON(w, http.StatusOK, rosterView(snap))
}

// rosterView builds the response from a single snapshot, so the upload ID
// always matches the roster it is sent with.
func rosterView(snap mesacheck.Snapshot) output.RosterView {
	view := output.NewRosterView(snap.Roster, snap.Confirmed.Contains)
	view.UploadID = snap.ID
	view.FileName = snap.Name
	return view
}

// toggleRequest is the body of POST /api/toggle.
type toggleRequest struct {
	UploadID string `json:"upload_id"`
	Coord    string `json:"coord"`
}

// toggleResponse reports the item's new state.
type toggleResponse struct {
	Coord     models.Coord `json:"coord"`
	Confirmed bool         `json:"confirmed"`
	Count     int          `json:"count"`
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("corpo inválido: %w", err))
		return
	}
	c, confirmed, err := s.session.ToggleKeyFor(req.UploadID, req.Coord)
	switch {
	case errors.Is(err, models.ErrInvalidCoord):
		s.writeError(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, mesacheck.ErrStaleUpload):
		s.writeError(w, http.StatusConflict, err)
		return
	case errors.Is(err, mesacheck.ErrUnknownItem), errors.Is(err, mesacheck.ErrNoWorkbook):
		s.writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toggleResponse{
		Coord:     c,
		Confirmed: confirmed,
		Count:     s.session.Count(),
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	data, err := s.session.Render()
	if errors.Is(err, mesacheck.ErrNoWorkbook) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", mesacheck.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.outputName))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	_, _ = w.Write(data)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := output.ToJSON(v, false)
	if err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusRecorder captures the status code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
