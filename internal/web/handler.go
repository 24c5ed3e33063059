package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"dropcord/internal/app"
	"dropcord/pkg/types"
	"dropcord/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

//go:embed templates/*
var templates embed.FS

// multipartMemory is how much of a request is buffered in memory before
// spilling file parts to disk.
const multipartMemory = 32 << 20

// maxBatchFiles and multipartSlack size the request body cap: a batch of
// maxBatchFiles full-size files plus room for multipart headers.
const (
	maxBatchFiles  = 20
	multipartSlack = 1 << 20
)

type ctxKey struct{}

// PageData is rendered into the upload widget
type PageData struct {
	MaxFileSize      int64
	MaxFileSizeLabel string
}

// Server serves the upload widget and the upload endpoint
type Server struct {
	uploader       app.BatchUploader
	maxFileSize    int64
	maxRequestSize int64 // 0 disables the body cap
	tmpl           *template.Template
}

// NewServer creates a server that rejects files over maxFileSize bytes
// before handing the rest to uploader.
func NewServer(uploader app.BatchUploader, maxFileSize int64) (*Server, error) {
	tmpl, err := template.ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s := &Server{
		uploader:    uploader,
		maxFileSize: maxFileSize,
		tmpl:        tmpl,
	}
	if maxFileSize > 0 {
		s.maxRequestSize = maxFileSize*maxBatchFiles + multipartSlack
	}
	return s, nil
}

// Router returns the HTTP routes
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestID)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/api/upload", s.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}).Methods(http.MethodGet)

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.tmpl.ExecuteTemplate(w, "index.html", PageData{
		MaxFileSize:      s.maxFileSize,
		MaxFileSizeLabel: utils.FormatFileSize(s.maxFileSize),
	})
	if err != nil {
		logf(r, "Template error: %v", err)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.maxRequestSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxRequestSize)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logf(r, "Rejected request over %d bytes", tooLarge.Limit)
			writeJSON(w, http.StatusRequestEntityTooLarge, types.BatchResult{
				Error: fmt.Sprintf("Upload exceeds %s in total", utils.FormatFileSize(s.maxRequestSize)),
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, types.BatchResult{Error: "Expected a multipart form with files"})
		return
	}
	defer r.MultipartForm.RemoveAll()

	var headers []*multipart.FileHeader
	headers = append(headers, r.MultipartForm.File["files"]...)
	headers = append(headers, r.MultipartForm.File["file"]...)
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, types.BatchResult{Error: "No files to upload."})
		return
	}

	files := make([]types.FileRecord, 0, len(headers))
	for _, header := range headers {
		if s.maxFileSize > 0 && header.Size > s.maxFileSize {
			writeJSON(w, http.StatusRequestEntityTooLarge, types.BatchResult{
				Error: fmt.Sprintf("%s exceeds the maximum file size of %s", header.Filename, utils.FormatFileSize(s.maxFileSize)),
			})
			return
		}
		record, err := readPart(header)
		if err != nil {
			logf(r, "Error reading %s: %v", header.Filename, err)
			writeJSON(w, http.StatusBadRequest, types.BatchResult{Error: fmt.Sprintf("Could not read %s", header.Filename)})
			return
		}
		files = append(files, record)
	}

	logf(r, "Uploading batch of %d file(s)", len(files))
	result := s.uploader.UploadBatch(r.Context(), files)
	if result.Failed() {
		logf(r, "Batch failed: %s", result.Error)
		writeJSON(w, http.StatusBadGateway, result)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func readPart(header *multipart.FileHeader) (types.FileRecord, error) {
	f, err := header.Open()
	if err != nil {
		return types.FileRecord{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return types.FileRecord{}, err
	}
	return types.FileRecord{Data: data, Name: header.Filename}, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// requestID tags every request with an id, echoed in X-Request-ID
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func logf(r *http.Request, format string, args ...any) {
	id, _ := r.Context().Value(ctxKey{}).(string)
	log.Printf("[%s] %s", id, fmt.Sprintf(format, args...))
}
