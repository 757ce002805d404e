package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/docmodel/internal/document"
	"github.com/dgallion1/docmodel/internal/element"
	"github.com/dgallion1/docmodel/internal/fuzzy"
	"github.com/dgallion1/docmodel/internal/ingest"
	"github.com/dgallion1/docmodel/internal/placeholder"
	"github.com/dgallion1/docmodel/internal/run"
)

// handleRegisterDocument accepts either a document-tree JSON body or a
// multipart form with a .docx file and registers the resulting document.
func (s *Server) handleRegisterDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	var (
		doc *document.Document
		err error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		doc, err = s.documentFromUpload(r)
	} else {
		doc, err = s.documentFromJSON(r.Body)
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.Put(doc); err != nil {
		if errors.Is(err, ErrStoreFull) {
			jsonError(w, err.Error(), http.StatusInsufficientStorage)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":   doc.ID,
		"filename": doc.Filename,
		"headings": len(doc.Headings(element.FormatText)),
	})
}

func (s *Server) documentFromUpload(r *http.Request) (*document.Document, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("file is required: %w", err)
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".docx") {
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}

	return ingest.FromDocx(data, filename, s.classifier())
}

// documentFromJSON decodes a document tree, assigns IDs when the payload
// carries none, and builds the hierarchy.
func (s *Server) documentFromJSON(r io.Reader) (*document.Document, error) {
	doc, err := document.Decode(r)
	if err != nil {
		return nil, err
	}
	if len(doc.Layouts) == 0 {
		return nil, fmt.Errorf("document has no layouts")
	}
	doc.SetClassifier(s.classifier())
	doc.AssignIDs(0)
	doc.BuildHierarchy()
	return doc, nil
}

// classifier builds the style classifier from the configured similarity
// cutoff.
func (s *Server) classifier() element.Classifier {
	return element.Classifier{Score: fuzzy.Ratio, Cutoff: s.cfg.SimilarityCutoff}
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": s.store.List()})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Get(chi.URLParam(r, "docID"))
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := doc.Encode(w); err != nil {
		s.log.Error("encode document", "error", err)
	}
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if !s.store.Delete(chi.URLParam(r, "docID")) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": true})
}

func (s *Server) handleHeadings(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Get(chi.URLParam(r, "docID"))
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	headings := doc.Headings(formatParam(r))
	if headings == nil {
		headings = []document.HeadingRef{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"headings": headings})
}

func (s *Server) handleHeadingContent(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Get(chi.URLParam(r, "docID"))
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	opts := document.ContentOptions{
		IncludeCaptions:    boolParam(r, "captions"),
		IncludeTables:      boolParam(r, "tables"),
		IncludeSubheadings: boolParam(r, "subheadings"),
		Format:             formatParam(r),
	}
	section := doc.HeadingContent(chi.URLParam(r, "headingID"), opts)
	if section == nil {
		jsonError(w, "heading not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(section)
}

func (s *Server) handleHeadingDetails(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Get(chi.URLParam(r, "docID"))
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	detail := doc.HeadingDetails(chi.URLParam(r, "headingID"), formatParam(r))
	if detail == nil {
		jsonError(w, "heading not found", http.StatusNotFound)
		return
	}

	var body any
	switch document.DetailMode(r.URL.Query().Get("mode")) {
	case document.DetailPosition:
		body = map[string]int{"position": detail.Position}
	case document.DetailParent:
		body = map[string]any{"parent": detail.Parent}
	case document.DetailSiblings:
		body = map[string]any{"siblings": emptyIfNil(detail.Siblings)}
	case document.DetailChildren:
		body = map[string]any{"children": emptyIfNil(detail.Children)}
	default:
		body = detail
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Get(chi.URLParam(r, "docID"))
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc.BuildIndex(doc.Filename))
}

// placeholderBatch is the request body for placeholder application. When
// markdown is set, replacement texts are converted to HTML first.
type placeholderBatch struct {
	Placeholders []placeholder.Placeholder `json:"placeholders"`
	Markdown     bool                      `json:"markdown,omitempty"`
}

func (s *Server) handleApplyPlaceholders(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Get(chi.URLParam(r, "docID"))
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	var batch placeholderBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if batch.Markdown {
		for i := range batch.Placeholders {
			ph := &batch.Placeholders[i]
			if ph.ReplacedText == "" {
				continue
			}
			html, err := run.MarkdownToHTML(ph.ReplacedText)
			if err != nil {
				jsonError(w, "convert markdown: "+err.Error(), http.StatusBadRequest)
				return
			}
			ph.ReplacedText = html
		}
	}

	doc.ApplyPlaceholders(batch.Placeholders)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":  doc.ID,
		"applied": len(batch.Placeholders),
	})
}

func formatParam(r *http.Request) element.RenderFormat {
	if r.URL.Query().Get("format") == "html" {
		return element.FormatHTML
	}
	return element.FormatText
}

func boolParam(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v == "true" || v == "1"
}

func emptyIfNil(refs []document.HeadingRef) []document.HeadingRef {
	if refs == nil {
		return []document.HeadingRef{}
	}
	return refs
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
