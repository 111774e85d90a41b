package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/abhi11j/CodeCatalyst/internal/apply"
	"github.com/abhi11j/CodeCatalyst/internal/domain"
	"github.com/abhi11j/CodeCatalyst/internal/scan"
	"github.com/abhi11j/CodeCatalyst/internal/suggest"
)

// maxBodySize caps request bodies. Apply requests carry suggestion
// details but never file contents, so 1 MiB is generous.
const maxBodySize = 1 << 20

type scanRequest struct {
	Target       string `json:"target"`
	MaxResults   int    `json:"max_results"`
	SuggestionBy int    `json:"suggestion_by"`
	AIKey        string `json:"ai_key"`
	GitHubToken  string `json:"github_token"`
}

type applyRequest struct {
	Target      string              `json:"target"`
	Suggestions []domain.Suggestion `json:"suggestions"`
	Branch      string              `json:"branch"`
	BaseBranch  string              `json:"base_branch"`
	GitHubToken string              `json:"github_token"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "App is running!")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if !decodeBody(w, r, &req) {
		return
	}

	scanner, err := s.scanners(req.GitHubToken)
	if err != nil {
		s.logger.Error("building scanner", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "could not initialize the scanner")
		return
	}

	report, err := scanner.Scan(r.Context(), scan.Request{
		Target:     req.Target,
		MaxResults: req.MaxResults,
		Mode:       suggest.Mode(req.SuggestionBy),
		AIKey:      req.AIKey,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	applier, err := s.appliers(req.GitHubToken)
	if err != nil {
		s.logger.Error("building applier", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "could not initialize the applier")
		return
	}

	result, err := applier.Apply(r.Context(), apply.Options{
		Target:      req.Target,
		Suggestions: req.Suggestions,
		Branch:      req.Branch,
		BaseBranch:  req.BaseBranch,
		GitHubToken: req.GitHubToken,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// decodeBody parses a JSON request body, writing the 400 itself when
// parsing fails.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if err == io.EOF {
			writeError(w, http.StatusBadRequest, "invalid_request", "request body is required")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed request body: "+err.Error())
		return false
	}
	return true
}
