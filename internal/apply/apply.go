package apply

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhi11j/CodeCatalyst/internal/domain"
	"github.com/abhi11j/CodeCatalyst/internal/github"
	"github.com/abhi11j/CodeCatalyst/internal/redact"
	"github.com/abhi11j/CodeCatalyst/internal/suggest"
)

// ErrValidation marks request or change-plan validation failures.
var ErrValidation = errors.New("validation failed")

// DefaultBaseBranch is used when the request does not name a base branch.
const DefaultBaseBranch = "main"

// Completer produces a raw model completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// PRCreator opens a pull request and returns its HTML URL.
type PRCreator interface {
	CreatePullRequest(ctx context.Context, owner, repo, title, body, head, base string) (string, error)
}

// Options describe one apply run.
type Options struct {
	Target      string
	Suggestions []domain.Suggestion
	Branch      string
	BaseBranch  string
	GitHubToken string
}

// Result reports what an apply run did.
type Result struct {
	Success      bool     `json:"success"`
	Target       string   `json:"target"`
	Branch       string   `json:"branch,omitempty"`
	ChangedFiles []string `json:"changed_files,omitempty"`
	PRURL        string   `json:"pr_url,omitempty"`
	Message      string   `json:"message,omitempty"`
}

// Applier clones a repository, writes the changes each suggestion calls
// for on a new branch, pushes it, and opens a pull request.
type Applier struct {
	exec   CommandExecutor
	prs    PRCreator
	ai     Completer
	logger *slog.Logger
}

// NewApplier builds an Applier. prs and ai may be nil: without prs no
// pull request is opened, and without ai the suggestions whose source
// is "ai" are skipped.
func NewApplier(exec CommandExecutor, prs PRCreator, ai Completer, logger *slog.Logger) *Applier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Applier{exec: exec, prs: prs, ai: ai, logger: logger}
}

// Apply runs the full flow and returns the resulting branch, files, and
// pull request URL. Validation problems wrap ErrValidation.
func (a *Applier) Apply(ctx context.Context, opts Options) (*Result, error) {
	if opts.Target == "" {
		return nil, fmt.Errorf("%w: target is required", ErrValidation)
	}
	if len(opts.Suggestions) == 0 {
		return nil, fmt.Errorf("%w: at least one suggestion is required", ErrValidation)
	}
	owner, repo, err := github.ParseTarget(opts.Target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	base := opts.BaseBranch
	if base == "" {
		base = DefaultBaseBranch
	}
	branch := opts.Branch
	if branch == "" {
		branch = fmt.Sprintf("auto/apply-suggestions-%d", time.Now().Unix())
	}

	workDir, err := os.MkdirTemp("", "codecatalyst-apply-*")
	if err != nil {
		return nil, fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	cloneURL := fmt.Sprintf("https://github.com/%s/%s.git", owner, repo)
	if opts.GitHubToken != "" {
		cloneURL = fmt.Sprintf("https://x-access-token:%s@github.com/%s/%s.git", opts.GitHubToken, owner, repo)
	}

	a.logger.Info("cloning repository", "target", opts.Target, "base", base)
	out, err := a.exec.Execute(ctx, workDir, "git", "clone", "--branch", base, "--single-branch", "--depth", "1", cloneURL, "repo")
	if err != nil {
		return nil, fmt.Errorf("cloning %s/%s: %s", owner, repo, redact.Secrets(commandDetail(out, err)))
	}
	repoDir := filepath.Join(workDir, "repo")

	if out, err = a.exec.Execute(ctx, repoDir, "git", "checkout", "-B", branch); err != nil {
		return nil, fmt.Errorf("creating branch %s: %s", branch, redact.Secrets(commandDetail(out, err)))
	}

	changed, files, err := a.applySuggestions(ctx, repoDir, opts.Suggestions)
	if err != nil {
		return nil, err
	}
	if !changed {
		return &Result{
			Success: true,
			Target:  opts.Target,
			Branch:  branch,
			Message: "No changes needed",
		}, nil
	}

	if out, err = a.exec.Execute(ctx, repoDir, "git", "add", "-A"); err != nil {
		return nil, fmt.Errorf("staging changes: %s", redact.Secrets(commandDetail(out, err)))
	}
	msg := commitMessage(opts.Suggestions)
	if out, err = a.exec.Execute(ctx, repoDir, "git", "commit", "-m", msg); err != nil {
		return nil, fmt.Errorf("committing changes: %s", redact.Secrets(commandDetail(out, err)))
	}
	if out, err = a.exec.Execute(ctx, repoDir, "git", "push", "--set-upstream", "origin", branch); err != nil {
		return nil, fmt.Errorf("pushing branch %s: %s", branch, redact.Secrets(commandDetail(out, err)))
	}

	result := &Result{
		Success:      true,
		Target:       opts.Target,
		Branch:       branch,
		ChangedFiles: files,
		Message:      msg,
	}
	if a.prs != nil {
		prURL, err := a.prs.CreatePullRequest(ctx, owner, repo, msg, prBody(opts.Suggestions), branch, base)
		if err != nil {
			// The branch is already pushed, so a PR failure is reported
			// rather than failing the run.
			a.logger.Warn("pull request creation failed", "target", opts.Target, "error", err)
			result.Message = fmt.Sprintf("%s (pull request creation failed: %v)", msg, err)
		} else {
			result.PRURL = prURL
		}
	}
	return result, nil
}

// applySuggestions writes the file changes for each suggestion and
// reports which paths were touched.
func (a *Applier) applySuggestions(ctx context.Context, repoDir string, suggestions []domain.Suggestion) (bool, []string, error) {
	changed := false
	var files []string
	for _, s := range suggestions {
		if s.Source == suggest.SourceAI {
			if a.ai == nil {
				a.logger.Warn("skipping AI suggestion, no completer configured", "title", s.Title)
				continue
			}
			did, touched, err := a.applyAISuggestion(ctx, repoDir, s)
			if err != nil {
				return changed, files, err
			}
			changed = changed || did
			files = append(files, touched...)
			continue
		}
		did, touched, err := applyTemplate(repoDir, s)
		if err != nil {
			return changed, files, err
		}
		changed = changed || did
		files = append(files, touched...)
	}
	return changed, files, nil
}

// applyAISuggestion asks the model for a structured change plan and
// applies it.
func (a *Applier) applyAISuggestion(ctx context.Context, repoDir string, s domain.Suggestion) (bool, []string, error) {
	content, err := a.ai.Complete(ctx, buildChangePrompt(s))
	if err != nil {
		return false, nil, fmt.Errorf("requesting change plan for %q: %w", s.Title, err)
	}
	changes, err := parseChangePlan(content)
	if err != nil {
		return false, nil, fmt.Errorf("change plan for %q: %w", s.Title, err)
	}
	changed, err := applyChanges(repoDir, changes)
	if err != nil {
		return changed, nil, fmt.Errorf("applying change plan for %q: %w", s.Title, err)
	}
	files := make([]string, 0, len(changes))
	for _, c := range changes {
		files = append(files, c.Path)
	}
	return changed, files, nil
}

func commitMessage(suggestions []domain.Suggestion) string {
	titles := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		titles = append(titles, s.Title)
	}
	return "Apply automated suggestions: " + strings.Join(titles, ", ")
}

func prBody(suggestions []domain.Suggestion) string {
	var b strings.Builder
	b.WriteString("Automated changes for the following suggestions:\n\n")
	for _, s := range suggestions {
		fmt.Fprintf(&b, "- **%s** (%s): %s\n", s.Title, s.Priority, s.Detail)
	}
	return b.String()
}

// commandDetail folds command output into the error text so git
// failures are diagnosable from the response.
func commandDetail(out []byte, err error) string {
	detail := strings.TrimSpace(string(out))
	if detail == "" {
		return err.Error()
	}
	return fmt.Sprintf("%v: %s", err, detail)
}
