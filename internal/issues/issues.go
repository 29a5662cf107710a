// Package issues files GitHub issues for failed validations so QA findings
// land in the tracker without manual copying.
package issues

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"
	"github.com/zulandar/checkgate/internal/models"
	"github.com/zulandar/checkgate/internal/validation"
	"golang.org/x/oauth2"
)

// issuesService abstracts the GitHub issues API, enabling test mocks.
type issuesService interface {
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
}

// Reporter files issues in a single GitHub repository.
type Reporter struct {
	issues issuesService
	owner  string
	repo   string
}

// ReporterOpts holds parameters for creating a Reporter.
type ReporterOpts struct {
	Token string
	Owner string
	Repo  string
	// For testing: inject a mock service instead of the real GitHub API.
	Issues issuesService
}

// NewReporter creates a Reporter authenticated with a static token.
func NewReporter(ctx context.Context, opts ReporterOpts) (*Reporter, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, fmt.Errorf("issues: owner and repo are required")
	}
	if opts.Issues == nil && opts.Token == "" {
		return nil, fmt.Errorf("issues: github token is required")
	}

	r := &Reporter{owner: opts.Owner, repo: opts.Repo}
	if opts.Issues != nil {
		r.issues = opts.Issues
	} else {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		r.issues = github.NewClient(oauth2.NewClient(ctx, ts)).Issues
	}
	return r, nil
}

// ReportFailure files an issue for a failed validation. Returns the issue's
// HTML URL.
func (r *Reporter) ReportFailure(ctx context.Context, s *models.Session, d validation.Detail) (string, error) {
	if d.Status != models.StatusFail {
		return "", fmt.Errorf("issues: validation %d is %s, not a failure", d.ID, d.Status)
	}

	title := fmt.Sprintf("QA failure: %s", d.ItemDescription)

	var bodyLines []string
	bodyLines = append(bodyLines, fmt.Sprintf("Session: %s (phase %d)", s.Name, d.Phase))
	bodyLines = append(bodyLines, fmt.Sprintf("Item: %s", d.ItemDescription))
	if d.ActualResult != "" {
		bodyLines = append(bodyLines, fmt.Sprintf("Actual result: %s", d.ActualResult))
	}
	if d.Notes != "" {
		bodyLines = append(bodyLines, fmt.Sprintf("Notes: %s", d.Notes))
	}
	if d.ValidatorName != "" {
		bodyLines = append(bodyLines, fmt.Sprintf("Validated by: %s", d.ValidatorName))
	}
	bodyLines = append(bodyLines, fmt.Sprintf("Recorded at: %s", d.ValidatedAt.Format("2006-01-02 15:04:05 MST")))

	req := &github.IssueRequest{
		Title:  github.String(title),
		Body:   github.String(strings.Join(bodyLines, "\n")),
		Labels: &[]string{"qa-failure"},
	}

	issue, _, err := r.issues.Create(ctx, r.owner, r.repo, req)
	if err != nil {
		return "", fmt.Errorf("issues: creating issue in %s/%s: %w", r.owner, r.repo, err)
	}
	return issue.GetHTMLURL(), nil
}
