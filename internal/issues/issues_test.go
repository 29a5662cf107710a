package issues

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-github/v68/github"
	"github.com/zulandar/checkgate/internal/models"
	"github.com/zulandar/checkgate/internal/validation"
)

type mockIssues struct {
	created []*github.IssueRequest
	owner   string
	repo    string
	err     error
}

func (m *mockIssues) Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error) {
	m.owner = owner
	m.repo = repo
	m.created = append(m.created, issue)
	if m.err != nil {
		return nil, nil, m.err
	}
	return &github.Issue{HTMLURL: github.String("https://github.com/acme/qa/issues/7")}, nil, nil
}

func failedDetail() validation.Detail {
	itemID := uint(3)
	return validation.Detail{
		Validation: models.Validation{
			SessionID:     1,
			Phase:         models.Phase1,
			ItemID:        &itemID,
			Status:        models.StatusFail,
			ActualResult:  "timeout after 30s",
			Notes:         "flaky under load",
			ValidatorName: "alice",
			ValidatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		ItemDescription: "Verify export completes",
	}
}

func TestReportFailure(t *testing.T) {
	mock := &mockIssues{}
	r, err := NewReporter(context.Background(), ReporterOpts{Owner: "acme", Repo: "qa", Issues: mock})
	if err != nil {
		t.Fatalf("NewReporter: %v", err)
	}

	s := &models.Session{Name: "Release 4.2"}
	url, err := r.ReportFailure(context.Background(), s, failedDetail())
	if err != nil {
		t.Fatalf("ReportFailure: %v", err)
	}
	if url != "https://github.com/acme/qa/issues/7" {
		t.Errorf("url = %q", url)
	}
	if mock.owner != "acme" || mock.repo != "qa" {
		t.Errorf("filed in %s/%s, want acme/qa", mock.owner, mock.repo)
	}
	if len(mock.created) != 1 {
		t.Fatalf("created %d issues, want 1", len(mock.created))
	}

	req := mock.created[0]
	if got := req.GetTitle(); got != "QA failure: Verify export completes" {
		t.Errorf("Title = %q", got)
	}
	body := req.GetBody()
	for _, want := range []string{"Release 4.2", "phase 1", "timeout after 30s", "flaky under load", "alice"} {
		if !strings.Contains(body, want) {
			t.Errorf("Body missing %q:\n%s", want, body)
		}
	}
	if req.Labels == nil || len(*req.Labels) != 1 || (*req.Labels)[0] != "qa-failure" {
		t.Errorf("Labels = %v, want [qa-failure]", req.Labels)
	}
}

func TestReportFailure_NonFailureRejected(t *testing.T) {
	mock := &mockIssues{}
	r, err := NewReporter(context.Background(), ReporterOpts{Owner: "acme", Repo: "qa", Issues: mock})
	if err != nil {
		t.Fatalf("NewReporter: %v", err)
	}

	d := failedDetail()
	d.Status = models.StatusPass
	_, err = r.ReportFailure(context.Background(), &models.Session{Name: "Run"}, d)
	if err == nil {
		t.Fatal("expected error for non-failure validation")
	}
	if len(mock.created) != 0 {
		t.Errorf("created %d issues, want 0", len(mock.created))
	}
}

func TestReportFailure_APIError(t *testing.T) {
	mock := &mockIssues{err: errors.New("403 forbidden")}
	r, err := NewReporter(context.Background(), ReporterOpts{Owner: "acme", Repo: "qa", Issues: mock})
	if err != nil {
		t.Fatalf("NewReporter: %v", err)
	}

	_, err = r.ReportFailure(context.Background(), &models.Session{Name: "Run"}, failedDetail())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "403 forbidden") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "403 forbidden")
	}
}

func TestNewReporter_Validation(t *testing.T) {
	if _, err := NewReporter(context.Background(), ReporterOpts{Repo: "qa", Issues: &mockIssues{}}); err == nil {
		t.Error("expected error for missing owner")
	}
	if _, err := NewReporter(context.Background(), ReporterOpts{Owner: "acme", Repo: "qa"}); err == nil {
		t.Error("expected error for missing token")
	}
}
