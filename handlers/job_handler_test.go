package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/nyagah254/job_board/database"
	"github.com/nyagah254/job_board/models"
)

func TestSearchJobsFiltersByTitleOrCompany(t *testing.T) {
	app := setupApp(t)
	employer := createUser(t, "Acme HR", "hr@acme.test", models.RoleEmployer)
	seedJob(t, employer, "Go Developer", "Acme")
	seedJob(t, employer, "Data Analyst", "Globex")
	seedJob(t, employer, "Product Manager", "Gopher Labs")

	resp := doRequest(t, app, http.MethodGet, "/api/v1/jobs?search=Go", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	jobs := body["job"].([]any)
	if len(jobs) != 2 {
		t.Fatalf("expected 2 matches for 'Go' across title and company, got %d", len(jobs))
	}

	all := doRequest(t, app, http.MethodGet, "/api/v1/jobs", nil, nil)
	allBody := decodeBody(t, all)
	if jobs := allBody["job"].([]any); len(jobs) != 3 {
		t.Errorf("expected all 3 jobs without a filter, got %d", len(jobs))
	}
}

func TestSearchJobsIgnoresCase(t *testing.T) {
	app := setupApp(t)
	employer := createUser(t, "Acme HR", "hr@acme.test", models.RoleEmployer)
	seedJob(t, employer, "Go Developer", "ACME")

	for _, search := range []string{"go developer", "GO DEVELOPER", "acme", "Acme"} {
		resp := doRequest(t, app, http.MethodGet, "/api/v1/jobs?search="+url.QueryEscape(search), nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("search %q: expected 200, got %d", search, resp.StatusCode)
		}
		body := decodeBody(t, resp)
		if jobs := body["job"].([]any); len(jobs) != 1 {
			t.Errorf("search %q: expected 1 match regardless of case, got %d", search, len(jobs))
		}
	}
}

func TestGetJobNotFound(t *testing.T) {
	app := setupApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/jobs/00000000-0000-0000-0000-000000000000", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCreateJobTakesOwnerFromSession(t *testing.T) {
	app := setupApp(t)
	employer := createUser(t, "Acme HR", "hr@acme.test", models.RoleEmployer)

	payload := map[string]any{
		"title":       "Go Developer",
		"company":     "Acme",
		"location":    "Remote",
		"salary":      "100k",
		"description": "Build services",
	}
	resp := doRequest(t, app, http.MethodPost, "/api/v1/jobs", payload, authCookies(t, employer))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, readBody(t, resp))
	}

	var job models.Job
	if err := database.DB.First(&job, "title = ?", "Go Developer").Error; err != nil {
		t.Fatalf("expected job row: %v", err)
	}
	if job.OwnerEmail != employer.Email {
		t.Errorf("expected owner %q, got %q", employer.Email, job.OwnerEmail)
	}
}

func TestCreateJobRequiresEmployerRole(t *testing.T) {
	app := setupApp(t)
	seeker := createUser(t, "Jane Doe", "jane@seeker.test", models.RoleJobSeeker)

	payload := map[string]any{"title": "Go Developer", "company": "Acme"}
	resp := doRequest(t, app, http.MethodPost, "/api/v1/jobs", payload, authCookies(t, seeker))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestUpdateJobRejectsNonOwner(t *testing.T) {
	app := setupApp(t)
	owner := createUser(t, "Acme HR", "hr@acme.test", models.RoleEmployer)
	intruder := createUser(t, "Other HR", "hr@other.test", models.RoleEmployer)
	job := seedJob(t, owner, "Go Developer", "Acme")

	payload := map[string]any{"title": "Hijacked", "company": "Evil Corp"}
	resp := doRequest(t, app, http.MethodPut, "/api/v1/jobs/"+job.ID.String(), payload, authCookies(t, intruder))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}

	var unchanged models.Job
	database.DB.First(&unchanged, "id = ?", job.ID)
	if unchanged.Title != "Go Developer" {
		t.Errorf("job must be unchanged after rejected update, got %q", unchanged.Title)
	}
}

func TestDeleteJob(t *testing.T) {
	app := setupApp(t)
	owner := createUser(t, "Acme HR", "hr@acme.test", models.RoleEmployer)
	job := seedJob(t, owner, "Go Developer", "Acme")

	resp := doRequest(t, app, http.MethodDelete, "/api/v1/jobs/"+job.ID.String(), nil, authCookies(t, owner))
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if n := countRows(t, &models.Job{}); n != 0 {
		t.Errorf("expected job deleted, %d rows left", n)
	}
}

func TestListEmployerJobs(t *testing.T) {
	app := setupApp(t)
	owner := createUser(t, "Acme HR", "hr@acme.test", models.RoleEmployer)
	other := createUser(t, "Other HR", "hr@other.test", models.RoleEmployer)
	seedJob(t, owner, "Go Developer", "Acme")
	seedJob(t, other, "Rust Developer", "Other")

	resp := doRequest(t, app, http.MethodGet, "/api/v1/jobs/mine", nil, authCookies(t, owner))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	jobs := body["jobs"].([]any)
	if len(jobs) != 1 {
		t.Fatalf("expected only own jobs, got %d", len(jobs))
	}
	if jobs[0].(map[string]any)["title"] != "Go Developer" {
		t.Errorf("unexpected job list: %v", jobs)
	}
}
