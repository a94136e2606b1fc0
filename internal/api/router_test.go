package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/campusconnect/alumni-portal/internal/api"
	"github.com/campusconnect/alumni-portal/internal/app"
	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

type mailbox struct {
	mu   sync.Mutex
	mail []ports.Mail
}

func (q *mailbox) Enqueue(m ports.Mail) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.mail = append(q.mail, m)
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Results int             `json:"results"`
	Data    json.RawMessage `json:"data"`
}

type harness struct {
	t      *testing.T
	server *httptest.Server
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	repos := app.MemoryRepositories()
	services := app.NewServices(repos, &mailbox{}, app.Settings{
		JWTSecret:       "integration-secret",
		TokenTTL:        time.Hour,
		Location:        time.UTC,
		SessionDuration: 2 * time.Hour,
		FrontendURL:     "http://localhost:3000",
	}, zerolog.Nop())

	report, err := services.PreRegistrations.Seed(context.Background(), []*domain.PreRegistration{
		{FullName: "Kavya Reddy", Email: "kavya@campus.edu", Role: domain.RoleStudent,
			RoleFields: domain.RoleFields{StudentID: "S2101", Department: "CSE", YearOfStudy: "E-3"}},
		{FullName: "Imran Shaik", Email: "imran@campus.edu", Role: domain.RoleStudent,
			RoleFields: domain.RoleFields{StudentID: "S2202", Department: "ECE", YearOfStudy: "E-2"}},
		{FullName: "Dr. Arun Menon", Email: "arun@campus.edu", Role: domain.RoleFaculty,
			RoleFields: domain.RoleFields{FacultyID: "F301", Department: "MECH", Designation: "Professor"}},
		{FullName: "Portal Admin", Email: "admin@campus.edu", Role: domain.RoleAdmin,
			RoleFields: domain.RoleFields{AdminID: "ADM01"}},
	})
	if err != nil || report.Created != 4 {
		t.Fatalf("seed: %+v %v", report, err)
	}

	e := api.NewRouter(services, api.Options{Registry: prometheus.NewRegistry()}, zerolog.Nop())
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return &harness{t: t, server: srv}
}

func (h *harness) do(method, path, token string, body any) (int, envelope) {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			h.t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, h.server.URL+path, &buf)
	if err != nil {
		h.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := h.server.Client().Do(req)
	if err != nil {
		h.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()

	var env envelope
	_ = json.NewDecoder(res.Body).Decode(&env)
	return res.StatusCode, env
}

func (h *harness) signup(body map[string]string) string {
	h.t.Helper()
	code, env := h.do(http.MethodPost, "/api/auth/signup", "", body)
	if code != http.StatusCreated || env.Token == "" {
		h.t.Fatalf("signup %s: %d %+v", body["email"], code, env)
	}
	return env.Token
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode data %s: %v", raw, err)
	}
	return v
}

// ---------------------------------------------------------------------------
// Scenarios
// ---------------------------------------------------------------------------

func TestAuthFlow(t *testing.T) {
	h := newHarness(t)

	// Eligibility exposes the pre-registered fields before signup.
	code, env := h.do(http.MethodPost, "/api/auth/check-eligibility", "", map[string]string{"email": "kavya@campus.edu", "role": "student"})
	if code != http.StatusOK {
		t.Fatalf("check-eligibility: %d %+v", code, env)
	}
	if got := decode[map[string]string](t, env.Data); got["studentId"] != "S2101" {
		t.Fatalf("eligibility data: %v", got)
	}

	// A mismatching identity field names the field.
	code, env = h.do(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "kavya@campus.edu", "password": "secret1", "role": "student",
		"studentId": "S9999", "department": "CSE", "yearOfStudy": "E-3",
	})
	if code != http.StatusBadRequest || env.Status != "error" || env.Message != "Student ID does not match our records" {
		t.Fatalf("mismatch: %d %+v", code, env)
	}

	token := h.signup(map[string]string{
		"email": "kavya@campus.edu", "password": "secret1", "role": "student",
		"studentId": "S2101", "department": "CSE", "yearOfStudy": "E-3",
	})

	// The record is consumed.
	code, _ = h.do(http.MethodPost, "/api/auth/check-eligibility", "", map[string]string{"email": "kavya@campus.edu", "role": "student"})
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 after signup, got %d", code)
	}
	code, _ = h.do(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "kavya@campus.edu", "password": "secret1", "role": "student",
		"studentId": "S2101", "department": "CSE", "yearOfStudy": "E-3",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 on second signup, got %d", code)
	}

	// Wrong password and unknown email look the same.
	c1, e1 := h.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "kavya@campus.edu", "password": "wrong-pw"})
	c2, e2 := h.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ghost@campus.edu", "password": "wrong-pw"})
	if c1 != http.StatusUnauthorized || c2 != http.StatusUnauthorized || e1.Message != e2.Message {
		t.Fatalf("login failures differ: %d %q / %d %q", c1, e1.Message, c2, e2.Message)
	}

	code, env = h.do(http.MethodGet, "/api/auth/me", token, nil)
	if code != http.StatusOK {
		t.Fatalf("me: %d %+v", code, env)
	}
	me := decode[struct {
		User map[string]any `json:"user"`
	}](t, env.Data)
	if me.User["email"] != "kavya@campus.edu" {
		t.Fatalf("me: %v", me.User)
	}
	if _, leaked := me.User["passwordHash"]; leaked {
		t.Fatal("password hash exposed")
	}

	code, _ = h.do(http.MethodPost, "/api/auth/logout", token, nil)
	if code != http.StatusOK {
		t.Fatalf("logout: %d", code)
	}
	code, _ = h.do(http.MethodGet, "/api/auth/me", token, nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected revoked token to be rejected, got %d", code)
	}
}

func TestSessionAndLedgerFlow(t *testing.T) {
	h := newHarness(t)

	admin := h.signup(map[string]string{"email": "admin@campus.edu", "password": "secret1", "role": "admin", "adminId": "ADM01"})
	faculty := h.signup(map[string]string{"email": "arun@campus.edu", "password": "secret1", "role": "faculty", "facultyId": "F301", "department": "MECH"})
	student := h.signup(map[string]string{
		"email": "kavya@campus.edu", "password": "secret1", "role": "student",
		"studentId": "S2101", "department": "CSE", "yearOfStudy": "E-3",
	})
	junior := h.signup(map[string]string{
		"email": "imran@campus.edu", "password": "secret1", "role": "student",
		"studentId": "S2202", "department": "ECE", "yearOfStudy": "E-2",
	})

	// --- Sessions ---
	date := time.Now().UTC().Add(72 * time.Hour).Format("2006-01-02")
	code, env := h.do(http.MethodPost, "/api/sessions", student, map[string]any{
		"title": "Resume clinic", "date": date, "time": "10:00", "venue": "Hall A",
	})
	if code != http.StatusForbidden {
		t.Fatalf("students must not create sessions, got %d", code)
	}

	code, env = h.do(http.MethodPost, "/api/sessions", faculty, map[string]any{
		"title": "Resume <b>clinic</b>", "date": date, "time": "10:00", "venue": "Hall A", "maxParticipants": 1,
	})
	if code != http.StatusCreated {
		t.Fatalf("create session: %d %+v", code, env)
	}
	created := decode[struct {
		Session domain.Session `json:"session"`
	}](t, env.Data).Session
	if created.Title != "Resume clinic" || created.Status != domain.SessionUpcoming || created.SessionHead != "Dr. Arun Menon" {
		t.Fatalf("unexpected session: %+v", created)
	}

	joinPath := "/api/sessions/" + created.ID + "/join"
	if code, env = h.do(http.MethodPost, joinPath, student, nil); code != http.StatusOK {
		t.Fatalf("join: %d %+v", code, env)
	}
	if code, env = h.do(http.MethodPost, joinPath, student, nil); code != http.StatusBadRequest || env.Message != domain.ErrAlreadyJoined.Error() {
		t.Fatalf("second join: %d %+v", code, env)
	}
	if code, env = h.do(http.MethodPost, joinPath, junior, nil); code != http.StatusBadRequest || env.Message != domain.ErrSessionFull.Error() {
		t.Fatalf("join full session: %d %+v", code, env)
	}

	code, env = h.do(http.MethodGet, "/api/sessions/stats", student, nil)
	if stats := decode[ports.SessionStats](t, env.Data); code != http.StatusOK || stats.Total != 1 || stats.Upcoming != 1 {
		t.Fatalf("stats: %d %s", code, env.Data)
	}

	if code, _ = h.do(http.MethodPut, "/api/sessions/"+created.ID, faculty, map[string]any{"venue": "Hall B"}); code != http.StatusForbidden {
		t.Fatalf("faculty update should be forbidden, got %d", code)
	}
	code, env = h.do(http.MethodPut, "/api/sessions/"+created.ID, admin, map[string]any{"status": "cancelled"})
	if code != http.StatusOK {
		t.Fatalf("cancel: %d %+v", code, env)
	}
	code, env = h.do(http.MethodGet, "/api/sessions?status=cancelled", admin, nil)
	if code != http.StatusOK || env.Results != 1 {
		t.Fatalf("list cancelled: %d %+v", code, env)
	}

	// --- Submissions ---
	code, env = h.do(http.MethodPost, "/api/submissions", junior, map[string]any{
		"title": "Robot arm", "description": "Final year project", "category": "Academic Project",
	})
	if code != http.StatusForbidden {
		t.Fatalf("E-2 student should be ineligible, got %d %+v", code, env)
	}

	code, env = h.do(http.MethodPost, "/api/submissions", student, map[string]any{
		"title": "Robot arm", "description": "Final year project", "category": "Academic Project",
	})
	if code != http.StatusCreated {
		t.Fatalf("create submission: %d %+v", code, env)
	}
	sub := decode[struct {
		Submission domain.Submission `json:"submission"`
	}](t, env.Data).Submission
	if sub.Status != domain.ReviewPending || sub.StudentName != "Kavya Reddy" || sub.YearOfStudy != "E-3" {
		t.Fatalf("unexpected submission: %+v", sub)
	}

	reviewPath := "/api/submissions/" + sub.ID
	if code, _ = h.do(http.MethodPut, reviewPath, student, map[string]any{"status": "approved"}); code != http.StatusForbidden {
		t.Fatalf("student review should be forbidden, got %d", code)
	}
	if code, env = h.do(http.MethodPut, reviewPath, admin, map[string]any{"status": "approved", "reviewNote": "Well done"}); code != http.StatusOK {
		t.Fatalf("approve: %d %+v", code, env)
	}
	if code, env = h.do(http.MethodPut, reviewPath, admin, map[string]any{"status": "pending"}); code != http.StatusBadRequest {
		t.Fatalf("approved -> pending should be rejected, got %d %+v", code, env)
	}

	code, env = h.do(http.MethodGet, "/api/submissions", junior, nil)
	if code != http.StatusOK || env.Results != 0 {
		t.Fatalf("other students must not see the submission: %d %+v", code, env)
	}

	// --- Notifications ---
	code, env = h.do(http.MethodGet, "/api/notifications", student, nil)
	if code != http.StatusOK {
		t.Fatalf("inbox: %d", code)
	}
	inbox := decode[ports.Inbox](t, env.Data)
	if inbox.Unread == 0 {
		t.Fatalf("expected unread notifications for the student, got %+v", inbox)
	}
	code, env = h.do(http.MethodPut, "/api/notifications/read-all", student, nil)
	if code != http.StatusOK {
		t.Fatalf("read-all: %d", code)
	}
	code, env = h.do(http.MethodGet, "/api/notifications", student, nil)
	if inbox = decode[ports.Inbox](t, env.Data); inbox.Unread != 0 {
		t.Fatalf("expected no unread notifications, got %d", inbox.Unread)
	}
}

func TestRouter_Probes(t *testing.T) {
	h := newHarness(t)

	if code, _ := h.do(http.MethodGet, "/health", "", nil); code != http.StatusOK {
		t.Errorf("liveness: %d", code)
	}
	if code, _ := h.do(http.MethodGet, "/health/ready", "", nil); code != http.StatusOK {
		t.Errorf("readiness: %d", code)
	}
	if code, env := h.do(http.MethodGet, "/api/sessions", "", nil); code != http.StatusUnauthorized || env.Status != "error" {
		t.Errorf("unauthenticated list: %d %+v", code, env)
	}
	if code, _ := h.do(http.MethodGet, "/api/nowhere", "", nil); code != http.StatusNotFound {
		t.Errorf("unknown route: %d", code)
	}
}
