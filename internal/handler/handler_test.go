package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/pazorg/candidatetrack/internal/domain"
	"github.com/pazorg/candidatetrack/internal/service"
)

// memCandidateRepo is an in-memory CandidateRepository for tests.
type memCandidateRepo struct {
	byID map[string]*domain.Candidate
}

func newMemCandidateRepo() *memCandidateRepo {
	return &memCandidateRepo{byID: make(map[string]*domain.Candidate)}
}

func (m *memCandidateRepo) List(ctx context.Context) ([]*domain.Candidate, error) {
	out := make([]*domain.Candidate, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (m *memCandidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCandidateRepo) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	var best *domain.Candidate
	for _, c := range m.byID {
		if c.Email != email {
			continue
		}
		if best == nil || c.Timestamp.After(best.Timestamp) {
			best = c
		}
	}
	if best == nil {
		return nil, domain.ErrNotFound
	}
	cp := *best
	return &cp, nil
}

func (m *memCandidateRepo) Upsert(ctx context.Context, c *domain.Candidate) error {
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memCandidateRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memResumeStore struct {
	stored []string
}

func (m *memResumeStore) Store(ctx context.Context, candidateID, filename string, size int64, r io.Reader) (string, error) {
	io.Copy(io.Discard, r)
	url := fmt.Sprintf("https://files.test/%s/%s", candidateID, filename)
	m.stored = append(m.stored, url)
	return url, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFunnel(repo *memCandidateRepo) *service.FunnelService {
	return service.NewFunnelService(repo, &memResumeStore{}, testLogger())
}

func postJSON(t *testing.T, h http.Handler, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestIntakeHandlerCreatesCandidate(t *testing.T) {
	repo := newMemCandidateRepo()
	h := NewIntakeHandler(newFunnel(repo), testLogger())

	rec := postJSON(t, h, "/api/intake", IntakeRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "Jane.Doe@Example.com",
		Phone:     "(416) 555-0100",
		Questionnaire: domain.Questionnaire{
			Occupation:            "full-time",
			LegallyEntitledCanada: "yes",
		},
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	resp := decode[IntakeResponse](t, rec)
	if len(resp.ID) != 8 {
		t.Errorf("id = %q, want 8 characters", resp.ID)
	}
	if resp.Status != domain.StatusNew {
		t.Errorf("status = %q, want %q", resp.Status, domain.StatusNew)
	}
	if resp.Disqualified {
		t.Error("unexpected disqualification")
	}
}

func TestIntakeHandlerReportsDisqualification(t *testing.T) {
	repo := newMemCandidateRepo()
	h := NewIntakeHandler(newFunnel(repo), testLogger())

	rec := postJSON(t, h, "/api/intake", IntakeRequest{
		FirstName: "Sam",
		LastName:  "Lee",
		Email:     "sam@example.com",
		Questionnaire: domain.Questionnaire{
			Occupation:            "student",
			LegallyEntitledCanada: "no",
		},
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode[IntakeResponse](t, rec)
	if !resp.Disqualified {
		t.Fatal("expected disqualification")
	}
	if resp.DisqualReason != domain.DisqualificationReason {
		t.Errorf("reason = %q, want %q", resp.DisqualReason, domain.DisqualificationReason)
	}
}

func TestIntakeHandlerRejectsMissingName(t *testing.T) {
	repo := newMemCandidateRepo()
	h := NewIntakeHandler(newFunnel(repo), testLogger())

	rec := postJSON(t, h, "/api/intake", IntakeRequest{Email: "x@example.com"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestStatusHandler(t *testing.T) {
	repo := newMemCandidateRepo()
	funnel := newFunnel(repo)
	h := NewStatusHandler(funnel, testLogger())

	if _, err := funnel.SubmitIntake(context.Background(), service.IntakeSubmission{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	}); err != nil {
		t.Fatalf("seed intake: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/status?email=jane@example.com", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode[StatusResponse](t, rec)
	if resp.Stage != string(domain.StageApplied) {
		t.Errorf("stage = %q, want %q", resp.Stage, domain.StageApplied)
	}
	if resp.Label == "" || resp.Message == "" {
		t.Error("expected label and message to be populated")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing email: status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/status?email=ghost@example.com", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown email: status = %d, want 404", rec.Code)
	}
}

func TestAssessmentLookupHandler(t *testing.T) {
	repo := newMemCandidateRepo()
	funnel := newFunnel(repo)
	h := NewAssessmentLookupHandler(funnel, testLogger())

	c, err := funnel.SubmitIntake(context.Background(), service.IntakeSubmission{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("seed intake: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/assessment/lookup?email=JANE@example.com", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode[AssessmentLookupResponse](t, rec)
	if resp.ID != c.ID || resp.Completed {
		t.Errorf("got %+v, want id %s and not completed", resp, c.ID)
	}

	// completed candidates get a marker, not an error
	stored := repo.byID[c.ID]
	stored.Status = domain.StatusAssessmentComplete
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("completed lookup: status = %d", rec.Code)
	}
	resp = decode[AssessmentLookupResponse](t, rec)
	if !resp.Completed {
		t.Error("expected completed marker")
	}
}

func TestAssessmentSubmitHandler(t *testing.T) {
	repo := newMemCandidateRepo()
	funnel := newFunnel(repo)
	h := NewAssessmentSubmitHandler(funnel, testLogger())

	c, err := funnel.SubmitIntake(context.Background(), service.IntakeSubmission{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("seed intake: %v", err)
	}

	a := domain.AssessmentData{
		Competitiveness:    8,
		MoneyMotivation:    7,
		LikertResponses:    make(map[int]int),
		TrueScaleResponses: make(map[int]int),
	}
	for _, q := range domain.LikertQuestions {
		a.LikertResponses[q.ID] = 3
	}
	for _, q := range domain.TrueScaleQuestions {
		a.TrueScaleResponses[q.ID] = 0
	}

	mux := http.NewServeMux()
	mux.Handle("POST /api/candidates/{id}/assessment", h)

	rec := postJSON(t, mux, "/api/candidates/"+c.ID+"/assessment", AssessmentSubmitRequest{Assessment: a})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode[AssessmentSubmitResponse](t, rec)
	if resp.Score != 99 {
		t.Errorf("score = %d, want 99", resp.Score)
	}
	if resp.FitCategory != domain.FitHighFit {
		t.Errorf("fit = %q, want %q", resp.FitCategory, domain.FitHighFit)
	}
	if resp.Status != domain.StatusAssessmentComplete {
		t.Errorf("status = %q, want %q", resp.Status, domain.StatusAssessmentComplete)
	}

	// resubmission is a conflict
	rec = postJSON(t, mux, "/api/candidates/"+c.ID+"/assessment", AssessmentSubmitRequest{Assessment: a})
	if rec.Code != http.StatusConflict {
		t.Errorf("resubmission: status = %d, want 409", rec.Code)
	}
}

func TestResumeUploadHandler(t *testing.T) {
	repo := newMemCandidateRepo()
	store := &memResumeStore{}
	funnel := service.NewFunnelService(repo, store, testLogger())
	h := NewResumeUploadHandler(funnel, testLogger())

	c, err := funnel.SubmitIntake(context.Background(), service.IntakeSubmission{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("seed intake: %v", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("resume", "resume.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte("fake pdf content"))
	mw.Close()

	mux := http.NewServeMux()
	mux.Handle("POST /api/candidates/{id}/resume", h)

	req := httptest.NewRequest(http.MethodPost, "/api/candidates/"+c.ID+"/resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode[ResumeUploadResponse](t, rec)
	if len(resp.ResumeURLs) != 1 || !strings.HasSuffix(resp.URL, "resume.pdf") {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestAdminCandidatesHandler(t *testing.T) {
	repo := newMemCandidateRepo()
	funnel := newFunnel(repo)
	admin := service.NewAdminService(repo, testLogger())
	h := NewAdminCandidatesHandler(admin, testLogger())

	c, err := funnel.SubmitIntake(context.Background(), service.IntakeSubmission{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("seed intake: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/admin/candidates", h.List)
	mux.HandleFunc("GET /api/admin/candidates/{id}", h.Get)
	mux.HandleFunc("DELETE /api/admin/candidates/{id}", h.Delete)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/candidates", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rec.Code)
	}
	var listResp struct {
		Candidates []*domain.Candidate `json:"candidates"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&listResp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listResp.Candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(listResp.Candidates))
	}
	if listResp.Candidates[0].AdminData == nil {
		t.Fatal("expected materialized adminData in list response")
	}
	if listResp.Candidates[0].AdminData.PipelineStage != domain.StageApplied {
		t.Errorf("stage = %q, want %q", listResp.Candidates[0].AdminData.PipelineStage, domain.StageApplied)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/candidates/"+c.ID, nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/candidates/"+c.ID, nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d, want 204", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/candidates/"+c.ID, nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("delete missing: status = %d, want 404", rec.Code)
	}
}

func TestAdminUpdateHandlerPatchValidation(t *testing.T) {
	repo := newMemCandidateRepo()
	funnel := newFunnel(repo)
	admin := service.NewAdminService(repo, testLogger())
	h := NewAdminUpdateHandler(admin, testLogger())

	c, err := funnel.SubmitIntake(context.Background(), service.IntakeSubmission{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("seed intake: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/admin/candidates/{id}", h.Patch)

	body, _ := json.Marshal(map[string]string{"pipelineStage": "Limbo"})
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/candidates/"+c.ID, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad stage: status = %d, want 400", rec.Code)
	}

	body, _ = json.Marshal(map[string]string{"pipelineStage": string(domain.StageInterviewed)})
	req = httptest.NewRequest(http.MethodPatch, "/api/admin/candidates/"+c.ID, bytes.NewReader(body))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid stage: status = %d, body %s", rec.Code, rec.Body.String())
	}
	updated := decode[domain.Candidate](t, rec)
	if updated.AdminData == nil || updated.AdminData.PipelineStage != domain.StageInterviewed {
		t.Errorf("stage not applied: %+v", updated.AdminData)
	}
}

func TestBulkStageHandlerPartialFailure(t *testing.T) {
	repo := newMemCandidateRepo()
	funnel := newFunnel(repo)
	admin := service.NewAdminService(repo, testLogger())
	h := NewAdminUpdateHandler(admin, testLogger())

	c, err := funnel.SubmitIntake(context.Background(), service.IntakeSubmission{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("seed intake: %v", err)
	}

	rec := postJSON(t, http.HandlerFunc(h.BulkStage), "/api/admin/candidates/bulk-stage", bulkStageRequest{
		IDs:   []string{c.ID, "MISSING1"},
		Stage: domain.StageScreening,
	})
	if rec.Code != http.StatusMultiStatus {
		t.Fatalf("status = %d, want 207, body %s", rec.Code, rec.Body.String())
	}
	resp := decode[service.BulkStageResult](t, rec)
	if len(resp.Updated) != 1 || resp.Updated[0] != c.ID {
		t.Errorf("updated = %v", resp.Updated)
	}
	if _, ok := resp.Failed["MISSING1"]; !ok {
		t.Errorf("failed = %v, want MISSING1 present", resp.Failed)
	}
}

func TestExportHandlerCSV(t *testing.T) {
	repo := newMemCandidateRepo()
	funnel := newFunnel(repo)
	admin := service.NewAdminService(repo, testLogger())
	h := NewExportHandler(admin, testLogger())

	if _, err := funnel.SubmitIntake(context.Background(), service.IntakeSubmission{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	}); err != nil {
		t.Fatalf("seed intake: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/export.csv", nil)
	rec := httptest.NewRecorder()
	h.CSV(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}
	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want header plus one row", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID,Name,Email") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestSummaryHandler(t *testing.T) {
	repo := newMemCandidateRepo()
	funnel := newFunnel(repo)
	admin := service.NewAdminService(repo, testLogger())
	h := NewSummaryHandler(admin, testLogger())

	c, err := funnel.SubmitIntake(context.Background(), service.IntakeSubmission{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("seed intake: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /api/admin/candidates/{id}/summary", h)

	// no assessment yet
	req := httptest.NewRequest(http.MethodGet, "/api/admin/candidates/"+c.ID+"/summary", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("without assessment: status = %d, want 400", rec.Code)
	}

	stored := repo.byID[c.ID]
	stored.Assessment = &domain.AssessmentData{
		Competitiveness:    8,
		MoneyMotivation:    7,
		LikertResponses:    map[int]int{3: 2},
		TrueScaleResponses: map[int]int{21: 1},
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode[SummaryResponse](t, rec)
	if len(resp.Paragraphs) != 5 {
		t.Errorf("paragraphs = %d, want 5", len(resp.Paragraphs))
	}
}

func TestLoginHandler(t *testing.T) {
	users := &memAdminUserRepo{byEmail: map[string]*domain.AdminUser{}}
	auth := service.NewAuthService(users, "test-secret", testLogger())
	if err := auth.CreateAdmin(context.Background(), "admin@example.com", "swordfish123"); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	h := NewLoginHandler(auth, testLogger())

	rec := postJSON(t, h, "/api/admin/login", LoginRequest{Email: "admin@example.com", Password: "swordfish123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" || resp.TokenType != "Bearer" {
		t.Errorf("unexpected login response %+v", resp)
	}

	rec = postJSON(t, h, "/api/admin/login", LoginRequest{Email: "admin@example.com", Password: "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: status = %d, want 401", rec.Code)
	}
}

type memAdminUserRepo struct {
	byEmail map[string]*domain.AdminUser
}

func (m *memAdminUserRepo) Create(ctx context.Context, u *domain.AdminUser) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return &domain.ValidationError{Field: "email", Reason: "already exists"}
	}
	cp := *u
	cp.CreatedAt = time.Now()
	m.byEmail[u.Email] = &cp
	return nil
}

func (m *memAdminUserRepo) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memAdminUserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	u, ok := m.byEmail[email]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func TestQuestionsHandler(t *testing.T) {
	h := NewQuestionsHandler(testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/questions", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[questionCatalog](t, rec)
	if len(resp.LikertQuestions) != 18 {
		t.Errorf("likert questions = %d, want 18", len(resp.LikertQuestions))
	}
	if len(resp.TrueScaleQuestions) != 10 {
		t.Errorf("true-scale questions = %d, want 10", len(resp.TrueScaleQuestions))
	}
	if len(resp.OccupationOptions) != 5 {
		t.Errorf("occupation options = %d, want 5", len(resp.OccupationOptions))
	}
}
