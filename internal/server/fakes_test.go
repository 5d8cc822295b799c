package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-matcher/internal/config"
	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/queue"
	"github.com/jonathan/skill-matcher/internal/storage"
)

// fakeDB is an in-memory DBClient.
type fakeDB struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*db.User
	jobs    map[uuid.UUID]*db.AnalysisJob
	saveErr error
	getErr  error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users: make(map[uuid.UUID]*db.User),
		jobs:  make(map[uuid.UUID]*db.AnalysisJob),
	}
}

func (f *fakeDB) CreateUser(_ context.Context, name, email string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	now := time.Now()
	f.users[id] = &db.User{ID: id, Name: name, Email: strings.ToLower(email), CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (f *fakeDB) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := f.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (f *fakeDB) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = hash
	u.PasswordSet = true
	return nil
}

func (f *fakeDB) SaveResumeAnalysis(_ context.Context, userID uuid.UUID, rec db.ResumeRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	u, ok := f.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	a := rec.Analysis
	u.ResumeKey = rec.ObjectKey
	u.ResumeMIME = rec.MIME
	u.ResumeText = rec.Text
	u.ExtractedSkills = a.ExtractedSkills
	u.ProgrammingLanguages = a.ProgrammingLanguages
	u.MatchedRoles = a.MatchedRoles
	u.SelectedRole = a.SelectedRole
	analyzedAt := a.AnalyzedAt
	u.AnalyzedAt = &analyzedAt
	return nil
}

func (f *fakeDB) SetSelectedRole(_ context.Context, userID uuid.UUID, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.SelectedRole = role
	return nil
}

func (f *fakeDB) CreateAnalysisJob(_ context.Context, userID uuid.UUID, objectKey, mime string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	now := time.Now()
	f.jobs[id] = &db.AnalysisJob{ID: id, UserID: userID, ObjectKey: objectKey, MIME: mime, Status: db.JobQueued, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (f *fakeDB) UpdateAnalysisJobStatus(_ context.Context, id uuid.UUID, status db.JobStatus, errMsg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[id]
	if !ok {
		return errors.New("job not found")
	}
	j.Status = status
	j.Error = errMsg
	return nil
}

func (f *fakeDB) GetAnalysisJob(_ context.Context, id uuid.UUID) (*db.AnalysisJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (f *fakeDB) ListAnalysisJobs(_ context.Context, userID uuid.UUID, limit int) ([]db.AnalysisJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.AnalysisJob
	for _, j := range f.jobs {
		if j.UserID == userID && len(out) < limit {
			out = append(out, *j)
		}
	}
	return out, nil
}

// user returns a snapshot of the stored user.
func (f *fakeDB) user(id uuid.UUID) *db.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := *f.users[id]
	return &u
}

// memStore is an in-memory storage.Store.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (m *memStore) Put(_ context.Context, key, _ string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.objects[key] = bytes.Clone(data)
	return nil
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return bytes.Clone(data), nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memStore) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.objects))
	for k := range m.objects {
		out = append(out, k)
	}
	return out
}

// fakeQueue records enqueued jobs.
type fakeQueue struct {
	mu   sync.Mutex
	jobs []queue.Job
	err  error
}

func (q *fakeQueue) Enqueue(_ context.Context, job queue.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

type testEnv struct {
	server *Server
	db     *fakeDB
	store  *memStore
	queue  *fakeQueue
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           0,
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   5 * time.Second,
			MaxUploadBytes: 5 << 20,
			AllowedOrigins: []string{"*"},
		},
		Auth: config.AuthConfig{
			JWTSecret:  testSecret,
			BcryptCost: config.MinBcryptCost,
		},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config, *Deps)) *testEnv {
	t.Helper()
	env := &testEnv{db: newFakeDB(), store: newMemStore(), queue: &fakeQueue{}}
	cfg := testConfig()
	deps := Deps{DB: env.db, Store: env.store, Queue: env.queue}
	for _, m := range mutate {
		m(cfg, &deps)
	}

	s, err := New(cfg, deps)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	env.server = s
	return env
}

// signup registers a user through the API and returns its ID and token.
func (e *testEnv) signup(t *testing.T, name, email string) (uuid.UUID, string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/auth/signup", "",
		map[string]string{"name": name, "email": email, "password": "secret123"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
	}
	decodeBody(t, rec, &resp)
	return resp.User.ID, resp.Token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) upload(t *testing.T, path, token, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile(resumeField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	decodeBody(t, rec, &body)
	msg, _ := body["error"].(string)
	return msg
}
