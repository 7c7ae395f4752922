package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Fatih/internal/repo"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	args := m.Called(ctx, login, email, password)
	return args.Int(0), args.Error(1)
}

func (m *MockRepo) GetByLogin(ctx context.Context, login string) (int, string, error) {
	args := m.Called(ctx, login)
	return args.Int(0), args.String(1), args.Error(2)
}

func (m *MockRepo) SaveAssessment(ctx context.Context, a *repo.Assessment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockRepo) ListAssessments(ctx context.Context, userID int) ([]repo.Assessment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]repo.Assessment), args.Error(1)
}

func (m *MockRepo) GetAssessment(ctx context.Context, userID int, id uuid.UUID) (*repo.Assessment, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repo.Assessment), args.Error(1)
}

func newEnv(r repo.Repository) *Authenv {
	return &Authenv{JWTkey: []byte("test-key"), Repo: r, Log: zap.NewNop()}
}

func TestRegisterHandler(t *testing.T) {
	m := new(MockRepo)
	m.On("CreateUser", mock.Anything, "alice", "a@example.com", mock.AnythingOfType("string")).Return(7, nil)
	env := newEnv(m)

	body := `{"login":" alice ","email":"a@example.com","password":"secret1"}`
	w := httptest.NewRecorder()
	env.RegisterHandler(w, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp tokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	id, err := env.parseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.NotEmpty(t, w.Result().Cookies())
	m.AssertExpectations(t)
}

func TestRegisterHandler_Rejects(t *testing.T) {
	env := newEnv(new(MockRepo))
	for name, body := range map[string]string{
		"bad json":       `{`,
		"missing email":  `{"login":"a","password":"secret1"}`,
		"short password": `{"login":"a","email":"a@b","password":"123"}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			env.RegisterHandler(w, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body)))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthHandler(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	m := new(MockRepo)
	m.On("GetByLogin", mock.Anything, "alice").Return(3, hash, nil)
	m.On("GetByLogin", mock.Anything, "ghost").Return(0, "", repo.ErrNotFound)
	m.On("GetByLogin", mock.Anything, "broken").Return(0, "", errors.New("connection reset"))
	env := newEnv(m)

	cases := []struct {
		body string
		want int
	}{
		{`{"login":"alice","password":"secret1"}`, http.StatusOK},
		{`{"login":"alice","password":"wrong!!"}`, http.StatusUnauthorized},
		{`{"login":"ghost","password":"secret1"}`, http.StatusUnauthorized},
		{`{"login":"broken","password":"secret1"}`, http.StatusInternalServerError},
		{`{"login":"","password":"secret1"}`, http.StatusBadRequest},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		env.AuthHandler(w, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(c.body)))
		assert.Equal(t, c.want, w.Code, c.body)
	}
}

func TestAuthMiddleware(t *testing.T) {
	env := newEnv(new(MockRepo))
	var seen int
	h := env.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserID(r.Context())
	}))

	tok, err := env.issueToken(httptest.NewRecorder(), 42, "bob")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/user/assessments", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 42, seen)

	req = httptest.NewRequest(http.MethodGet, "/api/user/assessments", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: tok})
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	stale, err := expired.SignedString(env.JWTkey)
	require.NoError(t, err)

	for _, raw := range []string{"", "garbage", stale} {
		req = httptest.NewRequest(http.MethodGet, "/api/user/assessments", nil)
		if raw != "" {
			req.Header.Set("Authorization", "Bearer "+raw)
		}
		w = httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(0, 2)
	h := limiter.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/login", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/api/login", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIPRateLimiter_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(1, 1)
	limiter.now = func() time.Time { return now }

	limiter.getLimiter("10.0.0.1")
	now = now.Add(10 * time.Minute)
	limiter.getLimiter("10.0.0.2")

	assert.Equal(t, 1, limiter.Sweep(5*time.Minute))
	assert.Len(t, limiter.ips, 1)
	assert.Contains(t, limiter.ips, "10.0.0.2")

	now = now.Add(time.Hour)
	assert.Equal(t, 1, limiter.Sweep(5*time.Minute))
	assert.Empty(t, limiter.ips)
}

func TestIPRateLimiter_CleanupStopsWithContext(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		limiter.Cleanup(ctx, time.Millisecond, time.Hour)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop")
	}
}
