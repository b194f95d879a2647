package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourhome-ai/yourhome/internal/auth"
	"github.com/yourhome-ai/yourhome/internal/chat"
	"github.com/yourhome-ai/yourhome/internal/comparison"
	"github.com/yourhome-ai/yourhome/internal/config"
	"github.com/yourhome-ai/yourhome/internal/repository"
	"github.com/yourhome-ai/yourhome/internal/screening"
	"github.com/yourhome-ai/yourhome/internal/service"
	"github.com/yourhome-ai/yourhome/internal/storage"
)

type cannedLLM struct{}

func (cannedLLM) Complete(ctx context.Context, system, user string) (string, error) {
	return "A reasonable applicant.", nil
}

type testServer struct {
	router *gin.Engine
	store  *storage.Memory
	auth   *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := storage.NewMemory()
	authService := auth.NewService(repository.NewAccountRepository(db),
		"https://pay.example.com/checkout", time.Hour, logger)

	router := SetupRouter(
		service.NewPortalService(store, logger),
		screening.NewEvaluator(cannedLLM{}, store, logger),
		chat.NewManager(store,
			config.RAGConfig{IndexDir: t.TempDir(), ChunkSize: 500, ChunkOverlap: 50, TopK: 5},
			config.LLMConfig{BaseURL: "http://localhost:1", Model: "m", EmbeddingModel: "e"},
			logger),
		comparison.NewService(store, 1000, logger),
		authService,
		RouterConfig{},
	)
	return &testServer{router: router, store: store, auth: authService}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	// httptest.NewRequest panics on a request target containing raw spaces;
	// escape them so the router still sees the same decoded values.
	req := httptest.NewRequest(method, strings.ReplaceAll(path, " ", "%20"), reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "jane@example.com", "name": "Jane", "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "jane@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionRequired(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/listings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/listings", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "not-an-email", "name": "Jane", "password": "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "jane@example.com", "name": "Jane", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	w := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "jane@example.com", "name": "Jane Again", "password": "hunter22",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	w := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "jane@example.com", "password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListingsFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	w := s.do(t, http.MethodGet, "/api/listings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w), "warning")

	w = s.do(t, http.MethodPost, "/api/listings", token, gin.H{"address": "12 Oak St"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/listings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotContains(t, body, "warning")
	assert.Equal(t, []any{"12 Oak St"}, body["listings"])

	w = s.do(t, http.MethodGet, "/api/listings/12 Oak St/tenants", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w), "warning")
}

func TestDocumentUploadAndList(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "credit.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("score: 720"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("document_type", "Credit_Score"))
	require.NoError(t, mw.WriteField("credit_score", "720"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost,
		"/api/listings/12%20Oak%20St/tenants/Jane_Doe/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	assert.Equal(t, "documents/12 Oak St/Jane_Doe/credit.txt", body["key"])
	metadata, ok := body["metadata"].(map[string]any)
	require.True(t, ok)
	// Category normalized at the boundary
	assert.Equal(t, "credit score", metadata["document_type"])

	w2 := s.do(t, http.MethodGet, "/api/listings/12 Oak St/tenants/Jane_Doe/documents", token, nil)
	require.Equal(t, http.StatusOK, w2.Code)
	docs, ok := decode(t, w2)["documents"].([]any)
	require.True(t, ok)
	require.Len(t, docs, 1)

	w2 = s.do(t, http.MethodGet, "/api/listings/12 Oak St/tenants/Jane_Doe/categories", token, nil)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, []any{"credit score"}, decode(t, w2)["categories"])

	w2 = s.do(t, http.MethodGet,
		"/api/documents/view?key=documents/12 Oak St/Jane_Doe/credit.txt", token, nil)
	require.Equal(t, http.StatusOK, w2.Code)
	view := decode(t, w2)
	assert.Equal(t, "text", view["kind"])
	assert.Equal(t, "score: 720", view["content"])
}

func TestDocumentURLMissingObject(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	w := s.do(t, http.MethodGet, "/api/documents/url?key=documents/nope/x/y.pdf", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalysisEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	ctx := context.Background()

	require.NoError(t, s.store.Upload(ctx, "documents/12 Oak St/Jane_Doe/credit.txt",
		[]byte("score: 720"), map[string]string{"document_type": "credit score"}))

	w := s.do(t, http.MethodPost, "/api/analysis/document", token, gin.H{
		"address": "12 Oak St", "tenant": "Jane_Doe", "category": "credit score",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "A reasonable applicant.", decode(t, w)["commentary"])

	w = s.do(t, http.MethodPost, "/api/analysis/document", token, gin.H{
		"address": "12 Oak St", "tenant": "Jane_Doe", "category": "references",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/analysis/report", token, gin.H{
		"address": "12 Oak St", "tenant": "Jane_Doe",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["report"])

	// A tenant with no text documents gets a warning, not a failure
	w = s.do(t, http.MethodPost, "/api/analysis/report", token, gin.H{
		"address": "12 Oak St", "tenant": "John_Roe",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w), "warning")
}

func TestComparisonEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	ctx := context.Background()

	require.NoError(t, s.store.Upload(ctx, "documents/12 Oak St/Jane_Doe/income.txt",
		[]byte("x"), map[string]string{
			"document_type":  "income verification",
			"monthly_income": "4000",
		}))

	w := s.do(t, http.MethodPost, "/api/comparison", token, gin.H{
		"address": "12 Oak St", "tenants": []string{"Jane_Doe"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	rows, ok := decode(t, w)["rows"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	assert.Equal(t, "Jane Doe", row["tenant"])
	assert.Equal(t, 25.0, row["rent_to_income"])

	w = s.do(t, http.MethodPost, "/api/comparison", token, gin.H{
		"address": "12 Oak St", "tenants": []string{},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w), "warning")
}

func TestChatRequiresSubscription(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	w := s.do(t, http.MethodPost, "/api/chat/sessions", token, gin.H{
		"address": "12 Oak St", "tenant": "Jane_Doe",
	})
	require.Equal(t, http.StatusPaymentRequired, w.Code)
	body := decode(t, w)
	assert.Equal(t, "https://pay.example.com/checkout?email=jane@example.com", body["payment_url"])
}

func TestSubscriptionStatusAndActivation(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	w := s.do(t, http.MethodGet, "/api/auth/subscription", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["subscribed"])
	assert.NotEmpty(t, body["payment_url"])

	w = s.do(t, http.MethodPost, "/api/auth/subscription/activate", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/auth/subscription", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, true, body["subscribed"])
	assert.NotContains(t, body, "payment_url")
}

func TestLogoutWithBearerToken(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	// No cookie; the session arrived only in the Authorization header
	w := s.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/listings", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+token)
	req.AddCookie(&http.Cookie{Name: "yourhome_session", Value: token})
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w2 := s.do(t, http.MethodGet, "/api/listings", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
}
