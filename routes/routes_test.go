package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rriehl64/collibra-app-sub009/config"
	"github.com/rriehl64/collibra-app-sub009/middleware"
	"github.com/rriehl64/collibra-app-sub009/models"
	"github.com/rriehl64/collibra-app-sub009/store"
	"github.com/rriehl64/collibra-app-sub009/utils"
	"github.com/rriehl64/collibra-app-sub009/websocket"
)

// emptyRepo holds nothing and accepts every write.
type emptyRepo[T any] struct{}

func (emptyRepo[T]) List(context.Context, bson.M, store.ListOptions) ([]T, error) { return []T{}, nil }
func (emptyRepo[T]) Get(context.Context, primitive.ObjectID) (*T, error)          { return nil, store.ErrNotFound }
func (emptyRepo[T]) FindOne(context.Context, bson.M) (*T, error)                  { return nil, store.ErrNotFound }
func (emptyRepo[T]) Create(context.Context, *T) error                             { return nil }
func (emptyRepo[T]) Replace(context.Context, primitive.ObjectID, *T) error        { return store.ErrNotFound }
func (emptyRepo[T]) Delete(context.Context, primitive.ObjectID) error             { return store.ErrNotFound }

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestDeps(t *testing.T) (Deps, *utils.TokenIssuer) {
	t.Helper()
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	return Deps{
		Config: config.Default(),
		DB:     okPinger{},
		Repos: Repositories{
			DataAssets:            emptyRepo[models.DataAsset]{},
			Domains:               emptyRepo[models.Domain]{},
			Policies:              emptyRepo[models.Policy]{},
			Portfolios:            emptyRepo[models.Portfolio]{},
			ProgramDocumentations: emptyRepo[models.ProgramDocumentation]{},
			Users:                 emptyRepo[models.User]{},
			TeamMembers:           emptyRepo[models.TeamMember]{},
		},
		Tokens:  tokens,
		Metrics: middleware.NewMetrics(),
	}, tokens
}

func newTestRouter(t *testing.T) (http.Handler, *utils.TokenIssuer) {
	t.Helper()
	deps, tokens := newTestDeps(t)
	return NewRouter(deps), tokens
}

func serve(h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Access(t *testing.T) {
	router, tokens := newTestRouter(t)
	userTok, err := tokens.GenerateJWT(primitive.NewObjectID().Hex(), "U", "u@example.com", models.RoleUser)
	require.NoError(t, err)
	stewardTok, err := tokens.GenerateJWT(primitive.NewObjectID().Hex(), "S", "s@example.com", models.RoleDataSteward)
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		want   int
	}{
		{"health", http.MethodGet, "/health", "", "", http.StatusOK},
		{"public list", http.MethodGet, "/api/v1/domains", "", "", http.StatusOK},
		{"asset search", http.MethodGet, "/api/v1/data-assets?q=customer&tag=pii", "", "", http.StatusOK},
		{"write needs token", http.MethodPost, "/api/v1/domains", "", `{"name":"x"}`, http.StatusUnauthorized},
		{"write needs role", http.MethodPost, "/api/v1/domains", userTok, `{"name":"x"}`, http.StatusForbidden},
		{"steward writes", http.MethodPost, "/api/v1/domains", stewardTok, `{"name":"x"}`, http.StatusCreated},
		{"users admin only", http.MethodGet, "/api/v1/users", stewardTok, "", http.StatusForbidden},
		{"team list public", http.MethodGet, "/api/v1/team-management/members", "", "", http.StatusOK},
		{"team archive guarded", http.MethodPatch, "/api/v1/team-management/members/" + primitive.NewObjectID().Hex() + "/archive", "", "", http.StatusUnauthorized},
		{"admin page", http.MethodGet, "/api/v1/admin/quality-rules?severity=High", "", "", http.StatusOK},
		{"unknown admin page", http.MethodGet, "/api/v1/admin/scopes", "", "", http.StatusNotFound},
		{"suggestions", http.MethodGet, "/api/v1/search/suggestions?q=fin", "", "", http.StatusOK},
		{"me needs token", http.MethodGet, "/api/v1/auth/me", "", "", http.StatusUnauthorized},
		{"preflight", http.MethodOptions, "/api/v1/domains", "", "", http.StatusNoContent},
		{"wrong method", http.MethodPatch, "/api/v1/domains", stewardTok, "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	router, _ := newTestRouter(t)
	serve(router, http.MethodGet, "/api/v1/policies", "", "")

	rec := serve(router, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/api/v1/policies"`)
}

func TestRouter_ChangeFeedHidesUsersFromNonAdmins(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := websocket.NewHub(nil)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		assert.NoError(t, hub.Run(ctx))
	}()
	defer func() {
		cancel()
		<-stopped
	}()

	deps, tokens := newTestDeps(t)
	deps.Hub = hub
	router := NewRouter(deps)
	srv := httptest.NewServer(router)
	defer srv.Close()

	adminTok, err := tokens.GenerateJWT(primitive.NewObjectID().Hex(), "A", "a@example.com", models.RoleAdmin)
	require.NoError(t, err)
	stewardTok, err := tokens.GenerateJWT(primitive.NewObjectID().Hex(), "S", "s@example.com", models.RoleDataSteward)
	require.NoError(t, err)

	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/changes"
	dial := func(url string, header http.Header) *gws.Conn {
		conn, _, err := gws.DefaultDialer.Dial(url, header)
		require.NoError(t, err)
		return conn
	}
	anon := dial(base, nil)
	defer anon.Close()
	steward := dial(base, http.Header{"Authorization": {"Bearer " + stewardTok}})
	defer steward.Close()
	admin := dial(base+"?token="+adminTok, nil)
	defer admin.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 3 }, time.Second, 5*time.Millisecond)

	rec := serve(router, http.MethodPost, "/api/v1/users", adminTok,
		`{"name":"Secret Person","email":"secret@corp.com","password":"hunter22","role":"admin"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = serve(router, http.MethodPost, "/api/v1/domains", adminTok, `{"name":"Finance"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	next := func(conn *gws.Conn) websocket.ChangeEvent {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var ev websocket.ChangeEvent
		require.NoError(t, conn.ReadJSON(&ev))
		return ev
	}
	assert.Equal(t, "domains", next(anon).Collection)
	assert.Equal(t, "domains", next(steward).Collection)
	assert.Equal(t, "users", next(admin).Collection)
	assert.Equal(t, "domains", next(admin).Collection)
}

func TestRouter_ChangeFeedRefusesUsersSubscription(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := websocket.NewHub(nil)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		assert.NoError(t, hub.Run(ctx))
	}()
	defer func() {
		cancel()
		<-stopped
	}()

	deps, _ := newTestDeps(t)
	deps.Hub = hub
	router := NewRouter(deps)

	rec := serve(router, http.MethodGet, "/ws/changes?collection=users", "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, hub.ClientCount())
}
