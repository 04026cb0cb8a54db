//nolint:unused
package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/danrneal/fs-casting-agency/actor"
	"github.com/danrneal/fs-casting-agency/auth"
	"github.com/danrneal/fs-casting-agency/httpserver"
	"github.com/danrneal/fs-casting-agency/movie"
	"github.com/danrneal/fs-casting-agency/pkg/config"
)

const testBearerToken = "Bearer test-token"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.Domain = "casting-agency-test.auth0.com"
	cfg.Auth.ClientID = "test-client-id"
	cfg.Auth.Audience = "casting-agency"
	return cfg
}

// allowAllAuth grants every scope to any request carrying a header.
type allowAllAuth struct{}

func (allowAllAuth) Authorize(_ context.Context, header, requiredScope string) ([]string, error) {
	if header == "" {
		return nil, auth.ErrHeaderMissing
	}
	return []string{requiredScope}, nil
}

// denyAllAuth simulates a valid token that carries no permissions.
type denyAllAuth struct{}

func (denyAllAuth) Authorize(_ context.Context, header, _ string) ([]string, error) {
	if header == "" {
		return nil, auth.ErrHeaderMissing
	}
	return nil, auth.ErrForbidden
}

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) ListMovies(ctx context.Context, page int) ([]movie.Movie, int64, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]movie.Movie), args.Get(1).(int64), args.Error(2)
}

func (m *MockMovieService) CreateMovie(ctx context.Context, n movie.NewMovie) (movie.Movie, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) UpdateMovie(ctx context.Context, id int64, p movie.Patch) (movie.Movie, movie.Movie, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(movie.Movie), args.Get(1).(movie.Movie), args.Error(2)
}

func (m *MockMovieService) DeleteMovie(ctx context.Context, id int64) (movie.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

type MockActorService struct {
	mock.Mock
}

func (m *MockActorService) ListActors(ctx context.Context, page int) ([]actor.Actor, int64, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]actor.Actor), args.Get(1).(int64), args.Error(2)
}

func (m *MockActorService) CreateActor(ctx context.Context, n actor.NewActor) (actor.Actor, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(actor.Actor), args.Error(1)
}

func (m *MockActorService) UpdateActor(ctx context.Context, id int64, p actor.Patch) (actor.Actor, actor.Actor, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(actor.Actor), args.Get(1).(actor.Actor), args.Error(2)
}

func (m *MockActorService) DeleteActor(ctx context.Context, id int64) (actor.Actor, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(actor.Actor), args.Error(1)
}

// newTestServer builds a server with mocked services and permissive auth.
func newTestServer(movies *MockMovieService, actors *MockActorService) *httpserver.Server {
	server := httpserver.Default(testConfig())
	server.MovieService = movies
	server.ActorService = actors
	server.AuthService = allowAllAuth{}
	return server
}

func doJSON(server *httpserver.Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", testBearerToken)
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) httpserver.ErrorResponse {
	t.Helper()
	var resp httpserver.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
