package httpserver_test

import (
	"context"
	"encoding/json"
	"movieshelf/httpserver"
	"movieshelf/movie"
	"movieshelf/pkg/config"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var testMovies = []movie.Movie{
	{Title: "기생충", Genre: "드라마", Year: 2019, Director: "봉준호", Actors: "송강호"},
	{Title: "올드보이", Genre: "액션", Year: 2003, Director: "박찬욱", Actors: "최민식"},
	{Title: "Heat", Genre: "Drama", Year: 1995, Director: "Michael Mann", Actors: "Al Pacino"},
}

type staticSource []movie.Movie

func (s staticSource) LoadMovies(context.Context) ([]movie.Movie, error) {
	return s, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Port = 8080
	cfg.AllowOrigins = "*"
	return cfg
}

func mustCreateServer(t testing.TB, options ...httpserver.Options) *httpserver.Server {
	t.Helper()
	server, err := httpserver.New(append([]httpserver.Options{httpserver.WithConfig(testConfig())}, options...)...)
	require.NoError(t, err)
	return server
}

// mustCreateMovieServer wires a real usecase loaded with testMovies.
func mustCreateMovieServer(t testing.TB) (*httpserver.Server, *movie.Usecase) {
	t.Helper()
	uc := movie.NewUsecase(movie.NewWishlist(), movie.WithFeatured(testMovies[0].Identity()))
	require.NoError(t, uc.LoadCatalog(context.Background(), staticSource(testMovies)))
	return mustCreateServer(t, httpserver.WithMovieService(uc)), uc
}

func serve(server *httpserver.Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func newJSONRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) httpserver.APIResponse {
	t.Helper()
	var resp httpserver.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func decodeAPIResult(t *testing.T, result interface{}, target interface{}) {
	t.Helper()
	raw, err := json.Marshal(result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, target))
}

func decodeList[T any](t *testing.T, rec *httptest.ResponseRecorder) []T {
	t.Helper()
	var result struct {
		Data []T `json:"data"`
	}
	decodeAPIResult(t, decodeAPIResponse(t, rec).Result, &result)
	return result.Data
}
