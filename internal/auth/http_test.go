package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func authServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	NewHTTPHandler(NewManager()).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	return resp, doc
}

func TestRegisterAndMe(t *testing.T) {
	srv := authServer(t)

	resp, doc := postJSON(t, srv.URL+"/auth/register", `{"username":"alice","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := doc["session_token"].(string)
	require.NotEmpty(t, token)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	meResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer meResp.Body.Close()
	require.Equal(t, http.StatusOK, meResp.StatusCode)

	var me map[string]any
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&me))
	require.Equal(t, "alice", me["username"])
}

func TestRegisterConflictAndLogin(t *testing.T) {
	srv := authServer(t)

	resp, _ := postJSON(t, srv.URL+"/auth/register", `{"username":"alice","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = postJSON(t, srv.URL+"/auth/register", `{"username":"alice","password":"hunter22"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, doc := postJSON(t, srv.URL+"/auth/login", `{"username":"alice","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, doc["session_token"])

	resp, _ = postJSON(t, srv.URL+"/auth/login", `{"username":"alice","password":"nope1234"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
