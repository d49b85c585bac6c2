package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetUserNullableLeaves(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/api/v1/users/1001", "", "")
	require.Equal(t, http.StatusOK, resp.Code)

	user := decodeBody(t, resp)
	require.Equal(t, float64(1001), user["id"])
	require.Equal(t, "alice", user["username"])
	require.Equal(t, "user", user["role"])

	profile := user["profile"].(map[string]any)
	require.Contains(t, profile, "avatar")
	require.NotNil(t, profile["avatar"])

	prefs := user["preferences"].(map[string]any)
	notifications := prefs["notifications"].(map[string]any)
	require.Equal(t, true, notifications["email"])
	require.Equal(t, false, notifications["push"])
	require.Contains(t, notifications, "sms")
	require.Nil(t, notifications["sms"])
	require.Equal(t, "dark", prefs["theme"])
	require.Equal(t, "en", prefs["language"])

	sub := user["subscription"].(map[string]any)
	require.Equal(t, "premium", sub["plan"])
	require.Equal(t, "active", sub["status"])
	require.Contains(t, sub["features"], "advanced_analytics")

	meta := user["metadata"].(map[string]any)
	require.Equal(t, true, meta["isVerified"])
	require.Greater(t, meta["loginCount"], float64(0))
}

func TestGetUserNullAvatar(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/api/v1/users/1003", "", "")
	require.Equal(t, http.StatusOK, resp.Code)

	user := decodeBody(t, resp)
	profile := user["profile"].(map[string]any)
	require.Contains(t, profile, "avatar")
	require.Nil(t, profile["avatar"])
}

func TestGetUserUnknown(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/api/v1/users/9999", "", "")
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Equal(t, "not_found", errorType(t, resp))
}

func TestGetUserNonNumericID(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/api/v1/users/abc", "", "")
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListUsersRequiresBearer(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/api/v1/users", "", "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Equal(t, "unauthenticated", errorType(t, resp))
}

func TestListUsersRoleFilter(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/api/v1/users?role=user", "", testToken)
	require.Equal(t, http.StatusOK, resp.Code)

	list := decodeBody(t, resp)
	data := list["data"].([]any)
	require.Len(t, data, 3)

	ids := make([]float64, 0, len(data))
	for _, item := range data {
		user := item.(map[string]any)
		require.Equal(t, "user", user["role"])
		ids = append(ids, user["id"].(float64))
	}
	require.Equal(t, []float64{1001, 1002, 1003}, ids)

	meta := list["pagination"].(map[string]any)
	require.Equal(t, float64(3), meta["total"])
}

func TestListUsersUnknownRoleMatchesNothing(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/api/v1/users?role=superuser", "", testToken)
	require.Equal(t, http.StatusOK, resp.Code)

	list := decodeBody(t, resp)
	require.Empty(t, list["data"])
	meta := list["pagination"].(map[string]any)
	require.Equal(t, float64(0), meta["total"])
}

func TestListUsersPageEcho(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/api/v1/users?role=user&page=2&limit=2", "", testToken)
	require.Equal(t, http.StatusOK, resp.Code)

	list := decodeBody(t, resp)
	data := list["data"].([]any)
	require.Len(t, data, 1)
	user := data[0].(map[string]any)
	require.Equal(t, float64(1003), user["id"])

	meta := list["pagination"].(map[string]any)
	require.Equal(t, float64(2), meta["page"])
	require.Equal(t, float64(2), meta["limit"])
	require.Equal(t, float64(3), meta["total"])
}
