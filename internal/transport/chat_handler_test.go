package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestCreateSession(t *testing.T) {
	router := newTestRouter(NewChatHandler(newMockChatService(), nopLogger))

	w := serve(t, router, postJSON("/api/chat/session", `{"userId":"u1","sessionId":"s1"}`))
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, true, body["success"])
	session := body["session"].(map[string]interface{})
	assert.Equal(t, "s1", session["sessionId"])
	assert.Equal(t, "u1", session["userId"])

	w = serve(t, router, postJSON("/api/chat/session", `{"userId":"u1","sessionId":"s1"}`))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateSessionRequiresUser(t *testing.T) {
	router := newTestRouter(NewChatHandler(newMockChatService(), nopLogger))

	w := serve(t, router, postJSON("/api/chat/session", `{"sessionId":"s1"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "validation failed", body["message"])
}

func TestAddMessageAndList(t *testing.T) {
	router := newTestRouter(NewChatHandler(newMockChatService(), nopLogger))

	w := serve(t, router, postJSON("/api/chat/message", `{"sessionId":"s1","sender":"user","message":"hello"}`))
	require.Equal(t, http.StatusCreated, w.Code)
	msg := decodeJSON(t, w)["message"].(map[string]interface{})
	assert.Equal(t, "hello", msg["message"])
	assert.Equal(t, "user", msg["sender"])

	w = serve(t, router, postJSON("/api/chat/message", `{"sessionId":"s1","sender":"bot","message":"hi"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(t, router, httptest.NewRequest(http.MethodGet, "/api/chat/session/s1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	messages := decodeJSON(t, w)["messages"].([]interface{})
	assert.Len(t, messages, 1)
}

func TestChat(t *testing.T) {
	router := newTestRouter(NewChatHandler(newMockChatService(), nopLogger))

	w := serve(t, router, postJSON("/api/chat", `{"userId":"u1","message":"Where is order 7?"}`))
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "sess-generated", body["sessionId"])

	messages := body["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "ai", messages[1].(map[string]interface{})["sender"])
}

func TestChatRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(NewChatHandler(newMockChatService(), nopLogger))

	w := serve(t, router, postJSON("/api/chat", `{"userId":`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatServiceError(t *testing.T) {
	chat := newMockChatService()
	chat.err = errors.New("database is closed")
	router := newTestRouter(NewChatHandler(chat, nopLogger))

	w := serve(t, router, postJSON("/api/chat", `{"userId":"u1","message":"hi"}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "database is closed", decodeJSON(t, w)["error"])
}
