package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssistant struct {
	reply   string
	err     error
	cleared bool

	gotUserID  string
	gotMessage string
}

func (f *fakeAssistant) ProcessChat(_ context.Context, userID, userMessage string) (string, error) {
	f.gotUserID = userID
	f.gotMessage = userMessage
	return f.reply, f.err
}

func (f *fakeAssistant) ClearHistory(_ context.Context, userID string) (bool, error) {
	f.gotUserID = userID
	return f.cleared, f.err
}

func newChatRouter(svc Assistant) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/chat", ChatHandler(svc))
	r.DELETE("/api/v1/chat/:userid", ClearChatHandler(svc))
	return r
}

func TestChatHandlerReturnsPlainText(t *testing.T) {
	fake := &fakeAssistant{reply: "Here are our doctors."}
	router := newChatRouter(fake)

	body := `{"userid":"u1","userMessage":"show doctors"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Here are our doctors.", w.Body.String())
	assert.Equal(t, "u1", fake.gotUserID)
	assert.Equal(t, "show doctors", fake.gotMessage)
}

func TestChatHandlerRejectsMissingFields(t *testing.T) {
	fake := &fakeAssistant{}
	router := newChatRouter(fake)

	for _, body := range []string{
		`{}`,
		`{"userid":"u1"}`,
		`{"userMessage":"hi"}`,
		`not json`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		assert.Empty(t, fake.gotMessage)
	}
}

func TestChatHandlerMasksAssistantFailures(t *testing.T) {
	fake := &fakeAssistant{err: errors.New("model exploded")}
	router := newChatRouter(fake)

	body := `{"userid":"u1","userMessage":"hi"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Unable to contact the assistant at the moment. Please try again later.")
	assert.NotContains(t, w.Body.String(), "model exploded")
}

func TestClearChatHandler(t *testing.T) {
	fake := &fakeAssistant{cleared: true}
	router := newChatRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/chat/u1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cleared":true`)
	assert.Equal(t, "u1", fake.gotUserID)
}
