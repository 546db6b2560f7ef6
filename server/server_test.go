package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbxark/formassist/agent"
	"github.com/tbxark/formassist/forms"
	"github.com/tbxark/formassist/prompt"
	"github.com/tbxark/formassist/speech"
)

type replyModel struct {
	replies []string
	err     error
}

func (m *replyModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	reply := "Please continue."
	if len(m.replies) > 0 {
		reply, m.replies = m.replies[0], m.replies[1:]
	}
	return schema.AssistantMessage(reply, nil), nil
}

func (m *replyModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func newTestServer(m model.BaseChatModel, tr speech.Transcriber) *Server {
	registry := forms.Builtin()
	sessions := agent.NewMemorySessionStore(prompt.NewComposer(registry))
	svc := agent.NewService(agent.NewEngine(sessions, m, registry), tr)
	return New(svc, registry)
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestChatFlow(t *testing.T) {
	s := newTestServer(&replyModel{replies: []string{
		"Perfect! Your form is ready.\n{{FORM_DATA: {{\"form_type\": \"WITHDRAWAL\", \"account_number\": \"12345678901234\"}}}}",
	}}, nil)

	rec, body := do(t, s, http.MethodPost, "/chat", `{"session_id": "s1", "form_type": "withdrawal", "message": ""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, body["form_complete"])
	assert.Contains(t, body["response"], "14-digit")
	assert.Equal(t, map[string]any{}, body["form_data"])

	rec, body = do(t, s, http.MethodPost, "/chat", `{"session_id": "s1", "form_type": "withdrawal", "message": "yes"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["form_complete"])
	assert.Equal(t, "Perfect! Your form is ready.", body["response"])
	assert.Equal(t, "s1", body["session_id"])
	data, ok := body["form_data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "12345678901234", data["account_number"])

	rec, body = do(t, s, http.MethodPost, "/get_form_data", `{"session_id": "s1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "WITHDRAWAL", body["form_data"].(map[string]any)["form_type"])

	rec, body = do(t, s, http.MethodPost, "/reset_conversation", `{"session_id": "s1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	rec, body = do(t, s, http.MethodPost, "/get_form_data", `{"session_id": "s1"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "No form data found for this session", body["error"])
}

func TestChatDefaultsSessionID(t *testing.T) {
	s := newTestServer(&replyModel{}, nil)
	rec, body := do(t, s, http.MethodPost, "/chat", `{"message": "hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, agent.DefaultSessionKey, body["session_id"])
	assert.Equal(t, "Please continue.", body["response"])
}

func TestChatCapabilityFailure(t *testing.T) {
	s := newTestServer(&replyModel{err: errors.New("all keys exhausted")}, nil)
	rec, body := do(t, s, http.MethodPost, "/chat", `{"session_id": "x", "message": "hi"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "all keys exhausted")
}

func TestChatRejectsBadJSON(t *testing.T) {
	s := newTestServer(&replyModel{}, nil)
	rec, body := do(t, s, http.MethodPost, "/chat", `{"message": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestGetFormDataBeforeCompletion(t *testing.T) {
	s := newTestServer(&replyModel{}, nil)
	_, _ = do(t, s, http.MethodPost, "/chat", `{"session_id": "y", "message": "hi"}`)
	rec, body := do(t, s, http.MethodPost, "/get_form_data", `{"session_id": "y"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{}, body["form_data"])

	rec, body = do(t, s, http.MethodPost, "/get_form_data", `{"session_id": "never-seen"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
}

func transcribeRequest(t *testing.T, field string, audio []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "clip.webm")
	require.NoError(t, err)
	_, err = fw.Write(audio)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/transcribe", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestTranscribe(t *testing.T) {
	var gotMIME string
	tr := speech.TranscriberFunc(func(ctx context.Context, audio []byte, mimeType string) (string, error) {
		gotMIME = mimeType
		return "main branch " + string(audio), nil
	})
	s := newTestServer(&replyModel{}, tr)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, transcribeRequest(t, "audio", []byte("please")))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "main branch please", body["text"])
	assert.Equal(t, speech.DefaultMIMEType, gotMIME)
}

func TestTranscribeMissingAudio(t *testing.T) {
	s := newTestServer(&replyModel{}, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, transcribeRequest(t, "other", []byte("x")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No audio file provided")
}

func TestTranscribeWithoutCapability(t *testing.T) {
	s := newTestServer(&replyModel{}, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, transcribeRequest(t, "audio", []byte("x")))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestFormsEndpoints(t *testing.T) {
	s := newTestServer(&replyModel{}, nil)

	rec, body := do(t, s, http.MethodGet, "/forms", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list, ok := body["forms"].([]any)
	require.True(t, ok)
	assert.Len(t, list, len(forms.Builtin().IDs()))
	assert.Equal(t, "deposit", list[0].(map[string]any)["id"])

	rec, body = do(t, s, http.MethodGet, "/forms/withdrawal", "")
	require.Equal(t, http.StatusOK, rec.Code)
	form := body["form"].(map[string]any)
	assert.Equal(t, "WITHDRAWAL", form["form_type"])
	assert.Contains(t, form["example"], "{{FORM_DATA:")

	rec, _ = do(t, s, http.MethodGet, "/forms/xyz123", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewSessionAndHealth(t *testing.T) {
	s := newTestServer(&replyModel{}, nil)

	rec, body := do(t, s, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := body["session_id"].(string)
	assert.Len(t, id, 36)

	rec, _ = do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
