package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"ai-workspace-be/internal/bootstrap"
	"ai-workspace-be/internal/config"
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/repository/memory"
	"ai-workspace-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type switchProvider struct {
	mu  sync.Mutex
	err error
}

func (p *switchProvider) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *switchProvider) result(reply string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	return reply, nil
}

func (p *switchProvider) Name() string { return "switch" }

func (p *switchProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return p.result("chat reply")
}

func (p *switchProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.result("generated reply")
}

func (p *switchProvider) GenerateWithImage(ctx context.Context, image llm.Image, instruction string, opts ...llm.Option) (string, error) {
	return p.result("image reply")
}

type testServer struct {
	app      *fiber.App
	provider *switchProvider
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		App: config.AppConfig{Port: "0", CorsAllowedOrigins: "*"},
		Upload: config.UploadConfig{
			Dir:        filepath.Join(dir, "uploads"),
			MaxBytes:   4096,
			SweepGrace: time.Hour,
		},
		Events: config.EventsConfig{
			Topic:        "test.events",
			AuditLogPath: filepath.Join(dir, "events.log"),
		},
		Telemetry: config.TelemetryConfig{MetricsEnabled: true},
	}

	provider := &switchProvider{}
	container, err := bootstrap.NewContainer(cfg, memory.NewRecordStore(), provider, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	return &testServer{app: New(cfg, container).GetApp(), provider: provider}
}

type filePart struct {
	field    string
	name     string
	mimeType string
	body     []byte
}

func (s *testServer) do(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func (s *testServer) upload(t *testing.T, parts ...filePart) (int, []byte) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.field, p.name))
		h.Set("Content-Type", p.mimeType)
		w, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = w.Write(p.body)
		require.NoError(t, err)
	}
	require.NoError(t, mw.WriteField("note", "ignored"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(t, req)
}

func (s *testServer) uploadOK(t *testing.T, name, mimeType string, body []byte) dto.FileResponse {
	t.Helper()
	status, raw := s.upload(t, filePart{field: "file", name: name, mimeType: mimeType, body: body})
	require.Equal(t, http.StatusOK, status, string(raw))
	var file dto.FileResponse
	require.NoError(t, json.Unmarshal(raw, &file))
	return file
}

func (s *testServer) request(t *testing.T, method, path string, payload interface{}) (int, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.do(t, req)
}

func (s *testServer) files(t *testing.T) []dto.FileResponse {
	t.Helper()
	status, raw := s.request(t, http.MethodGet, "/api/files", nil)
	require.Equal(t, http.StatusOK, status)
	var files []dto.FileResponse
	require.NoError(t, json.Unmarshal(raw, &files))
	return files
}

func (s *testServer) messages(t *testing.T) []dto.ChatMessageResponse {
	t.Helper()
	status, raw := s.request(t, http.MethodGet, "/api/chat/messages", nil)
	require.Equal(t, http.StatusOK, status)
	var messages []dto.ChatMessageResponse
	require.NoError(t, json.Unmarshal(raw, &messages))
	return messages
}

func errorMessage(t *testing.T, raw []byte) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.False(t, body.Success)
	return body.Message
}

func TestServer_UploadListDelete(t *testing.T) {
	s := newTestServer(t)

	a := s.uploadOK(t, "a.txt", "text/plain", []byte("alpha"))
	b := s.uploadOK(t, "b.json", "application/json", []byte(`{"k":1}`))

	files := s.files(t)
	require.Len(t, files, 2)
	assert.Equal(t, b.Id, files[0].Id)
	assert.Equal(t, int64(7), files[0].Size)
	assert.Equal(t, a.Id, files[1].Id)
	assert.Equal(t, int64(5), files[1].Size)

	status, _ := s.request(t, http.MethodDelete, "/api/files/"+a.Id.String(), nil)
	assert.Equal(t, http.StatusOK, status)

	status, raw := s.request(t, http.MethodDelete, "/api/files/"+a.Id.String(), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "File not found", errorMessage(t, raw))

	files = s.files(t)
	require.Len(t, files, 1)
	assert.Equal(t, b.Id, files[0].Id)
}

func TestServer_EmptyListsAreArrays(t *testing.T) {
	s := newTestServer(t)

	_, raw := s.request(t, http.MethodGet, "/api/files", nil)
	assert.JSONEq(t, `[]`, string(raw))
	_, raw = s.request(t, http.MethodGet, "/api/chat/messages", nil)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestServer_UploadRejections(t *testing.T) {
	s := newTestServer(t)

	status, raw := s.upload(t, filePart{field: "file", name: "tool.exe", mimeType: "application/x-msdownload", body: []byte("MZ")})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "File type not supported", errorMessage(t, raw))

	status, raw = s.upload(t)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No file uploaded", errorMessage(t, raw))

	status, raw = s.upload(t,
		filePart{field: "file", name: "a.txt", mimeType: "text/plain", body: []byte("a")},
		filePart{field: "other", name: "b.txt", mimeType: "text/plain", body: []byte("b")},
	)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Only one file may be uploaded per request", errorMessage(t, raw))

	status, raw = s.upload(t, filePart{field: "file", name: "big.txt", mimeType: "text/plain", body: bytes.Repeat([]byte("x"), 4097)})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "File too large", errorMessage(t, raw))

	assert.Empty(t, s.files(t))
}

func TestServer_ContentRoundTrip(t *testing.T) {
	s := newTestServer(t)
	text := "line one\nline two ✓\n"
	file := s.uploadOK(t, "notes.md", "text/markdown", []byte(text))

	status, raw := s.request(t, http.MethodGet, "/api/files/"+file.Id.String()+"/content", nil)

	require.Equal(t, http.StatusOK, status)
	var content dto.FileContentResponse
	require.NoError(t, json.Unmarshal(raw, &content))
	assert.Equal(t, text, content.Content)
	assert.NotContains(t, string(raw), "analyzed")
}

func TestServer_ImageContentIsAnalyzedAndAppended(t *testing.T) {
	s := newTestServer(t)
	file := s.uploadOK(t, "pic.png", "image/png", []byte("\x89PNG\r\n\x1a\n"))

	status, raw := s.request(t, http.MethodGet, "/api/files/"+file.Id.String()+"/content", nil)

	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"content":"image reply","analyzed":true}`, string(raw))

	messages := s.messages(t)
	require.Len(t, messages, 1)
	assert.Equal(t, "ai", messages[0].Sender)
	assert.Equal(t, []string{file.Id.String()}, messages[0].FileIds)
}

func TestServer_ContentAndAnalyzeFailures(t *testing.T) {
	s := newTestServer(t)
	pdf := s.uploadOK(t, "doc.pdf", "application/pdf", []byte("%PDF-1.4"))

	status, raw := s.request(t, http.MethodGet, "/api/files/"+pdf.Id.String()+"/content", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "File content not available", errorMessage(t, raw))

	status, raw = s.request(t, http.MethodPost, "/api/files/"+pdf.Id.String()+"/analyze", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "File cannot be analyzed", errorMessage(t, raw))

	status, _ = s.request(t, http.MethodPost, "/api/files/not-a-uuid/analyze", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.request(t, http.MethodGet, "/api/files/00000000-0000-0000-0000-000000000000/content", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestServer_Analyze(t *testing.T) {
	s := newTestServer(t)
	file := s.uploadOK(t, "main.js", "text/javascript", []byte("console.log(1)"))

	status, raw := s.request(t, http.MethodPost, "/api/files/"+file.Id.String()+"/analyze", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"text":"generated reply"}`, string(raw))
	assert.Empty(t, s.messages(t))

	s.provider.fail(errors.New("upstream 503"))
	status, raw = s.request(t, http.MethodPost, "/api/files/"+file.Id.String()+"/analyze", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to analyze file", errorMessage(t, raw))
	assert.NotContains(t, string(raw), "upstream 503")
}

func TestServer_ChatFlow(t *testing.T) {
	s := newTestServer(t)
	file := s.uploadOK(t, "a.txt", "text/plain", []byte("alpha"))

	status, raw := s.request(t, http.MethodPost, "/api/chat/send", map[string]interface{}{"content": ""})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Message content is required", errorMessage(t, raw))
	assert.Empty(t, s.messages(t))

	status, raw = s.request(t, http.MethodPost, "/api/chat/send", map[string]interface{}{
		"content": "summarize",
		"fileIds": []string{file.Id.String()},
	})
	require.Equal(t, http.StatusOK, status)
	var res dto.SendMessageResponse
	require.NoError(t, json.Unmarshal(raw, &res))
	assert.Equal(t, "generated reply", res.AiMessage.Content)
	assert.NotContains(t, string(raw), `"error"`)

	messages := s.messages(t)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].Sender)
	assert.Equal(t, []string{file.Id.String()}, messages[0].FileIds)
	assert.Equal(t, "ai", messages[1].Sender)
	assert.Equal(t, []string{}, messages[1].FileIds)

	status, raw = s.request(t, http.MethodDelete, "/api/chat/clear", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "Chat history cleared")
	assert.Empty(t, s.messages(t))
	assert.Len(t, s.files(t), 1)
}

func TestServer_ChatDegradedWhenProviderFails(t *testing.T) {
	s := newTestServer(t)
	s.provider.fail(errors.New("connection refused"))

	status, raw := s.request(t, http.MethodPost, "/api/chat/send", map[string]interface{}{"content": "hello"})

	require.Equal(t, http.StatusOK, status)
	var res dto.SendMessageResponse
	require.NoError(t, json.Unmarshal(raw, &res))
	assert.NotEmpty(t, res.AiMessage.Content)
	assert.Equal(t, "connection refused", res.Error)
	assert.Len(t, s.messages(t), 2)
}

func TestServer_ChatInvalidBody(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/chat/send", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")

	status, raw := s.do(t, req)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid request body", errorMessage(t, raw))
}

func TestServer_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	status, raw := s.request(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","store":"memory"}`, string(raw))

	s.files(t)
	status, raw = s.request(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "workspace_http_requests_total")
}
