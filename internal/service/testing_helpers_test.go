package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/repository/memory"
	"ai-workspace-be/pkg/events"
	"ai-workspace-be/pkg/filestore"
	"ai-workspace-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRawMessage(payload []byte) *message.Message {
	return message.NewMessage(watermill.NewUUID(), payload)
}

type generateCall struct {
	Prompt      string
	Image       *llm.Image
	Instruction string
	Options     *llm.Options
}

// fakeProvider records calls and answers with reply, or fails with err.
type fakeProvider struct {
	mu    sync.Mutex
	reply string
	err   error
	calls []generateCall
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) record(call generateCall) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.reply, f.err
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.record(generateCall{Prompt: history[len(history)-1].Content, Options: llm.NewOptions(opts...)})
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.record(generateCall{Prompt: prompt, Options: llm.NewOptions(opts...)})
}

func (f *fakeProvider) GenerateWithImage(ctx context.Context, image llm.Image, instruction string, opts ...llm.Option) (string, error) {
	img := image
	return f.record(generateCall{Image: &img, Instruction: instruction, Options: llm.NewOptions(opts...)})
}

func (f *fakeProvider) Calls() []generateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]generateCall(nil), f.calls...)
}

var errProviderDown = errors.New("dial tcp: connection refused")

// recordingPublisher captures events synchronously.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}

const testMaxBytes = 1024

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type fixture struct {
	store     *memory.RecordStore
	files     *filestore.FileStore
	provider  *fakeProvider
	publisher *recordingPublisher
	analysis  IAnalysisService
	file      IFileService
	chat      IChatService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	files, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	f := &fixture{
		store:     memory.NewRecordStore(),
		files:     files,
		provider:  &fakeProvider{reply: "model says hi"},
		publisher: &recordingPublisher{},
	}
	log := logger.NewNopLogger()
	f.analysis = NewAnalysisService(f.store, f.files, f.provider, f.publisher, log)
	f.file = NewFileService(f.store, f.files, f.analysis, f.publisher, log, testMaxBytes)
	f.chat = NewChatService(f.store, f.provider, f.publisher, log)
	return f
}

func (f *fixture) upload(t *testing.T, name, mimeType string, body []byte) *dto.FileResponse {
	t.Helper()
	res, err := f.file.Upload(context.Background(), &dto.UploadFileRequest{
		OriginalName: name,
		MimeType:     mimeType,
		Size:         int64(len(body)),
		Body:         bytes.NewReader(body),
	})
	require.NoError(t, err)
	return res
}

func requireServiceError(t *testing.T, err error, kind error, message string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)
	assert.Equal(t, message, err.Error())
}
