package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stackforge/genstack/model"
	"github.com/stackforge/genstack/model/kind"
	"github.com/stackforge/genstack/service/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBoundary struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	entered  chan struct{}
	release  chan struct{}
}

func (s *stubBoundary) Execute(ctx context.Context, request *executor.Request) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.entered != nil {
		close(s.entered)
	}
	if s.release != nil {
		<-s.release
	}
	return s.response, s.err
}

func (s *stubBoundary) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func validStack() *model.Stack {
	return &model.Stack{
		Nodes: []*model.Node{
			{ID: "userQuery-1", Type: kind.UserQuery, Data: model.NodeData{Config: map[string]interface{}{}}},
			{ID: "llmEngine-1", Type: kind.LlmEngine, Data: model.NodeData{Config: map[string]interface{}{}}},
			{ID: "output-1", Type: kind.Output, Data: model.NodeData{Config: map[string]interface{}{}}},
		},
	}
}

func TestSession_Submit(t *testing.T) {
	boundary := &stubBoundary{response: "hi"}
	session := New(validStack, executor.NewBuilder(), boundary)

	require.NoError(t, session.Submit(context.Background(), "hello"))

	transcript := session.Transcript()
	require.Equal(t, 2, len(transcript))
	assert.Equal(t, Turn{Role: RoleUser, Content: "hello"}, transcript[0])
	assert.Equal(t, Turn{Role: RoleAssistant, Content: "hi"}, transcript[1])
	assert.False(t, session.Pending())
}

func TestSession_Submit_ignoresBlankUtterance(t *testing.T) {
	boundary := &stubBoundary{response: "hi"}
	session := New(validStack, executor.NewBuilder(), boundary)

	require.NoError(t, session.Submit(context.Background(), ""))
	require.NoError(t, session.Submit(context.Background(), "   \t\n"))

	assert.Equal(t, 0, len(session.Transcript()))
	assert.Equal(t, 0, boundary.callCount())
}

func TestSession_Submit_alreadyPending(t *testing.T) {
	boundary := &stubBoundary{
		response: "done",
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	session := New(validStack, executor.NewBuilder(), boundary)

	finished := make(chan error, 1)
	go func() {
		finished <- session.Submit(context.Background(), "first")
	}()

	select {
	case <-boundary.entered:
	case <-time.After(time.Second):
		t.Fatal("boundary was never called")
	}
	assert.True(t, session.Pending())

	// a second submission is dropped, not queued, and appends nothing
	err := session.Submit(context.Background(), "second")
	assert.ErrorIs(t, err, ErrAlreadyPending)
	assert.Equal(t, 1, len(session.Transcript()))

	close(boundary.release)
	require.NoError(t, <-finished)

	transcript := session.Transcript()
	require.Equal(t, 2, len(transcript))
	assert.Equal(t, "first", transcript[0].Content)
	assert.Equal(t, "done", transcript[1].Content)
	assert.False(t, session.Pending())
	assert.Equal(t, 1, boundary.callCount())
}

func TestSession_Submit_validationFailure(t *testing.T) {
	boundary := &stubBoundary{response: "never"}
	snapshot := func() *model.Stack {
		stack := validStack()
		stack.Nodes = stack.Nodes[:1] // user query only
		return stack
	}
	session := New(snapshot, executor.NewBuilder(), boundary)

	require.NoError(t, session.Submit(context.Background(), "x"))

	// rejected before any network call
	assert.Equal(t, 0, boundary.callCount())
	transcript := session.Transcript()
	require.Equal(t, 2, len(transcript))
	assert.Equal(t, RoleAssistant, transcript[1].Role)
	assert.Equal(t, "Error: invalid workflow: missing required component LLM Engine",
		transcript[1].Content)
	assert.False(t, session.Pending())
}

func TestSession_Submit_boundaryFailure(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		content string
	}{
		{
			name:    "service detail surfaces verbatim",
			err:     &executor.StatusError{StatusCode: 500, Detail: "OpenAI quota exceeded"},
			content: "Error: OpenAI quota exceeded",
		},
		{
			name:    "network failure collapses to generic message",
			err:     context.DeadlineExceeded,
			content: "Error: Failed to process request",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			boundary := &stubBoundary{err: testCase.err}
			session := New(validStack, executor.NewBuilder(), boundary)

			require.NoError(t, session.Submit(context.Background(), "hello"))

			transcript := session.Transcript()
			require.Equal(t, 2, len(transcript))
			// the error turn has the same shape as a normal assistant turn
			assert.Equal(t, Turn{Role: RoleAssistant, Content: testCase.content}, transcript[1])
			assert.False(t, session.Pending())
		})
	}
}

func TestSession_Submit_onResponse(t *testing.T) {
	boundary := &stubBoundary{response: "42"}
	var observed string
	session := New(validStack, executor.NewBuilder(), boundary,
		WithOnResponse(func(response string) { observed = response }))

	require.NoError(t, session.Submit(context.Background(), "meaning of life?"))
	assert.Equal(t, "42", observed)
}

func TestSession_Transcript_isCopy(t *testing.T) {
	boundary := &stubBoundary{response: "hi"}
	session := New(validStack, executor.NewBuilder(), boundary)
	require.NoError(t, session.Submit(context.Background(), "hello"))

	transcript := session.Transcript()
	transcript[0].Content = "tampered"
	assert.Equal(t, "hello", session.Transcript()[0].Content)
}
