package editor

import (
	"testing"

	"github.com/stackforge/genstack/model"
	"github.com/stackforge/genstack/model/kind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_AddNode(t *testing.T) {
	service := New("test stack")

	id, err := service.AddNode(kind.LlmEngine, model.Position{X: 10, Y: 20})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	node, err := service.Node(id)
	require.NoError(t, err)
	assert.Equal(t, kind.LlmEngine, node.Type)
	assert.Equal(t, model.Position{X: 10, Y: 20}, node.Position)
	assert.Equal(t, "LLM (OpenAI)", node.Data.Label)
	// config is complete from the start, initialised from kind defaults
	assert.Equal(t, "GPT-4o-Mini", node.Data.Config["model"])
	assert.Equal(t, 0.75, node.Data.Config["temperature"])

	_, err = service.AddNode(kind.Kind("mystery"), model.Position{})
	assert.ErrorIs(t, err, kind.ErrUnknownKind)
}

func TestService_AddNode_uniqueIDs(t *testing.T) {
	service := New("test stack")
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := service.AddNode(kind.UserQuery, model.Position{})
		require.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestService_AddNode_configNotShared(t *testing.T) {
	service := New("test stack")
	first, err := service.AddNode(kind.KnowledgeBase, model.Position{})
	require.NoError(t, err)
	second, err := service.AddNode(kind.KnowledgeBase, model.Position{})
	require.NoError(t, err)

	require.NoError(t, service.Configure(first, "chunkSize", 1000))
	node, err := service.Node(second)
	require.NoError(t, err)
	assert.Equal(t, 500, node.Data.Config["chunkSize"])
}

func TestService_MoveNode(t *testing.T) {
	service := New("test stack")
	id, err := service.AddNode(kind.Output, model.Position{X: 1, Y: 1})
	require.NoError(t, err)

	require.NoError(t, service.MoveNode(id, model.Position{X: -50, Y: 9000}))
	node, err := service.Node(id)
	require.NoError(t, err)
	// no bounds validation, any coordinates are accepted
	assert.Equal(t, model.Position{X: -50, Y: 9000}, node.Position)

	assert.ErrorIs(t, service.MoveNode("missing", model.Position{}), ErrNodeNotFound)
}

func TestService_Connect(t *testing.T) {
	service := New("test stack")
	queryID, err := service.AddNode(kind.UserQuery, model.Position{})
	require.NoError(t, err)
	llmID, err := service.AddNode(kind.LlmEngine, model.Position{})
	require.NoError(t, err)
	outputID, err := service.AddNode(kind.Output, model.Position{})
	require.NoError(t, err)

	testCases := []struct {
		name      string
		source    string
		target    string
		expectErr error
	}{
		{
			name:   "query to llm",
			source: queryID,
			target: llmID,
		},
		{
			name:      "missing source",
			source:    "missing",
			target:    llmID,
			expectErr: ErrNodeNotFound,
		},
		{
			name:      "missing target",
			source:    llmID,
			target:    "missing",
			expectErr: ErrNodeNotFound,
		},
		{
			name:      "self loop",
			source:    llmID,
			target:    llmID,
			expectErr: ErrInvalidEndpoints,
		},
		{
			name:      "user query never a target",
			source:    llmID,
			target:    queryID,
			expectErr: ErrInvalidEndpoints,
		},
		{
			name:      "output never a source",
			source:    outputID,
			target:    llmID,
			expectErr: ErrInvalidEndpoints,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			edgeID, err := service.Connect(testCase.source, testCase.target)
			if testCase.expectErr != nil {
				assert.ErrorIs(t, err, testCase.expectErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, edgeID)
		})
	}
}

func TestService_Connect_multiEdge(t *testing.T) {
	service := New("test stack")
	queryID, _ := service.AddNode(kind.UserQuery, model.Position{})
	llmID, _ := service.AddNode(kind.LlmEngine, model.Position{})

	first, err := service.Connect(queryID, llmID)
	require.NoError(t, err)
	second, err := service.Connect(queryID, llmID)
	require.NoError(t, err)

	// connecting the same pair twice yields two distinct edges
	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, len(service.Snapshot().Edges))
}

func TestService_Configure(t *testing.T) {
	service := New("test stack")
	id, _ := service.AddNode(kind.UserQuery, model.Position{})

	require.NoError(t, service.Configure(id, "query", "what is a stack?"))
	// unknown keys are accepted and stored as-is
	require.NoError(t, service.Configure(id, "favouriteColor", "green"))

	config, err := service.Config(id)
	require.NoError(t, err)
	assert.Equal(t, "what is a stack?", config["query"])
	assert.Equal(t, "green", config["favouriteColor"])

	assert.ErrorIs(t, service.Configure("missing", "query", ""), ErrNodeNotFound)
}

func TestService_RemoveNode(t *testing.T) {
	service := New("test stack")
	queryID, _ := service.AddNode(kind.UserQuery, model.Position{})
	llmID, _ := service.AddNode(kind.LlmEngine, model.Position{})
	outputID, _ := service.AddNode(kind.Output, model.Position{})
	_, _ = service.Connect(queryID, llmID)
	_, _ = service.Connect(llmID, outputID)

	require.NoError(t, service.RemoveNode(llmID))

	stack := service.Snapshot()
	assert.Equal(t, 2, len(stack.Nodes))
	// every edge referencing the node is cascaded away
	assert.Equal(t, 0, len(stack.Edges))

	assert.ErrorIs(t, service.RemoveNode(llmID), ErrNodeNotFound)
}

func TestService_Snapshot(t *testing.T) {
	service := New("test stack")
	queryID, _ := service.AddNode(kind.UserQuery, model.Position{X: 1})
	llmID, _ := service.AddNode(kind.LlmEngine, model.Position{X: 2})
	outputID, _ := service.AddNode(kind.Output, model.Position{X: 3})
	_, _ = service.Connect(queryID, llmID)
	_ = service.Configure(queryID, "query", "hello")

	first := service.Snapshot()
	second := service.Snapshot()

	// insertion order, stable across repeated calls
	assert.Equal(t, []string{queryID, llmID, outputID},
		[]string{first.Nodes[0].ID, first.Nodes[1].ID, first.Nodes[2].ID})
	assert.Equal(t, first, second)

	// a snapshot is a deep copy; mutating it never leaks back
	first.Nodes[0].Data.Config["query"] = "tampered"
	node, err := service.Node(queryID)
	require.NoError(t, err)
	assert.Equal(t, "hello", node.Data.Config["query"])
}

func TestService_Listeners(t *testing.T) {
	service := New("test stack")
	var mutations []Mutation
	service.RegisterListeners(func(mutation Mutation) {
		mutations = append(mutations, mutation)
	})

	id, _ := service.AddNode(kind.UserQuery, model.Position{})
	_ = service.Configure(id, "query", "hi")
	_ = service.RemoveNode(id)

	require.Equal(t, 3, len(mutations))
	assert.Equal(t, OpAddNode, mutations[0].Op)
	assert.Equal(t, OpConfigure, mutations[1].Op)
	assert.Equal(t, OpRemoveNode, mutations[2].Op)
}
