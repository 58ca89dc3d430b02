package usecase_test

import (
	"context"
	"errors"
	"testing"

	"qa-orchestrator/internal/domain"
	"qa-orchestrator/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func chainConfig(models ...string) usecase.GenerationConfig {
	return usecase.GenerationConfig{Models: models, Temperature: 0.2, MaxTokens: 1024}
}

func forModel(model string) interface{} {
	return mock.MatchedBy(func(req domain.CompletionRequest) bool {
		return req.Model == model
	})
}

func TestGenerationChain_FirstModelSucceeds(t *testing.T) {
	client := new(mockCompletionClient)
	client.On("Complete", mock.Anything, forModel("primary")).Return(&domain.CompletionResult{
		Content: "answer", PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30,
	}, nil)

	chain, err := usecase.NewGenerationChain(client, chainConfig("primary", "secondary"), discardLogger())
	require.NoError(t, err)

	result, err := chain.Generate(context.Background(), usecase.PromptPair{System: "s", User: "u"})
	require.NoError(t, err)

	assert.Equal(t, "primary", result.ModelUsed)
	assert.Len(t, result.Attempts, 1)
	client.AssertNumberOfCalls(t, "Complete", 1)
}

func TestGenerationChain_FallsThroughToThirdModel(t *testing.T) {
	client := new(mockCompletionClient)
	client.On("Complete", mock.Anything, forModel("a")).Return(nil, errors.New("model not loaded"))
	client.On("Complete", mock.Anything, forModel("b")).Return(nil, errors.New("timeout"))
	client.On("Complete", mock.Anything, forModel("c")).Return(&domain.CompletionResult{
		Content: "answer", CompletionTokens: 5, TotalTokens: 5,
	}, nil)

	chain, err := usecase.NewGenerationChain(client, chainConfig("a", "b", "c"), discardLogger())
	require.NoError(t, err)

	result, err := chain.Generate(context.Background(), usecase.PromptPair{System: "s", User: "u"})
	require.NoError(t, err)

	assert.Equal(t, "c", result.ModelUsed)
	require.Len(t, result.Attempts, 3)
	assert.True(t, result.Attempts[0].Failed())
	assert.True(t, result.Attempts[1].Failed())
	assert.False(t, result.Attempts[2].Failed())
}

func TestGenerationChain_AllModelsFail(t *testing.T) {
	client := new(mockCompletionClient)
	client.On("Complete", mock.Anything, forModel("a")).Return(nil, errors.New("first failure"))
	client.On("Complete", mock.Anything, forModel("b")).Return(nil, errors.New("final failure"))

	chain, err := usecase.NewGenerationChain(client, chainConfig("a", "b"), discardLogger())
	require.NoError(t, err)

	result, err := chain.Generate(context.Background(), usecase.PromptPair{System: "s", User: "u"})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "all 2 models failed")
	assert.Contains(t, err.Error(), "final failure")
}

func TestNewGenerationChain_RejectsEmptyModelList(t *testing.T) {
	client := new(mockCompletionClient)
	_, err := usecase.NewGenerationChain(client, chainConfig(), discardLogger())
	assert.Error(t, err)
}
