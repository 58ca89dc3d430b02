package usecase_test

import (
	"context"
	"errors"
	"testing"

	"qa-orchestrator/internal/domain"
	"qa-orchestrator/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUsageAccountant_ZeroCostLocalModel(t *testing.T) {
	accountant := usecase.NewUsageAccountant(usecase.DefaultCostTable(), nil, discardLogger())

	usage, cost := accountant.Account(100, &usecase.GenerationResult{
		ModelUsed:        "qwen2.5:7b",
		Content:          "answer",
		CompletionTokens: 50,
	})

	assert.Equal(t, 100, usage.PromptTokens)
	assert.Equal(t, 50, usage.CompletionTokens)
	assert.Equal(t, 150, usage.TotalTokens)
	assert.Equal(t, 0.0, cost)
}

func TestUsageAccountant_UnknownModelUsesDefaultRate(t *testing.T) {
	accountant := usecase.NewUsageAccountant(usecase.DefaultCostTable(), nil, discardLogger())

	usage, cost := accountant.Account(500_000, &usecase.GenerationResult{
		ModelUsed:        "some-new-model",
		CompletionTokens: 500_000,
	})

	assert.Equal(t, 1_000_000, usage.TotalTokens)
	assert.InDelta(t, 1.00, cost, 1e-9)
}

func TestUsageAccountant_EstimatesMissingCompletionTokens(t *testing.T) {
	accountant := usecase.NewUsageAccountant(usecase.DefaultCostTable(), nil, discardLogger())

	usage, _ := accountant.Account(10, &usecase.GenerationResult{
		ModelUsed: "qwen2.5:7b",
		Content:   "0123456789abcdef", // 16 chars -> 4 tokens
	})

	assert.Equal(t, 4, usage.CompletionTokens)
	assert.Equal(t, 14, usage.TotalTokens)
}

func TestCostTable_WithOverrides(t *testing.T) {
	table := usecase.DefaultCostTable().WithOverrides(map[string]float64{
		"gpt-4o":       4.50,
		"custom-model": 2.25,
	})

	assert.Equal(t, 4.50, table.RateFor("gpt-4o"))
	assert.Equal(t, 2.25, table.RateFor("custom-model"))
	assert.Equal(t, 0.60, table.RateFor("gpt-4o-mini"))
	assert.Equal(t, 1.00, table.RateFor("never-seen"))
}

func TestCostTable_WithOverrides_EmptyKeepsTable(t *testing.T) {
	base := usecase.DefaultCostTable()
	table := base.WithOverrides(nil)

	assert.Equal(t, base, table)
}

func TestUsageAccountant_RecordSwallowsSinkFailure(t *testing.T) {
	sink := new(mockUsageSink)
	sink.On("Record", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	accountant := usecase.NewUsageAccountant(usecase.DefaultCostTable(), sink, discardLogger())
	accountant.Record(context.Background(), domain.UsageEntry{RequesterID: "u1", ModelUsed: "qwen2.5:7b"})

	sink.AssertNumberOfCalls(t, "Record", 1)
}

func TestUsageAccountant_RecordWithNilSink(t *testing.T) {
	accountant := usecase.NewUsageAccountant(usecase.DefaultCostTable(), nil, discardLogger())

	// must not panic
	accountant.Record(context.Background(), domain.UsageEntry{RequesterID: "u1"})
}
