package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	retrieveDocumentIDs []string
	retrieveCategories  []string
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve <question>",
	Short: "Fetch the ranked context passages without generating an answer",
	Args:  cobra.ExactArgs(1),
	RunE:  runRetrieve,
}

func init() {
	rootCmd.AddCommand(retrieveCmd)

	retrieveCmd.Flags().StringSliceVar(&retrieveDocumentIDs, "document", nil, "restrict retrieval to these document IDs")
	retrieveCmd.Flags().StringSliceVar(&retrieveCategories, "category", nil, "restrict retrieval to these categories")
}

type retrieveResponse struct {
	RequestID       string `json:"request_id"`
	EmbeddingTokens int    `json:"embedding_tokens"`
	UsedFallback    bool   `json:"used_fallback"`
	Chunks          []struct {
		ChunkID       string  `json:"chunk_id"`
		DocumentTitle string  `json:"document_title"`
		Similarity    float64 `json:"similarity"`
		Content       string  `json:"content"`
	} `json:"chunks"`
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	payload := map[string]any{
		"question":              args[0],
		"selected_document_ids": retrieveDocumentIDs,
		"selected_categories":   retrieveCategories,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := httpClient().Post(serverURL+"/v1/retrieve", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var result retrieveResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	for i, chunk := range result.Chunks {
		fmt.Printf("[%d] %s (similarity %.3f)\n", i+1, chunk.DocumentTitle, chunk.Similarity)
		fmt.Printf("    %s\n", firstLine(chunk.Content))
	}
	fmt.Printf("\n%d chunks, %d embedding tokens", len(result.Chunks), result.EmbeddingTokens)
	if result.UsedFallback {
		fmt.Print(" (fallback context)")
	}
	fmt.Println()
	return nil
}

func firstLine(content string) string {
	for i, r := range content {
		if r == '\n' || i >= 160 {
			return content[:i] + "..."
		}
	}
	return content
}
