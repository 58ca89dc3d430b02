package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"qa-orchestrator/internal/usecase"
)

var (
	askDocumentIDs []string
	askCategories  []string
	askRequester   string
	askJSON        bool
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question and print the answer with citations",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringSliceVar(&askDocumentIDs, "document", nil, "restrict retrieval to these document IDs")
	askCmd.Flags().StringSliceVar(&askCategories, "category", nil, "restrict retrieval to these categories")
	askCmd.Flags().StringVar(&askRequester, "requester", "askctl", "requester id recorded in the usage log")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the raw response JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	payload := map[string]any{
		"question":              args[0],
		"requester_id":          askRequester,
		"selected_document_ids": askDocumentIDs,
		"selected_categories":   askCategories,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := httpClient().Post(serverURL+"/v1/questions", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var result usecase.RAGResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if askJSON {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	}

	if !result.Success {
		return fmt.Errorf("%s", result.Message)
	}

	fmt.Printf("Summary (%s):\n%s\n\n", result.SummaryReadingTime, result.Summary)
	fmt.Printf("Answer (%s):\n%s\n", result.AnswerReadingTime, result.Answer)

	if len(result.Citations) > 0 {
		fmt.Println("\nSources:")
		for i, citation := range result.Citations {
			fmt.Printf("  [%d] %s", i+1, citation.DocumentTitle)
			if citation.PageNumber != nil {
				fmt.Printf(", page %d", *citation.PageNumber)
			}
			if citation.FileURL != "" {
				fmt.Printf("\n      %s", citation.FileURL)
			}
			fmt.Println()
		}
	}

	fmt.Printf("\nModel: %s  Tokens: %d  Cost: $%.6f\n",
		result.ModelUsed, result.TokenUsage.TotalTokens, result.EstimatedCost)
	if result.UsedFallbackContext {
		fmt.Println("Note: answered from recent material, not a similarity match.")
	}
	return nil
}
