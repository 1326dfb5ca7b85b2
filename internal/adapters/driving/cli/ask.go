package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/domain"
)

var (
	askFormat string
	askJSON   bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single question",
	Long: `Answers one natural-language question about the retail business.
The question is routed to document retrieval, SQL generation, or both,
and the answer is returned with citations and a confidence score.

The --format hint shapes the answer: "int", "float", "str", or a
structure sketch such as "{category:str, revenue:float}".`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askFormat, "format", "f", "str", "answer format hint")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the full result as JSON")
	rootCmd.AddCommand(askCmd)
}

// answerRecord is the JSON shape of one answered question.
type answerRecord struct {
	ID          string   `json:"id,omitempty"`
	FinalAnswer any      `json:"final_answer"`
	SQL         string   `json:"sql"`
	Confidence  float64  `json:"confidence"`
	Explanation string   `json:"explanation"`
	Citations   []string `json:"citations"`
}

// newAnswerRecord converts a run result for output. Citations are
// normalised to an empty slice so the JSON field is always a list.
func newAnswerRecord(id string, result domain.RunResult) answerRecord {
	citations := result.Citations
	if citations == nil {
		citations = []string{}
	}
	return answerRecord{
		ID:          id,
		FinalAnswer: result.Answer,
		SQL:         result.Query,
		Confidence:  result.Confidence,
		Explanation: result.Explanation,
		Citations:   citations,
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if copilotService == nil {
		if err := ensureServices(cmd.Context()); err != nil {
			return err
		}
	}
	if copilotService == nil {
		return errors.New("copilot service not configured")
	}

	result, err := copilotService.Ask(cmd.Context(), question, askFormat)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(newAnswerRecord("", result), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputAnswer(cmd, result)
}

func outputAnswer(cmd *cobra.Command, result domain.RunResult) error {
	if result.Answer == nil {
		cmd.Println("No answer.")
	} else if s, ok := result.Answer.(string); ok {
		cmd.Println(s)
	} else {
		data, err := json.Marshal(result.Answer)
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
	}

	cmd.Println()
	cmd.Printf("Confidence: %.2f\n", result.Confidence)
	if result.Query != "" {
		cmd.Printf("SQL: %s\n", result.Query)
	}
	if len(result.Citations) > 0 {
		cmd.Printf("Citations: %v\n", result.Citations)
	}
	if result.Explanation != "" {
		cmd.Printf("Explanation: %s\n", result.Explanation)
	}
	return nil
}
