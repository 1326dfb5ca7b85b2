package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/domain"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/logger"
)

var (
	batchOutput  string
	batchWorkers int
)

var batchCmd = &cobra.Command{
	Use:   "batch [questions.jsonl]",
	Short: "Answer a batch of questions from a JSONL file",
	Long: `Answers every question in a JSONL file, one JSON object per line:

  {"id": "q1", "question": "How many orders shipped in 1997?", "format_hint": "int"}

Questions are processed concurrently and results are written as JSONL
in input order. A question without an id is assigned a generated one.
A failed question yields a result line with a null answer rather than
aborting the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "output file (default stdout)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "concurrent questions (default from config)")
	rootCmd.AddCommand(batchCmd)
}

// batchQuestion is one JSONL input line.
type batchQuestion struct {
	ID         string `json:"id"`
	Question   string `json:"question"`
	FormatHint string `json:"format_hint"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	if copilotService == nil {
		if err := ensureServices(cmd.Context()); err != nil {
			return err
		}
	}
	if copilotService == nil {
		return errors.New("copilot service not configured")
	}

	questions, err := readBatchFile(args[0])
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("no questions in %s", args[0])
	}

	workers := batchWorkers
	if workers <= 0 {
		workers = appConfig.Batch.Workers
	}
	if workers > len(questions) {
		workers = len(questions)
	}

	records := processBatch(cmd.Context(), questions, workers)

	out := cmd.OutOrStdout()
	if batchOutput != "" {
		f, err := os.Create(batchOutput)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := writeBatchResults(out, records); err != nil {
		return err
	}

	if batchOutput != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Answered %d questions -> %s\n", len(records), batchOutput)
	}
	return nil
}

// readBatchFile parses a JSONL file of questions, assigning ids where
// missing and skipping blank lines.
func readBatchFile(path string) ([]batchQuestion, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}
	defer f.Close()

	var questions []batchQuestion
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var q batchQuestion
		if err := json.Unmarshal([]byte(line), &q); err != nil {
			return nil, fmt.Errorf("parse line %d: %w", lineNo, err)
		}
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("line %d: missing question", lineNo)
		}
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		questions = append(questions, q)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	return questions, nil
}

// processBatch answers questions with a bounded worker pool, returning
// records in input order. A per-question failure is folded into its
// record so the rest of the batch proceeds.
func processBatch(ctx context.Context, questions []batchQuestion, workers int) []answerRecord {
	records := make([]answerRecord, len(questions))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				q := questions[i]
				result, err := copilotService.Ask(ctx, q.Question, q.FormatHint)
				if err != nil {
					logger.Warn("Question %s failed: %v", q.ID, err)
					result = domain.RunResult{
						Explanation: fmt.Sprintf("Error: %v", err),
					}
				}
				records[i] = newAnswerRecord(q.ID, result)
			}
		}()
	}

	for i := range questions {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return records
}

// writeBatchResults writes one JSON object per line.
func writeBatchResults(w io.Writer, records []answerRecord) error {
	enc := json.NewEncoder(w)
	for i := range records {
		if err := enc.Encode(records[i]); err != nil {
			return fmt.Errorf("write result %s: %w", records[i].ID, err)
		}
	}
	return nil
}
