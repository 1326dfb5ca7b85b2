package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchCmd_Use(t *testing.T) {
	assert.Equal(t, "batch [questions.jsonl]", batchCmd.Use)
}

func TestBatchCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"batch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestBatchCmd_HasFlags(t *testing.T) {
	output := batchCmd.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "o", output.Shorthand)

	workers := batchCmd.Flags().Lookup("workers")
	require.NotNil(t, workers)
	assert.Equal(t, "w", workers.Shorthand)
}

func writeBatchInput(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.jsonl")
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestBatchCmd_AnswersAllQuestionsInOrder(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeBatchInput(t,
		`{"id": "q1", "question": "How many orders?", "format_hint": "int"}`,
		``,
		`{"question": "Total revenue?", "format_hint": "float"}`,
		`{"id": "q3", "question": "Top category?"}`,
	)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"batch", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)

	var records []answerRecord
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for scanner.Scan() {
		var rec answerRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}

	require.Len(t, records, 3)
	assert.Equal(t, "q1", records[0].ID)
	assert.NotEmpty(t, records[1].ID, "missing id should be generated")
	assert.Equal(t, "q3", records[2].ID)
	for _, rec := range records {
		assert.Equal(t, float64(42), rec.FinalAnswer)
		assert.Equal(t, 0.9, rec.Confidence)
	}
}

func TestBatchCmd_WritesToOutputFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeBatchInput(t, `{"id": "q1", "question": "How many orders?"}`)
	outPath := filepath.Join(t.TempDir(), "answers.jsonl")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"batch", path, "--output", outPath})
	defer func() {
		rootCmd.SetArgs(nil)
		batchOutput = ""
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":"q1"`)
	assert.Contains(t, buf.String(), "Answered 1 questions")
}

func TestBatchCmd_FailedQuestionDoesNotAbortBatch(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	copilotService.(*mockCopilot).err = errors.New("model offline")

	path := writeBatchInput(t,
		`{"id": "q1", "question": "How many orders?"}`,
		`{"id": "q2", "question": "Total revenue?"}`,
	)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"batch", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)

	var records []answerRecord
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for scanner.Scan() {
		var rec answerRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}

	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Nil(t, rec.FinalAnswer)
		assert.Zero(t, rec.Confidence)
		assert.Contains(t, rec.Explanation, "model offline")
	}
}

func TestBatchCmd_RejectsMalformedLine(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeBatchInput(t, `not json`)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"batch", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse line 1")
}

func TestBatchCmd_RejectsMissingQuestion(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeBatchInput(t, `{"id": "q1"}`)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"batch", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing question")
}
