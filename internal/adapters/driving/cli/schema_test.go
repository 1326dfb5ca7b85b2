package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaCmd_Use(t *testing.T) {
	assert.Equal(t, "schema", schemaCmd.Use)
}

func TestSchemaCmd_PrintsSchema(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"schema"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Table orders:")
	assert.Contains(t, buf.String(), "PRIMARY KEY")
}

func TestSchemaCmd_RejectsArgs(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"schema", "extra"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}
