package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the database schema",
	Long: `Prints the schema description of the configured database, exactly as
it is presented to the model during SQL generation.`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, _ []string) error {
	if dataStore == nil {
		if err := ensureDataStore(); err != nil {
			return err
		}
	}
	if dataStore == nil {
		return errors.New("data store not configured")
	}

	schema, err := dataStore.SchemaDescription(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Println(schema)
	return nil
}
