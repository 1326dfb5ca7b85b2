package driven

import "context"

// DataStore is the contract to the relational store for schema
// introspection and query execution.
type DataStore interface {
	// SchemaDescription returns a human-readable table/column listing
	// including primary-key and not-null annotations, suitable for
	// inclusion in a prompt.
	SchemaDescription(ctx context.Context) (string, error)

	// TableNames returns all table names in a stable order.
	TableNames(ctx context.Context) ([]string, error)

	// Execute runs a query. Statement-level failures are reported in
	// QueryResult.Err as a plain message; the returned error is reserved
	// for connector-level breakage (closed store, cancelled context).
	Execute(ctx context.Context, query string) (QueryResult, error)

	// Close releases the underlying connection.
	Close() error
}

// QueryResult holds the outcome of one query execution.
type QueryResult struct {
	// Rows holds column→value mappings for SELECT queries. A SELECT
	// matching nothing yields an empty non-nil slice; non-SELECT
	// statements and failures leave Rows nil.
	Rows []map[string]any

	// Columns are the result column names, in result order.
	Columns []string

	// Err is the execution error message, empty on success.
	Err string
}
