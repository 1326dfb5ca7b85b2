// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - Config: TOML-based application configuration
//   - PromptStore: user-editable prompt templates
package file
