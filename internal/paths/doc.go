// Package paths resolves the on-disk locations antika uses.
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// compliance:
//
//	| File          | Location                              |
//	|---------------|---------------------------------------|
//	| config.yaml   | <ConfigHome>/antika/config.yaml       |
//	| workflow.csv  | <ConfigHome>/antika/workflow.csv      |
//	| history.db    | <DataHome>/antika/history.db          |
//
// These are defaults only. The workflow store and history database always
// receive their path explicitly, so tests and the --file flag can point them
// anywhere.
package paths
