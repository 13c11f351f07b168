// Package store loads workflow tools from a file and bootstraps that file.
//
// [FileStore] implements [ConfigStore] for a single path chosen by the
// caller. The on-disk format follows the file extension:
//
//	| Extension     | Format                                             |
//	|---------------|----------------------------------------------------|
//	| .csv          | header "mode,kind,target", one tool per row        |
//	| .yaml, .yml   | workflows: [{mode, apps: [...], websites: [...]}]  |
//	| .json         | same document shape as YAML                        |
//	| .toml         | same document shape, as [[workflows]] tables        |
//
// CSV is the reference format and the default file name is workflow.csv.
//
// Records with an empty mode, kind or target are dropped during load; that
// is expected data filtering, not an error. Read and decode failures are
// returned as errors matching [ErrStorage] and are never turned into an empty
// tool list.
package store
