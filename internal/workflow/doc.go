// Package workflow defines the launchable tool model and resolves a requested
// mode name to the workflow that shares it.
//
// A Tool is one launchable unit: an application path or a website URL tagged
// with the mode it belongs to. A Workflow is the ordered group of tools that
// share a mode; it is derived from the loaded tools rather than stored.
//
// # Matching
//
// Resolve trims the requested name and compares it case-insensitively with the
// known modes. When more than one mode folds to the same value (for example
// "Work" and "work"), an exact match wins; otherwise the mode seen first in the
// store wins.
//
// # Ordering
//
// Group and Resolve keep tools in store order. ListModes returns an unordered
// set; SortedModes is the lexicographic ordering used for every numbered
// listing.
package workflow
