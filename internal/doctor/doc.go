// Package doctor provides diagnostic checks for an antika installation.
//
// Each [Check] inspects one concern (the workflow file on disk, its syntax,
// the application targets and website URLs it names, the URL opener and the
// application config) and returns a [Result] with a [Severity]. A
// [Runner] executes the registered checks in order and aggregates them into
// a [Report].
//
// Checks that can repair what they find implement [Fixer].
package doctor
