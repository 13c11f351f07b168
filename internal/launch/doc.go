// Package launch dispatches a workflow's tools to the operating system.
//
// A [Dispatcher] splits a workflow into applications and websites, keeping
// the store order inside each group, and hands every target to a [Launcher]:
// applications are spawned, websites are opened in the default browser. Each
// target is attempted independently. A failure is logged and recorded in the
// returned [Report], and dispatch continues with the next target.
//
// When the Launcher reports that URLs cannot be opened on this system, the
// websites are skipped as a group with a single warning.
//
// [SystemLauncher] is the production Launcher. Tests use the mockery
// generated mocks in the mocks subpackage.
package launch
