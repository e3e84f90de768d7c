package domain

// DefaultPrefix namespaces every combined event property so console metrics
// do not collide with other producers sharing the same event.
const DefaultPrefix = "vs.nuget.nugetpowershell."

// Record names produced by the console feature.
const (
	ConsoleExecuteCommandEvent = "PowerShellExecuteCommand"
)

// Combined event names.
const (
	SolutionCloseEvent = "NugetVSSolutionClose"
	InstanceCloseEvent = "NugetVSInstanceClose"
)

// Record field keys and combined event property names (before prefixing).
const (
	FieldExecutedCommandCount           = "executed-command-count"
	FieldNonConsoleExecutedCommandCount = "non-console-executed-command-count"
	FieldWindowLoadCount                = "window-load-count"
	FieldLoadedFromConsole              = "loaded-from-console"
	FieldLoadedFromUI                   = "loaded-from-ui"
	FieldFirstTimeLoadedFromConsole     = "first-time-loaded-from-console"
	FieldFirstTimeLoadedFromUI          = "first-time-loaded-from-ui"
	FieldReopenAtStart                  = "reopen-at-start"
	FieldSolutionLoaded                 = "solution-loaded"
	FieldSolutionCount                  = "solution-count"
	FieldConsoleLoadedSolutionCount     = "console-loaded-solution-count"
	FieldUILoadedSolutionCount          = "ui-loaded-solution-count"
)

// ConsoleSummaryFields lists the console-summary keys copied into the
// solution close event, in emit order.
var ConsoleSummaryFields = []string{
	FieldExecutedCommandCount,
	FieldNonConsoleExecutedCommandCount,
	FieldLoadedFromConsole,
	FieldLoadedFromUI,
	FieldFirstTimeLoadedFromConsole,
	FieldFirstTimeLoadedFromUI,
}
