// Package sefazwatch watches the SEFAZ "contingência" status page and reports
// when a region enters or leaves contingency.
//
// A [Checker] runs one check cycle at a time: it fetches the page, extracts
// the rows of the status table, compares them with the state persisted by
// the previous cycle and sends one notification per change. Scheduling is
// left to cron, a systemd timer or any other external runner.
//
// # Quick Start
//
// The config package builds a Checker from a YAML file:
//
//	cfg, err := config.Load("sefazwatch.yaml")
//	if err != nil {
//	    slog.Error("failed to load config", "error", err)
//	    os.Exit(1)
//	}
//	notifier, err := config.BuildNotifier(cfg, nil, logger)
//	// ...
//	checker, cleanup, err := config.BuildChecker(cfg, notifier, logger)
//	// ...
//	defer cleanup()
//
//	report, err := checker.Check(ctx)
//
// Checkers can also be assembled directly with [New] and options such as
// [WithStore], [WithNotifier] and [WithReplayPending].
//
// # Building blocks
//
// The cycle is made of pure pieces that can be used on their own:
//
//   - [ExtractRows]: text cells of every row of the marked status table
//   - [ParseRow]: region code, details and active flag of one row
//   - [Diff]: changes and next state from rows and the previous state
//
// # Errors
//
// Check classifies what went wrong with sentinel errors ([ErrFetch],
// [ErrNoTableData], [ErrLoadState], [ErrPersist]). All of them leave the
// persisted state as it was. [IsHandled] reports whether an error is one of
// these expected outcomes.
package sefazwatch
