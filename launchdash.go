// Package launchdash is an interactive dashboard over historical SpaceX
// launch outcomes.
//
// The launch table is loaded once at startup and two linked charts are
// derived from it on every control change:
//
//	launch.OutcomeDistribution(table, site)     // pie: successes per site, or success vs failure
//	launch.PayloadScatter(table, site, range)   // scatter: payload mass vs outcome by booster
//
// launch.PayloadSummary aggregates the scatter selection per booster, site
// or outcome for the "query summary" command.
//
// The dashboard package binds the site dropdown and payload slider to those
// queries; ui and server render them in a terminal or a browser. All
// computation runs on the local engine package; nothing calls out to an
// external service.
package launchdash
