// Package metrics exposes runtime counters via expvar.
package metrics

import "expvar"

var (
	PostsIngested    = expvar.NewInt("posts_ingested")
	IngestFailures   = expvar.NewInt("ingest_failures")
	RecordsAnalyzed  = expvar.NewInt("records_analyzed")
	AnalyzeFailures  = expvar.NewInt("analyze_failures")
	LookupsServed    = expvar.NewInt("lookups_served")
	AlertsDispatched = expvar.NewInt("alerts_dispatched")
	AlertsFailed     = expvar.NewInt("alerts_failed")
)
