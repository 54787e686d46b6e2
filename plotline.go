// Package plotline turns free-text analysis tasks into computed answers.
//
// Usage:
//
//	import "github.com/plotline-org/plotline/pipeline"
//
//	coord := pipeline.New(classifier,
//	    pipeline.WithChartBudget(100_000),
//	    pipeline.WithFetchTimeout(30*time.Second),
//	)
//	resp, err := coord.Run(ctx, task, pipeline.HTMLSource(url))
//
// The pipeline classifies the task, extracts a uniform table from the
// source (HTML page, delimited bytes, or a remote columnar store),
// resolves semantic roles onto columns, computes statistics, and — when
// the task asks for one — renders a size-bounded chart as a base64 data
// URI. Classification may delegate to an external text-generation
// service; a deterministic keyword classifier is always available as the
// fallback. All computation after classification is local.
package plotline
