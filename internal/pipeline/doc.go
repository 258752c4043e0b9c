// Package pipeline provides a framework for executing report steps in
// sequence.
//
// A daily run is processed through these stages: fetch the trending
// listing, filter it by keyword, enrich the displayed repositories with
// README excerpts, write the report files and update the index document.
// Each stage is implemented as a Step that receives the current
// model.DailyReport and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context between steps
package pipeline
