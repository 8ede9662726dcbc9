// Package pipeline orchestrates file discovery, parallel conversion, and
// batch summary reporting.
//
// Types:
//   - Result, RunStats
//
// Functions:
//   - Discover(root, exclude...) → sorted audio file paths
//   - PrepareOutput(cfg, log) creates the output directory
//   - Run(ctx, cfg, log) → RunStats: discover → resolve names → build jobs →
//     dry-run plan or worker pool → summary
package pipeline
