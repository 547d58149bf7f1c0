// Package progress provides a lightweight tracker of launch action counters
// (visited, completed, skipped, failed, running). The tracker travels in the
// launch context so that visitation can update it without a global registry.
package progress
