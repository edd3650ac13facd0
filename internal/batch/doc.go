// Package batch discovers candidate recordings, fans file jobs out across a
// bounded worker pool, collects their outcomes, and prunes emptied input
// directories once every job has finished.
package batch
