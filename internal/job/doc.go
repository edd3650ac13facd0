// Package job runs the end-to-end pipeline for one video: probe, classify
// every frame, aggregate motion intervals, extract, carry timestamps, delete
// the source. All failures are converted to a Result at the job boundary and
// never abort the batch.
package job
