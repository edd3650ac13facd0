// Package motion implements the per-frame motion classifier and the interval
// aggregation pipeline that turns sparse motion samples into the merged,
// buffered time ranges handed to the extractor.
package motion
