// Package preflight verifies a batch run can proceed: roots are accessible,
// the state directory is usable, output space looks sane, and the external
// binaries resolve.
package preflight
