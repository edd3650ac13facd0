// Package retime restores file timestamps from camera-stamped filenames.
//
// Recording filenames carry their capture moment twice, as a readable
// date-time and as a Unix timestamp (20210811-104712-1628671632). When the
// original source files are gone only the name is left, so retime parses
// the trailing Unix seconds back out and applies them as the file's access
// and modification times.
package retime
