// Package export archives alert digests to object storage.
//
// A digest bundles per status counts with the most recent alerts into a
// single JSON object, uploaded under digests/ with a UTC timestamp in the
// object name. The target bucket is created on first use, and old digests
// can be listed, read back, and pruned down to a retention count.
package export
