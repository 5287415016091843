// Package backup keeps zstd-compressed copies of target region files in
// object storage before a merge overwrites them.
//
// Objects are keyed "<prefix>/<run id>/<file name>.zst", so a run recorded
// in the journal can be restored file by file with Restore.
package backup
