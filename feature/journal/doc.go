// Package journal records applied merge runs and their per-file outcomes
// in the database so operators can audit what a merge changed.
//
// Runs are identified by a UUID, which also names the run's backup objects
// when backups are enabled.
package journal
