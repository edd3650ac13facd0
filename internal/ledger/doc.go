// Package ledger records batch run outcomes in SQLite. Sources are destroyed
// on success, so the ledger is the only durable record of what each run
// consumed and produced. Writes are best effort: the pipeline never fails
// because the audit trail could not be written.
package ledger
