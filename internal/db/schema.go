package db

// SchemaSQL is the complete schema after all migrations. Tests load it
// through GetSchemaSQL so that repository code and schema cannot drift.
const SchemaSQL = `
-- Named JSON snapshots of the state store (fleet, ledger, tenders, ...)
CREATE TABLE IF NOT EXISTS slots (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- One row per processed console request
CREATE TABLE IF NOT EXISTS audit_log (
	id TEXT PRIMARY KEY,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	actor_id TEXT,
	command TEXT NOT NULL,
	rule TEXT,
	operation TEXT,
	denied INTEGER NOT NULL DEFAULT 0,
	actions TEXT,
	error_count INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_audit_log_timestamp ON audit_log(timestamp);
`

// GetSchemaSQL returns the authoritative schema.
func GetSchemaSQL() string {
	return SchemaSQL
}
