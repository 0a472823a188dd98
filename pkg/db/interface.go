package db

import "database/sql"

// DBProvider is implemented by clients that hand out a sql.DB handle,
// so PostgresClient and SupabaseClient can back the same ArtifactStore.
type DBProvider interface {
	DB() *sql.DB
}
