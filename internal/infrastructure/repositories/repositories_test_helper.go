package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createRouteTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE routes (
		id TEXT PRIMARY KEY,
		key TEXT NOT NULL UNIQUE,
		source_token TEXT NOT NULL,
		source_chain_id INTEGER NOT NULL,
		dest_token TEXT NOT NULL,
		dest_chain_id INTEGER NOT NULL,
		protocol INTEGER NOT NULL DEFAULT 0,
		protocol_domain INTEGER NOT NULL DEFAULT 0,
		bridge_contract TEXT,
		pool_id INTEGER NOT NULL DEFAULT 0,
		swap_pool TEXT,
		extra_data TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE protocol_contracts (
		id TEXT PRIMARY KEY,
		protocol INTEGER NOT NULL UNIQUE,
		address TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createSettlementTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE authorized_senders (
		id TEXT PRIMARY KEY,
		source_domain INTEGER NOT NULL,
		sender TEXT NOT NULL,
		enabled BOOLEAN NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME,
		UNIQUE(source_domain, sender)
	);`)
	mustExec(t, db, `CREATE TABLE supported_tokens (
		id TEXT PRIMARY KEY,
		address TEXT NOT NULL UNIQUE,
		enabled BOOLEAN NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE consumed_nonces (
		id TEXT PRIMARY KEY,
		source_domain INTEGER NOT NULL,
		nonce INTEGER NOT NULL,
		created_at DATETIME,
		UNIQUE(source_domain, nonce)
	);`)
}

func createFeeTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE fee_settings (
		id TEXT PRIMARY KEY,
		basis_points INTEGER NOT NULL DEFAULT 10,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE fee_collectors (
		id TEXT PRIMARY KEY,
		address TEXT NOT NULL UNIQUE,
		enabled BOOLEAN NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE fee_balances (
		id TEXT PRIMARY KEY,
		token TEXT NOT NULL UNIQUE,
		amount TEXT NOT NULL DEFAULT '0',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTransferTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transfers (
		id TEXT PRIMARY KEY,
		transfer_id TEXT NOT NULL UNIQUE,
		caller TEXT NOT NULL,
		protocol INTEGER NOT NULL,
		source_token TEXT NOT NULL,
		dest_token TEXT NOT NULL,
		amount TEXT NOT NULL,
		fee_amount TEXT NOT NULL DEFAULT '0',
		net_amount TEXT NOT NULL,
		dest_chain_id INTEGER NOT NULL,
		recipient TEXT NOT NULL,
		status TEXT NOT NULL,
		source_tx_hash TEXT,
		message_nonce INTEGER,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE transfer_events (
		id TEXT PRIMARY KEY,
		transfer_id TEXT,
		event_type TEXT NOT NULL,
		protocol INTEGER NOT NULL DEFAULT 0,
		token TEXT,
		amount TEXT,
		recipient TEXT,
		source_domain INTEGER,
		sender TEXT,
		tx_hash TEXT,
		metadata TEXT,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE caller_nonces (
		caller TEXT PRIMARY KEY,
		nonce INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME
	);`)
}
