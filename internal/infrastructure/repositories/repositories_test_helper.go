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

func createOtpVerificationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE otp_verifications (
		id TEXT PRIMARY KEY,
		phone TEXT NOT NULL,
		code TEXT NOT NULL,
		channel TEXT NOT NULL DEFAULT 'sms',
		verified BOOLEAN NOT NULL DEFAULT FALSE,
		attempts INTEGER NOT NULL DEFAULT 0,
		expires_at DATETIME NOT NULL,
		created_at DATETIME
	);`)
}

func createLeadTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE leads (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		phone_verified BOOLEAN NOT NULL DEFAULT FALSE,
		country_id TEXT NOT NULL,
		investment_range TEXT NOT NULL,
		experience_level TEXT NOT NULL,
		viewed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE lead_sectors (
		lead_id TEXT NOT NULL,
		sector_id TEXT NOT NULL,
		PRIMARY KEY (lead_id, sector_id)
	);`)
	mustExec(t, db, `CREATE TABLE lead_franchise_matches (
		id TEXT PRIMARY KEY,
		lead_id TEXT NOT NULL,
		franchise_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		contacted BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME
	);`)
}

func createFranchiseTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE franchises (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		logo TEXT,
		video TEXT,
		investment_min REAL NOT NULL,
		investment_max REAL NOT NULL,
		sector_id TEXT NOT NULL,
		contact_email TEXT,
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE franchise_countries (
		franchise_id TEXT NOT NULL,
		country_id TEXT NOT NULL,
		PRIMARY KEY (franchise_id, country_id)
	);`)
}

func createCatalogTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE sectors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		emoji TEXT,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE countries (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		code TEXT NOT NULL UNIQUE,
		phone_code TEXT,
		flag TEXT,
		created_at DATETIME
	);`)
}

func createAdminUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE admin_users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'ADMIN',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
