package storage

import (
	"os"
	"testing"
)

// TestSQLiteConnection tests connecting to a SQLite database
func TestSQLiteConnection(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	// Create a temporary directory for the SQLite database
	tempDir, err := os.MkdirTemp("", "adminctl-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Create a SQLite configuration
	config := Config{
		Driver:  DriverSQLite,
		DataDir: tempDir,
	}

	// Connect to the database
	db, err := Connect(config)
	if err != nil {
		t.Fatalf("Failed to connect to SQLite database: %v", err)
	}

	// Check if the connection is valid
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get SQL DB: %v", err)
	}

	if err := sqlDB.Ping(); err != nil {
		t.Fatalf("Failed to ping SQLite database: %v", err)
	}
}

// TestMySQLConnection tests connecting to a MySQL database
func TestMySQLConnection(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	// Skip if MySQL DSN is not provided
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		t.Skip("Skipping MySQL test. Set MYSQL_DSN environment variable")
	}

	// Create a MySQL configuration
	config := Config{
		Driver: DriverMySQL,
		DSN:    dsn,
	}

	// Connect to the database
	db, err := Connect(config)
	if err != nil {
		t.Fatalf("Failed to connect to MySQL database: %v", err)
	}

	// Check if the connection is valid
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get SQL DB: %v", err)
	}

	if err := sqlDB.Ping(); err != nil {
		t.Fatalf("Failed to ping MySQL database: %v", err)
	}
}

// TestPostgresConnection tests connecting to a PostgreSQL database
func TestPostgresConnection(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	// Skip if PostgreSQL DSN is not provided
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("Skipping PostgreSQL test. Set POSTGRES_DSN environment variable")
	}

	// Create a PostgreSQL configuration
	config := Config{
		Driver: DriverPostgres,
		DSN:    dsn,
	}

	// Connect to the database
	db, err := Connect(config)
	if err != nil {
		t.Fatalf("Failed to connect to PostgreSQL database: %v", err)
	}

	// Check if the connection is valid
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get SQL DB: %v", err)
	}

	if err := sqlDB.Ping(); err != nil {
		t.Fatalf("Failed to ping PostgreSQL database: %v", err)
	}
}

// TestSessionStorageRoundTrip tests the session store against a real SQLite database
func TestSessionStorageRoundTrip(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	tempDir, err := os.MkdirTemp("", "adminctl-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	store, err := NewStorage(
		Config{
			Driver:  DriverSQLite,
			DataDir: tempDir,
		},
	)
	if err != nil {
		t.Fatalf("Failed to create SQLite storage: %v", err)
	}
	sessions := store.SessionStorage()

	// No token stored yet
	token, err := sessions.Token()
	if err != nil {
		t.Fatalf("Failed to read token: %v", err)
	}
	if token != "" {
		t.Fatalf("Expected empty token, got %q", token)
	}

	// Store and read back
	if err = sessions.SetToken("issued-token"); err != nil {
		t.Fatalf("Failed to store token: %v", err)
	}
	token, err = sessions.Token()
	if err != nil {
		t.Fatalf("Failed to read token: %v", err)
	}
	if token != "issued-token" {
		t.Fatalf("Expected 'issued-token', got %q", token)
	}

	// Overwrite
	if err = sessions.SetToken("new-token"); err != nil {
		t.Fatalf("Failed to overwrite token: %v", err)
	}
	token, _ = sessions.Token()
	if token != "new-token" {
		t.Fatalf("Expected 'new-token', got %q", token)
	}

	// Clear
	if err = sessions.ClearToken(); err != nil {
		t.Fatalf("Failed to clear token: %v", err)
	}
	token, _ = sessions.Token()
	if token != "" {
		t.Fatalf("Expected empty token after clear, got %q", token)
	}

	// Clearing again must not fail
	if err = sessions.ClearToken(); err != nil {
		t.Fatalf("Clearing an absent token failed: %v", err)
	}

	// User profile round trip
	type profile struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	if err = sessions.SetUser(profile{ID: "u1", Name: "Admin"}); err != nil {
		t.Fatalf("Failed to store user: %v", err)
	}
	var restored profile
	found, err := sessions.User(&restored)
	if err != nil {
		t.Fatalf("Failed to read user: %v", err)
	}
	if !found {
		t.Fatal("Expected a stored user")
	}
	if restored.Name != "Admin" {
		t.Fatalf("Expected user 'Admin', got %q", restored.Name)
	}

	// Reset user id round trip
	if err = sessions.SetResetUserID("u42"); err != nil {
		t.Fatalf("Failed to store reset user id: %v", err)
	}
	id, err := sessions.ResetUserID()
	if err != nil {
		t.Fatalf("Failed to read reset user id: %v", err)
	}
	if id != "u42" {
		t.Fatalf("Expected 'u42', got %q", id)
	}
	if err = sessions.ClearResetUserID(); err != nil {
		t.Fatalf("Failed to clear reset user id: %v", err)
	}
}

// TestKeyValueStorage tests the scoped key-value store against a real SQLite database
func TestKeyValueStorage(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	tempDir, err := os.MkdirTemp("", "adminctl-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	store, err := NewStorage(
		Config{
			Driver:  DriverSQLite,
			DataDir: tempDir,
		},
	)
	if err != nil {
		t.Fatalf("Failed to create SQLite storage: %v", err)
	}
	kv := store.KeyValue()

	// Missing key
	data, err := kv.Get("scope", "missing")
	if err != nil {
		t.Fatalf("Failed to get missing key: %v", err)
	}
	if data != nil {
		t.Fatalf("Expected nil for missing key, got %v", data)
	}

	// Same key in different scopes must not collide
	if err = kv.SetAny("a", "key", "in-a"); err != nil {
		t.Fatalf("Failed to set key in scope a: %v", err)
	}
	if err = kv.SetAny("b", "key", "in-b"); err != nil {
		t.Fatalf("Failed to set key in scope b: %v", err)
	}
	var value string
	found, err := kv.GetAs("a", "key", &value)
	if err != nil || !found {
		t.Fatalf("Failed to get key in scope a: found=%v err=%v", found, err)
	}
	if value != "in-a" {
		t.Fatalf("Expected 'in-a', got %q", value)
	}

	// Delete only affects its scope
	if err = kv.Delete("a", "key"); err != nil {
		t.Fatalf("Failed to delete key in scope a: %v", err)
	}
	found, err = kv.GetAs("b", "key", &value)
	if err != nil || !found {
		t.Fatalf("Key in scope b vanished: found=%v err=%v", found, err)
	}
}
