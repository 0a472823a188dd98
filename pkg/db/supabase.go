package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	supabase "github.com/supabase-community/supabase-go"

	"ir-research/pkg/domain"
)

// SupabaseConfig holds configuration required to connect to a Supabase project.
type SupabaseConfig struct {
	// ConnectionString is the Supabase Postgres connection string.
	// When empty it is built from SupabaseURL and Password.
	ConnectionString string

	// SupabaseURL is the project URL, e.g. "https://[project-ref].supabase.co".
	SupabaseURL string

	// SupabaseKey is the API key used to initialise the SDK client.
	SupabaseKey string

	// Password is the database password, not the API key.
	Password string

	MaxOpenConns int
	MaxIdleConns int
	ConnMaxIdle  time.Duration
	ConnMaxLife  time.Duration
}

// SupabaseClient gives access to the project's Postgres database and, when a
// key is configured, the Supabase SDK.
type SupabaseClient struct {
	db          *sql.DB
	supabaseSDK *supabase.Client
	cfg         SupabaseConfig
}

// NewSupabaseClient constructs a Supabase client. Call Connect before use.
func NewSupabaseClient(cfg SupabaseConfig) *SupabaseClient {
	return &SupabaseClient{cfg: cfg}
}

// Connect initialises the SDK (URL and key set) and, when a connection string
// or password is available, the direct database connection. With only URL and
// key the client runs in REST mode and records go through the SDK.
func (c *SupabaseClient) Connect(ctx context.Context) error {
	if c.cfg.SupabaseURL != "" && c.cfg.SupabaseKey != "" {
		sdkClient, err := supabase.NewClient(c.cfg.SupabaseURL, c.cfg.SupabaseKey, nil)
		if err != nil {
			return fmt.Errorf("initialize supabase SDK: %w", err)
		}
		c.supabaseSDK = sdkClient
	}

	connStr := c.cfg.ConnectionString
	if connStr == "" {
		if c.cfg.Password == "" && c.supabaseSDK != nil {
			return nil // REST mode only
		}
		var err error
		connStr, err = buildSupabaseConnectionString(c.cfg.SupabaseURL, c.cfg.Password)
		if err != nil {
			return fmt.Errorf("build connection string: %w", err)
		}
	}

	// The pooler rejects named prepared statements.
	connStr = addConnectionParam(connStr, "statement_cache_capacity", "0")
	connStr = addConnectionParam(connStr, "default_query_exec_mode", "simple_protocol")

	db, err := openPool(ctx, connStr, poolConfig{
		maxOpen: c.cfg.MaxOpenConns,
		maxIdle: c.cfg.MaxIdleConns,
		idle:    c.cfg.ConnMaxIdle,
		life:    c.cfg.ConnMaxLife,
	})
	if err != nil {
		return fmt.Errorf("supabase postgres: %w", err)
	}

	c.db = db
	return nil
}

// Close closes the database connection.
func (c *SupabaseClient) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DB exposes the underlying sql.DB handle.
func (c *SupabaseClient) DB() *sql.DB {
	return c.db
}

// HasDirectDB reports whether a direct database connection is open.
func (c *SupabaseClient) HasDirectDB() bool {
	return c.db != nil
}

// SaveArtifact upserts a record through the REST API, keyed by path.
// The artifact table must already exist; REST mode cannot create it.
func (c *SupabaseClient) SaveArtifact(_ context.Context, artifact *domain.Artifact) error {
	if c.supabaseSDK == nil {
		return fmt.Errorf("supabase SDK not initialized")
	}
	if artifact.Path == "" {
		return fmt.Errorf("artifact path is required")
	}

	if _, _, err := c.supabaseSDK.From(artifactTable).Upsert(artifact, "path", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("upsert artifact path=%q via REST: %w", artifact.Path, err)
	}
	return nil
}

// buildSupabaseConnectionString derives the direct Postgres address from the
// project URL: https://<ref>.supabase.co -> db.<ref>.supabase.co:5432.
func buildSupabaseConnectionString(projectURL, password string) (string, error) {
	if projectURL == "" {
		return "", fmt.Errorf("supabase URL is required when connection string is not provided")
	}
	if password == "" {
		return "", fmt.Errorf("supabase password is required when connection string is not provided")
	}

	parsedURL, err := url.Parse(projectURL)
	if err != nil {
		return "", fmt.Errorf("parse supabase URL: %w", err)
	}

	parts := strings.Split(parsedURL.Host, ".")
	if len(parts) < 2 || parts[0] == "" {
		return "", fmt.Errorf("invalid supabase URL format: expected [project-ref].supabase.co")
	}
	projectRef := parts[0]

	return fmt.Sprintf("postgresql://postgres:%s@db.%s.supabase.co:5432/postgres?sslmode=require",
		url.QueryEscape(password), projectRef), nil
}

// addConnectionParam appends key=value to the connection string unless key is already set.
func addConnectionParam(connStr, key, value string) string {
	if strings.Contains(connStr, key+"=") {
		return connStr
	}

	separator := "?"
	if strings.Contains(connStr, "?") {
		separator = "&"
	}
	return connStr + separator + key + "=" + value
}
