package db

import (
	"context"
	"fmt"
)

// Options selects which run-record stores to open. Empty fields disable a store.
type Options struct {
	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	PostgresDSN string

	SupabaseURL      string
	SupabaseKey      string
	SupabasePassword string
}

// Enabled reports whether any store is configured
func (o Options) Enabled() bool {
	return o.MongoURI != "" || o.PostgresDSN != "" || o.supabaseEnabled()
}

func (o Options) supabaseEnabled() bool {
	return o.SupabaseURL != "" && (o.SupabasePassword != "" || o.SupabaseKey != "")
}

// Stores holds the opened run-record stores. Any field may be nil.
// Supabase is set only in REST mode; with a database password Supabase
// backs SQL instead.
type Stores struct {
	Mongo    *Client
	SQL      *ArtifactStore
	Supabase *SupabaseClient

	closers []func(context.Context) error
}

// Open connects every configured store. Postgres takes precedence over
// Supabase when both are set. On error anything already opened is closed.
func Open(ctx context.Context, opts Options) (*Stores, error) {
	s := &Stores{}

	if opts.MongoURI != "" {
		client := NewClient(opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
		if err := client.Connect(ctx); err != nil {
			return nil, fmt.Errorf("connect to mongo: %w", err)
		}
		s.Mongo = client
		s.closers = append(s.closers, client.Close)
	}

	var provider DBProvider
	switch {
	case opts.PostgresDSN != "":
		pg := NewPostgresClient(PostgresConfig{DSN: opts.PostgresDSN, MaxOpenConns: 2})
		if err := pg.Connect(ctx); err != nil {
			s.Close(ctx)
			return nil, err
		}
		provider = pg
		s.closers = append(s.closers, func(context.Context) error { return pg.Close() })
	case opts.supabaseEnabled():
		sb := NewSupabaseClient(SupabaseConfig{
			SupabaseURL:  opts.SupabaseURL,
			SupabaseKey:  opts.SupabaseKey,
			Password:     opts.SupabasePassword,
			MaxOpenConns: 2,
		})
		if err := sb.Connect(ctx); err != nil {
			s.Close(ctx)
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error { return sb.Close() })
		if sb.HasDirectDB() {
			provider = sb
		} else {
			s.Supabase = sb
		}
	}

	if provider != nil {
		store := NewArtifactStore(provider)
		if err := store.EnsureSchema(ctx); err != nil {
			s.Close(ctx)
			return nil, err
		}
		s.SQL = store
	}

	return s, nil
}

// Recorder returns every opened store as one recorder
func (s *Stores) Recorder() Recorders {
	var rs Recorders
	if s.Mongo != nil {
		rs = append(rs, s.Mongo)
	}
	if s.SQL != nil {
		rs = append(rs, s.SQL)
	}
	if s.Supabase != nil {
		rs = append(rs, s.Supabase)
	}
	return rs
}

// Close closes every opened store, newest first
func (s *Stores) Close(ctx context.Context) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i](ctx)
	}
	s.closers = nil
}
