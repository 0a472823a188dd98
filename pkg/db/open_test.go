package db

import (
	"context"
	"net/http"
	"testing"
)

func TestOptions_Enabled(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want bool
	}{
		{"none", Options{}, false},
		{"mongo", Options{MongoURI: "mongodb://localhost:27017"}, true},
		{"postgres", Options{PostgresDSN: "postgres://localhost/db"}, true},
		{"supabase url only", Options{SupabaseURL: "https://ref.supabase.co"}, false},
		{"supabase rest", Options{SupabaseURL: "https://ref.supabase.co", SupabaseKey: "anon"}, true},
		{"supabase", Options{SupabaseURL: "https://ref.supabase.co", SupabasePassword: "pw"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpen_NothingConfigured(t *testing.T) {
	s, err := Open(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer s.Close(context.Background())

	if s.Mongo != nil || s.SQL != nil {
		t.Errorf("Expected no stores, got %+v", s)
	}
}

func TestOpen_SupabaseRESTMode(t *testing.T) {
	server, _ := newRESTServer(t, http.StatusCreated)

	s, err := Open(context.Background(), Options{SupabaseURL: server.URL, SupabaseKey: "service-key"})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer s.Close(context.Background())

	if s.Supabase == nil {
		t.Fatal("Expected a REST-mode Supabase store")
	}
	if s.SQL != nil {
		t.Error("Expected no SQL store without a database password")
	}
	if rs := s.Recorder(); len(rs) != 1 {
		t.Errorf("Expected 1 recorder, got %d", len(rs))
	}
}
