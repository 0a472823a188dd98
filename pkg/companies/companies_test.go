package companies

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadCompanies_DefaultList(t *testing.T) {
	list, err := LoadCompanies("")
	if err != nil {
		t.Fatalf("LoadCompanies returned error: %v", err)
	}
	if len(list) != 14 {
		t.Fatalf("Expected 14 default companies, got %d", len(list))
	}
	if list[0].Ticker != "PLTR" || list[0].CIK != "0001321655" {
		t.Errorf("Unexpected first entry: %+v", list[0])
	}

	// Callers must not be able to mutate the built-in list.
	list[0].Ticker = "XXXX"
	if Default[0].Ticker != "PLTR" {
		t.Error("LoadCompanies returned the Default slice itself")
	}
}

func TestLoadCompanies_Text(t *testing.T) {
	path := writeFile(t, "peers.txt", `# ticker cik
PLTR 0001321655

crwd,1535527
`)

	list, err := LoadCompanies(path)
	if err != nil {
		t.Fatalf("LoadCompanies returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 companies, got %d", len(list))
	}
	if list[1].Ticker != "CRWD" {
		t.Errorf("Expected ticker to be upper-cased, got %q", list[1].Ticker)
	}
	if list[1].CIK != "0001535527" {
		t.Errorf("Expected CIK to be zero-padded, got %q", list[1].CIK)
	}
}

func TestLoadCompanies_YAML(t *testing.T) {
	path := writeFile(t, "peers.yaml", `companies:
  - ticker: NET
    cik: "0001477333"
  - ticker: s
    cik: 1583708
`)

	list, err := LoadCompanies(path)
	if err != nil {
		t.Fatalf("LoadCompanies returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 companies, got %d", len(list))
	}
	if list[0].CIK != "0001477333" || list[1].Ticker != "S" || list[1].CIK != "0001583708" {
		t.Errorf("Unexpected companies: %+v", list)
	}
}

func TestLoadCompanies_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{"empty text", "empty.txt", "# nothing here\n\n", ErrEmptyList},
		{"empty yaml", "empty.yaml", "", ErrEmptyList},
		{"bad cik", "bad.txt", "PLTR 12ab\n", ErrInvalidCIK},
		{"cik too long", "long.txt", "PLTR 12345678901\n", ErrInvalidCIK},
		{"missing cik yaml", "missing.yml", "companies:\n  - ticker: PLTR\n", ErrInvalidCIK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := LoadCompanies(path)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadCompanies_MalformedLine(t *testing.T) {
	path := writeFile(t, "bad.txt", "PLTR\n")
	_, err := LoadCompanies(path)
	if err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("Expected line error, got %v", err)
	}
}

func TestLoadCompanies_NonexistentFile(t *testing.T) {
	if _, err := LoadCompanies("/nonexistent/peers.txt"); err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}

func TestLoadTickers(t *testing.T) {
	defaults, err := LoadTickers("")
	if err != nil {
		t.Fatalf("LoadTickers returned error: %v", err)
	}
	if len(defaults) != len(Default) {
		t.Fatalf("Expected %d default tickers, got %d", len(Default), len(defaults))
	}

	text := writeFile(t, "tickers.txt", "pltr\n# skip\nNOW,\n")
	got, err := LoadTickers(text)
	if err != nil {
		t.Fatalf("LoadTickers returned error: %v", err)
	}
	if strings.Join(got, ",") != "PLTR,NOW" {
		t.Errorf("Unexpected tickers: %v", got)
	}

	yml := writeFile(t, "tickers.yaml", "tickers: [ddog, zs]\n")
	got, err = LoadTickers(yml)
	if err != nil {
		t.Fatalf("LoadTickers returned error: %v", err)
	}
	if strings.Join(got, ",") != "DDOG,ZS" {
		t.Errorf("Unexpected tickers: %v", got)
	}
}

func TestNormalizeCIK(t *testing.T) {
	got, err := NormalizeCIK(" 320193 ")
	if err != nil {
		t.Fatalf("NormalizeCIK returned error: %v", err)
	}
	if got != "0000320193" {
		t.Errorf("NormalizeCIK = %q, want 0000320193", got)
	}
}
