package companies

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"ir-research/pkg/domain"
)

var (
	ErrEmptyList     = errors.New("list contains no entries")
	ErrInvalidTicker = errors.New("invalid ticker")
	ErrInvalidCIK    = errors.New("invalid CIK")
)

// Default is the built-in peer group used when no list file is given.
var Default = []domain.Company{
	{Ticker: "PLTR", CIK: "0001321655"},
	{Ticker: "CRWD", CIK: "0001535527"},
	{Ticker: "NET", CIK: "0001477333"},
	{Ticker: "NOW", CIK: "0001373715"},
	{Ticker: "PANW", CIK: "0001327567"},
	{Ticker: "TEAM", CIK: "0001650372"},
	{Ticker: "SNOW", CIK: "0001640147"},
	{Ticker: "DDOG", CIK: "0001561550"},
	{Ticker: "ZS", CIK: "0001713683"},
	{Ticker: "SAIL", CIK: "0002030781"},
	{Ticker: "CYBR", CIK: "0001598110"},
	{Ticker: "OKTA", CIK: "0001660134"},
	{Ticker: "S", CIK: "0001583708"},
	{Ticker: "CHKP", CIK: "0001015922"},
}

// DefaultTickers returns the tickers of the built-in peer group.
func DefaultTickers() []string {
	tickers := make([]string, 0, len(Default))
	for _, c := range Default {
		tickers = append(tickers, c.Ticker)
	}
	return tickers
}

type companiesFile struct {
	Companies []domain.Company `yaml:"companies"`
}

type tickersFile struct {
	Tickers []string `yaml:"tickers"`
}

// LoadCompanies reads a company list from path. An empty path returns the built-in list.
//
// Files ending in .yaml/.yml hold a `companies:` sequence of {ticker, cik}.
// Anything else is read as text, one "TICKER CIK" pair per line; blank lines
// and lines starting with '#' are skipped.
func LoadCompanies(path string) ([]domain.Company, error) {
	if path == "" {
		out := make([]domain.Company, len(Default))
		copy(out, Default)
		return out, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open companies file: %w", err)
	}
	defer file.Close()

	if isYAML(path) {
		return ParseCompaniesYAML(file)
	}
	return ParseCompaniesText(file)
}

// LoadTickers reads a ticker list from path. An empty path returns the built-in tickers.
func LoadTickers(path string) ([]string, error) {
	if path == "" {
		return DefaultTickers(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tickers file: %w", err)
	}
	defer file.Close()

	if isYAML(path) {
		return ParseTickersYAML(file)
	}
	return ParseTickersText(file)
}

// ParseCompaniesYAML decodes a `companies:` YAML document
func ParseCompaniesYAML(r io.Reader) ([]domain.Company, error) {
	var doc companiesFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyList
		}
		return nil, fmt.Errorf("failed to decode companies YAML: %w", err)
	}

	out := make([]domain.Company, 0, len(doc.Companies))
	for i, c := range doc.Companies {
		company, err := normalize(c.Ticker, c.CIK)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		out = append(out, company)
	}

	if len(out) == 0 {
		return nil, ErrEmptyList
	}
	return out, nil
}

// ParseCompaniesText reads "TICKER CIK" lines. Fields may be separated by
// whitespace or a comma.
func ParseCompaniesText(r io.Reader) ([]domain.Company, error) {
	var out []domain.Company

	err := scanLines(r, func(lineNum int, line string) error {
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) != 2 {
			return fmt.Errorf("line %d: expected \"TICKER CIK\", got %q", lineNum, line)
		}

		company, err := normalize(fields[0], fields[1])
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		out = append(out, company)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return nil, ErrEmptyList
	}
	return out, nil
}

// ParseTickersYAML decodes a `tickers:` YAML document
func ParseTickersYAML(r io.Reader) ([]string, error) {
	var doc tickersFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyList
		}
		return nil, fmt.Errorf("failed to decode tickers YAML: %w", err)
	}

	out := make([]string, 0, len(doc.Tickers))
	for i, t := range doc.Tickers {
		ticker, err := normalizeTicker(t)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		out = append(out, ticker)
	}

	if len(out) == 0 {
		return nil, ErrEmptyList
	}
	return out, nil
}

// ParseTickersText reads one ticker per line
func ParseTickersText(r io.Reader) ([]string, error) {
	var out []string

	err := scanLines(r, func(lineNum int, line string) error {
		ticker, err := normalizeTicker(strings.TrimRight(line, ", \t"))
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		out = append(out, ticker)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return nil, ErrEmptyList
	}
	return out, nil
}

func scanLines(r io.Reader, fn func(lineNum int, line string) error) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := fn(lineNum, line); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file at line %d: %w", lineNum, err)
	}
	return nil
}

func normalize(ticker, cik string) (domain.Company, error) {
	t, err := normalizeTicker(ticker)
	if err != nil {
		return domain.Company{}, err
	}
	c, err := NormalizeCIK(cik)
	if err != nil {
		return domain.Company{}, err
	}
	return domain.Company{Ticker: t, CIK: c}, nil
}

func normalizeTicker(ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" || strings.ContainsAny(ticker, " \t/\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidTicker, ticker)
	}
	return ticker, nil
}

// NormalizeCIK validates a numeric CIK and zero-pads it to 10 digits.
func NormalizeCIK(cik string) (string, error) {
	cik = strings.TrimSpace(cik)
	if cik == "" || len(cik) > 10 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCIK, cik)
	}
	n, err := strconv.ParseUint(cik, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidCIK, cik)
	}
	return fmt.Sprintf("%010d", n), nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
