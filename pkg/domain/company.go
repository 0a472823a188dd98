package domain

// Company identifies a public company by its ticker symbol and SEC Central Index Key.
type Company struct {
	Ticker string `yaml:"ticker" json:"ticker"`
	// CIK is the zero-padded, 10-digit EDGAR identifier (e.g. "0001321655").
	CIK string `yaml:"cik" json:"cik"`
}
