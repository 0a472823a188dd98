package domain

// FormType is an EDGAR form type string as it appears in the submissions index.
type FormType string

const (
	// Quarterly is the quarterly report form.
	Quarterly FormType = "10-Q"
	// Annual is the annual report form.
	Annual FormType = "10-K"
)

// FilingRef points at a resolved filing document.
type FilingRef struct {
	URL             string
	FormType        FormType
	AccessionNumber string
	CIK             string
}
