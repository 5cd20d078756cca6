package pdfcheck

// InvalidURLError is returned when the content behind a URL could not be
// fetched. Err holds the transport or status failure.
type InvalidURLError struct {
	URL string
	Err error
}

func (e *InvalidURLError) Error() string {
	return "Invalid URL: " + e.URL
}

func (e *InvalidURLError) Unwrap() error {
	return e.Err
}
