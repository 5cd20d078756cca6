// Package pdfcheck reports whether a byte buffer, or the content behind a URL,
// is a structurally valid PDF document.
//
// Two outcomes are kept apart on purpose. A false result means the content
// was obtained and is not a PDF. An *InvalidURLError means the content could
// not be obtained at all:
//
//	ok, err := pdfcheck.CheckURLIsValidPDF("https://example.com/book.pdf")
//	var urlErr *pdfcheck.InvalidURLError
//	switch {
//	case errors.As(err, &urlErr):
//		// unreachable, non-2xx, timed out, ...
//	case !ok:
//		// downloaded, not a PDF
//	}
//
// CheckURLIsValidPDF blocks until the download finishes or the HTTP client
// times out. Use CheckURLIsValidPDFContext to bound or cancel it.
package pdfcheck
