package document

import "errors"

var (
	// ErrNoDocuments is returned when an operation requires at least one open
	// document.
	ErrNoDocuments = errors.New("no open documents")
	// ErrUntitled is returned when saving a document that has no path; the
	// caller is expected to ask for one and use SaveAs instead.
	ErrUntitled = errors.New("document has never been saved")
)
