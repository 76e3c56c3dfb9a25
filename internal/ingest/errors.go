package ingest

import "errors"

// Ingest errors. Reference names that fail to resolve are reported with
// reference.ErrNotFound.
var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrEmptyDocument     = errors.New("document contains no projects")
	ErrUnknownProduct    = errors.New("unknown product")
	ErrDuplicateProduct  = errors.New("duplicate product id")
	ErrCategoryMismatch  = errors.New("product type does not belong to product category")
	ErrInvalidValue      = errors.New("invalid value")
)
