package loader

import "errors"

var (
	ErrUnsupportedFormat = errors.New("loader: unsupported scene file format")
	ErrMalformedDocument = errors.New("loader: malformed scene document")
	ErrMissingScene      = errors.New("loader: can't find 'Scene' element")
	ErrUnknownVersion    = errors.New("loader: format version is unknown, you need to update your software")
	ErrInvalidVersion    = errors.New("loader: invalid format version")
)
