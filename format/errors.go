package format

import "errors"

// ErrUnsupportedFormat is returned for any format/operation combination
// that is recognized but not implemented by the codec. Codec generation
// is infallible once a format is supported, so this is the only failure
// mode it exposes.
var ErrUnsupportedFormat = errors.New("format: unsupported format")

// ErrInvalidMipCount is returned by ImageSize when mips exceeds
// MaxMipLevels(w, h, d).
var ErrInvalidMipCount = errors.New("format: mip level count exceeds maximum for image extent")
