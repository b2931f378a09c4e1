package nuspell

import "errors"

// Load errors (spec §7 class 1): surfaced to the caller, the Dictionary is
// never constructed when one of these is returned.
var (
	ErrMalformedAffix      = errors.New("nuspell: malformed affix file")
	ErrMalformedDic        = errors.New("nuspell: malformed dictionary file")
	ErrBadCondition        = errors.New("nuspell: malformed affix condition")
	ErrUnsupportedEncoding = errors.New("nuspell: unsupported encoding")
)
