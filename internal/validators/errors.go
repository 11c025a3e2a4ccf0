package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrNegativeAmount      = errors.New("negative transfer amount rejected by policy")
	ErrInvalidTransferMode = errors.New("invalid transfer mode")
	ErrInvalidBurstCount   = errors.New("burst count must be positive")
	ErrInvalidBurstRate    = errors.New("burst rate must not be negative")
)
