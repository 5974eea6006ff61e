package codec

import "errors"

// ErrUnknownExtension is returned by ReadChoice when an extension addition's
// index does not match any alternative the caller registered. Per clause
// 23.9 an unrecognized extension addition is still well-formed PER (it is
// carried as an open type); callers that can tolerate unknown extensions
// should treat this as non-fatal.
var ErrUnknownExtension = errors.New("codec: unknown extension addition")
