package images

import "errors"

// ErrAssetNotFound marks a lookup for a public id the remote host does not have.
var ErrAssetNotFound = errors.New("asset not found")

// ErrHostUnavailable wraps failures of the remote asset host (listing,
// deletion, transformation). Handlers map it to 502.
var ErrHostUnavailable = errors.New("asset host unavailable")

// InvalidRequestError is a request rejected before any side effect.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string { return e.Reason }

// invalidRequest builds an InvalidRequestError.
func invalidRequest(reason string) error {
	return &InvalidRequestError{Reason: reason}
}
