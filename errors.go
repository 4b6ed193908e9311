package checkoutpage

import (
	"errors"
	"fmt"

	"github.com/andyle182810/checkoutpage/httpclient"
)

// ErrInvalidArgument is returned before any request is sent when the caller's
// input cannot produce a valid request.
var ErrInvalidArgument = errors.New("checkoutpage: invalid argument")

type (
	Error = httpclient.Error
	Kind  = httpclient.Kind
)

const (
	KindAuthentication = httpclient.KindAuthentication
	KindNotFound       = httpclient.KindNotFound
	KindConflict       = httpclient.KindConflict
	KindValidation     = httpclient.KindValidation
	KindRateLimit      = httpclient.KindRateLimit
	KindAPI            = httpclient.KindAPI
)

var (
	ErrAuthentication = httpclient.ErrAuthentication
	ErrNotFound       = httpclient.ErrNotFound
	ErrConflict       = httpclient.ErrConflict
	ErrValidation     = httpclient.ErrValidation
	ErrRateLimit      = httpclient.ErrRateLimit
	ErrAPI            = httpclient.ErrAPI
)

func invalidArgument(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, detail)
}
