package checkoutpage

import (
	"context"
	"net/url"

	"github.com/andyle182810/checkoutpage/httpclient"
)

const ticketsValidatePath = "/v1/tickets/validate/"

type TicketService struct {
	service
}

// MetadataEntry sets Key on the ticket. A nil Value is sent as null, which
// the API treats as removing the key.
type MetadataEntry struct {
	Key   string  `json:"key"   validate:"required"`
	Value *string `json:"value"`
}

type ValidateTicketParams struct {
	Metadata []MetadataEntry `json:"metadata,omitempty" validate:"omitempty,dive"`
}

// Validate checks in the ticket identified by its QR code and returns the
// unwrapped validation result.
func (s *TicketService) Validate(
	ctx context.Context,
	qrCode string,
	params *ValidateTicketParams,
) (*TicketValidation, error) {
	if qrCode == "" {
		return nil, invalidArgument("QR code is required")
	}

	if params == nil {
		params = &ValidateTicketParams{Metadata: nil}
	}

	if err := s.check(params); err != nil {
		return nil, err
	}

	result, err := httpclient.PostJSON[Envelope[TicketValidation]](
		ctx,
		s.requester,
		ticketsValidatePath+url.PathEscape(qrCode),
		params,
	)
	if err != nil {
		return nil, err
	}

	return &result.Data, nil
}

// MetadataValue is a convenience for building MetadataEntry values.
func MetadataValue(value string) *string {
	return &value
}
