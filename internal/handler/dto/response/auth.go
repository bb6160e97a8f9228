package response

import "happyhour-console/internal/usecase/queries"

type LoginResponse struct {
	AccessToken string                        `json:"access_token,omitempty"`
	User        *queries.AuthorizedUserView   `json:"user,omitempty"`
	MFARequired bool                          `json:"mfa_required,omitempty"`
	// PendingToken must be echoed back to the verify endpoint together
	// with the emailed code.
	PendingToken string `json:"pending_token,omitempty"`
}
