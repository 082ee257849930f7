package application

import "errors"

// Recoverable rejection kinds. Handlers map these onto HTTP statuses; none of
// them leaves partially written state behind.
var (
	ErrValidation        = errors.New("validation error")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrAlreadySigned     = errors.New("document already signed by this recipient")
	ErrNotARecipient     = errors.New("user is not a recipient of this document")
	ErrInvalidTransition = errors.New("contract is already finalized")
	ErrRender            = errors.New("failed to render document artifact")
	ErrSignatureInFlight = errors.New("signature capture already in progress")

	ErrUserNotFound     = errors.New("user not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrContractNotFound = errors.New("contract not found")
)
