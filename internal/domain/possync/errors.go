package possync

import "errors"

// Failure taxonomy for talking to the POS. Callers classify with errors.Is:
// transient failures are safe to retry as a whole invocation, semantic
// failures mean the POS rejected the payload and retrying the same payload
// will fail again, precondition failures self-resolve on a later run once the
// dependency has been synced.
var (
	// ErrRemoteUnavailable indicates a network failure or 5xx from the POS
	ErrRemoteUnavailable = errors.New("possync: pos temporarily unavailable")
	// ErrRemoteRejected indicates the POS rejected the request (4xx or
	// embedded application error)
	ErrRemoteRejected = errors.New("possync: pos rejected request")

	// ErrCustomerNotFound indicates no remote customer exists for the email
	ErrCustomerNotFound = errors.New("possync: remote customer not found")

	// ErrCategoryNotLinked indicates a product cannot be pushed because none
	// of its categories has a remote counterpart yet
	ErrCategoryNotLinked = errors.New("possync: no linked category for product")
	// ErrMemberNotLinked indicates a modifier group member has no remote
	// counterpart yet and cannot be represented in the projection
	ErrMemberNotLinked = errors.New("possync: modifier member not linked")
	// ErrProductNotLinked indicates an ordered product has no remote
	// counterpart yet, so its order lines cannot reference a POS product
	ErrProductNotLinked = errors.New("possync: ordered product not linked")

	// ErrConnectionNotFound indicates the shop has no POS connection configured
	ErrConnectionNotFound = errors.New("possync: connection not configured for shop")
	// ErrConnectionDisabled indicates the shop's POS connection is disabled
	ErrConnectionDisabled = errors.New("possync: connection disabled for shop")

	// ErrOrderAlreadyPushed indicates the order already has a remote order id
	ErrOrderAlreadyPushed = errors.New("possync: order already pushed")
)

// IsTransient returns true for failures the caller may retry wholesale
func IsTransient(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable)
}

// IsSemantic returns true for failures where the POS rejected the payload
func IsSemantic(err error) bool {
	return errors.Is(err, ErrRemoteRejected)
}

// IsPrecondition returns true for failures expected to self-resolve on a
// subsequent run once the missing dependency has been synced
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrCategoryNotLinked) ||
		errors.Is(err, ErrMemberNotLinked) ||
		errors.Is(err, ErrProductNotLinked)
}
