package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the validation / referential taxonomy. Controllers
// map these to 4xx responses; anything else is a 5xx persistence failure.
var (
	ErrMissingFields     = errors.New("responsible and installation date are required")
	ErrRouteNameRequired = errors.New("route name is required")
	ErrTicketIncomplete  = errors.New("store code and description are required")
	ErrRouteNotFound     = errors.New("route not found")
	ErrItemNotFound      = errors.New("route item not found")
	ErrStoreNotFound     = errors.New("store not found")
	ErrSupplierNotFound  = errors.New("supplier not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrRouteTerminal     = errors.New("route is finalizada or concluida and no longer accepts membership edits")
	ErrCrossSupplier     = errors.New("employee belongs to a different supplier than the route")
	ErrDuplicateEmployee = errors.New("duplicate employee in route assignment")
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrInvalidTransition = errors.New("status transition not permitted")
)

// JustificationRequiredError is the soft-gate signal from the evidence
// check: photos are missing and no justification was supplied. The caller
// prompts the user once and may resubmit with a justification.
type JustificationRequiredError struct {
	MissingCount int
}

func (e *JustificationRequiredError) Error() string {
	return fmt.Sprintf("%d required photo(s) missing and no justification supplied", e.MissingCount)
}

// IsValidation reports whether err belongs to the retryable 4xx class.
func IsValidation(err error) bool {
	var jr *JustificationRequiredError
	if errors.As(err, &jr) {
		return true
	}
	for _, v := range []error{
		ErrMissingFields, ErrRouteNameRequired, ErrTicketIncomplete,
		ErrRouteTerminal, ErrCrossSupplier,
		ErrDuplicateEmployee, ErrInvalidStatus, ErrInvalidTransition,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is a referential lookup failure.
func IsNotFound(err error) bool {
	for _, v := range []error{
		ErrRouteNotFound, ErrItemNotFound, ErrStoreNotFound,
		ErrSupplierNotFound, ErrEmployeeNotFound, ErrTicketNotFound,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
