package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// FulfillmentResult is the outcome recorded when an order is closed.
// It stays NO_RESULT for the entire lifecycle before CLOSED.
type FulfillmentResult int

const (
	// NoResult means no fulfillment outcome has been recorded yet.
	// This is the zero value and the only result of a non-closed order.
	NoResult FulfillmentResult = iota

	// Success means the fulfillment service delivered the goods.
	Success

	// Failure means the fulfillment service could not deliver.
	Failure
)

func getResultStrings() map[FulfillmentResult]string {
	return map[FulfillmentResult]string{
		NoResult: "NO_RESULT",
		Success:  "SUCCESS",
		Failure:  "FAILURE",
	}
}

// ParseFulfillmentResult converts the wire representation ("NO_RESULT",
// "SUCCESS", "FAILURE") into a FulfillmentResult.
func ParseFulfillmentResult(s string) (FulfillmentResult, error) {
	for result, str := range getResultStrings() {
		if str == s {
			return result, nil
		}
	}
	return NoResult, errs.NewValueIsInvalidErrorWithCause(
		"fulfillmentResult",
		fmt.Errorf("%q is not a valid fulfillment result", s),
	)
}

// Validate checks that the FulfillmentResult is one of the defined outcomes.
func (r FulfillmentResult) Validate() error {
	if _, ok := getResultStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"fulfillmentResult",
			fmt.Errorf("%d is not a valid fulfillment result", r),
		)
	}
	return nil
}

// String returns the wire representation of the result.
func (r FulfillmentResult) String() string {
	if str, ok := getResultStrings()[r]; ok {
		return str
	}
	return "NO_RESULT"
}
