package contract

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("price record not found")
	ErrDataSource = errors.New("price lookup failed")

	ErrExtraction = errors.New("offer extraction failed")
	ErrParse      = errors.New("offer parsing failed")
	ErrNoOffers   = errors.New("no offers found")

	ErrConfig   = errors.New("missing configuration")
	ErrDelivery = errors.New("alert delivery failed")
)

// Workflow step tags. Each external call is its own failure domain; the tag
// tells the caller which dependency broke.
const (
	StepGetDBPrice = "get_db_price"
	StepCrawl      = "crawl_gmarket_price"
	StepParse      = "parse_crawl_result"
	StepAlert      = "send_slack_alert"
)

// StepError is a workflow failure tagged with the step it originated from.
type StepError struct {
	Step    string
	Message string
	Err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step=%s: %s", e.Step, e.Message)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// NewStepError wraps err with a step tag, keeping err reachable for
// errors.Is checks against the taxonomy sentinels.
func NewStepError(step string, err error) *StepError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &StepError{Step: step, Message: msg, Err: err}
}
