package audit

import (
	"time"

	id "penledger/pkg/domain"
)

// Outcome records whether the audited command succeeded.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeRejected Outcome = "rejected"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	Actor     id.AccountID
	Action    string
	Subject   id.AccountID
	Outcome   Outcome
	Detail    string
}
