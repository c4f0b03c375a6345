package domain

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// MaxSuccessfulSubscriptions caps how many paid subscriptions a customer may
// hold at once.
const MaxSuccessfulSubscriptions = 3

// AdmissionRequest is the candidate subscription seen by the admission rules.
type AdmissionRequest struct {
	CustomerFullName    string
	BeneficiaryFullName string
	PaymentReference    string
}

// AdmissionDecision is the outcome of Validate. StaleIDs lists historical
// subscriptions for the same beneficiary stuck in ECHOUE or EN_ATTENTE;
// they are deleted best-effort by the service wrapper, never by Validate
// itself.
type AdmissionDecision struct {
	Accepted bool
	Message  string
	StaleIDs []snowflake.ID
}

func reject(format string, args ...interface{}) AdmissionDecision {
	return AdmissionDecision{Message: fmt.Sprintf(format, args...)}
}

// Validate applies the admission rules in order; the first failing rule wins.
// Pure: no I/O, no clock.
func Validate(history []Subscription, candidate AdmissionRequest) AdmissionDecision {
	for _, sub := range history {
		if sub.PaymentReference == candidate.PaymentReference {
			return reject("payment reference %s has already been used", candidate.PaymentReference)
		}
	}

	successful := 0
	for _, sub := range history {
		if sub.PaymentStatus == PaymentSuccessful {
			successful++
		}
	}
	if successful >= MaxSuccessfulSubscriptions {
		return reject("customer %s already holds %d paid subscriptions", candidate.CustomerFullName, MaxSuccessfulSubscriptions)
	}

	for _, sub := range history {
		if sub.PaymentStatus == PaymentSuccessful && sameBeneficiary(sub.BeneficiaryFullName, candidate.BeneficiaryFullName) {
			return reject("customer %s already has a paid subscription covering beneficiary %s",
				candidate.CustomerFullName, candidate.BeneficiaryFullName)
		}
	}

	decision := AdmissionDecision{Accepted: true, Message: "subscription accepted"}
	for _, sub := range history {
		if sub.PaymentStatus == PaymentSuccessful {
			continue
		}
		if sameBeneficiary(sub.BeneficiaryFullName, candidate.BeneficiaryFullName) {
			decision.StaleIDs = append(decision.StaleIDs, sub.ID)
		}
	}
	return decision
}

func sameBeneficiary(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
