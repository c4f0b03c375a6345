package domain

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func admissionCandidate() AdmissionRequest {
	return AdmissionRequest{
		CustomerFullName:    "Awa Kone",
		BeneficiaryFullName: "Moussa Kone",
		PaymentReference:    "REF-001",
	}
}

func TestValidate_AcceptsEmptyHistory(t *testing.T) {
	decision := Validate(nil, admissionCandidate())

	assert.True(t, decision.Accepted)
	assert.Empty(t, decision.StaleIDs)
}

func TestValidate_RejectsDuplicatePaymentReference(t *testing.T) {
	history := []Subscription{
		{ID: 1, PaymentReference: "REF-001", PaymentStatus: PaymentFailed},
	}

	decision := Validate(history, admissionCandidate())

	assert.False(t, decision.Accepted)
	assert.Contains(t, decision.Message, "REF-001")
}

func TestValidate_DuplicateReferenceWinsOverLaterRules(t *testing.T) {
	// The reference clash must be reported even when the subscription cap
	// is also exceeded.
	history := []Subscription{
		{ID: 1, PaymentReference: "REF-001", PaymentStatus: PaymentSuccessful, BeneficiaryFullName: "A"},
		{ID: 2, PaymentReference: "R2", PaymentStatus: PaymentSuccessful, BeneficiaryFullName: "B"},
		{ID: 3, PaymentReference: "R3", PaymentStatus: PaymentSuccessful, BeneficiaryFullName: "C"},
	}

	decision := Validate(history, admissionCandidate())

	assert.False(t, decision.Accepted)
	assert.Contains(t, decision.Message, "REF-001")
}

func TestValidate_RejectsFourthSuccessfulSubscription(t *testing.T) {
	history := []Subscription{
		{ID: 1, PaymentReference: "R1", PaymentStatus: PaymentSuccessful, BeneficiaryFullName: "A"},
		{ID: 2, PaymentReference: "R2", PaymentStatus: PaymentSuccessful, BeneficiaryFullName: "B"},
		{ID: 3, PaymentReference: "R3", PaymentStatus: PaymentSuccessful, BeneficiaryFullName: "C"},
	}

	decision := Validate(history, admissionCandidate())

	assert.False(t, decision.Accepted)
	assert.Contains(t, decision.Message, "Awa Kone")
}

func TestValidate_FailedSubscriptionsDoNotCountTowardCap(t *testing.T) {
	history := []Subscription{
		{ID: 1, PaymentReference: "R1", PaymentStatus: PaymentFailed, BeneficiaryFullName: "A"},
		{ID: 2, PaymentReference: "R2", PaymentStatus: PaymentFailed, BeneficiaryFullName: "B"},
		{ID: 3, PaymentReference: "R3", PaymentStatus: PaymentFailed, BeneficiaryFullName: "C"},
	}

	decision := Validate(history, admissionCandidate())

	assert.True(t, decision.Accepted)
}

func TestValidate_RejectsDuplicateBeneficiary(t *testing.T) {
	history := []Subscription{
		{ID: 1, PaymentReference: "R1", PaymentStatus: PaymentSuccessful, BeneficiaryFullName: "Moussa Kone"},
	}

	decision := Validate(history, admissionCandidate())

	require.False(t, decision.Accepted)
	assert.Contains(t, decision.Message, "Awa Kone")
	assert.Contains(t, decision.Message, "Moussa Kone")
}

func TestValidate_BeneficiaryComparisonIgnoresCaseAndSpace(t *testing.T) {
	history := []Subscription{
		{ID: 1, PaymentReference: "R1", PaymentStatus: PaymentSuccessful, BeneficiaryFullName: "  moussa kone "},
	}

	decision := Validate(history, admissionCandidate())

	assert.False(t, decision.Accepted)
}

func TestValidate_CollectsStaleFailedAndPending(t *testing.T) {
	history := []Subscription{
		{ID: 10, PaymentReference: "R1", PaymentStatus: PaymentFailed, BeneficiaryFullName: "Moussa Kone"},
		{ID: 11, PaymentReference: "R2", PaymentStatus: PaymentPending, BeneficiaryFullName: "Moussa Kone"},
		{ID: 12, PaymentReference: "R3", PaymentStatus: PaymentFailed, BeneficiaryFullName: "Someone Else"},
	}

	decision := Validate(history, admissionCandidate())

	require.True(t, decision.Accepted)
	assert.ElementsMatch(t, []snowflake.ID{10, 11}, decision.StaleIDs)
}
