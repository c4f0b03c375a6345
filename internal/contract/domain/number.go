package domain

import (
	"strings"
	"time"
)

// phonePrefixes are the international spellings of an Ivorian mobile number
// that collapse to the local "05…" form.
var phonePrefixes = []string{"+22505", "0022505", "22505"}

// NormalizePhoneNumber rewrites an internationally prefixed subscriber
// number to its local form. Numbers already local pass through unchanged.
func NormalizePhoneNumber(raw string) string {
	phone := strings.TrimSpace(raw)
	for _, prefix := range phonePrefixes {
		if strings.HasPrefix(phone, prefix) {
			return "05" + phone[len(prefix):]
		}
	}
	return phone
}

// GenerateNumber derives the contract number from the subscriber's phone
// number and the creation instant: normalized phone + "M" + ddMMyy + hhmmss.
func GenerateNumber(phoneNumber string, at time.Time) string {
	return NormalizePhoneNumber(phoneNumber) + "M" + at.Format("020106") + at.Format("150405")
}
