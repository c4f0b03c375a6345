package domain

// Transition is the single automatic transition rule: an INACTIF contract
// whose payments are up to date becomes ACTIF. Nothing else moves
// automatically — ACTIF never regresses, and RESILIE is reached only through
// the administrative Terminate operation. Returns the next status and
// whether it changed.
func Transition(current Status, upToDate bool) (Status, bool) {
	if current == StatusInactive && upToDate {
		return StatusActive, true
	}
	return current, false
}
