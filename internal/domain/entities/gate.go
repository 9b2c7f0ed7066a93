package entities

// GateResult is the verdict of a single eligibility gate: either Allowed, or
// Blocked with a skip reason and structured details.
type GateResult struct {
	Allowed bool
	Reason  SkipReason
	Details map[string]any
}

// Allow lets the pipeline continue.
func Allow() GateResult {
	return GateResult{Allowed: true}
}

// Block halts the pipeline with the given reason.
func Block(reason SkipReason, details map[string]any) GateResult {
	return GateResult{Allowed: false, Reason: reason, Details: details}
}
