package rules

// Kind classifies a rule result.
type Kind int

// Result kinds.
const (
	KindSuccess Kind = iota
	KindWarning
	KindError
)

// kindNames maps result kinds to display names.
var kindNames = map[Kind]string{
	KindSuccess: "success",
	KindWarning: "warning",
	KindError:   "error",
}

// String returns the kind's display name.
func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return "unknown"
	}

	return name
}

// Detail pinpoints one sub-problem inside a result, e.g. which specific
// keyword collided.
type Detail struct {
	Key         string
	Description string
}

// Result is the outcome of one rule invocation. Results are immutable once
// produced; the RuleSet field is stamped by the engine with the name of the
// set the rule ran under.
type Result struct {
	Kind    Kind
	RuleID  string
	RuleSet string
	Message string
	Details []Detail
}

// NewSuccess creates a passing result for the given rule.
func NewSuccess(rule Rule, message string) Result {
	return Result{
		Kind:    KindSuccess,
		RuleID:  rule.ID(),
		Message: message,
	}
}

// NewWarning creates a warning result for the given rule.
func NewWarning(rule Rule, message string, details ...Detail) Result {
	return Result{
		Kind:    KindWarning,
		RuleID:  rule.ID(),
		Message: message,
		Details: details,
	}
}

// NewError creates an error result for the given rule.
func NewError(rule Rule, message string, details ...Detail) Result {
	return Result{
		Kind:    KindError,
		RuleID:  rule.ID(),
		Message: message,
		Details: details,
	}
}
