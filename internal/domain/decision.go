package domain

// DecisionKind is the classifier outcome for one event.
type DecisionKind int

const (
	DecisionSkip DecisionKind = iota
	DecisionAlertOpen
	DecisionAlertToken
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionAlertOpen:
		return "alert-open"
	case DecisionAlertToken:
		return "alert-with-token"
	default:
		return "skip"
	}
}

// Decision is the result of classifying one event. Token is set only when
// Kind is DecisionAlertToken.
type Decision struct {
	Kind  DecisionKind
	Token string
}

// Alert reports whether the decision calls for a notification.
func (d Decision) Alert() bool {
	return d.Kind == DecisionAlertOpen || d.Kind == DecisionAlertToken
}
