package classifier

// Outcome is the label an Observer receives for each classification.
type Outcome string

const (
	OutcomeMatched   Outcome = "matched"
	OutcomeAbsent    Outcome = "absent"
	OutcomeGuarded   Outcome = "guarded"
	OutcomeInvariant Outcome = "invariant"
)

// Observer is notified once per Classify call.
type Observer interface {
	ObserveClassification(classifier string, outcome Outcome)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(classifier string, outcome Outcome)

func (f ObserverFunc) ObserveClassification(classifier string, outcome Outcome) {
	f(classifier, outcome)
}

type nopObserver struct{}

func (nopObserver) ObserveClassification(string, Outcome) {}
