package studio

import "strings"

// Intent is the router's classification of a chat message.
type Intent string

const (
	// IntentArchitectural messages change the room model (ground truth).
	IntentArchitectural Intent = "architectural"
	// IntentStylistic messages only change the rendered design.
	IntentStylistic Intent = "stylistic"
)

// Classifier decides whether a chat message is an architectural correction or
// a stylistic refinement. It is an interface so the keyword heuristic below
// can be swapped for a real intent model without touching the router.
type Classifier interface {
	Classify(text string, knownFeatureIDs []string) Intent
}

// actionKeywords are the verbs that, combined with a feature ID mention, mark
// a message as architectural.
var actionKeywords = []string{"move", "change", "is on", "should be", "add", "remove", "relocate"}

// KeywordClassifier is the default heuristic: a message is architectural iff
// it mentions a current feature ID AND contains an action keyword. This is a
// substring check, not a parser, and can misclassify ("remove the clutter"
// plus an incidental ID mention false-positives); that is the accepted
// trade-off until a model-backed classifier replaces it.
type KeywordClassifier struct{}

// Classify implements Classifier.
func (KeywordClassifier) Classify(text string, knownFeatureIDs []string) Intent {
	mentionsID := false
	for _, id := range knownFeatureIDs {
		if strings.Contains(text, id) {
			mentionsID = true
			break
		}
	}
	if !mentionsID {
		return IntentStylistic
	}

	lower := strings.ToLower(text)
	for _, keyword := range actionKeywords {
		if strings.Contains(lower, keyword) {
			return IntentArchitectural
		}
	}
	return IntentStylistic
}
