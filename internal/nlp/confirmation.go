package nlp

import (
	"strings"
)

// Confirmation is the polarity of a yes/no answer.
type Confirmation int

const (
	ConfirmNone Confirmation = iota
	ConfirmYes
	ConfirmNo
)

// The two whitelists are disjoint by construction; anything outside both
// is not a confirmation, even when one is pending.
var affirmatives = map[string]struct{}{
	"yes": {}, "yeah": {}, "yep": {}, "yup": {}, "y": {},
	"sure": {}, "ok": {}, "okay": {}, "fine": {},
	"yes please": {}, "sure thing": {}, "of course": {},
	"definitely": {}, "absolutely": {}, "certainly": {},
	"go ahead": {}, "do it": {}, "proceed": {}, "confirm": {},
	"sounds good": {}, "why not": {},
}

var negatives = map[string]struct{}{
	"no": {}, "nope": {}, "nah": {}, "n": {},
	"no thanks": {}, "no thank you": {}, "not now": {},
	"cancel": {}, "never": {}, "negative": {},
	"don't": {}, "dont": {}, "not really": {}, "maybe later": {},
	"no way": {},
}

// DetectConfirmation classifies text as an affirmative or negative short
// answer. Matching is exact after trim/lowercase and trailing-punctuation
// stripping; anything else returns ConfirmNone.
func DetectConfirmation(text string) Confirmation {
	normalized := strings.ToLower(strings.TrimSpace(text))
	normalized = strings.TrimRight(normalized, "!?. ")

	if _, ok := affirmatives[normalized]; ok {
		return ConfirmYes
	}
	if _, ok := negatives[normalized]; ok {
		return ConfirmNo
	}
	return ConfirmNone
}
