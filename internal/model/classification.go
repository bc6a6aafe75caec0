// Package model defines the core domain models used throughout the application.
package model

import "strings"

// Label is the gender/audience classification assigned to one article+color pair.
type Label string

// Classification labels.
const (
	// LabelUnset marks a key that still needs a user decision.
	LabelUnset Label = ""

	LabelUomo   Label = "UOMO"
	LabelDonna  Label = "DONNA"
	LabelUnisex Label = "UNISEX"
)

// AllLabels lists the labels a user may assign, in prompt order.
var AllLabels = []Label{LabelUomo, LabelDonna, LabelUnisex}

// Valid reports whether l is one of the assignable labels.
func (l Label) Valid() bool {
	for _, known := range AllLabels {
		if l == known {
			return true
		}
	}
	return false
}

// ParseLabel canonicalizes stored label text. Case and surrounding
// whitespace are ignored; anything that is not one of the assignable labels
// reads as unset, so a hand-edited sheet cell cannot leak an unknown label
// into the pipeline.
func ParseLabel(s string) Label {
	candidate := Label(strings.ToUpper(strings.TrimSpace(s)))
	if candidate.Valid() {
		return candidate
	}
	return LabelUnset
}

// ClassificationKey identifies one classification decision. All size and
// quantity variants of the same article+color share one classification.
type ClassificationKey struct {
	Article string
	Color   string
}

// ClassificationEntry pairs a key with its assigned label.
type ClassificationEntry struct {
	Key   ClassificationKey
	Label Label
}

// ClassificationSet is the in-memory mirror of the persisted store, keyed by
// article+color.
type ClassificationSet map[ClassificationKey]Label

// Reconcile merges newly seen keys into the set. Keys already present keep
// their label; keys not yet present are added with LabelUnset. The receiver
// is not modified.
func (s ClassificationSet) Reconcile(newKeys []ClassificationKey) ClassificationSet {
	merged := make(ClassificationSet, len(s)+len(newKeys))
	for key, label := range s {
		merged[key] = label
	}
	for _, key := range newKeys {
		if _, ok := merged[key]; !ok {
			merged[key] = LabelUnset
		}
	}
	return merged
}

// Unset returns the keys still awaiting a user decision.
func (s ClassificationSet) Unset() []ClassificationKey {
	var unset []ClassificationKey
	for key, label := range s {
		if label == LabelUnset {
			unset = append(unset, key)
		}
	}
	return unset
}
