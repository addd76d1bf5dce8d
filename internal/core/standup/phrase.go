package standup

import "github.com/brianvoe/gofakeit/v7"

// PhraseSource produces the short human phrases behind the subjective
// answers. It is a port so tests can pin the output; the generator makes
// no determinism promises
type PhraseSource interface {
	// Adjective returns a short product-adjective style word for the mood answer
	Adjective() string

	// HackerPhrase returns a jargon sentence for the blockers answer
	HackerPhrase() string
}

// FakePhrases is the gofakeit-backed default PhraseSource
type FakePhrases struct{}

// Adjective implements PhraseSource
func (FakePhrases) Adjective() string { return gofakeit.AdjectiveDescriptive() }

// HackerPhrase implements PhraseSource
func (FakePhrases) HackerPhrase() string { return gofakeit.HackerPhrase() }
