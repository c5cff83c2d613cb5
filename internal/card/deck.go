package card

import "github.com/ravikiranprk/pokedexter/internal/catalog"

// Deck holds the cards of one search session keyed by entity name. Cards live
// as long as their session; a new session gets a new Deck.
type Deck struct {
	session string
	cards   map[string]*Card
}

// NewDeck returns an empty deck bound to session.
func NewDeck(session string) *Deck {
	return &Deck{session: session, cards: make(map[string]*Card)}
}

// Session returns the session the deck belongs to.
func (d *Deck) Session() string {
	return d.session
}

// Card returns the card for ref, creating it on first use.
func (d *Deck) Card(ref catalog.EntityRef) *Card {
	if c, ok := d.cards[ref.Name]; ok {
		return c
	}
	c := New(ref)
	d.cards[ref.Name] = c
	return c
}

// Lookup returns the existing card for name.
func (d *Deck) Lookup(name string) (*Card, bool) {
	c, ok := d.cards[name]
	return c, ok
}

// Len returns the number of cards created so far.
func (d *Deck) Len() int {
	return len(d.cards)
}
