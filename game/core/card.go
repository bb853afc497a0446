package core

import (
	"fmt"
	"strings"
)

// used for card validity checks
const facesStr = "23456789TJQKA"
const suitsStr = "shdc"

// cards better not carry runtime state
type Card struct {
	face  string
	suit  string
	// the whole card, face + suit
	whole string
}

func NewCard(face string, suit string) Card {
	return Card{face: face, suit: suit, whole: face + suit}
}

func (c Card) Whole() string {
	return c.whole
}

// two cards are the same card iff face and suit match
func (c Card) EqualTo(other Card) bool {
	return c.whole == other.whole
}

// string to card, rejects anything outside the 52-card set
func CardFromWhole(str string) (Card, error) {
	if len(str) != 2 {
		return Card{}, fmt.Errorf("invalid card: %v", str)
	}
	face := str[0:1]
	suit := str[1:2]
	if !strings.Contains(facesStr, face) || !strings.Contains(suitsStr, suit) {
		return Card{}, fmt.Errorf("invalid card: %v", str)
	}
	return NewCard(face, suit), nil
}

// make a full deck in pristine order
func makeDeckOfCards() []Card {
	result := make([]Card, 0, 52)
	for i := 0; i < len(facesStr); i++ {
		for j := 0; j < len(suitsStr); j++ {
			result = append(result, NewCard(string(facesStr[i]), string(suitsStr[j])))
		}
	}
	return result
}
