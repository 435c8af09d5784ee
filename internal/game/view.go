package game

// CardView is a card as shown to the player
type CardView struct {
	Rank  Rank   `json:"rank"`
	Suit  Suit   `json:"suit"`
	Label string `json:"label"`
	Red   bool   `json:"red"`
}

type GameView struct {
	ID             string     `json:"id"`
	CurrentCard    *CardView  `json:"currentCard"`
	NextCard       *CardView  `json:"nextCard"`
	NextCardHidden bool       `json:"nextCardHidden"`
	RevealedCard   *CardView  `json:"revealedCard,omitempty"`
	PickedCards    []CardView `json:"pickedCards"`
	Round          int        `json:"round"`
	TotalRounds    int        `json:"totalRounds"`
	Status         GameStatus `json:"status"`
	Feedback       string     `json:"feedback"`
	CardsRemaining int        `json:"cardsRemaining"`
}

func cardView(c *Card) *CardView {
	if c == nil {
		return nil
	}
	return &CardView{Rank: c.Rank, Suit: c.Suit, Label: c.Label(), Red: c.IsRed()}
}

// GetGameState returns the game as the player may see it: the next card stays
// face down until the game is over.
func (g *HigherLowerGame) GetGameState() GameView {
	view := GameView{
		ID:             g.ID,
		CurrentCard:    cardView(g.CurrentCard),
		RevealedCard:   cardView(g.RevealedCard),
		PickedCards:    make([]CardView, 0, len(g.PickedCards)),
		Round:          g.Round,
		TotalRounds:    TotalRounds,
		Status:         g.Status,
		Feedback:       g.Feedback,
		CardsRemaining: g.CardsRemaining(),
	}

	for i := range g.PickedCards {
		view.PickedCards = append(view.PickedCards, *cardView(&g.PickedCards[i]))
	}

	if g.Status == Playing {
		view.NextCardHidden = g.NextCard != nil
	} else {
		view.NextCard = cardView(g.NextCard)
	}

	return view
}
