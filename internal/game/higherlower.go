package game

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TotalRounds is the number of correct guesses needed to win
const TotalRounds = 5

type GameStatus string

const (
	Playing GameStatus = "playing" // Waiting for the next guess
	Won     GameStatus = "won"     // Five correct guesses
	Lost    GameStatus = "lost"    // Wrong guess or matching rank
)

type Direction string

const (
	Higher Direction = "higher"
	Lower  Direction = "lower"
)

const (
	FeedbackTie       = "Automatic loss! Matching card drawn."
	FeedbackCorrect   = "You guessed correctly!"
	FeedbackWon       = "Congratulations! You won!"
	FeedbackIncorrect = "Incorrect guess. Game over!"
)

var (
	ErrInvalidDirection = errors.New("direction must be higher or lower")
	ErrGameInProgress   = errors.New("game is still in progress")
)

// ParseDirection converts user input into a Direction
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Higher:
		return Higher, nil
	case Lower:
		return Lower, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

type HigherLowerGame struct {
	ID           string     `json:"id"`
	CurrentCard  *Card      `json:"currentCard"`
	NextCard     *Card      `json:"nextCard"`
	PickedCards  []Card     `json:"pickedCards"`
	Round        int        `json:"round"`
	Status       GameStatus `json:"status"`
	RevealedCard *Card      `json:"revealedCard,omitempty"`
	Feedback     string     `json:"feedback"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	deck *Deck
	rng  *rand.Rand
}

type Option func(*HigherLowerGame)

// WithRand makes every shuffle of the game draw from r
func WithRand(r *rand.Rand) Option {
	return func(g *HigherLowerGame) {
		g.rng = r
	}
}

// NewHigherLowerGame creates a new game and deals the first two cards
func NewHigherLowerGame(opts ...Option) *HigherLowerGame {
	g := &HigherLowerGame{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.Start()
	return g
}

// Start shuffles a fresh deck and deals the current and next card.
// Everything but the game ID is replaced.
func (g *HigherLowerGame) Start() {
	deck := NewDeck()
	deck.Shuffle(g.rng)

	// A fresh deck always holds two cards
	current, _ := deck.Draw()
	next, _ := deck.Draw()

	g.deck = deck
	g.CurrentCard = &current
	g.NextCard = &next
	g.PickedCards = []Card{}
	g.Round = 0
	g.Status = Playing
	g.RevealedCard = nil
	g.Feedback = ""
	g.UpdatedAt = time.Now()
}

// Reset throws the current state away and starts over
func (g *HigherLowerGame) Reset() {
	g.Start()
}

// Guess evaluates a guess against the hidden next card. It returns false and
// leaves the game untouched when no guess can be taken.
func (g *HigherLowerGame) Guess(dir Direction) bool {
	if g.Status != Playing || g.CurrentCard == nil || g.NextCard == nil {
		return false
	}
	if dir != Higher && dir != Lower {
		return false
	}

	current, next := *g.CurrentCard, *g.NextCard

	switch {
	case next.Rank == current.Rank:
		g.lose(next, FeedbackTie)

	case (dir == Higher && next.Rank > current.Rank) || (dir == Lower && next.Rank < current.Rank):
		// compare the round before it is incremented
		prev := g.Round
		g.Round++
		if prev == TotalRounds-1 {
			g.Status = Won
			g.Feedback = FeedbackWon
		} else {
			g.Feedback = FeedbackCorrect
		}

	default:
		g.lose(next, FeedbackIncorrect)
	}

	if g.Status == Playing {
		g.PickedCards = append(g.PickedCards, current)
		g.CurrentCard = &next
		if card, err := g.deck.Draw(); err == nil {
			g.NextCard = &card
		} else {
			g.NextCard = nil
		}
	}

	g.UpdatedAt = time.Now()
	return true
}

func (g *HigherLowerGame) lose(revealed Card, feedback string) {
	g.RevealedCard = &revealed
	g.Status = Lost
	g.Feedback = feedback
}

// IsOver reports whether the game reached a terminal state
func (g *HigherLowerGame) IsOver() bool {
	return g.Status == Won || g.Status == Lost
}

// CardsRemaining returns the number of undealt cards
func (g *HigherLowerGame) CardsRemaining() int {
	if g.deck == nil {
		return 0
	}
	return g.deck.Remaining()
}

// Result is the record kept for a finished game
type Result struct {
	ID           string     `json:"id"`
	GameID       string     `json:"gameId"`
	Status       GameStatus `json:"status"`
	Rounds       int        `json:"rounds"`
	PickedCards  []Card     `json:"pickedCards"`
	LastCard     *Card      `json:"lastCard,omitempty"`
	RevealedCard *Card      `json:"revealedCard,omitempty"`
	FinishedAt   time.Time  `json:"finishedAt"`
}

// Result summarizes a finished game. The caller assigns the record ID.
func (g *HigherLowerGame) Result() (Result, error) {
	if !g.IsOver() {
		return Result{}, ErrGameInProgress
	}

	picked := make([]Card, len(g.PickedCards))
	copy(picked, g.PickedCards)

	return Result{
		GameID:       g.ID,
		Status:       g.Status,
		Rounds:       g.Round,
		PickedCards:  picked,
		LastCard:     g.CurrentCard,
		RevealedCard: g.RevealedCard,
		FinishedAt:   g.UpdatedAt,
	}, nil
}
