package game

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

// stackedGame returns a playing game whose current card is cards[0], next card
// is cards[1] and whose deck holds the rest in order.
func stackedGame(cards ...Card) *HigherLowerGame {
	g := NewHigherLowerGame(WithRand(rand.New(rand.NewSource(1))))
	current, next := cards[0], cards[1]
	g.CurrentCard = &current
	g.NextCard = &next
	g.deck = &Deck{cards: append([]Card{}, cards[2:]...)}
	return g
}

func c(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

func TestNewGame_Dealt(t *testing.T) {
	g := NewHigherLowerGame()
	if g.ID == "" {
		t.Fatal("expected game ID")
	}
	assertFreshPlaying(t, g)
}

func TestGuess_TieAlwaysLoses(t *testing.T) {
	for _, dir := range []Direction{Higher, Lower} {
		g := stackedGame(c(Nine, Hearts), c(Nine, Spades), c(Two, Clubs))
		if !g.Guess(dir) {
			t.Fatalf("%s: guess not applied", dir)
		}
		if g.Status != Lost {
			t.Fatalf("%s: expected lost, got %s", dir, g.Status)
		}
		if g.Feedback != FeedbackTie {
			t.Fatalf("%s: unexpected feedback %q", dir, g.Feedback)
		}
		if g.RevealedCard == nil || *g.RevealedCard != c(Nine, Spades) {
			t.Fatalf("%s: expected revealed nine of spades, got %v", dir, g.RevealedCard)
		}
		if g.Round != 0 {
			t.Fatalf("%s: expected round 0, got %d", dir, g.Round)
		}
	}
}

func TestGuess_CorrectHigher(t *testing.T) {
	g := stackedGame(c(Five, Hearts), c(Ten, Clubs), c(Three, Diamonds))
	g.Guess(Higher)

	if g.Round != 1 || g.Status != Playing {
		t.Fatalf("expected round 1 playing, got round %d %s", g.Round, g.Status)
	}
	if g.Feedback != FeedbackCorrect {
		t.Fatalf("unexpected feedback %q", g.Feedback)
	}
	if *g.CurrentCard != c(Ten, Clubs) || *g.NextCard != c(Three, Diamonds) {
		t.Fatalf("cards did not advance: current %v next %v", g.CurrentCard, g.NextCard)
	}
	if !reflect.DeepEqual(g.PickedCards, []Card{c(Five, Hearts)}) {
		t.Fatalf("unexpected picked cards %v", g.PickedCards)
	}
	if g.CardsRemaining() != 0 {
		t.Fatalf("expected deck to shrink to 0, got %d", g.CardsRemaining())
	}
}

func TestGuess_CorrectLower(t *testing.T) {
	g := stackedGame(c(King, Hearts), c(Four, Clubs), c(Ace, Spades))
	g.Guess(Lower)
	if g.Round != 1 || g.Status != Playing || g.Feedback != FeedbackCorrect {
		t.Fatalf("unexpected state round=%d status=%s feedback=%q", g.Round, g.Status, g.Feedback)
	}
}

func TestGuess_Incorrect(t *testing.T) {
	g := stackedGame(c(Ten, Hearts), c(Five, Clubs), c(Two, Spades))
	g.Guess(Higher)

	if g.Status != Lost || g.Feedback != FeedbackIncorrect {
		t.Fatalf("expected lost with incorrect feedback, got %s %q", g.Status, g.Feedback)
	}
	if g.RevealedCard == nil || *g.RevealedCard != c(Five, Clubs) {
		t.Fatalf("expected revealed five of clubs, got %v", g.RevealedCard)
	}
	if *g.CurrentCard != c(Ten, Hearts) || len(g.PickedCards) != 0 || g.CardsRemaining() != 1 {
		t.Fatal("losing guess must not advance cards")
	}
}

func TestGuess_WinOnFifth(t *testing.T) {
	g := stackedGame(
		c(Two, Hearts), c(Three, Hearts), c(Four, Hearts), c(Five, Hearts),
		c(Six, Hearts), c(Seven, Hearts), c(Eight, Hearts), c(Nine, Hearts),
	)

	for i := 1; i <= 4; i++ {
		g.Guess(Higher)
		if g.Status != Playing || g.Round != i || g.Feedback != FeedbackCorrect {
			t.Fatalf("guess %d: unexpected state round=%d status=%s", i, g.Round, g.Status)
		}
	}
	remaining := g.CardsRemaining()

	g.Guess(Higher)
	if g.Status != Won || g.Round != TotalRounds || g.Feedback != FeedbackWon {
		t.Fatalf("expected win, got round=%d status=%s feedback=%q", g.Round, g.Status, g.Feedback)
	}
	if g.CardsRemaining() != remaining {
		t.Fatalf("no card may be drawn after the win: %d -> %d", remaining, g.CardsRemaining())
	}
	if *g.CurrentCard != c(Six, Hearts) || *g.NextCard != c(Seven, Hearts) {
		t.Fatalf("cards moved after the win: %v %v", g.CurrentCard, g.NextCard)
	}
	if len(g.PickedCards) != 4 {
		t.Fatalf("expected 4 picked cards, got %d", len(g.PickedCards))
	}
	if g.RevealedCard != nil {
		t.Fatal("a win reveals nothing")
	}
}

func TestGuess_TieOnFifthLoses(t *testing.T) {
	g := stackedGame(
		c(Two, Hearts), c(Three, Hearts), c(Four, Hearts), c(Five, Hearts),
		c(Six, Hearts), c(Six, Spades), c(Eight, Hearts),
	)
	for i := 0; i < 4; i++ {
		g.Guess(Higher)
	}
	g.Guess(Higher)
	if g.Status != Lost || g.Feedback != FeedbackTie || g.Round != 4 {
		t.Fatalf("expected tie loss at round 4, got round=%d status=%s", g.Round, g.Status)
	}
}

func TestGuess_NoOpOutsidePlaying(t *testing.T) {
	g := stackedGame(c(Ten, Hearts), c(Five, Clubs), c(Two, Spades))
	g.Guess(Higher)

	before := *g
	beforePicked := append([]Card{}, g.PickedCards...)
	beforeRemaining := g.CardsRemaining()
	for _, dir := range []Direction{Higher, Lower} {
		if g.Guess(dir) {
			t.Fatalf("%s: guess applied after the game ended", dir)
		}
	}
	if g.Status != before.Status || g.Round != before.Round || g.Feedback != before.Feedback ||
		g.CurrentCard != before.CurrentCard || g.NextCard != before.NextCard ||
		g.RevealedCard != before.RevealedCard || !g.UpdatedAt.Equal(before.UpdatedAt) ||
		!reflect.DeepEqual(g.PickedCards, beforePicked) || g.CardsRemaining() != beforeRemaining {
		t.Fatal("state changed by an ignored guess")
	}
}

func TestGuess_NoOpWithoutNextCard(t *testing.T) {
	g := stackedGame(c(Ten, Hearts), c(Jack, Clubs))
	g.Guess(Higher)
	if g.NextCard != nil {
		t.Fatalf("expected no next card after draining the deck, got %v", g.NextCard)
	}
	if g.Guess(Higher) {
		t.Fatal("guess applied without a next card")
	}
	if g.Round != 1 || g.Status != Playing {
		t.Fatalf("unexpected state round=%d status=%s", g.Round, g.Status)
	}
}

func TestGuess_UnknownDirectionIgnored(t *testing.T) {
	g := stackedGame(c(Ten, Hearts), c(Jack, Clubs), c(Two, Spades))
	if g.Guess(Direction("sideways")) {
		t.Fatal("unknown direction applied")
	}
	if g.Round != 0 || g.Status != Playing {
		t.Fatal("state changed")
	}
}

func TestReset_AlwaysFresh(t *testing.T) {
	g := NewHigherLowerGame(WithRand(rand.New(rand.NewSource(3))))
	id := g.ID
	for i := 0; i < 20; i++ {
		g.Guess(Higher)
		g.Guess(Lower)
		g.Reset()
		assertFreshPlaying(t, g)
		if g.ID != id {
			t.Fatal("reset must keep the game ID")
		}
	}
}

func TestGame_NoCardSeenTwice(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for n := 0; n < 200; n++ {
		g := NewHigherLowerGame(WithRand(r))
		for g.Status == Playing {
			dir := Higher
			if g.CurrentCard.Rank > Eight {
				dir = Lower
			}
			g.Guess(dir)

			all := append([]Card{}, g.PickedCards...)
			all = append(all, *g.CurrentCard)
			if g.NextCard != nil {
				all = append(all, *g.NextCard)
			}
			all = append(all, g.deck.Cards()...)
			if len(all) != 52 {
				t.Fatalf("expected 52 cards across the game, got %d", len(all))
			}
			assertComplete(t, all)
		}
	}
}

func TestResult(t *testing.T) {
	g := stackedGame(c(Ten, Hearts), c(Five, Clubs), c(Two, Spades))
	if _, err := g.Result(); !errors.Is(err, ErrGameInProgress) {
		t.Fatalf("expected ErrGameInProgress, got %v", err)
	}

	g.Guess(Higher)
	res, err := g.Result()
	if err != nil {
		t.Fatal(err)
	}
	if res.GameID != g.ID || res.Status != Lost || res.Rounds != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.RevealedCard == nil || *res.RevealedCard != c(Five, Clubs) {
		t.Fatalf("unexpected revealed card %v", res.RevealedCard)
	}
	if res.LastCard == nil || *res.LastCard != c(Ten, Hearts) {
		t.Fatalf("unexpected last card %v", res.LastCard)
	}
}

func TestParseDirection(t *testing.T) {
	cases := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"higher", Higher, true},
		{" LOWER ", Lower, true},
		{"Higher", Higher, true},
		{"", "", false},
		{"up", "", false},
	}
	for _, tc := range cases {
		got, err := ParseDirection(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("%q: expected %s, got %s (%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidDirection) {
			t.Errorf("%q: expected ErrInvalidDirection, got %v", tc.in, err)
		}
	}
}

func TestGetGameState_HidesNextCard(t *testing.T) {
	g := stackedGame(c(Ten, Hearts), c(Five, Clubs), c(Two, Spades))
	view := g.GetGameState()
	if view.NextCard != nil || !view.NextCardHidden {
		t.Fatal("next card must stay hidden while playing")
	}
	if view.CurrentCard == nil || view.CurrentCard.Label != "10" || !view.CurrentCard.Red {
		t.Fatalf("unexpected current card %+v", view.CurrentCard)
	}
	if view.TotalRounds != TotalRounds || view.CardsRemaining != 1 {
		t.Fatalf("unexpected view %+v", view)
	}

	g.Guess(Higher)
	view = g.GetGameState()
	if view.NextCard == nil || view.NextCard.Label != "5" || view.NextCardHidden {
		t.Fatal("next card must be shown once the game is over")
	}
	if view.RevealedCard == nil || view.RevealedCard.Suit != Clubs {
		t.Fatalf("unexpected revealed card %+v", view.RevealedCard)
	}
}

func assertFreshPlaying(t *testing.T, g *HigherLowerGame) {
	t.Helper()
	if g.Status != Playing || g.Round != 0 || len(g.PickedCards) != 0 {
		t.Fatalf("unexpected state status=%s round=%d picked=%d", g.Status, g.Round, len(g.PickedCards))
	}
	if g.CurrentCard == nil || g.NextCard == nil || *g.CurrentCard == *g.NextCard {
		t.Fatalf("expected two distinct cards, got %v %v", g.CurrentCard, g.NextCard)
	}
	if g.RevealedCard != nil || g.Feedback != "" {
		t.Fatal("expected cleared reveal and feedback")
	}
	if g.CardsRemaining() != 50 {
		t.Fatalf("expected 50 cards remaining, got %d", g.CardsRemaining())
	}
}
