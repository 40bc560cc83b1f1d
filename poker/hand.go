package poker

import (
	"fmt"
	"sort"
	"strings"
)

type HandCategory int

const (
	HandNone HandCategory = iota
	HighCard
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	FiveOfAKind
)

// Hand names that planet cards may level but the evaluator never produces.
const (
	FlushHouseName = "Flush House"
	FlushFiveName  = "Flush Five"
)

var AllHandCategories = []HandCategory{
	HighCard, Pair, TwoPair, ThreeOfAKind, Straight, Flush, FullHouse, FourOfAKind, StraightFlush, FiveOfAKind,
}

var handNames = map[HandCategory]string{
	HandNone:      "None",
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	FiveOfAKind:   "Five of a Kind",
}

func (h HandCategory) String() string {
	if name, ok := handNames[h]; ok {
		return name
	}
	return fmt.Sprintf("HandCategory(%d)", h)
}

func (h HandCategory) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *HandCategory) UnmarshalText(b []byte) error {
	v, err := ParseHandCategory(string(b))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

func normalizeHandName(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// ParseHandCategory accepts display names ("Three of a Kind") and constant style names ("THREE_OF_A_KIND").
func ParseHandCategory(s string) (HandCategory, error) {
	n := normalizeHandName(s)
	for h, name := range handNames {
		if normalizeHandName(name) == n {
			return h, nil
		}
	}
	return HandNone, fmt.Errorf("invalid poker hand [%s]", s)
}

// Evaluate classifies cards into the best hand category and returns the cards that make up the hand.
func Evaluate(cards []*Card) (HandCategory, []*Card) {
	if len(cards) == 0 {
		return HandNone, nil
	}

	// ranks in order of first appearance so that ties favour earlier cards
	rankCounts := make(map[Rank]int)
	var rankOrder []Rank
	suits := make(map[Suit]struct{})
	for _, c := range cards {
		if _, ok := rankCounts[c.Rank]; !ok {
			rankOrder = append(rankOrder, c.Rank)
		}
		rankCounts[c.Rank]++
		suits[c.Suit] = struct{}{}
	}

	isFlush := len(suits) == 1
	isStraight := isStraight(rankOrder)

	counts := make([]int, 0, len(rankOrder))
	pairs := 0
	for _, r := range rankOrder {
		counts = append(counts, rankCounts[r])
		if rankCounts[r] == 2 {
			pairs++
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	switch {
	case isStraight && isFlush:
		return StraightFlush, cards
	case counts[0] == 5:
		return FiveOfAKind, cardsOfRank(cards, firstRankWithCount(rankOrder, rankCounts, 5), 5)
	case counts[0] == 4:
		return FourOfAKind, cardsOfRank(cards, firstRankWithCount(rankOrder, rankCounts, 4), 4)
	case len(counts) == 2 && counts[0] == 3 && counts[1] == 2:
		used := cardsOfRank(cards, firstRankWithCount(rankOrder, rankCounts, 3), 3)
		used = append(used, cardsOfRank(cards, firstRankWithCount(rankOrder, rankCounts, 2), 2)...)
		return FullHouse, used
	case isFlush:
		return Flush, cards
	case isStraight:
		return Straight, cards
	case counts[0] == 3:
		return ThreeOfAKind, cardsOfRank(cards, firstRankWithCount(rankOrder, rankCounts, 3), 3)
	case pairs == 2:
		var used []*Card
		for _, r := range rankOrder {
			if rankCounts[r] == 2 {
				used = append(used, cardsOfRank(cards, r, 2)...)
			}
		}
		return TwoPair, used
	case counts[0] == 2:
		return Pair, cardsOfRank(cards, firstRankWithCount(rankOrder, rankCounts, 2), 2)
	}

	highest := cards[0]
	for _, c := range cards[1:] {
		if c.Rank.Value() > highest.Rank.Value() {
			highest = c
		}
	}
	return HighCard, []*Card{highest}
}

// isStraight requires exactly five distinct ranks forming a run, or the wheel A-2-3-4-5.
func isStraight(ranks []Rank) bool {
	if len(ranks) != 5 {
		return false
	}
	values := make([]int, len(ranks))
	for i, r := range ranks {
		values[i] = r.Value()
	}
	sort.Ints(values)
	if values[4]-values[0] == 4 {
		return true
	}
	wheel := []int{2, 3, 4, 5, 14}
	for i := range wheel {
		if values[i] != wheel[i] {
			return false
		}
	}
	return true
}

func firstRankWithCount(order []Rank, counts map[Rank]int, count int) Rank {
	for _, r := range order {
		if counts[r] == count {
			return r
		}
	}
	panic(fmt.Sprintf("no rank with count %d", count))
}

func cardsOfRank(cards []*Card, rank Rank, limit int) []*Card {
	used := make([]*Card, 0, limit)
	for _, c := range cards {
		if c.Rank == rank {
			used = append(used, c)
			if len(used) == limit {
				break
			}
		}
	}
	return used
}
