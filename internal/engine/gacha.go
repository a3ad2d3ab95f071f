package engine

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ptomo194059/family-growth/internal/storage"
)

// DrawResult reports a successful gacha draw.
type DrawResult struct {
	Card      storage.RewardCard
	Balance   int
	DrawCount int
	NewBadges []storage.Badge
}

// Draw performs one paid draw from the reward pool: deduct the child's draw
// cost (booked as month spend), pick a card by weight, append it to the
// inventory and bump the lifetime draw counter. An SSR pull and the
// 10/50/100 draw milestones issue badges, idempotently.
func (s *Service) Draw(ctx context.Context, childID string) (*DrawResult, error) {
	res := &DrawResult{}
	err := s.mutate(ctx, func(st *storage.State) error {
		st.EnsureChildMaps(childID)
		if len(st.RewardPool) == 0 {
			return ErrEmptyPool
		}
		cost := st.DrawCost[childID]
		if st.Balances[childID] < cost {
			return ErrInsufficientFunds
		}

		card := pickWeighted(s.rng.Intn, st.RewardPool)

		st.Balances[childID] -= cost
		st.MonthSpent[childID][MonthKey(s.now())] += cost
		st.Inventories[childID] = append(st.Inventories[childID], storage.OwnedCard{
			CardID:  card.ID,
			OwnedAt: s.now(),
		})
		st.DrawCount[childID]++

		if ParseRarity(card.Rarity) == RaritySSR {
			if b, ok := s.awardBadge(st, childID, storage.Badge{
				ID:          "first-ssr",
				Title:       "First SSR!",
				Icon:        "🌈",
				Description: "Pulled an SSR card for the first time",
			}); ok {
				res.NewBadges = append(res.NewBadges, b)
			}
		}
		for _, m := range DrawMilestones {
			if st.DrawCount[childID] == m {
				if b, ok := s.awardBadge(st, childID, storage.Badge{
					ID:          fmt.Sprintf("draw-milestone-%d", m),
					Title:       fmt.Sprintf("%d Draws", m),
					Icon:        "🎰",
					Description: fmt.Sprintf("Made %d lifetime draws", m),
				}); ok {
					res.NewBadges = append(res.NewBadges, b)
				}
			}
		}
		res.NewBadges = append(res.NewBadges, s.unlockAchievements(st, childID)...)

		res.Card = card
		res.Balance = st.Balances[childID]
		res.DrawCount = st.DrawCount[childID]

		log.WithFields(log.Fields{
			"child":  childID,
			"card":   card.ID,
			"rarity": card.Rarity,
			"cost":   cost,
		}).Info("card drawn")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// pickWeighted selects a card with probability weight/totalWeight; cards
// with zero weight are unreachable. A pool whose weights sum to zero falls
// back to a uniform pick so a fully zeroed config still produces a card.
func pickWeighted(intn func(int) int, pool []storage.RewardCard) storage.RewardCard {
	total := 0
	for i := range pool {
		if pool[i].Weight > 0 {
			total += pool[i].Weight
		}
	}
	if total == 0 {
		return pool[intn(len(pool))]
	}
	r := intn(total)
	for i := range pool {
		if pool[i].Weight <= 0 {
			continue
		}
		if r < pool[i].Weight {
			return pool[i]
		}
		r -= pool[i].Weight
	}
	// Unreachable: r < total by construction.
	return pool[len(pool)-1]
}

// UseCard consumes one owned copy of the card (oldest first). Holding zero
// copies is a rejection, not a silent no-op: the caller asked to spend
// something the child does not have.
func (s *Service) UseCard(ctx context.Context, childID, cardID string) error {
	return s.mutate(ctx, func(st *storage.State) error {
		st.EnsureChildMaps(childID)
		inv := st.Inventories[childID]
		for i := range inv {
			if inv[i].CardID == cardID {
				st.Inventories[childID] = append(inv[:i], inv[i+1:]...)
				log.WithFields(log.Fields{"child": childID, "card": cardID}).
					Info("card used")
				return nil
			}
		}
		return ErrNoSuchCard
	})
}
