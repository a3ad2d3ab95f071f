package engine

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/ptomo194059/family-growth/internal/storage"
)

// Wallet operations. A child has two independent balances: cash and spendable
// stars. All four operations are atomic per child; a failed check mutates
// nothing. Cash spending feeds the month bucket, star spending and currency
// exchange do not.

// AddBalance credits cash (parental top-up). Not recorded as spend.
func (s *Service) AddBalance(ctx context.Context, childID string, amount int) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	return s.mutate(ctx, func(st *storage.State) error {
		st.EnsureChildMaps(childID)
		st.Balances[childID] += amount
		s.unlockAchievements(st, childID)
		return nil
	})
}

// SpendCash debits cash and books the amount into the current month's spend
// bucket. Fails with ErrInsufficientFunds when the balance cannot cover it.
func (s *Service) SpendCash(ctx context.Context, childID string, amount int) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	return s.mutate(ctx, func(st *storage.State) error {
		st.EnsureChildMaps(childID)
		if st.Balances[childID] < amount {
			return ErrInsufficientFunds
		}
		st.Balances[childID] -= amount
		st.MonthSpent[childID][MonthKey(s.now())] += amount
		s.unlockAchievements(st, childID)
		return nil
	})
}

// SpendStars debits the star wallet only. Star spending is exempt from the
// cash budget, so the month bucket is untouched.
func (s *Service) SpendStars(ctx context.Context, childID string, amount int) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	return s.mutate(ctx, func(st *storage.State) error {
		st.EnsureChildMaps(childID)
		if st.StarWallet[childID] < amount {
			return ErrInsufficientStars
		}
		st.StarWallet[childID] -= amount
		return nil
	})
}

// ExchangeStars converts stars to cash at the configured rate. The amount
// must be a positive multiple of the rate; the credit is amount/rate whole
// dollars. Exchange is not spending, so no month bucket is touched.
func (s *Service) ExchangeStars(ctx context.Context, childID string, stars int) error {
	return s.mutate(ctx, func(st *storage.State) error {
		st.EnsureChildMaps(childID)
		rate := st.ExchangeRate
		if rate < 1 {
			rate = 1
		}
		if stars <= 0 || stars%rate != 0 {
			return ErrInvalidExchange
		}
		if st.StarWallet[childID] < stars {
			return ErrInsufficientStars
		}
		st.StarWallet[childID] -= stars
		st.Balances[childID] += stars / rate
		s.unlockAchievements(st, childID)
		log.WithFields(log.Fields{
			"child":   childID,
			"stars":   stars,
			"dollars": stars / rate,
		}).Info("stars exchanged")
		return nil
	})
}

// BuyWithMoney purchases qty of a catalog item with cash.
func (s *Service) BuyWithMoney(ctx context.Context, childID, itemID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	return s.mutate(ctx, func(st *storage.State) error {
		st.EnsureChildMaps(childID)
		var item *storage.MoneyItem
		for i := range st.ShopConfig.MoneyItems {
			if st.ShopConfig.MoneyItems[i].ID == itemID {
				item = &st.ShopConfig.MoneyItems[i]
				break
			}
		}
		if item == nil {
			log.WithFields(log.Fields{"child": childID, "item": itemID}).
				Warn("unknown shop item; purchase ignored")
			return nil
		}
		total := item.Price * qty
		if st.Balances[childID] < total {
			return ErrInsufficientFunds
		}
		st.Balances[childID] -= total
		st.MonthSpent[childID][MonthKey(s.now())] += total
		s.unlockAchievements(st, childID)
		return nil
	})
}

// BuyWithStars purchases qty of a catalog item with stars.
func (s *Service) BuyWithStars(ctx context.Context, childID, itemID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	return s.mutate(ctx, func(st *storage.State) error {
		st.EnsureChildMaps(childID)
		var item *storage.StarItem
		for i := range st.ShopConfig.StarItems {
			if st.ShopConfig.StarItems[i].ID == itemID {
				item = &st.ShopConfig.StarItems[i]
				break
			}
		}
		if item == nil {
			log.WithFields(log.Fields{"child": childID, "item": itemID}).
				Warn("unknown shop item; purchase ignored")
			return nil
		}
		total := item.Stars * qty
		if st.StarWallet[childID] < total {
			return ErrInsufficientStars
		}
		st.StarWallet[childID] -= total
		return nil
	})
}

// MonthSpent returns the cash spent by the child in the current month.
func (s *Service) MonthSpent(childID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.MonthSpent[childID][MonthKey(s.now())]
}
