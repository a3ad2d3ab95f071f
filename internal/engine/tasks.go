package engine

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/ptomo194059/family-growth/internal/storage"
)

// ToggleResult reports the effects of flipping a daily task.
type ToggleResult struct {
	Found          bool
	Task           storage.DailyTask
	AllDone        bool
	RewardGranted  int // dollars paid out by this toggle, 0 if none
	RewardRevoked  int // dollars taken back by this toggle, 0 if none
	NewBadges      []storage.Badge
	StarWallet     int
	Balance        int
	TotalCompleted int
}

// WeeklyResult reports the effects of stepping a weekly task counter.
type WeeklyResult struct {
	Found         bool
	Task          storage.WeeklyTask
	AllMet        bool
	RewardGranted int
	RewardRevoked int
	NewBadges     []storage.Badge
	StarWallet    int
	Balance       int
}

// ToggleDaily flips a daily task's done flag. Completing awards the task's
// points into the star wallet and bumps the lifetime completed counter;
// un-completing reverses both, never below zero. The claim evaluator and the
// achievement evaluator run inside the same transaction.
func (s *Service) ToggleDaily(ctx context.Context, childID, taskID string) (*ToggleResult, error) {
	res := &ToggleResult{}
	err := s.mutate(ctx, func(st *storage.State) error {
		st.EnsureChildMaps(childID)
		list := st.Daily[childID]
		idx := -1
		for i := range list {
			if list[i].ID == taskID {
				idx = i
				break
			}
		}
		if idx < 0 {
			// Unknown task ids are ignored by contract; the log keeps
			// misbehaving callers visible.
			log.WithFields(log.Fields{"child": childID, "task": taskID}).
				Warn("unknown daily task; toggle ignored")
			return nil
		}

		t := &list[idx]
		t.Done = !t.Done
		if t.Done {
			st.TotalCompleted[childID]++
			st.StarWallet[childID] += t.Points
		} else {
			st.TotalCompleted[childID] = maxInt(0, st.TotalCompleted[childID]-1)
			st.StarWallet[childID] = maxInt(0, st.StarWallet[childID]-t.Points)
		}

		res.RewardGranted, res.RewardRevoked = s.settleDailyClaim(st, childID)
		res.NewBadges = s.unlockAchievements(st, childID)

		res.Found = true
		res.Task = *t
		res.AllDone = dailyAllDone(list)
		res.StarWallet = st.StarWallet[childID]
		res.Balance = st.Balances[childID]
		res.TotalCompleted = st.TotalCompleted[childID]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// IncWeekly advances a weekly task counter by one, mirroring the task's
// points into both today's weekly-star accumulator and the star wallet.
func (s *Service) IncWeekly(ctx context.Context, childID, taskID string) (*WeeklyResult, error) {
	return s.stepWeekly(ctx, childID, taskID, +1)
}

// DecWeekly steps a weekly counter back by one, clamped at zero. It reverses
// the star mirroring and can revoke a just-granted weekly reward.
func (s *Service) DecWeekly(ctx context.Context, childID, taskID string) (*WeeklyResult, error) {
	return s.stepWeekly(ctx, childID, taskID, -1)
}

func (s *Service) stepWeekly(ctx context.Context, childID, taskID string, delta int) (*WeeklyResult, error) {
	res := &WeeklyResult{}
	err := s.mutate(ctx, func(st *storage.State) error {
		st.EnsureChildMaps(childID)
		list := st.Weekly[childID]
		idx := -1
		for i := range list {
			if list[i].ID == taskID {
				idx = i
				break
			}
		}
		if idx < 0 {
			log.WithFields(log.Fields{"child": childID, "task": taskID}).
				Warn("unknown weekly task; step ignored")
			return nil
		}

		t := &list[idx]
		res.Found = true
		if delta < 0 && t.Count == 0 {
			// Already at the floor; nothing to undo.
			res.Task = *t
			res.AllMet = weeklyAllMet(list)
			res.StarWallet = st.StarWallet[childID]
			res.Balance = st.Balances[childID]
			return nil
		}

		t.Count += delta
		if delta > 0 {
			st.TodayWeeklyStars[childID] += t.Points
			st.StarWallet[childID] += t.Points
			st.TotalCompleted[childID]++
		} else {
			st.TodayWeeklyStars[childID] = maxInt(0, st.TodayWeeklyStars[childID]-t.Points)
			st.StarWallet[childID] = maxInt(0, st.StarWallet[childID]-t.Points)
			st.TotalCompleted[childID] = maxInt(0, st.TotalCompleted[childID]-1)
		}

		res.RewardGranted, res.RewardRevoked = s.settleWeeklyClaim(st, childID)
		res.NewBadges = s.unlockAchievements(st, childID)

		res.Task = *t
		res.AllMet = weeklyAllMet(list)
		res.StarWallet = st.StarWallet[childID]
		res.Balance = st.Balances[childID]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
