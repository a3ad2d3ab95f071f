package engine

import (
	log "github.com/sirupsen/logrus"

	"github.com/ptomo194059/family-growth/internal/storage"
)

// Full-completion reward claims. Daily and weekly share one algorithm: when
// the list transitions to fully complete and the period is unclaimed, the
// configured reward is paid and its amount frozen; when it transitions back
// to incomplete while claimed, exactly the frozen amount is taken back. The
// settle functions are no-ops otherwise, so they are safe to run after every
// single mutation.

// dailyAllDone reports whether every daily task is done. An empty list never
// counts as complete: no reward for having zero tasks.
func dailyAllDone(list []storage.DailyTask) bool {
	if len(list) == 0 {
		return false
	}
	for i := range list {
		if !list[i].Done {
			return false
		}
	}
	return true
}

// weeklyAllMet reports whether every weekly counter has reached its target,
// with targets floored at 1. An empty list never counts as complete.
func weeklyAllMet(list []storage.WeeklyTask) bool {
	if len(list) == 0 {
		return false
	}
	for i := range list {
		target := list[i].Target
		if target < 1 {
			target = 1
		}
		if list[i].Count < target {
			return false
		}
	}
	return true
}

func (s *Service) settleDailyClaim(st *storage.State, childID string) (granted, revoked int) {
	complete := dailyAllDone(st.Daily[childID])
	claimed := st.DailyClaimed[childID]

	switch {
	case complete && !claimed:
		reward := st.DailyReward[childID]
		st.Balances[childID] += reward
		st.DailyClaimed[childID] = true
		st.DailyPayout[childID] = reward
		log.WithFields(log.Fields{"child": childID, "reward": reward}).
			Info("daily full-completion reward granted")
		return reward, 0
	case !complete && claimed:
		// Reverse with the frozen payout, not a fresh config lookup: the
		// configured reward may have changed since the grant.
		payout := st.DailyPayout[childID]
		st.Balances[childID] = maxInt(0, st.Balances[childID]-payout)
		st.DailyClaimed[childID] = false
		st.DailyPayout[childID] = 0
		log.WithFields(log.Fields{"child": childID, "payout": payout}).
			Info("daily reward revoked")
		return 0, payout
	}
	return 0, 0
}

func (s *Service) settleWeeklyClaim(st *storage.State, childID string) (granted, revoked int) {
	complete := weeklyAllMet(st.Weekly[childID])
	claimed := st.WeeklyClaimed[childID]

	switch {
	case complete && !claimed:
		reward := st.WeeklyReward[childID]
		st.Balances[childID] += reward
		st.WeeklyClaimed[childID] = true
		st.WeeklyPayout[childID] = reward
		log.WithFields(log.Fields{"child": childID, "reward": reward}).
			Info("weekly full-completion reward granted")
		return reward, 0
	case !complete && claimed:
		payout := st.WeeklyPayout[childID]
		st.Balances[childID] = maxInt(0, st.Balances[childID]-payout)
		st.WeeklyClaimed[childID] = false
		st.WeeklyPayout[childID] = 0
		log.WithFields(log.Fields{"child": childID, "payout": payout}).
			Info("weekly reward revoked")
		return 0, payout
	}
	return 0, 0
}
