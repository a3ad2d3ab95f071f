package engine

import (
	log "github.com/sirupsen/logrus"

	"github.com/ptomo194059/family-growth/internal/storage"
)

// Achievement evaluation. Metrics are recomputed from live state on every
// relevant action; any definition whose target is met unlocks as a badge
// keyed "achv-<id>". Badge ids are the idempotency key: an unlock is never
// duplicated and never re-dated, so an achievement stays earned even if the
// metric later drops (balance spent back down, streak broken).

// streakLookback bounds the backward walk; history is clamped to the same
// window anyway.
const streakLookback = 60

// MetricsFor returns the four live metric values for a child.
func (s *Service) MetricsFor(childID string) Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metricsLocked(s.state, childID)
}

func (s *Service) metricsLocked(st *storage.State, childID string) Metrics {
	return Metrics{
		TotalCompleted: st.TotalCompleted[childID],
		Streak:         s.streakLocked(st, childID),
		Stars:          s.starsLifetimeLocked(st, childID),
		Balance:        st.Balances[childID],
	}
}

// TodayStars is the display/streak star total for today: points of done
// daily tasks plus today's weekly contribution. Distinct from the spendable
// star wallet.
func (s *Service) TodayStars(childID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return todayStars(s.state, childID)
}

func todayStars(st *storage.State, childID string) int {
	sum := st.TodayWeeklyStars[childID]
	for _, t := range st.Daily[childID] {
		if t.Done {
			sum += t.Points
		}
	}
	return sum
}

// Streak counts consecutive trailing days with nonzero stars, today
// included (using today's live, not-yet-snapshotted total).
func (s *Service) Streak(childID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streakLocked(s.state, childID)
}

func (s *Service) streakLocked(st *storage.State, childID string) int {
	byDate := make(map[string]int, len(st.History[childID]))
	for _, h := range st.History[childID] {
		byDate[h.DateISO] = h.Stars
	}

	now := s.now()
	count := 0
	for i := 0; i < streakLookback; i++ {
		day := now.AddDate(0, 0, -i)
		var stars int
		if i == 0 {
			stars = todayStars(st, childID)
		} else {
			stars = byDate[DateKey(day)] // missing day reads as zero
		}
		if stars <= 0 {
			break
		}
		count++
	}
	return count
}

func (s *Service) starsLifetimeLocked(st *storage.State, childID string) int {
	sum := todayStars(st, childID)
	for _, h := range st.History[childID] {
		sum += h.Stars
	}
	return sum
}

// unlockAchievements awards a badge for every achievement whose metric meets
// its target. Returns the badges that are new this call.
func (s *Service) unlockAchievements(st *storage.State, childID string) []storage.Badge {
	metrics := s.metricsLocked(st, childID)
	var newly []storage.Badge
	for _, a := range st.Achievements {
		if metrics.Value(Metric(a.Metric)) < a.Target {
			continue
		}
		b, ok := s.awardBadge(st, childID, storage.Badge{
			ID:          "achv-" + a.ID,
			Title:       a.Title,
			Icon:        a.Icon,
			Description: a.Desc,
		})
		if ok {
			newly = append(newly, b)
			log.WithFields(log.Fields{
				"child":       childID,
				"achievement": a.ID,
			}).Info("achievement unlocked")
		}
	}
	return newly
}

// awardBadge appends the badge unless one with the same id already exists.
// EarnedAt is stamped here and never updated afterwards.
func (s *Service) awardBadge(st *storage.State, childID string, b storage.Badge) (storage.Badge, bool) {
	for _, have := range st.Badges[childID] {
		if have.ID == b.ID {
			return storage.Badge{}, false
		}
	}
	b.EarnedAt = s.now()
	st.Badges[childID] = append(st.Badges[childID], b)
	return b, true
}

// Badges returns the child's earned badges.
func (s *Service) Badges(childID string) []storage.Badge {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]storage.Badge, len(s.state.Badges[childID]))
	copy(out, s.state.Badges[childID])
	return out
}
