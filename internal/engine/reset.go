package engine

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ptomo194059/family-growth/internal/storage"
)

// historyKeep bounds per-child history; oldest entries are evicted first.
const historyKeep = 60

// EnsureResets is the boundary-crossing pass. It runs at startup and on
// every scheduler tick, tolerates being called arbitrarily often, and
// processes each day/week boundary exactly once because it re-checks the
// stored markers before acting.
//
// On day rollover it snapshots the closing day from the pre-reset state,
// then clears daily flags, today's weekly stars and the daily claim. On week
// rollover (Monday 00:00 local) it zeroes weekly counters and the weekly
// claim. The very first run only initializes the markers: there is no
// previous day to snapshot.
func (s *Service) EnsureResets(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	now := s.now()
	changed := false

	today := DateKey(now)
	if st.LastDailyReset != today {
		if st.LastDailyReset != "" {
			closing := st.LastDailyReset
			for _, c := range st.Children {
				st.EnsureChildMaps(c.ID)
				dList := st.Daily[c.ID]
				completed := 0
				stars := st.TodayWeeklyStars[c.ID]
				for i := range dList {
					if dList[i].Done {
						completed++
						stars += dList[i].Points
					}
				}
				entry := storage.DayLog{
					DateISO:   closing,
					Stars:     stars,
					Completed: completed,
					Total:     len(dList),
				}
				hist := append(st.History[c.ID], entry)
				if len(hist) > historyKeep {
					hist = hist[len(hist)-historyKeep:]
				}
				st.History[c.ID] = hist
			}
			log.WithField("date", closing).Info("daily snapshot written")
		}

		for childID, list := range st.Daily {
			for i := range list {
				list[i].Done = false
			}
			st.Daily[childID] = list
		}
		for childID := range st.TodayWeeklyStars {
			st.TodayWeeklyStars[childID] = 0
		}
		for childID := range st.DailyClaimed {
			st.DailyClaimed[childID] = false
		}
		for childID := range st.DailyPayout {
			st.DailyPayout[childID] = 0
		}
		st.LastDailyReset = today
		changed = true
		log.WithField("date", today).Info("daily reset complete")
	}

	weekStart := WeekKey(now)
	if st.LastWeeklyReset != weekStart {
		for childID, list := range st.Weekly {
			for i := range list {
				list[i].Count = 0
			}
			st.Weekly[childID] = list
		}
		for childID := range st.WeeklyClaimed {
			st.WeeklyClaimed[childID] = false
		}
		for childID := range st.WeeklyPayout {
			st.WeeklyPayout[childID] = 0
		}
		st.LastWeeklyReset = weekStart
		changed = true
		log.WithField("week", weekStart).Info("weekly reset complete")
	}

	if !changed {
		return nil
	}
	v, err := s.store.Save(ctx, st, s.version)
	if err != nil {
		return fmt.Errorf("persist reset: %w", err)
	}
	s.version = v
	return nil
}
