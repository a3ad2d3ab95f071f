package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/ptomo194059/family-growth/internal/storage"
)

// Service owns the reward-economy state. All mutations go through a single
// mutex (CLI calls against the cron poll) and every successful mutation is
// persisted before the call returns; a failed operation leaves the state
// untouched because each operation validates before it writes.
type Service struct {
	mu      sync.Mutex
	store   *storage.Store
	state   *storage.State
	version int64

	rng *rand.Rand
	now func() time.Time
}

// NewService loads the persisted state, seeding defaults on first run.
func NewService(ctx context.Context, store *storage.Store) (*Service, error) {
	s := &Service{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}

	st, version, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if st == nil {
		st = newDefaultState(s.now())
		version, err = store.Save(ctx, st, 0)
		if err != nil {
			return nil, fmt.Errorf("seed state: %w", err)
		}
		log.Info("seeded fresh state with default configuration")
	}
	s.state = st
	s.version = version
	return s, nil
}

// mutate runs fn against the state and persists the result. fn must validate
// before mutating so a returned error means nothing changed.
func (s *Service) mutate(ctx context.Context, fn func(st *storage.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.state); err != nil {
		return err
	}
	v, err := s.store.Save(ctx, s.state, s.version)
	if err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	s.version = v
	return nil
}

// Snapshot returns a deep copy of the current state for read-only use
// (status output, TUI, export). Callers never see live internals.
func (s *Service) Snapshot() *storage.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(s.state)
	if err != nil {
		// State is plain data; marshal cannot fail outside of a bug.
		panic("snapshot encode: " + err.Error())
	}
	var copied storage.State
	if err := json.Unmarshal(raw, &copied); err != nil {
		panic("snapshot decode: " + err.Error())
	}
	return &copied
}

// ActiveChildID returns the currently selected child id.
func (s *Service) ActiveChildID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ActiveChildID
}

// Children returns the child roster.
func (s *Service) Children() []storage.Child {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]storage.Child, len(s.state.Children))
	copy(out, s.state.Children)
	return out
}

// SetActiveChild selects which child subsequent UI operations target.
func (s *Service) SetActiveChild(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *storage.State) error {
		if st.FindChild(id) == nil {
			return ErrChildNotFound
		}
		st.ActiveChildID = id
		return nil
	})
}

// AddChild creates a new child with default-initialized per-child state.
func (s *Service) AddChild(ctx context.Context, name string) (storage.Child, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.Child{}, fmt.Errorf("child name is required")
	}
	child := storage.Child{ID: uuid.NewString(), Name: name}
	err := s.mutate(ctx, func(st *storage.State) error {
		st.Children = append(st.Children, child)
		st.EnsureChildMaps(child.ID)
		st.DailyReward[child.ID] = DefaultDailyReward
		st.WeeklyReward[child.ID] = DefaultWeeklyReward
		st.DrawCost[child.ID] = DefaultDrawCost
		if st.ActiveChildID == "" {
			st.ActiveChildID = child.ID
		}
		return nil
	})
	if err != nil {
		return storage.Child{}, err
	}
	log.WithFields(log.Fields{"child": child.ID, "name": name}).Info("child added")
	return child, nil
}

// RenameChild updates a child's display name.
func (s *Service) RenameChild(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("child name is required")
	}
	return s.mutate(ctx, func(st *storage.State) error {
		c := st.FindChild(id)
		if c == nil {
			return ErrChildNotFound
		}
		c.Name = name
		return nil
	})
}

// RemoveChild deletes a child and prunes every per-child map so no orphaned
// keys survive. The active selection falls back to the first remaining child.
func (s *Service) RemoveChild(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(st *storage.State) error {
		idx := -1
		for i := range st.Children {
			if st.Children[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrChildNotFound
		}
		st.Children = append(st.Children[:idx], st.Children[idx+1:]...)
		st.PruneChild(id)
		if st.ActiveChildID == id {
			st.ActiveChildID = ""
			if len(st.Children) > 0 {
				st.ActiveChildID = st.Children[0].ID
			}
		}
		return nil
	})
	if err == nil {
		log.WithField("child", id).Info("child removed")
	}
	return err
}

// SetDailyList replaces a child's daily task list. Config edits apply
// immediately; claim bookkeeping is untouched because payouts are frozen at
// grant time.
func (s *Service) SetDailyList(ctx context.Context, childID string, tasks []storage.DailyTask) error {
	return s.mutate(ctx, func(st *storage.State) error {
		st.EnsureChildMaps(childID)
		for i := range tasks {
			if tasks[i].ID == "" {
				tasks[i].ID = uuid.NewString()
			}
			if tasks[i].Points < 0 {
				tasks[i].Points = 0
			}
		}
		st.Daily[childID] = tasks
		return nil
	})
}

// SetWeeklyList replaces a child's weekly task list.
func (s *Service) SetWeeklyList(ctx context.Context, childID string, tasks []storage.WeeklyTask) error {
	return s.mutate(ctx, func(st *storage.State) error {
		st.EnsureChildMaps(childID)
		for i := range tasks {
			if tasks[i].ID == "" {
				tasks[i].ID = uuid.NewString()
			}
			if tasks[i].Points < 0 {
				tasks[i].Points = 0
			}
			if tasks[i].Target < 1 {
				tasks[i].Target = 1
			}
			if tasks[i].Count < 0 {
				tasks[i].Count = 0
			}
		}
		st.Weekly[childID] = tasks
		return nil
	})
}

// SetDailyReward sets the payout for completing all daily tasks. Affects
// future grants only; an already-recorded payout reverses at its own amount.
func (s *Service) SetDailyReward(ctx context.Context, childID string, amount int) error {
	return s.mutate(ctx, func(st *storage.State) error {
		st.EnsureChildMaps(childID)
		st.DailyReward[childID] = maxInt(0, amount)
		return nil
	})
}

// SetWeeklyReward sets the payout for meeting all weekly targets.
func (s *Service) SetWeeklyReward(ctx context.Context, childID string, amount int) error {
	return s.mutate(ctx, func(st *storage.State) error {
		st.EnsureChildMaps(childID)
		st.WeeklyReward[childID] = maxInt(0, amount)
		return nil
	})
}

// SetDrawCost sets the price of one gacha draw for a child.
func (s *Service) SetDrawCost(ctx context.Context, childID string, cost int) error {
	return s.mutate(ctx, func(st *storage.State) error {
		st.EnsureChildMaps(childID)
		st.DrawCost[childID] = maxInt(0, cost)
		return nil
	})
}

// SetExchangeRate sets how many stars buy one dollar. Floored at 1.
func (s *Service) SetExchangeRate(ctx context.Context, rate int) error {
	return s.mutate(ctx, func(st *storage.State) error {
		st.ExchangeRate = maxInt(1, rate)
		return nil
	})
}

// SetRewardPool replaces the card pool, normalizing rarities and flooring
// weights at zero the way the settings editor does.
func (s *Service) SetRewardPool(ctx context.Context, cards []storage.RewardCard) error {
	return s.mutate(ctx, func(st *storage.State) error {
		for i := range cards {
			if cards[i].ID == "" {
				cards[i].ID = uuid.NewString()
			}
			cards[i].Rarity = string(ParseRarity(cards[i].Rarity))
			cards[i].Weight = maxInt(0, cards[i].Weight)
		}
		st.RewardPool = cards
		return nil
	})
}

// SetShopConfig replaces the shop catalogs.
func (s *Service) SetShopConfig(ctx context.Context, cfg storage.ShopConfig) error {
	return s.mutate(ctx, func(st *storage.State) error {
		st.ShopConfig = cfg
		return nil
	})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
