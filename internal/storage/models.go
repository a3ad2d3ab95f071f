package storage

import "time"

// State is the full persisted document. It is stored as one JSON object under
// a single key, so a backup file's data block and the live state share a
// shape. All per-child collections are keyed by child id.
type State struct {
	ActiveChildID string                  `json:"activeChildId"`
	Children      []Child                 `json:"children"`
	Daily         map[string][]DailyTask  `json:"daily"`
	Weekly        map[string][]WeeklyTask `json:"weekly"`

	Balances   map[string]int `json:"balances"`
	StarWallet map[string]int `json:"starWallet"`

	// Weekly points earned today; folded into the day's snapshot at rollover.
	TodayWeeklyStars map[string]int `json:"todayWeeklyStars"`

	DailyReward   map[string]int  `json:"dailyFullCompleteReward"`
	WeeklyReward  map[string]int  `json:"weeklyFullCompleteReward"`
	DailyClaimed  map[string]bool `json:"dailyRewardClaimedToday"`
	WeeklyClaimed map[string]bool `json:"weeklyRewardClaimedThisWeek"`
	DailyPayout   map[string]int  `json:"dailyRewardPayoutToday"`
	WeeklyPayout  map[string]int  `json:"weeklyRewardPayoutThisWeek"`

	// Empty string means the marker was never set (first run).
	LastDailyReset  string `json:"lastDailyResetISO"`
	LastWeeklyReset string `json:"lastWeeklyResetISO"`

	History        map[string][]DayLog `json:"history"`
	TotalCompleted map[string]int      `json:"statsChoresCompleted"`

	RewardPool  []RewardCard           `json:"rewardPool"`
	DrawCost    map[string]int         `json:"drawCost"`
	DrawCount   map[string]int         `json:"drawCount"`
	Inventories map[string][]OwnedCard `json:"inventories"`
	Badges      map[string][]Badge     `json:"badges"`

	// Cash spent per child per "YYYY-MM" bucket. Star spending and currency
	// exchange are deliberately excluded.
	MonthSpent map[string]map[string]int `json:"monthSpent"`

	ShopConfig   ShopConfig    `json:"shopConfig"`
	ExchangeRate int           `json:"exchangeRateStarsPerDollar"`
	Achievements []Achievement `json:"achievementsConfig"`

	PINHash string `json:"pinCode"`
}

type Child struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DailyTask struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Points int    `json:"points"`
	Done   bool   `json:"done"`
}

type WeeklyTask struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Points int    `json:"points"`
	Target int    `json:"target"`
	Count  int    `json:"count"`
}

// DayLog is the snapshot written for a closing day at rollover.
type DayLog struct {
	DateISO   string `json:"dateISO"`
	Stars     int    `json:"stars"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

type RewardCard struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Weight int    `json:"weight"`
	Icon   string `json:"icon"`
}

type OwnedCard struct {
	CardID  string    `json:"cardId"`
	OwnedAt time.Time `json:"ownedAt"`
}

type Badge struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earnedAt"`
}

// Achievement is read-only configuration; unlocks are recorded as badges.
type Achievement struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Desc   string `json:"desc"`
	Target int    `json:"target"`
	Metric string `json:"metric"`
	Icon   string `json:"icon"`
}

type MoneyItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Note  string `json:"note,omitempty"`
}

type StarItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stars int    `json:"stars"`
	Note  string `json:"note,omitempty"`
}

type ShopConfig struct {
	MoneyItems []MoneyItem `json:"moneyItems"`
	StarItems  []StarItem  `json:"starItems"`
}

// EnsureChildMaps default-initializes every per-child map entry for id.
// Entities are created lazily on first reference, so every mutation path
// funnels through here before touching child-keyed state.
func (s *State) EnsureChildMaps(id string) {
	if s.Daily == nil {
		s.Daily = map[string][]DailyTask{}
	}
	if _, ok := s.Daily[id]; !ok {
		s.Daily[id] = []DailyTask{}
	}
	if s.Weekly == nil {
		s.Weekly = map[string][]WeeklyTask{}
	}
	if _, ok := s.Weekly[id]; !ok {
		s.Weekly[id] = []WeeklyTask{}
	}

	for _, m := range []*map[string]int{
		&s.Balances, &s.StarWallet, &s.TodayWeeklyStars,
		&s.DailyReward, &s.WeeklyReward, &s.DailyPayout, &s.WeeklyPayout,
		&s.TotalCompleted, &s.DrawCost, &s.DrawCount,
	} {
		if *m == nil {
			*m = map[string]int{}
		}
		if _, ok := (*m)[id]; !ok {
			(*m)[id] = 0
		}
	}

	if s.DailyClaimed == nil {
		s.DailyClaimed = map[string]bool{}
	}
	if s.WeeklyClaimed == nil {
		s.WeeklyClaimed = map[string]bool{}
	}
	if s.History == nil {
		s.History = map[string][]DayLog{}
	}
	if _, ok := s.History[id]; !ok {
		s.History[id] = []DayLog{}
	}
	if s.Inventories == nil {
		s.Inventories = map[string][]OwnedCard{}
	}
	if _, ok := s.Inventories[id]; !ok {
		s.Inventories[id] = []OwnedCard{}
	}
	if s.Badges == nil {
		s.Badges = map[string][]Badge{}
	}
	if _, ok := s.Badges[id]; !ok {
		s.Badges[id] = []Badge{}
	}
	if s.MonthSpent == nil {
		s.MonthSpent = map[string]map[string]int{}
	}
	if _, ok := s.MonthSpent[id]; !ok {
		s.MonthSpent[id] = map[string]int{}
	}
}

// PruneChild removes every per-child map entry for id, keeping the state
// free of orphaned keys after a child is deleted.
func (s *State) PruneChild(id string) {
	delete(s.Daily, id)
	delete(s.Weekly, id)
	delete(s.Balances, id)
	delete(s.StarWallet, id)
	delete(s.TodayWeeklyStars, id)
	delete(s.DailyReward, id)
	delete(s.WeeklyReward, id)
	delete(s.DailyClaimed, id)
	delete(s.WeeklyClaimed, id)
	delete(s.DailyPayout, id)
	delete(s.WeeklyPayout, id)
	delete(s.History, id)
	delete(s.TotalCompleted, id)
	delete(s.DrawCost, id)
	delete(s.DrawCount, id)
	delete(s.Inventories, id)
	delete(s.Badges, id)
	delete(s.MonthSpent, id)
}

// FindChild returns the child with the given id, or nil when absent.
func (s *State) FindChild(id string) *Child {
	for i := range s.Children {
		if s.Children[i].ID == id {
			return &s.Children[i]
		}
	}
	return nil
}
