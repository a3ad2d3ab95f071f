package engine

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ptomo194059/family-growth/internal/storage"
)

// Built-in configuration used to seed a fresh installation. Everything here
// is editable afterwards through the config setters.

const (
	DefaultDailyReward  = 20
	DefaultWeeklyReward = 50
	DefaultDrawCost     = 10
	DefaultExchangeRate = 10 // stars per dollar
	DefaultPIN          = "0000"
)

// DrawMilestones are the lifetime draw counts that earn a milestone badge.
var DrawMilestones = []int{10, 50, 100}

func defaultDailyTasks() []storage.DailyTask {
	return []storage.DailyTask{
		{ID: "d1", Title: "Brush teeth + pack school bag", Points: 2},
		{ID: "d2", Title: "Read 15 minutes", Points: 3},
	}
}

func defaultWeeklyTasks() []storage.WeeklyTask {
	return []storage.WeeklyTask{
		{ID: "w1", Title: "Clean up the room", Points: 5, Target: 2},
		{ID: "w2", Title: "Chores (trash / set table)", Points: 4, Target: 3},
	}
}

// defaultRewardPool spreads weights 60/28/10/2 across the rarity tiers.
func defaultRewardPool() []storage.RewardCard {
	return []storage.RewardCard{
		{ID: "hug", Name: "Hug Coupon", Rarity: "N", Weight: 35, Icon: "🤗"},
		{ID: "story", Name: "Extra bedtime story", Rarity: "N", Weight: 25, Icon: "📖"},
		{ID: "snack", Name: "Healthy snack", Rarity: "R", Weight: 18, Icon: "🍪"},
		{ID: "park", Name: "Park playtime", Rarity: "R", Weight: 10, Icon: "🛝"},
		{ID: "game", Name: "Game time +30 min", Rarity: "SR", Weight: 10, Icon: "🎮"},
		{ID: "adventure", Name: "Family adventure day", Rarity: "SSR", Weight: 2, Icon: "🎡"},
	}
}

func defaultShopConfig() storage.ShopConfig {
	return storage.ShopConfig{
		MoneyItems: []storage.MoneyItem{
			{ID: "toy-small", Name: "Small toy", Price: 30, Note: "one-time"},
			{ID: "snack", Name: "Snack coupon", Price: 15, Note: "pick one treat"},
			{ID: "movie", Name: "Family movie night snacks", Price: 50},
		},
		StarItems: []storage.StarItem{
			{ID: "sticker-pack", Name: "Sticker pack", Stars: 8},
			{ID: "story-plus", Name: "Bedtime story +1", Stars: 10},
			{ID: "choose-dinner", Name: "Pick the dinner", Stars: 20},
			{ID: "screen-time", Name: "Game time 30 min", Stars: 25},
		},
	}
}

func defaultAchievements() []storage.Achievement {
	return []storage.Achievement{
		{ID: "tc_10", Title: "Getting Started", Desc: "Complete 10 tasks total", Target: 10, Metric: "totalCompleted", Icon: "🎯"},
		{ID: "tc_50", Title: "Keep Going", Desc: "Complete 50 tasks total", Target: 50, Metric: "totalCompleted", Icon: "💪"},
		{ID: "tc_100", Title: "Task Master", Desc: "Complete 100 tasks total", Target: 100, Metric: "totalCompleted", Icon: "🏆"},
		{ID: "streak_3", Title: "Habit Starter", Desc: "3-day streak", Target: 3, Metric: "streak", Icon: "🔥"},
		{ID: "streak_7", Title: "Weekly Winner", Desc: "7-day streak", Target: 7, Metric: "streak", Icon: "📅"},
		{ID: "streak_14", Title: "Two Weeks Strong", Desc: "14-day streak", Target: 14, Metric: "streak", Icon: "⚡"},
		{ID: "star_10", Title: "Star Collector", Desc: "Collect 10 stars", Target: 10, Metric: "stars", Icon: "⭐"},
		{ID: "balance_100", Title: "Little Tycoon", Desc: "Balance reaches $100", Target: 100, Metric: "balance", Icon: "💰"},
	}
}

// newDefaultState seeds a fresh install: two children with the stock task
// lists, stock pool/shop/achievements, and the default PIN hashed at rest.
func newDefaultState(now time.Time) *storage.State {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPIN), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on an invalid cost.
		panic("hash default pin: " + err.Error())
	}

	s := &storage.State{
		ActiveChildID: "c1",
		Children: []storage.Child{
			{ID: "c1", Name: "Mei"},
			{ID: "c2", Name: "Hua"},
		},
		RewardPool:   defaultRewardPool(),
		ShopConfig:   defaultShopConfig(),
		Achievements: defaultAchievements(),
		ExchangeRate: DefaultExchangeRate,
		PINHash:      string(hash),

		// First run: markers point at the current period so no phantom
		// snapshot is written for a day that never ran.
		LastDailyReset:  DateKey(now),
		LastWeeklyReset: WeekKey(now),
	}

	for _, c := range s.Children {
		s.EnsureChildMaps(c.ID)
		s.DailyReward[c.ID] = DefaultDailyReward
		s.WeeklyReward[c.ID] = DefaultWeeklyReward
		s.DrawCost[c.ID] = DefaultDrawCost
		s.Daily[c.ID] = defaultDailyTasks()
		s.Weekly[c.ID] = defaultWeeklyTasks()
	}
	return s
}
