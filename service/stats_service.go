package service

import (
	"sort"
	"time"

	"daybook/dao"
	"daybook/model"
)

// StatsService keeps the user_stats cache consistent with the entries
// table. The cache is never the source of truth; every field here is
// recomputed from entries on demand.
type StatsService struct {
	stats   *dao.StatsDAO
	entries *dao.EntryDAO
}

func NewStatsService(stats *dao.StatsDAO, entries *dao.EntryDAO) *StatsService {
	return &StatsService{stats: stats, entries: entries}
}

// RecalculateUserStats recomputes every aggregate from non-deleted entries
// and upserts the user_stats row.
func (s *StatsService) RecalculateUserStats(userID uint64) error {
	agg, err := s.stats.Aggregate(userID)
	if err != nil {
		return err
	}
	moods, err := s.stats.MoodCounts(userID)
	if err != nil {
		return err
	}
	dates, err := s.entries.DistinctEntryDates(userID)
	if err != nil {
		return err
	}
	current, longest := ComputeStreaks(dates, time.Now())

	return s.stats.UpsertUserStats(&model.UserStats{
		UserID:        userID,
		TotalEntries:  agg.TotalEntries,
		TotalWords:    agg.TotalWords,
		AvgWords:      agg.AvgWords,
		MostCommon:    mostCommonMood(moods),
		LastEntryDate: agg.LastEntryDate,
		CurrentStreak: current,
		LongestStreak: longest,
	})
}

// mostCommonMood returns the mode over mood counts. Ties break
// deterministically: highest count first, then lexicographically smallest
// mood name. Returns nil when the user has no moods recorded.
func mostCommonMood(counts []dao.MoodCount) *string {
	if len(counts) == 0 {
		return nil
	}
	sorted := make([]dao.MoodCount, len(counts))
	copy(sorted, counts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Mood < sorted[j].Mood
	})
	return &sorted[0].Mood
}

// Analytics is the full analytics-page payload.
type Analytics struct {
	Stats            *model.UserStats    `json:"stats"`
	MoodDistribution []dao.MoodCount     `json:"mood_distribution"`
	Calendar         []dao.CalendarDay   `json:"calendar"`
	Categories       []dao.CategoryUsage `json:"categories"`
	ThisMonthCount   int64               `json:"this_month_count"`
}

// UserAnalytics recomputes stats and gathers the dashboard aggregates.
func (s *StatsService) UserAnalytics(userID uint64) (*Analytics, error) {
	if err := s.RecalculateUserStats(userID); err != nil {
		return nil, err
	}
	stats, err := s.stats.GetUserStats(userID)
	if err != nil {
		return nil, err
	}
	dist, err := s.stats.MoodDistribution(userID, 30)
	if err != nil {
		return nil, err
	}
	calendar, err := s.stats.WritingCalendar(userID)
	if err != nil {
		return nil, err
	}
	categories, err := s.stats.CategoryBreakdown(userID)
	if err != nil {
		return nil, err
	}
	monthCount, err := s.stats.ThisMonthCount(userID)
	if err != nil {
		return nil, err
	}
	return &Analytics{
		Stats:            stats,
		MoodDistribution: dist,
		Calendar:         calendar,
		Categories:       categories,
		ThisMonthCount:   monthCount,
	}, nil
}
