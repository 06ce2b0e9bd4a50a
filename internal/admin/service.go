package admin

import (
	"math"
	"time"

	"github.com/quizia/backend/internal/models"
)

// frenchWeekdays maps time.Weekday to the abbreviations the dashboard
// chart uses.
var frenchWeekdays = [7]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."}

// activityFeedSize caps the call list shown on the dashboard.
const activityFeedSize = 10

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// GetStats aggregates the recent usage window into the dashboard payload.
func (s *Service) GetStats() (*models.AdminStatsResponse, error) {
	rows, err := s.store.ListRecentUsage()
	if err != nil {
		return nil, err
	}
	resp := ComputeStats(rows, time.Now())
	return &resp, nil
}

// Cleanup removes duplicate saved transcripts.
func (s *Service) Cleanup() (*models.CleanupResponse, error) {
	deleted, err := s.store.DeleteDuplicateConversations()
	if err != nil {
		return nil, err
	}
	return &models.CleanupResponse{
		Success:      true,
		DeletedCount: deleted,
		Message:      "Nettoyage terminé",
	}, nil
}

// ComputeStats reduces usage rows, newest first, into budget, totals,
// activity feed, 7-day chart and spend projection.
func ComputeStats(rows []UsageRow, now time.Time) models.AdminStatsResponse {
	var totalIn, totalOut int
	var consumed float64
	users := make(map[string]struct{})
	modelCounts := make(map[string]int)

	for _, r := range rows {
		totalIn += r.TokensIn
		totalOut += r.TokensOut
		consumed += CostFor(r.Model, r.TokensIn, r.TokensOut)
		users[r.UserID] = struct{}{}
		modelCounts[r.Model]++
	}

	mostUsed := ""
	best := 0
	for model, n := range modelCounts {
		if n > best || (n == best && model < mostUsed) {
			mostUsed = model
			best = n
		}
	}

	avgPerCall := 0.0
	if len(rows) > 0 {
		avgPerCall = consumed / float64(len(rows))
	}

	feed := make([]models.APICall, 0, activityFeedSize)
	for _, r := range rows {
		if len(feed) == activityFeedSize {
			break
		}
		user := r.UserID
		if len(user) > 8 {
			user = user[:8]
		}
		feed = append(feed, models.APICall{
			Date:      r.CreatedAt.Format("02/01 15:04"),
			User:      user,
			Model:     r.Model,
			TokensIn:  r.TokensIn,
			TokensOut: r.TokensOut,
			Cost:      CostFor(r.Model, r.TokensIn, r.TokensOut),
			Type:      r.Type,
		})
	}

	chart := buildChart(rows, now)

	remaining := TotalBudget - consumed
	percentage := 0.0
	if TotalBudget > 0 {
		percentage = consumed / TotalBudget * 100
	}

	return models.AdminStatsResponse{
		Budget: models.BudgetStats{
			Total:      TotalBudget,
			Consumed:   consumed,
			Remaining:  remaining,
			Percentage: percentage,
		},
		Stats: models.UsageStats{
			TotalTokensIn:  totalIn,
			TotalTokensOut: totalOut,
			TotalCalls:     len(rows),
			AvgCostPerCall: avgPerCall,
			ActiveUsers:    len(users),
			MostUsedModel:  mostUsed,
		},
		APICalls:   feed,
		ChartData:  chart,
		Projection: projectSpend(rows, consumed, remaining, now),
	}
}

// buildChart buckets the last 7 days of spend by French weekday
// abbreviation, oldest day first.
func buildChart(rows []UsageRow, now time.Time) []models.DayCost {
	chart := make([]models.DayCost, 7)
	dayIndex := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i-6)
		key := day.Format("2006-01-02")
		chart[i] = models.DayCost{Day: frenchWeekdays[day.Weekday()]}
		dayIndex[key] = i
	}
	for _, r := range rows {
		if i, ok := dayIndex[r.CreatedAt.Format("2006-01-02")]; ok {
			chart[i].Cost += CostFor(r.Model, r.TokensIn, r.TokensOut)
		}
	}
	return chart
}

// projectSpend estimates how many days the remaining budget lasts at the
// observed daily rate. 999 stands in for "no measurable spend yet".
func projectSpend(rows []UsageRow, consumed, remaining float64, now time.Time) models.Projection {
	if len(rows) == 0 || consumed <= 0 {
		return models.Projection{DaysRemaining: 999, AvgDailyCost: 0}
	}

	earliest := rows[0].CreatedAt
	for _, r := range rows {
		if r.CreatedAt.Before(earliest) {
			earliest = r.CreatedAt
		}
	}
	days := int(now.Sub(earliest).Hours() / 24)
	if days < 1 {
		days = 1
	}
	avgDaily := consumed / float64(days)

	daysRemaining := 999
	if avgDaily > 0 && remaining > 0 {
		daysRemaining = int(math.Ceil(remaining / avgDaily))
	} else if remaining <= 0 {
		daysRemaining = 0
	}

	return models.Projection{DaysRemaining: daysRemaining, AvgDailyCost: avgDaily}
}
