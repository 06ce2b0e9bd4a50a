package admin

import (
	"testing"
	"time"
)

func TestComputeStats_Empty(t *testing.T) {
	resp := ComputeStats(nil, time.Now())

	if resp.Budget.Total != TotalBudget {
		t.Errorf("budget total = %f, want %f", resp.Budget.Total, TotalBudget)
	}
	if resp.Budget.Consumed != 0 || resp.Budget.Percentage != 0 {
		t.Errorf("empty window should consume nothing, got %+v", resp.Budget)
	}
	if resp.Stats.TotalCalls != 0 || resp.Stats.ActiveUsers != 0 {
		t.Errorf("empty window stats = %+v", resp.Stats)
	}
	if resp.Projection.DaysRemaining != 999 {
		t.Errorf("no spend should project the 999 sentinel, got %d", resp.Projection.DaysRemaining)
	}
	if len(resp.ChartData) != 7 {
		t.Errorf("chart should always have 7 days, got %d", len(resp.ChartData))
	}
}

func TestComputeStats_Totals(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rows := []UsageRow{
		{UserID: "user-aaaaaaaa", Model: "gpt-4o-mini", TokensIn: 1000, TokensOut: 500, Type: "chat_usage", CreatedAt: now},
		{UserID: "user-aaaaaaaa", Model: "gpt-4o-mini", TokensIn: 2000, TokensOut: 1000, Type: "quiz_analysis", CreatedAt: now.Add(-time.Hour)},
		{UserID: "user-bbbbbbbb", Model: "gpt-4o", TokensIn: 500, TokensOut: 200, Type: "chat_usage", CreatedAt: now.Add(-2 * time.Hour)},
	}

	resp := ComputeStats(rows, now)

	if resp.Stats.TotalTokensIn != 3500 || resp.Stats.TotalTokensOut != 1700 {
		t.Errorf("token totals = %d/%d, want 3500/1700", resp.Stats.TotalTokensIn, resp.Stats.TotalTokensOut)
	}
	if resp.Stats.TotalCalls != 3 {
		t.Errorf("total calls = %d, want 3", resp.Stats.TotalCalls)
	}
	if resp.Stats.ActiveUsers != 2 {
		t.Errorf("active users = %d, want 2", resp.Stats.ActiveUsers)
	}
	if resp.Stats.MostUsedModel != "gpt-4o-mini" {
		t.Errorf("most used model = %q, want gpt-4o-mini", resp.Stats.MostUsedModel)
	}

	wantConsumed := CostFor("gpt-4o-mini", 1000, 500) +
		CostFor("gpt-4o-mini", 2000, 1000) +
		CostFor("gpt-4o", 500, 200)
	if !almostEqual(resp.Budget.Consumed, wantConsumed) {
		t.Errorf("consumed = %f, want %f", resp.Budget.Consumed, wantConsumed)
	}
	if !almostEqual(resp.Budget.Remaining, TotalBudget-wantConsumed) {
		t.Errorf("remaining = %f, want %f", resp.Budget.Remaining, TotalBudget-wantConsumed)
	}
	if !almostEqual(resp.Stats.AvgCostPerCall, wantConsumed/3) {
		t.Errorf("avg cost per call = %f, want %f", resp.Stats.AvgCostPerCall, wantConsumed/3)
	}
}

func TestComputeStats_ActivityFeed(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rows := make([]UsageRow, 15)
	for i := range rows {
		rows[i] = UsageRow{
			UserID:    "0123456789abcdef",
			Model:     "gpt-4o-mini",
			TokensIn:  100,
			TokensOut: 50,
			Type:      "chat_usage",
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		}
	}

	resp := ComputeStats(rows, now)

	if len(resp.APICalls) != 10 {
		t.Fatalf("activity feed = %d rows, want 10", len(resp.APICalls))
	}
	if resp.APICalls[0].User != "01234567" {
		t.Errorf("user should be truncated to 8 chars, got %q", resp.APICalls[0].User)
	}
	if resp.APICalls[0].Cost <= 0 {
		t.Error("feed rows should carry a computed cost")
	}
}

func TestComputeStats_Chart(t *testing.T) {
	// A Tuesday. The 7-day window runs Wednesday through Tuesday.
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rows := []UsageRow{
		{UserID: "u", Model: "gpt-4o", TokensIn: 1_000_000, TokensOut: 0, CreatedAt: now},                     // today
		{UserID: "u", Model: "gpt-4o", TokensIn: 1_000_000, TokensOut: 0, CreatedAt: now.AddDate(0, 0, -6)},   // oldest bucket
		{UserID: "u", Model: "gpt-4o", TokensIn: 1_000_000, TokensOut: 0, CreatedAt: now.AddDate(0, 0, -10)},  // outside window
	}

	resp := ComputeStats(rows, now)

	if len(resp.ChartData) != 7 {
		t.Fatalf("chart = %d entries, want 7", len(resp.ChartData))
	}
	if resp.ChartData[6].Day != "mar." {
		t.Errorf("last chart day = %q, want mar. (today)", resp.ChartData[6].Day)
	}
	if resp.ChartData[0].Day != "mer." {
		t.Errorf("first chart day = %q, want mer.", resp.ChartData[0].Day)
	}

	wantDay := CostFor("gpt-4o", 1_000_000, 0)
	if !almostEqual(resp.ChartData[6].Cost, wantDay) {
		t.Errorf("today's bucket = %f, want %f", resp.ChartData[6].Cost, wantDay)
	}
	if !almostEqual(resp.ChartData[0].Cost, wantDay) {
		t.Errorf("oldest bucket = %f, want %f", resp.ChartData[0].Cost, wantDay)
	}

	var total float64
	for _, d := range resp.ChartData {
		total += d.Cost
	}
	// The 10-day-old row falls outside the chart window.
	if !almostEqual(total, 2*wantDay) {
		t.Errorf("chart total = %f, want %f", total, 2*wantDay)
	}
}

func TestComputeStats_Projection(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// 1M in tokens of gpt-4o over 4 days: 2.50 consumed, over budget.
	rows := []UsageRow{
		{UserID: "u", Model: "gpt-4o", TokensIn: 1_000_000, TokensOut: 0, CreatedAt: now},
		{UserID: "u", Model: "gpt-4o", TokensIn: 0, TokensOut: 0, CreatedAt: now.AddDate(0, 0, -4)},
	}
	resp := ComputeStats(rows, now)
	if resp.Projection.DaysRemaining != 0 {
		t.Errorf("over budget should project 0 days, got %d", resp.Projection.DaysRemaining)
	}
	if !almostEqual(resp.Projection.AvgDailyCost, 2.5/4) {
		t.Errorf("avg daily cost = %f, want %f", resp.Projection.AvgDailyCost, 2.5/4)
	}

	// All spend today: the window is clamped to one day.
	rows = []UsageRow{
		{UserID: "u", Model: "gpt-4o-mini", TokensIn: 1_000_000, TokensOut: 0, CreatedAt: now},
	}
	resp = ComputeStats(rows, now)
	if !almostEqual(resp.Projection.AvgDailyCost, 0.15) {
		t.Errorf("single-day avg = %f, want 0.15", resp.Projection.AvgDailyCost)
	}
	// Remaining 1.85 at 0.15/day rounds up to 13 days.
	if resp.Projection.DaysRemaining != 13 {
		t.Errorf("days remaining = %d, want 13", resp.Projection.DaysRemaining)
	}
}
