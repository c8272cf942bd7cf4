package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blackwell-systems/wellwatch/internal/calendar"
	"github.com/blackwell-systems/wellwatch/internal/recommend"
	"github.com/blackwell-systems/wellwatch/internal/streak"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
)

// StreaksResult holds per-habit streak stats for today.
type StreaksResult struct {
	Date   string              `json:"date"`
	Habits []streak.HabitStats `json:"habits"`
}

// RecommendationsResult holds a ranked batch of recommendations.
type RecommendationsResult struct {
	GeneratedAt     string                     `json:"generated_at"`
	Total           int                        `json:"total"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// TodayResult holds today's aggregates plus the last week of habit
// completion and recent wellness averages.
type TodayResult struct {
	streak.DaySummary
	Week      []streak.Completion    `json:"week"`
	Wellness7 streak.WellnessAverage `json:"wellness_7d"`
}

const maxRecommendationLimit = 50

var (
	noArgsSchema          = json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false}`)
	recommendationsSchema = json.RawMessage(`{"type":"object","properties":{"limit":{"type":"integer","description":"Maximum number of recommendations to return"},"type":{"type":"string","enum":["habit","task","goal","wellness","productivity"],"description":"Only return recommendations of this type"}},"additionalProperties":false}`)
)

// addTools registers all MCP tool handlers on s.
func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "get_streaks",
		Description: "Current and best streak, today's status and 30-day rate for every habit.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetStreaks,
	})
	s.registerTool(toolDef{
		Name:        "get_recommendations",
		Description: "Recommendations ranked by confidence, highest first.",
		InputSchema: recommendationsSchema,
		Handler:     s.handleGetRecommendations,
	})
	s.registerTool(toolDef{
		Name:        "get_today",
		Description: "Today's habit and task completion, per-category totals, check-in and last 7 days.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetToday,
	})
}

// load reads the snapshot converted to the configured timezone and
// returns it with the current instant.
func (s *Server) load(ctx context.Context) (*tracker.Snapshot, time.Time, error) {
	snap, err := s.source.LoadSnapshot(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	now := s.opts.Now().In(s.opts.Location)
	return snap.In(s.opts.Location), now, nil
}

func (s *Server) handleGetStreaks(ctx context.Context, _ json.RawMessage) (any, error) {
	snap, now, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	today := calendar.FromTime(now)

	habits := make([]streak.HabitStats, 0, len(snap.Habits))
	for _, h := range snap.Habits {
		stats, err := streak.ForHabit(h, today)
		if err != nil {
			return nil, err
		}
		habits = append(habits, stats)
	}
	return StreaksResult{Date: today.String(), Habits: habits}, nil
}

func (s *Server) handleGetRecommendations(ctx context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Limit *int    `json:"limit"`
		Type  *string `json:"type"`
	}
	if len(args) > 0 && string(args) != "null" {
		if err := json.Unmarshal(args, &params); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}
	limit := s.opts.DefaultLimit
	if params.Limit != nil {
		limit = *params.Limit
	}
	if limit <= 0 || limit > maxRecommendationLimit {
		limit = maxRecommendationLimit
	}

	snap, now, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	recs, err := s.engine.Run(snap, now)
	if err != nil {
		return nil, err
	}
	if params.Type != nil {
		recs = recommend.FilterByType(recs, recommend.Type(*params.Type))
	}
	total := len(recs)
	recs = recommend.Limit(recs, limit)
	if recs == nil {
		recs = []recommend.Recommendation{}
	}

	return RecommendationsResult{
		GeneratedAt:     now.Format(time.RFC3339),
		Total:           total,
		Recommendations: recs,
	}, nil
}

func (s *Server) handleGetToday(ctx context.Context, _ json.RawMessage) (any, error) {
	snap, now, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	today := calendar.FromTime(now)

	return TodayResult{
		DaySummary: streak.Day(snap, today),
		Week:       streak.WeeklyCompletion(snap.Habits, calendar.LastNDays(today, 7)),
		Wellness7:  streak.WellnessAverages(snap.Wellness, 7),
	}, nil
}
