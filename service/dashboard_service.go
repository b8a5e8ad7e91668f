package service

import (
	"context"
	"fmt"
	"time"

	"salespoint/calendar"
	"salespoint/models"
)

type dashboardService struct {
	uowFactory   UnitOfWorkFactory
	clock        Clock
	lookbackDays int
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(uowFactory UnitOfWorkFactory, clock Clock, lookbackDays int) DashboardService {
	return &dashboardService{
		uowFactory:   uowFactory,
		clock:        clock,
		lookbackDays: lookbackDays,
	}
}

// GetDashboard loads the day's record, yesterday's record and the month's
// rollup in one read transaction, then runs every calculation over them
func (s *dashboardService) GetDashboard(ctx context.Context, team models.Team, date time.Time, opts DashboardOptions) (*models.Dashboard, error) {
	date = DateOf(date, s.clock.Location())
	month := models.YearMonthOf(date)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	repo := uow.RecordRepository()
	settings, record, err := loadSettings(ctx, repo, team, date, s.lookbackDays)
	if err != nil {
		return nil, err
	}
	yesterday, err := readRecord(ctx, repo, team, date.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	progress, err := rollupMonth(ctx, repo, team, month, settings.ProductGoals, s.clock.Location())
	if err != nil {
		return nil, err
	}

	entries := []models.CheckpointEntry{}
	if record != nil {
		entries = append(entries, record.Entries...)
		models.SortEntries(entries)
	}

	calculated := calendar.MonthInfo(month.Year, month.Month)
	monthInfo := settings.MonthInfoOverride.Apply(calculated)
	summary := Summarize(entries, settings, monthInfo)

	today := s.clock.Today()
	workdayPct := calendar.ExpectedProgress(date, today, monthInfo.NetApplicationDays, calendar.NetApplicationDay)
	openingPct := calendar.ExpectedProgress(date, today, monthInfo.OpeningDays, calendar.OpeningDay)

	dashboard := &models.Dashboard{
		Team:                team,
		Date:                date,
		ReadOnly:            !s.clock.IsToday(date),
		Settings:            settings,
		Entries:             entries,
		CalculatedMonthInfo: calculated,
		MonthInfo:           monthInfo,
		Summary:             summary,
		Feedback:            PredictionFeedback(summary.PredictedAchievement),
		MonthlyProgress:     *progress,
		WorkdayProgress:     workdayPct,
		OpeningDayProgress:  openingPct,
		Pacing:              PacingTracks(summary, *progress, settings.CoreGoals, workdayPct, openingPct),
		Simulation:          SimulateScope(summary, opts.Scope, opts.AdjustmentPerHour),
		AvailableTimes:      AvailableCheckpoints(entries),
	}
	if yesterday != nil {
		dashboard.Comparison = CompareSameTime(entries, yesterday.Entries)
	}

	if settings.Weights.FinalWeightMismatch() {
		dashboard.Warnings = append(dashboard.Warnings,
			fmt.Sprintf("마지막 시간대(18시) 가중치가 100%%가 아닙니다 (%.0f%%)", settings.Weights[models.LastCheckpoint]))
	}
	if summary.ActivationRateExceeds() {
		dashboard.Warnings = append(dashboard.Warnings, "개통 건수가 성공 건수보다 많습니다. 입력값을 확인해주세요.")
	}
	if progress.DaysSkipped > 0 {
		dashboard.Warnings = append(dashboard.Warnings,
			fmt.Sprintf("손상된 일일 기록 %d건을 월간 누적에서 제외했습니다", progress.DaysSkipped))
	}

	return dashboard, nil
}
