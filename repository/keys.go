package repository

import (
	"fmt"
	"time"

	"salespoint/models"
)

const (
	dailyRecordPrefix     = "performance-dashboard-"
	monthlyOverridePrefix = "monthly-overrides-"
)

// DailyRecordKey is the storage key of a team's record for one calendar date
func DailyRecordKey(team models.Team, date time.Time) string {
	return fmt.Sprintf("%s%s-%s", dailyRecordPrefix, team, date.Format("2006-01-02"))
}

// LegacyDailyRecordKey is the key used before records were partitioned by team
func LegacyDailyRecordKey(date time.Time) string {
	return dailyRecordPrefix + date.Format("2006-01-02")
}

// MonthlyOverrideKey is the storage key of a team's manual monthly snapshot
func MonthlyOverrideKey(team models.Team, month models.YearMonth) string {
	return fmt.Sprintf("%s%s-%s", monthlyOverridePrefix, team, month)
}
