package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"salespoint/models"
)

// utf8BOM lets spreadsheet tools detect the encoding of Korean headers
const utf8BOM = "\uFEFF"

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// WriteSummaryCSV writes the dashboard's totals, rates and forecasts as
// label/value rows
func WriteSummaryCSV(w io.Writer, dashboard *models.Dashboard) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("failed to write summary csv: %w", err)
	}

	s := dashboard.Summary
	rows := [][]string{
		{"항목", "값"},
		{"팀", string(dashboard.Team)},
		{"날짜", dashboard.Date.Format("2006-01-02")},
		{"마지막 보고 시간", s.LastCheckpoint.String()},
		{"총 콜", strconv.Itoa(s.TotalCalls)},
		{"메모 시도", strconv.Itoa(s.TotalMemoAttempts)},
		{"관리자 확인", strconv.Itoa(s.TotalManagerAttempts)},
		{"STT 감지", strconv.Itoa(s.TotalSpeechAttempts)},
		{"총 성공", strconv.Itoa(s.TotalSuccesses)},
		{"총 개통", strconv.Itoa(s.TotalActivations)},
		{"멘트율", pct(s.MentionRate)},
		{"적극 시도율", pct(s.ActiveAttemptRate)},
		{"STT 멘트율", pct(s.SpeechMentionRate)},
		{"성공률", pct(s.ConversionRate)},
		{"개통률", pct(s.ActivationRate)},
		{"일일 목표", num(s.DailyGoal)},
		{"현재 달성률", pct(s.CurrentAchievement)},
		{"예상 성공", num(s.PredictedSuccesses)},
		{"예상 달성률", pct(s.PredictedAchievement)},
		{"일일 개통 목표", num(s.DailyActivationGoal)},
		{"예상 개통", num(s.PredictedActivations)},
		{"예상 개통 달성률", pct(s.PredictedActivationAchievement)},
	}
	for _, p := range s.Products {
		rows = append(rows,
			[]string{p.Name + " 성공", strconv.Itoa(p.TotalSuccesses)},
			[]string{p.Name + " 예상 달성률", pct(p.PredictedAchievement)},
		)
	}
	monthly := dashboard.MonthlyProgress.Snapshot.Products
	for _, name := range slices.Sorted(maps.Keys(monthly)) {
		rows = append(rows, []string{"월 누적 " + name, strconv.Itoa(monthly[name])})
	}
	rows = append(rows, []string{"월 누적 개통", strconv.Itoa(dashboard.MonthlyProgress.Snapshot.Activations)})

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write summary csv: %w", err)
	}
	return nil
}

// WriteDetailCSV writes one row per checkpoint entry with a column per tracked product
func WriteDetailCSV(w io.Writer, dashboard *models.Dashboard) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("failed to write detail csv: %w", err)
	}

	products := dashboard.Settings.ProductNames()
	header := []string{"보고 시간", "콜", "메모 시도", "관리자 확인", "STT 감지"}
	header = append(header, products...)
	header = append(header, "개통")

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write detail csv: %w", err)
	}

	for _, e := range dashboard.Entries {
		row := []string{
			e.ReportingTime.String(),
			strconv.Itoa(e.Calls),
			strconv.Itoa(e.MemoAttempts),
			strconv.Itoa(e.ManagerAttempts),
			strconv.Itoa(e.SpeechAttempts),
		}
		for _, name := range products {
			row = append(row, strconv.Itoa(e.ProductSuccesses[name]))
		}
		row = append(row, strconv.Itoa(e.Activations))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write detail csv: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write detail csv: %w", err)
	}
	return nil
}
