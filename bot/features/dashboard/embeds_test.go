package dashboard

import (
	"testing"
	"time"

	"salespoint/bot/common"
	"salespoint/models"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldByName(t *testing.T, fields []*discordgo.MessageEmbedField, prefix string) *discordgo.MessageEmbedField {
	t.Helper()
	for _, f := range fields {
		if len(f.Name) >= len(prefix) && f.Name[:len(prefix)] == prefix {
			return f
		}
	}
	t.Fatalf("no field starting with %q", prefix)
	return nil
}

func testDashboard() *models.Dashboard {
	required := 2.5
	return &models.Dashboard{
		Team:     "team1",
		Date:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		Settings: models.DefaultTeamSettings(),
		Entries:  []models.CheckpointEntry{{ReportingTime: 14, Calls: 20}},
		Summary: models.DailySummary{
			TotalCalls:         20,
			TotalSuccesses:     6,
			LastCheckpoint:     14,
			DailyGoal:          31.8,
			PredictedSuccesses: 10.9,
			Products: []models.ProductSummary{
				{Name: "주력상품A", TotalSuccesses: 6, DailyGoal: 22.7},
			},
		},
		Feedback: models.FeedbackDanger,
		MonthlyProgress: models.MonthlyProgress{
			Snapshot:   models.MonthlyProgressSnapshot{Products: map[string]int{"주력상품A": 210, "프로모션B": 70}, Activations: 40},
			Provenance: models.ProvenanceOverridden,
		},
		Pacing: []models.PacingTrack{
			{Name: models.TrackActivations, CompletionPct: 33.3, ExpectedProgress: 50, Status: models.PacingBehind},
		},
		Simulation: models.Simulation{
			Goal:           31.8,
			RemainingHours: 4,
			SimulatedTotal: 10.9,
			Guide:          models.SimulationGuide{Type: models.GuideDanger, Gap: 10, RequiredPerHour: &required},
		},
		Comparison: &models.DayComparison{
			Checkpoint: 14,
			Successes:  models.Trend{Current: 6, Previous: 4, Diff: 2},
		},
		Warnings: []string{"최종 가중치가 100%가 아닙니다."},
	}
}

func TestBuildDashboardEmbed(t *testing.T) {
	embed := BuildDashboardEmbed("1팀", testDashboard())

	assert.Equal(t, "📊 1팀 대시보드 · 2025-10-15", embed.Title)
	assert.Equal(t, common.ColorDanger, embed.Color)
	assert.Contains(t, embed.Description, "목표 미달 위험")
	assert.Contains(t, embed.Description, "⚠️ 최종 가중치가 100%가 아닙니다.")

	monthly := fieldByName(t, embed.Fields, "📈")
	assert.Contains(t, monthly.Value, "성공 **280** / 700 (40.0%)")
	assert.Contains(t, monthly.Value, "수동 입력")

	pacing := fieldByName(t, embed.Fields, "🗓️")
	assert.Contains(t, pacing.Value, "🔴 개통 33.3% (기대 50.0%)")

	sim := fieldByName(t, embed.Fields, "🔮")
	assert.Contains(t, sim.Value, "목표까지 10건 부족합니다. 시간당 2.5건 이상 필요합니다.")

	comparison := fieldByName(t, embed.Fields, "↕️")
	assert.Contains(t, comparison.Value, "성공 6 (+2)")
}

func TestBuildDashboardEmbed_ReadOnlyWithoutEntries(t *testing.T) {
	d := testDashboard()
	d.ReadOnly = true
	d.Entries = nil
	d.Comparison = nil
	d.Warnings = nil
	d.Simulation.Guide = models.SimulationGuide{Type: models.GuideFinished}

	embed := BuildDashboardEmbed("1팀", d)

	assert.Equal(t, "🔒 지난 날짜 (읽기 전용)", embed.Description)
	for _, f := range embed.Fields {
		assert.NotContains(t, f.Name, "어제")
	}
	sim := fieldByName(t, embed.Fields, "🔮")
	assert.Contains(t, sim.Value, "오늘 업무가 종료되었습니다.")
}

func TestSimulationField_SuccessShowsMargin(t *testing.T) {
	field := simulationField(models.Simulation{
		Scope:          models.SimulationScope{Product: "주력상품A"},
		RemainingHours: 2,
		Guide:          models.SimulationGuide{Type: models.GuideSuccess, Gap: -3},
	})

	require.NotNil(t, field)
	assert.Contains(t, field.Name, "주력상품A")
	assert.Contains(t, field.Value, "3건 여유")
}
