package month

import (
	"testing"
	"time"

	"salespoint/bot/common"
	"salespoint/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProgressEmbed_Computed(t *testing.T) {
	progress := &models.MonthlyProgress{
		Snapshot:    models.MonthlyProgressSnapshot{Products: map[string]int{"주력상품A": 250, "프로모션B": 0}, Activations: 30},
		Provenance:  models.ProvenanceComputed,
		DaysScanned: 31,
		DaysSkipped: 2,
	}

	embed := BuildProgressEmbed("1팀", models.YearMonth{Year: 2025, Month: time.October}, progress, models.DefaultTeamSettings())

	assert.Equal(t, "📈 1팀 2025-10 월 누적", embed.Title)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "주력상품A", embed.Fields[0].Name)
	assert.Contains(t, embed.Fields[0].Value, "**250** / 500 (50.0%)")
	assert.Contains(t, embed.Fields[2].Value, "**30** / 120")
	assert.Equal(t, "일별 기록 31일 합계 · 손상된 기록 2일 제외", embed.Footer.Text)
	assert.Equal(t, common.ColorPrimary, embed.Color)
}

func TestBuildProgressEmbed_Overridden(t *testing.T) {
	progress := &models.MonthlyProgress{
		Snapshot:   models.MonthlyProgressSnapshot{Products: map[string]int{"주력상품A": 50}},
		Provenance: models.ProvenanceOverridden,
	}

	embed := BuildProgressEmbed("1팀", models.YearMonth{Year: 2025, Month: time.October}, progress, models.DefaultTeamSettings())

	assert.Equal(t, common.ColorWarning, embed.Color)
	assert.Contains(t, embed.Footer.Text, "수동 입력")
}
