package common

import (
	"errors"
	"fmt"
	"testing"

	"salespoint/models"

	"github.com/stretchr/testify/assert"
)

func TestUserMessageFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"validation", models.NewEntryError("calls", "must not be negative"), "입력값을 확인해주세요 (calls: must not be negative)"},
		{"read only", fmt.Errorf("wrapped: %w", models.ErrReadOnlyDay), "지난 날짜의 기록은 수정할 수 없습니다."},
		{"unknown team", models.ErrUnknownTeam, "등록되지 않은 팀입니다."},
		{"ai unavailable", models.ErrAIUnavailable, "AI 분석을 사용할 수 없습니다. 잠시 후 다시 시도해주세요."},
		{"no data", models.ErrNoDataReturned, "AI가 내용을 해석하지 못했습니다. 문장을 바꿔 다시 시도해주세요."},
		{"unexpected", errors.New("connection reset"), "문제가 발생했습니다. 잠시 후 다시 시도해주세요."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserMessageFor(tt.err))
		})
	}
}

func TestBotError(t *testing.T) {
	cause := errors.New("boom")
	err := &BotError{UserMessage: "보이는 메시지", LogMessage: "internal", Err: cause}

	assert.Equal(t, "internal: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal", NewUserError("u", "internal").Error())
}

type stubTeams map[models.Team]string

func (s stubTeams) HasTeam(team models.Team) bool { _, ok := s[team]; return ok }

func (s stubTeams) TeamLabel(team models.Team) string { return s[team] }

func TestRequireTeam(t *testing.T) {
	teams := stubTeams{"team1": "1팀"}

	assert.NoError(t, RequireTeam(teams, "team1"))
	assert.ErrorIs(t, RequireTeam(teams, "team9"), models.ErrUnknownTeam)
	assert.ErrorIs(t, RequireTeam(teams, ""), models.ErrUnknownTeam)
}
