package common

import (
	"fmt"

	"salespoint/models"
)

// TeamDirectory resolves the teams the bot serves
type TeamDirectory interface {
	HasTeam(team models.Team) bool
	TeamLabel(team models.Team) string
}

// RequireTeam rejects teams that are not configured
func RequireTeam(teams TeamDirectory, team models.Team) error {
	if team == "" || !teams.HasTeam(team) {
		return fmt.Errorf("%w: %q", models.ErrUnknownTeam, team)
	}
	return nil
}
