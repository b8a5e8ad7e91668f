package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommands(t *testing.T) {
	teams := []TeamChoice{{ID: "team1", Label: "1팀"}, {ID: "team2", Label: "2팀"}}

	commands := BuildCommands(teams)

	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"report", "dashboard", "month", "settings", "coach"}, names)

	dashboard := commands[1]
	require.NotEmpty(t, dashboard.Options)
	team := dashboard.Options[0]
	assert.Equal(t, "team", team.Name)
	require.Len(t, team.Choices, 2)
	assert.Equal(t, "1팀", team.Choices[0].Name)
	assert.Equal(t, "team1", team.Choices[0].Value)
}

func TestBuildCommands_RequiredOptionsComeFirst(t *testing.T) {
	var check func(path string, opts []*discordgo.ApplicationCommandOption)
	check = func(path string, opts []*discordgo.ApplicationCommandOption) {
		seenOptional := false
		for _, opt := range opts {
			if opt.Type == discordgo.ApplicationCommandOptionSubCommand {
				check(path+"/"+opt.Name, opt.Options)
				continue
			}
			if !opt.Required {
				seenOptional = true
			} else {
				assert.False(t, seenOptional, "%s: required option %q follows an optional one", path, opt.Name)
			}
		}
	}

	for _, cmd := range BuildCommands([]TeamChoice{{ID: "team1", Label: "1팀"}}) {
		check(cmd.Name, cmd.Options)
	}
}

func TestBuildCommands_TimeChoicesCoverReportingHours(t *testing.T) {
	report := BuildCommands(nil)[0]
	add := report.Options[0]
	require.Equal(t, "add", add.Name)

	timeOpt := add.Options[1]
	require.Equal(t, "time", timeOpt.Name)
	require.Len(t, timeOpt.Choices, 9)
	assert.Equal(t, "10:00", timeOpt.Choices[0].Name)
	assert.Equal(t, 18, timeOpt.Choices[8].Value)
}
