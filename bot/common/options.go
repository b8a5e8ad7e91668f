package common

import (
	"fmt"
	"time"

	"salespoint/models"
	"salespoint/service"

	"github.com/bwmarrin/discordgo"
)

// Options indexes slash command options by name
type Options map[string]*discordgo.ApplicationCommandInteractionDataOption

// NewOptions indexes opts
func NewOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) Options {
	m := make(Options, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

// String returns the string option name, or "" when it was not given
func (o Options) String(name string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// Int returns the integer option name and whether it was given
func (o Options) Int(name string) (int64, bool) {
	if opt, ok := o[name]; ok {
		return opt.IntValue(), true
	}
	return 0, false
}

// Float returns the number option name and whether it was given
func (o Options) Float(name string) (float64, bool) {
	if opt, ok := o[name]; ok {
		return opt.FloatValue(), true
	}
	return 0, false
}

// Team returns the team option
func (o Options) Team() models.Team {
	return models.Team(o.String("team"))
}

// Date returns the date option in loc, defaulting to today
func (o Options) Date(clock service.Clock) (time.Time, error) {
	raw := o.String("date")
	if raw == "" {
		return clock.Today(), nil
	}
	date, err := service.ParseDate(raw, clock.Location())
	if err != nil {
		return time.Time{}, NewUserError("날짜는 YYYY-MM-DD 형식으로 입력해주세요.", fmt.Sprintf("invalid date option %q", raw))
	}
	return date, nil
}

// SubCommand returns the first subcommand and its options
func SubCommand(i *discordgo.InteractionCreate) (string, Options) {
	opts := i.ApplicationCommandData().Options
	if len(opts) == 0 || opts[0].Type != discordgo.ApplicationCommandOptionSubCommand {
		return "", NewOptions(opts)
	}
	return opts[0].Name, NewOptions(opts[0].Options)
}
