package report

import (
	"context"
	"strings"
	"time"

	"salespoint/bot/common"
	"salespoint/metrics"
	"salespoint/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const (
	customIDPrefix  = "report_"
	confirmIDPrefix = "report_confirm_"
	cancelIDPrefix  = "report_cancel_"

	draftTTL = 30 * time.Minute
)

// Feature handles checkpoint entry commands
type Feature struct {
	teams      common.TeamDirectory
	entries    service.EntryService
	smartInput service.SmartInputService
	metrics    *metrics.Metrics
	clock      service.Clock
	drafts     *draftStore
}

// NewFeature creates a new report feature instance
func NewFeature(teams common.TeamDirectory, entries service.EntryService, smartInput service.SmartInputService, m *metrics.Metrics, clock service.Clock) *Feature {
	return &Feature{
		teams:      teams,
		entries:    entries,
		smartInput: smartInput,
		metrics:    m,
		clock:      clock,
		drafts:     newDraftStore(),
	}
}

// HandleCommand routes /report subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub, opts := common.SubCommand(i)

	if err := common.RequireTeam(f.teams, opts.Team()); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	switch sub {
	case "add":
		f.handleAdd(s, i, opts)
	case "delete":
		f.handleDelete(s, i, opts)
	case "reset":
		f.handleReset(s, i, opts)
	case "list":
		f.handleList(s, i, opts)
	case "smart":
		f.handleSmart(s, i, opts)
	default:
		common.RespondWithError(s, i, "알 수 없는 하위 명령입니다.")
	}
}

// HandleInteraction handles the draft confirmation buttons
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	customID := i.MessageComponentData().CustomID

	switch {
	case strings.HasPrefix(customID, confirmIDPrefix):
		f.handleConfirm(s, i, strings.TrimPrefix(customID, confirmIDPrefix))
	case strings.HasPrefix(customID, cancelIDPrefix):
		f.handleCancel(s, i, strings.TrimPrefix(customID, cancelIDPrefix))
	}
}

// Owns reports whether customID belongs to this feature
func Owns(customID string) bool {
	return strings.HasPrefix(customID, customIDPrefix)
}

// StartDraftCleanup drops unconfirmed drafts until ctx is cancelled
func (f *Feature) StartDraftCleanup(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := f.drafts.cleanup(now, draftTTL); removed > 0 {
				log.WithField("removed", removed).Debug("Dropped expired report drafts")
			}
		}
	}
}
