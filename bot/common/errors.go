package common

import (
	"errors"
	"fmt"

	"salespoint/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string // Message shown to Discord user
	LogMessage  string // Internal message for logging
	Err         error  // Underlying error
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// NewUserError creates an error for user-caused issues
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
	}
}

// UserMessageFor translates a service error into the message operators see
func UserMessageFor(err error) string {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return fmt.Sprintf("입력값을 확인해주세요 (%s: %s)", verr.Field, verr.Reason)
	case errors.Is(err, models.ErrReadOnlyDay):
		return "지난 날짜의 기록은 수정할 수 없습니다."
	case errors.Is(err, models.ErrUnknownTeam):
		return "등록되지 않은 팀입니다."
	case errors.Is(err, models.ErrAIUnavailable):
		return "AI 분석을 사용할 수 없습니다. 잠시 후 다시 시도해주세요."
	case errors.Is(err, models.ErrNoDataReturned):
		return "AI가 내용을 해석하지 못했습니다. 문장을 바꿔 다시 시도해주세요."
	default:
		return "문제가 발생했습니다. 잠시 후 다시 시도해주세요."
	}
}

// RespondWithError sends an error message as an interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// FollowUpWithError sends an error message as a follow-up to a deferred interaction
func FollowUpWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("❌ %s", message),
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending follow-up error message: %v", err)
	}
}

// HandleError logs err and answers the interaction with a user-facing message
func HandleError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, deferred bool) {
	message := UserMessageFor(err)

	var botErr *BotError
	if errors.As(err, &botErr) {
		message = botErr.UserMessage
	}

	fields := log.Fields{
		"error": err.Error(),
	}
	if i.Member != nil && i.Member.User != nil {
		fields["user_id"] = i.Member.User.ID
	}
	if i.Type == discordgo.InteractionApplicationCommand {
		fields["command"] = i.ApplicationCommandData().Name
	}
	log.WithFields(fields).Warn("Bot interaction failed")

	if deferred {
		FollowUpWithError(s, i, message)
	} else {
		RespondWithError(s, i, message)
	}
}
