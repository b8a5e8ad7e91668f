package bot

import (
	"fmt"

	"salespoint/models"

	"github.com/bwmarrin/discordgo"
)

// TeamChoice is one team offered in the slash command pickers
type TeamChoice struct {
	ID    models.Team
	Label string
}

func minValue(v float64) *float64 {
	return &v
}

func teamOption(teams []TeamChoice) *discordgo.ApplicationCommandOption {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(teams))
	for _, t := range teams {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: t.Label, Value: string(t.ID)})
	}
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "team",
		Description: "팀",
		Required:    true,
		Choices:     choices,
	}
}

func timeOption(required bool) *discordgo.ApplicationCommandOption {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.ReportingTimes))
	for _, c := range models.ReportingTimes {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: c.String(), Value: int(c)})
	}
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "time",
		Description: "보고 시간",
		Required:    required,
		Choices:     choices,
	}
}

func countOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: description,
		Required:    required,
		MinValue:    minValue(0),
	}
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func subCommand(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     options,
	}
}

// BuildCommands returns every slash command the bot serves
func BuildCommands(teams []TeamChoice) []*discordgo.ApplicationCommand {
	dateOption := stringOption("date", "날짜 (YYYY-MM-DD, 기본값 오늘)", false)
	monthOption := stringOption("month", "월 (YYYY-MM, 기본값 이번 달)", false)

	return []*discordgo.ApplicationCommand{
		{
			Name:        "report",
			Description: "시간대별 실적 입력",
			Options: []*discordgo.ApplicationCommandOption{
				subCommand("add", "실적 입력 (같은 시간은 덮어쓰기)",
					teamOption(teams),
					timeOption(true),
					countOption("calls", "콜 수", true),
					countOption("memo", "메모 시도", false),
					countOption("manager", "매니저 시도", false),
					countOption("stt", "STT 시도", false),
					countOption("activations", "개통", false),
					stringOption("successes", "상품별 성공 (예: 주력상품A=3, 프로모션B=1)", false),
				),
				subCommand("smart", "문장으로 입력하면 AI가 정리합니다",
					teamOption(teams),
					stringOption("text", "보고 내용", true),
				),
				subCommand("delete", "시간대 실적 삭제",
					teamOption(teams),
					timeOption(true),
				),
				subCommand("reset", "오늘 실적 전체 초기화 (관리자)",
					teamOption(teams),
				),
				subCommand("list", "입력된 실적 보기",
					teamOption(teams),
					dateOption,
				),
			},
		},
		{
			Name:        "dashboard",
			Description: "팀 대시보드 보기",
			Options: []*discordgo.ApplicationCommandOption{
				teamOption(teams),
				dateOption,
				stringOption("product", "시뮬레이션 대상 상품 (기본값 전체)", false),
				{
					Type:        discordgo.ApplicationCommandOptionNumber,
					Name:        "adjust",
					Description: "남은 시간 시간당 추가 성공 건수",
					Required:    false,
				},
			},
		},
		{
			Name:        "month",
			Description: "월 누적 실적",
			Options: []*discordgo.ApplicationCommandOption{
				subCommand("show", "월 누적 보기",
					teamOption(teams),
					monthOption,
				),
				subCommand("set", "월 누적 수동 입력 (관리자)",
					teamOption(teams),
					stringOption("products", "상품별 누적 (예: 주력상품A=120, 프로모션B=40)", true),
					countOption("activations", "개통 누적", true),
					monthOption,
				),
				subCommand("clear", "수동 입력 해제 (관리자)",
					teamOption(teams),
					monthOption,
				),
			},
		},
		{
			Name:        "settings",
			Description: "팀 설정",
			Options: []*discordgo.ApplicationCommandOption{
				subCommand("show", "설정 보기",
					teamOption(teams),
					dateOption,
				),
				subCommand("weight", "시간대 누적 가중치 변경",
					teamOption(teams),
					timeOption(true),
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionNumber,
						Name:        "value",
						Description: "누적 가중치 (%)",
						Required:    true,
						MinValue:    minValue(0),
					},
				),
				subCommand("weights-reset", "가중치를 기본값으로",
					teamOption(teams),
				),
				subCommand("goal", "월 목표 변경",
					teamOption(teams),
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "key",
						Description: "목표",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "시도율", Value: "attemptRate"},
							{Name: "적극 시도율", Value: "activeAttemptRate"},
							{Name: "STT 언급률", Value: "sttMentionRate"},
							{Name: "개통 목표", Value: "activationGoal"},
						},
					},
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionNumber,
						Name:        "value",
						Description: "목표값",
						Required:    true,
						MinValue:    minValue(0),
					},
				),
				subCommand("month-info", "근무일 수 직접 지정 (음수 입력 시 자동 계산)",
					teamOption(teams),
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "key",
						Description: "항목",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "개통 가능일", Value: "openingDays"},
							{Name: "순신청일", Value: "netApplicationDays"},
						},
					},
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "days",
						Description: "일 수",
						Required:    true,
					},
				),
				subCommand("product-add", "상품 추가",
					teamOption(teams),
					stringOption("name", "상품명", true),
					countOption("goal", "월 목표 건수", true),
				),
				subCommand("product-update", "상품 수정",
					teamOption(teams),
					countOption("id", "상품 번호", true),
					stringOption("name", "상품명", true),
					countOption("goal", "월 목표 건수", true),
				),
				subCommand("product-remove", "상품 삭제",
					teamOption(teams),
					countOption("id", "상품 번호", true),
				),
			},
		},
		{
			Name:        "coach",
			Description: "AI 코칭 받기",
			Options: []*discordgo.ApplicationCommandOption{
				teamOption(teams),
			},
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	for _, cmd := range BuildCommands(b.config.Teams) {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}
	return nil
}
