package discord

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/SpinWheel_Go/internal/domain"
)

func wheelOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         OptionWheel,
		Description:  "Wheel name or ID",
		Required:     true,
		Autocomplete: true,
	}
}

// resolveWheelOption defers the interaction and resolves the wheel option.
// Returns false when the handler should stop; the user has already been answered.
func resolveWheelOption(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) (*domain.Wheel, bool) {
	if !deferResponse(s, i) {
		return nil, false
	}

	ref := getStringOption(i, OptionWheel)
	if ref == "" {
		respondError(s, i, MsgMissingWheel)
		return nil, false
	}

	w, err := client.ResolveWheel(ref)
	if err != nil {
		slog.Error("Failed to resolve wheel", "wheel", ref, "error", err)
		respondFriendlyError(s, i, err)
		return nil, false
	}
	return w, true
}

// WheelSpinCommand returns the spin command definition and handler
func WheelSpinCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandWheelSpin,
		Description: "Spin a wheel",
		Options: []*discordgo.ApplicationCommandOption{
			wheelOption(),
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        OptionPreview,
				Description: "Pick a winner without changing any weights",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		w, ok := resolveWheelOption(s, i, client)
		if !ok {
			return
		}

		preview := getBoolOption(i, OptionPreview)
		result, err := client.Spin(w.ID, preview)
		if err != nil {
			slog.Error("Failed to spin wheel", "wheel_id", w.ID, "error", err)
			respondFriendlyError(s, i, err)
			return
		}

		sendEmbed(s, i, createEmbed("🎡 "+w.Name, formatSpinResult(result), ColorSpin, ""))
	}

	return cmd, handler
}

func formatSpinResult(result *domain.SpinResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🏆 **%s** wins!", result.ParticipantName)
	if result.Rigged {
		sb.WriteString("\n" + MsgRiggedSuffix)
	}
	if !result.Applied {
		sb.WriteString("\n" + MsgPreviewSuffix)
	}
	fmt.Fprintf(&sb, "\n\nTotal spins: %d", result.TotalSpins)
	return sb.String()
}

// WheelOddsCommand returns the odds command definition and handler
func WheelOddsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandWheelOdds,
		Description: "Show each participant's chance of being picked",
		Options:     []*discordgo.ApplicationCommandOption{wheelOption()},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		w, ok := resolveWheelOption(s, i, client)
		if !ok {
			return
		}

		odds, err := client.Probabilities(w.ID)
		if err != nil {
			slog.Error("Failed to get probabilities", "wheel_id", w.ID, "error", err)
			respondFriendlyError(s, i, err)
			return
		}

		sendEmbed(s, i, createEmbed("📊 "+w.Name, formatOdds(odds), ColorOdds, ""))
	}

	return cmd, handler
}

// formatOdds lists participants from most to least likely
func formatOdds(odds []domain.ParticipantOdds) string {
	if len(odds) == 0 {
		return MsgEmptyWheel
	}

	sorted := make([]domain.ParticipantOdds, len(odds))
	copy(sorted, odds)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Probability > sorted[b].Probability
	})

	lines := make([]string, 0, len(sorted))
	for _, o := range sorted {
		lines = append(lines, fmt.Sprintf("**%s**: %.1f%% (weight %.2f)", o.Name, o.Probability*100, o.Weight))
	}
	return strings.Join(lines, "\n")
}

// WheelResetCommand returns the reset command definition and handler
func WheelResetCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     CommandWheelReset,
		Description:              "[Admin] Restore every participant's baseline weight",
		DefaultMemberPermissions: &[]int64{discordgo.PermissionAdministrator}[0],
		Options:                  []*discordgo.ApplicationCommandOption{wheelOption()},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		w, ok := resolveWheelOption(s, i, client)
		if !ok {
			return
		}

		reset, err := client.Reset(w.ID)
		if err != nil {
			slog.Error("Failed to reset wheel", "wheel_id", w.ID, "error", err)
			respondFriendlyError(s, i, err)
			return
		}

		desc := fmt.Sprintf("%s\n\nParticipants: %d", MsgResetDescription, len(reset.Participants))
		sendEmbed(s, i, createEmbed("🔄 "+reset.Name, desc, ColorReset, FooterWheelAdmin))
	}

	return cmd, handler
}

// RegisterWheelCommands adds every wheel command to the registry
func RegisterWheelCommands(r *CommandRegistry) {
	r.Register(WheelSpinCommand())
	r.Register(WheelOddsCommand())
	r.Register(WheelResetCommand())
}
