package discord

import (
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/SpinWheel_Go/internal/domain"
)

// HandleAutocomplete routes autocomplete interactions to the appropriate handler
func HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	data := i.ApplicationCommandData()

	switch data.Name {
	case CommandWheelSpin, CommandWheelOdds, CommandWheelReset:
		handleWheelAutocomplete(s, i, client)
	default:
		slog.Warn("Unhandled autocomplete command", "command", data.Name)
	}
}

// handleWheelAutocomplete suggests wheel names matching what the user has typed
func handleWheelAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	var focusedValue string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Focused {
			focusedValue = opt.StringValue()
			break
		}
	}

	wheels, err := client.ListWheels()
	if err != nil {
		slog.Error("Failed to list wheels for autocomplete", "error", err)
	}

	respondAutocomplete(s, i, wheelChoices(wheels, focusedValue))
}

func wheelChoices(wheels []domain.Wheel, query string) []*discordgo.ApplicationCommandOptionChoice {
	query = strings.ToLower(strings.TrimSpace(query))
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, MaxAutocompleteChoices)
	for _, w := range wheels {
		if query == "" || strings.Contains(strings.ToLower(w.Name), query) {
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  w.Name,
				Value: w.ID.String(),
			})
		}
		if len(choices) >= MaxAutocompleteChoices {
			break
		}
	}
	return choices
}

func respondAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	}); err != nil {
		slog.Error("Failed to respond to autocomplete", "error", err)
	}
}
