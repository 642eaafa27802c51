package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/SpinWheel_Go/internal/utils"
	"github.com/osse101/SpinWheel_Go/internal/wheel"
)

// Apply creates every seeded wheel that does not exist yet.
// Existing wheels are matched by name and left untouched.
func Apply(ctx context.Context, svc wheel.Service, wheels []Wheel) (Result, error) {
	var result Result

	existing, err := svc.ListWheels(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list wheels: %w", err)
	}

	seen := make([]string, 0, len(existing)+len(wheels))
	for _, w := range existing {
		seen = append(seen, w.Name)
	}

	for _, w := range wheels {
		if containsName(seen, w.Name) {
			slog.Info("Seed wheel already exists, skipping", "wheel", w.Name)
			result.Skipped = append(result.Skipped, w.Name)
			continue
		}

		created, err := svc.CreateWheel(ctx, toInput(w))
		if err != nil {
			return result, fmt.Errorf("failed to create wheel %q: %w", w.Name, err)
		}
		slog.Info("Seeded wheel", "wheel", created.Name, "id", created.ID, "participants", len(created.Participants))
		result.Created = append(result.Created, created.Name)
		seen = append(seen, created.Name)
	}

	return result, nil
}

func toInput(w Wheel) wheel.CreateWheelInput {
	participants := make([]wheel.ParticipantInput, 0, len(w.Participants))
	for _, p := range w.Participants {
		participants = append(participants, wheel.ParticipantInput{Name: p.Name, Weight: p.Weight})
	}
	return wheel.CreateWheelInput{
		Name:        w.Name,
		Description: w.Description,
		Settings: wheel.SettingsInput{
			AllowRigging:            w.Settings.AllowRigging,
			RequireReasonForRigging: w.Settings.RequireReasonForRigging,
			DefaultWeight:           w.Settings.DefaultWeight,
		},
		Participants: participants,
	}
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if utils.SameName(n, name) {
			return true
		}
	}
	return false
}
