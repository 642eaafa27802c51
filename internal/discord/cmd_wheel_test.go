package discord

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinWheel_Go/internal/domain"
)

func serveWheels(ctx *TestContext, wheels ...domain.Wheel) {
	ctx.Mux.HandleFunc("/api/v1/wheels", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, wheels)
	})
}

func TestWheelSpinCommand(t *testing.T) {
	ctx := SetupTestContext(t)
	wheel := domain.Wheel{ID: uuid.New(), Name: "Raffle"}
	serveWheels(ctx, wheel)

	var applied bool
	ctx.Mux.HandleFunc("/api/v1/wheels/"+wheel.ID.String()+"/spin", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]bool
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		applied = body["apply_changes"]
		WriteJSON(w, domain.SpinResult{
			WheelID:         wheel.ID,
			ParticipantName: "Alice",
			Applied:         applied,
			TotalSpins:      4,
		})
	})

	cmd, handler := WheelSpinCommand()
	handler(ctx.Session, commandInteraction(cmd.Name, stringOption(OptionWheel, "raffle")), ctx.APIClient)

	assert.True(t, applied)
	embed := ctx.LastEmbed(t)
	assert.Contains(t, embed.Title, "Raffle")
	assert.Contains(t, embed.Description, "**Alice** wins!")
	assert.Contains(t, embed.Description, "Total spins: 4")
	assert.NotContains(t, embed.Description, MsgRiggedSuffix)
	assert.NotContains(t, embed.Description, MsgPreviewSuffix)
}

func TestWheelSpinCommand_PreviewAndRigged(t *testing.T) {
	ctx := SetupTestContext(t)
	wheel := domain.Wheel{ID: uuid.New(), Name: "Raffle"}
	serveWheels(ctx, wheel)

	ctx.Mux.HandleFunc("/api/v1/wheels/"+wheel.ID.String()+"/spin", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]bool
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.False(t, body["apply_changes"])
		WriteJSON(w, domain.SpinResult{WheelID: wheel.ID, ParticipantName: "Bob", Rigged: true})
	})

	cmd, handler := WheelSpinCommand()
	handler(ctx.Session, commandInteraction(cmd.Name,
		stringOption(OptionWheel, wheel.ID.String()),
		boolOption(OptionPreview, true),
	), ctx.APIClient)

	embed := ctx.LastEmbed(t)
	assert.Contains(t, embed.Description, MsgRiggedSuffix)
	assert.Contains(t, embed.Description, MsgPreviewSuffix)
}

func TestWheelSpinCommand_Errors(t *testing.T) {
	t.Run("unknown wheel", func(t *testing.T) {
		ctx := SetupTestContext(t)
		serveWheels(ctx)

		cmd, handler := WheelSpinCommand()
		handler(ctx.Session, commandInteraction(cmd.Name, stringOption(OptionWheel, "ghost")), ctx.APIClient)

		assert.Equal(t, MsgWheelNotFound, ctx.LastContent(t))
	})

	t.Run("missing option", func(t *testing.T) {
		ctx := SetupTestContext(t)

		cmd, handler := WheelSpinCommand()
		handler(ctx.Session, commandInteraction(cmd.Name), ctx.APIClient)

		assert.Equal(t, MsgMissingWheel, ctx.LastContent(t))
	})

	t.Run("empty wheel", func(t *testing.T) {
		ctx := SetupTestContext(t)
		wheel := domain.Wheel{ID: uuid.New(), Name: "Empty"}
		serveWheels(ctx, wheel)
		ctx.Mux.HandleFunc("/api/v1/wheels/"+wheel.ID.String()+"/spin", func(w http.ResponseWriter, r *http.Request) {
			WriteError(w, http.StatusBadRequest, "The wheel has no participants")
		})

		cmd, handler := WheelSpinCommand()
		handler(ctx.Session, commandInteraction(cmd.Name, stringOption(OptionWheel, "Empty")), ctx.APIClient)

		assert.Equal(t, MsgEmptyWheel, ctx.LastContent(t))
	})

	t.Run("busy wheel", func(t *testing.T) {
		ctx := SetupTestContext(t)
		wheel := domain.Wheel{ID: uuid.New(), Name: "Busy"}
		serveWheels(ctx, wheel)
		ctx.Mux.HandleFunc("/api/v1/wheels/"+wheel.ID.String()+"/spin", func(w http.ResponseWriter, r *http.Request) {
			WriteError(w, http.StatusConflict, "The wheel is busy. Please try again.")
		})

		cmd, handler := WheelSpinCommand()
		handler(ctx.Session, commandInteraction(cmd.Name, stringOption(OptionWheel, "Busy")), ctx.APIClient)

		assert.Equal(t, MsgWheelBusy, ctx.LastContent(t))
	})
}

func TestWheelOddsCommand(t *testing.T) {
	ctx := SetupTestContext(t)
	wheel := domain.Wheel{ID: uuid.New(), Name: "Raffle"}
	serveWheels(ctx, wheel)

	ctx.Mux.HandleFunc("/api/v1/wheels/"+wheel.ID.String()+"/probabilities", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, ProbabilitiesResponse{
			WheelID: wheel.ID,
			Probabilities: []domain.ParticipantOdds{
				{Name: "Alice", Weight: 1, Probability: 0.25},
				{Name: "Bob", Weight: 3, Probability: 0.75},
			},
		})
	})

	cmd, handler := WheelOddsCommand()
	handler(ctx.Session, commandInteraction(cmd.Name, stringOption(OptionWheel, "Raffle")), ctx.APIClient)

	embed := ctx.LastEmbed(t)
	assert.Equal(t, "**Bob**: 75.0% (weight 3.00)\n**Alice**: 25.0% (weight 1.00)", embed.Description)
}

func TestFormatOdds_Empty(t *testing.T) {
	assert.Equal(t, MsgEmptyWheel, formatOdds(nil))
}

func TestWheelResetCommand(t *testing.T) {
	ctx := SetupTestContext(t)
	wheel := domain.Wheel{ID: uuid.New(), Name: "Raffle"}
	serveWheels(ctx, wheel)

	ctx.Mux.HandleFunc("/api/v1/wheels/"+wheel.ID.String()+"/reset", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		reset := wheel
		reset.Participants = []domain.Participant{{Name: "Alice", Weight: 1}, {Name: "Bob", Weight: 1}}
		WriteJSON(w, reset)
	})

	cmd, handler := WheelResetCommand()
	require.NotNil(t, cmd.DefaultMemberPermissions)

	handler(ctx.Session, commandInteraction(cmd.Name, stringOption(OptionWheel, "Raffle")), ctx.APIClient)

	embed := ctx.LastEmbed(t)
	assert.Contains(t, embed.Description, MsgResetDescription)
	assert.Contains(t, embed.Description, "Participants: 2")
	assert.Equal(t, FooterWheelAdmin, embed.Footer.Text)
}

func TestRegisterWheelCommands(t *testing.T) {
	r := NewCommandRegistry()
	RegisterWheelCommands(r)

	assert.Len(t, r.Commands, 3)
	for _, name := range []string{CommandWheelSpin, CommandWheelOdds, CommandWheelReset} {
		assert.Contains(t, r.Handlers, name)
	}
}
