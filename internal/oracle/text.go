package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/auradecor/studio/internal/utils"
	"github.com/auradecor/studio/models"
	"github.com/auradecor/studio/prompts"
	"github.com/auradecor/studio/types"
)

// CorrectArchitecture applies a natural-language correction to a room and
// returns the replacement room. The oracle replaces the whole object, so the
// result is only accepted when it round-trips the schema and keeps every
// original feature ID, unless the instruction itself asks for a removal.
// On any violation the caller keeps the prior room; no partial correction is
// ever applied.
func (c *Client) CorrectArchitecture(ctx context.Context, room models.Room, correction string) (models.Room, error) {
	roomJSON, err := json.Marshal(room)
	if err != nil {
		return models.Room{}, fmt.Errorf("marshal room: %w", err)
	}

	prompt, err := c.prompt(prompts.KeyArchitectureCorrection, map[string]string{
		"RoomJSON":   string(roomJSON),
		"Correction": correction,
	})
	if err != nil {
		return models.Room{}, err
	}

	raw, err := c.generate(ctx, "correct", prompt)
	if err != nil {
		return models.Room{}, err
	}

	updated, err := utils.ExtractAndParseJSON[models.Room](raw)
	if err != nil {
		return models.Room{}, &types.CorrectionParseError{Raw: raw, Err: err}
	}
	if err := updated.Validate(); err != nil {
		return models.Room{}, &types.CorrectionParseError{Raw: raw, Err: err}
	}
	if err := checkFeatureIDsPreserved(room, updated, correction); err != nil {
		return models.Room{}, &types.CorrectionParseError{Raw: raw, Err: err}
	}
	return updated, nil
}

// checkFeatureIDsPreserved rejects replacement rooms that silently drop
// feature IDs. A dropped ID is tolerated only when the instruction textually
// requests a removal, because the oracle then legitimately retired it.
func checkFeatureIDsPreserved(original, updated models.Room, correction string) error {
	updatedIDs := updated.FeatureIDSet()
	var missing []string
	for _, id := range original.FeatureIDs() {
		if !updatedIDs[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	lower := strings.ToLower(correction)
	for _, verb := range []string{"remove", "delete", "get rid of"} {
		if strings.Contains(lower, verb) {
			return nil
		}
	}
	return fmt.Errorf("correction dropped feature IDs %v without the instruction asking for a removal", missing)
}

// GenerateDesignAids produces the render prompt, material breakdown, and album
// title for a room in the given style. A non-empty refinement asks for the
// base style plus the requested change. The prompt pins the room architecture
// and the fixed camera framing so sequential renders stay comparable.
func (c *Client) GenerateDesignAids(ctx context.Context, room models.Room, style, refinement string) (models.DesignAids, error) {
	wallsJSON, err := json.Marshal(room.Walls)
	if err != nil {
		return models.DesignAids{}, fmt.Errorf("marshal walls: %w", err)
	}
	featuresJSON, err := json.Marshal(room.Features)
	if err != nil {
		return models.DesignAids{}, fmt.Errorf("marshal features: %w", err)
	}

	prompt, err := c.prompt(prompts.KeyDesignAids, map[string]string{
		"Style":        style,
		"Refinement":   refinement,
		"RoomName":     room.Name,
		"RoomSize":     room.Size,
		"Entry":        room.Entry,
		"WallsJSON":    string(wallsJSON),
		"FeaturesJSON": string(featuresJSON),
	})
	if err != nil {
		return models.DesignAids{}, err
	}

	raw, err := c.generate(ctx, "designAids", prompt)
	if err != nil {
		return models.DesignAids{}, err
	}

	aids, err := utils.ExtractAndParseJSON[models.DesignAids](raw)
	if err != nil {
		return models.DesignAids{}, &types.DesignAidParseError{Raw: raw, Err: err}
	}
	if err := aids.Validate(); err != nil {
		return models.DesignAids{}, &types.DesignAidParseError{Raw: raw, Err: err}
	}
	return aids, nil
}

// SupplierPackage reshapes a design's material list into a room-scoped
// supplier request document.
func (c *Client) SupplierPackage(ctx context.Context, roomName string, materials []models.MaterialBreakdownItem) (models.SupplierRequest, error) {
	materialsJSON, err := json.Marshal(materials)
	if err != nil {
		return models.SupplierRequest{}, fmt.Errorf("marshal materials: %w", err)
	}

	prompt, err := c.prompt(prompts.KeySupplierPackage, map[string]string{
		"RoomName":      roomName,
		"MaterialsJSON": string(materialsJSON),
	})
	if err != nil {
		return models.SupplierRequest{}, err
	}

	raw, err := c.generate(ctx, "supplierPackage", prompt)
	if err != nil {
		return models.SupplierRequest{}, err
	}

	pkg, err := utils.ExtractAndParseJSON[models.SupplierRequest](raw)
	if err != nil {
		return models.SupplierRequest{}, fmt.Errorf("parse supplier package: %w", err)
	}
	if err := pkg.Validate(); err != nil {
		return models.SupplierRequest{}, fmt.Errorf("supplier package: %w", err)
	}
	return pkg, nil
}

// Advise runs the conversational advisor over the full chat transcript and
// returns a free-text reply for the chat log.
func (c *Client) Advise(ctx context.Context, transcript []models.ChatMessage) (string, error) {
	persona, err := prompts.GetPrompt(prompts.KeyDesignAdvisor, c.templatesDir)
	if err != nil {
		return "", err
	}

	messages := make([]*schema.Message, 0, len(transcript)+1)
	messages = append(messages, schema.SystemMessage(persona))
	for _, msg := range transcript {
		if msg.Sender == models.SenderUser {
			messages = append(messages, schema.UserMessage(msg.Text))
		} else {
			messages = append(messages, schema.AssistantMessage(msg.Text, nil))
		}
	}

	resp, err := c.chat.Generate(ctx, messages)
	if err != nil {
		return "", &types.OracleUnavailableError{Call: "advise", Err: err}
	}
	if strings.TrimSpace(resp.Content) == "" {
		return "I'm not sure how to answer that. Could you rephrase?", nil
	}
	return resp.Content, nil
}
