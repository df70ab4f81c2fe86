package oracle

import (
	"context"

	"google.golang.org/genai"

	"github.com/auradecor/studio/internal/utils"
	"github.com/auradecor/studio/models"
	"github.com/auradecor/studio/prompts"
	"github.com/auradecor/studio/types"
)

// AnalyzeFloorplan converts a floorplan image into the structured room model.
// The room set must be exhaustive, every room carries four wall descriptions,
// and every feature gets a sequential, location-qualified entry. A response
// that is not valid JSON for the schema is discarded entirely; the caller
// retries from scratch rather than adopting a partial analysis.
func (c *Client) AnalyzeFloorplan(ctx context.Context, image []byte, mimeType string) (models.FloorplanAnalysis, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	instruction, err := prompts.GetPrompt(prompts.KeyFloorplanAnalysis, c.templatesDir)
	if err != nil {
		return models.FloorplanAnalysis{}, err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(instruction),
		}, genai.RoleUser),
	}

	resp, err := c.vision.Models.GenerateContent(ctx, c.visionModel, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return models.FloorplanAnalysis{}, &types.OracleUnavailableError{Call: "analyze", Err: err}
	}

	raw := resp.Text()
	analysis, err := utils.ExtractAndParseJSON[models.FloorplanAnalysis](raw)
	if err != nil {
		return models.FloorplanAnalysis{}, &types.AnalysisParseError{Raw: raw, Err: err}
	}
	if err := analysis.Validate(); err != nil {
		return models.FloorplanAnalysis{}, &types.AnalysisParseError{Raw: raw, Err: err}
	}
	return analysis, nil
}

// Render produces a first-generation render for the prompt. There is no
// continuity constraint; the 16:9 frame matches the studio viewport.
func (c *Client) Render(ctx context.Context, prompt string) ([]byte, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	resp, err := c.vision.Models.GenerateContent(ctx, c.imageModel, contents, &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: "16:9"},
	})
	if err != nil {
		return nil, &types.OracleUnavailableError{Call: "render", Err: err}
	}
	image := firstImagePart(resp)
	if image == nil {
		return nil, &types.NoImageProducedError{Call: "render"}
	}
	return image, nil
}

// Refine produces a new render conditioned on the prior image, so only the
// prompt-described changes are visible. Used for every design after the first
// in a session.
func (c *Client) Refine(ctx context.Context, prompt string, priorImage []byte) ([]byte, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(priorImage, "image/png"),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	resp, err := c.vision.Models.GenerateContent(ctx, c.imageModel, contents, nil)
	if err != nil {
		return nil, &types.OracleUnavailableError{Call: "refine", Err: err}
	}
	image := firstImagePart(resp)
	if image == nil {
		return nil, &types.NoImageProducedError{Call: "refine"}
	}
	return image, nil
}

// firstImagePart returns the first inline image payload in the response, or
// nil when the oracle answered without one.
func firstImagePart(resp *genai.GenerateContentResponse) []byte {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}
