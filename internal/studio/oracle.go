package studio

import (
	"context"

	"github.com/auradecor/studio/models"
)

// Oracle is the engine's view of the generative-AI service. The concrete
// implementation lives in internal/oracle; tests substitute fakes.
type Oracle interface {
	AnalyzeFloorplan(ctx context.Context, image []byte, mimeType string) (models.FloorplanAnalysis, error)
	CorrectArchitecture(ctx context.Context, room models.Room, correction string) (models.Room, error)
	GenerateDesignAids(ctx context.Context, room models.Room, style, refinement string) (models.DesignAids, error)
	Render(ctx context.Context, prompt string) ([]byte, error)
	Refine(ctx context.Context, prompt string, priorImage []byte) ([]byte, error)
	SupplierPackage(ctx context.Context, roomName string, materials []models.MaterialBreakdownItem) (models.SupplierRequest, error)
	Advise(ctx context.Context, transcript []models.ChatMessage) (string, error)
}
