package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/auradecor/studio/models"
	"github.com/auradecor/studio/types"
)

// fakeChatModel scripts the oracle's text replies.
type fakeChatModel struct {
	reply string
	err   error
	// last captures the request for assertions.
	last []*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.last = in
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("streaming not supported")
}

func testRoom() models.Room {
	return models.Room{
		Name: "living_room",
		Size: "5x7m",
		Walls: models.Walls{
			N: "Plain wall.",
			S: "Window wall.",
			E: "Fireplace wall.",
			W: "Entry wall.",
		},
		Entry: "W",
		Features: []models.Feature{
			{ID: "W1", Type: models.FeatureWindow, Description: "Window centered on the S wall."},
			{ID: "D1", Type: models.FeatureDoor, Description: "Door centered on the W wall."},
		},
	}
}

func clientWith(chat model.BaseChatModel) *Client {
	return &Client{chat: chat}
}

func TestCorrectArchitectureRoundTrip(t *testing.T) {
	room := testRoom()
	reply, _ := json.Marshal(room)
	fake := &fakeChatModel{reply: string(reply)}

	updated, err := clientWith(fake).CorrectArchitecture(context.Background(), room, "please keep everything as is")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A no-op correction must leave the feature ID set unchanged.
	got := updated.SortedFeatureIDs()
	want := room.SortedFeatureIDs()
	if len(got) != len(want) {
		t.Fatalf("feature IDs changed: got %v want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("feature IDs changed: got %v want %v", got, want)
		}
	}
}

func TestCorrectArchitectureRejectsDroppedID(t *testing.T) {
	room := testRoom()
	mutated := testRoom()
	mutated.Features = mutated.Features[:1] // D1 silently gone
	reply, _ := json.Marshal(mutated)
	fake := &fakeChatModel{reply: string(reply)}

	_, err := clientWith(fake).CorrectArchitecture(context.Background(), room, "move W1 to the N wall")
	var parseErr *types.CorrectionParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected CorrectionParseError, got %v", err)
	}
}

func TestCorrectArchitectureAllowsExplicitRemoval(t *testing.T) {
	room := testRoom()
	mutated := testRoom()
	mutated.Features = mutated.Features[:1]
	reply, _ := json.Marshal(mutated)
	fake := &fakeChatModel{reply: string(reply)}

	updated, err := clientWith(fake).CorrectArchitecture(context.Background(), room, "remove D1, it does not exist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.Features) != 1 {
		t.Errorf("expected 1 feature, got %d", len(updated.Features))
	}
}

func TestCorrectArchitectureRejectsMalformedReply(t *testing.T) {
	fake := &fakeChatModel{reply: "I cannot help with that."}
	_, err := clientWith(fake).CorrectArchitecture(context.Background(), testRoom(), "move W1 somewhere")
	var parseErr *types.CorrectionParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected CorrectionParseError, got %v", err)
	}
}

func TestCorrectArchitectureRejectsSchemaViolation(t *testing.T) {
	// Valid JSON, wrong schema: entry outside the wall keys.
	fake := &fakeChatModel{reply: `{"name":"x","size":"1x1m","walls":{"N":"a","S":"b","E":"c","W":"d"},"entry":"NE","features":[]}`}
	_, err := clientWith(fake).CorrectArchitecture(context.Background(), testRoom(), "move W1 somewhere")
	var parseErr *types.CorrectionParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected CorrectionParseError, got %v", err)
	}
}

func TestCorrectArchitectureWrapsTransportError(t *testing.T) {
	fake := &fakeChatModel{err: fmt.Errorf("connection refused")}
	_, err := clientWith(fake).CorrectArchitecture(context.Background(), testRoom(), "move W1")
	var unavailable *types.OracleUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected OracleUnavailableError, got %v", err)
	}
}

func TestGenerateDesignAids(t *testing.T) {
	fake := &fakeChatModel{reply: "```json\n" + `{"imagePrompt":"A Scandinavian living room","materialBreakdown":[{"name":"oak flooring","description":"35 sqm"}],"albumTitle":"Scandinavian Calm"}` + "\n```"}

	aids, err := clientWith(fake).GenerateDesignAids(context.Background(), testRoom(), "Scandinavian", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aids.AlbumTitle != "Scandinavian Calm" || len(aids.MaterialBreakdown) != 1 {
		t.Errorf("got %+v", aids)
	}
	// The rendered prompt must carry the room data and the style.
	sent := fake.last[len(fake.last)-1].Content
	for _, want := range []string{"Scandinavian", "living_room", "W wall", "W1"} {
		if !contains(sent, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerateDesignAidsRefinementBlock(t *testing.T) {
	fake := &fakeChatModel{reply: `{"imagePrompt":"p","materialBreakdown":[{"name":"n","description":"d"}],"albumTitle":"t"}`}

	if _, err := clientWith(fake).GenerateDesignAids(context.Background(), testRoom(), "Industrial", "add brass fittings"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sent := fake.last[len(fake.last)-1].Content
	if !contains(sent, "refinement of a previous design") || !contains(sent, "add brass fittings") {
		t.Errorf("refinement block missing from prompt:\n%s", sent)
	}
}

func TestGenerateDesignAidsMalformed(t *testing.T) {
	fake := &fakeChatModel{reply: `{"imagePrompt":""}`}
	_, err := clientWith(fake).GenerateDesignAids(context.Background(), testRoom(), "Coastal", "")
	var parseErr *types.DesignAidParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected DesignAidParseError, got %v", err)
	}
}

func TestSupplierPackage(t *testing.T) {
	fake := &fakeChatModel{reply: `{"room":"living_room","materials":[{"oak flooring":"35 sqm"}]}`}

	pkg, err := clientWith(fake).SupplierPackage(context.Background(), "living_room", []models.MaterialBreakdownItem{{Name: "oak flooring", Description: "35 sqm"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pkg.Room != "living_room" || len(pkg.Materials) != 1 {
		t.Errorf("got %+v", pkg)
	}
}

func TestAdviseMapsTranscript(t *testing.T) {
	fake := &fakeChatModel{reply: "Try lighter curtains."}
	transcript := []models.ChatMessage{
		{Sender: models.SenderUser, Text: "What color suits a north-facing room?"},
		{Sender: models.SenderAI, Text: "Warm whites work well."},
		{Sender: models.SenderUser, Text: "And the curtains?"},
	}

	reply, err := clientWith(fake).Advise(context.Background(), transcript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Try lighter curtains." {
		t.Errorf("got %q", reply)
	}
	if len(fake.last) != 4 {
		t.Fatalf("expected system + 3 transcript messages, got %d", len(fake.last))
	}
	if fake.last[0].Role != schema.System {
		t.Errorf("first message role = %s, want system", fake.last[0].Role)
	}
	if fake.last[2].Role != schema.Assistant {
		t.Errorf("ai transcript entry role = %s, want assistant", fake.last[2].Role)
	}
}

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}
