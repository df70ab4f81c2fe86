package studio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/auradecor/studio/models"
)

var (
	// ErrSessionBusy is returned when a design or correction request arrives
	// while another is in flight. The router is non-reentrant: an interleaved
	// correction would read a stale room model and silently lose the first
	// edit, so concurrent submissions are rejected, never interleaved.
	ErrSessionBusy = errors.New("a request is already in flight for this session")

	// ErrNoDesign is returned for operations that need a current design.
	ErrNoDesign = errors.New("no design has been generated yet")

	// ErrNoStyle is returned when an initial generation has no style.
	ErrNoStyle = errors.New("a design style is required")
)

// Canned chat replies, matching the studio's voice.
const (
	noDesignReply            = "Please generate a design first, then you can ask me to refine it!"
	architectureUpdatedReply = "I've updated the room's architecture. Now, I'm regenerating the design with this correction."
	chatErrorReply           = "Sorry, I encountered an error. Please try rephrasing your request."
)

// Session is one room's design session: the mutable room model, the
// append-only design history, and the chat transcript. All engine operations
// go through the session, which enforces the single-in-flight discipline and
// commits state only after the oracle calls for a step have succeeded.
type Session struct {
	ID string

	oracle     Oracle
	classifier Classifier

	mu      sync.Mutex
	busy    bool
	room    models.Room
	style   string
	history *History
	chat    []models.ChatMessage
}

// NewSession starts a design session for one room.
func NewSession(o Oracle, room models.Room) *Session {
	return &Session{
		ID:         uuid.NewString(),
		oracle:     o,
		classifier: KeywordClassifier{},
		room:       room,
		history:    NewHistory(),
	}
}

// SetClassifier swaps the intent classifier (tests, future model-backed
// classifiers).
func (s *Session) SetClassifier(c Classifier) { s.classifier = c }

// begin marks the session busy or rejects the caller.
func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrSessionBusy
	}
	s.busy = true
	return nil
}

func (s *Session) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// Room returns a copy of the current room model.
func (s *Session) Room() models.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room
}

// Style returns the session's base style.
func (s *Session) Style() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style
}

// Transcript returns a copy of the chat log.
func (s *Session) Transcript() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.chat))
	copy(out, s.chat)
	return out
}

// Designs returns a copy of the design album.
func (s *Session) Designs() []models.Design {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Designs()
}

// CurrentDesign returns a copy of the current design, or nil.
func (s *Session) CurrentDesign() *models.Design {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Current()
}

// CurrentIndex returns the current design index, or -1.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CurrentIndex()
}

// SetCurrent switches which album entry is displayed.
func (s *Session) SetCurrent(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.SetCurrent(i)
}

// ToggleSelect toggles export selection for a version token, capped at
// MaxSelectedDesigns.
func (s *Session) ToggleSelect(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.ToggleSelect(id)
}

// SelectedDesigns returns the designs currently selected for export.
func (s *Session) SelectedDesigns() []models.Design {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Selected()
}

// NewConcept clears the current design pointer and base style so the user can
// start over. The album and the chat transcript are retained.
func (s *Session) NewConcept() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.ClearCurrent()
	s.style = ""
}

// Generate produces a fresh design concept in the given style and appends it
// to the history. Nothing is committed when any oracle step fails.
func (s *Session) Generate(ctx context.Context, style string) (*models.Design, error) {
	if strings.TrimSpace(style) == "" {
		return nil, ErrNoStyle
	}
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	room := s.Room()
	aids, err := s.oracle.GenerateDesignAids(ctx, room, style, "")
	if err != nil {
		return nil, err
	}
	image, err := s.oracle.Render(ctx, aids.ImagePrompt)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = style
	idx := s.history.Append(models.Design{
		Title:     aids.AlbumTitle,
		Image:     image,
		Materials: aids.MaterialBreakdown,
		Prompt:    aids.ImagePrompt,
	})
	d := s.history.Designs()[idx]
	return &d, nil
}

// RefineDesign produces the next design version: base style plus the
// instruction, rendered as a refinement of the current image.
func (s *Session) RefineDesign(ctx context.Context, instruction string) (*models.Design, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()
	return s.refine(ctx, instruction)
}

// refine runs the designAids + refine-render pass. Callers hold the busy flag.
func (s *Session) refine(ctx context.Context, instruction string) (*models.Design, error) {
	s.mu.Lock()
	room := s.room
	style := s.style
	cur := s.history.Current()
	s.mu.Unlock()
	if cur == nil {
		return nil, ErrNoDesign
	}

	aids, err := s.oracle.GenerateDesignAids(ctx, room, style, instruction)
	if err != nil {
		return nil, err
	}

	// Serialize the prior image at call time, after the aid generation round
	// trip, so the refinement is conditioned on the committed current image
	// rather than a reference captured earlier.
	s.mu.Lock()
	cur = s.history.Current()
	s.mu.Unlock()
	if cur == nil {
		return nil, ErrNoDesign
	}
	prior := make([]byte, len(cur.Image))
	copy(prior, cur.Image)

	image, err := s.oracle.Refine(ctx, aids.ImagePrompt, prior)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.history.Append(models.Design{
		Title:     aids.AlbumTitle,
		Image:     image,
		Materials: aids.MaterialBreakdown,
		Prompt:    aids.ImagePrompt,
	})
	d := s.history.Designs()[idx]
	return &d, nil
}

// ChatResult reports what a chat turn did. Partial effects are real: an
// advisor reply may be committed even when the design pass failed, and a new
// design may be committed even when the advisor failed. The accompanying
// error reports whichever step went wrong.
type ChatResult struct {
	Intent Intent
	Reply  string
	Design *models.Design
}

// HandleChat routes one chat message. Architectural messages correct the room
// model and regenerate; everything else gets advisor output and is still
// treated as a styling refinement request. Before any design exists, the user
// is asked to generate one first and no oracle design calls occur.
func (s *Session) HandleChat(ctx context.Context, text string) (ChatResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ChatResult{}, fmt.Errorf("empty chat message")
	}
	if err := s.begin(); err != nil {
		return ChatResult{}, err
	}
	defer s.end()

	s.appendChat(models.SenderUser, text)

	s.mu.Lock()
	cur := s.history.Current()
	featureIDs := s.room.FeatureIDs()
	room := s.room
	s.mu.Unlock()

	if cur == nil {
		s.appendChat(models.SenderAI, noDesignReply)
		return ChatResult{Intent: IntentStylistic, Reply: noDesignReply}, nil
	}

	intent := s.classifier.Classify(text, featureIDs)
	if intent == IntentArchitectural {
		return s.handleArchitectural(ctx, room, text)
	}
	return s.handleStylistic(ctx, text)
}

func (s *Session) handleArchitectural(ctx context.Context, room models.Room, text string) (ChatResult, error) {
	updated, err := s.oracle.CorrectArchitecture(ctx, room, text)
	if err != nil {
		// The prior room stands; no partial correction is ever applied.
		s.appendChat(models.SenderAI, chatErrorReply)
		return ChatResult{Intent: IntentArchitectural, Reply: chatErrorReply}, err
	}

	s.mu.Lock()
	s.room = updated
	s.mu.Unlock()
	s.appendChat(models.SenderAI, architectureUpdatedReply)

	design, genErr := s.refine(ctx, text)
	if genErr != nil {
		return ChatResult{Intent: IntentArchitectural, Reply: architectureUpdatedReply}, genErr
	}
	return ChatResult{Intent: IntentArchitectural, Reply: architectureUpdatedReply, Design: design}, nil
}

func (s *Session) handleStylistic(ctx context.Context, text string) (ChatResult, error) {
	// Advisor reply and design refinement are independent effects: one
	// failing must not roll back or block the other.
	reply, advErr := s.oracle.Advise(ctx, s.Transcript())
	if advErr == nil {
		s.appendChat(models.SenderAI, reply)
	}

	design, genErr := s.refine(ctx, text)

	result := ChatResult{Intent: IntentStylistic, Design: design}
	if advErr == nil {
		result.Reply = reply
	}
	if advErr != nil && genErr != nil {
		s.appendChat(models.SenderAI, chatErrorReply)
		result.Reply = chatErrorReply
	}
	return result, errors.Join(advErr, genErr)
}

// RequestQuotes compiles the supplier package for the current design.
func (s *Session) RequestQuotes(ctx context.Context) (models.SupplierRequest, error) {
	if err := s.begin(); err != nil {
		return models.SupplierRequest{}, err
	}
	defer s.end()

	s.mu.Lock()
	roomName := s.room.Name
	cur := s.history.Current()
	s.mu.Unlock()
	if cur == nil {
		return models.SupplierRequest{}, ErrNoDesign
	}
	return s.oracle.SupplierPackage(ctx, roomName, cur.Materials)
}

func (s *Session) appendChat(sender models.ChatSender, text string) {
	s.mu.Lock()
	s.chat = append(s.chat, models.ChatMessage{Sender: sender, Text: text})
	s.mu.Unlock()
}
