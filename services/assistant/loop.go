package assistant

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"superclinic/models"
	"superclinic/services/booking"
	"superclinic/utils"
)

const (
	defaultMaxToolRounds = 8
	maxRetryAttempts     = 5
	baseRetryDelay       = time.Second
)

// ErrToolRoundsExceeded means the model kept requesting tools past the
// per-turn bound without producing a final reply.
var ErrToolRoundsExceeded = errors.New("tool call rounds exceeded")

// Service runs the assistant dialogue: it relays user messages to the
// language model, executes the tool calls the model requests, and persists
// the growing conversation after every round.
type Service struct {
	llm       Client
	store     ChatStore
	booking   booking.Service
	catalog   []toolEntry
	log       *zap.Logger
	maxRounds int

	// sleep is swapped in tests to avoid real waits.
	sleep func(time.Duration)

	mu    sync.Mutex
	turns map[string]*sync.Mutex
}

// NewService wires the dialogue loop. maxRounds <= 0 falls back to the
// default bound.
func NewService(llm Client, store ChatStore, bookingSvc booking.Service, maxRounds int) *Service {
	if maxRounds <= 0 {
		maxRounds = defaultMaxToolRounds
	}
	s := &Service{
		llm:       llm,
		store:     store,
		booking:   bookingSvc,
		log:       utils.GetLogger(),
		maxRounds: maxRounds,
		sleep:     time.Sleep,
		turns:     make(map[string]*sync.Mutex),
	}
	s.catalog = s.buildCatalog()
	return s
}

// ProcessChat handles one user turn and returns the assistant's final text
// reply. Turns for the same user run one at a time; concurrent requests
// queue up so the history never interleaves.
func (s *Service) ProcessChat(ctx context.Context, userID, userMessage string) (string, error) {
	turn := s.turnLock(userID)
	turn.Lock()
	defer turn.Unlock()

	if err := s.store.Append(ctx, userID, models.ChatMessage{
		Role:    models.RoleUser,
		Content: userMessage,
	}); err != nil {
		return "", err
	}
	msgs, err := s.store.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	specs := s.ToolSpecs()
	for round := 0; round < s.maxRounds; round++ {
		reply, err := s.complete(ctx, msgs, specs)
		if err != nil {
			return "", err
		}

		if !reply.HasToolCalls() {
			msgs = append(msgs, models.ChatMessage{
				Role:    models.RoleAssistant,
				Content: reply.Content,
			})
			if err := s.store.Replace(ctx, userID, msgs); err != nil {
				return "", err
			}
			return reply.Content, nil
		}

		msgs = append(msgs, reply)
		msgs = append(msgs, s.runToolCalls(ctx, userID, reply)...)
		if err := s.store.Replace(ctx, userID, msgs); err != nil {
			return "", err
		}
	}

	s.log.Warn("Assistant exceeded tool round bound",
		zap.String("userId", userID), zap.Int("maxRounds", s.maxRounds))
	return "", ErrToolRoundsExceeded
}

// ClearHistory drops the user's conversation and reports whether one existed.
func (s *Service) ClearHistory(ctx context.Context, userID string) (bool, error) {
	return s.store.Clear(ctx, userID)
}

// runToolCalls executes every call in the reply and returns the result
// messages in call order. Modern calls answer on the tool role keyed by call
// id; the legacy single function_call answers on the function role keyed by
// name.
func (s *Service) runToolCalls(ctx context.Context, userID string, reply models.ChatMessage) []models.ChatMessage {
	var out []models.ChatMessage
	for _, tc := range reply.ToolCalls {
		id := tc.ID
		if id == "" {
			id = "call_" + uuid.NewString()
		}
		out = append(out, models.ChatMessage{
			Role:       models.RoleTool,
			Name:       tc.Name,
			ToolCallID: id,
			Content:    s.executeTool(ctx, userID, tc.Name, tc.Arguments),
		})
	}
	if len(reply.ToolCalls) == 0 && reply.FunctionCall != nil {
		fc := reply.FunctionCall
		out = append(out, models.ChatMessage{
			Role:    models.RoleFunction,
			Name:    fc.Name,
			Content: s.executeTool(ctx, userID, fc.Name, fc.Arguments),
		})
	}
	return out
}

// complete calls the model, retrying on rate limits with the provider's
// hinted delay when present, exponential backoff otherwise.
func (s *Service) complete(ctx context.Context, msgs []models.ChatMessage, specs []models.ToolSpec) (models.ChatMessage, error) {
	var lastErr error
	for attempt := 0; attempt < maxRetryAttempts; attempt++ {
		reply, err := s.llm.ChatCompletion(ctx, msgs, specs)
		if err == nil {
			return reply, nil
		}
		var rl *RateLimitError
		if !errors.As(err, &rl) {
			return models.ChatMessage{}, err
		}
		lastErr = err
		if attempt+1 == maxRetryAttempts {
			break
		}
		delay := baseRetryDelay << attempt
		if rl.RetryAfter > 0 {
			delay = rl.RetryAfter
		}
		s.log.Warn("Rate limited by model provider, retrying",
			zap.Int("attempt", attempt+1), zap.Duration("delay", delay))
		s.sleep(delay)
	}
	return models.ChatMessage{}, fmt.Errorf("model rate limit persisted: %w", lastErr)
}

func (s *Service) turnLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.turns[userID]
	if !ok {
		m = &sync.Mutex{}
		s.turns[userID] = m
	}
	return m
}
