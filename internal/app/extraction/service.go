package extraction

import (
	"context"
	"fmt"
	"sync"

	"github.com/smoralesv/itinera/internal/app/trips"
	"github.com/smoralesv/itinera/internal/domain"
	"github.com/smoralesv/itinera/internal/observability"
)

// DefaultSessionKey is the sentinel for callers that omit a session
// key. It is one shared conversation: callers needing isolation must
// supply their own key.
const DefaultSessionKey domain.SessionKey = "default"

// historyWindow is how many recent turn entries are replayed into the
// extractor context.
const historyWindow = 3

// Service is the conversational slot-filling engine. It keeps one
// ConversationState per session key, runs extraction turns against the
// model, and hands completed snapshots off to the trip service.
type Service struct {
	extractor domain.Extractor
	trips     *trips.Service
	preamble  string

	mu       sync.Mutex
	sessions map[domain.SessionKey]*session
}

// session pairs a ConversationState with its model-session handle.
// Its mutex serializes turns: one in-flight turn per key at a time.
type session struct {
	mu       sync.Mutex
	model    domain.ExtractorSession
	state    domain.ConversationState
	released bool
}

func NewService(extractor domain.Extractor, tripSvc *trips.Service, preamble string) *Service {
	return &Service{
		extractor: extractor,
		trips:     tripSvc,
		preamble:  preamble,
		sessions:  make(map[domain.SessionKey]*session),
	}
}

type TurnInput struct {
	SessionKey domain.SessionKey
	Text       string

	// TripID, when set, checkpoints the snapshot under that id on
	// every turn instead of waiting for completion.
	TripID domain.TripID
}

// ProcessTurn runs one conversational turn and returns the current
// slot snapshot. When the turn completes the profile, the session is
// released; on the implicit path persisting the snapshot is then the
// caller's responsibility.
func (s *Service) ProcessTurn(ctx context.Context, in TurnInput) (domain.TripSlots, error) {
	key := in.SessionKey
	if key == "" {
		key = DefaultSessionKey
	}

	sess, err := s.acquire(ctx, key)
	if err != nil {
		return domain.TripSlots{}, err
	}
	defer sess.mu.Unlock()

	log := observability.LoggerFromContext(ctx).With("session_key", key)

	sess.state.History = append(sess.state.History, domain.TurnEntry{
		Role: domain.RoleUser,
		Text: in.Text,
	})

	prompt := buildContext(s.preamble, sess.state.History, in.Text)

	raw, err := sess.model.Send(ctx, prompt)
	if err != nil {
		log.Error("extractor call failed", "error", err)
		return sess.state.Slots, fmt.Errorf("extractor: %w", err)
	}

	ext, err := parseExtraction(raw)
	if err != nil {
		// The failed turn leaves only its user entry behind, so a
		// corrected retry continues from a consistent state.
		log.Error("unparseable extractor output", "error", err)
		return sess.state.Slots, err
	}

	sess.state.Slots.Merge(ext)
	sess.state.History = append(sess.state.History, domain.TurnEntry{
		Role: domain.RoleAssistant,
		Text: ext.FollowUp,
	})

	snapshot := sess.state.Slots

	if in.TripID != "" {
		if err := s.trips.SaveSnapshot(in.TripID, snapshot); err != nil {
			log.Error("checkpoint write failed", "trip_id", in.TripID, "error", err)
			return snapshot, err
		}
	}

	if snapshot.IsComplete {
		log.Info("trip profile complete, releasing session")
		s.releaseLocked(key, sess)
	}

	return snapshot, nil
}

// Reset discards a session and its model handle. No-op for unknown keys.
func (s *Service) Reset(key domain.SessionKey) {
	if key == "" {
		key = DefaultSessionKey
	}

	s.mu.Lock()
	sess, ok := s.sessions[key]
	if ok {
		delete(s.sessions, key)
	}
	s.mu.Unlock()

	if !ok {
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !sess.released {
		sess.released = true
		_ = sess.model.Close()
	}
}

// acquire resolves or creates the session for a key and locks it for
// one turn. A session released while we waited on its lock is retried,
// so a turn never runs against discarded state.
func (s *Service) acquire(ctx context.Context, key domain.SessionKey) (*session, error) {
	for {
		s.mu.Lock()
		sess, ok := s.sessions[key]
		if !ok {
			model, err := s.extractor.NewSession(ctx)
			if err != nil {
				s.mu.Unlock()
				return nil, fmt.Errorf("opening extractor session: %w", err)
			}
			sess = &session{
				model: model,
				state: domain.ConversationState{Key: key},
			}
			s.sessions[key] = sess
		}
		s.mu.Unlock()

		sess.mu.Lock()
		if !sess.released {
			return sess, nil
		}
		sess.mu.Unlock()
	}
}

// releaseLocked ends a session's lifecycle. The caller holds sess.mu.
func (s *Service) releaseLocked(key domain.SessionKey, sess *session) {
	sess.released = true
	_ = sess.model.Close()

	s.mu.Lock()
	if current, ok := s.sessions[key]; ok && current == sess {
		delete(s.sessions, key)
	}
	s.mu.Unlock()
}
