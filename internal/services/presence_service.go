package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/apperrors"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/realtime"
)

// PresenceStore is the persistence surface for presence records.
type PresenceStore interface {
	MarkOnline(userID uuid.UUID) (*models.UserStatus, error)
	MarkOffline(userID uuid.UUID) (*models.UserStatus, error)
	Heartbeat(userID uuid.UUID) error
	GetUserStatus(userID uuid.UUID) (*models.UserStatus, error)
	SweepStaleSessions(cutoff time.Time) ([]uuid.UUID, error)
}

// EventBus is the hub surface the presence service needs: publishing plus
// scoped subscriptions.
type EventBus interface {
	realtime.Publisher
	Subscribe(topic string) (<-chan realtime.Event, func())
}

// PresenceService tracks who is online. Session open marks a user online,
// the last session closing marks them offline, and a heartbeat sweep closes
// the gap left by sessions that die without the offline path running.
type PresenceService struct {
	store         PresenceStore
	bus           EventBus
	ttl           time.Duration
	sweepInterval time.Duration
	log           *zap.SugaredLogger
}

func NewPresenceService(store PresenceStore, bus EventBus, ttl, sweepInterval time.Duration, log *zap.SugaredLogger) *PresenceService {
	return &PresenceService{
		store:         store,
		bus:           bus,
		ttl:           ttl,
		sweepInterval: sweepInterval,
		log:           log,
	}
}

// MarkOnline is idempotent: repeated calls for an already-online user keep
// the flag true and refresh the heartbeat.
func (s *PresenceService) MarkOnline(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperrors.ErrAuthRequired
	}
	status, err := s.store.MarkOnline(userID)
	if err != nil {
		return apperrors.Store("mark online", err)
	}
	s.publish(status)
	return nil
}

func (s *PresenceService) MarkOffline(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperrors.ErrAuthRequired
	}
	status, err := s.store.MarkOffline(userID)
	if err != nil {
		return apperrors.Store("mark offline", err)
	}
	s.publish(status)
	return nil
}

func (s *PresenceService) Heartbeat(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperrors.ErrAuthRequired
	}
	if err := s.store.Heartbeat(userID); err != nil {
		return apperrors.Store("heartbeat", err)
	}
	return nil
}

// Status returns the point-in-time presence of a user. A user that was
// never seen reads as offline.
func (s *PresenceService) Status(userID uuid.UUID) (*models.UserStatus, error) {
	status, err := s.store.GetUserStatus(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.UserStatus{UserID: userID}, nil
		}
		return nil, apperrors.Store("get user status", err)
	}
	return status, nil
}

// Subscribe registers a listener for one user's presence changes. The
// returned cancel func must be called to release the subscription.
func (s *PresenceService) Subscribe(userID uuid.UUID) (<-chan realtime.Event, func()) {
	return s.bus.Subscribe(realtime.PresenceTopic(userID))
}

// Run sweeps stale sessions until stop is closed. Sessions whose heartbeat
// is older than the TTL are flipped offline and announced, so a crashed
// client cannot stay "online" forever.
func (s *PresenceService) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-stop:
			return
		}
	}
}

func (s *PresenceService) sweep() {
	ids, err := s.store.SweepStaleSessions(time.Now().Add(-s.ttl))
	if err != nil {
		s.log.Errorw("presence sweep failed", "error", err)
		return
	}
	for _, id := range ids {
		s.log.Infow("presence expired", "user_id", id)
		status, err := s.store.GetUserStatus(id)
		if err != nil {
			s.log.Errorw("failed to load swept status", "user_id", id, "error", err)
			continue
		}
		s.publish(status)
	}
}

func (s *PresenceService) publish(status *models.UserStatus) {
	s.bus.PublishTopic(realtime.PresenceTopic(status.UserID), realtime.Event{
		Type: realtime.EventPresenceUpdate,
		Data: realtime.PresencePayload(status),
	})
}
