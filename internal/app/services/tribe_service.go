package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/blogsphere/blogsphere/internal/app/models"
	"github.com/blogsphere/blogsphere/internal/app/models/dto"
	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
)

// TribeService defines the interface for tribe operations
type TribeService interface {
	Create(ctx context.Context, ownerID int64, req *dto.CreateTribeRequest) (*dto.TribeResponse, error)
	GetByID(ctx context.Context, tribeID, viewerID int64) (*dto.TribeResponse, error)
	List(ctx context.Context, viewerID int64, search string) (*dto.TribeListResponse, error)
	ListMine(ctx context.Context, userID int64) (*dto.TribeListResponse, error)
	Update(ctx context.Context, tribeID, userID int64, req *dto.UpdateTribeRequest) (*dto.TribeResponse, error)
	Delete(ctx context.Context, tribeID, userID int64) error
	Join(ctx context.Context, tribeID, userID int64, joinCode string) error
	Leave(ctx context.Context, tribeID, userID int64) error
	IsMember(ctx context.Context, tribeID, userID int64) (bool, error)
}

type tribeServiceImpl struct {
	tribeStore  TribeStore
	memberStore TribeMemberStore
	logger      zerolog.Logger
}

// NewTribeService creates a new TribeService
func NewTribeService(tribeStore TribeStore, memberStore TribeMemberStore, logger zerolog.Logger) TribeService {
	return &tribeServiceImpl{
		tribeStore:  tribeStore,
		memberStore: memberStore,
		logger:      logger,
	}
}

// validatePrivacy checks the privacy/join-code pairing: private tribes need
// a code, public tribes must not carry one.
func validatePrivacy(privacy models.TribePrivacy, joinCode string) (string, error) {
	switch privacy {
	case models.TribePrivate:
		if joinCode == "" {
			return "", apperrors.ErrJoinCodeRequired
		}
		return joinCode, nil
	case models.TribePublic:
		return "", nil
	default:
		return "", apperrors.NewBadRequestError("unknown privacy setting")
	}
}

// Create creates a tribe; the owner becomes its first member
func (s *tribeServiceImpl) Create(ctx context.Context, ownerID int64, req *dto.CreateTribeRequest) (*dto.TribeResponse, error) {
	privacy := models.TribePrivacy(req.Privacy)
	joinCode, err := validatePrivacy(privacy, req.JoinCode)
	if err != nil {
		return nil, err
	}

	tribeID, err := s.tribeStore.Create(ctx, strings.TrimSpace(req.Name), req.Description, ownerID, privacy, joinCode)
	if err != nil {
		return nil, err
	}

	if _, err := s.memberStore.Add(ctx, tribeID, ownerID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("tribeID", tribeID).Int64("ownerID", ownerID).Msg("Tribe created")

	return s.GetByID(ctx, tribeID, ownerID)
}

// GetByID retrieves a tribe with the viewer's membership flag
func (s *tribeServiceImpl) GetByID(ctx context.Context, tribeID, viewerID int64) (*dto.TribeResponse, error) {
	tribe, err := s.tribeStore.GetByID(ctx, tribeID, viewerID)
	if err != nil {
		return nil, err
	}

	response := dto.ToTribeResponse(tribe)
	return &response, nil
}

// List retrieves all tribes; private tribes appear in discovery but their
// join code never leaves the server.
func (s *tribeServiceImpl) List(ctx context.Context, viewerID int64, search string) (*dto.TribeListResponse, error) {
	tribes, err := s.tribeStore.List(ctx, viewerID, search)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TribeResponse, 0, len(tribes))
	for _, tribe := range tribes {
		responses = append(responses, dto.ToTribeResponse(tribe))
	}

	return &dto.TribeListResponse{Tribes: responses}, nil
}

// ListMine retrieves the tribes the user belongs to
func (s *tribeServiceImpl) ListMine(ctx context.Context, userID int64) (*dto.TribeListResponse, error) {
	tribes, err := s.tribeStore.ListForMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TribeResponse, 0, len(tribes))
	for _, tribe := range tribes {
		responses = append(responses, dto.ToTribeResponse(tribe))
	}

	return &dto.TribeListResponse{Tribes: responses}, nil
}

// Update edits a tribe. Only the owner may edit. Switching to private
// requires a join code; switching to public clears the stored code.
func (s *tribeServiceImpl) Update(ctx context.Context, tribeID, userID int64, req *dto.UpdateTribeRequest) (*dto.TribeResponse, error) {
	tribe, err := s.tribeStore.GetByID(ctx, tribeID, userID)
	if err != nil {
		return nil, err
	}

	if tribe.OwnerID != userID {
		return nil, apperrors.NewForbiddenError("only the owner can edit this tribe")
	}

	privacy := models.TribePrivacy(req.Privacy)
	joinCode := req.JoinCode
	// Keeping a private tribe private without resending the code keeps the
	// existing one
	if privacy == models.TribePrivate && joinCode == "" && tribe.Privacy == models.TribePrivate {
		joinCode = tribe.JoinCode
	}

	joinCode, err = validatePrivacy(privacy, joinCode)
	if err != nil {
		return nil, err
	}

	err = s.tribeStore.Update(ctx, tribeID, strings.TrimSpace(req.Name), req.Description, privacy, joinCode)
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, tribeID, userID)
}

// Delete removes a tribe. Only the owner may delete; members and messages
// cascade away with it.
func (s *tribeServiceImpl) Delete(ctx context.Context, tribeID, userID int64) error {
	tribe, err := s.tribeStore.GetByID(ctx, tribeID, userID)
	if err != nil {
		return err
	}

	if tribe.OwnerID != userID {
		return apperrors.NewForbiddenError("only the owner can delete this tribe")
	}

	return s.tribeStore.Delete(ctx, tribeID)
}

// Join adds the user as a member. Private tribes require the matching join
// code; joining a tribe twice is a no-op.
func (s *tribeServiceImpl) Join(ctx context.Context, tribeID, userID int64, joinCode string) error {
	tribe, err := s.tribeStore.GetByID(ctx, tribeID, userID)
	if err != nil {
		return err
	}

	if tribe.Privacy == models.TribePrivate {
		if joinCode == "" {
			return apperrors.ErrJoinCodeRequired
		}
		if joinCode != tribe.JoinCode {
			return apperrors.ErrWrongJoinCode
		}
	}

	created, err := s.memberStore.Add(ctx, tribeID, userID)
	if err != nil {
		return err
	}

	if created {
		s.logger.Info().Int64("tribeID", tribeID).Int64("userID", userID).Msg("User joined tribe")
	}

	return nil
}

// Leave removes the user's membership. The owner cannot leave their own
// tribe; they delete it instead.
func (s *tribeServiceImpl) Leave(ctx context.Context, tribeID, userID int64) error {
	tribe, err := s.tribeStore.GetByID(ctx, tribeID, userID)
	if err != nil {
		return err
	}

	if tribe.OwnerID == userID {
		return apperrors.NewForbiddenError("the owner cannot leave their own tribe")
	}

	_, err = s.memberStore.Remove(ctx, tribeID, userID)
	return err
}

// IsMember reports whether the user belongs to the tribe
func (s *tribeServiceImpl) IsMember(ctx context.Context, tribeID, userID int64) (bool, error) {
	return s.memberStore.IsMember(ctx, tribeID, userID)
}
