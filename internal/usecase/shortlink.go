package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vadimbarashkov/shortlink-service/internal/encoder"
	"github.com/vadimbarashkov/shortlink-service/internal/entity"
)

type shortlinkRepository interface {
	NextID(ctx context.Context) (uint64, error)
	Save(ctx context.Context, sl *entity.Shortlink) (*entity.Shortlink, error)
	RetrieveByKey(ctx context.Context, key string) (*entity.Shortlink, error)
	RetrieveAndUpdateStats(ctx context.Context, key string) (*entity.Shortlink, error)
	RetrieveAll(ctx context.Context) ([]*entity.Shortlink, error)
	Remove(ctx context.Context, key string) error
}

type ShortlinkUseCase struct {
	repo    shortlinkRepository
	newUUID func() (uuid.UUID, error)
}

func NewShortlinkUseCase(repo shortlinkRepository) *ShortlinkUseCase {
	return &ShortlinkUseCase{
		repo:    repo,
		newUUID: uuid.NewRandom,
	}
}

// Generate stores a new shortlink with the given redirect schedule. Standard
// keys come from the sequential id counter, uuid keys are random.
func (uc *ShortlinkUseCase) Generate(ctx context.Context, keyType entity.KeyType, redirects []entity.Redirect) (*entity.Shortlink, error) {
	const op = "usecase.ShortlinkUseCase.Generate"

	if err := entity.ValidateRedirects(redirects); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	keyType = keyType.OrDefault()

	key, err := uc.newKey(ctx, keyType)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to generate key: %w", op, err)
	}

	sl, err := uc.repo.Save(ctx, &entity.Shortlink{
		Key:       key,
		KeyType:   keyType,
		Redirects: redirects,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to save shortlink: %w", op, err)
	}

	return sl, nil
}

func (uc *ShortlinkUseCase) newKey(ctx context.Context, keyType entity.KeyType) (string, error) {
	switch keyType {
	case entity.KeyTypeStandard:
		id, err := uc.repo.NextID(ctx)
		if err != nil {
			return "", err
		}
		return encoder.Encode(id), nil
	case entity.KeyTypeUUID:
		u, err := uc.newUUID()
		if err != nil {
			return "", err
		}
		return u.String(), nil
	default:
		return "", fmt.Errorf("unknown key type %q", keyType)
	}
}

// Resolve counts a visit and returns the URL the shortlink points to at time t.
// Keys that cannot have been issued for keyType are reported as not found.
func (uc *ShortlinkUseCase) Resolve(ctx context.Context, key string, keyType entity.KeyType, t time.Time) (string, error) {
	const op = "usecase.ShortlinkUseCase.Resolve"

	if !wellFormed(key, keyType.OrDefault()) {
		return "", fmt.Errorf("%s: malformed key %q: %w", op, key, entity.ErrShortlinkNotFound)
	}

	sl, err := uc.repo.RetrieveAndUpdateStats(ctx, key)
	if err != nil {
		return "", fmt.Errorf("%s: failed to resolve shortlink: %w", op, err)
	}

	url, err := sl.URLAt(t)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return url, nil
}

func wellFormed(key string, keyType entity.KeyType) bool {
	switch keyType {
	case entity.KeyTypeStandard:
		_, err := encoder.Decode(key)
		return err == nil
	case entity.KeyTypeUUID:
		_, err := uuid.Parse(key)
		return err == nil
	default:
		return false
	}
}

func (uc *ShortlinkUseCase) Stats(ctx context.Context, key string) (*entity.Shortlink, error) {
	const op = "usecase.ShortlinkUseCase.Stats"

	sl, err := uc.repo.RetrieveByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get shortlink stats: %w", op, err)
	}

	return sl, nil
}

func (uc *ShortlinkUseCase) List(ctx context.Context) ([]*entity.Shortlink, error) {
	const op = "usecase.ShortlinkUseCase.List"

	shortlinks, err := uc.repo.RetrieveAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list shortlinks: %w", op, err)
	}

	return shortlinks, nil
}

func (uc *ShortlinkUseCase) Deactivate(ctx context.Context, key string) error {
	const op = "usecase.ShortlinkUseCase.Deactivate"

	if err := uc.repo.Remove(ctx, key); err != nil {
		return fmt.Errorf("%s: failed to deactivate shortlink: %w", op, err)
	}

	return nil
}
