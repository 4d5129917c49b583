package services

import (
	"context"
	"errors"

	"go-web-services/shortcode"
	"go-web-services/storage"
	"go-web-services/types"
)

var (
	ErrShortCodeNotFound  = errors.New("short code not found")
	ErrCapacityReached    = errors.New("storage capacity reached")
	ErrCodeSpaceExhausted = errors.New("could not generate a unique short code")
)

// maxGenerateAttempts bounds the collision-retry loop. Collisions are
// astronomically unlikely at realistic table sizes, so exhausting the
// attempts indicates something is broken rather than bad luck.
const maxGenerateAttempts = 5

func handleStorageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrCodeNotFound):
		return ErrShortCodeNotFound
	case errors.Is(err, storage.ErrStorageCapacityReached):
		return ErrCapacityReached
	default:
		return err
	}
}

// URLService exposes the shorten, redirect and stats operations over the
// mapping store.
type URLService interface {
	CreateShortURL(ctx context.Context, originalURL string) (types.URLRecord, error)
	Resolve(ctx context.Context, code string) (types.URLRecord, error)
	Stats(ctx context.Context, code string) (types.URLRecord, error)
}

type urlService struct {
	store      storage.URLStorage
	codeLength int
}

// NewURLService creates a URLService over the given store. A non-positive
// codeLength falls back to the default.
func NewURLService(store storage.URLStorage, codeLength int) URLService {
	if codeLength <= 0 {
		codeLength = shortcode.DefaultLength
	}
	return &urlService{store: store, codeLength: codeLength}
}

// CreateShortURL stores the original URL under a freshly generated code and
// returns the stored record. Code collisions are the caller's problem, not
// the store's: on a duplicate the code is regenerated, up to
// maxGenerateAttempts times.
func (s *urlService) CreateShortURL(ctx context.Context, originalURL string) (types.URLRecord, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code, err := shortcode.Generate(s.codeLength)
		if err != nil {
			return types.URLRecord{}, err
		}

		err = s.store.Put(ctx, types.URLRecord{
			ShortCode:   code,
			OriginalURL: originalURL,
		})
		if err != nil {
			if errors.Is(err, storage.ErrCodeExists) {
				continue
			}
			return types.URLRecord{}, handleStorageError(err)
		}

		record, err := s.store.Get(ctx, code)
		if err != nil {
			return types.URLRecord{}, handleStorageError(err)
		}
		return record, nil
	}

	return types.URLRecord{}, ErrCodeSpaceExhausted
}

// Resolve records a click on the code and returns the updated record. It is
// the redirect path: click count and last access time move together with the
// lookup.
func (s *urlService) Resolve(ctx context.Context, code string) (types.URLRecord, error) {
	record, err := s.store.RecordClick(ctx, code)
	if err != nil {
		return types.URLRecord{}, handleStorageError(err)
	}
	return record, nil
}

// Stats returns a snapshot of the record without counting a click.
func (s *urlService) Stats(ctx context.Context, code string) (types.URLRecord, error) {
	record, err := s.store.Get(ctx, code)
	if err != nil {
		return types.URLRecord{}, handleStorageError(err)
	}
	return record, nil
}
