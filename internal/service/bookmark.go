package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/db"
)

type (
	BookmarkStore interface {
		BookmarksByUser(ctx context.Context, userID uint64) ([]db.Bookmark, error)
		CreateBookmark(ctx context.Context, bookmark *db.Bookmark) error
		BookmarkByID(ctx context.Context, id uint64) (*db.Bookmark, error)
		UpdateBookmark(ctx context.Context, id uint64, patch db.BookmarkPatch) (*db.Bookmark, error)
		DeleteBookmark(ctx context.Context, id uint64) error
	}

	BookmarkInput struct {
		Title       string
		Description *string
		Link        string
	}

	Bookmarks struct {
		store  BookmarkStore
		logger *zap.SugaredLogger
	}
)

func NewBookmarks(store BookmarkStore, l *zap.SugaredLogger) *Bookmarks {
	return &Bookmarks{
		store:  store,
		logger: l,
	}
}

func (s *Bookmarks) List(ctx context.Context, userID uint64) ([]db.Bookmark, error) {
	bookmarks, err := s.store.BookmarksByUser(ctx, userID)
	if err != nil {
		return nil, s.internal("list bookmarks", err)
	}
	return bookmarks, nil
}

func (s *Bookmarks) Create(ctx context.Context, userID uint64, in BookmarkInput) (*db.Bookmark, error) {
	bookmark := db.Bookmark{
		Title:       in.Title,
		Description: in.Description,
		Link:        in.Link,
		UserID:      userID,
	}
	if err := s.store.CreateBookmark(ctx, &bookmark); err != nil {
		if errors.Is(err, db.ErrInvalidData) {
			return nil, errors.Wrap(ErrBadRequest, "invalid bookmark data")
		}
		return nil, s.internal("create bookmark", err)
	}
	return &bookmark, nil
}

// Get reads any bookmark by id regardless of owner.
func (s *Bookmarks) Get(ctx context.Context, id uint64) (*db.Bookmark, error) {
	bookmark, err := s.store.BookmarkByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, s.internal("get bookmark", err)
	}
	return bookmark, nil
}

func (s *Bookmarks) Edit(ctx context.Context, userID, id uint64, patch db.BookmarkPatch) (*db.Bookmark, error) {
	if err := s.checkOwner(ctx, userID, id); err != nil {
		return nil, err
	}

	bookmark, err := s.store.UpdateBookmark(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, db.ErrInvalidData):
			return nil, errors.Wrap(ErrBadRequest, "invalid bookmark data")
		}
		return nil, s.internal("update bookmark", err)
	}
	return bookmark, nil
}

func (s *Bookmarks) Delete(ctx context.Context, userID, id uint64) error {
	if err := s.checkOwner(ctx, userID, id); err != nil {
		return err
	}

	if err := s.store.DeleteBookmark(ctx, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrNotFound
		}
		return s.internal("delete bookmark", err)
	}
	return nil
}

// checkOwner reports a missing bookmark and a foreign one the same way.
func (s *Bookmarks) checkOwner(ctx context.Context, userID, id uint64) error {
	bookmark, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if bookmark.UserID != userID {
		return ErrNotFound
	}
	return nil
}

func (s *Bookmarks) internal(op string, err error) error {
	s.logger.Errorw(op, "error", err)
	return ErrInternal
}
