package db

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Store is the typed query surface over users and bookmarks. Every call goes
// to the database.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	return Ping(ctx, s.db)
}

func (s *Store) CreateUser(ctx context.Context, user *User) error {
	res := s.db.WithContext(ctx).Create(user)
	return translate(res.Error, "create user")
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	user := User{}
	res := s.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if res.Error != nil {
		return nil, translate(res.Error, "find user by email")
	}
	return &user, nil
}

func (s *Store) UserByID(ctx context.Context, id uint64) (*User, error) {
	user := User{}
	res := s.db.WithContext(ctx).First(&user, id)
	if res.Error != nil {
		return nil, translate(res.Error, "find user by id")
	}
	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, id uint64, patch UserPatch) (*User, error) {
	if err := s.update(ctx, &User{}, id, patch.columns()); err != nil {
		return nil, translate(err, "update user")
	}
	return s.UserByID(ctx, id)
}

// BookmarksByUser returns the user's bookmarks ordered by id; never nil.
func (s *Store) BookmarksByUser(ctx context.Context, userID uint64) ([]Bookmark, error) {
	sql, args, err := squirrel.
		Select("id", "created_at", "updated_at", "title", "description", "link", "user_id").
		From("bookmarks").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	bookmarks := make([]Bookmark, 0)
	res := s.db.WithContext(ctx).Raw(sql, args...).Scan(&bookmarks)
	if res.Error != nil {
		return nil, translate(res.Error, "list bookmarks")
	}
	return bookmarks, nil
}

func (s *Store) CreateBookmark(ctx context.Context, bookmark *Bookmark) error {
	res := s.db.WithContext(ctx).Create(bookmark)
	return translate(res.Error, "create bookmark")
}

func (s *Store) BookmarkByID(ctx context.Context, id uint64) (*Bookmark, error) {
	bookmark := Bookmark{}
	res := s.db.WithContext(ctx).First(&bookmark, id)
	if res.Error != nil {
		return nil, translate(res.Error, "find bookmark")
	}
	return &bookmark, nil
}

func (s *Store) UpdateBookmark(ctx context.Context, id uint64, patch BookmarkPatch) (*Bookmark, error) {
	if err := s.update(ctx, &Bookmark{}, id, patch.columns()); err != nil {
		return nil, translate(err, "update bookmark")
	}
	return s.BookmarkByID(ctx, id)
}

func (s *Store) DeleteBookmark(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&Bookmark{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete bookmark")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(ErrNotFound, "delete bookmark")
	}
	return nil
}

// update applies columns to the row with the given id. An empty column set
// only checks that the row exists.
func (s *Store) update(ctx context.Context, model interface{}, id uint64, columns map[string]interface{}) error {
	if len(columns) == 0 {
		var count int64
		res := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count)
		if res.Error != nil {
			return res.Error
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}

	res := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
