package repository

import (
	"context"
	"errors"

	"prevently/internal/docstore"
	"prevently/internal/model"
)

var ErrUsernameNotFound = errors.New("username not found")

type UserRepository struct {
	store docstore.Store
}

func NewUserRepository(store docstore.Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.UsernameRecord, error) {
	doc, err := r.store.Get(ctx, model.UsernamesCollection, username)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrUsernameNotFound
	}
	if err != nil {
		return nil, err
	}

	rec := model.NewUsernameRecord(username, doc.Data)
	if rec.Email == "" {
		return nil, ErrUsernameNotFound
	}
	return &rec, nil
}

func (r *UserRepository) EmailForUsername(ctx context.Context, username string) (string, error) {
	rec, err := r.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return rec.Email, nil
}

func (r *UserRepository) Exists(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if errors.Is(err, ErrUsernameNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *UserRepository) SaveUsername(ctx context.Context, rec model.UsernameRecord) error {
	return r.store.Set(ctx, model.UsernamesCollection, rec.Username, map[string]any{
		"email": rec.Email,
		"uid":   rec.UID,
	}, true)
}

func (r *UserRepository) SetProfilePicture(ctx context.Context, username, imageID string) error {
	return r.store.Set(ctx, model.UsernamesCollection, username, map[string]any{
		"profile_pic_uid": imageID,
	}, true)
}
