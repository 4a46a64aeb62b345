package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
)

// Ensure UserStore implements the interfaces.
var (
	_ driven.UserStore  = (*UserStore)(nil)
	_ driven.TokenStore = (*UserStore)(nil)
)

// errSealedWithoutKey is returned when a sealed token row is read without a cipher.
var errSealedWithoutKey = errors.New("google tokens are encrypted but no encryption key is configured")

// UserStore implements driven.UserStore and driven.TokenStore over the users table.
type UserStore struct {
	store *Store
}

// Upsert creates the user on first sight and refreshes profile fields afterwards.
// Tokens are left untouched and not decoded, so an unreadable token row never
// blocks authentication; it surfaces from GetTokens instead.
func (s *UserStore) Upsert(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	if identity.Subject == "" {
		return nil, domain.ErrInvalidInput
	}

	now := s.store.now().UTC()
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			name = excluded.name,
			image = excluded.image,
			updated_at = excluded.updated_at
	`, identity.Subject, identity.Email, identity.Name, identity.Image, now, now)
	if err != nil {
		return nil, fmt.Errorf("upserting user: %w", err)
	}

	user, _, err := s.scanUser(ctx, identity.Subject)
	return user, err
}

// Get retrieves a user by ID, including decoded Google tokens.
func (s *UserStore) Get(ctx context.Context, id string) (*domain.User, error) {
	user, tokens, err := s.scanUser(ctx, id)
	if err != nil {
		return nil, err
	}
	decoded, err := s.decodeTokens(tokens)
	if err != nil {
		return nil, err
	}
	user.GoogleTokens = decoded
	return user, nil
}

// scanUser reads the profile columns and the raw token column.
func (s *UserStore) scanUser(ctx context.Context, id string) (*domain.User, sql.NullString, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, email, name, image, google_tokens, created_at, updated_at
		FROM users WHERE id = ?
	`, id)

	var user domain.User
	var tokens sql.NullString
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Image,
		&tokens, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tokens, domain.ErrNotFound
		}
		return nil, tokens, fmt.Errorf("scanning user: %w", err)
	}
	if createdAt.Valid {
		user.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	}
	return &user, tokens, nil
}

// GetTokens returns the user's Google tokens.
func (s *UserStore) GetTokens(ctx context.Context, userID string) (*domain.GoogleTokens, error) {
	var value sql.NullString
	err := s.store.db.QueryRowContext(ctx,
		"SELECT google_tokens FROM users WHERE id = ?", userID).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotConnected
		}
		return nil, fmt.Errorf("reading google tokens: %w", err)
	}

	tokens, err := s.decodeTokens(value)
	if err != nil {
		return nil, err
	}
	if !tokens.HasAccessToken() {
		return nil, domain.ErrNotConnected
	}
	return tokens, nil
}

// SaveTokens overwrites the user's Google tokens, creating a bare user row if needed.
func (s *UserStore) SaveTokens(ctx context.Context, userID string, tokens *domain.GoogleTokens) error {
	if userID == "" || tokens == nil {
		return domain.ErrInvalidInput
	}

	value, err := s.encodeTokens(tokens)
	if err != nil {
		return err
	}

	now := s.store.now().UTC()
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO users (id, google_tokens, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			google_tokens = excluded.google_tokens,
			updated_at = excluded.updated_at
	`, userID, value, now, now)
	if err != nil {
		return fmt.Errorf("saving google tokens: %w", err)
	}
	return nil
}

// ClearTokens removes the user's Google tokens. Idempotent.
func (s *UserStore) ClearTokens(ctx context.Context, userID string) error {
	_, err := s.store.db.ExecContext(ctx,
		"UPDATE users SET google_tokens = NULL, updated_at = ? WHERE id = ?",
		s.store.now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("clearing google tokens: %w", err)
	}
	return nil
}

func (s *UserStore) encodeTokens(tokens *domain.GoogleTokens) (string, error) {
	data, err := json.Marshal(tokens)
	if err != nil {
		return "", fmt.Errorf("marshalling google tokens: %w", err)
	}
	if s.store.cipher == nil {
		return string(data), nil
	}
	sealed, err := s.store.cipher.Seal(data)
	if err != nil {
		return "", fmt.Errorf("encrypting google tokens: %w", err)
	}
	return sealed, nil
}

func (s *UserStore) decodeTokens(value sql.NullString) (*domain.GoogleTokens, error) {
	if !value.Valid || value.String == "" || value.String == jsonNull {
		return nil, nil
	}

	data := []byte(value.String)
	if isSealed(value.String) {
		if s.store.cipher == nil {
			return nil, errSealedWithoutKey
		}
		opened, err := s.store.cipher.Open(value.String)
		if err != nil {
			return nil, fmt.Errorf("decrypting google tokens: %w", err)
		}
		data = opened
	}

	var tokens domain.GoogleTokens
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("unmarshalling google tokens: %w", err)
	}
	return &tokens, nil
}
