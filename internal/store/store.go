package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// Store is the Postgres-backed persistence collaborator. The agent
// pipeline never touches it; it serves the identity and chat-listing
// surface that sits above the core.
type Store struct {
	DB *sql.DB
}

// Chat is one stored conversation container.
type Chat struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWithDSN opens a Postgres connection and verifies it.
func NewWithDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{DB: db}, nil
}

// CreateUser inserts a user with a bcrypt password hash.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) error {
	id := uuid.New().String()
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`,
		id, email, passwordHash)
	return err
}

// GetUserByEmail returns the user id and password hash for login checks.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (string, string, error) {
	var id, hash string
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, password_hash FROM users WHERE email=$1`, email).Scan(&id, &hash)
	if err != nil {
		return "", "", err
	}
	return id, hash, nil
}

// CreateChat inserts a new conversation container for a user.
func (s *Store) CreateChat(ctx context.Context, userID, name string) (Chat, error) {
	chat := Chat{ID: uuid.New().String(), UserID: userID, Name: name}
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO chats (id, user_id, name) VALUES ($1, $2, $3) RETURNING created_at`,
		chat.ID, chat.UserID, chat.Name).Scan(&chat.CreatedAt)
	if err != nil {
		return Chat{}, err
	}
	return chat, nil
}

// ListChats returns a user's chats, oldest first.
func (s *Store) ListChats(ctx context.Context, userID string) ([]Chat, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, user_id, name, created_at FROM chats WHERE user_id=$1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []Chat
	for rows.Next() {
		var chat Chat
		if err := rows.Scan(&chat.ID, &chat.UserID, &chat.Name, &chat.CreatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}
