package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func testStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &Store{DB: db}, mock
}

func TestCreateUser(t *testing.T) {
	s, mock := testStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`)).
		WithArgs(sqlmock.AnyArg(), "alice@example.com", "hashed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.CreateUser(context.Background(), "alice@example.com", "hashed"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	s, mock := testStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, password_hash FROM users WHERE email=$1`)).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow("user-1", "hashed"))

	id, hash, err := s.GetUserByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if id != "user-1" || hash != "hashed" {
		t.Fatalf("got %q %q", id, hash)
	}
}

func TestCreateChatReturnsTimestamp(t *testing.T) {
	s, mock := testStore(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO chats (id, user_id, name) VALUES ($1, $2, $3) RETURNING created_at`)).
		WithArgs(sqlmock.AnyArg(), "user-1", "EV research").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	chat, err := s.CreateChat(context.Background(), "user-1", "EV research")
	if err != nil {
		t.Fatalf("CreateChat: %v", err)
	}
	if chat.UserID != "user-1" || chat.Name != "EV research" || chat.ID == "" {
		t.Fatalf("chat = %+v", chat)
	}
	if !chat.CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v, want %v", chat.CreatedAt, now)
	}
}

func TestListChatsOrderedScan(t *testing.T) {
	s, mock := testStore(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, name, created_at FROM chats WHERE user_id=$1 ORDER BY created_at`)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "created_at"}).
			AddRow("chat-1", "user-1", "first", now).
			AddRow("chat-2", "user-1", "second", now.Add(time.Minute)))

	chats, err := s.ListChats(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListChats: %v", err)
	}
	if len(chats) != 2 || chats[0].Name != "first" || chats[1].Name != "second" {
		t.Fatalf("chats = %+v", chats)
	}
}

func TestListChatsNoRows(t *testing.T) {
	s, mock := testStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, name, created_at FROM chats`)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "created_at"}))

	chats, err := s.ListChats(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListChats: %v", err)
	}
	if chats != nil {
		t.Fatalf("expected nil slice, got %+v", chats)
	}
}
