// Package testutil builds the throwaway pieces tests share
package testutil

import (
	"bitwise74/job-portal/config"
	"bitwise74/job-portal/db"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory sqlite database private to t
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"

	gdb, err := db.Open(config.Database{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	// One connection keeps the shared cache from reporting locked tables
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))

	return gdb
}

// Clock is a settable time source
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// Mail is one verification mail caught by RecordingMailer
type Mail struct {
	To    string
	Token string
}

// RecordingMailer keeps every verification mail instead of sending it
type RecordingMailer struct {
	mu   sync.Mutex
	sent []Mail
	ch   chan Mail
	Err  error
}

func NewRecordingMailer() *RecordingMailer {
	return &RecordingMailer{ch: make(chan Mail, 64)}
}

func (m *RecordingMailer) SendVerification(to, token string) error {
	m.mu.Lock()
	m.sent = append(m.sent, Mail{To: to, Token: token})
	err := m.Err
	m.mu.Unlock()

	m.ch <- Mail{To: to, Token: token}
	return err
}

// Sent returns a copy of every mail so far
func (m *RecordingMailer) Sent() []Mail {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Mail, len(m.sent))
	copy(out, m.sent)
	return out
}

// Next waits for the next mail, mails are sent from a goroutine
func (m *RecordingMailer) Next(t *testing.T) Mail {
	t.Helper()

	select {
	case mail := <-m.ch:
		return mail
	case <-time.After(2 * time.Second):
		require.FailNow(t, "no verification mail was sent")
		return Mail{}
	}
}

// TokenFor waits until a mail to email arrives and returns its token
func (m *RecordingMailer) TokenFor(t *testing.T, email string) string {
	t.Helper()

	for {
		mail := m.Next(t)
		if mail.To == email {
			return mail.Token
		}
	}
}
