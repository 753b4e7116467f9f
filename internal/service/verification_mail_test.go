package service_test

import (
	"bitwise74/job-portal/internal/service"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestVerificationLink(t *testing.T) {
	assert.Equal(t,
		"https://portal.test/verify-email?token=a%2Bb",
		service.VerificationLink("https://portal.test/", "a+b"))
}

func TestLogMailerKeepsLinkAtDebug(t *testing.T) {
	m := service.LogMailer{FrontendURL: "https://portal.test"}

	core, logs := observer.New(zapcore.InfoLevel)
	undo := zap.ReplaceGlobals(zap.New(core))
	require.NoError(t, m.SendVerification("ann@x.com", "secret-token"))
	undo()
	assert.Zero(t, logs.Len(), "link must not reach info logs")

	core, logs = observer.New(zapcore.DebugLevel)
	undo = zap.ReplaceGlobals(zap.New(core))
	defer undo()
	require.NoError(t, m.SendVerification("ann@x.com", "secret-token"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "https://portal.test/verify-email?token=secret-token", entries[0].ContextMap()["link"])
}
