// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lethanhan/inkpress/internal/platform/ctxutil"
	"github.com/lethanhan/inkpress/internal/platform/sec"
)

func TestRequestID(t *testing.T) {
	t.Run("round-trips through the context", func(t *testing.T) {
		ctx := ctxutil.WithRequestID(context.Background(), "req-123")
		assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
	})

	t.Run("missing value yields an empty string", func(t *testing.T) {
		assert.Empty(t, ctxutil.GetRequestID(context.Background()))
	})
}

func TestLogger(t *testing.T) {
	t.Run("round-trips through the context", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx := ctxutil.WithLogger(context.Background(), logger)
		assert.Same(t, logger, ctxutil.GetLogger(ctx))
	})

	t.Run("falls back to the default logger", func(t *testing.T) {
		assert.Same(t, slog.Default(), ctxutil.GetLogger(context.Background()))
	})
}

func TestAuthUser(t *testing.T) {
	t.Run("round-trips through the context", func(t *testing.T) {
		claims := &sec.AuthClaims{UserID: "user-1", Name: "Ada", Role: "admin"}
		ctx := ctxutil.WithAuthUser(context.Background(), claims)
		assert.Same(t, claims, ctxutil.GetAuthUser(ctx))
	})

	t.Run("anonymous context yields nil", func(t *testing.T) {
		assert.Nil(t, ctxutil.GetAuthUser(context.Background()))
	})
}
