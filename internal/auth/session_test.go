package auth

import (
	"context"
	"testing"
	"time"
)

func TestSessionSetGetDelete(t *testing.T) {
	rdb := setupTestRedis()
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	userId := uint(12345)
	token := "session_test_token"
	duration := 2 * time.Second

	// Set session
	if err := SetSession(ctx, rdb, userId, token, duration); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}

	// Get session
	gotToken, err := GetSession(ctx, rdb, userId)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if gotToken != token {
		t.Errorf("expected token %q, got %q", token, gotToken)
	}

	// Delete session
	if err := DeleteSession(ctx, rdb, userId); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	// Get session after deletion
	_, err = GetSession(ctx, rdb, userId)
	if err == nil {
		t.Errorf("expected error for deleted session, got nil")
	}
}

func TestOnlineUserCount(t *testing.T) {
	rdb := setupTestRedis()
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	for _, id := range []uint{9001, 9002} {
		if err := SetSession(ctx, rdb, id, "tok", time.Minute); err != nil {
			t.Fatalf("SetSession failed: %v", err)
		}
		defer DeleteSession(ctx, rdb, id)
	}

	n, err := OnlineUserCount(ctx, rdb)
	if err != nil {
		t.Fatalf("OnlineUserCount failed: %v", err)
	}
	if n < 2 {
		t.Errorf("expected at least 2 online users, got %d", n)
	}
}
