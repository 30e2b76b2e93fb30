package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func buildKey(method, path, requestID string) string {
	return "idemp:adv:" + strings.ToLower(method) + ":" + path + ":" + requestID
}

// requestID extracts and validates the X-Request-Id header (a uuid).
func requestID(req *http.Request) (string, error) {
	raw := strings.TrimSpace(req.Header.Get("X-Request-Id"))
	if raw == "" {
		return "", errors.New("missing X-Request-Id")
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return "", errors.New("X-Request-Id must be a uuid")
	}
	return id.String(), nil
}

// bufferBody reads the request body and puts a rewound copy back so the
// handler can bind it again.
func bufferBody(req *http.Request) []byte {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	req.Body = io.NopCloser(bytes.NewBuffer(body))
	return body
}

// ---- Redis helpers ----

func provisionalSet(ctx context.Context, rdb *redis.Client, key string, entry idempEntry) (bool, error) {
	payload, _ := json.Marshal(entry)
	return rdb.SetNX(ctx, key, payload, provisionalLockTTL).Result()
}

func loadEntry(ctx context.Context, rdb *redis.Client, key string) (idempEntry, error) {
	var e idempEntry
	v, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	_ = json.Unmarshal(v, &e)
	return e, nil
}

func saveFinal(ctx context.Context, rdb *redis.Client, key string, entry idempEntry, ttl time.Duration) error {
	payload, _ := json.Marshal(entry)
	return rdb.Set(ctx, key, payload, ttl).Err()
}
