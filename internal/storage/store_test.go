package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-matcher/internal/config"
)

func TestResumeKey(t *testing.T) {
	userID := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")
	now := time.UnixMilli(1735689600123)

	tests := []struct {
		filename string
		expected string
	}{
		{"resume.pdf", "550e8400-e29b-41d4-a716-446655440000_1735689600123.pdf"},
		{"My CV.DOCX", "550e8400-e29b-41d4-a716-446655440000_1735689600123.docx"},
		{"noext", "550e8400-e29b-41d4-a716-446655440000_1735689600123"},
		{"../../etc/passwd.txt", "550e8400-e29b-41d4-a716-446655440000_1735689600123.txt"},
		{`cv.\pdf`, "550e8400-e29b-41d4-a716-446655440000_1735689600123.pdf"},
		{"cv.t x~t", "550e8400-e29b-41d4-a716-446655440000_1735689600123.txt"},
		{"cv.résumé", "550e8400-e29b-41d4-a716-446655440000_1735689600123.rsum"},
		{"trailing.", "550e8400-e29b-41d4-a716-446655440000_1735689600123"},
		{"cv.%%", "550e8400-e29b-41d4-a716-446655440000_1735689600123"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			key := ResumeKey(userID, tt.filename, now)
			assert.Equal(t, tt.expected, key)
			assert.NoError(t, validateKey(key))
		})
	}
}

func TestValidateKey(t *testing.T) {
	assert.Error(t, validateKey(""))
	assert.Error(t, validateKey("../secret"))
	assert.Error(t, validateKey("a/b"))
	assert.Error(t, validateKey(`a\b`))
	assert.NoError(t, validateKey("user_1.pdf"))
}

func TestLocalStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(filepath.Join(t.TempDir(), "resumes"))
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "u_1.txt", "text/plain", []byte("Go, Rust")))

	data, err := store.Get(ctx, "u_1.txt")
	require.NoError(t, err)
	assert.Equal(t, "Go, Rust", string(data))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	require.NoError(t, store.Delete(ctx, "u_1.txt"))
	_, err = store.Get(ctx, "u_1.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Delete(ctx, "u_1.txt"), "deleting twice is fine")
}

func TestLocalStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "k.pdf", "application/pdf", []byte("one")))
	require.NoError(t, store.Put(ctx, "k.pdf", "application/pdf", []byte("two")))

	data, err := store.Get(ctx, "k.pdf")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestLocalStore_RejectsBadKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Put(context.Background(), "../x", "text/plain", nil))
	_, err = store.Get(context.Background(), "a/b")
	assert.Error(t, err)
}

func TestNewLocalStore_EmptyDir(t *testing.T) {
	_, err := NewLocalStore("")
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFromConfig(context.Background(), config.StorageConfig{Backend: config.StorageLocal, Dir: dir})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	_, err = NewFromConfig(context.Background(), config.StorageConfig{Backend: "ftp"})
	assert.Error(t, err)

	_, err = NewFromConfig(context.Background(), config.StorageConfig{Backend: config.StorageS3})
	assert.Error(t, err, "bucket is required")
}

func TestNewFromConfig_S3(t *testing.T) {
	store, err := NewFromConfig(context.Background(), config.StorageConfig{
		Backend:         config.StorageS3,
		Bucket:          "resumes",
		Endpoint:        "https://account.r2.cloudflarestorage.com",
		Region:          "auto",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		MaxRetries:      3,
	})
	require.NoError(t, err)

	s3Store, ok := store.(*S3Store)
	require.True(t, ok)
	assert.Equal(t, "resumes", s3Store.bucket)
	assert.Equal(t, 3, s3Store.attempts)
}
