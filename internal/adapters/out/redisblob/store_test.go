package redisblob

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

func TestStore_Put(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, "docs:", 30*time.Minute)

	pdf := []byte("%PDF-1.3")
	mock.ExpectTxPipeline()
	mock.ExpectHSet("docs:abc.pdf", "content_type", "application/pdf", "data", pdf).SetVal(2)
	mock.ExpectExpire("docs:abc.pdf", 30*time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()

	err := store.Put(context.Background(), "abc.pdf", ports.Blob{ContentType: "application/pdf", Data: pdf})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, "", 0)

	mock.ExpectHGetAll(DefaultKeyPrefix + "abc.pdf").SetVal(map[string]string{
		"content_type": "application/pdf",
		"data":         "%PDF-1.3",
	})

	blob, err := store.Get(context.Background(), "abc.pdf")

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", blob.ContentType)
	assert.Equal(t, []byte("%PDF-1.3"), blob.Data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get_ExpiredKey_ReturnsNotFound(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, "", 0)

	mock.ExpectHGetAll(DefaultKeyPrefix + "gone.pdf").SetVal(map[string]string{})

	_, err := store.Get(context.Background(), "gone.pdf")

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get_RedisError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, "", 0)

	mock.ExpectHGetAll(DefaultKeyPrefix + "abc.pdf").SetErr(errors.New("connection refused"))

	_, err := store.Get(context.Background(), "abc.pdf")

	assert.EqualError(t, err, "connection refused")
}
