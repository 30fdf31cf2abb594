package repository

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestUseCacheOnlyOutsideTransactions(t *testing.T) {
	base := &gorm.DB{}
	tx := &gorm.DB{}
	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:6379"})

	repo := &GormCatalogRepository{db: base, base: base, redis: redisClient}
	assert.True(t, repo.useCache())

	// The child repository WithTransaction builds keeps the base handle but
	// reads through the transaction; cached lists must not shadow the
	// transaction snapshot.
	child := &GormCatalogRepository{db: tx, base: base, redis: redisClient}
	assert.False(t, child.useCache())

	// No Redis configured means no caching anywhere.
	uncached := &GormCatalogRepository{db: base, base: base}
	assert.False(t, uncached.useCache())
}
