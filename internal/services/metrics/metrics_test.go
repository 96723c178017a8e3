package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemory_Track(t *testing.T) {
	m := NewInMemory()

	func() {
		var err error
		defer Track(m, "create_wallet", time.Now(), &err)
	}()
	func() {
		err := errors.New("boom")
		defer Track(m, "create_wallet", time.Now(), &err)
	}()
	m.RecordCacheHit("wallet")
	m.RecordCacheMiss("wallet")
	m.RecordCacheMiss("wallet")

	s := m.Snapshot()
	assert.Equal(t, int64(1), s.Operations["create_wallet"]["success"])
	assert.Equal(t, int64(1), s.Operations["create_wallet"]["error"])
	assert.Equal(t, int64(1), s.CacheHits["wallet"])
	assert.Equal(t, int64(2), s.CacheMisses["wallet"])
}
