package cachedreads

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
)

func TestReadsAccountRoundTrip(t *testing.T) {
	r := New()
	addr := common.HexToAddress("0x1")

	_, ok := r.Account(addr)
	assert.False(t, ok, "fresh cache must not have the account")

	acc := &types.StateAccount{Nonce: 7}
	r.RecordAccount(addr, acc)

	got, ok := r.Account(addr)
	assert.True(t, ok)
	assert.Equal(t, acc, got)
}

func TestReadsStorageRoundTrip(t *testing.T) {
	r := New()
	addr := common.HexToAddress("0x1")
	slot := common.HexToHash("0x2")
	val := common.HexToHash("0x3")

	_, ok := r.Storage(addr, slot)
	assert.False(t, ok)

	r.RecordStorage(addr, slot, val)

	got, ok := r.Storage(addr, slot)
	assert.True(t, ok)
	assert.Equal(t, val, got)
}

func TestReadsCodeRoundTrip(t *testing.T) {
	r := New()
	hash := common.HexToHash("0x4")

	_, ok := r.Code(hash)
	assert.False(t, ok)

	code := []byte{0x60, 0x00}
	r.RecordCode(hash, code)

	got, ok := r.Code(hash)
	assert.True(t, ok)
	assert.Equal(t, code, got)
}

func TestReadsLen(t *testing.T) {
	r := New()
	assert.Equal(t, 0, r.Len())

	r.RecordAccount(common.HexToAddress("0x1"), &types.StateAccount{})
	r.RecordStorage(common.HexToAddress("0x1"), common.HexToHash("0x1"), common.HexToHash("0x2"))
	r.RecordCode(common.HexToHash("0x3"), []byte{1})

	assert.Equal(t, 3, r.Len())
}
