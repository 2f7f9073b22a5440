package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_OrderInsensitive(t *testing.T) {
	a := Key("hostels:", "limit=10", "page=1", "area=Saddar")
	b := Key("hostels:", "area=Saddar", "page=1", "limit=10")

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "hostels:"))
	assert.Len(t, a, len("hostels:")+64)
}

func TestKey_DistinguishesValues(t *testing.T) {
	assert.NotEqual(t, Key("hostels:", "page=1"), Key("hostels:", "page=2"))
	assert.NotEqual(t, Key("hostels:", "page=1"), Key("available:", "page=1"))
}

func TestKey_DoesNotReorderCallerSlice(t *testing.T) {
	parts := []string{"z", "a"}
	Key("p:", parts...)
	assert.Equal(t, []string{"z", "a"}, parts)
}
