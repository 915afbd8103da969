package idgen

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{13}-[0-9A-Z]{9}$`)

func TestOrderNumberFormat(t *testing.T) {
	g := &OrderNumberGenerator{now: func() time.Time { return time.UnixMilli(1718000000123) }}

	no := g.Next()
	assert.Regexp(t, orderNumberPattern, no)
	assert.Equal(t, "ORD-1718000000123-", no[:18])
}

func TestOrderNumberUnique(t *testing.T) {
	// 固定时间戳，只靠随机后缀区分
	g := &OrderNumberGenerator{now: func() time.Time { return time.UnixMilli(1718000000123) }}

	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		no := g.Next()
		_, dup := seen[no]
		assert.False(t, dup, "duplicate order number %s", no)
		seen[no] = struct{}{}
	}
}
