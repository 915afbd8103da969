package idgen

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// 订单号格式: ORD-<毫秒时间戳>-<9位大写36进制随机串>
const (
	orderNumberPrefix = "ORD"
	suffixLen         = 9
	alphabet          = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// OrderNumberGenerator 订单号生成器
// 唯一性依赖随机后缀（36^9），不做数据库查重，冲突由 uk_order_number 兜底
type OrderNumberGenerator struct {
	now func() time.Time
}

// NewOrderNumberGenerator 创建订单号生成器
func NewOrderNumberGenerator() *OrderNumberGenerator {
	return &OrderNumberGenerator{now: time.Now}
}

// Next 生成下一个订单号
func (g *OrderNumberGenerator) Next() string {
	ms := g.now().UnixMilli()

	var sb strings.Builder
	sb.Grow(len(orderNumberPrefix) + 15 + suffixLen)
	sb.WriteString(orderNumberPrefix)
	sb.WriteByte('-')
	sb.WriteString(strconv.FormatInt(ms, 10))
	sb.WriteByte('-')
	sb.WriteString(randomSuffix(suffixLen))
	return sb.String()
}

func randomSuffix(n int) string {
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand 读失败时退化为时间种子
			buf[i] = alphabet[(time.Now().UnixNano()+int64(i))%int64(len(alphabet))]
			continue
		}
		buf[i] = alphabet[idx.Int64()]
	}
	return string(buf)
}

