package game

import "github.com/valyala/fastrand"

// Rand 是引擎唯一的随机源。同一种子得到同一序列，便于回放与测试。
// 非并发安全，每个引擎实例独占一个。
type Rand struct {
	rng fastrand.RNG
}

// NewRand 种子为 0 时由 fastrand 自行取随机种子
func NewRand(seed uint32) *Rand {
	r := &Rand{}
	r.rng.Seed(seed)
	return r
}

// [0, n)
func (r *Rand) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	return int(r.rng.Uint32n(uint32(n)))
}

// [0, 1)
func (r *Rand) Float64() float64 {
	return float64(r.rng.Uint32()) / (1 << 32)
}

// Chance 以 percent% 的概率返回 true，percent 取 0-100
func (r *Rand) Chance(percent float64) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return r.Float64()*100 < percent
}

// Shuffle Fisher-Yates 洗牌
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, r.Intn(i+1))
	}
}

func (r *Rand) code(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = lobbyCodeChars[r.Intn(len(lobbyCodeChars))]
	}
	return string(b)
}
