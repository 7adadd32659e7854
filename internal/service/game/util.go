package game

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"nebula-protocol-be/internal/content"
)

func GenID() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("Failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// 玩家 ID 只取 UUID 的随机尾部，便于在日志与界面中辨认
func genShortID() string {
	id := GenID()
	return id[len(id)-12:]
}

// NormalizeCode 房间码不区分大小写
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func distance(a, b content.Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// 倒计时递减，结果不会小于 0
func decay(v, dt float64) float64 {
	v -= dt
	if v < timerEpsilon {
		return 0
	}
	return v
}
