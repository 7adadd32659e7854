package physics

import "nebula-protocol-be/internal/content"

// 碰撞箱比角色外观略小，避免在墙角卡住
const HITBOX_SIZE = 24.0

// Overlaps 判断两个轴对齐矩形是否相交，边缘相接不算相交
func Overlaps(a, b content.Rect) bool {
	return a.X < b.X+b.Width &&
		a.X+a.Width > b.X &&
		a.Y < b.Y+b.Height &&
		a.Y+a.Height > b.Y
}

// IsBlocking 墙、道具以及关闭的门会阻挡移动
func IsBlocking(obj content.MapObject) bool {
	switch obj.Type {
	case content.OBJ_WALL, content.OBJ_PROP:
		return true
	case content.OBJ_DOOR:
		return !obj.IsOpen
	}

	return false
}

func hitbox(center content.Vec2) content.Rect {
	const half = HITBOX_SIZE / 2

	return content.Rect{
		X:      center.X - half,
		Y:      center.Y - half,
		Width:  HITBOX_SIZE,
		Height: HITBOX_SIZE,
	}
}

// Collides 判断以 pos 为中心的碰撞箱是否与任一阻挡物相交
func Collides(pos content.Vec2, objects []content.MapObject) bool {
	box := hitbox(pos)

	for _, obj := range objects {
		if IsBlocking(obj) && Overlaps(box, obj.Rect) {
			return true
		}
	}

	return false
}

// ResolveMovement 按轴分离的方式处理位移：X 轴用当前 Y 检测，Y 轴用当前 X 检测，
// 被挡住的轴保持不动，另一轴照常移动，从而可以贴墙滑行。
// 这不是连续碰撞检测，位移过大时可能穿过很薄的障碍物。
func ResolveMovement(current, delta content.Vec2, objects []content.MapObject) content.Vec2 {
	next := content.Vec2{X: current.X + delta.X, Y: current.Y + delta.Y}

	if delta.X != 0 && Collides(content.Vec2{X: next.X, Y: current.Y}, objects) {
		next.X = current.X
	}

	if delta.Y != 0 && Collides(content.Vec2{X: current.X, Y: next.Y}, objects) {
		next.Y = current.Y
	}

	return next
}
