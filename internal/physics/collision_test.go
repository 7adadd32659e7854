package physics

import (
	"testing"

	"nebula-protocol-be/internal/content"
)

func wallAt(x, y, w, h float64) content.MapObject {
	return content.MapObject{ID: "w", Type: content.OBJ_WALL, Rect: content.Rect{X: x, Y: y, Width: w, Height: h}}
}

func TestOverlaps_TouchingEdgesDoNotOverlap(t *testing.T) {
	a := content.Rect{X: 0, Y: 0, Width: 10, Height: 10}

	if Overlaps(a, content.Rect{X: 10, Y: 0, Width: 10, Height: 10}) {
		t.Fatalf("touching edges should not overlap")
	}
	if !Overlaps(a, content.Rect{X: 9, Y: 9, Width: 10, Height: 10}) {
		t.Fatalf("intersecting rects should overlap")
	}
}

func TestResolveMovement_SlidesAlongWall(t *testing.T) {
	// 右侧有一堵竖墙
	objs := []content.MapObject{wallAt(120, 0, 20, 400)}
	start := content.Vec2{X: 100, Y: 100}

	got := ResolveMovement(start, content.Vec2{X: 10, Y: 10}, objs)
	if got.X != 100 {
		t.Fatalf("x should be blocked, got %v", got.X)
	}
	if got.Y != 110 {
		t.Fatalf("y should slide freely, got %v", got.Y)
	}
}

func TestResolveMovement_Blockers(t *testing.T) {
	start := content.Vec2{X: 100, Y: 100}
	delta := content.Vec2{X: 10, Y: 0}
	rect := content.Rect{X: 120, Y: 0, Width: 20, Height: 400}

	cases := []struct {
		name    string
		obj     content.MapObject
		blocked bool
	}{
		{"wall", content.MapObject{Type: content.OBJ_WALL, Rect: rect}, true},
		{"prop", content.MapObject{Type: content.OBJ_PROP, Rect: rect}, true},
		{"closed door", content.MapObject{Type: content.OBJ_DOOR, Rect: rect}, true},
		{"open door", content.MapObject{Type: content.OBJ_DOOR, IsOpen: true, Rect: rect}, false},
		{"floor", content.MapObject{Type: content.OBJ_FLOOR, Rect: rect}, false},
		{"vent", content.MapObject{Type: content.OBJ_VENT, Rect: rect}, false},
		{"hazard", content.MapObject{Type: content.OBJ_HAZARD, Rect: rect}, false},
	}

	for _, tc := range cases {
		got := ResolveMovement(start, delta, []content.MapObject{tc.obj})
		if blocked := got.X == start.X; blocked != tc.blocked {
			t.Fatalf("%s: want blocked=%v, got position %+v", tc.name, tc.blocked, got)
		}
	}
}

func TestResolveMovement_TunnelsThroughThinWalls(t *testing.T) {
	// 轴分离且非连续检测：一步跨过薄墙时不会被挡住
	objs := []content.MapObject{wallAt(150, 0, 4, 400)}
	start := content.Vec2{X: 100, Y: 100}

	got := ResolveMovement(start, content.Vec2{X: 100, Y: 0}, objs)
	if got.X != 200 {
		t.Fatalf("large delta is expected to pass the thin wall, got %v", got.X)
	}
}

func TestResolveMovement_HitboxIsSmallerThanSprite(t *testing.T) {
	// 碰撞箱半宽为 12，距墙 13 时仍可移动 0.5
	objs := []content.MapObject{wallAt(113, 0, 20, 400)}

	got := ResolveMovement(content.Vec2{X: 100, Y: 100}, content.Vec2{X: 0.5, Y: 0}, objs)
	if got.X != 100.5 {
		t.Fatalf("want 100.5, got %v", got.X)
	}
}
