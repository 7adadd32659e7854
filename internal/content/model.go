package content

// 阵营
type Team string

const (
	TEAM_INITIATIVE Team = "INITIATIVE" // 船员
	TEAM_GLITCH     Team = "GLITCH"     // 内鬼
	TEAM_NEUTRAL    Team = "NEUTRAL"    // 预留
)

// 地图对象类型
const (
	OBJ_WALL          = "wall"
	OBJ_FLOOR         = "floor"
	OBJ_DOOR          = "door"
	OBJ_VENT          = "vent"
	OBJ_PROP          = "prop"
	OBJ_TASK_LOCATION = "task_location"
	OBJ_SYSTEM        = "system"
	OBJ_HAZARD        = "hazard"
)

// 任务难度，只影响抽取数量，不影响玩法
const (
	TASK_SHORT   = "short"
	TASK_LONG    = "long"
	TASK_COMPLEX = "complex"
)

type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MapObject 是所有地图元素的统一表示，按 Type 区分。
// 几何字段加载后不可变，运行时只会修改门的 IsOpen/IsLocked/LockedUntil。
type MapObject struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Rect

	RoomID string `json:"roomId,omitempty"`
	Color  string `json:"color,omitempty"`

	// door
	IsOpen      bool    `json:"isOpen,omitempty"`
	IsLocked    bool    `json:"isLocked,omitempty"`
	LockedUntil float64 `json:"lockedUntil,omitempty"`

	// task_location / system
	TaskType string `json:"taskType,omitempty"`

	// vent
	ConnectedVents []string `json:"connectedVents,omitempty"`

	// prop
	PropType string  `json:"propType,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
}

func (o MapObject) Center() Vec2 {
	return Vec2{X: o.X + o.Width/2, Y: o.Y + o.Height/2}
}

// Clone 复制对象，切片字段不与原对象共享
func (o MapObject) Clone() MapObject {
	if o.ConnectedVents != nil {
		o.ConnectedVents = append([]string(nil), o.ConnectedVents...)
	}
	return o
}

type MapTheme struct {
	Background   string `json:"background"`
	WallColor    string `json:"wallColor"`
	WallBorder   string `json:"wallBorder"`
	DoorColor    string `json:"doorColor"`
	FloorColor   string `json:"floorColor"`
	FloorPattern string `json:"floorPattern"`
	AccentColor  string `json:"accentColor"`
	HazardColor  string `json:"hazardColor,omitempty"`
}

type MapDefinition struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Theme       MapTheme    `json:"theme"`
	SpawnPoint  Vec2        `json:"spawnPoint"`
	Objects     []MapObject `json:"objects"`
}

// CloneObjects 返回地图对象的独立副本，供对局状态在其上修改门状态
func (m MapDefinition) CloneObjects() []MapObject {
	objs := make([]MapObject, 0, len(m.Objects))
	for _, o := range m.Objects {
		objs = append(objs, o.Clone())
	}
	return objs
}

type RoleDefinition struct {
	ID              string  `json:"id" jsonschema:"required"`
	Name            string  `json:"name" jsonschema:"required"`
	Team            Team    `json:"team" jsonschema:"required,enum=INITIATIVE,enum=GLITCH,enum=NEUTRAL"`
	Description     string  `json:"description"`
	VisionRadius    float64 `json:"visionRadius"`
	CanVent         bool    `json:"canVent"`
	CanKill         bool    `json:"canKill"`
	KillCooldown    float64 `json:"killCooldown"`
	AbilityName     string  `json:"abilityName,omitempty"`
	AbilityCooldown float64 `json:"abilityCooldown,omitempty"`
}

type TaskDefinition struct {
	ID            string  `json:"id" jsonschema:"required"`
	Name          string  `json:"name" jsonschema:"required"`
	Type          string  `json:"type" jsonschema:"required,enum=short,enum=long,enum=complex"`
	Steps         int     `json:"steps,omitempty"`
	InteractRange float64 `json:"interactRange"`
	MiniGameKey   string  `json:"miniGameKey"`
}

// ModPackage 由外部的模组生成器提供，结构与基础定义一致
type ModPackage struct {
	ID     string           `json:"id" jsonschema:"required"`
	Name   string           `json:"name" jsonschema:"required"`
	Author string           `json:"author,omitempty"`
	Roles  []RoleDefinition `json:"roles" jsonschema:"required"`
	Tasks  []TaskDefinition `json:"tasks" jsonschema:"required"`
}
