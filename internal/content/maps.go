package content

import "fmt"

const (
	MAP_ZENITH  = "zenith"
	MAP_MAGMA   = "magma"
	MAP_GLACIAL = "glacial"
)

// 修理点与紧急按钮的 taskType
const (
	SYSTEM_FIX_LIGHTS       = "fix_lights"
	SYSTEM_FIX_REACTOR      = "fix_reactor"
	SYSTEM_FIX_OXYGEN       = "fix_oxygen"
	SYSTEM_FIX_COMMS        = "fix_comms"
	SYSTEM_EMERGENCY_BUTTON = "emergency_button"
)

type doorGap struct {
	side string // top / bottom / left / right
	pos  float64
	size float64
}

// 生成四面墙体，门洞处断开，避免门两侧的墙与玩家碰撞箱卡住
func roomWithGaps(id string, x, y, w, h float64, gaps ...doorGap) []MapObject {
	const t = 20.0

	find := func(side string) *doorGap {
		for i := range gaps {
			if gaps[i].side == side {
				return &gaps[i]
			}
		}
		return nil
	}

	wall := func(suffix string, wx, wy, ww, wh float64) MapObject {
		return MapObject{
			ID:   fmt.Sprintf("w_%s_%s", id, suffix),
			Type: OBJ_WALL,
			Rect: Rect{X: wx, Y: wy, Width: ww, Height: wh},
		}
	}

	objs := make([]MapObject, 0, 9)

	if g := find("top"); g != nil {
		objs = append(objs,
			wall("t1", x-t, y-t, (g.pos-x)+t, t),
			wall("t2", g.pos+g.size, y-t, (x+w)-(g.pos+g.size)+t, t),
		)
	} else {
		objs = append(objs, wall("t", x-t, y-t, w+t*2, t))
	}

	if g := find("bottom"); g != nil {
		objs = append(objs,
			wall("b1", x-t, y+h, (g.pos-x)+t, t),
			wall("b2", g.pos+g.size, y+h, (x+w)-(g.pos+g.size)+t, t),
		)
	} else {
		objs = append(objs, wall("b", x-t, y+h, w+t*2, t))
	}

	if g := find("left"); g != nil {
		objs = append(objs,
			wall("l1", x-t, y, t, g.pos-y),
			wall("l2", x-t, g.pos+g.size, t, (y+h)-(g.pos+g.size)),
		)
	} else {
		objs = append(objs, wall("l", x-t, y, t, h))
	}

	if g := find("right"); g != nil {
		objs = append(objs,
			wall("r1", x+w, y, t, g.pos-y),
			wall("r2", x+w, g.pos+g.size, t, (y+h)-(g.pos+g.size)),
		)
	} else {
		objs = append(objs, wall("r", x+w, y, t, h))
	}

	objs = append(objs, MapObject{
		ID:     "fl_" + id,
		Type:   OBJ_FLOOR,
		Rect:   Rect{X: x, Y: y, Width: w, Height: h},
		RoomID: id,
	})

	return objs
}

// 四面实心墙的简单房间
func closedRoom(id string, x, y, w, h float64, color string) []MapObject {
	const t = 12.0

	return []MapObject{
		{ID: "fl_" + id, Type: OBJ_FLOOR, Rect: Rect{X: x, Y: y, Width: w, Height: h}, Color: color, RoomID: id},
		{ID: "w_" + id + "_t", Type: OBJ_WALL, Rect: Rect{X: x, Y: y, Width: w, Height: t}},
		{ID: "w_" + id + "_b", Type: OBJ_WALL, Rect: Rect{X: x, Y: y + h - t, Width: w, Height: t}},
		{ID: "w_" + id + "_l", Type: OBJ_WALL, Rect: Rect{X: x, Y: y, Width: t, Height: h}},
		{ID: "w_" + id + "_r", Type: OBJ_WALL, Rect: Rect{X: x + w - t, Y: y, Width: t, Height: h}},
	}
}

func prop(id, kind string, x, y, w, h float64) MapObject {
	return MapObject{ID: id, Type: OBJ_PROP, PropType: kind, Rect: Rect{X: x, Y: y, Width: w, Height: h}}
}

func floor(id string, x, y, w, h float64) MapObject {
	return MapObject{ID: id, Type: OBJ_FLOOR, Rect: Rect{X: x, Y: y, Width: w, Height: h}}
}

func wall(id string, x, y, w, h float64) MapObject {
	return MapObject{ID: id, Type: OBJ_WALL, Rect: Rect{X: x, Y: y, Width: w, Height: h}}
}

func door(id string, x, y, w, h float64) MapObject {
	return MapObject{ID: id, Type: OBJ_DOOR, IsOpen: true, Rect: Rect{X: x, Y: y, Width: w, Height: h}}
}

func vent(id string, x, y float64, links ...string) MapObject {
	return MapObject{ID: id, Type: OBJ_VENT, ConnectedVents: links, Rect: Rect{X: x, Y: y, Width: 40, Height: 40}}
}

func taskSpot(id, taskType string, x, y float64) MapObject {
	return MapObject{ID: id, Type: OBJ_TASK_LOCATION, TaskType: taskType, Rect: Rect{X: x, Y: y, Width: 40, Height: 40}}
}

func station(id, taskType string, x, y float64) MapObject {
	return MapObject{ID: id, Type: OBJ_SYSTEM, TaskType: taskType, Rect: Rect{X: x, Y: y, Width: 40, Height: 40}}
}

func concat(groups ...[]MapObject) []MapObject {
	var out []MapObject
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func starshipZenith() MapDefinition {
	return MapDefinition{
		ID:          MAP_ZENITH,
		Name:        "Orbital Station Zenith",
		Description: "High-tech hub with glass floors and gravity lifts.",
		Theme: MapTheme{
			Background:   "#02040a",
			FloorColor:   "#1e293b",
			FloorPattern: "radial-gradient(circle, #334155 1px, transparent 1px)",
			WallColor:    "#475569",
			WallBorder:   "#64748b",
			DoorColor:    "#0ea5e9",
			AccentColor:  "#0ea5e9",
		},
		SpawnPoint: Vec2{X: 1200, Y: 1300},
		Objects: concat(
			// 指挥中心，四面开门
			roomWithGaps("command", 1000, 1000, 400, 400,
				doorGap{"top", 1150, 100},
				doorGap{"bottom", 1150, 100},
				doorGap{"left", 1150, 100},
				doorGap{"right", 1150, 100},
			),
			[]MapObject{
				prop("p_command_desk", "desk", 1150, 1100, 100, 80),
				prop("p_command_mon1", "monitor", 1020, 1020, 60, 20),
				prop("p_command_mon2", "monitor", 1320, 1020, 60, 20),
				prop("p_command_mon3", "monitor", 1020, 1360, 60, 20),
			},

			// 医务室（北）
			roomWithGaps("medbay", 1000, 600, 400, 300, doorGap{"bottom", 1150, 100}),
			[]MapObject{
				prop("p_medbay_bed1", "bed", 1050, 620, 50, 80),
				prop("p_medbay_bed2", "bed", 1150, 620, 50, 80),
				prop("p_medbay_bed3", "bed", 1250, 620, 50, 80),
				prop("p_medbay_desk", "desk", 1320, 800, 60, 60),
			},

			// 工程舱（东）
			roomWithGaps("engineering", 1500, 1000, 300, 400, doorGap{"left", 1150, 100}),
			[]MapObject{
				prop("p_eng_engine", "engine", 1600, 1020, 100, 100),
				prop("p_eng_crate1", "crate", 1700, 1050, 40, 40),
				prop("p_eng_crate2", "crate", 1700, 1300, 40, 40),
			},

			// 货舱（南）
			roomWithGaps("cargo", 1000, 1500, 400, 300, doorGap{"top", 1150, 100}),
			[]MapObject{
				prop("p_cargo_crate1", "crate", 1050, 1550, 60, 60),
				prop("p_cargo_crate2", "crate", 1150, 1600, 60, 60),
				prop("p_cargo_crate3", "crate", 1250, 1550, 60, 60),
			},

			// 宿舍（西）
			roomWithGaps("quarters", 600, 1000, 300, 400, doorGap{"right", 1150, 100}),
			[]MapObject{
				prop("p_quarters_bed1", "bed", 620, 1050, 50, 80),
				prop("p_quarters_bed2", "bed", 620, 1250, 50, 80),
				prop("p_quarters_desk", "desk", 800, 1050, 40, 80),
			},

			// 走廊
			[]MapObject{
				floor("f_h_n", 1150, 900, 100, 100),
				wall("w_h_n_l", 1130, 900, 20, 100),
				wall("w_h_n_r", 1250, 900, 20, 100),

				floor("f_h_e", 1400, 1150, 100, 100),
				wall("w_h_e_t", 1400, 1130, 100, 20),
				wall("w_h_e_b", 1400, 1250, 100, 20),

				floor("f_h_s", 1150, 1400, 100, 100),
				wall("w_h_s_l", 1130, 1400, 20, 100),
				wall("w_h_s_r", 1250, 1400, 20, 100),

				floor("f_h_w", 900, 1150, 100, 100),
				wall("w_h_w_t", 900, 1130, 100, 20),
				wall("w_h_w_b", 900, 1250, 100, 20),
			},

			[]MapObject{
				door("d_n", 1150, 980, 100, 20),
				door("d_e", 1400, 1150, 20, 100),
				door("d_s", 1150, 1400, 100, 20),
				door("d_w", 980, 1150, 20, 100),
			},

			// 通风管道构成一个环
			[]MapObject{
				vent("v_med", 1350, 650, "v_eng", "v_quart"),
				vent("v_eng", 1750, 1350, "v_med", "v_cargo"),
				vent("v_cargo", 1350, 1750, "v_eng", "v_quart"),
				vent("v_quart", 650, 1350, "v_med", "v_cargo"),
			},

			[]MapObject{
				taskSpot("t_upload", "upload_data", 1180, 1200),
				taskSpot("t_wires", "fix_wiring", 1750, 1200),
				taskSpot("t_scan", "scan_sample", 1100, 650),
				taskSpot("t_fuel", "fuel_engines", 1200, 1700),
				taskSpot("t_fuse", "align_fuse", 1650, 1150),
				taskSpot("t_mix", "mix_chemical", 1330, 850),
				taskSpot("t_grav", "stabilize_gravity", 1030, 1370),
				taskSpot("t_lock", "unlock_manifold", 910, 1180),
			},

			[]MapObject{
				station("sys_lights", SYSTEM_FIX_LIGHTS, 650, 1020),
				station("sys_reac_1", SYSTEM_FIX_REACTOR, 1520, 1020),
				station("sys_reac_2", SYSTEM_FIX_REACTOR, 1520, 1350),
				station("sys_oxy_1", SYSTEM_FIX_OXYGEN, 1200, 600),
				station("sys_oxy_2", SYSTEM_FIX_OXYGEN, 1350, 1550),
				station("sys_comms", SYSTEM_FIX_COMMS, 1100, 1100),
				station("emergency_btn", SYSTEM_EMERGENCY_BUTTON, 1180, 1020),
			},
		),
	}
}

func magmaCore() MapDefinition {
	return MapDefinition{
		ID:          MAP_MAGMA,
		Name:        "Magma Core Outpost",
		Description: "Underground industrial facility. Unstable heat zones.",
		Theme: MapTheme{
			Background:   "#2a0a0a",
			FloorColor:   "#451a03",
			WallColor:    "#7f1d1d",
			WallBorder:   "#991b1b",
			FloorPattern: "radial-gradient(circle, #571e06 1px, transparent 1px)",
			DoorColor:    "#f97316",
			AccentColor:  "#dc2626",
			HazardColor:  "#ef4444",
		},
		SpawnPoint: Vec2{X: 800, Y: 800},
		Objects: concat(
			closedRoom("drill", 600, 600, 400, 400, "#450a0a"),
			closedRoom("core", 600, 1100, 400, 400, "#7f1d1d"),
			closedRoom("refining", 1100, 600, 300, 900, "#57534e"),
			[]MapObject{
				{ID: "h_main", Type: OBJ_FLOOR, Color: "#292524", Rect: Rect{X: 900, Y: 1000, Width: 300, Height: 100}},
				{ID: "hz_1", Type: OBJ_HAZARD, Rect: Rect{X: 650, Y: 1300, Width: 100, Height: 100}},
				vent("v_1", 620, 620, "v_2"),
				vent("v_2", 1300, 1400, "v_1"),
				taskSpot("t_m_1", "calibrate_distributor", 700, 700),
				taskSpot("t_m_2", "fuel_engines", 1200, 800),
			},
		),
	}
}

func glacialDome() MapDefinition {
	return MapDefinition{
		ID:          MAP_GLACIAL,
		Name:        "Glacial Dome Zero",
		Description: "Frozen research station. Stay warm.",
		Theme: MapTheme{
			Background:   "#f0f9ff",
			FloorColor:   "#bae6fd",
			WallColor:    "#0ea5e9",
			WallBorder:   "#0284c7",
			FloorPattern: "radial-gradient(circle, #7dd3fc 1px, transparent 1px)",
			DoorColor:    "#7dd3fc",
			AccentColor:  "#38bdf8",
		},
		SpawnPoint: Vec2{X: 1000, Y: 1000},
		Objects: concat(
			closedRoom("dome_a", 800, 800, 400, 400, "#e0f2fe"),
			closedRoom("dome_b", 1300, 800, 400, 400, "#e0f2fe"),
			[]MapObject{
				{ID: "tun_1", Type: OBJ_FLOOR, Color: "#f0f9ff", Rect: Rect{X: 1200, Y: 950, Width: 100, Height: 100}},
				vent("v_g1", 850, 850, "v_g2"),
				vent("v_g2", 1600, 1100, "v_g1"),
				taskSpot("t_g_1", "scan_sample", 900, 1000),
				taskSpot("t_g_2", "upload_data", 1500, 1000),
			},
		),
	}
}
