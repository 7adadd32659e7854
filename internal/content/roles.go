package content

// 基础角色 ID
const (
	ROLE_TECHNICIAN = "technician"
	ROLE_MEDIC      = "medic"
	ROLE_ENGINEER   = "engineer"
	ROLE_DETECTIVE  = "detective"
	ROLE_SABOTEUR   = "saboteur"
	ROLE_PHANTOM    = "phantom"
)

// 船员特殊角色的抽取顺序，先命中者获得
var SpecialCrewPriority = []string{ROLE_MEDIC, ROLE_ENGINEER, ROLE_DETECTIVE}

// 内鬼次级角色的抽取顺序
var SecondaryImpostorPriority = []string{ROLE_PHANTOM}

var baseRoles = []RoleDefinition{
	{
		ID: ROLE_TECHNICIAN, Name: "Technician", Team: TEAM_INITIATIVE,
		Description:  "Standard operative. Complete tasks efficiently.",
		VisionRadius: 1.0,
	},
	{
		ID: ROLE_MEDIC, Name: "Field Medic", Team: TEAM_INITIATIVE,
		Description:  "Can check vitals and revive one player.",
		VisionRadius: 1.0,
		AbilityName:  "REVIVE", AbilityCooldown: 60,
	},
	{
		ID: ROLE_ENGINEER, Name: "Engineer", Team: TEAM_INITIATIVE,
		Description:  "Can use vents to move quickly.",
		VisionRadius: 1.0, CanVent: true,
	},
	{
		ID: ROLE_DETECTIVE, Name: "Detective", Team: TEAM_INITIATIVE,
		Description:  "Sees footprints of recent killers.",
		VisionRadius: 1.2,
	},
	{
		ID: ROLE_SABOTEUR, Name: "Saboteur", Team: TEAM_GLITCH,
		Description:  "Eliminate the Initiative.",
		VisionRadius: 1.5, CanVent: true, CanKill: true, KillCooldown: 25,
		AbilityName: "SABOTAGE",
	},
	{
		ID: ROLE_PHANTOM, Name: "Phantom", Team: TEAM_GLITCH,
		Description:  "Can cloak temporarily.",
		VisionRadius: 1.5, CanVent: true, CanKill: true, KillCooldown: 30,
		AbilityName: "CLOAK", AbilityCooldown: 20,
	},
}

var baseTasks = []TaskDefinition{
	{ID: "fix_wiring", Name: "Fix Wiring", Type: TASK_SHORT, Steps: 1, InteractRange: 50, MiniGameKey: "fix_wiring"},
	{ID: "upload_data", Name: "Download Data", Type: TASK_LONG, Steps: 1, InteractRange: 50, MiniGameKey: "upload_data"},
	{ID: "fuel_engines", Name: "Fuel Engines", Type: TASK_COMPLEX, Steps: 2, InteractRange: 50, MiniGameKey: "fuel_engines"},
	{ID: "scan_sample", Name: "Inspect Sample", Type: TASK_SHORT, Steps: 1, InteractRange: 40, MiniGameKey: "scan_sample"},
	{ID: "calibrate_distributor", Name: "Calibrate Distributor", Type: TASK_SHORT, Steps: 1, InteractRange: 40, MiniGameKey: "calibrate_distributor"},
	{ID: "align_fuse", Name: "Quantum Fuse Alignment", Type: TASK_COMPLEX, Steps: 1, InteractRange: 50, MiniGameKey: "align_fuse"},
	{ID: "mix_chemical", Name: "BioGel Calibration", Type: TASK_LONG, Steps: 1, InteractRange: 40, MiniGameKey: "mix_chemical"},
	{ID: "stabilize_gravity", Name: "Gravity Stabilization", Type: TASK_COMPLEX, Steps: 1, InteractRange: 40, MiniGameKey: "stabilize_gravity"},
	{ID: "unlock_manifold", Name: "Mag-Lock Override", Type: TASK_SHORT, Steps: 1, InteractRange: 40, MiniGameKey: "unlock_manifold"},
}

// 未指定 taskType 的任务点使用的默认任务
const DEFAULT_TASK_ID = "fix_wiring"

// BaseRoles 返回基础角色表的副本
func BaseRoles() map[string]RoleDefinition {
	out := make(map[string]RoleDefinition, len(baseRoles))
	for _, r := range baseRoles {
		out[r.ID] = r
	}
	return out
}

// BaseTasks 返回基础任务表的副本
func BaseTasks() map[string]TaskDefinition {
	out := make(map[string]TaskDefinition, len(baseTasks))
	for _, t := range baseTasks {
		out[t.ID] = t
	}
	return out
}
