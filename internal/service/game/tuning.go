package game

// 倒计时单位均为秒
const (
	MELTDOWN_SECONDS           = 60.0
	SABOTAGE_COOLDOWN          = 30.0
	SABOTAGE_GRACE_ROUND_START = 20.0
	SABOTAGE_GRACE_MEETING     = 10.0
	SABOTAGE_GRACE_AFTER_VOTE  = 20.0
	DOOR_LOCK_SECONDS          = 10.0
	INITIAL_KILL_TIMER         = 10.0
	EMERGENCY_COOLDOWN         = 15.0

	// 反应堆与氧气需要两次独立修理
	CRITICAL_FIXES_REQUIRED = 2

	EMERGENCY_MEETINGS_PER_GAME = 1

	// 报告尸体时与尸体的最大距离
	REPORT_RANGE = 150.0

	// 开局出生点在 X 轴上的随机偏移范围
	SPAWN_JITTER = 100.0

	MAX_LOG_LINES  = 200
	MAX_CHAT_LINES = 200
	MAX_CHAT_TEXT  = 280

	LOBBY_CODE_LENGTH = 6

	// 倒计时小于该值即视为归零，避免浮点累计误差
	timerEpsilon = 1e-9
)

const lobbyCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
