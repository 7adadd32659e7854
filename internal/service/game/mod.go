package game

import (
	"fmt"
	"slices"
)

// loadMod 按 ID 合并角色与任务定义，后加载的覆盖先加载的。
// 模组内容视为可信输入，只跳过没有 ID 的条目。
func (e *Engine) loadMod(s *GameState, a LoadMod) *GameState {
	pkg := a.Package
	if len(pkg.Roles) == 0 && len(pkg.Tasks) == 0 {
		return s
	}

	next := s.Clone()
	for _, r := range pkg.Roles {
		if r.ID != "" {
			next.ModRegistry.Roles[r.ID] = r
		}
	}
	for _, t := range pkg.Tasks {
		if t.ID != "" {
			next.ModRegistry.Tasks[t.ID] = t
		}
	}

	if pkg.ID != "" && !slices.Contains(next.ModRegistry.Loaded, pkg.ID) {
		next.ModRegistry.Loaded = append(next.ModRegistry.Loaded, pkg.ID)
	}

	name := pkg.Name
	if name == "" {
		name = pkg.ID
	}
	next.appendLog(fmt.Sprintf("MOD INSTALLED: %s", name))

	return next
}
