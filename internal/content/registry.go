package content

// Registry 是只读的地图与定义目录，所有查询都返回副本
type Registry struct {
	maps         map[string]MapDefinition
	order        []string
	defaultMapID string
}

// DEFAULT_MAP_ID 为找不到地图时的回退
const DEFAULT_MAP_ID = MAP_ZENITH

func NewRegistry() *Registry {
	defs := []MapDefinition{starshipZenith(), magmaCore(), glacialDome()}

	r := &Registry{
		maps:         make(map[string]MapDefinition, len(defs)),
		order:        make([]string, 0, len(defs)),
		defaultMapID: DEFAULT_MAP_ID,
	}

	for _, d := range defs {
		r.maps[d.ID] = d
		r.order = append(r.order, d.ID)
	}

	return r
}

func (r *Registry) DefaultMapID() string {
	return r.defaultMapID
}

func (r *Registry) GetMap(id string) (MapDefinition, bool) {
	d, ok := r.maps[id]
	if !ok {
		return MapDefinition{}, false
	}

	d.Objects = d.CloneObjects()
	return d, true
}

// MapOrDefault 按 ID 查找地图，找不到时返回默认地图
func (r *Registry) MapOrDefault(id string) MapDefinition {
	if d, ok := r.GetMap(id); ok {
		return d
	}

	d, _ := r.GetMap(r.defaultMapID)
	return d
}

func (r *Registry) ListMaps() []MapDefinition {
	out := make([]MapDefinition, 0, len(r.order))
	for _, id := range r.order {
		d, _ := r.GetMap(id)
		out = append(out, d)
	}
	return out
}
