package content

import "testing"

func TestRegistry_ListMapsStableOrder(t *testing.T) {
	r := NewRegistry()

	maps := r.ListMaps()
	want := []string{MAP_ZENITH, MAP_MAGMA, MAP_GLACIAL}
	if len(maps) != len(want) {
		t.Fatalf("want %d maps, got %d", len(want), len(maps))
	}
	for i, m := range maps {
		if m.ID != want[i] {
			t.Fatalf("map %d: want %s, got %s", i, want[i], m.ID)
		}
	}
	if r.DefaultMapID() != MAP_ZENITH {
		t.Fatalf("unexpected default map %s", r.DefaultMapID())
	}
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	r := NewRegistry()

	m, ok := r.GetMap(MAP_ZENITH)
	if !ok {
		t.Fatalf("zenith missing")
	}
	for i := range m.Objects {
		m.Objects[i].IsOpen = false
		m.Objects[i].ConnectedVents = nil
	}

	again, _ := r.GetMap(MAP_ZENITH)
	for _, o := range again.Objects {
		if o.Type == OBJ_DOOR && !o.IsOpen {
			t.Fatalf("catalog door %s was mutated through a copy", o.ID)
		}
		if o.Type == OBJ_VENT && len(o.ConnectedVents) == 0 {
			t.Fatalf("catalog vent %s lost its links", o.ID)
		}
	}

	if _, ok := r.GetMap("nope"); ok {
		t.Fatalf("unknown map should not be found")
	}
	if r.MapOrDefault("nope").ID != MAP_ZENITH {
		t.Fatalf("unknown map should fall back to the default")
	}
}

func TestMaps_VentGraphIsConsistent(t *testing.T) {
	for _, m := range NewRegistry().ListMaps() {
		vents := map[string]MapObject{}
		ids := map[string]bool{}
		for _, o := range m.Objects {
			if ids[o.ID] {
				t.Fatalf("%s: duplicate object id %s", m.ID, o.ID)
			}
			ids[o.ID] = true
			if o.Type == OBJ_VENT {
				vents[o.ID] = o
			}
		}

		for id, v := range vents {
			for _, link := range v.ConnectedVents {
				if _, ok := vents[link]; !ok {
					t.Fatalf("%s: vent %s links to unknown vent %s", m.ID, id, link)
				}
			}
		}
	}
}

func TestBaseDefinitions(t *testing.T) {
	roles := BaseRoles()
	for _, id := range append(append([]string{ROLE_TECHNICIAN, ROLE_SABOTEUR}, SpecialCrewPriority...), SecondaryImpostorPriority...) {
		if _, ok := roles[id]; !ok {
			t.Fatalf("role %s missing", id)
		}
	}
	if roles[ROLE_SABOTEUR].Team != TEAM_GLITCH || !roles[ROLE_SABOTEUR].CanKill {
		t.Fatalf("saboteur must be a killing GLITCH role")
	}

	roles[ROLE_MEDIC] = RoleDefinition{}
	if BaseRoles()[ROLE_MEDIC].Name == "" {
		t.Fatalf("BaseRoles must return a copy")
	}

	if _, ok := BaseTasks()[DEFAULT_TASK_ID]; !ok {
		t.Fatalf("default task missing")
	}
}
