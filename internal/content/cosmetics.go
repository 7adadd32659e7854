package content

// 玩家可选颜色，加入时未指定颜色则取第一个未被占用的
var Colors = []string{
	"#C51111", "#132ED1", "#117F2D", "#ED54BA", "#EF7D0D", "#F5F557",
	"#3F474E", "#D6E0F0", "#6B2FBB", "#71491E", "#38FEDC", "#50EF39",
}

type Cosmetic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

const (
	DEFAULT_HAT  = "none"
	DEFAULT_SKIN = "standard"
)

var hats = []Cosmetic{
	{DEFAULT_HAT, "No Hat"}, {"cap", "Captain Cap"}, {"helmet", "Space Helmet"},
	{"crown", "Crown"}, {"ushanka", "Ushanka"}, {"goggles", "Goggles"},
	{"horns", "Devil Horns"}, {"halo", "Halo"}, {"cowboy", "Cowboy Hat"},
	{"chef", "Chef Hat"}, {"party", "Party Hat"}, {"ninja", "Ninja Band"},
	{"pirate", "Pirate Hat"}, {"flower", "Flower"},
}

var skins = []Cosmetic{
	{DEFAULT_SKIN, "Standard Suit"}, {"camo", "Military Camo"}, {"hazard", "Hazard Stripe"},
	{"tux", "Tuxedo"}, {"doctor", "Lab Coat"}, {"mechanic", "Overalls"},
}

func Hats() []Cosmetic {
	return append([]Cosmetic(nil), hats...)
}

func Skins() []Cosmetic {
	return append([]Cosmetic(nil), skins...)
}

func IsHat(id string) bool {
	return containsCosmetic(hats, id)
}

func IsSkin(id string) bool {
	return containsCosmetic(skins, id)
}

func containsCosmetic(list []Cosmetic, id string) bool {
	for _, c := range list {
		if c.ID == id {
			return true
		}
	}
	return false
}
