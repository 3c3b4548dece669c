package block

import "strings"

// Block IDs understood by Minecraft Pi Edition.
const (
	Air               ID = 0
	Stone             ID = 1
	Grass             ID = 2
	Dirt              ID = 3
	Cobblestone       ID = 4
	WoodPlanks        ID = 5
	Sapling           ID = 6
	Bedrock           ID = 7
	WaterFlowing      ID = 8
	Water             ID = WaterFlowing
	WaterStationary   ID = 9
	LavaFlowing       ID = 10
	Lava              ID = LavaFlowing
	LavaStationary    ID = 11
	Sand              ID = 12
	Gravel            ID = 13
	GoldOre           ID = 14
	IronOre           ID = 15
	CoalOre           ID = 16
	Wood              ID = 17
	Leaves            ID = 18
	Glass             ID = 20
	LapisLazuliOre    ID = 21
	LapisLazuliBlock  ID = 22
	Sandstone         ID = 24
	Bed               ID = 26
	Cobweb            ID = 30
	GrassTall         ID = 31
	Wool              ID = 35
	FlowerYellow      ID = 37
	FlowerCyan        ID = 38
	MushroomBrown     ID = 39
	MushroomRed       ID = 40
	GoldBlock         ID = 41
	IronBlock         ID = 42
	StoneSlabDouble   ID = 43
	StoneSlab         ID = 44
	BrickBlock        ID = 45
	TNT               ID = 46
	Bookshelf         ID = 47
	MossStone         ID = 48
	Obsidian          ID = 49
	Torch             ID = 50
	Fire              ID = 51
	StairsWood        ID = 53
	Chest             ID = 54
	DiamondOre        ID = 56
	DiamondBlock      ID = 57
	CraftingTable     ID = 58
	Farmland          ID = 60
	FurnaceInactive   ID = 61
	FurnaceActive     ID = 62
	DoorWood          ID = 64
	Ladder            ID = 65
	StairsCobblestone ID = 67
	DoorIron          ID = 71
	RedstoneOre       ID = 73
	Snow              ID = 78
	Ice               ID = 79
	SnowBlock         ID = 80
	Cactus            ID = 81
	Clay              ID = 82
	SugarCane         ID = 83
	Fence             ID = 85
	GlowstoneBlock    ID = 89
	BedrockInvisible  ID = 95
	StoneBrick        ID = 98
	GlassPane         ID = 102
	Melon             ID = 103
	FenceGate         ID = 107
	GlowingObsidian   ID = 246
	NetherReactorCore ID = 247
)

// names maps lower-case snake_case names to IDs. Aliases (water, lava)
// point at the flowing variants, as the game does.
var names = map[string]ID{
	"air":                 Air,
	"stone":               Stone,
	"grass":               Grass,
	"dirt":                Dirt,
	"cobblestone":         Cobblestone,
	"wood_planks":         WoodPlanks,
	"sapling":             Sapling,
	"bedrock":             Bedrock,
	"water_flowing":       WaterFlowing,
	"water":               Water,
	"water_stationary":    WaterStationary,
	"lava_flowing":        LavaFlowing,
	"lava":                Lava,
	"lava_stationary":     LavaStationary,
	"sand":                Sand,
	"gravel":              Gravel,
	"gold_ore":            GoldOre,
	"iron_ore":            IronOre,
	"coal_ore":            CoalOre,
	"wood":                Wood,
	"leaves":              Leaves,
	"glass":               Glass,
	"lapis_lazuli_ore":    LapisLazuliOre,
	"lapis_lazuli_block":  LapisLazuliBlock,
	"sandstone":           Sandstone,
	"bed":                 Bed,
	"cobweb":              Cobweb,
	"grass_tall":          GrassTall,
	"wool":                Wool,
	"flower_yellow":       FlowerYellow,
	"flower_cyan":         FlowerCyan,
	"mushroom_brown":      MushroomBrown,
	"mushroom_red":        MushroomRed,
	"gold_block":          GoldBlock,
	"iron_block":          IronBlock,
	"stone_slab_double":   StoneSlabDouble,
	"stone_slab":          StoneSlab,
	"brick_block":         BrickBlock,
	"tnt":                 TNT,
	"bookshelf":           Bookshelf,
	"moss_stone":          MossStone,
	"obsidian":            Obsidian,
	"torch":               Torch,
	"fire":                Fire,
	"stairs_wood":         StairsWood,
	"chest":               Chest,
	"diamond_ore":         DiamondOre,
	"diamond_block":       DiamondBlock,
	"crafting_table":      CraftingTable,
	"farmland":            Farmland,
	"furnace_inactive":    FurnaceInactive,
	"furnace_active":      FurnaceActive,
	"door_wood":           DoorWood,
	"ladder":              Ladder,
	"stairs_cobblestone":  StairsCobblestone,
	"door_iron":           DoorIron,
	"redstone_ore":        RedstoneOre,
	"snow":                Snow,
	"ice":                 Ice,
	"snow_block":          SnowBlock,
	"cactus":              Cactus,
	"clay":                Clay,
	"sugar_cane":          SugarCane,
	"fence":               Fence,
	"glowstone_block":     GlowstoneBlock,
	"bedrock_invisible":   BedrockInvisible,
	"stone_brick":         StoneBrick,
	"glass_pane":          GlassPane,
	"melon":               Melon,
	"fence_gate":          FenceGate,
	"glowing_obsidian":    GlowingObsidian,
	"nether_reactor_core": NetherReactorCore,
}

// Lookup finds a block ID by name. Names are case-insensitive and may use
// spaces or dashes instead of underscores.
func Lookup(name string) (ID, bool) {
	id, ok := names[normalizeName(name)]
	return id, ok
}

// Names returns every known block name.
func Names() []string {
	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	return out
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(name)
}
