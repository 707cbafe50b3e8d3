package template

import "github.com/alexanderramin/roadmap/internal/domain"

// Stage groups used by the permitting roadmap.
const (
	StageInputs      = "Input data"
	StageUtilitiesTU = "Utilities (specs)"
	StageDesign      = "Design"
	StageApprovals   = "Approvals"
	StageExpertise   = "Expertise"
	StageCompletion  = "Completion"
	StageNetworks    = "Engineering networks"
	StageExternal    = "External networks"
	StageInternal    = "Internal networks"
)

func node(id, label, stage, role string, def domain.Status, x, y, w, h float64) domain.Node {
	return domain.Node{
		ID:            id,
		Label:         label,
		Stage:         stage,
		Role:          role,
		Kind:          domain.NodeMilestone,
		DefaultStatus: def,
		Box:           domain.Box{X: x, Y: y, W: w, H: h},
	}
}

func edge(from, to string) domain.Edge {
	return domain.Edge{From: from, To: to}
}

var roadmapNodes = []domain.Node{
	node("sketch", "Sketch design", StageInputs, "Designer", domain.StatusDone, 500, 130, 200, 44),
	node("tu", "Engineering technical conditions\n(issued by the architecture authority)", StageInputs, "Architecture", domain.StatusApproval, 260, 200, 680, 74),
	node("geo", "Engineering-geological\nsurveys", StageInputs, "Geodesy/Geology", domain.StatusInProgress, 1100, 290, 260, 74),
	node("heat", "Heat supply", StageUtilitiesTU, "HVAC engineer", domain.StatusInProgress, 120, 290, 160, 44),
	node("power", "Power supply", StageUtilitiesTU, "Electrical engineer", domain.StatusNotStarted, 300, 290, 170, 44),
	node("water", "Water supply and\nsewerage", StageUtilitiesTU, "Plumbing engineer", domain.StatusInProgress, 490, 290, 210, 44),
	node("gas", "Gas supply", StageUtilitiesTU, "Gas engineer", domain.StatusApproval, 720, 290, 170, 44),
	node("phone", "Telephony", StageUtilitiesTU, "Low-voltage engineer", domain.StatusNotStarted, 900, 290, 160, 44),
	node("urban", "Urban planning\nconclusion", StageDesign, "Architecture", domain.StatusInProgress, 420, 360, 360, 44),
	node("workproj", "Working project", StageDesign, "Chief architect/engineer", domain.StatusInProgress, 470, 430, 260, 44),
	node("genplan", "Construction master plan", StageDesign, "Production office", domain.StatusNotStarted, 120, 390, 260, 44),
	node("ppr", "PPR\nWork execution plan", StageDesign, "Production office", domain.StatusNotStarted, 120, 444, 260, 58),
	node("act", "Setting-out\nact", StageDesign, "Geodesy", domain.StatusInProgress, 120, 512, 260, 44),
	node("gpar", "GP AR\n(Master plan and architectural solutions)\nApproval by the city architecture office", StageApprovals, "Architecture", domain.StatusApproval, 700, 500, 380, 74),
	node("mchs", "Approval by\nthe emergency ministry", StageApprovals, "Expert", domain.StatusNotStarted, 1200, 495, 240, 44),
	node("san", "Approval by\nthe sanitary service", StageApprovals, "Expert", domain.StatusNotStarted, 1200, 550, 240, 44),
	node("eco", "Approval by\nthe ecology ministry", StageApprovals, "Expert", domain.StatusInProgress, 1200, 605, 240, 52),
	node("exp1", "State expertise\nstage 1", StageExpertise, "State expertise", domain.StatusBlocked, 720, 610, 360, 54),
	node("registry", "Inclusion in the register\nof objects under construction", StageCompletion, "Registrar", domain.StatusNotStarted, 720, 690, 360, 54),
	node("exp2", "State expertise stage 2", StageExpertise, "State expertise", domain.StatusNotStarted, 350, 560, 280, 54),
	node("engproj", "Engineering networks\nprojects", StageDesign, "Chief engineer", domain.StatusInProgress, 350, 640, 280, 54),
	node("ext", "External networks", StageNetworks, "Engineers", domain.StatusNotStarted, 240, 710, 220, 44),
	node("int", "Internal networks", StageNetworks, "Engineers", domain.StatusNotStarted, 520, 710, 220, 44),
	node("ext_heat", "Heat supply", StageExternal, "HVAC", domain.StatusNotStarted, 250, 770, 200, 40),
	node("ext_power", "Power supply", StageExternal, "Electrical", domain.StatusNotStarted, 250, 818, 200, 40),
	node("ext_water", "External water supply\nand sewerage", StageExternal, "Plumbing", domain.StatusNotStarted, 250, 866, 200, 40),
	node("ext_gas", "Gas supply", StageExternal, "Gas", domain.StatusNotStarted, 250, 906, 200, 40),
	node("int_hv", "Heating and ventilation", StageInternal, "HVAC", domain.StatusNotStarted, 530, 770, 200, 40),
	node("int_el", "Electrical installation\nand equipment", StageInternal, "Electrical", domain.StatusNotStarted, 530, 818, 200, 40),
	node("int_vk", "Water supply\nand sewerage", StageInternal, "Plumbing", domain.StatusNotStarted, 530, 866, 200, 40),
	node("int_gas", "Gas supply", StageInternal, "Fire safety", domain.StatusNotStarted, 530, 912, 200, 40),
	node("int_fire", "Fire suppression\nand alarm", StageInternal, "Fire safety", domain.StatusNotStarted, 530, 960, 200, 40),
}

var roadmapEdges = []domain.Edge{
	edge("sketch", "tu"),
	edge("sketch", "geo"),
	edge("tu", "heat"),
	edge("tu", "power"),
	edge("tu", "water"),
	edge("tu", "gas"),
	edge("tu", "phone"),
	edge("tu", "urban"),
	edge("heat", "urban"),
	edge("power", "urban"),
	edge("water", "urban"),
	edge("gas", "urban"),
	edge("phone", "urban"),
	edge("urban", "workproj"),
	edge("geo", "workproj"),
	edge("workproj", "genplan"),
	edge("workproj", "ppr"),
	edge("workproj", "act"),
	edge("gpar", "mchs"),
	edge("gpar", "san"),
	edge("gpar", "eco"),
	edge("gpar", "exp1"),
	edge("workproj", "gpar"),
	edge("exp1", "registry"),
	edge("exp1", "exp2"),
	edge("exp2", "engproj"),
	edge("engproj", "ext"),
	edge("engproj", "int"),
	edge("ext", "ext_heat"),
	edge("ext", "ext_power"),
	edge("ext", "ext_water"),
	edge("ext", "ext_gas"),
	edge("int", "int_hv"),
	edge("int", "int_el"),
	edge("int", "int_vk"),
	edge("int", "int_gas"),
	edge("int", "int_fire"),
}

// roadmapCritical is the minimal chain to registration.
var roadmapCritical = []string{"sketch", "tu", "urban", "workproj", "gpar", "exp1", "registry"}

var roadmap = MustNew(Definition{
	Nodes:    roadmapNodes,
	Edges:    roadmapEdges,
	Sections: sectionCodes,
	Critical: roadmapCritical,
})

// Roadmap returns the construction permitting roadmap shared by every project.
func Roadmap() *Template {
	return roadmap
}
