package template

// sectionCodes maps roadmap node ids to the backend's hierarchical section
// codes. The mapping is injective; Validate enforces it.
var sectionCodes = map[string]string{
	"sketch":    "sketch",
	"tu":        "sketch.itc",
	"geo":       "sketch.geo",
	"heat":      "sketch.itc.heat",
	"power":     "sketch.itc.power",
	"water":     "sketch.itc.water",
	"gas":       "sketch.itc.gas",
	"phone":     "sketch.itc.phone",
	"urban":     "sketch.urban",
	"workproj":  "working",
	"genplan":   "working.genplan",
	"ppr":       "working.ppr",
	"act":       "working.survey",
	"gpar":      "working.gp_ar",
	"mchs":      "working.gp_ar.mchs",
	"san":       "working.gp_ar.sanepid",
	"eco":       "working.gp_ar.mpret",
	"exp1":      "working.expertise.stage1",
	"registry":  "working.register",
	"exp2":      "working.expertise.stage2",
	"engproj":   "working.networks",
	"ext":       "working.networks.external",
	"int":       "working.networks.internal",
	"ext_heat":  "working.networks.external.heat",
	"ext_power": "working.networks.external.power",
	"ext_water": "working.networks.external.water",
	"ext_gas":   "working.networks.external.gas",
	"int_hv":    "working.networks.internal.hvac",
	"int_el":    "working.networks.internal.electrical",
	"int_vk":    "working.networks.internal.water",
	"int_gas":   "working.networks.internal.gas",
	"int_fire":  "working.networks.internal.fire",
}

// ParentSection returns the enclosing section code, or "" for a root code.
func ParentSection(code string) string {
	for i := len(code) - 1; i >= 0; i-- {
		if code[i] == '.' {
			return code[:i]
		}
	}
	return ""
}
