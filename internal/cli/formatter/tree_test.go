package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/traversal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTree_Connectors(t *testing.T) {
	out := stripANSI(RenderTree([]TreeItem{
		{Title: "Sketch design", Level: 0, IsLast: false, Status: domain.StatusDone, Critical: true},
		{Title: "Surveys", Level: 1, IsLast: false, Status: domain.StatusInProgress},
		{Title: "Heat supply", Level: 2, IsLast: true, Status: domain.StatusBlocked, Detail: "heat"},
		{Title: "Urban planning", Level: 1, IsLast: true, Status: domain.StatusApproval, Tier: traversal.TierPrimary},
	}))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "✔ Sketch design *")
	assert.Contains(t, lines[1], "├─ ▶ Surveys")
	assert.Contains(t, lines[2], "│  └─ ■ Heat supply")
	assert.Contains(t, lines[2], "[ heat ]")
	assert.True(t, strings.HasPrefix(lines[3], "◆ "))
	assert.Contains(t, lines[3], "└─ ◔ Urban planning")
}

func TestRenderTree_Empty(t *testing.T) {
	assert.Empty(t, RenderTree(nil))
}
