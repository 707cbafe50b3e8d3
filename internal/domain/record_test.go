package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStatusAt(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	date := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	assert.Nil(t, DocumentStatusAt(nil, today))

	cases := []struct {
		name  string
		until *time.Time
		want  DocumentStatus
	}{
		{"yesterday", date(2026, 3, 9), DocExpired},
		{"today", date(2026, 3, 10), DocExpiring},
		{"in a week", date(2026, 3, 17), DocExpiring},
		{"in thirty days", date(2026, 4, 9), DocExpiring},
		{"in thirty one days", date(2026, 4, 10), DocValid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DocumentStatusAt(tc.until, today)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestStatusRecord_Status(t *testing.T) {
	r := &StatusRecord{ExecutionStatus: ExecOnApproval}
	assert.Equal(t, StatusApproval, r.Status())
}

func TestProject_DisplayID(t *testing.T) {
	assert.Equal(t, "BSK-01", (&Project{ID: 3, Code: "BSK-01"}).DisplayID())
	assert.Equal(t, "#3", (&Project{ID: 3}).DisplayID())
}

func TestNode_Title(t *testing.T) {
	n := Node{ID: "ppr", Label: "PPR\nWork execution plan"}
	assert.Equal(t, "PPR Work execution plan", n.Title())
	assert.Equal(t, "Water supply and sewerage", Node{ID: "water", Label: "Water supply and\n  sewerage "}.Title())
	assert.Equal(t, "x", Node{ID: "x", Label: " \n"}.Title())
}

func TestBox_Center(t *testing.T) {
	b := Box{X: 500, Y: 130, W: 200, H: 44}
	assert.Equal(t, Point{X: 600, Y: 152}, b.Center())
}
