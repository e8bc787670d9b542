package http

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/brewery-admin/internal/domain/movement"
)

func movementColumnsForTest() []Column[movement.Movement] {
	return []Column[movement.Movement]{
		{Key: "material", Label: "Material", Value: func(m movement.Movement) any { return m.MaterialName }},
		{Key: "reason", Label: "Motivo", Value: func(m movement.Movement) any { return m.Reason }},
		{
			Key:    "status",
			Label:  "Estado",
			Value:  func(m movement.Movement) any { return string(m.Status) },
			Render: func(v any, _ movement.Movement) template.HTML { return badge(v.(string), "info") },
		},
	}
}

func TestBuildList_EmptyState(t *testing.T) {
	lv := buildList[movement.Movement]("/movements", nil, movementColumnsForTest(), Actions[movement.Movement]{View: true}, nil, "/movements")
	require.True(t, lv.Empty())
	require.Equal(t, "No hay registros", lv.EmptyText)
	require.Equal(t, []string{"Material", "Motivo", "Estado"}, lv.Headers)
	require.True(t, lv.HasAction)
}

func TestBuildList_CellsAndButtons(t *testing.T) {
	rows := []movement.Movement{
		{ID: 4, MaterialName: "Malta <Pilsen>", Status: movement.StatusPendiente},
		{ID: 5, MaterialName: "Lupulo", Reason: "", Status: movement.StatusCompletado},
	}
	actions := Actions[movement.Movement]{
		View: true,
		Custom: []CustomAction[movement.Movement]{{
			Label:   "Completar",
			Path:    "complete",
			Style:   "success",
			Confirm: "¿Completar el movimiento?",
			Show:    func(m movement.Movement) bool { return m.Status != movement.StatusCompletado },
		}},
	}
	pending := func(id int64) bool { return id == 4 }

	lv := buildList("/movements", rows, movementColumnsForTest(), actions, pending, "/movements?page=1")
	require.Len(t, lv.Rows, 2)

	first := lv.Rows[0]
	require.True(t, first.Busy)
	require.Equal(t, template.HTML("Malta &lt;Pilsen&gt;"), first.Cells[0].HTML)
	require.Equal(t, template.HTML("-"), first.Cells[1].HTML, "blank cells render a dash")
	require.Len(t, first.Buttons, 2)
	require.Equal(t, "/movements/4", first.Buttons[0].Href)
	require.Equal(t, "/movements/4/complete", first.Buttons[1].Action)
	require.True(t, first.Buttons[1].Post())
	require.True(t, first.Buttons[1].Disabled, "actions of a busy row are disabled")

	second := lv.Rows[1]
	require.False(t, second.Busy)
	require.Len(t, second.Buttons, 1, "hidden custom actions are left out")
	require.Equal(t, "/movements?page=1", lv.Return)
}

func TestBuildList_ToggleLabelFollowsState(t *testing.T) {
	actions := Actions[movement.Movement]{ToggleStatus: func(m movement.Movement) bool { return m.ID == 1 }}
	rows := []movement.Movement{{ID: 1}, {ID: 2}}

	lv := buildList("/movements", rows, nil, actions, nil, "/movements")
	require.Equal(t, "Desactivar", lv.Rows[0].Buttons[0].Label)
	require.Equal(t, "Activar", lv.Rows[1].Buttons[0].Label)
	require.Equal(t, "/movements/2/toggle-active", lv.Rows[1].Buttons[0].Action)
}

func TestFormatCell(t *testing.T) {
	require.Equal(t, "-", formatCell(nil))
	require.Equal(t, "-", formatCell(""))
	require.Equal(t, "Sí", formatCell(true))
	require.Equal(t, "No", formatCell(false))
	require.Equal(t, "12", formatCell(12))
}
