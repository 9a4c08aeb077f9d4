package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brasil-Rental-Karts/brk-cli/internal/api"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/form"
)

func focusField(t *testing.T, fs *fieldSet, name string) {
	t.Helper()
	for i, st := range fs.fields {
		if st.def.name == name {
			fs.setFocus(i)
			return
		}
	}
	t.Fatalf("no field %q", name)
}

func typeText(fs *fieldSet, text string) {
	for _, r := range text {
		fs.Update(runeKey(r))
	}
}

func TestFieldSetRoundTripsProjectedRecord(t *testing.T) {
	season := api.Season{
		ID:               "s1",
		Name:             "Temporada 2026",
		StartDate:        "2026-03-01T00:00:00.000Z",
		EndDate:          "2026-11-30",
		Status:           api.SeasonInProgress,
		InscriptionType:  api.InscriptionPerStage,
		InscriptionValue: 450.5,
		RegistrationOpen: true,
		PaymentMethods:   []string{"boleto", "pix"},
	}
	projected, err := form.Project(season)
	require.NoError(t, err)
	values := pickValues(seasonFields, projected)

	fs := newFieldSet(seasonFields)
	fs.SetValues(values)

	assert.False(t, form.HasChanges(values, fs.Values()), "untouched fields must match the snapshot")
	assert.Equal(t, "2026-03-01", fs.Values()["startDate"])
	assert.Equal(t, 450.5, fs.Values()["inscriptionValue"])
	assert.Equal(t, []string{"pix", "boleto"}, fs.Values()["paymentMethods"])
}

func TestFieldSetTypingChangesValues(t *testing.T) {
	fs := newFieldSet(categoryFields)
	initial := pickValues(categoryFields, form.Values{"name": "Graduados"})
	fs.SetValues(initial)

	typeText(&fs, " A")

	assert.Contains(t, fs.Values()["name"], " A")
	assert.Equal(t, []string{"name"}, form.ChangedFields(initial, fs.Values()))
}

func TestFieldSetNumberFields(t *testing.T) {
	fs := newFieldSet(categoryFields)
	fs.SetValues(pickValues(categoryFields, form.Values{"maxPilots": 24}))
	assert.Equal(t, 24.0, fs.Values()["maxPilots"])
	assert.Nil(t, fs.Values()["ballast"])

	focusField(t, &fs, "ballast")
	typeText(&fs, "abc")
	assert.Equal(t, "abc", fs.Values()["ballast"])
	assert.Contains(t, fs.FieldErrors(), "ballast")
}

func TestFieldSetIntegerRule(t *testing.T) {
	fs := newFieldSet(categoryFields)
	fs.SetValues(form.Values{"name": "Sênior", "maxPilots": 12.5})
	assert.Equal(t, []string{"maxPilots"}, fs.FieldErrors())
}

func TestFieldSetRequiredAndFocusFirstInvalid(t *testing.T) {
	fs := newFieldSet(seasonFields)
	fs.SetValues(pickValues(seasonFields, form.Values{"status": api.SeasonScheduled}))
	focusField(t, &fs, "status")

	errs := fs.FieldErrors()
	assert.Equal(t, "name", errs[0])
	assert.Contains(t, errs, "startDate")
	assert.Contains(t, errs, "inscriptionValue")
	assert.NotContains(t, errs, "status")

	fs.FocusFirstInvalid()
	assert.Equal(t, "name", fs.Focused())
	assert.True(t, fs.showErrors)
	assert.Contains(t, fs.View(80), "required")
}

func TestFieldSetDateRules(t *testing.T) {
	fs := newFieldSet(seasonFields)
	fs.SetValues(form.Values{"startDate": "2026-05-10", "endDate": "2026-05-01"})
	assert.Contains(t, fs.FieldErrors(), "endDate")

	fs.SetValues(form.Values{"startDate": "10/05/2026", "endDate": "2026-06-01"})
	errs := fs.FieldErrors()
	assert.Contains(t, errs, "startDate")
	assert.NotContains(t, errs, "endDate")
}

func TestFieldSetSelectCycles(t *testing.T) {
	fs := newFieldSet(seasonFields)
	fs.SetValues(form.Values{"status": api.SeasonScheduled})
	focusField(t, &fs, "status")

	fs.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, api.SeasonInProgress, fs.Values()["status"])

	fs.Update(tea.KeyMsg{Type: tea.KeyLeft})
	fs.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, api.SeasonFinished, fs.Values()["status"])
}

func TestFieldSetKeepsUnknownSelectValue(t *testing.T) {
	fs := newFieldSet(seasonFields)
	fs.SetValues(form.Values{"status": "suspenso"})
	assert.Equal(t, "suspenso", fs.Values()["status"])
}

func TestFieldSetMultiAndToggle(t *testing.T) {
	fs := newFieldSet(seasonFields)
	fs.SetValues(form.Values{"paymentMethods": []any{"pix"}})

	focusField(t, &fs, "paymentMethods")
	fs.Update(tea.KeyMsg{Type: tea.KeyRight})
	fs.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, []string{"pix", "cartao_credito"}, fs.Values()["paymentMethods"])

	fs.Update(tea.KeyMsg{Type: tea.KeyLeft})
	fs.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, []string{"cartao_credito"}, fs.Values()["paymentMethods"])

	focusField(t, &fs, "registrationOpen")
	fs.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, true, fs.Values()["registrationOpen"])
}

func TestFieldSetFocusWraps(t *testing.T) {
	fs := newFieldSet(registrationFields)
	assert.Equal(t, "status", fs.Focused())
	fs.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "notes", fs.Focused())
	fs.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "status", fs.Focused())
}

func TestFieldSetConditionalRequirement(t *testing.T) {
	fs := newFieldSet(penaltyFields)
	fs.SetValues(form.Values{"userId": "u1", "type": api.PenaltyWarning, "reason": "Queima de largada", "status": api.PenaltyStatusPending})
	assert.Empty(t, fs.FieldErrors())

	fs.SetValues(form.Values{"userId": "u1", "type": api.PenaltyTime, "reason": "Queima de largada", "status": api.PenaltyStatusPending})
	assert.Equal(t, []string{"value"}, fs.FieldErrors())
}

func TestFieldSetDisplay(t *testing.T) {
	fs := newFieldSet(seasonFields)
	assert.Equal(t, "In progress", fs.display("status", api.SeasonInProgress))
	assert.Equal(t, "Boleto, Pix", fs.display("paymentMethods", []string{"pix", "boleto"}))
	assert.Equal(t, "yes", fs.display("registrationOpen", true))
	assert.Equal(t, "R$ 450,00", fs.display("inscriptionValue", 450.0))
	assert.Equal(t, "Inscription value", fs.label("inscriptionValue"))
	assert.Equal(t, "unknown", fs.label("unknown"))
}

func TestParseMoney(t *testing.T) {
	cases := map[string]float64{
		"1.250,50":     1250.5,
		"1250,5":       1250.5,
		"1250.50":      1250.5,
		"R$ 99,90":     99.9,
		" 450 ":        450,
		"1.000.000,00": 1000000,
	}
	for in, want := range cases {
		got, err := parseMoney(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want, got, 0.0001, in)
	}

	_, err := parseMoney("abc")
	assert.Error(t, err)
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 0,00", formatBRL(0))
	assert.Equal(t, "R$ 450,50", formatBRL(450.5))
	assert.Equal(t, "R$ 1.250,00", formatBRL(1250))
	assert.Equal(t, "R$ 1.234.567,80", formatBRL(1234567.8))
	assert.Equal(t, "-R$ 10,00", formatBRL(-10))
}

func TestCoerceShapes(t *testing.T) {
	assert.Equal(t, "2026-03-14", coerce(fieldDef{kind: fieldDate}, "2026-03-14T10:00:00Z"))
	assert.Equal(t, "", coerce(fieldDef{kind: fieldText}, nil))
	assert.Equal(t, 3.0, coerce(fieldDef{kind: fieldNumber}, 3))
	assert.Nil(t, coerce(fieldDef{kind: fieldNumber}, ""))
	assert.Equal(t, []string{}, coerce(fieldDef{kind: fieldMulti}, nil))
	assert.Equal(t, false, coerce(fieldDef{kind: fieldToggle}, nil))
}

func TestFieldSetLongTextSurvivesUntouched(t *testing.T) {
	notes := "Pagamento via pix\r\n\tconfirmado em 14/03\n" + strings.Repeat("ok ", 120)
	values := pickValues(registrationFields, form.Values{"status": api.RegistrationConfirmed, "notes": notes})
	assert.Equal(t, "Pagamento via pix\n    confirmado em 14/03\n"+strings.Repeat("ok ", 120), values["notes"])

	fs := newFieldSet(registrationFields)
	fs.SetValues(values)
	fs.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "notes", fs.Focused())
	assert.False(t, form.HasChanges(values, fs.Values()))
}

func TestFieldSetPlainTextHasNoLengthCap(t *testing.T) {
	long := strings.Repeat("k", 400)
	values := pickValues(stageFields, form.Values{"name": long, "kartodrome": "Beto Carrero\tParque"})
	assert.Equal(t, "Beto Carrero Parque", values["kartodrome"])

	fs := newFieldSet(stageFields)
	fs.SetValues(values)
	assert.Equal(t, long, fs.Values()["name"])
	assert.False(t, form.HasChanges(values, fs.Values()))
}

func TestFieldSetMoneySnapshotMatchesDisplay(t *testing.T) {
	values := pickValues(seasonFields, form.Values{"inscriptionValue": 12.345})
	assert.Equal(t, 12.35, values["inscriptionValue"])

	fs := newFieldSet(seasonFields)
	fs.SetValues(values)
	focusField(t, &fs, "inscriptionValue")
	fs.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 12.35, fs.Values()["inscriptionValue"])
	assert.False(t, form.HasChanges(values, fs.Values()))
}
