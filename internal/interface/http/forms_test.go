package http

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeForm_TrimsAndParses(t *testing.T) {
	var f productForm
	errs := decodeForm(url.Values{
		"name":             {"  IPA  "},
		"isAlcoholic":      {"true"},
		"standardQuantity": {" 20 "},
		"return":           {"/products"},
	}, &f)
	require.Nil(t, errs)
	require.Equal(t, "IPA", f.Name)
	require.True(t, f.IsAlcoholic)
	require.Equal(t, "20", f.StandardQuantity)
}

func TestDecodeForm_BadValue_ReportsField(t *testing.T) {
	var f productForm
	errs := decodeForm(url.Values{"isAlcoholic": {"quizás"}}, &f)
	require.Contains(t, errs, "isAlcoholic")
}

func TestNonBlank(t *testing.T) {
	require.Equal(t, []string{"ADMIN"}, nonBlank([]string{"", "ADMIN", ""}))
	require.Empty(t, nonBlank([]string{""}))
}

func TestFormValidator_PositiveAndDecimal(t *testing.T) {
	v := newFormValidator()

	errs := v.Check(&packagingForm{Name: "Lata", Quantity: "0", UnitMeasurement: "ML", MaterialID: "1"})
	require.Equal(t, "Cantidad debe ser un número mayor que cero", errs["quantity"])

	errs = v.Check(&packagingForm{Name: "Lata", Quantity: "0.5", UnitMeasurement: "ML", MaterialID: "1"})
	require.Empty(t, errs)

	errs = v.Check(&materialForm{Name: "Malta", Type: "MALTA", Value: "0", Stock: "0", UnitMeasurement: "KG", Threshold: "0"})
	require.NotContains(t, errs, "value", "zero stays valid for prices")
	require.NotContains(t, errs, "threshold")
}
