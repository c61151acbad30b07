package merchant

import (
	"strconv"
	"strings"

	"merchant-registry/internal/model"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// utf8BOM makes spreadsheet software detect the encoding of the report.
const utf8BOM = "\ufeff"

// exportHeaders is the fixed Spanish header row of the merchant report.
// Downstream consumers match on these exact strings; the order and spelling
// must not change.
var exportHeaders = []string{
	"Nombre o razón social",
	"Municipio",
	"Teléfono",
	"Correo Electrónico",
	"Fecha de Registro",
	"Estado",
	"Cantidad de Establecimientos",
	"Total Ingresos",
	"Cantidad de Empleados",
}

var spanishColombia = message.NewPrinter(language.MustParse("es-CO"))

// formatRevenue renders a revenue total with Spanish-Colombia grouping and
// exactly one fraction digit, matching the report's legacy format.
func formatRevenue(v float64) string {
	return spanishColombia.Sprint(number.Decimal(v,
		number.MinFractionDigits(1),
		number.MaxFractionDigits(1),
	))
}

// buildTSV serializes the merchant report: a UTF-8 BOM, the header row, then
// one tab-separated row per merchant with per-merchant establishment
// aggregates, joined with CRLF.
func buildTSV(merchants []model.Merchant) string {
	lines := make([]string, 0, len(merchants)+1)
	lines = append(lines, strings.Join(exportHeaders, "\t"))

	for _, m := range merchants {
		establishmentCount := len(m.Establishments)
		totalRevenue := 0.0
		totalEmployees := 0
		for _, e := range m.Establishments {
			totalRevenue += e.Revenue
			totalEmployees += e.EmployeeCount
		}

		phone := ""
		if m.Phone != nil {
			phone = *m.Phone
		}
		email := ""
		if m.Email != nil {
			email = *m.Email
		}
		status := "Inactivo"
		if m.Status == model.StatusActive {
			status = "Activo"
		}

		row := []string{
			m.Name,
			m.Municipality,
			phone,
			email,
			m.RegistrationDate.Format("2006-01-02"),
			status,
			strconv.Itoa(establishmentCount),
			formatRevenue(totalRevenue),
			strconv.Itoa(totalEmployees),
		}
		lines = append(lines, strings.Join(row, "\t"))
	}

	return utf8BOM + strings.Join(lines, "\r\n")
}
