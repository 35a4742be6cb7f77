package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/estate-offers/internal/model"
	"github.com/nurpe/estate-offers/internal/specs"
)

// Generator builds the spreadsheet companion of the offer document: one
// summary row per building from the same aggregated specs the PDF shows,
// plus a detail sheet per building listing its units.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(deal model.Deal, buildings []model.Building) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Sumar"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, deal, buildings); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, b := range buildings {
		sheetName := buildSheetName(b.Name, b.ID, usedNames)
		usedNames[sheetName] = struct{}{}

		file.NewSheet(sheetName)
		if err := g.writeDetail(file, sheetName, b); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, deal model.Deal, buildings []model.Building) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Oferta")
	set("B1", deal.Name)
	set("A2", "Client")
	set("B2", deal.CompanyName)
	set("A3", "Consultant")
	set("B3", deal.Broker.FullName)
	set("A4", "Data")
	set("B4", time.Now().Format("2006-01-02"))

	tableRow := 6
	headers := []string{
		"Proprietate",
		"Adresa",
		"Depozit, mp",
		"Chirie depozit, EUR/mp",
		"Birouri/sanitar, mp",
		"Chirie birouri, EUR/mp",
		"Rampe",
		"Pret achizitie, EUR",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, b := range buildings {
		agg := specs.Aggregate(b)
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), b.Name)
		set(fmt.Sprintf("B%d", row), b.Address)
		set(fmt.Sprintf("C%d", row), agg.WarehouseAreaSqm)
		set(fmt.Sprintf("D%d", row), formatPrice(agg.WarehousePrice))
		set(fmt.Sprintf("E%d", row), agg.OfficeAreaSqm)
		set(fmt.Sprintf("F%d", row), formatPrice(agg.OfficePrice))
		set(fmt.Sprintf("G%d", row), agg.Docks)
		set(fmt.Sprintf("H%d", row), formatPrice(agg.SalePrice))
	}

	_ = file.SetColWidth(sheet, "A", "B", 36)
	_ = file.SetColWidth(sheet, "C", "H", 18)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, b model.Building) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Proprietate")
	set("B1", b.Name)
	set("A2", "Adresa")
	set("B2", b.Address)
	set("A3", "Localitate")
	set("B3", b.Location)
	set("A4", "Tranzactie")
	set("B4", string(b.Transaction))

	tableRow := 6
	headers := []string{
		"Unitate",
		"Depozit, mp",
		"Chirie depozit, EUR/mp",
		"Birouri, mp",
		"Sanitar, mp",
		"Rampe",
		"Disponibil de la",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, u := range b.Units {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), u.Name)
		set(fmt.Sprintf("B%d", row), spaceArea(u.Warehouse))
		set(fmt.Sprintf("C%d", row), spacePrice(u.Warehouse))
		set(fmt.Sprintf("D%d", row), spaceArea(u.Office))
		set(fmt.Sprintf("E%d", row), spaceArea(u.Sanitary))
		set(fmt.Sprintf("F%d", row), u.Docks)
		set(fmt.Sprintf("G%d", row), formatAvailability(u.AvailableFrom))
	}

	_ = file.SetColWidth(sheet, "A", "A", 28)
	_ = file.SetColWidth(sheet, "B", "G", 18)
	return nil
}

func buildSheetName(name string, id uuid.UUID, used map[string]struct{}) string {
	base := sanitizeSheetName(name)
	if base == "" {
		base = id.String()
	}
	if len(base) > 31 {
		base = base[:31]
	}

	candidate := base
	counter := 2
	for {
		if _, exists := used[candidate]; !exists {
			return candidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		candidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	return strings.TrimSpace(replacer.Replace(strings.TrimSpace(value)))
}

func spaceArea(s *model.Space) interface{} {
	if s == nil {
		return ""
	}
	return s.AreaSqm
}

func spacePrice(s *model.Space) interface{} {
	if s == nil || s.PricePerSqm == 0 {
		return ""
	}
	return s.PricePerSqm
}

func formatPrice(value float64) interface{} {
	if value == 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", value)
}

func formatAvailability(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
