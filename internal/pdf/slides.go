package pdf

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/estate-offers/internal/model"
	"github.com/nurpe/estate-offers/internal/specs"
)

const (
	pageWidth  = 960.0
	pageHeight = 540.0

	slideMargin     = 48.0
	headerBarHeight = 64.0
)

type specRow struct {
	Label string
	Value string
}

func coverSlide(doc *gofpdf.Fpdf, rc *RenderContext, deal model.Deal, cover []byte) []DrawError {
	doc.AddPage()

	var errs []DrawError
	doc.SetFillColor(rc.Accent.R, rc.Accent.G, rc.Accent.B)
	doc.Rect(0, 0, pageWidth, pageHeight, "F")

	if len(cover) > 0 {
		if err := drawImageFit(doc, rc.Agency.CoverRef, cover, Rect{X: 0, Y: 0, W: pageWidth, H: pageHeight}); err != nil {
			errs = append(errs, *err)
		} else {
			// Darken the photo so the title stays readable.
			doc.SetAlpha(0.55, "Normal")
			doc.SetFillColor(rc.Accent.R, rc.Accent.G, rc.Accent.B)
			doc.Rect(0, 0, pageWidth, pageHeight, "F")
			doc.SetAlpha(1, "Normal")
		}
	}

	doc.SetTextColor(255, 255, 255)
	doc.SetFont(rc.Font, "B", 40)
	doc.SetXY(slideMargin, 180)
	doc.MultiCell(pageWidth-2*slideMargin, 46, deal.Name, "", "L", false)

	doc.SetFont(rc.Font, "", 18)
	if len(deal.Locations) > 0 {
		doc.SetX(slideMargin)
		doc.MultiCell(pageWidth-2*slideMargin, 24, strings.Join(deal.Locations, ", "), "", "L", false)
	}

	doc.SetFont(rc.Font, "", 14)
	doc.SetXY(slideMargin, pageHeight-110)
	doc.CellFormat(0, 18, fmt.Sprintf("Pregatit pentru %s", deal.CompanyName), "", 1, "L", false, 0, "")
	doc.SetX(slideMargin)
	doc.CellFormat(0, 18, formatDate(rc.Now), "", 1, "L", false, 0, "")

	doc.SetFont(rc.Font, "B", 16)
	doc.SetXY(pageWidth-260-slideMargin, pageHeight-60)
	doc.CellFormat(260, 20, rc.Agency.Name, "", 0, "R", false, 0, "")

	return errs
}

func overviewSlide(doc *gofpdf.Fpdf, rc *RenderContext, buildings []model.Building, mapImage []byte) []DrawError {
	doc.AddPage()
	drawHeaderBar(doc, rc, "Harta proprietatilor", "")

	listX := slideMargin
	listY := headerBarHeight + 32.0
	doc.SetTextColor(40, 40, 40)
	number := 0
	for _, b := range buildings {
		if b.Coords == nil {
			continue
		}
		number++
		doc.SetFont(rc.Font, "B", 13)
		doc.SetXY(listX, listY)
		doc.CellFormat(26, 18, fmt.Sprintf("%d.", number), "", 0, "L", false, 0, "")
		doc.SetFont(rc.Font, "", 13)
		label := b.Name
		if b.Location != "" {
			label += " - " + b.Location
		}
		doc.CellFormat(330, 18, label, "", 0, "L", false, 0, "")
		listY += 24
	}

	mapBox := Rect{
		X: 440,
		Y: headerBarHeight + 24,
		W: pageWidth - 440 - slideMargin,
		H: pageHeight - headerBarHeight - 24 - slideMargin,
	}
	if err := drawImageOrPlaceholder(doc, rc, "overview-map", mapImage, mapBox, "Harta indisponibila"); err != nil {
		return []DrawError{*err}
	}
	return nil
}

func specsSlide(doc *gofpdf.Fpdf, rc *RenderContext, b model.Building, agg specs.AggregatedSpecs, satellite []byte) []DrawError {
	doc.AddPage()
	drawHeaderBar(doc, rc, b.Name, b.Address)

	colX := slideMargin
	colW := 430.0
	y := headerBarHeight + 24.0

	y = drawSpecTable(doc, rc, "Conditii comerciale", commercialRows(b, agg), colX, y, colW)
	y += 16
	drawSpecTable(doc, rc, "Specificatii tehnice", technicalRows(agg), colX, y, colW)

	satelliteBox := Rect{
		X: colX + colW + 32,
		Y: headerBarHeight + 24,
		W: pageWidth - colX - colW - 32 - slideMargin,
		H: pageHeight - headerBarHeight - 24 - slideMargin,
	}
	ref := "satellite-" + b.ID.String()
	if err := drawImageOrPlaceholder(doc, rc, ref, satellite, satelliteBox, "Imagine satelit indisponibila"); err != nil {
		return []DrawError{*err}
	}
	return nil
}

func photoSlide(doc *gofpdf.Fpdf, rc *RenderContext, b model.Building, photos [][]byte, page, pages int) []DrawError {
	doc.AddPage()

	title := b.Name
	if pages > 1 {
		title = fmt.Sprintf("%s (%d/%d)", title, page, pages)
	}
	drawHeaderBar(doc, rc, title, "Fotografii")

	body := Rect{
		X: slideMargin,
		Y: headerBarHeight + 24,
		W: pageWidth - 2*slideMargin,
		H: pageHeight - headerBarHeight - 24 - slideMargin,
	}

	var errs []DrawError
	for i, placement := range PhotoGrid(len(photos), body) {
		ref := fmt.Sprintf("photo-%s-%d-%d", b.ID, page, i)
		if err := drawImageOrPlaceholder(doc, rc, ref, photos[placement.Index], placement.Box, "Fotografie indisponibila"); err != nil {
			errs = append(errs, *err)
		}
	}
	return errs
}

func contactSlide(doc *gofpdf.Fpdf, rc *RenderContext, deal model.Deal, logo []byte) []DrawError {
	doc.AddPage()
	drawHeaderBar(doc, rc, "Contact", "")

	var errs []DrawError
	agency := rc.Agency

	doc.SetTextColor(40, 40, 40)
	doc.SetFont(rc.Font, "B", 18)
	doc.SetXY(slideMargin, headerBarHeight+48)
	doc.CellFormat(0, 22, deal.Broker.FullName, "", 1, "L", false, 0, "")

	doc.SetFont(rc.Font, "", 14)
	for _, line := range []string{deal.Broker.Phone, deal.Broker.Email, "", agency.Name, agency.Address, agency.Phone, agency.Email} {
		doc.SetX(slideMargin)
		doc.CellFormat(0, 20, line, "", 1, "L", false, 0, "")
	}

	logoBox := Rect{X: 560, Y: headerBarHeight + 48, W: 340, H: 220}
	if len(logo) > 0 {
		if err := drawImageFit(doc, agency.LogoRef, logo, logoBox); err != nil {
			errs = append(errs, *err)
			drawAgencyMark(doc, rc, logoBox)
		}
	} else {
		drawAgencyMark(doc, rc, logoBox)
	}

	doc.SetTextColor(120, 120, 120)
	doc.SetFont(rc.Font, "", 9)
	doc.SetXY(slideMargin, pageHeight-56)
	disclaimer := fmt.Sprintf(
		"Aceasta prezentare este destinata exclusiv %s. Informatiile au caracter orientativ, nu reprezinta o oferta ferma si pot fi modificate fara notificare prealabila.",
		deal.CompanyName,
	)
	doc.MultiCell(pageWidth-2*slideMargin, 12, disclaimer, "", "L", false)

	return errs
}

// drawAgencyMark is the text fallback when no logo resolves.
func drawAgencyMark(doc *gofpdf.Fpdf, rc *RenderContext, box Rect) {
	doc.SetTextColor(rc.Accent.R, rc.Accent.G, rc.Accent.B)
	doc.SetFont(rc.Font, "B", 30)
	doc.SetXY(box.X, box.Y+box.H/2-18)
	doc.CellFormat(box.W, 36, rc.Agency.Name, "", 0, "C", false, 0, "")
}

func drawHeaderBar(doc *gofpdf.Fpdf, rc *RenderContext, title, subtitle string) {
	doc.SetFillColor(rc.Accent.R, rc.Accent.G, rc.Accent.B)
	doc.Rect(0, 0, pageWidth, headerBarHeight, "F")

	doc.SetTextColor(255, 255, 255)
	doc.SetFont(rc.Font, "B", 22)
	doc.SetXY(slideMargin, 12)
	doc.CellFormat(pageWidth-2*slideMargin, 24, title, "", 1, "L", false, 0, "")
	if subtitle != "" {
		doc.SetFont(rc.Font, "", 12)
		doc.SetX(slideMargin)
		doc.CellFormat(pageWidth-2*slideMargin, 14, subtitle, "", 0, "L", false, 0, "")
	}
}

func drawSpecTable(doc *gofpdf.Fpdf, rc *RenderContext, title string, rows []specRow, x, y, w float64) float64 {
	if len(rows) == 0 {
		return y
	}

	doc.SetTextColor(rc.Accent.R, rc.Accent.G, rc.Accent.B)
	doc.SetFont(rc.Font, "B", 14)
	doc.SetXY(x, y)
	doc.CellFormat(w, 18, title, "", 1, "L", false, 0, "")
	y += 22

	labelW := w * 0.55
	for i, row := range rows {
		if i%2 == 0 {
			doc.SetFillColor(245, 245, 245)
			doc.Rect(x, y, w, 17, "F")
		}
		doc.SetTextColor(70, 70, 70)
		doc.SetFont(rc.Font, "", 11)
		doc.SetXY(x+4, y+2)
		doc.CellFormat(labelW-4, 13, row.Label, "", 0, "L", false, 0, "")
		doc.SetTextColor(30, 30, 30)
		doc.SetFont(rc.Font, "B", 11)
		doc.CellFormat(w-labelW-4, 13, row.Value, "", 0, "R", false, 0, "")
		y += 17
	}
	return y
}

// commercialRows keeps only rows with a real value: a sale-only building
// shows no rent rows and the sale price row needs both a price and a
// transaction type that allows sale.
func commercialRows(b model.Building, agg specs.AggregatedSpecs) []specRow {
	var rows []specRow
	if b.Transaction.AllowsRent() {
		if agg.WarehousePrice > 0 {
			rows = append(rows, specRow{"Chirie depozit", fmt.Sprintf("%.2f EUR/mp/luna", agg.WarehousePrice)})
		}
		if agg.OfficePrice > 0 {
			rows = append(rows, specRow{"Chirie birouri/sanitar", fmt.Sprintf("%.2f EUR/mp/luna", agg.OfficePrice)})
		}
		if agg.ServiceCharge != nil && *agg.ServiceCharge > 0 {
			rows = append(rows, specRow{"Taxa de servicii", fmt.Sprintf("%.2f EUR/mp/luna", *agg.ServiceCharge)})
		}
	}
	if agg.SalePrice > 0 && b.Transaction.AllowsSale() {
		value := formatThousands(agg.SalePrice) + " EUR"
		if agg.VATIncluded {
			value += " (TVA inclus)"
		} else {
			value += " + TVA"
		}
		rows = append(rows, specRow{"Pret achizitie", value})
	}
	if agg.ContractLength != "" {
		rows = append(rows, specRow{"Durata contract", agg.ContractLength})
	}
	if agg.AvailableFrom != nil {
		rows = append(rows, specRow{"Disponibil de la", formatDate(*agg.AvailableFrom)})
	}
	if agg.Expansion != "" {
		rows = append(rows, specRow{"Posibilitati de extindere", agg.Expansion})
	}
	return rows
}

func technicalRows(agg specs.AggregatedSpecs) []specRow {
	var rows []specRow
	if agg.WarehouseAreaSqm > 0 {
		rows = append(rows, specRow{"Suprafata depozit", formatThousands(agg.WarehouseAreaSqm) + " mp"})
	}
	if agg.OfficeAreaSqm > 0 {
		rows = append(rows, specRow{"Suprafata birouri/sanitar", formatThousands(agg.OfficeAreaSqm) + " mp"})
	}
	if agg.ClearHeightM != nil && *agg.ClearHeightM > 0 {
		rows = append(rows, specRow{"Inaltime utila", fmt.Sprintf("%.1f m", *agg.ClearHeightM)})
	}
	if agg.Docks > 0 {
		rows = append(rows, specRow{"Rampe de incarcare", fmt.Sprintf("%d", agg.Docks)})
	}
	if agg.DriveIns > 0 {
		rows = append(rows, specRow{"Accese la nivelul solului", fmt.Sprintf("%d", agg.DriveIns)})
	}
	if agg.CrossDock {
		rows = append(rows, specRow{"Cross-dock", "Da"})
	}
	if agg.Sprinkler {
		rows = append(rows, specRow{"Sprinklere", "Da"})
	}
	if agg.Hydrants {
		rows = append(rows, specRow{"Hidranti", "Da"})
	}
	if agg.FireAuthorization {
		rows = append(rows, specRow{"Autorizatie securitate la incendiu", "Da"})
	}
	if agg.Heating != "" {
		rows = append(rows, specRow{"Incalzire", agg.Heating})
	}
	if agg.Grid != "" {
		rows = append(rows, specRow{"Structura si trama", agg.Grid})
	}
	if agg.FloorLoading != "" {
		rows = append(rows, specRow{"Sarcina pardoseala", agg.FloorLoading})
	}
	if agg.Lighting != "" {
		rows = append(rows, specRow{"Iluminat", agg.Lighting})
	}
	if agg.Temperature != "" {
		rows = append(rows, specRow{"Temperatura", agg.Temperature})
	}
	return rows
}
