package specs

import (
	"strings"
	"time"

	"github.com/nurpe/estate-offers/internal/model"
)

// AggregatedSpecs is the per-building summary rendered on a specs slide.
// It is recomputed for every generation call and never persisted.
type AggregatedSpecs struct {
	WarehouseAreaSqm  float64
	WarehousePrice    float64
	OfficeAreaSqm     float64
	OfficePrice       float64
	ClearHeightM      *float64
	Docks             int
	DriveIns          int
	CrossDock         bool
	Sprinkler         bool
	Hydrants          bool
	FireAuthorization bool
	Heating           string
	Structure         string
	Grid              string
	FloorLoading      string
	Lighting          string
	Temperature       string
	AvailableFrom     *time.Time
	ContractLength    string
	Expansion         string
	ServiceCharge     *float64
	SalePrice         float64
	VATIncluded       bool
}

// Aggregate reduces a building's units into one AggregatedSpecs. Rent
// prices are area-weighted averages per bucket; office and sanitary space
// share one bucket. Amenity flags are true when any unit has them.
// Qualitative fields come from the first unit in input order.
func Aggregate(b model.Building) AggregatedSpecs {
	var agg AggregatedSpecs

	var warehouseWeighted, officeWeighted float64
	for _, u := range b.Units {
		if u.Warehouse != nil {
			agg.WarehouseAreaSqm += u.Warehouse.AreaSqm
			warehouseWeighted += u.Warehouse.AreaSqm * u.Warehouse.PricePerSqm
		}
		if u.Office != nil {
			agg.OfficeAreaSqm += u.Office.AreaSqm
			officeWeighted += u.Office.AreaSqm * u.Office.PricePerSqm
		}
		if u.Sanitary != nil {
			agg.OfficeAreaSqm += u.Sanitary.AreaSqm
			officeWeighted += u.Sanitary.AreaSqm * u.Sanitary.PricePerSqm
		}

		agg.Docks += u.Docks
		agg.DriveIns += u.DriveIns
		agg.CrossDock = agg.CrossDock || u.CrossDock
		agg.Sprinkler = agg.Sprinkler || u.Sprinkler
		agg.Hydrants = agg.Hydrants || u.Hydrants
		agg.FireAuthorization = agg.FireAuthorization || u.FireAuthorization

		if u.SalePrice != nil && *u.SalePrice > 0 {
			agg.SalePrice += *u.SalePrice
			agg.VATIncluded = agg.VATIncluded || u.VATIncluded
		}
	}

	if agg.WarehouseAreaSqm > 0 {
		agg.WarehousePrice = warehouseWeighted / agg.WarehouseAreaSqm
	}
	if agg.OfficeAreaSqm > 0 {
		agg.OfficePrice = officeWeighted / agg.OfficeAreaSqm
	}

	if len(b.Units) > 0 {
		first := b.Units[0]
		agg.ClearHeightM = first.ClearHeightM
		agg.Heating = first.Heating
		agg.Structure = first.Structure
		agg.Grid = gridLabel(first.Structure, first.GridFormat)
		agg.FloorLoading = first.FloorLoading
		agg.Lighting = first.Lighting
		agg.Temperature = first.Temperature
		agg.AvailableFrom = first.AvailableFrom
		agg.ContractLength = first.ContractLength
		agg.ServiceCharge = first.ServiceCharge
		agg.Expansion = first.Expansion
	}
	if agg.Expansion == "" {
		agg.Expansion = b.Expansion
	}

	return agg
}

func gridLabel(structure, format string) string {
	structure = strings.TrimSpace(structure)
	format = strings.TrimSpace(format)
	switch {
	case structure == "":
		return format
	case format == "":
		return structure
	default:
		return structure + " " + format
	}
}
