package excel

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/estate-offers/internal/model"
)

func TestGenerate_SummaryAndDetailSheets(t *testing.T) {
	deal := model.Deal{
		ID:          uuid.New(),
		Name:        "Oferta logistica",
		CompanyName: "Translog SRL",
		Broker:      model.Broker{FullName: "Ana Ionescu"},
	}
	buildings := []model.Building{
		{
			ID:      uuid.New(),
			Name:    "Park Vest 1",
			Address: "Sos. de Centura 1, Chitila",
			Units: []model.Unit{
				{
					Name:      "Hala A",
					Warehouse: &model.Space{AreaSqm: 5000, PricePerSqm: 4.25},
					Docks:     6,
				},
				{
					Name:      "Hala B",
					Warehouse: &model.Space{AreaSqm: 7500, PricePerSqm: 4.10},
					Office:    &model.Space{AreaSqm: 300, PricePerSqm: 8},
					Docks:     4,
				},
			},
		},
	}

	content, err := NewGenerator().Generate(deal, buildings)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	require.Contains(t, sheets, "Sumar")
	require.Contains(t, sheets, "Park Vest 1")

	name, err := file.GetCellValue("Sumar", "A7")
	require.NoError(t, err)
	assert.Equal(t, "Park Vest 1", name)

	area, err := file.GetCellValue("Sumar", "C7")
	require.NoError(t, err)
	assert.Equal(t, "12500", area)

	price, err := file.GetCellValue("Sumar", "D7")
	require.NoError(t, err)
	assert.Equal(t, "4.16", price)

	unitName, err := file.GetCellValue("Park Vest 1", "A7")
	require.NoError(t, err)
	assert.Equal(t, "Hala A", unitName)
}

func TestGenerate_DuplicateBuildingNames(t *testing.T) {
	deal := model.Deal{ID: uuid.New(), Name: "Oferta"}
	buildings := []model.Building{
		{ID: uuid.New(), Name: "Hala"},
		{ID: uuid.New(), Name: "Hala"},
	}

	content, err := NewGenerator().Generate(deal, buildings)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	assert.Contains(t, sheets, "Hala")
	assert.Contains(t, sheets, "Hala-2")
}
