package pdf

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/estate-offers/internal/assets"
	"github.com/nurpe/estate-offers/internal/maps"
	"github.com/nurpe/estate-offers/internal/model"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writePhoto(t *testing.T, root, name string, data []byte) string {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), data, 0o644))
	return name
}

// newTestGenerator wires a real loader against a temp storage root and an
// imagery client without a token, so map fetches resolve to absent.
func newTestGenerator(t *testing.T, root string) *Generator {
	t.Helper()
	loader := assets.NewLoader(root, time.Second, zerolog.Nop())
	imagery := maps.NewClient("", "http://unused.invalid", time.Second, zerolog.Nop())
	return NewGenerator(loader, imagery, zerolog.Nop())
}

func testDeal() model.Deal {
	return model.Deal{
		ID:          uuid.New(),
		Name:        "Depozit logistica Bucuresti Vest",
		CompanyName: "Translog SRL",
		Locations:   []string{"Bucuresti Vest", "Chitila"},
		Broker: model.Broker{
			FullName: "Ana Ionescu",
			Phone:    "+40 721 000 000",
			Email:    "ana@example.com",
		},
	}
}

func TestGenerate_ProducesPDF(t *testing.T) {
	root := t.TempDir()
	photo := writePhoto(t, root, "hall.png", pngBytes(t, 40, 30))

	input := OfferInput{
		Deal: testDeal(),
		Buildings: []model.Building{
			{
				ID:     uuid.New(),
				Name:   "Park Vest 1",
				Coords: &model.LatLng{Lat: 44.43, Lng: 26.10},
				Units: []model.Unit{
					{
						Warehouse: &model.Space{AreaSqm: 5000, PricePerSqm: 4.25},
						PhotoRefs: []string{photo},
					},
				},
			},
		},
	}

	out, err := newTestGenerator(t, root).Generate(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "output is not a PDF")
}

func TestGenerate_NoBuildingsFails(t *testing.T) {
	_, err := newTestGenerator(t, t.TempDir()).Generate(context.Background(), OfferInput{Deal: testDeal()})
	assert.Error(t, err)
}

func TestGenerate_SucceedsWithAllAssetsAbsent(t *testing.T) {
	input := OfferInput{
		Deal: testDeal(),
		Agency: model.Agency{
			Name:     "Agentia X",
			LogoRef:  "missing/logo.png",
			CoverRef: "https://127.0.0.1:1/cover.jpg",
		},
		Buildings: []model.Building{
			{
				ID:     uuid.New(),
				Name:   "Hala fara imagini",
				Coords: &model.LatLng{Lat: 45.0, Lng: 25.0},
				Units:  []model.Unit{{PhotoRefs: []string{"missing/photo.jpg"}}},
			},
		},
	}

	out, err := newTestGenerator(t, t.TempDir()).Generate(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestGenerate_OverridesDoNotMutateInput(t *testing.T) {
	root := t.TempDir()
	buildingID := uuid.New()
	price := 9.99
	input := OfferInput{
		Deal: testDeal(),
		Buildings: []model.Building{
			{
				ID: buildingID,
				Units: []model.Unit{
					{Warehouse: &model.Space{AreaSqm: 1000, PricePerSqm: 4.0}},
				},
			},
		},
		Overrides: []model.PriceOverride{{BuildingID: buildingID, RentPrice: &price}},
	}

	_, err := newTestGenerator(t, root).Generate(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, 4.0, input.Buildings[0].Units[0].Warehouse.PricePerSqm)
}

func TestApplyOverrides(t *testing.T) {
	buildingID := uuid.New()
	rent := 5.5
	charge := 1.1
	buildings := []model.Building{
		{
			ID: buildingID,
			Units: []model.Unit{
				{Warehouse: &model.Space{AreaSqm: 100, PricePerSqm: 4.0}},
				{}, // no warehouse space, rent override does not apply
			},
		},
		{
			ID:    uuid.New(),
			Units: []model.Unit{{Warehouse: &model.Space{AreaSqm: 100, PricePerSqm: 3.0}}},
		},
	}

	applyOverrides(buildings, []model.PriceOverride{
		{BuildingID: buildingID, RentPrice: &rent, ServiceCharge: &charge},
	})

	assert.Equal(t, 5.5, buildings[0].Units[0].Warehouse.PricePerSqm)
	require.NotNil(t, buildings[0].Units[0].ServiceCharge)
	assert.Equal(t, 1.1, *buildings[0].Units[0].ServiceCharge)
	assert.Nil(t, buildings[0].Units[1].Warehouse)
	require.NotNil(t, buildings[0].Units[1].ServiceCharge)
	assert.Equal(t, 3.0, buildings[1].Units[0].Warehouse.PricePerSqm)
	assert.Nil(t, buildings[1].Units[0].ServiceCharge)
}

func TestPlanSlides_NoCoordinatesSkipsOverview(t *testing.T) {
	buildings := []model.Building{
		{ID: uuid.New(), Name: "A"},
		{ID: uuid.New(), Name: "B"},
	}

	plan := planSlides(buildings, nil)

	require.Len(t, plan, 4)
	assert.Equal(t, slideCover, plan[0].kind)
	assert.Equal(t, slideSpecs, plan[1].kind)
	assert.Equal(t, slideSpecs, plan[2].kind)
	assert.Equal(t, slideContact, plan[3].kind)
}

func TestPlanSlides_PhotoPagination(t *testing.T) {
	refs := []string{"p1", "p2", "p3", "p4", "p5"}
	photos := make(map[string][]byte, len(refs))
	for _, ref := range refs {
		photos[ref] = []byte("x")
	}
	buildings := []model.Building{
		{
			ID:     uuid.New(),
			Coords: &model.LatLng{Lat: 1, Lng: 2},
			Units:  []model.Unit{{PhotoRefs: refs}},
		},
	}

	plan := planSlides(buildings, photos)

	// cover, overview, specs, two photo pages (4+1), contact
	require.Len(t, plan, 6)
	assert.Equal(t, slideOverview, plan[1].kind)
	assert.Equal(t, slidePhotos, plan[3].kind)
	assert.Equal(t, 1, plan[3].photoPage)
	assert.Equal(t, 2, plan[3].photoPages)
	assert.Equal(t, slidePhotos, plan[4].kind)
	assert.Equal(t, 2, plan[4].photoPage)
}

func TestPlanSlides_UnresolvedPhotosYieldNoPhotoSlides(t *testing.T) {
	buildings := []model.Building{
		{ID: uuid.New(), Units: []model.Unit{{PhotoRefs: []string{"gone.jpg"}}}},
	}

	plan := planSlides(buildings, map[string][]byte{"gone.jpg": nil})

	require.Len(t, plan, 3)
	assert.Equal(t, slideSpecs, plan[1].kind)
	assert.Equal(t, slideContact, plan[2].kind)
}

func TestDrawImageFit_CorruptBytes(t *testing.T) {
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	doc.AddPage()

	err := drawImageFit(doc, "bad-ref", []byte("not an image"), Rect{X: 0, Y: 0, W: 100, H: 100})

	require.NotNil(t, err)
	assert.Equal(t, "bad-ref", err.Ref)
	assert.Equal(t, "undecodable image", err.Reason)
	assert.False(t, doc.Err())
}

func TestParseHexColor(t *testing.T) {
	assert.Equal(t, RGB{R: 0x1A, G: 0x2B, B: 0x3C}, parseHexColor("#1A2B3C"))
	assert.Equal(t, RGB{R: 0x1A, G: 0x2B, B: 0x3C}, parseHexColor("1a2b3c"))
	assert.Equal(t, defaultAccent, parseHexColor(""))
	assert.Equal(t, defaultAccent, parseHexColor("#zzz"))
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "980.000", formatThousands(980000))
	assert.Equal(t, "1.500.000", formatThousands(1500000))
	assert.Equal(t, "950", formatThousands(950))
	assert.Equal(t, "0", formatThousands(0))
}
