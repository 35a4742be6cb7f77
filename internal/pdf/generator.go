package pdf

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"github.com/nurpe/estate-offers/internal/assets"
	"github.com/nurpe/estate-offers/internal/maps"
	"github.com/nurpe/estate-offers/internal/model"
	"github.com/nurpe/estate-offers/internal/specs"
)

const (
	overviewMapWidth  = 640
	overviewMapHeight = 420
	satelliteWidth    = 640
	satelliteHeight   = 560
)

// OfferInput is everything one generation call consumes. Buildings and
// overrides are read-only for the caller; the generator works on a deep
// copy.
type OfferInput struct {
	Deal      model.Deal
	Buildings []model.Building
	Agency    model.Agency
	Overrides []model.PriceOverride
}

// Generator assembles the offer document: parallel asset prefetch, spec
// aggregation, then strictly sequential slide rendering into one PDF
// buffer.
type Generator struct {
	fontName string
	assets   *assets.Loader
	imagery  *maps.Client
	log      zerolog.Logger
}

func NewGenerator(loader *assets.Loader, imagery *maps.Client, log zerolog.Logger) *Generator {
	return &Generator{
		fontName: "Helvetica",
		assets:   loader,
		imagery:  imagery,
		log:      log,
	}
}

// prefetched collects every asset before rendering starts, so fetch
// completion order cannot influence page order.
type prefetched struct {
	cover      []byte
	logo       []byte
	overview   []byte
	satellites map[uuid.UUID][]byte
	photos     map[string][]byte
}

func (g *Generator) Generate(ctx context.Context, input OfferInput) ([]byte, error) {
	if len(input.Buildings) == 0 {
		return nil, fmt.Errorf("offer document: no buildings")
	}

	agency := input.Agency
	if agency.Name == "" {
		agency = model.DefaultAgency()
	}

	buildings := model.CloneBuildings(input.Buildings)
	applyOverrides(buildings, input.Overrides)

	pf := g.prefetch(ctx, agency, buildings)

	aggregated := make([]specs.AggregatedSpecs, len(buildings))
	for i := range buildings {
		aggregated[i] = specs.Aggregate(buildings[i])
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	rc := &RenderContext{
		Font:   g.fontName,
		Accent: parseHexColor(agency.AccentColor),
		Agency: agency,
		Now:    time.Now(),
	}

	var drawErrs []DrawError
	for _, slide := range planSlides(buildings, pf.photos) {
		var errs []DrawError
		switch slide.kind {
		case slideCover:
			errs = coverSlide(doc, rc, input.Deal, pf.cover)
		case slideOverview:
			errs = overviewSlide(doc, rc, buildings, pf.overview)
		case slideSpecs:
			b := buildings[slide.building]
			errs = specsSlide(doc, rc, b, aggregated[slide.building], pf.satellites[b.ID])
		case slidePhotos:
			b := buildings[slide.building]
			batch := photoBatches(buildingPhotos(b, pf.photos))[slide.photoPage-1]
			errs = photoSlide(doc, rc, b, batch, slide.photoPage, slide.photoPages)
		case slideContact:
			errs = contactSlide(doc, rc, input.Deal, pf.logo)
		}
		drawErrs = append(drawErrs, errs...)
	}

	for _, derr := range drawErrs {
		g.log.Warn().Str("ref", derr.Ref).Str("reason", derr.Reason).Msg("image replaced with placeholder")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("offer document: %w", err)
	}
	return buf.Bytes(), nil
}

// prefetch fans out every asset fetch (branding, overview map, satellites,
// unit photos) and fans back in before returning. Failed fetches resolve
// to nil without affecting their siblings.
func (g *Generator) prefetch(ctx context.Context, agency model.Agency, buildings []model.Building) prefetched {
	pf := prefetched{
		satellites: make(map[uuid.UUID][]byte),
		photos:     make(map[string][]byte),
	}
	cache := assets.NewCache()

	var wg sync.WaitGroup
	var mu sync.Mutex

	if agency.CoverRef != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pf.cover = g.assets.Load(ctx, cache, agency.CoverRef)
		}()
	}
	if agency.LogoRef != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pf.logo = g.assets.Load(ctx, cache, agency.LogoRef)
		}()
	}

	if pins := overviewPins(buildings); len(pins) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pf.overview = g.imagery.OverviewMap(ctx, pins, overviewMapWidth, overviewMapHeight)
		}()
	}

	for _, b := range buildings {
		if b.Coords == nil {
			continue
		}
		wg.Add(1)
		go func(id uuid.UUID, coords model.LatLng) {
			defer wg.Done()
			data := g.imagery.Satellite(ctx, coords, satelliteWidth, satelliteHeight)
			mu.Lock()
			pf.satellites[id] = data
			mu.Unlock()
		}(b.ID, *b.Coords)
	}

	for _, ref := range uniquePhotoRefs(buildings) {
		wg.Add(1)
		go func(ref string) {
			defer wg.Done()
			data := g.assets.Load(ctx, cache, ref)
			mu.Lock()
			pf.photos[ref] = data
			mu.Unlock()
		}(ref)
	}

	wg.Wait()
	return pf
}

type slideKind int

const (
	slideCover slideKind = iota
	slideOverview
	slideSpecs
	slidePhotos
	slideContact
)

type slideRef struct {
	kind       slideKind
	building   int
	photoPage  int
	photoPages int
}

// planSlides fixes the page sequence before any rendering: cover, overview
// map when at least one building has coordinates, specs plus photo pages
// per building in input order, contact. Photo pages exist only for photos
// that actually resolved.
func planSlides(buildings []model.Building, photos map[string][]byte) []slideRef {
	plan := []slideRef{{kind: slideCover}}

	for _, b := range buildings {
		if b.Coords != nil {
			plan = append(plan, slideRef{kind: slideOverview})
			break
		}
	}

	for i, b := range buildings {
		plan = append(plan, slideRef{kind: slideSpecs, building: i})
		pages := len(photoBatches(buildingPhotos(b, photos)))
		for page := 1; page <= pages; page++ {
			plan = append(plan, slideRef{kind: slidePhotos, building: i, photoPage: page, photoPages: pages})
		}
	}

	plan = append(plan, slideRef{kind: slideContact})
	return plan
}

// buildingPhotos returns the resolved photo buffers of all units in input
// order, skipping absent ones.
func buildingPhotos(b model.Building, photos map[string][]byte) [][]byte {
	var out [][]byte
	for _, u := range b.Units {
		for _, ref := range u.PhotoRefs {
			if data := photos[ref]; len(data) > 0 {
				out = append(out, data)
			}
		}
	}
	return out
}

func uniquePhotoRefs(buildings []model.Building) []string {
	seen := make(map[string]struct{})
	var refs []string
	for _, b := range buildings {
		for _, u := range b.Units {
			for _, ref := range u.PhotoRefs {
				if ref == "" {
					continue
				}
				if _, ok := seen[ref]; ok {
					continue
				}
				seen[ref] = struct{}{}
				refs = append(refs, ref)
			}
		}
	}
	return refs
}

func overviewPins(buildings []model.Building) []maps.Pin {
	var pins []maps.Pin
	for _, b := range buildings {
		if b.Coords == nil {
			continue
		}
		pins = append(pins, maps.Pin{Number: len(pins) + 1, Coords: *b.Coords})
	}
	return pins
}

// applyOverrides rewrites warehouse rent prices and service charges on the
// cloned buildings only; stored records are never touched.
func applyOverrides(buildings []model.Building, overrides []model.PriceOverride) {
	for _, override := range overrides {
		for i := range buildings {
			if buildings[i].ID != override.BuildingID {
				continue
			}
			for j := range buildings[i].Units {
				unit := &buildings[i].Units[j]
				if override.RentPrice != nil && unit.Warehouse != nil {
					unit.Warehouse.PricePerSqm = *override.RentPrice
				}
				if override.ServiceCharge != nil {
					charge := *override.ServiceCharge
					unit.ServiceCharge = &charge
				}
			}
		}
	}
}
