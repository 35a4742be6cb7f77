package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/estate-offers/internal/model"
)

// OfferRepository reads the generation inputs (deal, buildings with units
// and photos, agency branding) from the CRM schema. It never writes to
// those tables.
type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) GetDeal(ctx context.Context, id uuid.UUID) (*model.Deal, error) {
	var row struct {
		ID            uuid.UUID
		Name          string
		CompanyName   string
		ContactPerson string
		Locations     string
		BrokerID      uuid.UUID
		BrokerName    string
		BrokerPhone   string
		BrokerEmail   string
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.name,
			COALESCE(c.name, '') AS company_name,
			COALESCE(p.full_name, '') AS contact_person,
			COALESCE(d.locations, '') AS locations,
			u.id AS broker_id,
			COALESCE(u.full_name, '') AS broker_name,
			COALESCE(u.phone, '') AS broker_phone,
			COALESCE(u.email, '') AS broker_email
		FROM deals d
		LEFT JOIN companies c ON c.id = d.company_id
		LEFT JOIN persons p ON p.id = d.person_id
		LEFT JOIN users u ON u.id = d.user_id
		WHERE d.id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	return &model.Deal{
		ID:            row.ID,
		Name:          row.Name,
		CompanyName:   row.CompanyName,
		ContactPerson: row.ContactPerson,
		Locations:     splitLocations(row.Locations),
		Broker: model.Broker{
			ID:       row.BrokerID,
			FullName: row.BrokerName,
			Phone:    row.BrokerPhone,
			Email:    row.BrokerEmail,
		},
	}, nil
}

// ListBuildings returns the deal's buildings with their units in stored
// order. An explicit id subset restricts the result; otherwise the
// buildings previously offered on the deal are used.
func (r *OfferRepository) ListBuildings(ctx context.Context, dealID uuid.UUID, ids []uuid.UUID) ([]model.Building, error) {
	var rows []buildingRow
	var err error
	if len(ids) > 0 {
		err = r.db.WithContext(ctx).Raw(`
			SELECT
				b.id, b.name, COALESCE(b.address, '') AS address,
				b.latitude, b.longitude,
				COALESCE(b.transaction_type, 'RENT') AS transaction_type,
				COALESCE(b.location, '') AS location,
				COALESCE(b.county, '') AS county,
				COALESCE(b.expansion, '') AS expansion
			FROM buildings b
			WHERE b.id = ANY(?)
			ORDER BY b.created_at ASC
		`, ids).Scan(&rows).Error
	} else {
		err = r.db.WithContext(ctx).Raw(`
			SELECT
				b.id, b.name, COALESCE(b.address, '') AS address,
				b.latitude, b.longitude,
				COALESCE(b.transaction_type, 'RENT') AS transaction_type,
				COALESCE(b.location, '') AS location,
				COALESCE(b.county, '') AS county,
				COALESCE(b.expansion, '') AS expansion
			FROM buildings b
			JOIN deal_buildings db ON db.building_id = b.id
			WHERE db.deal_id = ?
			ORDER BY db.created_at ASC
		`, dealID).Scan(&rows).Error
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []model.Building{}, nil
	}

	buildings := make([]model.Building, 0, len(rows))
	index := make(map[uuid.UUID]int, len(rows))
	buildingIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		buildings = append(buildings, row.toModel())
		index[row.ID] = len(buildings) - 1
		buildingIDs = append(buildingIDs, row.ID)
	}

	units, err := r.listUnits(ctx, buildingIDs)
	if err != nil {
		return nil, err
	}
	for _, unit := range units {
		if pos, ok := index[unit.BuildingID]; ok {
			buildings[pos].Units = append(buildings[pos].Units, unit)
		}
	}
	return buildings, nil
}

func (r *OfferRepository) listUnits(ctx context.Context, buildingIDs []uuid.UUID) ([]model.Unit, error) {
	var rows []unitRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			u.id, u.building_id, COALESCE(u.name, '') AS name,
			u.warehouse_area, u.warehouse_price,
			u.office_area, u.office_price,
			u.sanitary_area, u.sanitary_price,
			u.other_area, u.other_price,
			u.clear_height,
			COALESCE(u.docks, 0) AS docks,
			COALESCE(u.drive_ins, 0) AS drive_ins,
			COALESCE(u.cross_dock, FALSE) AS cross_dock,
			COALESCE(u.sprinkler, FALSE) AS sprinkler,
			COALESCE(u.hydrants, FALSE) AS hydrants,
			COALESCE(u.fire_authorization, FALSE) AS fire_authorization,
			COALESCE(u.heating, '') AS heating,
			COALESCE(u.structure, '') AS structure,
			COALESCE(u.grid_format, '') AS grid_format,
			COALESCE(u.floor_loading, '') AS floor_loading,
			COALESCE(u.lighting, '') AS lighting,
			COALESCE(u.temperature, '') AS temperature,
			u.available_from,
			COALESCE(u.contract_length, '') AS contract_length,
			COALESCE(u.expansion, '') AS expansion,
			u.service_charge,
			u.sale_price,
			COALESCE(u.vat_included, FALSE) AS vat_included
		FROM units u
		WHERE u.building_id = ANY(?)
		ORDER BY u.building_id, u.created_at ASC
	`, buildingIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var photoRows []struct {
		UnitID uuid.UUID
		Ref    string
	}
	err = r.db.WithContext(ctx).Raw(`
		SELECT p.unit_id, p.ref
		FROM unit_photos p
		JOIN units u ON u.id = p.unit_id
		WHERE u.building_id = ANY(?)
		ORDER BY p.unit_id, p.position ASC
	`, buildingIDs).Scan(&photoRows).Error
	if err != nil {
		return nil, err
	}

	photosByUnit := make(map[uuid.UUID][]string)
	for _, row := range photoRows {
		photosByUnit[row.UnitID] = append(photosByUnit[row.UnitID], row.Ref)
	}

	units := make([]model.Unit, 0, len(rows))
	for _, row := range rows {
		unit := row.toModel()
		unit.PhotoRefs = photosByUnit[row.ID]
		units = append(units, unit)
	}
	return units, nil
}

// GetAgency returns the branding record, or gorm.ErrRecordNotFound when no
// agency is configured (callers fall back to model.DefaultAgency).
func (r *OfferRepository) GetAgency(ctx context.Context) (*model.Agency, error) {
	var row struct {
		ID          uuid.UUID
		Name        string
		LogoRef     string
		CoverRef    string
		Address     string
		Phone       string
		Email       string
		AccentColor string
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id, name,
			COALESCE(logo_ref, '') AS logo_ref,
			COALESCE(cover_ref, '') AS cover_ref,
			COALESCE(address, '') AS address,
			COALESCE(phone, '') AS phone,
			COALESCE(email, '') AS email,
			COALESCE(accent_color, '') AS accent_color
		FROM agencies
		ORDER BY created_at ASC
		LIMIT 1
	`).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.Agency{
		ID:          row.ID,
		Name:        row.Name,
		LogoRef:     row.LogoRef,
		CoverRef:    row.CoverRef,
		Address:     row.Address,
		Phone:       row.Phone,
		Email:       row.Email,
		AccentColor: row.AccentColor,
	}, nil
}

func (r *OfferRepository) SaveShareLink(ctx context.Context, link model.ShareLink) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO offer_share_links (token, deal_id, file_name, content)
		VALUES (?, ?, ?, ?)
	`, link.Token, link.DealID, link.FileName, link.Content).Error
}

func (r *OfferRepository) GetShareLink(ctx context.Context, token string) (*model.ShareLink, error) {
	var row struct {
		Token     string
		DealID    uuid.UUID
		FileName  string
		Content   []byte
		CreatedAt time.Time
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT token, deal_id, file_name, content, created_at
		FROM offer_share_links
		WHERE token = ?
		LIMIT 1
	`, token).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.Token == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.ShareLink{
		Token:     row.Token,
		DealID:    row.DealID,
		FileName:  row.FileName,
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
	}, nil
}

type buildingRow struct {
	ID              uuid.UUID
	Name            string
	Address         string
	Latitude        *float64
	Longitude       *float64
	TransactionType string
	Location        string
	County          string
	Expansion       string
}

func (row buildingRow) toModel() model.Building {
	b := model.Building{
		ID:          row.ID,
		Name:        row.Name,
		Address:     row.Address,
		Transaction: model.TransactionType(row.TransactionType),
		Location:    row.Location,
		County:      row.County,
		Expansion:   row.Expansion,
	}
	if row.Latitude != nil && row.Longitude != nil {
		b.Coords = &model.LatLng{Lat: *row.Latitude, Lng: *row.Longitude}
	}
	return b
}

type unitRow struct {
	ID                uuid.UUID
	BuildingID        uuid.UUID
	Name              string
	WarehouseArea     *float64
	WarehousePrice    *float64
	OfficeArea        *float64
	OfficePrice       *float64
	SanitaryArea      *float64
	SanitaryPrice     *float64
	OtherArea         *float64
	OtherPrice        *float64
	ClearHeight       *float64
	Docks             int
	DriveIns          int
	CrossDock         bool
	Sprinkler         bool
	Hydrants          bool
	FireAuthorization bool
	Heating           string
	Structure         string
	GridFormat        string
	FloorLoading      string
	Lighting          string
	Temperature       string
	AvailableFrom     *time.Time
	ContractLength    string
	Expansion         string
	ServiceCharge     *float64
	SalePrice         *float64
	VATIncluded       bool
}

func (row unitRow) toModel() model.Unit {
	return model.Unit{
		ID:                row.ID,
		BuildingID:        row.BuildingID,
		Name:              row.Name,
		Warehouse:         toSpace(row.WarehouseArea, row.WarehousePrice),
		Office:            toSpace(row.OfficeArea, row.OfficePrice),
		Sanitary:          toSpace(row.SanitaryArea, row.SanitaryPrice),
		Other:             toSpace(row.OtherArea, row.OtherPrice),
		ClearHeightM:      row.ClearHeight,
		Docks:             row.Docks,
		DriveIns:          row.DriveIns,
		CrossDock:         row.CrossDock,
		Sprinkler:         row.Sprinkler,
		Hydrants:          row.Hydrants,
		FireAuthorization: row.FireAuthorization,
		Heating:           row.Heating,
		Structure:         row.Structure,
		GridFormat:        row.GridFormat,
		FloorLoading:      row.FloorLoading,
		Lighting:          row.Lighting,
		Temperature:       row.Temperature,
		AvailableFrom:     row.AvailableFrom,
		ContractLength:    row.ContractLength,
		Expansion:         row.Expansion,
		ServiceCharge:     row.ServiceCharge,
		SalePrice:         row.SalePrice,
		VATIncluded:       row.VATIncluded,
	}
}

func toSpace(area, price *float64) *model.Space {
	if area == nil {
		return nil
	}
	s := model.Space{AreaSqm: *area}
	if price != nil {
		s.PricePerSqm = *price
	}
	return &s
}

func splitLocations(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
