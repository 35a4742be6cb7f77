package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/estate-offers/internal/model"
	"github.com/nurpe/estate-offers/internal/pdf"
	"github.com/nurpe/estate-offers/internal/repository"
)

type SummaryGenerator interface {
	Generate(deal model.Deal, buildings []model.Building) ([]byte, error)
}

type OfferService struct {
	repo    *repository.OfferRepository
	pdfGen  *pdf.Generator
	summary SummaryGenerator
}

type GenerateOfferInput struct {
	DealID      uuid.UUID
	BuildingIDs []uuid.UUID
	Overrides   []model.PriceOverride
}

type GenerateOfferResult struct {
	FileName string
	Content  []byte
}

type ShareLinkResult struct {
	Token    string
	FileName string
}

func NewOfferService(repo *repository.OfferRepository, pdfGen *pdf.Generator, summary SummaryGenerator) *OfferService {
	return &OfferService{
		repo:    repo,
		pdfGen:  pdfGen,
		summary: summary,
	}
}

func (s *OfferService) GenerateOffer(ctx context.Context, input GenerateOfferInput) (*GenerateOfferResult, error) {
	deal, buildings, agency, err := s.loadContext(ctx, input)
	if err != nil {
		return nil, err
	}

	content, err := s.pdfGen.Generate(ctx, pdf.OfferInput{
		Deal:      *deal,
		Buildings: buildings,
		Agency:    agency,
		Overrides: input.Overrides,
	})
	if err != nil {
		return nil, err
	}

	return &GenerateOfferResult{
		FileName: buildFileName(*deal, "pdf"),
		Content:  content,
	}, nil
}

func (s *OfferService) GenerateSummary(ctx context.Context, input GenerateOfferInput) (*GenerateOfferResult, error) {
	deal, buildings, _, err := s.loadContext(ctx, input)
	if err != nil {
		return nil, err
	}

	content, err := s.summary.Generate(*deal, buildings)
	if err != nil {
		return nil, err
	}

	return &GenerateOfferResult{
		FileName: buildFileName(*deal, "xlsx"),
		Content:  content,
	}, nil
}

// CreateShareLink generates the offer document and stores it under a fresh
// token so it can be served without re-rendering.
func (s *OfferService) CreateShareLink(ctx context.Context, input GenerateOfferInput) (*ShareLinkResult, error) {
	result, err := s.GenerateOffer(ctx, input)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	link := model.ShareLink{
		Token:    token,
		DealID:   input.DealID,
		FileName: result.FileName,
		Content:  result.Content,
	}
	if err := s.repo.SaveShareLink(ctx, link); err != nil {
		return nil, err
	}
	return &ShareLinkResult{Token: token, FileName: result.FileName}, nil
}

func (s *OfferService) GetSharedOffer(ctx context.Context, token string) (*GenerateOfferResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}
	link, err := s.repo.GetShareLink(ctx, token)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &GenerateOfferResult{FileName: link.FileName, Content: link.Content}, nil
}

// loadContext resolves and validates everything before rendering: a
// missing deal is ErrNotFound, an unknown building id or an empty building
// set is ErrInvalidInput. Nothing is rendered past a failed validation.
func (s *OfferService) loadContext(ctx context.Context, input GenerateOfferInput) (*model.Deal, []model.Building, model.Agency, error) {
	if input.DealID == uuid.Nil {
		return nil, nil, model.Agency{}, fmt.Errorf("%w: deal_id is required", ErrInvalidInput)
	}

	deal, err := s.repo.GetDeal(ctx, input.DealID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, model.Agency{}, ErrNotFound
		}
		return nil, nil, model.Agency{}, err
	}

	buildings, err := s.repo.ListBuildings(ctx, input.DealID, input.BuildingIDs)
	if err != nil {
		return nil, nil, model.Agency{}, err
	}
	if len(input.BuildingIDs) > 0 {
		found := make(map[uuid.UUID]struct{}, len(buildings))
		for _, b := range buildings {
			found[b.ID] = struct{}{}
		}
		for _, id := range input.BuildingIDs {
			if _, ok := found[id]; !ok {
				return nil, nil, model.Agency{}, fmt.Errorf("%w: unknown building %s", ErrInvalidInput, id)
			}
		}
	}
	if len(buildings) == 0 {
		return nil, nil, model.Agency{}, fmt.Errorf("%w: no buildings for offer", ErrInvalidInput)
	}

	agency := model.DefaultAgency()
	if stored, err := s.repo.GetAgency(ctx); err == nil {
		agency = *stored
	} else if err != gorm.ErrRecordNotFound {
		return nil, nil, model.Agency{}, err
	}

	return deal, buildings, agency, nil
}

func buildFileName(deal model.Deal, extension string) string {
	name := sanitizeFileName(deal.Name)
	if name == "" {
		name = deal.ID.String()
	}
	return fmt.Sprintf("oferta-%s-%s.%s", name, time.Now().Format("20060102"), extension)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
