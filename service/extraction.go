package service

import (
	"context"
	"encoding/json"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/mattiafranchi89-debug/Mattia-UW/models"
)

// SectionGenerator runs one schema-constrained model call and returns the
// raw JSON it produced.
type SectionGenerator interface {
	GenerateSection(ctx context.Context, files []models.EncodedFile, instruction string, schema map[string]any) (json.RawMessage, error)
}

// Extractor assembles a full extraction result by querying the model once per
// section, in parallel. A failed section falls back to its empty value so one
// bad call never sinks the whole document.
type Extractor struct {
	gen SectionGenerator
}

// NewExtractor builds an extractor on top of the given generator.
func NewExtractor(gen SectionGenerator) *Extractor {
	return &Extractor{gen: gen}
}

// extractSection performs one section call and decodes the envelope object
// the schema mandates. On any failure it logs and returns the default so the
// remaining sections stay usable.
func extractSection[T any](ctx context.Context, gen SectionGenerator, files []models.EncodedFile, instruction string, schema map[string]any, defaultValue T) T {
	raw, err := gen.GenerateSection(ctx, files, instruction, schema)
	if err != nil {
		log.Printf("Failed to extract section: %v", err)
		return defaultValue
	}
	var result T
	if err := json.Unmarshal(raw, &result); err != nil {
		log.Printf("Failed to decode section response: %v", err)
		return defaultValue
	}
	return result
}

type riskSummaryEnvelope struct {
	RiskSummary *models.RiskSummary `json:"riskSummary"`
}

type anagraficaEnvelope struct {
	Anagrafica *models.Anagrafica `json:"anagrafica"`
}

type propertyEnvelope struct {
	PropertyDetails *models.PropertyDetails `json:"propertyDetails"`
}

type generalLiabilityEnvelope struct {
	GeneralLiabilityDetails *models.GeneralLiabilityDetails `json:"generalLiabilityDetails"`
}

type productLiabilityEnvelope struct {
	ProductLiabilityDetails *models.ProductLiabilityDetails `json:"productLiabilityDetails"`
}

type sublimitsEnvelope struct {
	Sublimits []models.Sublimit `json:"sublimits"`
}

type buildingsEnvelope struct {
	BuildingDetails []models.BuildingDetail `json:"dettaglioEdifici"`
}

// Extract runs the seven section extractions concurrently and merges their
// results. Sections that failed or came back without their envelope key are
// replaced by empty values; the slices are never nil.
func (e *Extractor) Extract(ctx context.Context, files []models.EncodedFile) *models.ExtractedData {
	var (
		riskSummary      riskSummaryEnvelope
		anagrafica       anagraficaEnvelope
		property         propertyEnvelope
		generalLiability generalLiabilityEnvelope
		productLiability productLiabilityEnvelope
		sublimits        sublimitsEnvelope
		buildings        buildingsEnvelope
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		riskSummary = extractSection(gctx, e.gen, files, riskSummaryPrompt, riskSummarySchema, riskSummaryEnvelope{})
		return nil
	})
	g.Go(func() error {
		anagrafica = extractSection(gctx, e.gen, files, anagraficaPrompt, anagraficaSchema, anagraficaEnvelope{})
		return nil
	})
	g.Go(func() error {
		property = extractSection(gctx, e.gen, files, propertyPrompt, propertySchema, propertyEnvelope{})
		return nil
	})
	g.Go(func() error {
		generalLiability = extractSection(gctx, e.gen, files, generalLiabilityPrompt, generalLiabilitySchema, generalLiabilityEnvelope{})
		return nil
	})
	g.Go(func() error {
		productLiability = extractSection(gctx, e.gen, files, productLiabilityPrompt, productLiabilitySchema, productLiabilityEnvelope{})
		return nil
	})
	g.Go(func() error {
		sublimits = extractSection(gctx, e.gen, files, sublimitsPrompt, sublimitsSchema, sublimitsEnvelope{})
		return nil
	})
	g.Go(func() error {
		buildings = extractSection(gctx, e.gen, files, buildingsPrompt, buildingsSchema, buildingsEnvelope{})
		return nil
	})
	g.Wait()

	data := &models.ExtractedData{
		Sublimits:       sublimits.Sublimits,
		BuildingDetails: buildings.BuildingDetails,
	}
	if riskSummary.RiskSummary != nil {
		data.RiskSummary = *riskSummary.RiskSummary
	} else {
		data.RiskSummary = models.EmptyRiskSummary()
	}
	if anagrafica.Anagrafica != nil {
		data.Anagrafica = *anagrafica.Anagrafica
	} else {
		data.Anagrafica = models.EmptyAnagrafica()
	}
	if property.PropertyDetails != nil {
		data.PropertyDetails = *property.PropertyDetails
	} else {
		data.PropertyDetails = models.EmptyPropertyDetails()
	}
	if generalLiability.GeneralLiabilityDetails != nil {
		data.GeneralLiabilityDetails = *generalLiability.GeneralLiabilityDetails
	} else {
		data.GeneralLiabilityDetails = models.EmptyGeneralLiabilityDetails()
	}
	if productLiability.ProductLiabilityDetails != nil {
		data.ProductLiabilityDetails = *productLiability.ProductLiabilityDetails
	} else {
		data.ProductLiabilityDetails = models.EmptyProductLiabilityDetails()
	}
	data.Normalize()
	return data
}
