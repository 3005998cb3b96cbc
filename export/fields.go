package export

import (
	"strings"

	"github.com/mattiafranchi89-debug/Mattia-UW/models"
)

// fieldSpec binds a display label to a value accessor on one record section.
// The same registries drive the CSV layout, the PDF layout and the missing
// data scan, so every export names fields identically.
type fieldSpec[T any] struct {
	Label string
	Value func(*T) any
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

var anagraficaFields = []fieldSpec[models.Anagrafica]{
	{"Entity Name", func(a *models.Anagrafica) any { return deref(a.EntityName) }},
	{"Alternative Names", func(a *models.Anagrafica) any { return deref(a.AltNames) }},
	{"Type", func(a *models.Anagrafica) any { return deref(a.Type) }},
	{"Industry", func(a *models.Anagrafica) any { return deref(a.Industry) }},
	{"Country", func(a *models.Anagrafica) any { return deref(a.Country) }},
	{"City", func(a *models.Anagrafica) any { return deref(a.City) }},
	{"Address", func(a *models.Anagrafica) any { return deref(a.Address) }},
	{"Top Location", func(a *models.Anagrafica) any { return deref(a.TopLocation) }},
	{"VAT Number", func(a *models.Anagrafica) any { return deref(a.VAT) }},
	{"Tax Code", func(a *models.Anagrafica) any { return deref(a.TaxCode) }},
	{"Website", func(a *models.Anagrafica) any { return deref(a.Website) }},
	{"Broker Name", func(a *models.Anagrafica) any { return deref(a.BrokerName) }},
	{"Broker Company", func(a *models.Anagrafica) any { return deref(a.BrokerCompany) }},
	{"Period From", func(a *models.Anagrafica) any { return deref(a.PeriodFrom) }},
	{"Period To", func(a *models.Anagrafica) any { return deref(a.PeriodTo) }},
	{"Risk Types", func(a *models.Anagrafica) any { return deref(a.RiskTypes) }},
	{"Territorial Scope", func(a *models.Anagrafica) any { return deref(a.TerritorialScope) }},
	{"Loss History (5y)", func(a *models.Anagrafica) any { return deref(a.LossHistory5y) }},
	{"Annual Revenue", func(a *models.Anagrafica) any { return deref(a.AnnualRevenueAmount) }},
	{"Revenue Year", func(a *models.Anagrafica) any { return deref(a.AnnualRevenueYear) }},
	{"Payroll Amount", func(a *models.Anagrafica) any { return deref(a.PayrollAmount) }},
	{"Payroll Year", func(a *models.Anagrafica) any { return deref(a.PayrollYear) }},
	{"Headcount", func(a *models.Anagrafica) any { return deref(a.Headcount) }},
}

var propertyFields = []fieldSpec[models.PropertyDetails]{
	{"TIV PD Total (EUR)", func(p *models.PropertyDetails) any { return deref(p.TIVPdTotalEur) }},
	{"TIV BI Sum (EUR)", func(p *models.PropertyDetails) any { return deref(p.TIVBiSumInsEur) }},
	{"Rate per Mille", func(p *models.PropertyDetails) any { return deref(p.RatePerMille) }},
	{"CAT Included", func(p *models.PropertyDetails) any { return deref(p.CatIncluded) }},
	{"Buildings (EUR)", func(p *models.PropertyDetails) any { return deref(p.BuildingsEur) }},
	{"Machinery (EUR)", func(p *models.PropertyDetails) any { return deref(p.MachineryEur) }},
	{"Stock (EUR)", func(p *models.PropertyDetails) any { return deref(p.StockEur) }},
	{"Margin Contribution (EUR)", func(p *models.PropertyDetails) any { return deref(p.MarginContributionEur) }},
	{"Fire Protection Summary", func(p *models.PropertyDetails) any { return deref(p.FireProtectionSummary) }},
	{"Natural Hazard Notes", func(p *models.PropertyDetails) any { return deref(p.NatHazardNotes) }},
	{"BI Period (Months)", func(p *models.PropertyDetails) any { return deref(p.BIPeriodMonths) }},
	{"BI Notes", func(p *models.PropertyDetails) any { return deref(p.BINotes) }},
}

var generalLiabilityFields = []fieldSpec[models.GeneralLiabilityDetails]{
	{"RCT Limit (EUR)", func(g *models.GeneralLiabilityDetails) any { return deref(g.RctLimitEur) }},
	{"Aggregate Limit (EUR)", func(g *models.GeneralLiabilityDetails) any { return deref(g.AggregateLimitEur) }},
	{"Form RCT/RCO", func(g *models.GeneralLiabilityDetails) any { return deref(g.FormRctRco) }},
	{"USA/Canada Covered", func(g *models.GeneralLiabilityDetails) any { return deref(g.USACanCovered) }},
	{"Deductible RCT", func(g *models.GeneralLiabilityDetails) any { return deref(g.DedRct) }},
	{"Extensions", func(g *models.GeneralLiabilityDetails) any { return deref(g.Extensions) }},
	{"Exclusions", func(g *models.GeneralLiabilityDetails) any { return deref(g.Exclusions) }},
	{"Waivers", func(g *models.GeneralLiabilityDetails) any { return deref(g.Waivers) }},
	{"Retroactivity", func(g *models.GeneralLiabilityDetails) any { return deref(g.RetroUltrattivita) }},
}

var productLiabilityFields = []fieldSpec[models.ProductLiabilityDetails]{
	{"RCP Limit (EUR)", func(p *models.ProductLiabilityDetails) any { return deref(p.RcpLimitEur) }},
	{"Form RCP", func(p *models.ProductLiabilityDetails) any { return deref(p.FormRcp) }},
	{"Recall Sublimit (EUR)", func(p *models.ProductLiabilityDetails) any { return deref(p.RecallSublimitEur) }},
	{"Pollution Sublimit (EUR)", func(p *models.ProductLiabilityDetails) any { return deref(p.PollutionAccSublimitEur) }},
	{"3rd Party Interruption (EUR)", func(p *models.ProductLiabilityDetails) any { return deref(p.InterruptionThirdPartySublimitEur) }},
	{"Deductible RCP", func(p *models.ProductLiabilityDetails) any { return deref(p.DedRcp) }},
}

var sublimitColumns = []fieldSpec[models.Sublimit]{
	{"Risk Type", func(s *models.Sublimit) any { return deref(s.RiskType) }},
	{"Coverage", func(s *models.Sublimit) any { return deref(s.Coverage) }},
	{"Sublimit Type", func(s *models.Sublimit) any { return deref(s.SublimitType) }},
	{"Amount (EUR/%)", func(s *models.Sublimit) any { return deref(s.AmountEurPercent) }},
}

var buildingColumns = []fieldSpec[models.BuildingDetail]{
	{"Building ID", func(b *models.BuildingDetail) any { return deref(b.BuildingID) }},
	{"Building Name", func(b *models.BuildingDetail) any { return deref(b.BuildingName) }},
	{"Address", func(b *models.BuildingDetail) any { return deref(b.Address) }},
	{"Occupancy", func(b *models.BuildingDetail) any { return deref(b.Occupancy) }},
	{"Floor Area (sqm)", func(b *models.BuildingDetail) any { return deref(b.FloorAreaSm) }},
	{"Building RCV (EUR)", func(b *models.BuildingDetail) any { return deref(b.BuildingRcvEur) }},
	{"Contents RCV (EUR)", func(b *models.BuildingDetail) any { return deref(b.ContentsRcvEur) }},
	{"Total RCV (EUR)", func(b *models.BuildingDetail) any { return deref(b.TotalRcvEur) }},
	{"Year Built", func(b *models.BuildingDetail) any { return deref(b.YearBuilt) }},
	{"% Manual Fire Alarm", func(b *models.BuildingDetail) any { return deref(b.ManualFireAlarmPercent) }},
	{"% Automatic Fire Alarm", func(b *models.BuildingDetail) any { return deref(b.AutomaticFireAlarmPercent) }},
	{"% Sprinklers", func(b *models.BuildingDetail) any { return deref(b.SprinklersPercent) }},
	{"Roof Material", func(b *models.BuildingDetail) any { return deref(b.RoofMaterial) }},
	{"Building Notes", func(b *models.BuildingDetail) any { return deref(b.BuildingNotes) }},
}

func underscored(s string) string {
	return strings.Join(strings.Fields(s), "_")
}

func labels[T any](fields []fieldSpec[T]) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Label
	}
	return out
}
