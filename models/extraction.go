package models

// ExtractedData is the consolidated underwriting record assembled from all
// uploaded documents. Field names on the wire mirror the section keys used in
// the extraction schemas.
type ExtractedData struct {
	RiskSummary             RiskSummary             `json:"riskSummary"`
	Anagrafica              Anagrafica              `json:"anagrafica"`
	PropertyDetails         PropertyDetails         `json:"propertyDetails"`
	GeneralLiabilityDetails GeneralLiabilityDetails `json:"generalLiabilityDetails"`
	ProductLiabilityDetails ProductLiabilityDetails `json:"productLiabilityDetails"`
	Sublimits               []Sublimit              `json:"sublimits"`
	BuildingDetails         []BuildingDetail        `json:"dettaglioEdifici"`
}

// RiskSummary is the narrative overview of the submission.
type RiskSummary struct {
	RiskSummary *string `json:"riskSummary"`
}

// Anagrafica holds the general information about the insured client.
type Anagrafica struct {
	EntityName          *string  `json:"entityName"`
	AltNames            *string  `json:"altNames"`
	Type                *string  `json:"type"`
	Industry            *string  `json:"industry"`
	Country             *string  `json:"country"`
	City                *string  `json:"city"`
	Address             *string  `json:"address"`
	TopLocation         *string  `json:"topLocation"`
	VAT                 *string  `json:"vat"`
	TaxCode             *string  `json:"taxCode"`
	Website             *string  `json:"website"`
	BrokerName          *string  `json:"brokerName"`
	BrokerCompany       *string  `json:"brokerCompany"`
	PeriodFrom          *string  `json:"periodFrom"`
	PeriodTo            *string  `json:"periodTo"`
	RiskTypes           *string  `json:"riskTypes"`
	TerritorialScope    *string  `json:"territorialScope"`
	LossHistory5y       *string  `json:"lossHistory5y"`
	AnnualRevenueAmount *float64 `json:"annualRevenueAmount"`
	AnnualRevenueYear   *int     `json:"annualRevenueYear"`
	PayrollAmount       *float64 `json:"payrollAmount"`
	PayrollYear         *int     `json:"payrollYear"`
	Headcount           *int     `json:"headcount"`
	DataStatus          *string  `json:"dataStatus"`
}

// PropertyDetails holds the property section of the record.
type PropertyDetails struct {
	EntityName            *string  `json:"entityName"`
	TopLocation           *string  `json:"topLocation"`
	TIVPdTotalEur         *float64 `json:"tivPdTotalEur"`
	TIVBiSumInsEur        *float64 `json:"tivBiSumInsEur"`
	RatePerMille          *float64 `json:"ratePerMille"`
	CatIncluded           *string  `json:"catIncluded"`
	BuildingsEur          *float64 `json:"buildingsEur"`
	MachineryEur          *float64 `json:"machineryEur"`
	StockEur              *float64 `json:"stockEur"`
	MarginContributionEur *float64 `json:"marginContributionEur"`
	FireProtectionSummary *string  `json:"fireProtectionSummary"`
	NatHazardNotes        *string  `json:"natHazardNotes"`
	BIPeriodMonths        *int     `json:"biPeriodMonths"`
	BINotes               *string  `json:"biNotes"`
	PropertyNotes         *string  `json:"propertyNotes"`
	DataStatus            *string  `json:"dataStatus"`
}

// GeneralLiabilityDetails holds the general liability section of the record.
type GeneralLiabilityDetails struct {
	RctLimitEur           *float64 `json:"rctLimitEur"`
	AggregateLimitEur     *float64 `json:"aggregateLimitEur"`
	FormRctRco            *string  `json:"formRctRco"`
	USACanCovered         *string  `json:"usaCanCovered"`
	DedRct                *float64 `json:"dedRct"`
	Extensions            *string  `json:"extensions"`
	Exclusions            *string  `json:"exclusions"`
	Waivers               *string  `json:"waivers"`
	RetroUltrattivita     *string  `json:"retroUltrattivita"`
	GeneralLiabilityNotes *string  `json:"generalLiabilityNotes"`
	DataStatus            *string  `json:"dataStatus"`
}

// ProductLiabilityDetails holds the product liability section of the record.
type ProductLiabilityDetails struct {
	RcpLimitEur                       *float64 `json:"rcpLimitEur"`
	FormRcp                           *string  `json:"formRcp"`
	RecallSublimitEur                 *float64 `json:"recallSublimitEur"`
	PollutionAccSublimitEur           *float64 `json:"pollutionAccSublimitEur"`
	InterruptionThirdPartySublimitEur *float64 `json:"interruptionThirdPartySublimitEur"`
	DedRcp                            *float64 `json:"dedRcp"`
	ProductLiabilityNotes             *string  `json:"productLiabilityNotes"`
	DataStatus                        *string  `json:"dataStatus"`
}

// Sublimit is one row of the sublimits table.
type Sublimit struct {
	RiskType         *string `json:"riskType"`
	Coverage         *string `json:"coverage"`
	SublimitType     *string `json:"sublimitType"`
	AmountEurPercent *string `json:"amountEurPercent"`
}

// BuildingDetail is one row of the building schedule.
type BuildingDetail struct {
	EntityName                *string  `json:"entityName"`
	BuildingID                *string  `json:"buildingId"`
	BuildingName              *string  `json:"buildingName"`
	Address                   *string  `json:"address"`
	Occupancy                 *string  `json:"occupancy"`
	FloorAreaSm               *float64 `json:"floorAreaSm"`
	BuildingRcvEur            *float64 `json:"buildingRcvEur"`
	ContentsRcvEur            *float64 `json:"contentsRcvEur"`
	TotalRcvEur               *float64 `json:"totalRcvEur"`
	YearBuilt                 *int     `json:"yearBuilt"`
	ManualFireAlarmPercent    *float64 `json:"manualFireAlarmPercent"`
	AutomaticFireAlarmPercent *float64 `json:"automaticFireAlarmPercent"`
	SprinklersPercent         *float64 `json:"sprinklersPercent"`
	RoofMaterial              *string  `json:"roofMaterial"`
	BuildingNotes             *string  `json:"buildingNotes"`
}

// EmptyRiskSummary returns the all-null risk summary section.
func EmptyRiskSummary() RiskSummary { return RiskSummary{} }

// EmptyAnagrafica returns the all-null general information section.
func EmptyAnagrafica() Anagrafica { return Anagrafica{} }

// EmptyPropertyDetails returns the all-null property section.
func EmptyPropertyDetails() PropertyDetails { return PropertyDetails{} }

// EmptyGeneralLiabilityDetails returns the all-null general liability section.
func EmptyGeneralLiabilityDetails() GeneralLiabilityDetails { return GeneralLiabilityDetails{} }

// EmptyProductLiabilityDetails returns the all-null product liability section.
func EmptyProductLiabilityDetails() ProductLiabilityDetails { return ProductLiabilityDetails{} }

// Normalize replaces nil slices with empty ones so the record always
// serializes its tables as arrays, never as null.
func (d *ExtractedData) Normalize() {
	if d.Sublimits == nil {
		d.Sublimits = []Sublimit{}
	}
	if d.BuildingDetails == nil {
		d.BuildingDetails = []BuildingDetail{}
	}
}

// EntityName returns the insured entity's legal name, or "" when the
// extraction did not find one.
func (d *ExtractedData) EntityName() string {
	if d.Anagrafica.EntityName == nil {
		return ""
	}
	return *d.Anagrafica.EntityName
}
