package service

// Prompts and response schemas for the section extraction calls. Each schema
// is wrapped in its top-level key so the model returns an envelope object
// that can be merged into the full extraction result.

const basePrompt = `You are an expert AI assistant for an insurance underwriting workbench.
Your task is to meticulously extract and consolidate all relevant information from the provided documents.
The documents could be a mix of PDFs, Word documents, or emails related to the same insurance policy or client.
If information for the same field is present in multiple documents, prioritize the most recent or comprehensive data.
If a specific piece of information is not found, you MUST use 'null' as the value for that field. Do not invent information.
For fields that are arrays (like 'dettaglioEdifici' or 'sublimits'), return an empty array [] if no items are found.
Return only the JSON object based on the provided schema.

Now, focus ONLY on extracting the data for the following section: `

const (
	riskSummaryPrompt      = basePrompt + `Risk Summary. This should be a concise overview highlighting the main insured party, primary risks, and significant limits.`
	anagraficaPrompt       = basePrompt + `General Information (Anagrafica). IMPORTANT: This section MUST exclusively contain information about the insured client. Do NOT populate it with details about the insurer.`
	propertyPrompt         = basePrompt + `Property Details. Use the 'propertyNotes' field to summarize any important information that does not fit into the other predefined structured fields.`
	generalLiabilityPrompt = basePrompt + `General Liability Details. Use the 'generalLiabilityNotes' field for relevant information not captured elsewhere.`
	productLiabilityPrompt = basePrompt + `Product Liability Details. Use the 'productLiabilityNotes' field for relevant information not captured elsewhere.`
	sublimitsPrompt        = basePrompt + `Sublimits.`
	buildingsPrompt        = basePrompt + `Building Details (Dettaglio Edifici). Use the 'buildingNotes' field for relevant details.`
)

func object(properties map[string]any) map[string]any {
	return map[string]any{"type": "OBJECT", "properties": properties}
}

func array(items map[string]any) map[string]any {
	return map[string]any{"type": "ARRAY", "items": items}
}

func field(kind, description string) map[string]any {
	s := map[string]any{"type": kind}
	if description != "" {
		s["description"] = description
	}
	return s
}

func str(description string) map[string]any     { return field("STRING", description) }
func number(description string) map[string]any  { return field("NUMBER", description) }
func integer(description string) map[string]any { return field("INTEGER", description) }

func envelope(key string, section map[string]any) map[string]any {
	return object(map[string]any{key: section})
}

var (
	riskSummarySchema = envelope("riskSummary", object(map[string]any{
		"riskSummary": str("A concise summary of the key risks, coverages, and insured entity from the document."),
	}))

	anagraficaSchema = envelope("anagrafica", object(map[string]any{
		"entityName":          str("Entity's legal name."),
		"altNames":            str("Alternative or former names."),
		"type":                str("Role (e.g., Policyholder, Insured, Owner)."),
		"industry":            str("Business Activity / Industry Sector."),
		"country":             str("Country."),
		"city":                str("City."),
		"address":             str("Full address."),
		"topLocation":         str("Main risk location."),
		"vat":                 str("VAT number."),
		"taxCode":             str("Tax Code."),
		"website":             str("Website."),
		"brokerName":          str("Broker name."),
		"brokerCompany":       str("Brokerage company."),
		"periodFrom":          str("Coverage start date (YYYY-MM-DD format)."),
		"periodTo":            str("Coverage end date (YYYY-MM-DD format)."),
		"riskTypes":           str("Risk types (Property, Liability, Cyber, etc.)."),
		"territorialScope":    str("Territorial scope."),
		"lossHistory5y":       str("Loss history for the last 5 years."),
		"annualRevenueAmount": number("Annual revenue amount."),
		"annualRevenueYear":   integer("Year of revenue."),
		"payrollAmount":       number("Payroll amount."),
		"payrollYear":         integer("Year of payroll."),
		"headcount":           integer("Number of employees."),
		"dataStatus":          str("Data quality status (ok, partial, ambiguous)."),
	}))

	propertySchema = envelope("propertyDetails", object(map[string]any{
		"entityName":            str(""),
		"topLocation":           str(""),
		"tivPdTotalEur":         number("Sum insured for Property Damage."),
		"tivBiSumInsEur":        number("Sum insured for Business Interruption."),
		"ratePerMille":          number("Gross rate requested."),
		"catIncluded":           str("Catastrophic risks inclusion."),
		"buildingsEur":          number("Buildings value in EUR."),
		"machineryEur":          number("Machinery value in EUR."),
		"stockEur":              number("Stock value in EUR."),
		"marginContributionEur": number("Contribution margin in EUR."),
		"fireProtectionSummary": str("Fire protection summary."),
		"natHazardNotes":        str("Natural hazard notes."),
		"biPeriodMonths":        integer("BI indemnity period in months."),
		"biNotes":               str("BI details."),
		"propertyNotes":         str("A summary of any other relevant property details not captured in other fields."),
		"dataStatus":            str("Data quality status."),
	}))

	generalLiabilitySchema = envelope("generalLiabilityDetails", object(map[string]any{
		"rctLimitEur":           number("General Liability Limit."),
		"aggregateLimitEur":     number("Annual aggregate limit."),
		"formRctRco":            str("Form (Loss Occurrence/Claims Made) for GL."),
		"usaCanCovered":         str("USA/Canada Coverage (Yes/No)."),
		"dedRct":                number("GL Deductible."),
		"extensions":            str("Coverage extensions."),
		"exclusions":            str("Main exclusions."),
		"waivers":               str("Waivers of recourse."),
		"retroUltrattivita":     str("Retroactivity / Extended Reporting."),
		"generalLiabilityNotes": str("A summary of any other relevant general liability details not captured in other fields."),
		"dataStatus":            str("Data quality status."),
	}))

	productLiabilitySchema = envelope("productLiabilityDetails", object(map[string]any{
		"rcpLimitEur":                       number("Product Liability Limit."),
		"formRcp":                           str("Form (Claims Made) for PL."),
		"recallSublimitEur":                 number("Product Recall Sublimit."),
		"pollutionAccSublimitEur":           number("Accidental Pollution Sublimit."),
		"interruptionThirdPartySublimitEur": number("Third-party interruption sublimit."),
		"dedRcp":                            number("PL Deductible."),
		"productLiabilityNotes":             str("A summary of any other relevant product liability details not captured in other fields."),
		"dataStatus":                        str("Data quality status."),
	}))

	sublimitsSchema = envelope("sublimits", array(object(map[string]any{
		"riskType":        str("Risk Type (GL/RCO/PL/Property)."),
		"coverage":        str("Coverage Type."),
		"sublimitType":    str("Sublimit Type (amount/percent)."),
		"amountEurPercent": str("Amount EUR/%."),
	})))

	buildingsSchema = envelope("dettaglioEdifici", array(object(map[string]any{
		"entityName":                str(""),
		"buildingId":                str("Building ID."),
		"buildingName":              str("Building Name."),
		"address":                   str("Building Address."),
		"occupancy":                 str("Occupancy (production, warehouse, offices)."),
		"floorAreaSm":               number("Floor Area in sqm."),
		"buildingRcvEur":            number("Building Replacement Cost Value."),
		"contentsRcvEur":            number("Contents Replacement Cost Value."),
		"totalRcvEur":               number("Total Replacement Cost Value."),
		"yearBuilt":                 integer("Year Built."),
		"manualFireAlarmPercent":    number("% presence of manual fire alarm."),
		"automaticFireAlarmPercent": number("% presence of automatic fire alarm."),
		"sprinklersPercent":         number("% presence of sprinklers."),
		"roofMaterial":              str("Roof Material."),
		"buildingNotes":             str("A summary of any other relevant building details not captured in other fields."),
	})))
)
