// Package catalog holds the static calculator and assessment definitions.
// Everything here is fixed business logic: field schemas, cross-field rules,
// scoring formulas, threshold tables and recommendation rules.
package catalog

import (
	"github.com/huangsam/secpulse/core"
	"github.com/huangsam/secpulse/schema"
)

// Calculator names.
const (
	AlertsCalc    = "alerts"
	IncidentsCalc = "incidents"
	CoverageCalc  = "coverage"
	CostCalc      = "cost"
)

// Shared metric keys. Every calculator publishes a clamped composite under
// the same key so registries and reports can treat them uniformly.
const (
	MetricComposite = "composite"
)

// Alerts calculator metric keys.
const (
	MetricDetectionAccuracy = "detectionAccuracy"
	MetricFalsePositiveRate = "falsePositiveRate"
	MetricTriageEfficiency  = "triageEfficiency"
	MetricEscalationRate    = "escalationRate"
)

// Incidents calculator metric keys.
const (
	MetricResolutionRate        = "resolutionRate"
	MetricDetectionEfficiency   = "detectionEfficiency"
	MetricResponseEfficiency    = "responseEfficiency"
	MetricContainmentEfficiency = "containmentEfficiency"
	MetricRecoveryEfficiency    = "recoveryEfficiency"
	MetricSeverityPressure      = "severityPressure"
)

// Coverage calculator metric keys.
const (
	MetricMonitoringCoverage = "monitoringCoverage"
	MetricEDRCoverage        = "edrCoverage"
	MetricPatchScore         = "patchScore"
	MetricMFAScore           = "mfaScore"
)

// Cost calculator metric keys.
const (
	MetricCostAvoided       = "costAvoided"
	MetricROI               = "roi"
	MetricBudgetUtilization = "budgetUtilization"
)

// Baselines for time-based efficiency scores. A latency field left blank
// defaults to its baseline, which scores 0 and labels N/A, so skipping the
// optional timing context never breaks the composite.
const (
	triageBaselineMinutes = 30
	detectBaselineHours   = 24
	respondBaselineHours  = 48
	containBaselineHours  = 72
	recoverBaselineHours  = 168
)

var alertsCalculator = &schema.CalculatorDefinition{
	Name:        AlertsCalc,
	Title:       "Alert Triage Efficiency",
	Description: "How accurately and quickly the team works through alert volume.",
	Steps: []schema.Step{
		{
			Title: "Alert Volume",
			Fields: []schema.FieldSchema{
				{Key: "totalAlerts", Label: "Total alerts received", Kind: schema.CountField},
				{Key: "truePositives", Label: "True positives", Kind: schema.CountField},
				{Key: "falsePositives", Label: "False positives", Kind: schema.CountField},
			},
			Rules: []schema.CrossFieldRule{
				{
					Fields:  []string{"totalAlerts", "truePositives", "falsePositives"},
					Message: "True positives plus false positives cannot exceed total alerts",
					Check: func(v map[string]float64) bool {
						return v["truePositives"]+v["falsePositives"] <= v["totalAlerts"]
					},
				},
			},
		},
		{
			Title: "Triage",
			Fields: []schema.FieldSchema{
				{Key: "escalated", Label: "Alerts escalated", Kind: schema.CountField},
				{Key: "avgTriageMinutes", Label: "Average triage time (minutes)", Kind: schema.CountField, Default: triageBaselineMinutes},
			},
			Rules: []schema.CrossFieldRule{
				{
					Fields:  []string{"escalated", "totalAlerts"},
					Message: "Alerts escalated cannot exceed total alerts",
					Check: func(v map[string]float64) bool {
						return v["escalated"] <= v["totalAlerts"]
					},
				},
			},
		},
	},
	Score: scoreAlerts,
}

var alertsRules = []core.RecommendRule{
	{
		When:     func(v map[string]float64) bool { return v[MetricFalsePositiveRate] > 40 },
		Severity: schema.HighSeverity,
		Message:  "False positive rate is above 40%. Tune noisy detection rules and suppress known-benign sources.",
	},
	{
		When:     func(v map[string]float64) bool { return v[MetricTriageEfficiency] > 0 && v[MetricTriageEfficiency] < 50 },
		Severity: schema.MediumSeverity,
		Message:  "Triage is slow relative to the 30-minute baseline. Add enrichment and playbooks for common alert types.",
	},
	{
		When:     func(v map[string]float64) bool { return v[MetricEscalationRate] > 30 },
		Severity: schema.LowSeverity,
		Message:  "Over 30% of alerts escalate. Push more resolution authority to tier-one analysts.",
	},
}

func scoreAlerts(in schema.Inputs) schema.Metrics {
	m := schema.NewMetrics()

	investigated := in["truePositives"] + in["falsePositives"]
	m.Values[MetricDetectionAccuracy] = core.Ratio(in["truePositives"], investigated)
	m.Values[MetricFalsePositiveRate] = core.Ratio(in["falsePositives"], investigated)
	m.Values[MetricTriageEfficiency] = core.TimeEfficiency(in["avgTriageMinutes"], triageBaselineMinutes)
	m.Values[MetricEscalationRate] = core.Ratio(in["escalated"], in["totalAlerts"])
	m.Values[MetricComposite] = core.WeightedMean(
		[]float64{
			m.Values[MetricDetectionAccuracy],
			m.Values[MetricTriageEfficiency],
			100 - m.Values[MetricEscalationRate],
		},
		[]float64{0.5, 0.3, 0.2},
	)

	m.Labels[MetricDetectionAccuracy] = schema.DefaultLadder.Label(m.Values[MetricDetectionAccuracy])
	m.Labels[MetricTriageEfficiency] = schema.TimeLadder.Label(m.Values[MetricTriageEfficiency])
	m.Labels[MetricComposite] = schema.DefaultLadder.Label(m.Values[MetricComposite])
	m.Recommendations = core.ApplyRules(alertsRules, m.Values)
	return m
}

var incidentsCalculator = &schema.CalculatorDefinition{
	Name:        IncidentsCalc,
	Title:       "Incident Response Efficiency",
	Description: "Resolution throughput and phase timing across the incident lifecycle.",
	Steps: []schema.Step{
		{
			Title: "Volume & Severity",
			Fields: []schema.FieldSchema{
				{Key: "created", Label: "Incidents created", Kind: schema.CountField},
				{Key: "resolved", Label: "Incidents resolved", Kind: schema.CountField},
				{Key: "critical", Label: "Critical incidents", Kind: schema.CountField},
				{Key: "high", Label: "High incidents", Kind: schema.CountField},
				{Key: "medium", Label: "Medium incidents", Kind: schema.CountField},
				{Key: "low", Label: "Low incidents", Kind: schema.CountField},
			},
			Rules: []schema.CrossFieldRule{
				{
					Fields:  []string{"resolved", "created"},
					Message: "Incidents resolved cannot exceed incidents created",
					Check:   func(v map[string]float64) bool { return v["resolved"] <= v["created"] },
				},
				{
					Fields:  []string{"critical", "high", "medium", "low", "created"},
					Message: "Severity counts cannot exceed incidents created",
					Check: func(v map[string]float64) bool {
						return v["critical"]+v["high"]+v["medium"]+v["low"] <= v["created"]
					},
				},
			},
		},
		{
			Title: "Response Times",
			Fields: []schema.FieldSchema{
				{Key: "detectHours", Label: "Mean time to detect (hours)", Kind: schema.CountField, Default: detectBaselineHours},
				{Key: "respondHours", Label: "Mean time to respond (hours)", Kind: schema.CountField, Default: respondBaselineHours},
				{Key: "containHours", Label: "Mean time to contain (hours)", Kind: schema.CountField, Default: containBaselineHours},
				{Key: "recoverHours", Label: "Mean time to recover (hours)", Kind: schema.CountField, Default: recoverBaselineHours},
			},
			Rules: []schema.CrossFieldRule{
				{
					Fields:  []string{"detectHours", "respondHours", "containHours", "recoverHours"},
					Message: "Phase times must be ordered: detect, respond, contain, recover",
					Check: func(v map[string]float64) bool {
						return v["detectHours"] <= v["respondHours"] &&
							v["respondHours"] <= v["containHours"] &&
							v["containHours"] <= v["recoverHours"]
					},
				},
			},
		},
	},
	Score: scoreIncidents,
}

var incidentsRules = []core.RecommendRule{
	{
		When:     func(v map[string]float64) bool { return v[MetricResolutionRate] > 0 && v[MetricResolutionRate] < 60 },
		Severity: schema.HighSeverity,
		Message:  "Less than 60% of incidents are being resolved. Review backlog aging and analyst capacity.",
	},
	{
		When:     func(v map[string]float64) bool { return v[MetricDetectionEfficiency] > 0 && v[MetricDetectionEfficiency] < 50 },
		Severity: schema.HighSeverity,
		Message:  "Detection lags the 24-hour baseline. Expand telemetry coverage and alerting on crown-jewel assets.",
	},
	{
		When:     func(v map[string]float64) bool { return v[MetricSeverityPressure] > 50 },
		Severity: schema.MediumSeverity,
		Message:  "Severity mix skews critical/high. Revisit severity criteria or invest in prevention upstream.",
	},
}

func scoreIncidents(in schema.Inputs) schema.Metrics {
	m := schema.NewMetrics()

	m.Values[MetricResolutionRate] = core.Ratio(in["resolved"], in["created"])
	m.Values[MetricDetectionEfficiency] = core.TimeEfficiency(in["detectHours"], detectBaselineHours)
	m.Values[MetricResponseEfficiency] = core.TimeEfficiency(in["respondHours"], respondBaselineHours)
	m.Values[MetricContainmentEfficiency] = core.TimeEfficiency(in["containHours"], containBaselineHours)
	m.Values[MetricRecoveryEfficiency] = core.TimeEfficiency(in["recoverHours"], recoverBaselineHours)

	// Severity pressure weights critical incidents four times a low one.
	weighted := in["critical"]*4 + in["high"]*3 + in["medium"]*2 + in["low"]
	m.Values[MetricSeverityPressure] = core.Ratio(weighted, in["created"]*4)

	phaseMean := (m.Values[MetricDetectionEfficiency] +
		m.Values[MetricResponseEfficiency] +
		m.Values[MetricContainmentEfficiency] +
		m.Values[MetricRecoveryEfficiency]) / 4
	m.Values[MetricComposite] = core.WeightedMean(
		[]float64{
			m.Values[MetricResolutionRate],
			phaseMean,
			100 - m.Values[MetricSeverityPressure],
		},
		[]float64{0.4, 0.4, 0.2},
	)

	m.Labels[MetricResolutionRate] = schema.DefaultLadder.Label(m.Values[MetricResolutionRate])
	m.Labels[MetricDetectionEfficiency] = schema.TimeLadder.Label(m.Values[MetricDetectionEfficiency])
	m.Labels[MetricResponseEfficiency] = schema.TimeLadder.Label(m.Values[MetricResponseEfficiency])
	m.Labels[MetricContainmentEfficiency] = schema.TimeLadder.Label(m.Values[MetricContainmentEfficiency])
	m.Labels[MetricRecoveryEfficiency] = schema.TimeLadder.Label(m.Values[MetricRecoveryEfficiency])
	m.Labels[MetricComposite] = schema.DefaultLadder.Label(m.Values[MetricComposite])
	m.Recommendations = core.ApplyRules(incidentsRules, m.Values)
	return m
}

var coverageCalculator = &schema.CalculatorDefinition{
	Name:        CoverageCalc,
	Title:       "Endpoint Coverage",
	Description: "Monitoring, EDR and hygiene coverage across the endpoint fleet.",
	Steps: []schema.Step{
		{
			Title: "Fleet",
			Fields: []schema.FieldSchema{
				{Key: "totalEndpoints", Label: "Total endpoints", Kind: schema.CountField},
				{Key: "monitoredEndpoints", Label: "Monitored endpoints", Kind: schema.CountField},
				{Key: "edrDeployed", Label: "Endpoints with EDR", Kind: schema.CountField},
			},
			Rules: []schema.CrossFieldRule{
				{
					Fields:  []string{"monitoredEndpoints", "totalEndpoints"},
					Message: "Monitored endpoints cannot exceed total endpoints",
					Check:   func(v map[string]float64) bool { return v["monitoredEndpoints"] <= v["totalEndpoints"] },
				},
				{
					Fields:  []string{"edrDeployed", "totalEndpoints"},
					Message: "Endpoints with EDR cannot exceed total endpoints",
					Check:   func(v map[string]float64) bool { return v["edrDeployed"] <= v["totalEndpoints"] },
				},
			},
		},
		{
			Title: "Hygiene",
			Fields: []schema.FieldSchema{
				{Key: "patchCompliance", Label: "Patch compliance (%)", Kind: schema.PercentageField},
				{Key: "mfaCoverage", Label: "MFA coverage (%)", Kind: schema.PercentageField},
			},
		},
	},
	Score: scoreCoverage,
}

var coverageRules = []core.RecommendRule{
	{
		When:     func(v map[string]float64) bool { return v[MetricEDRCoverage] > 0 && v[MetricEDRCoverage] < 80 },
		Severity: schema.HighSeverity,
		Message:  "EDR covers less than 80% of the fleet. Close the gap before expanding other tooling.",
	},
	{
		When:     func(v map[string]float64) bool { return v[MetricPatchScore] > 0 && v[MetricPatchScore] < 70 },
		Severity: schema.HighSeverity,
		Message:  "Patch compliance is below 70%. Automate patch rings and track exceptions explicitly.",
	},
	{
		When:     func(v map[string]float64) bool { return v[MetricMFAScore] > 0 && v[MetricMFAScore] < 90 },
		Severity: schema.MediumSeverity,
		Message:  "MFA coverage is below 90%. Enforce MFA on all remote and privileged access first.",
	},
}

func scoreCoverage(in schema.Inputs) schema.Metrics {
	m := schema.NewMetrics()

	m.Values[MetricMonitoringCoverage] = core.Ratio(in["monitoredEndpoints"], in["totalEndpoints"])
	m.Values[MetricEDRCoverage] = core.Ratio(in["edrDeployed"], in["totalEndpoints"])
	m.Values[MetricPatchScore] = in["patchCompliance"]
	m.Values[MetricMFAScore] = in["mfaCoverage"]
	m.Values[MetricComposite] = core.WeightedMean(
		[]float64{
			m.Values[MetricMonitoringCoverage],
			m.Values[MetricEDRCoverage],
			m.Values[MetricPatchScore],
			m.Values[MetricMFAScore],
		},
		[]float64{0.3, 0.3, 0.25, 0.15},
	)

	m.Labels[MetricMonitoringCoverage] = schema.CoverageLadder.Label(m.Values[MetricMonitoringCoverage])
	m.Labels[MetricEDRCoverage] = schema.CoverageLadder.Label(m.Values[MetricEDRCoverage])
	m.Labels[MetricPatchScore] = schema.CoverageLadder.Label(m.Values[MetricPatchScore])
	m.Labels[MetricMFAScore] = schema.CoverageLadder.Label(m.Values[MetricMFAScore])
	m.Labels[MetricComposite] = schema.CoverageLadder.Label(m.Values[MetricComposite])
	m.Recommendations = core.ApplyRules(coverageRules, m.Values)
	return m
}

var costCalculator = &schema.CalculatorDefinition{
	Name:        CostCalc,
	Title:       "Security Cost & ROI",
	Description: "What the security program costs versus the losses it prevents.",
	Steps: []schema.Step{
		{
			Title: "Spend",
			Fields: []schema.FieldSchema{
				{Key: "annualBudget", Label: "Annual security budget", Kind: schema.CurrencyField},
				{Key: "toolingCost", Label: "Tooling cost", Kind: schema.CurrencyField},
				{Key: "staffCost", Label: "Staffing cost", Kind: schema.CurrencyField},
			},
			Rules: []schema.CrossFieldRule{
				{
					Fields:  []string{"toolingCost", "staffCost", "annualBudget"},
					Message: "Tooling plus staffing cost cannot exceed the annual budget",
					Check: func(v map[string]float64) bool {
						return v["toolingCost"]+v["staffCost"] <= v["annualBudget"]
					},
				},
			},
		},
		{
			Title: "Impact",
			Fields: []schema.FieldSchema{
				{Key: "incidentsPrevented", Label: "Incidents prevented", Kind: schema.CountField},
				{Key: "avgIncidentCost", Label: "Average incident cost", Kind: schema.CurrencyField},
			},
		},
	},
	Score: scoreCost,
}

var costRules = []core.RecommendRule{
	{
		When:     func(v map[string]float64) bool { return v[MetricROI] < 0 && v[MetricCostAvoided] > 0 },
		Severity: schema.HighSeverity,
		Message:  "Security spend currently exceeds avoided losses. Quantify prevention wins or rebalance the portfolio.",
	},
	{
		When:     func(v map[string]float64) bool { return v[MetricBudgetUtilization] > 95 },
		Severity: schema.MediumSeverity,
		Message:  "Budget utilization is above 95%. Leave headroom for incident surge and emergency tooling.",
	},
}

func scoreCost(in schema.Inputs) schema.Metrics {
	m := schema.NewMetrics()

	avoided := in["incidentsPrevented"] * in["avgIncidentCost"]
	m.Values[MetricCostAvoided] = avoided
	// ROI is a monetary metric: never clamped, negative is meaningful.
	if in["annualBudget"] > 0 {
		m.Values[MetricROI] = (avoided - in["annualBudget"]) / in["annualBudget"] * 100
	} else {
		m.Values[MetricROI] = 0
	}
	m.Values[MetricBudgetUtilization] = core.Ratio(in["toolingCost"]+in["staffCost"], in["annualBudget"])
	m.Values[MetricComposite] = core.WeightedMean(
		[]float64{
			m.Values[MetricBudgetUtilization],
			core.ClampPercent(m.Values[MetricROI]),
		},
		[]float64{0.5, 0.5},
	)

	m.Labels[MetricBudgetUtilization] = schema.CostLadder.Label(m.Values[MetricBudgetUtilization])
	m.Labels[MetricComposite] = schema.CostLadder.Label(m.Values[MetricComposite])
	m.Recommendations = core.ApplyRules(costRules, m.Values)
	return m
}
