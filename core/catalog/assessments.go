package catalog

import "github.com/huangsam/secpulse/schema"

// Assessment titles.
const (
	PostureAssessment   = "Security Posture"
	ReadinessAssessment = "Incident Readiness"
	CloudAssessment     = "Cloud Security"
)

// Shared answer option values.
const (
	AnswerYes     = "yes"
	AnswerPartial = "partial"
	AnswerNo      = "no"
)

// sharedOptions is the three-point scale every assessment uses.
var sharedOptions = []schema.AnswerOption{
	{Value: AnswerYes, Label: "Yes", Score: 100, Color: "green"},
	{Value: AnswerPartial, Label: "Partially", Score: 50, Color: "yellow"},
	{Value: AnswerNo, Label: "No", Score: 0, Color: "red"},
}

var postureAssessment = &schema.AssessmentDefinition{
	Title:       PostureAssessment,
	Description: "Baseline questionnaire across the four pillars of a security program.",
	Options:     sharedOptions,
	Categories: []schema.Category{
		{
			Name:  "Access Control",
			Icon:  "lock",
			Color: "blue",
			Questions: []string{
				"Is multi-factor authentication enforced for all user accounts?",
				"Are privileged accounts managed through a PAM solution?",
				"Is access reviewed and recertified at least quarterly?",
				"Are joiner/mover/leaver processes automated?",
			},
		},
		{
			Name:  "Network Security",
			Icon:  "shield",
			Color: "purple",
			Questions: []string{
				"Is the network segmented with enforced east-west controls?",
				"Are firewall rules reviewed on a defined cadence?",
				"Is remote access restricted to managed devices over VPN or ZTNA?",
				"Is DNS filtering in place for all egress traffic?",
			},
		},
		{
			Name:  "Data Protection",
			Icon:  "database",
			Color: "teal",
			Questions: []string{
				"Is sensitive data classified and inventoried?",
				"Is data encrypted at rest and in transit everywhere it lives?",
				"Are backups tested with regular restore drills?",
				"Is data loss prevention deployed on email and endpoints?",
			},
		},
		{
			Name:  "Monitoring & Response",
			Icon:  "activity",
			Color: "orange",
			Questions: []string{
				"Is security telemetry centralized in a SIEM or data lake?",
				"Are detections mapped to a threat framework such as ATT&CK?",
				"Is there 24x7 alert coverage, in-house or via MSSP?",
				"Are response playbooks documented and exercised?",
			},
		},
	},
}

var readinessAssessment = &schema.AssessmentDefinition{
	Title:       ReadinessAssessment,
	Description: "How prepared the organization is for its next security incident.",
	Options:     sharedOptions,
	Categories: []schema.Category{
		{
			Name:  "Planning",
			Icon:  "clipboard",
			Color: "blue",
			Questions: []string{
				"Is there a written incident response plan approved by leadership?",
				"Are roles and an on-call rotation defined for incident command?",
				"Are tabletop exercises run at least twice a year?",
				"Are legal and insurance contacts pre-arranged for breach response?",
			},
		},
		{
			Name:  "Detection",
			Icon:  "radar",
			Color: "red",
			Questions: []string{
				"Can the team detect credential misuse within hours?",
				"Is endpoint telemetry retained long enough for investigations?",
				"Are critical assets covered by high-fidelity detections?",
				"Is there an intake path for employee-reported incidents?",
			},
		},
		{
			Name:  "Communication",
			Icon:  "megaphone",
			Color: "green",
			Questions: []string{
				"Are out-of-band communication channels ready for incidents?",
				"Are notification templates prepared for customers and regulators?",
				"Is there a defined escalation path to executives?",
				"Are post-incident reviews held and actions tracked?",
			},
		},
	},
}

var cloudAssessment = &schema.AssessmentDefinition{
	Title:       CloudAssessment,
	Description: "Posture of cloud identity, configuration and visibility controls.",
	Options:     sharedOptions,
	Categories: []schema.Category{
		{
			Name:  "Identity",
			Icon:  "key",
			Color: "blue",
			Questions: []string{
				"Are cloud roles scoped to least privilege?",
				"Are long-lived access keys eliminated or rotated automatically?",
				"Is federated SSO the only path into cloud consoles?",
				"Are service accounts inventoried with owners assigned?",
			},
		},
		{
			Name:  "Configuration",
			Icon:  "settings",
			Color: "purple",
			Questions: []string{
				"Is infrastructure defined as code with review gates?",
				"Are storage buckets and databases blocked from public exposure?",
				"Is a CSPM tool scanning for misconfigurations continuously?",
				"Are guardrail policies enforced at the organization level?",
			},
		},
		{
			Name:  "Visibility",
			Icon:  "eye",
			Color: "orange",
			Questions: []string{
				"Are cloud audit logs enabled and shipped to central storage?",
				"Are anomalous API calls alerted on in near real time?",
				"Is there an up-to-date inventory of all cloud accounts?",
				"Are third-party integrations reviewed for scope creep?",
			},
		},
	},
}
