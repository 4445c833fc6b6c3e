package assessment

import "time"

// DefaultDocument builds a fresh assessment document: the fixed dimension
// and checklist sets, all ratings at 1, all answers unanswered, all text
// fields empty. The assessment date is derived from now, so every caller
// gets an independent, unmutated value.
func DefaultDocument(now time.Time) Document {
	return Document{
		ProgramName:    "",
		AssessmentDate: now.Format("2006-01-02"),
		Dimensions: []Dimension{
			{
				ID:            "leadership",
				Name:          "Leadership & Governance",
				Stage:         StageReadiness,
				CurrentRating: 1,
				TargetRating:  3,
				Indicators: Indicators{
					Level1: "Role is informal or unclear",
					Level2: "Some responsibilities recognised",
					Level3: "Role formalised in governance; leads program-wide design and review",
				},
				Cluster: ClusterAccountability,
			},
			{
				ID:            "responsibility",
				Name:          "Assessment Responsibility",
				Stage:         StageReadiness,
				CurrentRating: 1,
				TargetRating:  3,
				Indicators: Indicators{
					Level1: "Managed at course level",
					Level2: "Emerging coordination across courses",
					Level3: "Shared responsibility across the program, supported by governance",
				},
				Cluster: ClusterAccountability,
			},
			{
				ID:            "literacy",
				Name:          "Assessment Literacy of Staff",
				Stage:         StageReadiness,
				CurrentRating: 1,
				TargetRating:  3,
				Indicators: Indicators{
					Level1: "Little assessment Professional Development in place",
					Level2: "Some Professional development in assessment offered; variable uptake",
					Level3: "Assessment literacy embedded in staff development and roles",
				},
				Cluster: ClusterAccountability,
			},
			{
				ID:            "outcomes",
				Name:          "Learning Outcomes",
				Stage:         StageDesign,
				CurrentRating: 1,
				TargetRating:  3,
				Indicators: Indicators{
					Level1: "Defined only at course level",
					Level2: "SLOs/PLOs exist but loosely integrated",
					Level3: "Learning outcomes mapped and embedded in assessment",
				},
				Cluster: ClusterOutcomes,
			},
			{
				ID:            "curriculum",
				Name:          "Curriculum Mapping",
				Stage:         StageDesign,
				CurrentRating: 1,
				TargetRating:  3,
				Indicators: Indicators{
					Level1: "No formal mapping",
					Level2: "Partial or outdated mapping",
					Level3: "Current map informs sequencing and assessment design",
				},
				Cluster: ClusterOutcomes,
			},
			{
				ID:            "mapping",
				Name:          "Assessment Mapping",
				Stage:         StageDesign,
				CurrentRating: 1,
				TargetRating:  3,
				Indicators: Indicators{
					Level1: "No vertical alignment",
					Level2: "Partial alignment across levels",
					Level3: "Scaffolded assessment across program lifecycle",
				},
				Cluster: ClusterOutcomes,
			},
			{
				ID:            "progression",
				Name:          "Progression Decisions",
				Stage:         StageDelivery,
				CurrentRating: 1,
				TargetRating:  3,
				Indicators: Indicators{
					Level1: "Based solely on grade accumulation",
					Level2: "Some discussion of readiness",
					Level3: "Program/specialisation-level assessment markers (e.g. capstones); progression based on demonstrated competence",
				},
				Cluster: ClusterVisibility,
			},
			{
				ID:            "mix",
				Name:          "Assessment Mix",
				Stage:         StageDelivery,
				CurrentRating: 1,
				TargetRating:  3,
				Indicators: Indicators{
					Level1: "Siloed, summative-only tasks",
					Level2: "Some coordination to reduce duplication",
					Level3: "Program-level mix supports learning outcomes",
				},
				Cluster: ClusterQuality,
			},
			{
				ID:            "rubric",
				Name:          "Rubric Use",
				Stage:         StageDelivery,
				CurrentRating: 1,
				TargetRating:  3,
				Indicators: Indicators{
					Level1: "Inconsistent or absent",
					Level2: "Some shared rubrics",
					Level3: "Consistent and aligned with outcomes",
				},
				Cluster: ClusterQuality,
			},
			{
				ID:            "ai",
				Name:          "Impact of AI on Assessment",
				Stage:         StageDelivery,
				CurrentRating: 1,
				TargetRating:  3,
				Indicators: Indicators{
					Level1: "Not considered",
					Level2: "Informal discussion only",
					Level3: "Design incorporates AI resilience where relevant",
				},
				Cluster: ClusterQuality,
			},
			{
				ID:            "governance",
				Name:          "Assessment Governance",
				Stage:         StageDelivery,
				CurrentRating: 1,
				TargetRating:  3,
				Indicators: Indicators{
					Level1: "No formal assessment guidelines; practices vary between courses",
					Level2: "Some assessment guidelines exist but are inconsistently applied; limited visibility",
					Level3: "Assessment guidelines are clearly defined and support consistent application across the program in line with university policy",
				},
				Cluster: ClusterAccountability,
			},
			{
				ID:            "feedback",
				Name:          "Feedback Practices",
				Stage:         StageMonitoring,
				CurrentRating: 1,
				TargetRating:  3,
				Indicators: Indicators{
					Level1: "Unstructured and inconsistent",
					Level2: "Partly coordinated feedback",
					Level3: "Structured feedback embedded in all assessment tasks; some use of feeding forward practices",
				},
				Cluster: ClusterQuality,
			},
			{
				ID:            "visibility",
				Name:          "Student Achievement Visibility",
				Stage:         StageMonitoring,
				CurrentRating: 1,
				TargetRating:  3,
				Indicators: Indicators{
					Level1: "Students are unaware of progress; no program-level visibility",
					Level2: "Some tracking across courses or tools used, but not integrated or visible to students",
					Level3: "Progress toward SLOs/PLOs is monitored using program-level dashboards; partial visibility to students",
				},
				Cluster: ClusterVisibility,
			},
			{
				ID:            "integrity",
				Name:          "Assessment Integrity & Security",
				Stage:         StageMonitoring,
				CurrentRating: 1,
				TargetRating:  3,
				Indicators: Indicators{
					Level1: "Practices vary across courses",
					Level2: "Shared approaches emerging",
					Level3: "Program-level strategies in place",
				},
				Cluster: ClusterQuality,
			},
		},
		ProgrammaticItems: []ProgrammaticItem{
			{
				ID:       "milestones",
				Question: "Are milestone progression points defined (e.g. prior to practicum, final project)?",
				Answer:   Unanswered,
			},
			{
				ID:       "competencies",
				Question: "Are competencies or capability domains mapped across the curriculum?",
				Answer:   Unanswered,
			},
			{
				ID:       "portfolio",
				Question: "Is a portfolio or dashboard used to collect and curate student evidence?",
				Answer:   Unanswered,
			},
			{
				ID:       "panel",
				Question: "Is there a progression panel or review committee in place?",
				Answer:   Unanswered,
			},
			{
				ID:       "reflection",
				Question: "Are students supported to reflect on feedback and demonstrate readiness?",
				Answer:   Unanswered,
			},
		},
		PlanningNotes: PlanningNotes{},
	}
}
