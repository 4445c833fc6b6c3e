// Package assessment holds the assessment document model, the default
// dataset, and the document store.
package assessment

import (
	"bytes"
	"fmt"
)

// Stage is the lifecycle phase a dimension belongs to.
type Stage string

const (
	StageReadiness  Stage = "Readiness"
	StageDesign     Stage = "Design"
	StageDelivery   Stage = "Delivery"
	StageMonitoring Stage = "Monitoring"
)

// Cluster is the thematic grouping used for chart presentation.
type Cluster string

const (
	ClusterAccountability Cluster = "Accountability and Coordination"
	ClusterOutcomes       Cluster = "Learning Outcomes and Curriculum Mapping"
	ClusterQuality        Cluster = "Assessment Quality and Security"
	ClusterVisibility     Cluster = "Visibility of Student Achievement"
)

// Answer is the tri-state response to a programmatic checklist item.
// It serializes as true/false/null to stay compatible with exported files.
type Answer int

const (
	Unanswered Answer = iota
	Yes
	No
)

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a {
	case Yes:
		return []byte("true"), nil
	case No:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true":
		*a = Yes
	case "false":
		*a = No
	case "null":
		*a = Unanswered
	default:
		return fmt.Errorf("invalid answer value %q", string(data))
	}
	return nil
}

func (a Answer) String() string {
	switch a {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unanswered"
	}
}

// Indicators describe what each maturity level looks like for a dimension.
type Indicators struct {
	Level1 string `json:"level1"`
	Level2 string `json:"level2"`
	Level3 string `json:"level3"`
}

// Dimension is one scored maturity axis. The id is stable and never
// regenerated; only CurrentRating and Evidence change after creation.
type Dimension struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Stage         Stage      `json:"stage"`
	CurrentRating int        `json:"currentRating"`
	TargetRating  int        `json:"targetRating"`
	Indicators    Indicators `json:"indicators"`
	Evidence      string     `json:"evidence"`
	Definition    string     `json:"definition,omitempty"`
	Cluster       Cluster    `json:"cluster,omitempty"`
}

// ProgrammaticItem is one yes/no/unset checklist question.
type ProgrammaticItem struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   Answer `json:"answer"`
	Comments string `json:"comments"`
}

// PlanningNotes holds the four free-text planning fields.
type PlanningNotes struct {
	Strengths    string `json:"strengths"`
	Improvements string `json:"improvements"`
	Champions    string `json:"champions"`
	Resources    string `json:"resources"`
}

// Valid planning note field keys as they appear on the wire.
const (
	NoteStrengths    = "strengths"
	NoteImprovements = "improvements"
	NoteChampions    = "champions"
	NoteResources    = "resources"
)

// Document is the complete assessment record. It is treated as an
// immutable value: mutations go through the Store, which replaces the
// whole document rather than editing nested structures in place.
type Document struct {
	ProgramName       string             `json:"programName"`
	AssessmentDate    string             `json:"assessmentDate"`
	Dimensions        []Dimension        `json:"dimensions"`
	ProgrammaticItems []ProgrammaticItem `json:"programmaticItems"`
	PlanningNotes     PlanningNotes      `json:"planningNotes"`
}

// Clone returns a deep copy. Slices are the only reference-typed fields.
func (d Document) Clone() Document {
	out := d
	out.Dimensions = make([]Dimension, len(d.Dimensions))
	copy(out.Dimensions, d.Dimensions)
	out.ProgrammaticItems = make([]ProgrammaticItem, len(d.ProgrammaticItems))
	copy(out.ProgrammaticItems, d.ProgrammaticItems)
	return out
}

// Dimension returns the dimension with the given id, if present.
func (d Document) Dimension(id string) (Dimension, bool) {
	for _, dim := range d.Dimensions {
		if dim.ID == id {
			return dim, true
		}
	}
	return Dimension{}, false
}

// Item returns the programmatic item with the given id, if present.
func (d Document) Item(id string) (ProgrammaticItem, bool) {
	for _, item := range d.ProgrammaticItems {
		if item.ID == id {
			return item, true
		}
	}
	return ProgrammaticItem{}, false
}
