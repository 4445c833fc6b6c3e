package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"
	"strings"

	"radar/api/internal/assessment"
)

//go:embed templates/sections.html
var templateFS embed.FS

var sectionTemplates = template.Must(template.New("sections").ParseFS(templateFS, "templates/sections.html"))

// RenderSection produces the standalone HTML for one section of the
// assessment, ready for rasterization.
func RenderSection(doc assessment.Document, section Section) (string, error) {
	var data any
	switch section.ID {
	case "overview":
		data = buildOverview(doc)
	case "dimensions":
		data = buildDimensions(doc)
	case "programmatic":
		data = buildProgrammatic(doc)
	case "planning":
		data = buildPlanning(doc)
	default:
		return "", fmt.Errorf("no template for section %q", section.ID)
	}

	var buf bytes.Buffer
	if err := sectionTemplates.ExecuteTemplate(&buf, section.ID, data); err != nil {
		return "", fmt.Errorf("render section %s: %w", section.ID, err)
	}
	return buf.String(), nil
}

// Radar chart geometry. Axes radiate from the center, one per dimension,
// with ratings 1..3 mapped onto concentric rings.
const (
	radarCenterX = 420.0
	radarCenterY = 330.0
	radarRadius  = 230.0
	labelRadius  = 255.0
)

type radarAxis struct {
	Label   string
	LabelX  float64
	LabelY  float64
	Anchor  string
	AxisX   float64
	AxisY   float64
	Cluster assessment.Cluster
}

type overviewData struct {
	ProgramName    string
	AssessmentDate string
	Axes           []radarAxis
	Rings          []string
	CurrentPoints  string
	TargetPoints   string
	Clusters       []clusterGroup
}

type clusterGroup struct {
	Name       assessment.Cluster
	Color      string
	Dimensions []assessment.Dimension
}

var clusterColors = map[assessment.Cluster]string{
	assessment.ClusterAccountability: "#4682B4",
	assessment.ClusterOutcomes:       "#3CB371",
	assessment.ClusterQuality:        "#9370DB",
	assessment.ClusterVisibility:     "#F08080",
}

func buildOverview(doc assessment.Document) overviewData {
	n := len(doc.Dimensions)
	data := overviewData{
		ProgramName:    doc.ProgramName,
		AssessmentDate: doc.AssessmentDate,
	}
	if n == 0 {
		return data
	}

	angle := func(i int) float64 {
		return -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
	}
	point := func(i int, r float64) (float64, float64) {
		a := angle(i)
		return radarCenterX + r*math.Cos(a), radarCenterY + r*math.Sin(a)
	}
	polygon := func(radius func(i int) float64) string {
		var b strings.Builder
		for i := 0; i < n; i++ {
			x, y := point(i, radius(i))
			fmt.Fprintf(&b, "%.1f,%.1f ", x, y)
		}
		return strings.TrimSpace(b.String())
	}

	for ring := 1; ring <= assessment.MaxRating; ring++ {
		r := radarRadius * float64(ring) / float64(assessment.MaxRating)
		data.Rings = append(data.Rings, polygon(func(int) float64 { return r }))
	}
	data.CurrentPoints = polygon(func(i int) float64 {
		return radarRadius * float64(doc.Dimensions[i].CurrentRating) / float64(assessment.MaxRating)
	})
	data.TargetPoints = polygon(func(i int) float64 {
		return radarRadius * float64(doc.Dimensions[i].TargetRating) / float64(assessment.MaxRating)
	})

	for i, dim := range doc.Dimensions {
		lx, ly := point(i, labelRadius)
		ax, ay := point(i, radarRadius)
		anchor := "middle"
		if lx > radarCenterX+10 {
			anchor = "start"
		} else if lx < radarCenterX-10 {
			anchor = "end"
		}
		data.Axes = append(data.Axes, radarAxis{
			Label:   dim.Name,
			LabelX:  lx,
			LabelY:  ly,
			Anchor:  anchor,
			AxisX:   ax,
			AxisY:   ay,
			Cluster: dim.Cluster,
		})
	}

	seen := make(map[assessment.Cluster]int)
	for _, dim := range doc.Dimensions {
		if dim.Cluster == "" {
			continue
		}
		idx, ok := seen[dim.Cluster]
		if !ok {
			idx = len(data.Clusters)
			seen[dim.Cluster] = idx
			data.Clusters = append(data.Clusters, clusterGroup{
				Name:  dim.Cluster,
				Color: clusterColors[dim.Cluster],
			})
		}
		data.Clusters[idx].Dimensions = append(data.Clusters[idx].Dimensions, dim)
	}

	return data
}

type stageGroup struct {
	Stage      assessment.Stage
	Dimensions []assessment.Dimension
}

type dimensionsData struct {
	ProgramName    string
	AssessmentDate string
	Stages         []stageGroup
}

func buildDimensions(doc assessment.Document) dimensionsData {
	data := dimensionsData{
		ProgramName:    doc.ProgramName,
		AssessmentDate: doc.AssessmentDate,
	}
	seen := make(map[assessment.Stage]int)
	for _, dim := range doc.Dimensions {
		idx, ok := seen[dim.Stage]
		if !ok {
			idx = len(data.Stages)
			seen[dim.Stage] = idx
			data.Stages = append(data.Stages, stageGroup{Stage: dim.Stage})
		}
		data.Stages[idx].Dimensions = append(data.Stages[idx].Dimensions, dim)
	}
	return data
}

type programmaticData struct {
	ProgramName string
	Items       []assessment.ProgrammaticItem
}

func buildProgrammatic(doc assessment.Document) programmaticData {
	return programmaticData{ProgramName: doc.ProgramName, Items: doc.ProgrammaticItems}
}

type noteField struct {
	Label string
	Text  string
}

type planningData struct {
	ProgramName string
	Fields      []noteField
}

func buildPlanning(doc assessment.Document) planningData {
	return planningData{
		ProgramName: doc.ProgramName,
		Fields: []noteField{
			{Label: "Current Strengths", Text: doc.PlanningNotes.Strengths},
			{Label: "Areas for Improvement", Text: doc.PlanningNotes.Improvements},
			{Label: "Champions & Allies", Text: doc.PlanningNotes.Champions},
			{Label: "Resources Needed", Text: doc.PlanningNotes.Resources},
		},
	}
}
