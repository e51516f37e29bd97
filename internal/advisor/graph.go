package advisor

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed knowledge.yaml
var knowledgeYAML []byte

// Edge — направленное ребро графа знаний.
type Edge struct {
	From     string  `yaml:"from"`
	To       string  `yaml:"to"`
	Relation string  `yaml:"rel"`
	Weight   float64 `yaml:"weight"`
}

type graphFile struct {
	Nodes map[string][]string `yaml:"nodes"`
	Edges []Edge              `yaml:"edges"`
}

// Graph — граф знаний домена: типизированные узлы и направленные рёбра.
// Порядок рёбер сохраняется как в описании, поэтому результаты запросов
// детерминированы.
type Graph struct {
	nodeType  map[string]string
	nodes     map[string]bool
	adj       map[string][]Edge
	edgeCount int
}

// LoadGraph разбирает встроенное YAML-описание графа.
func LoadGraph() (*Graph, error) {
	return parseGraph(knowledgeYAML)
}

func parseGraph(raw []byte) (*Graph, error) {
	var f graphFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse knowledge graph: %w", err)
	}
	if len(f.Edges) == 0 {
		return nil, fmt.Errorf("knowledge graph has no edges")
	}

	g := &Graph{
		nodeType: make(map[string]string),
		nodes:    make(map[string]bool),
		adj:      make(map[string][]Edge),
	}
	for typ, names := range f.Nodes {
		for _, n := range names {
			g.nodeType[n] = typ
			g.nodes[n] = true
		}
	}
	for _, e := range f.Edges {
		if e.From == "" || e.To == "" || e.Relation == "" {
			return nil, fmt.Errorf("incomplete edge %q -> %q (%q)", e.From, e.To, e.Relation)
		}
		if e.Weight == 0 {
			e.Weight = 1.0
		}
		// конечные точки рёбер становятся узлами, даже если не объявлены в nodes
		g.nodes[e.From] = true
		g.nodes[e.To] = true
		g.adj[e.From] = append(g.adj[e.From], e)
		g.edgeCount++
	}
	return g, nil
}

// HasNode сообщает, есть ли узел в графе, включая неявно созданные рёбрами.
func (g *Graph) HasNode(name string) bool { return g.nodes[name] }

// NodeType возвращает тип явно объявленного узла.
func (g *Graph) NodeType(name string) (string, bool) {
	t, ok := g.nodeType[name]
	return t, ok
}

// EdgesFrom возвращает исходящие рёбра узла в порядке объявления.
func (g *Graph) EdgesFrom(name string) []Edge { return g.adj[name] }

// NodeCount — количество узлов графа.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount — количество рёбер графа.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// Recommendations — подборка рекомендаций, полученная обходом графа.
type Recommendations struct {
	Medications        []string `json:"medications"`
	HygieneProducts    []string `json:"hygiene_products"`
	LifestyleTips      []string `json:"lifestyle_tips"`
	PhaseSpecific      []string `json:"phase_specific"`
	RiskAlerts         []string `json:"risk_alerts"`
	SymptomsIdentified []string `json:"symptoms_identified"`
}

// Query подбирает рекомендации по симптомам, текущей фазе и
// интенсивности выделений. Фаза и интенсивность ожидаются в нижнем
// регистре. Если по симптомам не нашлось ни одного препарата, а симптомы
// есть, подставляются препараты по умолчанию; средства гигиены по
// умолчанию подставляются всегда, когда ничего не подобрано.
func (g *Graph) Query(symptoms []string, phase, flow string) Recommendations {
	rec := Recommendations{
		Medications:        []string{},
		HygieneProducts:    []string{},
		LifestyleTips:      []string{},
		PhaseSpecific:      []string{},
		RiskAlerts:         []string{},
		SymptomsIdentified: symptoms,
	}

	for _, s := range symptoms {
		for _, e := range g.EdgesFrom(s) {
			if e.Relation == "indicated_for" && !contains(rec.Medications, e.To) {
				rec.Medications = append(rec.Medications, e.To)
			}
		}
		for _, e := range g.EdgesFrom(s) {
			switch e.Relation {
			case "relieved_by", "managed_by", "improved_by":
				tip := fmt.Sprintf("For %s: %s with %s", s, e.Relation, e.To)
				if !contains(rec.LifestyleTips, tip) {
					rec.LifestyleTips = append(rec.LifestyleTips, tip)
				}
			}
		}
	}

	if phase != "" && g.HasNode(phase) {
		for _, e := range g.EdgesFrom(phase) {
			if e.Relation == "phase_characteristic" || e.Relation == "common_symptom" {
				insight := fmt.Sprintf("During %s phase: %s", phase, e.To)
				if !contains(rec.PhaseSpecific, insight) {
					rec.PhaseSpecific = append(rec.PhaseSpecific, insight)
				}
			}
		}
	}

	if flowNode := flow + "_flow"; g.HasNode(flowNode) {
		for _, e := range g.EdgesFrom(flowNode) {
			if e.Relation == "recommended_for" && !contains(rec.HygieneProducts, e.To) {
				rec.HygieneProducts = append(rec.HygieneProducts, e.To)
			}
		}
	}

	if len(rec.Medications) == 0 && len(symptoms) > 0 {
		rec.Medications = []string{"ibuprofen", "paracetamol"}
	}
	if len(rec.HygieneProducts) == 0 {
		rec.HygieneProducts = []string{"pad", "tampon"}
	}

	return rec
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
