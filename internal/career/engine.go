package career

import (
	"fmt"
	"strings"

	"careerpath_backend/internal/model"
)

// Profile is the narrative output derived from category scores: what the
// student is fit for, why, and what to work on.
type Profile struct {
	Strengths              []string
	Weaknesses             []model.Weakness
	Explanations           []string
	ImprovementSuggestions []string
	RecommendedCareers     []string
}

// Engine maps category scores to a career Profile. The zero value is not
// usable; construct with NewEngine so the table and threshold are set.
type Engine struct {
	threshold    int
	careers      map[string][]string
	explanations map[string]string
}

const fallbackCareer = "Skill Development Program"

// NewEngine returns an engine with the production category tables and the
// given strength threshold (percentage, typically 70).
func NewEngine(threshold int) *Engine {
	return &Engine{
		threshold: threshold,
		careers: map[string][]string{
			"logical":         {"Data Analyst", "Business Analyst", "Research Analyst"},
			"technical":       {"Software Engineer", "AI Engineer", "System Architect"},
			"communication":   {"HR Specialist", "Marketing Strategist", "Public Relations Manager"},
			"problem solving": {"Product Manager", "Consultant", "Operations Analyst"},
			"problemsolving":  {"Product Manager", "Consultant", "Operations Analyst"},
		},
		explanations: map[string]string{
			"logical":         "You demonstrate strong logical reasoning and analytical thinking, which is essential for data-driven and research-oriented roles.",
			"technical":       "Your technical skills indicate a solid understanding of systems and problem-solving using technology.",
			"communication":   "You possess effective communication and interpersonal skills, which are critical for leadership and people-facing roles.",
			"problem solving": "Your problem-solving ability shows that you can break down complex challenges and find structured solutions.",
			"problemsolving":  "Your problem-solving ability shows that you can break down complex challenges and find structured solutions.",
		},
	}
}

// Derive is deterministic: identical scores always yield an identical
// Profile. Careers are deduplicated in first-seen order.
func (e *Engine) Derive(scores []model.CategoryScore) Profile {
	p := Profile{
		Strengths:              []string{},
		Weaknesses:             []model.Weakness{},
		Explanations:           []string{},
		ImprovementSuggestions: []string{},
		RecommendedCareers:     []string{},
	}

	seen := make(map[string]bool)
	addCareer := func(c string) {
		if !seen[c] {
			seen[c] = true
			p.RecommendedCareers = append(p.RecommendedCareers, c)
		}
	}

	for _, s := range scores {
		key := strings.ToLower(s.Category)

		if s.Percentage >= e.threshold {
			p.Strengths = append(p.Strengths, s.Category)

			if expl, ok := e.explanations[key]; ok {
				p.Explanations = append(p.Explanations, expl)
				for _, c := range e.careers[key] {
					addCareer(c)
				}
			} else {
				p.Explanations = append(p.Explanations,
					fmt.Sprintf("You performed well in %s, indicating a strong aptitude in this area.", s.Category))
				addCareer("General Analyst")
			}
			continue
		}

		tip := fmt.Sprintf("To improve in %s, consider focused practice, guided learning resources, and real-world exercises related to this skill.", s.Category)
		p.Weaknesses = append(p.Weaknesses, model.Weakness{
			Category:        s.Category,
			Reason:          "Score below the recommended level",
			ImprovementTips: model.StringList{tip},
		})
		p.Explanations = append(p.Explanations,
			fmt.Sprintf("Your score in %s is below the recommended level, indicating that this area may currently limit your suitability for roles heavily dependent on it.", s.Category))
		p.ImprovementSuggestions = append(p.ImprovementSuggestions, tip)
	}

	if len(p.Strengths) == 0 {
		p.Explanations = append(p.Explanations,
			"Your current performance suggests the need for foundational skill development before specializing in a specific career path.")
		p.ImprovementSuggestions = append(p.ImprovementSuggestions,
			"Start with strengthening core skills such as logical thinking, communication, and basic technical concepts.")
	}

	if len(p.RecommendedCareers) == 0 {
		p.RecommendedCareers = append(p.RecommendedCareers, fallbackCareer)
	}

	return p
}
