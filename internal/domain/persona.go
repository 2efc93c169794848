package domain

// PersonaConfig describes the AI persona: identity, values, behavioral flag
// phrase lists, conversation prompts, and scoring weights. Loaded once at
// startup and passed explicitly; read-only thereafter.
type PersonaConfig struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Tone               []string `json:"tone"`
	Values             []string `json:"values"`
	CommunicationStyle string   `json:"communication_style"`
	PersonalityTraits  []string `json:"personality_traits"`

	Filters struct {
		RedFlags     []string `json:"red_flags"`
		GreenFlags   []string `json:"green_flags"`
		DealBreakers []string `json:"deal_breakers"`
	} `json:"filters"`

	Questions struct {
		Icebreakers          []string `json:"icebreakers"`
		ValuesAssessment     []string `json:"values_assessment"`
		CompatibilityDeepDive []string `json:"compatibility_deep_dive"`
	} `json:"questions"`

	Responses struct {
		WelcomingMessage string   `json:"welcoming_message"`
		FollowUpPrompts  []string `json:"follow_up_prompts"`
		ClosingMessages  []string `json:"closing_messages"`
	} `json:"responses"`

	ScoringWeights map[string]float64 `json:"scoring_weights"`
}

// LifeLesson is a wisdom snippet tagged with the contexts it applies to.
type LifeLesson struct {
	Lesson      string   `json:"lesson"`
	Description string   `json:"description"`
	Contexts    []string `json:"contexts"`
}

// Wisdom is the persona's canned philosophy used by the fallback responder
// and the system prompt builder.
type Wisdom struct {
	CorePhilosophy struct {
		LifePurpose   string `json:"life_purpose"`
		HumanNature   string `json:"human_nature"`
		Relationships string `json:"relationships"`
		GrowthMindset string `json:"growth_mindset"`
	} `json:"core_philosophy"`

	LifeLessons []LifeLesson `json:"life_lessons"`

	// RelationshipInsights is ordered so randomized picks are reproducible
	// with a seeded source.
	RelationshipInsights []string `json:"relationship_insights"`

	ThoughtsOnExperience struct {
		Pain string `json:"pain"`
		Joy  string `json:"joy"`
	} `json:"thoughts_on_experience"`
}

// LessonsForContext returns the lessons tagged with the given context, in order.
func (w *Wisdom) LessonsForContext(context string) []LifeLesson {
	var out []LifeLesson
	for _, l := range w.LifeLessons {
		for _, c := range l.Contexts {
			if c == context {
				out = append(out, l)
				break
			}
		}
	}
	return out
}
