package eval

// Keyword lexicons backing the factor evaluators. Matching is substring over
// lowercased text unless noted; keep entries lowercase.

var emotionalKeywords = []string{
	"feel", "feelings", "emotion", "empathy", "understand", "perspective",
	"support", "challenging", "vulnerability", "connection", "intuition",
	"aware", "mindful", "compassion", "patience",
}

var valueKeywords = []string{
	"integrity", "honest", "growth", "learning", "purpose", "meaning",
	"authentic", "genuine", "respect", "kind", "empathy", "curious",
}

var valueSynonyms = map[string][]string{
	"authenticity": {"genuine", "real", "honest", "true", "sincere"},
	"growth":       {"learning", "development", "improvement", "evolving", "progress"},
	"purpose":      {"meaning", "mission", "calling", "passion", "goal"},
	"respect":      {"consideration", "regard", "appreciation", "value"},
	"curiosity":    {"interested", "wonder", "explore", "discover", "learn"},
}

var growthKeywords = []string{
	"learn", "grow", "improve", "develop", "change", "evolve", "progress",
	"challenge", "overcome", "better", "feedback", "mistake", "lesson",
}

var positiveWords = []string{
	"great", "wonderful", "amazing", "love", "enjoy", "excited", "happy",
}

var negativeWords = []string{
	"hate", "terrible", "awful", "stupid", "boring", "waste",
}

var structureWords = []string{
	"first", "second", "also", "however", "therefore", "because",
}

var listeningPhrases = []string{
	"you mentioned", "you said", "i understand", "that makes sense",
}

var personalPhrases = []string{
	"i feel", "i think", "i believe", "my experience", "i remember",
}

var examplePhrases = []string{
	"for example", "like when", "such as", "specifically", "instance",
}

var scriptedPhrases = []string{
	"thank you for asking",
	"that's a great question",
	"i appreciate your interest",
	"as i mentioned before",
}

var disrespectfulPatterns = []string{
	"stupid", "dumb", "idiot", "shut up", "whatever",
	"don't care", "boring", "waste of time",
}

var politeWords = []string{
	"please", "thank", "appreciate", "respect", "understand",
}

var curiosityWords = []string{
	"why", "how", "what if", "interesting", "curious", "wonder",
	"explore", "discover", "learn more", "tell me about",
}
