package agent

// ProfileSetupVariables are the prompt variables of the profile setup endpoint.
type ProfileSetupVariables struct {
	UserInput           string `json:"user_input"`
	ClimateConcerns     string `json:"climate_concerns"`
	GeographicFocus     string `json:"geographic_focus"`
	InterestCategories  string `json:"interest_categories"`
	ConversationHistory string `json:"conversation_history"`
}

// ArticleAnalysisVariables are the prompt variables of the article analysis endpoint.
type ArticleAnalysisVariables struct {
	UserConcerns        string `json:"user_concerns"`
	ArticleContent      string `json:"article_content"`
	UserCategories      string `json:"user_categories"`
	UserGeographicFocus string `json:"user_geographic_focus"`
}

// AnalysisResponse is the structured analysis returned by the agent.
// Every field may be absent; callers check presence before use.
type AnalysisResponse struct {
	PersonalizedHighlights *Highlights        `json:"personalized_highlights,omitempty"`
	RiskAssessment         *RiskAssessment    `json:"risk_assessment,omitempty"`
	PlainLanguageSummary   string             `json:"plain_language_summary,omitempty"`
	WhyThisMattersToYou    string             `json:"why_this_matters_to_you,omitempty"`
	KeyTermsExplained      map[string]string  `json:"key_terms_explained,omitempty"`
	SentimentAnalysis      *SentimentAnalysis `json:"sentiment_analysis,omitempty"`
}

type Highlights struct {
	KeyPoints            []string `json:"key_points,omitempty"`
	RelevanceExplanation string   `json:"relevance_explanation,omitempty"`
}

type RiskAssessment struct {
	RiskLevel   string `json:"risk_level,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

type SentimentAnalysis struct {
	Tone            string `json:"tone,omitempty"`
	EmotionalImpact string `json:"emotional_impact,omitempty"`
}

// RiskLevel returns the risk level, or "" when absent.
func (a *AnalysisResponse) RiskLevel() string {
	if a == nil || a.RiskAssessment == nil {
		return ""
	}
	return a.RiskAssessment.RiskLevel
}

// KeyPoints returns the highlighted key points, or nil when absent.
func (a *AnalysisResponse) KeyPoints() []string {
	if a == nil || a.PersonalizedHighlights == nil {
		return nil
	}
	return a.PersonalizedHighlights.KeyPoints
}

// IsEmpty reports whether the analysis carries no renderable section.
func (a *AnalysisResponse) IsEmpty() bool {
	if a == nil {
		return true
	}
	return len(a.KeyPoints()) == 0 &&
		(a.PersonalizedHighlights == nil || a.PersonalizedHighlights.RelevanceExplanation == "") &&
		(a.RiskAssessment == nil || (a.RiskAssessment.RiskLevel == "" && a.RiskAssessment.Explanation == "")) &&
		a.PlainLanguageSummary == "" &&
		a.WhyThisMattersToYou == "" &&
		len(a.KeyTermsExplained) == 0 &&
		(a.SentimentAnalysis == nil || (a.SentimentAnalysis.Tone == "" && a.SentimentAnalysis.EmotionalImpact == ""))
}
