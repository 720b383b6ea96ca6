package domain

import (
	"time"

	"github.com/google/uuid"
)

// FeedRules are the adaptive feed-rule inputs for a ranking run.
type FeedRules struct {
	Blocklist []string `json:"blocklist,omitempty"`
	BoostTags []string `json:"boostTags,omitempty"`
}

// RankingContext is the request-scoped input of the ranking funnel. Not persisted.
type RankingContext struct {
	UserID      uuid.UUID
	Summary     BehaviorSummary
	Candidates  []NormalizedPost
	Intent      string
	SessionMode SessionMode
	Limit       int
	Offset      int
	Rules       FeedRules
}

// Session optimization tags.
const (
	OptimizationShortForm = "short_form_priority"
	OptimizationLongform  = "longform_priority"
	OptimizationDiversity = "diversity_priority"
	OptimizationBalanced  = "balanced"
)

// MessageNoCandidates is returned when nothing survives the pre-filter.
const MessageNoCandidates = "insufficient data: no eligible candidates"

// RankedResult is the ordered, windowed output of the ranking funnel.
type RankedResult struct {
	Posts               []NormalizedPost  `json:"posts"`
	Explanations        map[string]string `json:"explanations"`
	DiversityScore      float64           `json:"diversityScore"`
	SessionOptimization string            `json:"sessionOptimization"`
	ConfidenceScore     float64           `json:"confidenceScore"`
	OracleApplied       bool              `json:"oracleApplied"`
	Message             string            `json:"message,omitempty"`
	TotalCandidates     int               `json:"totalCandidates"`
	GeneratedAt         time.Time         `json:"generatedAt"`
}

// OracleUserContext is the compact behavioral context sent to the ranking oracle.
type OracleUserContext struct {
	TopTags         []string `json:"topTags"`
	ScrollSpeed     string   `json:"scrollSpeed"`
	EngagementStyle string   `json:"engagementStyle"`
	Mood            []string `json:"mood"`
}

// OracleCandidate is the compact summary of a candidate post.
type OracleCandidate struct {
	ID          string    `json:"id"`
	Type        PostType  `json:"type"`
	Tags        []string  `json:"tags"`
	Creator     string    `json:"creator"`
	Stats       PostStats `json:"stats"`
	TextPreview string    `json:"textPreview"`
}

// OracleRequest is the payload of a rerank call.
type OracleRequest struct {
	UserContextSummary OracleUserContext `json:"userContextSummary"`
	CandidateSummaries []OracleCandidate `json:"candidateSummaries"`
	Intent             string            `json:"intent"`
	SessionMode        SessionMode       `json:"sessionMode"`
}

// OracleResponse is a validated rerank answer.
type OracleResponse struct {
	Order []string `json:"order"`
	Notes string   `json:"notes,omitempty"`
}
