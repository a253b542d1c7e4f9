// Package engine implements the finance decision engine: a pure,
// deterministic set of detectors that turn a snapshot of recurring
// payment records into duplicate groups, cancellation candidates, an
// upcoming-payment window, a risk classification, and a single
// recommended next state. Every function here is a side-effect-free
// transformation of (records, configuration) to a result; the engine
// never reads or writes storage and holds no state between calls.
package engine

import "strings"

// ClusterTable maps service names and categories onto cluster keys.
// Merchant names are matched first (after normalization); the category
// mapping is the fallback. Items matching neither are excluded from
// duplicate detection.
type ClusterTable struct {
	Merchants  map[string]string // normalized merchant name -> cluster key
	Categories map[string]string // categoryL1 -> cluster key
	Labels     map[string]string // cluster key -> human-readable purpose
}

// ScoreTable holds the weights of the candidate scorer. All scores are
// clamped to [0,1] after the weights are applied.
type ScoreTable struct {
	BaseRarely        float64
	BaseSometimes     float64
	BaseOften         float64
	BaseUnknown       float64
	DuplicateBonus    float64
	CancelIntentBonus float64
	PrimaryPenalty    float64
	SecondaryPenalty  float64
	Threshold         float64
}

// RiskTable holds the spend and count thresholds of the risk
// classifier.
type RiskTable struct {
	HighFixedCost      float64
	HighUpcomingAmount float64
	HighOverlaps       int
	HighCandidates     int
	MediumOverlaps     int
	MediumCandidates   int
}

// Config is the immutable configuration every detector receives. It is
// plain data so tests can substitute alternate tables (different
// locales, currencies, or thresholds) without touching the engine.
type Config struct {
	Clusters   ClusterTable
	Scores     ScoreTable
	Risk       RiskTable
	WindowDays int
}

// DefaultConfig returns the production tables: Korean-market service
// names, KRW spend thresholds, and the seven-day payment window.
func DefaultConfig() Config {
	return Config{
		Clusters: ClusterTable{
			Merchants: map[string]string{
				"netflix":         "OTT",
				"disney+":         "OTT",
				"disney plus":     "OTT",
				"watcha":          "OTT",
				"wavve":           "OTT",
				"tving":           "OTT",
				"coupang play":    "OTT",
				"youtube premium": "OTT",
				"melon":           "MUSIC",
				"spotify":         "MUSIC",
				"apple music":     "MUSIC",
				"youtube music":   "MUSIC",
				"genie":           "MUSIC",
				"icloud":          "CLOUD",
				"icloud+":         "CLOUD",
				"google one":      "CLOUD",
				"dropbox":         "CLOUD",
				"onedrive":        "CLOUD",
				"chatgpt":         "AI",
				"chatgpt plus":    "AI",
				"claude":          "AI",
				"gemini":          "AI",
				"class101":        "EDU",
				"inflearn":        "EDU",
				"coloso":          "EDU",
				"udemy":           "EDU",
			},
			Categories: map[string]string{
				"entertainment": "OTT",
				"ott":           "OTT",
				"music":         "MUSIC",
				"cloud":         "CLOUD",
				"ai":            "AI",
				"education":     "EDU",
				"fitness":       "FITNESS",
			},
			Labels: map[string]string{
				"OTT":     "OTT 영상",
				"MUSIC":   "음악 스트리밍",
				"CLOUD":   "클라우드 저장소",
				"AI":      "AI 구독",
				"EDU":     "온라인 강의",
				"FITNESS": "피트니스",
			},
		},
		Scores: ScoreTable{
			BaseRarely:        0.7,
			BaseSometimes:     0.3,
			BaseOften:         0.0,
			BaseUnknown:       0.2,
			DuplicateBonus:    0.2,
			CancelIntentBonus: 0.1,
			PrimaryPenalty:    0.45,
			SecondaryPenalty:  0.1,
			Threshold:         0.6,
		},
		Risk: RiskTable{
			HighFixedCost:      500000,
			HighUpcomingAmount: 200000,
			HighOverlaps:       2,
			HighCandidates:     3,
			MediumOverlaps:     2,
			MediumCandidates:   3,
		},
		WindowDays: 7,
	}
}

// normalizeName lowercases a merchant name and collapses interior
// whitespace so that "Netflix " and "NETFLIX" hit the same table entry.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// clusterKeyFor resolves an item's cluster key: merchant name first,
// then category. The empty string means the item does not cluster.
func (t ClusterTable) clusterKeyFor(name, categoryL1 string) string {
	if key, ok := t.Merchants[normalizeName(name)]; ok {
		return key
	}
	if key, ok := t.Categories[strings.ToLower(strings.TrimSpace(categoryL1))]; ok {
		return key
	}
	return ""
}

// PurposeLabel returns the human-readable label for a cluster key,
// falling back to the key itself for unknown keys.
func (t ClusterTable) PurposeLabel(key string) string {
	if label, ok := t.Labels[key]; ok {
		return label
	}
	return key
}
