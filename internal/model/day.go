// Package model defines the day-record and memory-summary data types.
package model

import "time"

// DateLayout is the canonical date format used across files and the store.
const DateLayout = "2006-01-02"

// Generation methods recorded in a day file's name and provenance.
const (
	MethodSingle  = "single"
	MethodChunked = "chunked"
)

// ExternalEntry is one minute of external reality.
type ExternalEntry struct {
	Minute           int    `json:"minute"`
	Environment      string `json:"environment"`
	CaregiverActions string `json:"caregiver_actions"`
	ObjectsPresent   string `json:"objects_present"`
	SensoryStimuli   string `json:"sensory_stimuli"`
	RoutineActivity  string `json:"routine_activity"`
	ExternalEvents   string `json:"external_events"`
}

// Field pairs a schema field name with its free-text value.
type Field struct {
	Name  string
	Value string
}

// Fields returns the entry's free-text fields in schema order.
func (e ExternalEntry) Fields() []Field {
	return []Field{
		{"environment", e.Environment},
		{"caregiver_actions", e.CaregiverActions},
		{"objects_present", e.ObjectsPresent},
		{"sensory_stimuli", e.SensoryStimuli},
		{"routine_activity", e.RoutineActivity},
		{"external_events", e.ExternalEvents},
	}
}

// Consciousness is the fixed 10-component internal state for one minute.
type Consciousness struct {
	SensoryPerception     string `json:"sensory_perception"`
	Interoception         string `json:"interoception"`
	AttentionFocus        string `json:"attention_focus"`
	IntentionMotive       string `json:"intention_motive"`
	SocialInteraction     string `json:"social_interaction"`
	Vocalization          string `json:"vocalization"`
	MotorBehavior         string `json:"motor_behavior"`
	EmotionalExpression   string `json:"emotional_expression"`
	EnvironmentalLearning string `json:"environmental_learning"`
	ReflectiveAwareness   string `json:"reflective_awareness"`
}

// Fields returns the components in schema order.
func (c Consciousness) Fields() []Field {
	return []Field{
		{"sensory_perception", c.SensoryPerception},
		{"interoception", c.Interoception},
		{"attention_focus", c.AttentionFocus},
		{"intention_motive", c.IntentionMotive},
		{"social_interaction", c.SocialInteraction},
		{"vocalization", c.Vocalization},
		{"motor_behavior", c.MotorBehavior},
		{"emotional_expression", c.EmotionalExpression},
		{"environmental_learning", c.EnvironmentalLearning},
		{"reflective_awareness", c.ReflectiveAwareness},
	}
}

// Labels are the categorical annotations attached to each internal minute.
type Labels struct {
	ArousalLevel    string `json:"arousal_level"`
	DominantEmotion string `json:"dominant_emotion"`
	CognitiveLoad   string `json:"cognitive_load"`
	SocialContext   string `json:"social_context"`
}

// InternalEntry is one minute of internal monologue.
type InternalEntry struct {
	Minute     int           `json:"minute"`
	Components Consciousness `json:"consciousness_components"`
	Labels     Labels        `json:"labels"`
}

// ExternalHour is one hour of external reality.
type ExternalHour struct {
	Hour    int             `json:"hour"`
	Entries []ExternalEntry `json:"entries"`
}

// InternalHour is one hour of internal monologue.
type InternalHour struct {
	Hour    int             `json:"hour"`
	Entries []InternalEntry `json:"entries"`
}

// Provenance records how a day was generated.
type Provenance struct {
	Model         string    `json:"model"`
	PromptVersion string    `json:"prompt_version"`
	Temperature   float64   `json:"temperature"`
	Chunks        int       `json:"chunks"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// DayRecord is the complete paired external/internal dataset for one
// calendar day. Both sequences cover hours 0-23 exactly once; within each
// hour, minutes step by MinuteStep starting at 0.
type DayRecord struct {
	ID                string         `json:"id"`
	Date              string         `json:"date"`
	GenerationMethod  string         `json:"generation_method"`
	AgeWeeks          int            `json:"age_weeks"`
	MinuteStep        int            `json:"minute_step"`
	Provenance        Provenance     `json:"provenance"`
	ExternalReality   []ExternalHour `json:"external_reality"`
	InternalMonologue []InternalHour `json:"internal_monologue"`
}

// ValidArousalLevels are the allowed arousal_level label values.
var ValidArousalLevels = map[string]bool{
	"low":    true,
	"medium": true,
	"high":   true,
}

// ValidCognitiveLoads are the allowed cognitive_load label values.
var ValidCognitiveLoads = map[string]bool{
	"minimal": true,
	"low":     true,
	"medium":  true,
	"high":    true,
}

// ValidSocialContexts are the allowed social_context label values.
var ValidSocialContexts = map[string]bool{
	"alone":           true,
	"with_caregivers": true,
	"with_peers":      true,
	"public":          true,
}

// ValidEmotions are the allowed dominant_emotion label values.
var ValidEmotions = map[string]bool{
	"neutral":    true,
	"calm":       true,
	"content":    true,
	"happy":      true,
	"joy":        true,
	"curious":    true,
	"excited":    true,
	"alert":      true,
	"tired":      true,
	"sleepy":     true,
	"hungry":     true,
	"distressed": true,
	"frustrated": true,
	"angry":      true,
	"sad":        true,
	"scared":     true,
	"surprised":  true,
}
