package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"childsim/internal/model"
	"childsim/internal/vocab"
)

func testBand(t *testing.T) vocab.Band {
	t.Helper()
	band, err := vocab.DefaultRegistry().BandFor("1.2")
	require.NoError(t, err)
	return band
}

func validDay() *model.DayRecord {
	day := &model.DayRecord{
		ID:         "test_2021-03-14",
		Date:       "2021-03-14",
		MinuteStep: 30,
	}
	for hour := 0; hour < 24; hour++ {
		eh := model.ExternalHour{Hour: hour}
		ih := model.InternalHour{Hour: hour}
		for _, minute := range []int{0, 30} {
			eh.Entries = append(eh.Entries, model.ExternalEntry{
				Minute:           minute,
				Environment:      "dim nursery",
				CaregiverActions: "mother rocks the crib",
				ObjectsPresent:   "crib and soft lamp",
				SensoryStimuli:   "low hum of a fan",
				RoutineActivity:  "napping",
				ExternalEvents:   "nothing unusual",
			})
			ih.Entries = append(ih.Entries, model.InternalEntry{
				Minute: minute,
				Components: model.Consciousness{
					SensoryPerception:     "warm dark",
					Interoception:         "full tummy",
					AttentionFocus:        "soft hum",
					IntentionMotive:       "sleep more",
					SocialInteraction:     "mama near",
					Vocalization:          "quiet sigh",
					MotorBehavior:         "small stretch",
					EmotionalExpression:   "calm face",
					EnvironmentalLearning: "hum means rest",
					ReflectiveAwareness:   "drifting",
				},
				Labels: model.Labels{
					ArousalLevel:    "low",
					DominantEmotion: "calm",
					CognitiveLoad:   "minimal",
					SocialContext:   "with_caregivers",
				},
			})
		}
		day.ExternalReality = append(day.ExternalReality, eh)
		day.InternalMonologue = append(day.InternalMonologue, ih)
	}
	return day
}

func TestValidDayPasses(t *testing.T) {
	report := Validate(validDay(), testBand(t))
	assert.True(t, report.Passed, "violations: %+v", report.Violations)
	assert.Empty(t, report.Violations)
}

func TestMissingHour(t *testing.T) {
	day := validDay()
	day.ExternalReality = append(day.ExternalReality[:7], day.ExternalReality[8:]...)

	report := Validate(day, testBand(t))
	require.False(t, report.Passed)
	assert.Equal(t, CodeHourCoverage, report.Violations[0].Code)
	assert.Equal(t, 7, report.Violations[0].Hour)
}

func TestDuplicateHour(t *testing.T) {
	day := validDay()
	day.InternalMonologue[5].Hour = 4

	report := Validate(day, testBand(t))
	require.False(t, report.Passed)

	var codes []string
	for _, v := range report.Violations {
		codes = append(codes, v.Code)
	}
	assert.Contains(t, codes, CodeHourCoverage)
}

func TestBrokenMinuteGrid(t *testing.T) {
	day := validDay()
	day.ExternalReality[3].Entries[1].Minute = 31

	report := Validate(day, testBand(t))
	require.False(t, report.Passed)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, CodeMinuteCoverage, report.Violations[0].Code)
	assert.Equal(t, 3, report.Violations[0].Hour)
}

func TestMissingMinuteEntry(t *testing.T) {
	day := validDay()
	day.InternalMonologue[10].Entries = day.InternalMonologue[10].Entries[:1]

	report := Validate(day, testBand(t))
	require.False(t, report.Passed)
	assert.Equal(t, CodeMinuteCoverage, report.Violations[0].Code)
	assert.Equal(t, "internal", report.Violations[0].Sequence)
}

func TestEmptyFields(t *testing.T) {
	day := validDay()
	day.ExternalReality[2].Entries[0].SensoryStimuli = ""
	day.InternalMonologue[2].Entries[0].Components.Vocalization = ""

	report := Validate(day, testBand(t))
	require.False(t, report.Passed)
	require.Len(t, report.Violations, 2)
	assert.Equal(t, CodeEmptyField, report.Violations[0].Code)
	assert.Equal(t, "sensory_stimuli", report.Violations[0].Field)
	assert.Equal(t, "vocalization", report.Violations[1].Field)
}

func TestBadLabels(t *testing.T) {
	day := validDay()
	day.InternalMonologue[6].Entries[0].Labels.ArousalLevel = "extreme"
	day.InternalMonologue[6].Entries[0].Labels.SocialContext = "at_work"

	report := Validate(day, testBand(t))
	require.False(t, report.Passed)
	require.Len(t, report.Violations, 2)
	for _, v := range report.Violations {
		assert.Equal(t, CodeBadLabel, v.Code)
		assert.Equal(t, 6, v.Hour)
	}
}

func TestForbiddenWordInternal(t *testing.T) {
	day := validDay()
	day.InternalMonologue[9].Entries[1].Components.ReflectiveAwareness = "my consciousness hums"

	report := Validate(day, testBand(t))
	require.False(t, report.Passed)
	require.Len(t, report.Violations, 1)
	v := report.Violations[0]
	assert.Equal(t, CodeVocabulary, v.Code)
	assert.Equal(t, "internal", v.Sequence)
	assert.Equal(t, 9, v.Hour)
	assert.Equal(t, 30, v.Minute)
	assert.Equal(t, "reflective_awareness", v.Field)
}

func TestForbiddenWordExternal(t *testing.T) {
	day := validDay()
	day.ExternalReality[1].Entries[0].SensoryStimuli = "a quantum lamp flickers"

	report := Validate(day, testBand(t))
	require.False(t, report.Passed)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "external", report.Violations[0].Sequence)
}

func TestExternalProseNotComplexityChecked(t *testing.T) {
	day := validDay()
	day.ExternalReality[0].Entries[0].CaregiverActions =
		"the mother slowly lifts the child from the crib and carries her across the quiet room toward the window"

	report := Validate(day, testBand(t))
	assert.True(t, report.Passed, "violations: %+v", report.Violations)
}

func TestSentenceTooLongInternal(t *testing.T) {
	day := validDay()
	day.InternalMonologue[4].Entries[0].Components.AttentionFocus = "the big red ball rolls away fast"

	report := Validate(day, testBand(t))
	require.False(t, report.Passed)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, CodeVocabulary, report.Violations[0].Code)
}

func TestWindowsWithViolations(t *testing.T) {
	day := validDay()
	day.InternalMonologue[4].Entries[0].Components.AttentionFocus = ""
	day.InternalMonologue[17].Entries[0].Labels.CognitiveLoad = "crushing"

	report := Validate(day, testBand(t))
	hours := WindowsWithViolations(report)
	assert.ElementsMatch(t, []int{4, 17}, hours)
}
