// Package prompt assembles generation requests from scenario, stage,
// vocabulary, and memory inputs. Assembly is deterministic: identical
// inputs produce byte-identical prompts.
package prompt

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"childsim/internal/model"
	"childsim/internal/scenario"
	"childsim/internal/timeline"
	"childsim/internal/vocab"
)

// Version identifies the prompt template shape, recorded in provenance.
const Version = "v1"

// Prompt is one assembled request for the generation service.
type Prompt struct {
	System    string
	User      string
	MaxTokens int
}

// Inputs collects everything a day's prompts are built from.
type Inputs struct {
	Scenario *scenario.Scenario
	Stage    *timeline.Stage
	Band     vocab.Band
	Summary  model.MemorySummary
	Date     time.Time
}

// Assemble builds the combined prompt requesting both sequences for
// the given window in a single response.
func Assemble(in Inputs, w Window) Prompt {
	var b strings.Builder
	writeContext(&b, in, w)
	b.WriteString("Produce BOTH sequences for this window in one JSON object:\n")
	writeCombinedSchema(&b, w)
	writeExternalRules(&b)
	writeInternalRules(&b, in)
	return Prompt{
		System:    systemPreamble(in),
		User:      b.String(),
		MaxTokens: in.Band.MaxTokens,
	}
}

// AssembleExternal builds the first pass of a two-pass request: the
// external-reality sequence alone.
func AssembleExternal(in Inputs, w Window) Prompt {
	var b strings.Builder
	writeContext(&b, in, w)
	b.WriteString("Produce ONLY the external reality sequence for this window as a JSON object:\n")
	b.WriteString(`{"external_reality": [{"hour": <int>, "entries": [<minute entry>, ...]}, ...]}` + "\n\n")
	writeExternalEntrySchema(&b)
	writeExternalRules(&b)
	return Prompt{
		System:    systemPreamble(in),
		User:      b.String(),
		MaxTokens: in.Band.MaxTokens,
	}
}

// AssembleInternal builds the second pass: the internal monologue
// conditioned on an already-generated external sequence.
func AssembleInternal(in Inputs, w Window, externalJSON string) Prompt {
	var b strings.Builder
	writeContext(&b, in, w)
	b.WriteString("The external reality for this window has already been generated:\n\n")
	b.WriteString(externalJSON)
	b.WriteString("\n\nProduce ONLY the matching internal monologue as a JSON object:\n")
	b.WriteString(`{"internal_monologue": [{"hour": <int>, "entries": [<minute entry>, ...]}, ...]}` + "\n\n")
	b.WriteString("Every minute in the internal sequence must correspond to the same minute of the external reality above.\n\n")
	writeInternalEntrySchema(&b)
	writeInternalRules(&b, in)
	return Prompt{
		System:    systemPreamble(in),
		User:      b.String(),
		MaxTokens: in.Band.MaxTokens,
	}
}

func systemPreamble(in Inputs) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You generate developmental simulation records for a child named %s.\n", in.Scenario.Child.Name)
	b.WriteString("You respond with a single valid JSON object and nothing else: no prose, no markdown fences.\n")
	fmt.Fprintf(&b, "All free text must match the language ability of a child at the %q developmental stage.\n", in.Stage.ID)
	return b.String()
}

func writeContext(b *strings.Builder, in Inputs, w Window) {
	c := in.Scenario.Child
	ageDays := in.Scenario.AgeDaysOn(in.Date)

	fmt.Fprintf(b, "Date: %s. %s is %d days old (%d weeks).\n",
		in.Date.Format(model.DateLayout), c.Name, ageDays, ageDays/7)
	fmt.Fprintf(b, "Window: %s, minute entries every %d minutes starting at minute 0 (%d entries per hour).\n\n",
		w, w.MinuteStep, w.EntriesPerHour())

	fmt.Fprintf(b, "Child: %s, %s. Temperament: %s.\n",
		c.Name, c.Sex, strings.Join(c.TemperamentTags, ", "))
	if len(c.Personality) > 0 {
		traits := make([]string, 0, len(c.Personality))
		for k := range c.Personality {
			traits = append(traits, k)
		}
		sort.Strings(traits)
		parts := make([]string, 0, len(traits))
		for _, k := range traits {
			parts = append(parts, fmt.Sprintf("%s=%.1f", k, c.Personality[k]))
		}
		fmt.Fprintf(b, "Personality: %s.\n", strings.Join(parts, ", "))
	}

	cgs := make([]string, 0, len(in.Scenario.Caregivers))
	for _, cg := range in.Scenario.Caregivers {
		cgs = append(cgs, fmt.Sprintf("%s (%s)", cg.Name, cg.Relation))
	}
	env := in.Scenario.Environment
	fmt.Fprintf(b, "Caregivers: %s. Home: %s in %s, %d sibling(s).\n\n",
		strings.Join(cgs, ", "), env.HomeType, env.City, env.Siblings)

	st := in.Stage
	fmt.Fprintf(b, "Developmental stage %q (%s): %s.\n", st.ID, in.Band.Stage, st.CognitiveFocus)
	if len(st.BehavioralDescriptors) > 0 {
		fmt.Fprintf(b, "Typical behaviors: %s.\n", strings.Join(st.BehavioralDescriptors, "; "))
	}
	if len(st.Milestones) > 0 {
		fmt.Fprintf(b, "Milestones in reach: %s.\n", strings.Join(st.Milestones, "; "))
	}
	if len(st.RoutineTags) > 0 {
		fmt.Fprintf(b, "Daily routines: %s.\n", strings.Join(st.RoutineTags, "; "))
	}
	b.WriteString("\n")

	writeSummary(b, in.Summary)
}

func writeSummary(b *strings.Builder, s model.MemorySummary) {
	if len(s.SalientEvents) == 0 && len(s.EmergentTraits) == 0 {
		b.WriteString("No prior history: this is the first recorded day.\n\n")
		return
	}
	fmt.Fprintf(b, "Continuity from %s through %s:\n", s.CoveringPeriod.Start, s.CoveringPeriod.End)
	for _, ev := range s.SalientEvents {
		fmt.Fprintf(b, "- %s\n", ev)
	}
	if len(s.EmergentTraits) > 0 {
		keys := make([]string, 0, len(s.EmergentTraits))
		for k := range s.EmergentTraits {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, s.EmergentTraits[k]))
		}
		fmt.Fprintf(b, "Emerging traits: %s.\n", strings.Join(parts, "; "))
	}
	b.WriteString("Keep today consistent with this history.\n\n")
}

func writeCombinedSchema(b *strings.Builder, w Window) {
	b.WriteString(`{"external_reality": [{"hour": <int>, "entries": [<external entry>, ...]}, ...],` + "\n")
	b.WriteString(` "internal_monologue": [{"hour": <int>, "entries": [<internal entry>, ...]}, ...]}` + "\n\n")
	fmt.Fprintf(b, "Both arrays must contain exactly one object per hour from %d through %d, in order.\n",
		w.StartHour, w.EndHour)
	b.WriteString("Every minute present in external_reality must also be present in internal_monologue.\n\n")
	writeExternalEntrySchema(b)
	writeInternalEntrySchema(b)
}

func writeExternalEntrySchema(b *strings.Builder) {
	b.WriteString("External entry (all fields are required non-empty strings except minute):\n")
	b.WriteString(`{"minute": <int>, "environment": "...", "caregiver_actions": "...", "objects_present": "...", "sensory_stimuli": "...", "routine_activity": "...", "external_events": "..."}` + "\n\n")
}

func writeInternalEntrySchema(b *strings.Builder) {
	b.WriteString("Internal entry:\n")
	b.WriteString(`{"minute": <int>, "consciousness_components": {"sensory_perception": "...", "interoception": "...", "attention_focus": "...", "intention_motive": "...", "social_interaction": "...", "vocalization": "...", "motor_behavior": "...", "emotional_expression": "...", "environmental_learning": "...", "reflective_awareness": "..."}, "labels": {"arousal_level": "...", "dominant_emotion": "...", "cognitive_load": "...", "social_context": "..."}}` + "\n\n")
	b.WriteString("All ten consciousness components are required non-empty strings.\n")
	b.WriteString("Labels: arousal_level is one of low, medium, high. ")
	b.WriteString("cognitive_load is one of minimal, low, medium, high. ")
	b.WriteString("social_context is one of alone, with_caregivers, with_peers, public. ")
	b.WriteString("dominant_emotion is a single plain emotion word such as calm, curious, happy, tired, distressed.\n\n")
}

func writeExternalRules(b *strings.Builder) {
	b.WriteString("External reality rules: describe the observable world only, in neutral adult prose. ")
	b.WriteString("Keep environments, caregivers, and objects consistent across consecutive minutes; ")
	b.WriteString("changes happen gradually through routines, never abruptly without cause.\n\n")
}

func writeInternalRules(b *strings.Builder, in Inputs) {
	band := in.Band
	fmt.Fprintf(b, "Internal monologue rules for vocabulary tier %s (%s):\n", band.Tier, band.CognitiveFocus)
	fmt.Fprintf(b, "- No sentence in any consciousness component may exceed %d words.\n", band.MaxSentenceWords)
	if len(band.LanguageTraits) > 0 {
		fmt.Fprintf(b, "- Language character: %s.\n", strings.Join(band.LanguageTraits, "; "))
	}
	if len(band.CoreVocabulary) > 0 {
		fmt.Fprintf(b, "- Draw on vocabulary like: %s.\n", strings.Join(band.CoreVocabulary, ", "))
	}
	if len(band.ForbiddenTokens) > 0 {
		fmt.Fprintf(b, "- Never use these words: %s.\n", strings.Join(band.ForbiddenTokens, ", "))
	}
	b.WriteString("- Internal states must be plausible reactions to the external reality of the same minute.\n")
}
