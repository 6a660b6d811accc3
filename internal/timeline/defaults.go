package timeline

import "time"

// defaultStage describes one window of the built-in five-year timeline.
type defaultStage struct {
	id         string
	startMonth int
	endMonth   int // exclusive
	tier       string
	focus      string
	behaviors  []string
	milestones []string
	emotions   []string
	routines   []string
}

var defaultStages = []defaultStage{
	{"newborn", 0, 6, "1.1", "sensory grounding and caregiver attachment",
		[]string{"reflexive movement", "tracking faces", "startle responses"},
		[]string{"social smile", "head control", "reaching for objects"},
		[]string{"calm", "content", "distressed", "sleepy"},
		[]string{"feeding", "napping", "tummy time", "diaper change"}},
	{"infant", 6, 12, "1.2", "object permanence and intentional reaching",
		[]string{"sitting unsupported", "babbling", "transferring objects"},
		[]string{"crawling", "pincer grasp", "responds to own name"},
		[]string{"curious", "happy", "frustrated", "tired"},
		[]string{"feeding", "floor play", "napping", "stroller walk"}},
	{"young-toddler", 12, 18, "2.1", "first words and assisted walking",
		[]string{"cruising furniture", "pointing", "single words"},
		[]string{"first steps", "first words", "waves bye-bye"},
		[]string{"curious", "excited", "frustrated", "happy"},
		[]string{"meals at table", "outdoor walk", "nap", "bath"}},
	{"toddler", 18, 24, "2.2", "vocabulary burst and simple pretend play",
		[]string{"running", "two-word phrases", "imitating chores"},
		[]string{"kicks a ball", "stacks blocks", "follows two-step requests"},
		[]string{"happy", "angry", "curious", "excited"},
		[]string{"meals", "playground", "nap", "bedtime story"}},
	{"twos-early", 24, 30, "3.1", "short sentences and parallel play",
		[]string{"jumping", "three-word sentences", "sorting shapes"},
		[]string{"names familiar people", "pedals a tricycle"},
		[]string{"happy", "frustrated", "curious", "content"},
		[]string{"meals", "playground", "nap", "songs"}},
	{"twos-late", 30, 36, "3.2", "emerging self-concept and turn-taking",
		[]string{"pretend feeding dolls", "asking what questions", "climbing"},
		[]string{"uses pronouns", "draws a circle"},
		[]string{"happy", "angry", "curious", "excited"},
		[]string{"meals", "outdoor play", "quiet time", "bedtime story"}},
	{"threes-early", 36, 42, "3.3", "narrative speech and cooperative play",
		[]string{"telling short stories", "dressing with help", "counting aloud"},
		[]string{"speaks in full sentences", "balances on one foot"},
		[]string{"happy", "curious", "scared", "excited"},
		[]string{"preschool morning", "lunch", "quiet time", "family dinner"}},
	{"threes-late", 42, 45, "4.1", "why questions and rule awareness",
		[]string{"asking why repeatedly", "simple board games", "hopping"},
		[]string{"understands same and different", "names colors"},
		[]string{"curious", "happy", "frustrated", "surprised"},
		[]string{"preschool", "playground", "chores helper", "bedtime story"}},
	{"fours-first", 45, 48, "4.2", "imaginative worlds and friendships",
		[]string{"elaborate pretend scenarios", "naming feelings", "catching a ball"},
		[]string{"tells a simple story", "copies shapes"},
		[]string{"happy", "excited", "scared", "curious"},
		[]string{"preschool", "friend visits", "art time", "family dinner"}},
	{"fours-second", 48, 51, "4.3", "planning ahead and comparing quantities",
		[]string{"negotiating rules", "counting objects", "skipping"},
		[]string{"counts to ten", "uses future tense"},
		[]string{"happy", "curious", "frustrated", "excited"},
		[]string{"preschool", "playground", "helping cook", "bedtime story"}},
	{"fours-third", 51, 54, "4.4", "early letters and peer cooperation",
		[]string{"recognizing own name in print", "group games", "detailed drawings"},
		[]string{"writes some letters", "retells familiar stories"},
		[]string{"happy", "curious", "content", "excited"},
		[]string{"preschool", "library visit", "outdoor play", "family dinner"}},
	{"fives-first", 54, 56, "5.1", "school readiness and self-regulation",
		[]string{"waiting turns", "simple addition with fingers", "riding a bike"},
		[]string{"ties shoes with help", "counts past twenty"},
		[]string{"happy", "curious", "excited", "calm"},
		[]string{"kindergarten prep", "sports practice", "homework play", "bedtime reading"}},
	{"fives-second", 56, 58, "5.2", "cause-and-effect reasoning and empathy",
		[]string{"explaining rules to others", "comforting friends", "building projects"},
		[]string{"reads some sight words", "tells time of day"},
		[]string{"happy", "curious", "content", "surprised"},
		[]string{"school morning", "friend play", "chores", "family dinner"}},
	{"fives-third", 58, 60, "5.3", "reflective thinking and extended narratives",
		[]string{"planning multi-step projects", "long pretend narratives", "asking about the past"},
		[]string{"writes own name", "retells a full day in order"},
		[]string{"happy", "curious", "calm", "excited"},
		[]string{"school", "after-school play", "reading together", "bedtime reflection"}},
}

// Default returns the built-in timeline for a child born on birthdate.
func Default(birthdate time.Time) *Timeline {
	birthdate = midnight(birthdate)
	stages := make([]Stage, 0, len(defaultStages))
	for _, d := range defaultStages {
		start := birthdate.AddDate(0, d.startMonth, 0)
		end := birthdate.AddDate(0, d.endMonth, 0).AddDate(0, 0, -1)
		stages = append(stages, Stage{
			ID:                    d.id,
			Start:                 start,
			End:                   end,
			VocabularyTier:        d.tier,
			BehavioralDescriptors: d.behaviors,
			Milestones:            d.milestones,
			DominantEmotions:      d.emotions,
			RoutineTags:           d.routines,
			CognitiveFocus:        d.focus,
		})
	}
	t, err := New(birthdate, stages)
	if err != nil {
		// The built-in table is a compile-time constant partition.
		panic(err)
	}
	return t
}
