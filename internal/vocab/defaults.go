package vocab

// baselineForbidden are tokens no tier may produce; they signal the
// generator leaking adult or technical register into child records.
var baselineForbidden = []string{
	"quantum",
	"algorithm",
	"neural",
	"network",
	"consciousness",
	"substrate",
	"computation",
	"emergence",
	"phenomenology",
}

var defaultBands = []Band{
	{
		Tier:             "1.1",
		Stage:            "sensorimotor",
		CognitiveFocus:   "raw sensation and reflex",
		MaxSentenceWords: 3,
		MaxTokens:        4096,
		ForbiddenTokens:  []string{"because", "yesterday", "tomorrow", "remember", "think about"},
		LanguageTraits:   []string{"pre-verbal", "sensation fragments", "no grammar"},
		CoreVocabulary:   []string{"warm", "milk", "soft", "bright", "loud", "mama"},
	},
	{
		Tier:             "1.2",
		Stage:            "sensorimotor",
		CognitiveFocus:   "object permanence",
		MaxSentenceWords: 3,
		MaxTokens:        4096,
		ForbiddenTokens:  []string{"because", "yesterday", "tomorrow", "remember", "imagine"},
		LanguageTraits:   []string{"babble", "single sound-words", "repetition"},
		CoreVocabulary:   []string{"mama", "dada", "ball", "up", "more", "no", "dog"},
	},
	{
		Tier:             "2.1",
		Stage:            "sensorimotor",
		CognitiveFocus:   "naming and wanting",
		MaxSentenceWords: 4,
		MaxTokens:        6144,
		ForbiddenTokens:  []string{"because", "yesterday", "tomorrow", "probably", "imagine"},
		LanguageTraits:   []string{"single words", "pointing plus word", "holophrases"},
		CoreVocabulary:   []string{"want", "milk", "ball", "go", "mama", "dada", "bye", "hi", "cat"},
	},
	{
		Tier:             "2.2",
		Stage:            "sensorimotor",
		CognitiveFocus:   "two-word combination",
		MaxSentenceWords: 4,
		MaxTokens:        6144,
		ForbiddenTokens:  []string{"because", "yesterday", "probably", "although"},
		LanguageTraits:   []string{"two-word telegraphic speech", "naming everything", "mine"},
		CoreVocabulary:   []string{"more juice", "mama go", "big dog", "my ball", "all done", "night night"},
	},
	{
		Tier:             "3.1",
		Stage:            "preoperational",
		CognitiveFocus:   "simple sentences",
		MaxSentenceWords: 5,
		MaxTokens:        8192,
		ForbiddenTokens:  []string{"probably", "although", "however", "opinion"},
		LanguageTraits:   []string{"three-word sentences", "present tense only", "me and mine"},
		CoreVocabulary:   []string{"I want that", "go outside", "big truck", "me do it", "where ball"},
	},
	{
		Tier:             "3.2",
		Stage:            "preoperational",
		CognitiveFocus:   "self and others",
		MaxSentenceWords: 5,
		MaxTokens:        8192,
		ForbiddenTokens:  []string{"probably", "although", "however", "consequence"},
		LanguageTraits:   []string{"pronouns", "simple questions", "naming feelings"},
		CoreVocabulary:   []string{"what that", "I happy", "you come", "my turn", "dog run fast"},
	},
	{
		Tier:             "3.3",
		Stage:            "preoperational",
		CognitiveFocus:   "short narratives",
		MaxSentenceWords: 5,
		MaxTokens:        8192,
		ForbiddenTokens:  []string{"although", "however", "theory", "consequence"},
		LanguageTraits:   []string{"full short sentences", "and-chains", "past tense emerging"},
		CoreVocabulary:   []string{"we went park", "I made tower", "then we ate", "big big slide"},
	},
	{
		Tier:             "4.1",
		Stage:            "preoperational",
		CognitiveFocus:   "why questions",
		MaxSentenceWords: 6,
		MaxTokens:        10240,
		ForbiddenTokens:  []string{"however", "theory", "abstract", "hypothesis"},
		LanguageTraits:   []string{"why questions", "because answers", "rule talk"},
		CoreVocabulary:   []string{"why is it dark", "because I want", "that not fair", "can I help"},
	},
	{
		Tier:             "4.2",
		Stage:            "preoperational",
		CognitiveFocus:   "pretend worlds",
		MaxSentenceWords: 6,
		MaxTokens:        10240,
		ForbiddenTokens:  []string{"however", "theory", "abstract", "hypothesis"},
		LanguageTraits:   []string{"pretend narration", "feeling words", "friend talk"},
		CoreVocabulary:   []string{"let us pretend", "I am the dragon", "she is my friend", "I feel sad"},
	},
	{
		Tier:             "4.3",
		Stage:            "preoperational",
		CognitiveFocus:   "planning and counting",
		MaxSentenceWords: 6,
		MaxTokens:        10240,
		ForbiddenTokens:  []string{"theory", "abstract", "hypothesis", "philosophy"},
		LanguageTraits:   []string{"future tense", "counting", "comparisons"},
		CoreVocabulary:   []string{"tomorrow we will go", "I have more than you", "one two three four"},
	},
	{
		Tier:             "4.4",
		Stage:            "preoperational",
		CognitiveFocus:   "letters and cooperation",
		MaxSentenceWords: 6,
		MaxTokens:        10240,
		ForbiddenTokens:  []string{"theory", "abstract", "hypothesis", "philosophy"},
		LanguageTraits:   []string{"story retelling", "letter names", "group play talk"},
		CoreVocabulary:   []string{"that letter is M", "first we build then we play", "you be the shopkeeper"},
	},
	{
		Tier:             "5.1",
		Stage:            "preoperational",
		CognitiveFocus:   "self-regulation",
		MaxSentenceWords: 7,
		MaxTokens:        12288,
		ForbiddenTokens:  []string{"abstract", "hypothesis", "philosophy", "metaphysical"},
		LanguageTraits:   []string{"turn-taking talk", "simple time words", "counting higher"},
		CoreVocabulary:   []string{"I can wait my turn", "after lunch we go swimming", "I counted to twenty"},
	},
	{
		Tier:             "5.2",
		Stage:            "preoperational",
		CognitiveFocus:   "cause and empathy",
		MaxSentenceWords: 7,
		MaxTokens:        12288,
		ForbiddenTokens:  []string{"abstract", "hypothesis", "philosophy", "metaphysical"},
		LanguageTraits:   []string{"because and so chains", "comforting words", "rule explaining"},
		CoreVocabulary:   []string{"she is sad so I hugged her", "if it rains we stay inside"},
	},
	{
		Tier:             "5.3",
		Stage:            "preoperational",
		CognitiveFocus:   "reflection and long narrative",
		MaxSentenceWords: 7,
		MaxTokens:        12288,
		ForbiddenTokens:  []string{"abstract", "hypothesis", "philosophy", "metaphysical"},
		LanguageTraits:   []string{"ordered retelling", "past and future mixing", "asking about before"},
		CoreVocabulary:   []string{"when I was little", "first we did this then that", "I will be big soon"},
	},
}

// DefaultRegistry returns the built-in fourteen-tier registry. Every
// band carries the shared baseline forbidden tokens plus its own.
func DefaultRegistry() *Registry {
	bands := make([]Band, 0, len(defaultBands))
	for _, b := range defaultBands {
		forbidden := make([]string, 0, len(b.ForbiddenTokens)+len(baselineForbidden))
		forbidden = append(forbidden, b.ForbiddenTokens...)
		forbidden = append(forbidden, baselineForbidden...)
		b.ForbiddenTokens = forbidden
		bands = append(bands, b)
	}
	return NewRegistry(bands)
}
