package patterns

// The catalog maps every category the detector knows about to the phrases
// that signal it. Matching is case-insensitive substring containment, so
// every phrase is stored lowercase. Categories are typed constants rather
// than bare strings so an unknown category cannot appear at runtime.

type Distortion string

const (
	DistortionAllOrNothing       Distortion = "all_or_nothing"
	DistortionCatastrophizing    Distortion = "catastrophizing"
	DistortionOvergeneralization Distortion = "overgeneralization"
	DistortionMindReading        Distortion = "mind_reading"
	DistortionPersonalization    Distortion = "personalization"
	DistortionShouldStatements   Distortion = "should_statements"
	DistortionEmotionalReasoning Distortion = "emotional_reasoning"
	DistortionLabeling           Distortion = "labeling"
)

var distortionKeywords = map[Distortion][]string{
	DistortionAllOrNothing: {
		"always", "never", "everything", "nothing", "completely",
		"totally", "every time", "no one ever", "everyone always",
	},
	DistortionCatastrophizing: {
		"disaster", "ruin", "worst", "terrible", "horrible",
		"can't handle", "falling apart", "end of the world", "catastrophe",
	},
	DistortionOvergeneralization: {
		"this always happens", "typical", "story of my life",
		"just my luck", "once again", "as usual", "like every other time",
	},
	DistortionMindReading: {
		"they think", "she thinks", "he thinks", "they must think",
		"everyone thinks", "they probably hate", "i know they", "they're judging",
	},
	DistortionPersonalization: {
		"my fault", "because of me", "i caused", "i'm to blame",
		"if only i had", "i should have prevented",
	},
	DistortionShouldStatements: {
		"i should", "i must", "i have to", "i ought to",
		"i shouldn't have", "supposed to",
	},
	DistortionEmotionalReasoning: {
		"i feel like a", "i feel so it must", "it feels true",
		"i feel worthless so", "i feel stupid so",
	},
	DistortionLabeling: {
		"i'm a failure", "i'm an idiot", "i'm a loser", "i'm stupid",
		"i'm broken", "i'm useless", "i'm a mess",
	},
}

// DefenseMaturity follows the Vaillant grouping.
type DefenseMaturity string

const (
	MaturityMature   DefenseMaturity = "mature"
	MaturityNeurotic DefenseMaturity = "neurotic"
	MaturityImmature DefenseMaturity = "immature"
)

type Defense string

const (
	DefenseHumor               Defense = "humor"
	DefenseSublimation         Defense = "sublimation"
	DefenseSuppression         Defense = "suppression"
	DefenseAltruism            Defense = "altruism"
	DefenseIntellectualization Defense = "intellectualization"
	DefenseRationalization     Defense = "rationalization"
	DefenseDisplacement        Defense = "displacement"
	DefenseDenial              Defense = "denial"
	DefenseProjection          Defense = "projection"
	DefensePassiveAggression   Defense = "passive_aggression"
	DefenseActingOut           Defense = "acting_out"
)

type defenseInfo struct {
	Maturity DefenseMaturity
	Keywords []string
}

var defenseCatalog = map[Defense]defenseInfo{
	DefenseHumor: {MaturityMature, []string{
		"had to laugh", "joked about", "funny side", "laughed it off", "made a joke",
	}},
	DefenseSublimation: {MaturityMature, []string{
		"channeled it into", "went for a run instead", "poured it into my work",
		"turned it into something", "wrote about it",
	}},
	DefenseSuppression: {MaturityMature, []string{
		"set it aside for now", "deal with it later", "put it on hold",
		"parked that thought",
	}},
	DefenseAltruism: {MaturityMature, []string{
		"helped someone", "volunteered", "took care of", "was there for",
	}},
	DefenseIntellectualization: {MaturityNeurotic, []string{
		"logically speaking", "objectively", "analyzed", "rationally",
		"statistically", "if i think about it abstractly",
	}},
	DefenseRationalization: {MaturityNeurotic, []string{
		"it's probably for the best", "didn't want it anyway", "everything happens for a reason",
		"it wasn't meant to be", "at least",
	}},
	DefenseDisplacement: {MaturityNeurotic, []string{
		"snapped at", "took it out on", "yelled at the", "slammed the",
	}},
	DefenseDenial: {MaturityImmature, []string{
		"it's fine", "i'm fine", "nothing's wrong", "doesn't bother me",
		"not a big deal", "whatever",
	}},
	DefenseProjection: {MaturityImmature, []string{
		"they're the angry one", "they're so selfish", "everyone else is",
		"they're jealous of me", "it's them not me",
	}},
	DefensePassiveAggression: {MaturityImmature, []string{
		"forgot on purpose", "gave them the silent treatment", "ignored their",
		"conveniently forgot", "fine, whatever they want",
	}},
	DefenseActingOut: {MaturityImmature, []string{
		"stormed out", "threw my", "screamed at", "broke something",
		"slammed my fist",
	}},
}

type AttachmentStyle string

const (
	AttachmentSecure       AttachmentStyle = "secure"
	AttachmentAnxious      AttachmentStyle = "anxious"
	AttachmentAvoidant     AttachmentStyle = "avoidant"
	AttachmentDisorganized AttachmentStyle = "disorganized"
)

var attachmentKeywords = map[AttachmentStyle][]string{
	AttachmentSecure: {
		"comfortable being close", "trust them", "we talked it through",
		"felt supported", "safe with", "easy to be myself",
	},
	AttachmentAnxious: {
		"afraid they'll leave", "need reassurance", "why haven't they texted",
		"clingy", "abandoned", "they don't really love me", "read into",
		"waiting for them to reply", "scared of losing",
	},
	AttachmentAvoidant: {
		"need my space", "too clingy", "don't want to depend",
		"better off alone", "pulled away", "shut down when", "suffocating",
	},
	AttachmentDisorganized: {
		"want them close but", "push them away then", "hot and cold",
		"don't know what i want from", "terrified of intimacy",
	},
}

type LocusOrientation string

const (
	LocusInternal LocusOrientation = "internal"
	LocusExternal LocusOrientation = "external"
)

var locusKeywords = map[LocusOrientation][]string{
	LocusInternal: {
		"i can change", "up to me", "my choice", "i decided", "i'm responsible",
		"i made it happen", "within my control", "i'll figure it out",
	},
	LocusExternal: {
		"nothing i can do", "out of my hands", "they made me", "bad luck",
		"the universe", "it's rigged", "no point trying", "fate", "depends on them",
	},
}

type Strategy string

const (
	StrategyReappraisal    Strategy = "reappraisal"
	StrategyProblemSolving Strategy = "problem_solving"
	StrategyAcceptance     Strategy = "acceptance"
	StrategySocialSupport  Strategy = "social_support"
	StrategyMindfulness    Strategy = "mindfulness"
	StrategyRumination     Strategy = "rumination"
	StrategyAvoidance      Strategy = "avoidance"
	StrategySubstanceUse   Strategy = "substance_use"
	StrategySelfBlame      Strategy = "self_blame"
)

type strategyInfo struct {
	Adaptive bool
	Keywords []string
}

var strategyCatalog = map[Strategy]strategyInfo{
	StrategyReappraisal: {true, []string{
		"looked at it differently", "another way to see", "silver lining",
		"reframed", "from their perspective",
	}},
	StrategyProblemSolving: {true, []string{
		"made a plan", "broke it down", "first step", "figured out what to do",
		"wrote a list",
	}},
	StrategyAcceptance: {true, []string{
		"accepted that", "let it be", "made peace with", "it is what it is and that's okay",
	}},
	StrategySocialSupport: {true, []string{
		"talked to a friend", "called my", "reached out", "opened up to",
		"asked for help",
	}},
	StrategyMindfulness: {true, []string{
		"took a deep breath", "meditated", "grounded myself", "noticed the feeling",
		"stayed present", "breathing exercise",
	}},
	StrategyRumination: {false, []string{
		"can't stop thinking", "replaying", "over and over", "keep going back to",
		"stuck in my head", "obsessing",
	}},
	StrategyAvoidance: {false, []string{
		"avoided", "didn't want to deal", "distracted myself all day",
		"pretended it wasn't", "put off",
	}},
	StrategySubstanceUse: {false, []string{
		"drank to forget", "needed a drink", "smoked to calm", "took something to",
	}},
	StrategySelfBlame: {false, []string{
		"hate myself for", "beat myself up", "so stupid of me", "punishing myself",
	}},
}

// NervousState follows the polyvagal grouping.
type NervousState string

const (
	StateVentralVagal NervousState = "ventral_vagal"
	StateSympathetic  NervousState = "sympathetic"
	StateDorsalVagal  NervousState = "dorsal_vagal"
)

var stateKeywords = map[NervousState][]string{
	StateVentralVagal: {
		"calm", "safe", "connected", "grounded", "at ease", "peaceful",
		"content", "relaxed",
	},
	StateSympathetic: {
		"anxious", "racing", "panicked", "on edge", "heart pounding",
		"restless", "can't sit still", "fight", "overwhelmed", "wired",
	},
	StateDorsalVagal: {
		"numb", "shut down", "frozen", "empty", "disconnected", "hopeless",
		"can't get out of bed", "checked out", "nothing matters",
	},
}

type Mindset string

const (
	MindsetFixed  Mindset = "fixed"
	MindsetGrowth Mindset = "growth"
)

var mindsetKeywords = map[Mindset][]string{
	MindsetFixed: {
		"i'm just not good at", "born this way", "can't change", "not smart enough",
		"i'll never learn", "that's just who i am", "no talent for",
	},
	MindsetGrowth: {
		"i'm learning", "getting better at", "practice", "not there yet",
		"i can improve", "next time i'll", "challenge myself", "growing",
	},
}

type Value string

const (
	ValueFamily       Value = "family"
	ValueAchievement  Value = "achievement"
	ValueFreedom      Value = "freedom"
	ValueConnection   Value = "connection"
	ValueGrowth       Value = "growth"
	ValueSecurity     Value = "security"
	ValueCreativity   Value = "creativity"
	ValueHealth       Value = "health"
	ValueAdventure    Value = "adventure"
	ValueContribution Value = "contribution"
)

var valueKeywords = map[Value][]string{
	ValueFamily:       {"family", "my kids", "my parents", "my sister", "my brother", "home with"},
	ValueAchievement:  {"accomplish", "succeed", "goal", "promotion", "achieve", "win"},
	ValueFreedom:      {"freedom", "independence", "on my own terms", "no one telling me"},
	ValueConnection:   {"belonging", "close to people", "community", "friendship", "deep conversation"},
	ValueGrowth:       {"learn", "grow", "improve", "develop", "become better"},
	ValueSecurity:     {"stability", "secure", "savings", "safety net", "predictable"},
	ValueCreativity:   {"create", "art", "write", "music", "imagination", "design"},
	ValueHealth:       {"exercise", "healthy", "workout", "nutrition", "well-being"},
	ValueAdventure:    {"travel", "adventure", "explore", "new places", "spontaneous"},
	ValueContribution: {"give back", "make a difference", "help others", "volunteer", "contribute"},
}

// PermaElement is one of the five PERMA well-being elements.
type PermaElement string

const (
	PermaPositiveEmotion PermaElement = "positive_emotion"
	PermaEngagement      PermaElement = "engagement"
	PermaRelationships   PermaElement = "relationships"
	PermaMeaning         PermaElement = "meaning"
	PermaAccomplishment  PermaElement = "accomplishment"
)

// PermaElements lists all five elements in canonical order.
var PermaElements = []PermaElement{
	PermaPositiveEmotion, PermaEngagement, PermaRelationships,
	PermaMeaning, PermaAccomplishment,
}

var permaKeywords = map[PermaElement][]string{
	PermaPositiveEmotion: {"happy", "joy", "grateful", "excited", "laughed", "delighted"},
	PermaEngagement:      {"lost track of time", "in the zone", "absorbed", "flow", "immersed"},
	PermaRelationships:   {"quality time", "good conversation", "felt close to", "connected with", "supported by"},
	PermaMeaning:         {"purpose", "meaningful", "matters to me", "bigger than myself", "why i do this"},
	PermaAccomplishment:  {"finished", "completed", "proud of", "nailed it", "milestone", "checked off"},
}

type GriefStyle string

const (
	GriefIntuitive    GriefStyle = "intuitive"
	GriefInstrumental GriefStyle = "instrumental"
	GriefComplicated  GriefStyle = "complicated"
)

var griefKeywords = map[GriefStyle][]string{
	GriefIntuitive: {
		"cried about", "waves of grief", "miss them so much", "let myself feel the loss",
	},
	GriefInstrumental: {
		"organized their", "keeping busy since", "doing something in their memory",
		"sorted through their things",
	},
	GriefComplicated: {
		"can't accept they're gone", "life stopped when", "years since and it still",
		"can't move on", "frozen in grief",
	},
}

// MoneyScript follows the Klontz money-script categories.
type MoneyScript string

const (
	MoneyAvoidance MoneyScript = "money_avoidance"
	MoneyWorship   MoneyScript = "money_worship"
	MoneyStatus    MoneyScript = "money_status"
	MoneyVigilance MoneyScript = "money_vigilance"
)

var moneyKeywords = map[MoneyScript][]string{
	MoneyAvoidance: {
		"money is the root", "rich people are", "don't deserve money",
		"avoid looking at my account", "money stresses me out",
	},
	MoneyWorship: {
		"if i had more money", "money would solve", "never have enough money",
		"money would make me happy",
	},
	MoneyStatus: {
		"what people think of my", "keeping up with", "look successful",
		"brand new car to show", "status",
	},
	MoneyVigilance: {
		"saving every", "track every expense", "anxious about spending",
		"frugal", "emergency fund",
	},
}

// Horseman is one of the four Gottman conflict patterns.
type Horseman string

const (
	HorsemanCriticism     Horseman = "criticism"
	HorsemanContempt      Horseman = "contempt"
	HorsemanDefensiveness Horseman = "defensiveness"
	HorsemanStonewalling  Horseman = "stonewalling"
)

var horsemanKeywords = map[Horseman][]string{
	HorsemanCriticism: {
		"you always", "you never", "what's wrong with you", "why can't you ever",
	},
	HorsemanContempt: {
		"rolled my eyes", "pathetic", "disgusted with them", "sneered",
		"they're beneath", "mocked",
	},
	HorsemanDefensiveness: {
		"it's not my fault", "i was just", "but you started", "stop attacking me",
		"i only did it because",
	},
	HorsemanStonewalling: {
		"stopped responding", "walked away mid", "refused to talk",
		"tuned them out", "went silent",
	},
}
