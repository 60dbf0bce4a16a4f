package comments

// Phrase pools for the rendering engine. Pool order matters only for the
// round-robin human templates; everything else is picked through the
// generator's seeded random source.

// humanTemplates are the filler comments real players hide among. {topic}
// is substituted with the round's topic.
var humanTemplates = []string{
	"honestly i go back and forth on {topic}, depends on the day",
	"my uncle won't shut up about {topic} at every family dinner lol",
	"can someone explain {topic} like i'm five? genuinely asking",
	"saw a documentary about {topic} last week, really made me think",
	"idk why everyone is so worked up about {topic}",
	"this {topic} discussion again? it's the third time this week",
	"not gonna lie, i only clicked because of the thumbnail",
	"the comments about {topic} here are wild, grabbing popcorn",
	"i changed my mind about {topic} like three times this year",
	"first!! also {topic} is complicated, people should chill",
	"my teacher brought up {topic} in class and it got heated fast",
	"anyone else here just to read the arguments about {topic}?",
	"i live somewhere this actually matters and it's not that simple",
	"typo in the title btw. anyway, interesting take on {topic}",
	"wasn't expecting a civil discussion about {topic} but here we are",
}

// usernames is the display-name pool for generated comments.
var usernames = []string{
	"xX_DragonSlayer_Xx", "sunflower_sam", "TruthSeeker2010", "pixelpanda",
	"mike.from.accounting", "lowkey_lena", "CaptainObvious", "nightowl_99",
	"grandma_gertrude", "skeptical_steve", "just_here_lurking", "TopG_Tommy",
	"bean_counter", "WiFiWarrior", "casual_carl", "moon_unit_7",
	"ProfessorPickles", "gym_and_juice", "anon54321", "the_real_deal",
	"quietstorm", "keyboard_kat", "dadjokes_dan", "veronica_v",
}

// timestamps is the relative-time pool. Display only, nothing parses these.
var timestamps = []string{
	"just now", "1 minute ago", "3 minutes ago", "7 minutes ago",
	"12 minutes ago", "18 minutes ago", "25 minutes ago", "34 minutes ago",
	"41 minutes ago", "52 minutes ago", "1 hour ago", "2 hours ago",
	"3 hours ago", "5 hours ago", "8 hours ago", "11 hours ago",
	"14 hours ago", "19 hours ago", "23 hours ago", "1 day ago",
}

// Opening phrases, keyed by the winning opener rule.
var (
	mockingOpeners = []string{
		"Oh look, another expert.",
		"Wow, groundbreaking stuff here.",
		"Imagine still believing this.",
		"Ah yes, the usual takes.",
	}
	exclamatoryOpeners = []string{
		"I CANNOT stay silent about this!!!",
		"This is EXACTLY what I've been saying!",
		"People need to WAKE UP!",
		"I am literally shaking right now!",
	}
	minimalOpeners = []string{
		"ok so.",
		"real talk:",
		"hot take:",
		"psa:",
	}
	academicOpeners = []string{
		"From an epistemological standpoint,",
		"If we examine the underlying framework,",
		"The discourse surrounding this is fascinating;",
		"As the literature clearly demonstrates,",
	}
	enthusiasticOpeners = []string{
		"Love seeing this discussion!",
		"So glad someone finally said it!",
		"This community is the best!",
		"Great points all around!",
	}
	analyticalOpeners = []string{
		"Let's look at the facts.",
		"Consider the evidence here.",
		"Breaking this down logically,",
		"There are three things to consider.",
	}
)

// memeIntros prefix the meme-style body rendering.
var memeIntros = []string{
	"nobody:\nabsolutely nobody:\nme:",
	"me explaining to my cat why",
	"POV: you just found out",
	"tell me you're wrong without telling me you're wrong:",
	"it's giving",
}

// jargonNouns are dropped into pseudo-intellectual bodies.
var jargonNouns = []string{
	"paradigm", "synergy", "zeitgeist", "dialectic", "heuristic",
	"epistemology", "meta-narrative", "praxis", "ontology",
}

// emojiPool feeds the emotional-dramatic emoji run.
var emojiPool = []string{"😱", "🔥", "💯", "😤", "🙌", "❗", "💔", "🚨"}

// Closing phrases, keyed by the winning closer rule.
var (
	dismissiveClosers = []string{
		"End of discussion.",
		"Not reading the replies.",
		"Argue with the wall.",
	}
	supportiveClosers = []string{
		"Who's with me?",
		"Stay positive everyone!",
		"Sending good vibes to this whole thread.",
	}
	logicalClosers = []string{
		"The data speaks for itself.",
		"Correlation is not causation, but still.",
		"Happy to see counter-evidence.",
	}
	dramaticClosers = []string{
		"I can't believe we're even debating this!!",
		"History will remember this moment.",
		"Mark my words.",
	}
)

// FallbackComments is the built-in comment pool used when a network comment
// provider fails. Generic enough to pass for any topic.
var FallbackComments = []string{
	"This is exactly why I support this. The evidence is clear and anyone who disagrees simply hasn't done the research.",
	"Strongly agree with this position!!! 💯💯 Everyone needs to see this!",
	"As someone who has studied this paradigm extensively, the conclusion is obvious.",
	"Oh sure, because the other side has NEVER been wrong about anything. Ever.",
	"Here's why this matters:\n- it affects everyone\n- the facts support it\n- the alternative is worse",
	"nobody:\nabsolutely nobody:\nme: posting my opinion anyway",
	"I CANNOT believe people still argue about this! WAKE UP!",
	"Let's look at the facts. The position is sound. The data speaks for itself.",
}
