package derive

// Lookup tables for theme generation. Keys are reduced numbers (1-9 and the
// master numbers) or sun-sign names.

var yearWords = map[int][3]string{
	1:  {"Begin", "Initiate", "Declare"},
	2:  {"Partner", "Listen", "Balance"},
	3:  {"Create", "Express", "Expand"},
	4:  {"Build", "Ground", "Commit"},
	5:  {"Move", "Change", "Explore"},
	6:  {"Nurture", "Harmonize", "Serve"},
	7:  {"Reflect", "Refine", "Reveal"},
	8:  {"Lead", "Claim", "Prosper"},
	9:  {"Release", "Complete", "Forgive"},
	11: {"Illuminate", "Inspire", "Trust"},
	22: {"Architect", "Anchor", "Manifest"},
	33: {"Heal", "Teach", "Uplift"},
}

var fallbackYearWords = [3]string{"Notice", "Choose", "Act"}

var lifePathGuidance = map[int]string{
	1:  "Lead with your own voice.",
	2:  "Choose partnership over proving.",
	3:  "Say it out loud and make something of it.",
	4:  "Build the structure your freedom needs.",
	5:  "Let change teach you what you want.",
	6:  "Care for yourself as fiercely as you care for others.",
	7:  "Trust what you know when you are quiet.",
	8:  "Own your power and use it cleanly.",
	9:  "Let go of what is already finished.",
	11: "Follow the signal, not the noise.",
	22: "Turn the big vision into daily work.",
	33: "Teach by how you live.",
}

const fallbackGuidance = "Keep choosing what is true for you."

// Completes the sentence "Move ...".
var signFlavor = map[string]string{
	"Aries":       "boldly and first",
	"Taurus":      "steadily, one root at a time",
	"Gemini":      "curiously, through conversation",
	"Cancer":      "gently, from a safe home base",
	"Leo":         "warmly, at the center of the stage",
	"Virgo":       "precisely, one detail at a time",
	"Libra":       "gracefully, in balance with others",
	"Scorpio":     "deeply, without flinching",
	"Sagittarius": "freely, toward the horizon",
	"Capricorn":   "patiently, up the mountain",
	"Aquarius":    "originally, for the collective",
	"Pisces":      "intuitively, with the current",
}

const fallbackFlavor = "at your own pace"

var yearHints = map[int]string{
	1:  "start it",
	2:  "choose together",
	3:  "say it",
	4:  "lay the foundation",
	5:  "stay flexible",
	6:  "tend the home",
	7:  "go inward",
	8:  "claim it",
	9:  "release it",
	11: "trust the signal",
	22: "build big",
	33: "serve with heart",
}

const fallbackYearHint = "choose again"

var signHints = map[string]string{
	"Aries":       "act first",
	"Taurus":      "slow and sure",
	"Gemini":      "talk it through",
	"Cancer":      "protect your peace",
	"Leo":         "be seen",
	"Virgo":       "refine",
	"Libra":       "find the balance",
	"Scorpio":     "go deep",
	"Sagittarius": "aim far",
	"Capricorn":   "climb",
	"Aquarius":    "break pattern",
	"Pisces":      "follow the feeling",
}

const fallbackSignHint = "stay true"
