package entity

const (
	HumanKind = "human"
	BotKind   = "bot"

	botName = "Bot"
)

// DefaultMarks is the symbol palette the bot picks its mark from.
var DefaultMarks = []Mark{"⭕", "❌", "⭐", "🍀", "🐱", "🐶", "🍕", "🎲", "🎮", "🌈", "🔥", "💎"}

type Player struct {
	Name string `json:"name"`
	Mark Mark   `json:"mark"`
	Kind string `json:"kind"`
}

func NewHumanPlayer(name string, mark Mark) *Player {
	return &Player{
		Name: name,
		Mark: mark,
		Kind: HumanKind,
	}
}

func NewBotPlayer(mark Mark) *Player {
	return &Player{
		Name: botName,
		Mark: mark,
		Kind: BotKind,
	}
}

func (that *Player) IsBot() bool {
	return that.Kind == BotKind
}

// pickBotMark returns the first palette mark that differs from the human's.
func pickBotMark(humanMark Mark) Mark {
	for _, mark := range DefaultMarks {
		if mark != humanMark {
			return mark
		}
	}

	return DefaultMarks[0]
}
