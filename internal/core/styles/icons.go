package styles

// Status glyphs.
var (
	IconNotDone    = "📝"
	IconInProgress = "🏗️"
	IconDone       = "✅"
	IconUnknown    = "❓"
)

// Record decorations.
var (
	IconTask    = "🔹"
	IconBranch  = "└─"
	IconDivider = "━"
)
