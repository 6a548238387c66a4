package telegram

// User-facing reply strings. Kept in one place so handlers and tests agree
// on the exact wording.
const (
	replyAskPhone           = "Please share your phone number to complete registration."
	replyAlreadyRegistered  = "Hello again, %s! You're already registered."
	replyRegistered         = "✅ Registration complete! Thank you."
	replyOwnNumberOnly      = "⚠️ Please share your own phone number."
	replyThinking           = "🤖 Thinking..."
	replyAnalyzingSentiment = "🤖 Analyzing sentiment: %s..."
	replyAIUnavailable      = "❌ AI service is currently unavailable. Please try again later."
	replyNoFile             = "⚠️ No valid file received. Please send an image or document."
	replyAnalyzingFile      = "🔍 Analyzing the file..."
	replyFileResult         = "📄 **File:** %s\n\n📝 **Analysis:** %s"
	replyFileError          = "❌ Error processing the file. Please try again later."
	replySearchPrompt       = "🔍 Please enter your search query:"
	replySearching          = "🔍 Searching the web..."
	replyNoResults          = "❌ No results found. Please try again later."
	replySearchSummary      = "🔍 **Search Results Summary**:\n\n%s"

	buttonSharePhone = "📞 Share Phone Number"
)

// Sentiment preambles prepended to AI replies.
const (
	preamblePositive = "😊 That sounds great! "
	preambleNegative = "😞 I'm here for you. "
)
