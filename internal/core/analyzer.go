package core

// Analyzer runs the keyword pipeline over a message. It holds only read-only
// state and is safe for concurrent use.
type Analyzer struct {
	lexicon Lexicon
	matcher Matcher
}

// NewAnalyzer creates an analyzer over the given lexicon and match mode
func NewAnalyzer(lexicon Lexicon, mode MatchMode) *Analyzer {
	return &Analyzer{
		lexicon: lexicon.clone(),
		matcher: NewMatcher(mode, lexicon),
	}
}

// NewDefaultAnalyzer creates an analyzer with the built-in lexicon and substring matching
func NewDefaultAnalyzer() *Analyzer {
	return NewAnalyzer(DefaultLexicon(), MatchSubstring)
}

// Lexicon returns a copy of the analyzer's keyword sets
func (a *Analyzer) Lexicon() Lexicon {
	return a.lexicon.clone()
}

// Analyze produces the analysis record for a message. It never fails; empty
// input yields an empty but valid record. The sender is accepted for symmetry
// with the message triple and does not influence the scores.
func (a *Analyzer) Analyze(subject, body, _ string) AnalysisRecord {
	sentiment := a.ScoreSentiment(body)
	return AnalysisRecord{
		Contacts:       ExtractContacts(body),
		Requests:       a.ExtractRequests(body),
		SentimentLabel: sentiment.Label,
		SentimentScore: sentiment.Score,
		PosCount:       sentiment.PosCount,
		NegCount:       sentiment.NegCount,
		Urgency:        a.ScoreUrgency(subject, body),
		RawText:        body,
	}
}

// AnalyzeMessage is Analyze applied to a Message
func (a *Analyzer) AnalyzeMessage(msg Message) AnalysisRecord {
	return a.Analyze(msg.Subject, msg.Body, msg.Sender)
}
