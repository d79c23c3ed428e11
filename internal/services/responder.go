package services

import (
	"math/rand"
	"strings"
)

// responseGroup pairs trigger keywords with authored reply variants
type responseGroup struct {
	keywords []string
	replies  []string
}

// scriptedGroups is scanned in order; the first group with any keyword
// present in the message wins.
var scriptedGroups = []responseGroup{
	{
		keywords: []string{"chiang mai"},
		replies: []string{
			"Chiang Mai is wonderful! Don't miss the Sunday Walking Street market, Elephant Nature Park, and the Sticky Waterfall. The old city is best explored by bicycle.",
			"For Chiang Mai, plan at least 3 days. The mountain temples around Doi Suthep are stunning at sunrise, and the night bazaar has great northern Thai food.",
			"Chiang Mai is my favorite for culture and nature. Cool season (November to February) is the best time to visit, and khao soi is a must-try dish.",
		},
	},
	{
		keywords: []string{"budget", "cheap", "cost", "expensive", "money"},
		replies: []string{
			"For Thailand, a comfortable budget is around ฿1,500-2,500 per day covering food, transport and activities. Street food keeps costs way down!",
			"Budget travelers can get by on ฿1,000 a day in Thailand; mid-range is ฿2,500, and ฿5,000+ gets you boutique hotels and private tours.",
			"Accommodation is usually the biggest cost. Guesthouses run ฿300-800 a night, while meals at local markets are ฿40-80 a dish.",
		},
	},
	{
		keywords: []string{"where", "destination", "recommend", "suggest"},
		replies: []string{
			"It depends on what you love! Chiang Mai for culture and nature, Phuket or Krabi for beaches, Bangkok for city energy. What's your travel style?",
			"Right now I'd recommend Chiang Mai: great weather, amazing food, and easy day trips to waterfalls and elephant sanctuaries.",
			"For a first trip, Bangkok plus one beach or mountain destination is a classic combo. Tell me how many days you have and I can plan it!",
		},
	},
	{
		keywords: []string{"food", "eat", "restaurant", "dish"},
		replies: []string{
			"Thai street food is the way to go! Pad thai, som tam, mango sticky rice, and in the north don't leave without trying khao soi.",
			"Night markets are the best places to eat: huge variety, fresh cooking, and most dishes under ฿100. Follow the locals and the queues.",
			"For food lovers I'd suggest a market tour on your first day: it's the fastest way to learn what to order for the rest of the trip.",
		},
	},
}

// fallbackReplies are used when no keyword group matches
var fallbackReplies = []string{
	"I can help you plan trips, suggest destinations, and answer travel questions. Try asking me to create a trip, like \"Create a trip to Chiang Mai for 4 days\"!",
	"Tell me more about what you're looking for, like a destination, a budget, or a kind of experience, and I'll point you in the right direction.",
	"I'm your travel assistant! Ask me about destinations, budgets, or food, or say \"plan a trip to Bangkok for 3 days\" and I'll build an itinerary.",
	"Not sure I caught that, but I'm great with travel plans. Want me to suggest a destination or put together a trip for you?",
}

// ScriptedResponder produces canned conversational replies with no side
// effects. The variant picker is injectable so tests can pin the choice.
type ScriptedResponder struct {
	intn func(n int) int
}

// NewScriptedResponder creates a responder; a nil picker uses math/rand
func NewScriptedResponder(intn func(n int) int) *ScriptedResponder {
	if intn == nil {
		intn = rand.Intn
	}
	return &ScriptedResponder{intn: intn}
}

// Reply returns a canned response for the message. The first keyword group
// with a match wins; within a group one variant is chosen at random.
func (r *ScriptedResponder) Reply(message string) string {
	lower := strings.ToLower(message)
	for _, group := range scriptedGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.replies[r.intn(len(group.replies))]
			}
		}
	}
	return fallbackReplies[r.intn(len(fallbackReplies))]
}
