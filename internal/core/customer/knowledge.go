// Package customer holds the public information desk knowledge base.
package customer

import (
	"regexp"
	"strings"
)

// Topic is one entry of the information desk.
type Topic struct {
	Key      string
	Keywords []string
	Answer   string
}

// NotFound is the answer when no topic matches.
const NotFound = "Specific info not found. Please contact the Front Office (09:00-18:00) or check the WIM App. " +
	"Available topics: Wifi, Market, Gym, Taxi, Restaurants, Fuel, Lift, Beach."

// Topics are checked in order; the first topic with a matching keyword answers.
var Topics = []Topic{
	{"wifi", []string{"wifi", "wi-fi", "internet"}, "Network **WIM_GUEST**, password **Sailor2025!** (5GB daily). Fibre internet reaches every pontoon."},
	{"market", []string{"market", "grocery", "supermarket"}, "Migros Jet is open **08:00-22:00** behind Block B; the shopping centre is on site."},
	{"gym", []string{"gym", "fitness", "sauna"}, "West Life Sports Club: fitness centre, sauna, indoor and outdoor pools, tennis and basketball courts."},
	{"taxi", []string{"taxi", "cab", "chauffeur"}, "Taxi rank at Gate A, +90 212 555 1234. VIP chauffeur service on request."},
	{"pharmacy", []string{"pharmacy", "eczane", "chemist"}, "Deniz Eczanesi is in the West Wall mall. Security keeps the duty pharmacy list."},
	{"restaurant", []string{"restaurant", "dinner", "lunch", "food", "eat"}, "Poem, Fersah, Calisto, BigChefs, Ella Italian, The Roof Kingdom and more; street food on Kumsal Istanbul Sokagi."},
	{"beach", []string{"beach", "swim"}, "Kumsal Beach and Mask Beach are open for swimming."},
	{"fuel", []string{"fuel", "diesel", "petrol"}, "Fuel station (Lukoil) open 24/7. Duty-free fuel with 24h notice."},
	{"water", []string{"water"}, "Pre-paid water cards at the Front Office, 1 unit = EUR 3.50."},
	{"electric", []string{"electric", "shore power"}, "Shore power 16A/32A/63A/125A, metered."},
	{"laundry", []string{"laundry", "washing"}, "Laundry pick-up 09:00, delivery 18:00. Call VHF Ch 11."},
	{"garbage", []string{"garbage", "trash", "waste", "rubbish"}, "Collection daily at 08:00 and 16:00 from the pontoon. Waste is separated."},
	{"office", []string{"office", "opening hours", "reception"}, "Front Office 09:00-18:00, VHF Ch 73."},
	{"atm", []string{"atm", "cash machine"}, "ATMs (Garanti BBVA, Is Bank, Yapi Kredi) at the Entrance Plaza."},
	{"lift", []string{"lift", "crane", "tech", "hardstand"}, "700 ton and 75 ton travel lifts, 60,000 m2 hardstanding."},
	{"heli", []string{"heli", "helipad", "helicopter"}, "Helipad for VIP transfers; coordinate with Security on VHF Ch 73."},
	{"academy", []string{"academy", "sailing school", "sport", "football"}, "PSG Academy Beylikduzu for football; TYF/RYA sailing school on site."},
}

var patterns = compile()

func compile() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(Topics))
	for i, t := range Topics {
		quoted := make([]string, len(t.Keywords))
		for j, kw := range t.Keywords {
			quoted[j] = regexp.QuoteMeta(kw)
		}
		// keywords must start a word; "eat" must not match "weather"
		out[i] = regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)`)
	}
	return out
}

// Lookup returns the first topic mentioned in query.
func Lookup(query string) (Topic, bool) {
	for i, p := range patterns {
		if p.MatchString(query) {
			return Topics[i], true
		}
	}
	return Topic{}, false
}

// Mentions reports whether query names any information desk topic.
func Mentions(query string) bool {
	_, ok := Lookup(query)
	return ok
}
