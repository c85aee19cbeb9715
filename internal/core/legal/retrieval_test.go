package legal

import (
	"strings"
	"testing"
)

const regulations = `# WEST ISTANBUL MARINA OPERATION REGULATIONS

These regulations bind every berth holder.

## Article A.1 - Purpose
To provide a clean, safe and agreeable environment for yachts.

## Article E.1.10 - Speed
The speed limit inside the marina is 3 knots.

## Article E.2.1 - Swimming
Swimming inside the marina basin is prohibited.

## Article H.3 - Overstay
The overstay penalty is 4 EUR per square metre per day.

## Article H.4 - Late payment
Late payment of marina fees accrues a penalty of 2 percent per month.
`

func TestSelectDocument(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"Which COLREGS rule covers crossing?", DocNavigation},
		{"collision avoidance at night", DocNavigation},
		{"What are the rules for anchoring?", DocNavigation},
		{"what safety equipment is required", DocGuide},
		{"how do you process my personal data under KVKK", DocPrivacy},
		{"what is the overstay penalty", DocRegulations},
	}
	for _, tt := range tests {
		if got := SelectDocument(tt.query); got != tt.want {
			t.Errorf("SelectDocument(%q) = %s, want %s", tt.query, got, tt.want)
		}
	}
}

func TestSplit(t *testing.T) {
	sections := Split(regulations)

	wantLabels := []string{GeneralSection, "A.1", "E.1.10", "E.2.1", "H.3", "H.4"}
	if len(sections) != len(wantLabels) {
		t.Fatalf("expected %d sections, got %d: %+v", len(wantLabels), len(sections), sections)
	}
	for i, want := range wantLabels {
		if sections[i].Label != want {
			t.Errorf("section %d label = %q, want %q", i, sections[i].Label, want)
		}
	}
	if !strings.Contains(sections[2].Text, "3 knots") {
		t.Errorf("speed article text missing body: %q", sections[2].Text)
	}
}

func TestSplit_RuleHeadings(t *testing.T) {
	doc := "**Rule 5 (Look-out):** Maintain a proper look-out.\n**Rule 15 (Crossing):** Give way to starboard."
	sections := Split(doc)
	if len(sections) != 2 || sections[0].Label != "5" || sections[1].Label != "15" {
		t.Errorf("unexpected sections: %+v", sections)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		section string
		query   string
		want    int
	}{
		{"substring", "The speed limit is 3 knots.", "3 knots", 1},
		{"shared long word", "The overstay penalty is 4 EUR.", "penalty for staying", 1},
		{"short words ignored", "The fee is due.", "fee due", 0},
		{"no overlap", "Swimming is prohibited.", "fuel dock hours", 0},
		{"case insensitive", "SPEED LIMIT", "speed", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.section, tt.query); got != tt.want {
				t.Errorf("Score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRetrieve_TopThreeInDocumentOrder(t *testing.T) {
	// "marina" appears in the title, E.1.10 and E.2.1; H.3 and H.4 would also score.
	got := Retrieve(regulations, "marina penalty", 3)

	if len(got) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(got))
	}
	want := []string{GeneralSection, "E.1.10", "E.2.1"}
	for i, sec := range got {
		if sec.Label != want[i] {
			t.Errorf("result %d = %s, want %s", i, sec.Label, want[i])
		}
	}
}

func TestRetrieve_NoMatch(t *testing.T) {
	if got := Retrieve(regulations, "helicopter", 3); len(got) != 0 {
		t.Errorf("expected no sections, got %+v", got)
	}
}

func TestIsCompetitorQuery(t *testing.T) {
	if !IsCompetitorQuery("What are the rules at SETUR Kalamis?") {
		t.Error("expected competitor query")
	}
	if IsCompetitorQuery("What are the rules here?") {
		t.Error("unexpected competitor query")
	}
}
