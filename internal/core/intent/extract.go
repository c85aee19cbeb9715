package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// Params are the values a command carries, extracted with labeled regexes.
// Zero values mean "not present".
type Params struct {
	Name       string // explicit vessel name (quoted or S/Y-style)
	IMO        string
	VesselType string
	Flag       string
	LOA        float64
	Beam       float64
	Draft      float64
	Amount     float64
	Reference  string
	RadiusNm   float64
	MinLength  float64
	Date       string
	JobID      string
	Holder     string
	Location   string
	Priority   string
}

var (
	quotedName    = regexp.MustCompile(`"([^"]+)"`)
	prefixedName  = regexp.MustCompile(`\b((?:S/Y|M/Y|M/V|M/T|S/V|Y/T|s/y|m/y|m/v|m/t|s/v|y/t)\s+[A-Z][a-z][\w'-]*(?:\s+[A-Z][a-z][\w'-]*)*)`)
	imoField      = regexp.MustCompile(`(?i)\bimo[:#\s]*(\d{7,9})\b`)
	loaField      = regexp.MustCompile(`(?i)\b(?:loa|length)[:=\s]*(\d+(?:\.\d+)?)`)
	metresField   = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:m|meters?|metres?)\b`)
	beamField     = regexp.MustCompile(`(?i)\bbeam[:=\s]*(\d+(?:\.\d+)?)`)
	draftField    = regexp.MustCompile(`(?i)\bdraft[:=\s]*(\d+(?:\.\d+)?)`)
	flagField     = regexp.MustCompile(`(?i)\bflag[:=\s]+([a-z]{2})\b`)
	amountPrefix  = regexp.MustCompile(`(?i)(?:€|\beur\b|\beuro\b|\bamount\b)[:=\s]*(\d[\d,]*(?:\.\d+)?)`)
	amountSuffix  = regexp.MustCompile(`(?i)\b(\d[\d,]*(?:\.\d+)?)\s*(?:€|eur\b|euros?\b)`)
	referenceTag  = regexp.MustCompile(`(?i)\bref(?:erence)?[:#\s]+([a-z0-9][a-z0-9-]{2,})`)
	radiusField   = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:nm|nautical miles?|miles?)\b`)
	minLengthExpr = regexp.MustCompile(`(?i)(?:longer|larger|greater|bigger)\s+than\s+(\d+(?:\.\d+)?)|\bover\s+(\d+(?:\.\d+)?)\s*m\b`)
	dateField     = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	jobIDField    = regexp.MustCompile(`(?i)\b(job-\d+)\b`)
	holderField   = regexp.MustCompile(`\bfor\s+(?:my\s+)?(?:guest\s+|friend\s+)?([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
	locationField = regexp.MustCompile(`(?i)\b(?:at|near|on)\s+((?:pontoon|quay|gate|dock|pier|berth|parking)\b(?:\s+[a-z]?-?\d+|\s+[a-z]\b)?)`)
)

// Extract pulls every recognizable parameter out of a command.
func Extract(text string) Params {
	p := Params{
		IMO:       group(imoField, text),
		Reference: strings.ToUpper(group(referenceTag, text)),
		Date:      group(dateField, text),
		JobID:     strings.ToUpper(group(jobIDField, text)),
		Flag:      strings.ToUpper(group(flagField, text)),
		Beam:      number(group(beamField, text)),
		Draft:     number(group(draftField, text)),
		RadiusNm:  number(group(radiusField, text)),
		Location:  titleCase(group(locationField, text)),
		Priority:  priority(text),
	}

	if m := quotedName.FindStringSubmatch(text); m != nil {
		p.Name = strings.TrimSpace(m[1])
	} else {
		p.Name = group(prefixedName, text)
	}
	p.VesselType = vesselType(p.Name, text)

	if m := minLengthExpr.FindStringSubmatch(text); m != nil {
		p.MinLength = number(firstNonEmpty(m[1:]...))
	}

	if loa := group(loaField, text); loa != "" {
		p.LOA = number(loa)
	} else if p.MinLength == 0 {
		p.LOA = number(group(metresField, text))
	}

	if a := group(amountPrefix, text); a != "" {
		p.Amount = number(a)
	} else {
		p.Amount = number(group(amountSuffix, text))
	}

	p.Holder = group(holderField, text)
	return p
}

func group(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return firstNonEmpty(m[1:]...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func number(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return f
}

func vesselType(name, text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "superyacht"):
		return "Superyacht"
	case strings.Contains(t, "catamaran"):
		return "Catamaran"
	}
	n := strings.ToUpper(name)
	switch {
	case strings.HasPrefix(n, "S/Y"), strings.HasPrefix(n, "S/V"):
		return "Sailing Yacht"
	case strings.HasPrefix(n, "M/Y"):
		return "Motor Yacht"
	case strings.HasPrefix(n, "M/V"), strings.HasPrefix(n, "M/T"):
		return "Commercial"
	}
	return ""
}

func priority(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "emergency"), strings.Contains(t, "fire"), strings.Contains(t, "mayday"):
		return "EMERGENCY"
	case strings.Contains(t, "urgent"), strings.Contains(t, "intruder"), strings.Contains(t, "theft"):
		return "URGENT"
	}
	return "ROUTINE"
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) <= 2 {
			words[i] = strings.ToUpper(w)
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
