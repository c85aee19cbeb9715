package fleet

import (
	"regexp"
	"sort"
	"strings"

	"github.com/example/marina/internal/models"
)

// AliasIndex maps vessel names and aliases to the canonical IMO.
// It is immutable once built; the store swaps in a new index on every
// registration.
type AliasIndex struct {
	byAlias map[string]string
	names   map[string]string // IMO -> display name
	pattern *regexp.Regexp
}

// BuildAliasIndex indexes the full normalized name and the bare name
// (without the S/Y, M/Y prefix) of every vessel. When two vessels share
// an alias the first registered keeps it.
func BuildAliasIndex(vessels []models.VesselRecord) *AliasIndex {
	idx := &AliasIndex{
		byAlias: make(map[string]string),
		names:   make(map[string]string, len(vessels)),
	}
	for _, v := range vessels {
		idx.names[v.IMO] = v.Name
		for _, alias := range aliasesFor(v) {
			if _, taken := idx.byAlias[alias]; !taken {
				idx.byAlias[alias] = v.IMO
			}
		}
	}

	aliases := make([]string, 0, len(idx.byAlias))
	for alias := range idx.byAlias {
		aliases = append(aliases, regexp.QuoteMeta(alias))
	}
	// Longest first so "s/y phisedelia" wins over "phisedelia" at the same offset.
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i]) != len(aliases[j]) {
			return len(aliases[i]) > len(aliases[j])
		}
		return aliases[i] < aliases[j]
	})
	if len(aliases) > 0 {
		idx.pattern = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(` + strings.Join(aliases, "|") + `)(?:$|[^\p{L}\p{N}])`)
	}
	return idx
}

func aliasesFor(v models.VesselRecord) []string {
	full := models.NormalizeName(v.Name)
	bare := models.BareName(v.Name)
	out := []string{full}
	if bare != full && len(bare) >= 3 {
		out = append(out, bare)
	}
	return out
}

// Lookup returns the IMO registered for an exact alias.
func (idx *AliasIndex) Lookup(alias string) (string, bool) {
	imo, ok := idx.byAlias[models.NormalizeName(alias)]
	return imo, ok
}

// Resolve finds the leftmost vessel alias mentioned in free text.
func (idx *AliasIndex) Resolve(text string) (imo string, name string, ok bool) {
	if idx == nil || idx.pattern == nil {
		return "", "", false
	}
	m := idx.pattern.FindStringSubmatch(models.NormalizeName(text))
	if m == nil {
		return "", "", false
	}
	imo = idx.byAlias[m[1]]
	return imo, idx.names[imo], true
}

// Len returns the number of aliases.
func (idx *AliasIndex) Len() int {
	return len(idx.byAlias)
}
