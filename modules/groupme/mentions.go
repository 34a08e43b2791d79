package groupme

import (
	"strings"

	"github.com/guarzo/groupmeapi/common/model"
)

const allMarker = "@all"

// AllMembersMention builds a mentions attachment covering every group member
// when text opens with the "@all" marker. Every locus covers the marker
// itself, {0, 4}, not the individual member names; that is the wire format
// clients expect for a broadcast mention.
func AllMembersMention(members []model.Member, text string) *model.Attachment {
	if !strings.HasPrefix(text, allMarker) || len(members) == 0 {
		return nil
	}
	userIDs := make([]string, 0, len(members))
	loci := make([][2]int, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
		loci = append(loci, [2]int{0, len(allMarker)})
	}
	att := model.MentionsAttachment(userIDs, loci)
	return &att
}

// NamedMentions locates the first occurrence of "@name" in text for each
// candidate name, then keeps only names that belong to a current group
// member, in discovery order. Names mentioned in the text but absent from
// the group are discarded; nil is returned when nothing survives.
//
// Matching is case-sensitive and first-occurrence only. A name appearing
// several times, or one member name being a substring of another, is not
// disambiguated beyond that.
func NamedMentions(members []model.Member, names []string, text string) *model.Attachment {
	type hit struct {
		name  string
		locus [2]int
	}
	var hits []hit
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		idx := strings.Index(text, "@"+name)
		if idx < 0 {
			continue
		}
		// locus spans "@name": byte offset of the marker, length of name
		// plus the @ sign
		hits = append(hits, hit{name: name, locus: [2]int{idx, len(name) + 1}})
	}
	if len(hits) == 0 {
		return nil
	}

	byNickname := make(map[string]string, len(members))
	for _, m := range members {
		if _, ok := byNickname[m.Nickname]; !ok {
			byNickname[m.Nickname] = m.UserID
		}
	}

	var userIDs []string
	var loci [][2]int
	for _, h := range hits {
		id, ok := byNickname[h.name]
		if !ok {
			continue
		}
		userIDs = append(userIDs, id)
		loci = append(loci, h.locus)
	}
	if len(userIDs) == 0 {
		return nil
	}
	att := model.MentionsAttachment(userIDs, loci)
	return &att
}
