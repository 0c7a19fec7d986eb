package gateway

import (
	"encoding/json"
	"strings"

	"shootday/models"
)

// The lock call's candidate roster arrives in one of three shapes:
// {"name":[...]}, [{"name":[...]}], or a bare array of strings. This
// is a documented upstream inconsistency, so all three are accepted
// here, once, at the boundary. Anything else normalizes to an empty
// list — the UI stays usable on garbage.

type namedList struct {
	Name []string `json:"name"`
}

// NormalizeRoster flattens any accepted roster shape into one ordered
// sequence of "Name - Role" strings.
func NormalizeRoster(raw []byte) []string {
	raw = []byte(strings.TrimSpace(string(raw)))
	if len(raw) == 0 {
		return nil
	}

	var obj namedList
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Name != nil {
		return obj.Name
	}

	var objList []namedList
	if err := json.Unmarshal(raw, &objList); err == nil && len(objList) > 0 && objList[0].Name != nil {
		return objList[0].Name
	}

	var bare []string
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare
	}
	return nil
}

// ParsePerson converts one "Name - Role" wire string into the typed
// form. A role tag containing "DOP" (any case) marks a Director of
// Photography; everything else is general cast.
func ParsePerson(entry string) models.Person {
	name := entry
	if idx := strings.Index(entry, " - "); idx >= 0 {
		name = entry[:idx]
	}
	role := models.RoleCreator
	if strings.Contains(strings.ToUpper(entry), "DOP") {
		role = models.RoleDOP
	}
	return models.Person{
		Name:    strings.TrimSpace(name),
		Role:    role,
		Display: entry,
	}
}

// PartitionRoster splits roster entries into DOPs and general cast,
// preserving upstream order within each partition.
func PartitionRoster(entries []string) (dops, cast []models.Person) {
	for _, entry := range entries {
		p := ParsePerson(entry)
		if p.Role == models.RoleDOP {
			dops = append(dops, p)
		} else {
			cast = append(cast, p)
		}
	}
	return dops, cast
}

// MatchesUser reports whether a roster entry refers to the given user
// name: case-insensitive exact match, or a prefix match against
// "name -" / "name ". "Deepak Sharma - Creator" matches user
// "deepak sharma" but "Deepak Sharma2 - Creator" does not.
func MatchesUser(entry, userName string) bool {
	e := strings.ToLower(strings.TrimSpace(entry))
	u := strings.ToLower(strings.TrimSpace(userName))
	if u == "" {
		return false
	}
	return e == u || strings.HasPrefix(e, u+" -") || strings.HasPrefix(e, u+" ")
}

// RosterHasUser reports whether any entry on the roster refers to the
// given user.
func RosterHasUser(entries []string, userName string) bool {
	for _, entry := range entries {
		if MatchesUser(entry, userName) {
			return true
		}
	}
	return false
}
