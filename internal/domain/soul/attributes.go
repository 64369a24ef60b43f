package soul

import "strconv"

const (
	AttrXP              = "xp"
	AttrStage           = "stage"
	AttrStatus          = "status"
	AttrLastQuest       = "last_quest"
	AttrQuestsCompleted = "quests_completed"
	AttrLedgerVersion   = "ledger_version"
)

var reservedAttributes = map[string]struct{}{
	AttrXP:              {},
	AttrStage:           {},
	AttrStatus:          {},
	AttrLastQuest:       {},
	AttrQuestsCompleted: {},
	AttrLedgerVersion:   {},
}

func IsReservedAttribute(key string) bool {
	_, ok := reservedAttributes[key]
	return ok
}

func InitialAttributes() map[string]string {
	return map[string]string{
		AttrStatus:        StageDormant.Label(),
		AttrStage:         strconv.Itoa(int(StageDormant)),
		AttrXP:            "0",
		AttrLedgerVersion: strconv.FormatInt(InitialVersion, 10),
	}
}

func QuestAttributes(l StatLedger, questName string) map[string]string {
	return map[string]string{
		AttrXP:              strconv.FormatUint(l.XP, 10),
		AttrStage:           strconv.Itoa(int(l.Stage)),
		AttrLastQuest:       questName,
		AttrQuestsCompleted: strconv.FormatUint(uint64(l.QuestsCompleted), 10),
		AttrLedgerVersion:   strconv.FormatInt(l.Version, 10),
	}
}

// EvolutionAttributes merges a caller overlay with the ledger's authoritative
// fields. Overlay values never replace reserved keys.
func EvolutionAttributes(l StatLedger, overlay map[string]string) map[string]string {
	out := make(map[string]string, len(overlay)+4)
	for k, v := range overlay {
		if k == "" || IsReservedAttribute(k) {
			continue
		}
		out[k] = v
	}
	out[AttrStage] = strconv.Itoa(int(l.Stage))
	out[AttrXP] = strconv.FormatUint(l.XP, 10)
	out[AttrStatus] = l.Stage.Label()
	out[AttrLedgerVersion] = strconv.FormatInt(l.Version, 10)
	return out
}

// StaleAttributes reports whether incoming was built from an older ledger
// version than the document already holds. Documents without a version
// never count as stale.
func StaleAttributes(stored, incoming map[string]string) bool {
	have, err := strconv.ParseInt(stored[AttrLedgerVersion], 10, 64)
	if err != nil {
		return false
	}
	got, err := strconv.ParseInt(incoming[AttrLedgerVersion], 10, 64)
	if err != nil {
		return false
	}
	return got < have
}
