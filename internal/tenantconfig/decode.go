package tenantconfig

import (
	"encoding/json"
	"sort"

	json5 "github.com/yosuke-furukawa/json5/encoding/json5"
)

// Decode parses a tenant config document leniently: tenant documents are
// hand-authored JSON that tends to accumulate trailing commas and
// comments, so json5 is tried first (mirroring the teacher's
// pkg/cron/store.go LoadCronStore, which tolerates the same class of
// malformed-but-intentional input) and a strict encoding/json decode is
// the fallback for payloads json5 can't parse at all.
func Decode(data []byte) (*TenantConfig, error) {
	var cfg TenantConfig
	if err := json5.Unmarshal(data, &cfg); err == nil {
		return &cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UnmarshalJSON accepts both the current action_chips schema (a map keyed
// by chip ID) and the legacy schema (an ordered array), per spec.md §3.
func (a *ActionChips) UnmarshalJSON(data []byte) error {
	var asList []ActionChip
	if err := json.Unmarshal(data, &asList); err == nil {
		a.Chips = asList
		return nil
	}

	var asMap map[string]ActionChip
	if err := json.Unmarshal(data, &asMap); err != nil {
		return err
	}
	ids := make([]string, 0, len(asMap))
	for id := range asMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	chips := make([]ActionChip, 0, len(asMap))
	for _, id := range ids {
		chip := asMap[id]
		if chip.ID == "" {
			chip.ID = id
		}
		chips = append(chips, chip)
	}
	a.Chips = chips
	return nil
}

// MarshalJSON re-emits the current (map) schema.
func (a ActionChips) MarshalJSON() ([]byte, error) {
	m := make(map[string]ActionChip, len(a.Chips))
	for _, chip := range a.Chips {
		m[chip.ID] = chip
	}
	return json.Marshal(m)
}
